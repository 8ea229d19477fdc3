package session

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
)

// Claims is the subset of access-token claims the client relies on.
type Claims struct {
	Subject   string
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the token carried an expiry that has passed
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// user id claim names seen across backend versions, in lookup order
var userIDClaims = []string{"id", "user_id", "userId"}

// ParseClaims decodes the access token without verifying its signature.
// The backend is the authority on validity; the client only reads claims.
func ParseClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, ierrors.ErrNoSession
	}
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("%w: %w", ierrors.ErrInvalidToken, err)
	}

	claims := &Claims{}
	claims.Subject, _ = mc.GetSubject()
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if role, ok := mc["role"].(string); ok {
		claims.Role = role
	}
	for _, name := range userIDClaims {
		if id := claimString(mc[name]); id != "" {
			claims.UserID = id
			break
		}
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}

func claimString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
