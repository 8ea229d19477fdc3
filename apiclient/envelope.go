package apiclient

import (
	"time"

	"golang.org/x/oauth2"
)

// TokenBearer is implemented by response types that carry a fresh access
// token. When a successful response decodes into a TokenBearer with a
// non-empty token, the session store is updated before the call returns.
type TokenBearer interface {
	BearerToken() string
}

// RefreshResponse is the body returned by the refresh endpoint
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn,omitempty"` // seconds
}

var _ TokenBearer = RefreshResponse{}

func (r RefreshResponse) BearerToken() string {
	return r.AccessToken
}

// Token converts the response to an oauth2.Token
func (r RefreshResponse) Token() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  r.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: r.RefreshToken,
	}
	if r.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return tok
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
