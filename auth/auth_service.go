// Package auth creates, inspects and ends the operator session.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/clinic-admin-client/apiclient"
	"github.com/jrsteele09/clinic-admin-client/internal/config"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"github.com/jrsteele09/clinic-admin-client/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Credentials are posted to the login endpoint
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the login envelope. It carries the access token, so the
// client stores it as soon as the response is decoded.
type LoginResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken,omitempty"`
	Role         string          `json:"role"`
	User         json.RawMessage `json:"user,omitempty"`
}

func (r LoginResponse) BearerToken() string {
	return r.AccessToken
}

var _ apiclient.TokenBearer = LoginResponse{}

type Service struct {
	client     apiclient.Requester
	store      *session.Store
	loginPath  string
	logoutPath string
	cookies    CookieClearer
	logger     zerolog.Logger
	nowTime    func() time.Time
}

// CookieClearer drops cookies the backend set, such as the refresh cookie
type CookieClearer interface {
	Clear() error
}

type ServiceOption func(*Service)

// WithLogger sets logger
func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCookies makes Logout clear jar as well as the stored session
func WithCookies(jar CookieClearer) ServiceOption {
	return func(s *Service) {
		s.cookies = jar
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(client apiclient.Requester, store *session.Store, cfg config.ClientConfig, options ...ServiceOption) (*Service, error) {
	if client == nil {
		return nil, errors.New("[NewService] client is required")
	}
	if store == nil {
		return nil, errors.New("[NewService] session store is required")
	}
	if cfg == nil {
		return nil, errors.New("[NewService] client config is required")
	}

	s := &Service{
		client:     client,
		store:      store,
		loginPath:  cfg.GetLoginPath(),
		logoutPath: cfg.GetLogoutPath(),
		logger:     log.Logger,
		nowTime:    time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login authenticates and replaces whatever session was stored before.
// Bad credentials come back as an APIError; they never trigger a token refresh.
func (s *Service) Login(ctx context.Context, creds Credentials) (*session.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return nil, MissingCredentialsErr
	}

	if err := s.store.Clear(ctx); err != nil {
		return nil, err
	}

	var resp LoginResponse
	if err := s.client.Post(ctx, s.loginPath, creds, &resp, apiclient.WithoutRefresh()); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, EmptyLoginResponseErr
	}

	sess := &session.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Role:         resp.Role,
		User:         resp.User,
	}
	if err := s.store.Set(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", creds.Email).Str("role", resp.Role).Msg("Logged in")
	return sess, nil
}

// Logout tells the backend the session is over and clears it locally.
// A failing logout call is logged; the local session is cleared regardless.
func (s *Service) Logout(ctx context.Context) error {
	token, err := s.store.AccessToken(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		if err := s.client.Post(ctx, s.logoutPath, nil, nil, apiclient.WithoutRefresh()); err != nil {
			s.logger.Warn().Err(err).Msg("Logout call failed, clearing local session anyway")
		}
	}
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	if s.cookies != nil {
		if err := s.cookies.Clear(); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}
	s.logger.Info().Msg("Logged out")
	return nil
}

func (s *Service) CurrentSession(ctx context.Context) (*session.Session, error) {
	return s.store.Get(ctx)
}

// Claims decodes the stored access token
func (s *Service) Claims(ctx context.Context) (*session.Claims, error) {
	token, err := s.store.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return session.ParseClaims(token)
}

// TokenExpired reports whether the stored access token's expiry has passed.
// An expired token is not an error; the next call refreshes it.
func (s *Service) TokenExpired(ctx context.Context) (bool, error) {
	claims, err := s.Claims(ctx)
	if err != nil {
		return false, err
	}
	return claims.Expired(s.nowTime()), nil
}

// CurrentUserID returns the logged-in user's id from the token claims,
// falling back to the stored user profile. There is no default id: callers
// get ErrNoSession, ErrInvalidToken or ErrNoUserID instead.
func (s *Service) CurrentUserID(ctx context.Context) (int, error) {
	sess, err := s.store.Get(ctx)
	if err != nil {
		return 0, err
	}

	claims, claimsErr := session.ParseClaims(sess.AccessToken)
	if claimsErr == nil {
		if id, err := strconv.Atoi(claims.UserID); err == nil && id > 0 {
			return id, nil
		}
	}

	var profile struct {
		ID json.Number `json:"id"`
	}
	if err := sess.DecodeUser(&profile); err == nil {
		if id, err := strconv.Atoi(profile.ID.String()); err == nil && id > 0 {
			return id, nil
		}
	}

	if claimsErr != nil && !ierrors.Is(claimsErr, ierrors.ErrNoSession) {
		return 0, claimsErr
	}
	return 0, ierrors.ErrNoUserID
}

// CurrentUser decodes the stored user profile into out
func (s *Service) CurrentUser(ctx context.Context, out any) error {
	sess, err := s.store.Get(ctx)
	if err != nil {
		return err
	}
	return sess.DecodeUser(out)
}
