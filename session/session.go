package session

import (
	"context"
	"encoding/json"
	"fmt"

	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
)

// Fixed key names used in the backing Repo
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyRole         = "role"
	KeyUser         = "user"
)

// Session is the authenticated state of the current operator.
// Created on login, overwritten on token refresh, deleted on logout.
type Session struct {
	AccessToken  string          `json:"accessToken"`            // Bearer credential attached to API calls
	RefreshToken string          `json:"refreshToken,omitempty"` // Only present when the backend does not use a refresh cookie
	Role         string          `json:"role,omitempty"`         // Role name as returned by the login endpoint
	User         json.RawMessage `json:"user,omitempty"`         // Serialised user profile
}

// DecodeUser unmarshals the stored user profile into out
func (s *Session) DecodeUser(out any) error {
	if len(s.User) == 0 {
		return ierrors.ErrNoSession
	}
	return json.Unmarshal(s.User, out)
}

// Store gives typed access to the session held in a Repo. It is the only
// component that reads or writes session keys.
type Store struct {
	repo Repo
}

func NewStore(repo Repo) *Store {
	return &Store{repo: repo}
}

// Get returns the stored session, or ErrNoSession when nothing is stored.
func (s *Store) Get(ctx context.Context) (*Session, error) {
	var sess Session
	var found bool
	for key, dst := range map[string]*string{
		KeyAccessToken:  &sess.AccessToken,
		KeyRefreshToken: &sess.RefreshToken,
		KeyRole:         &sess.Role,
	} {
		v, ok, err := s.repo.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("session.Get %s: %w", key, err)
		}
		if ok {
			*dst = v
			found = true
		}
	}
	user, ok, err := s.repo.Get(ctx, KeyUser)
	if err != nil {
		return nil, fmt.Errorf("session.Get %s: %w", KeyUser, err)
	}
	if ok {
		sess.User = json.RawMessage(user)
		found = true
	}
	if !found {
		return nil, ierrors.ErrNoSession
	}
	return &sess, nil
}

// Set replaces the stored session. Empty fields remove their key.
func (s *Store) Set(ctx context.Context, sess *Session) error {
	if sess == nil {
		return s.Clear(ctx)
	}
	for key, value := range map[string]string{
		KeyAccessToken:  sess.AccessToken,
		KeyRefreshToken: sess.RefreshToken,
		KeyRole:         sess.Role,
		KeyUser:         string(sess.User),
	} {
		if err := s.put(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes the whole session
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("session.Clear: %w", err)
	}
	return nil
}

// AccessToken returns the stored access token, or "" when there is none
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	return s.value(ctx, KeyAccessToken)
}

func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	return s.put(ctx, KeyAccessToken, token)
}

func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	return s.value(ctx, KeyRefreshToken)
}

func (s *Store) SetRefreshToken(ctx context.Context, token string) error {
	return s.put(ctx, KeyRefreshToken, token)
}

func (s *Store) Role(ctx context.Context) (string, error) {
	return s.value(ctx, KeyRole)
}

func (s *Store) value(ctx context.Context, key string) (string, error) {
	v, _, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("session read %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) put(ctx context.Context, key, value string) error {
	var err error
	if value == "" {
		err = s.repo.Delete(ctx, key)
	} else {
		err = s.repo.Set(ctx, key, value)
	}
	if err != nil {
		return fmt.Errorf("session write %s: %w", key, err)
	}
	return nil
}
