package session_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"github.com/jrsteele09/clinic-admin-client/session"
	"github.com/stretchr/testify/require"
)

func TestStore_GetEmpty(t *testing.T) {
	store := session.NewStore(session.NewMemoryRepo())

	_, err := store.Get(context.Background())
	require.ErrorIs(t, err, ierrors.ErrNoSession)

	token, err := store.AccessToken(context.Background())
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestStore_SetGetClear(t *testing.T) {
	ctx := context.Background()
	repo := session.NewMemoryRepo()
	store := session.NewStore(repo)

	in := &session.Session{
		AccessToken: "abc",
		Role:        "pharmacist",
		User:        json.RawMessage(`{"id":5,"full_name":"Budi"}`),
	}
	require.NoError(t, store.Set(ctx, in))

	out, err := store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc", out.AccessToken)
	require.Equal(t, "pharmacist", out.Role)
	require.Empty(t, out.RefreshToken)
	require.JSONEq(t, `{"id":5,"full_name":"Budi"}`, string(out.User))

	var user struct {
		ID int `json:"id"`
	}
	require.NoError(t, out.DecodeUser(&user))
	require.Equal(t, 5, user.ID)

	// fixed key names in the backing repo
	v, ok, err := repo.Get(ctx, "accessToken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", v)

	role, err := store.Role(ctx)
	require.NoError(t, err)
	require.Equal(t, "pharmacist", role)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Get(ctx)
	require.ErrorIs(t, err, ierrors.ErrNoSession)
}

func TestStore_SetEmptyFieldRemovesKey(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(session.NewMemoryRepo())

	require.NoError(t, store.Set(ctx, &session.Session{AccessToken: "abc", RefreshToken: "r1", Role: "admin"}))
	require.NoError(t, store.Set(ctx, &session.Session{AccessToken: "def"}))

	out, err := store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "def", out.AccessToken)
	require.Empty(t, out.RefreshToken)
	require.Empty(t, out.Role)

	require.NoError(t, store.Set(ctx, nil))
	_, err = store.Get(ctx)
	require.ErrorIs(t, err, ierrors.ErrNoSession)
}

func TestStore_TokenAccessors(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(session.NewMemoryRepo())

	require.NoError(t, store.SetAccessToken(ctx, "a1"))
	require.NoError(t, store.SetRefreshToken(ctx, "r1"))

	access, err := store.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "a1", access)
	refresh, err := store.RefreshToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "r1", refresh)
}

func TestSession_DecodeUserWithoutProfile(t *testing.T) {
	s := session.Session{AccessToken: "abc"}
	require.ErrorIs(t, s.DecodeUser(&struct{}{}), ierrors.ErrNoSession)
}

func TestParseClaims(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     "user-1",
		"user_id": 17,
		"role":    "doctor",
		"exp":     exp.Unix(),
	}).SignedString([]byte("any-key"))
	require.NoError(t, err)

	claims, err := session.ParseClaims(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "17", claims.UserID)
	require.Equal(t, "doctor", claims.Role)
	require.True(t, claims.ExpiresAt.Equal(exp))
	require.False(t, claims.Expired(exp.Add(-time.Second)))
	require.True(t, claims.Expired(exp.Add(time.Second)))
}

func TestParseClaims_SubjectFallbackAndNoExpiry(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "12"}).SignedString([]byte("k"))
	require.NoError(t, err)

	claims, err := session.ParseClaims(token)
	require.NoError(t, err)
	require.Equal(t, "12", claims.UserID)
	require.False(t, claims.Expired(time.Now()))
}

func TestParseClaims_Errors(t *testing.T) {
	_, err := session.ParseClaims("")
	require.ErrorIs(t, err, ierrors.ErrNoSession)

	_, err = session.ParseClaims("not.a.jwt")
	require.ErrorIs(t, err, ierrors.ErrInvalidToken)
}
