package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/clinic-admin-client/session"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// repoFactories builds a fresh Repo per backend
func repoFactories(t *testing.T) map[string]func(t *testing.T) session.Repo {
	t.Helper()
	return map[string]func(t *testing.T) session.Repo{
		"memory": func(t *testing.T) session.Repo {
			return session.NewMemoryRepo()
		},
		"file": func(t *testing.T) session.Repo {
			r, err := session.NewFileRepo(filepath.Join(t.TempDir(), "nested", "session.json"))
			require.NoError(t, err)
			return r
		},
		"redis": func(t *testing.T) session.Repo {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return session.NewRedisRepo(client, "clinic:session:test")
		},
	}
}

func TestRepo_Contract(t *testing.T) {
	for name, newRepo := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			_, ok, err := repo.Get(ctx, session.KeyAccessToken)
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, repo.Set(ctx, session.KeyAccessToken, "abc"))
			require.NoError(t, repo.Set(ctx, session.KeyRole, "admin"))
			v, ok, err := repo.Get(ctx, session.KeyAccessToken)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "abc", v)

			require.NoError(t, repo.Set(ctx, session.KeyAccessToken, "def"))
			v, _, err = repo.Get(ctx, session.KeyAccessToken)
			require.NoError(t, err)
			require.Equal(t, "def", v)

			require.NoError(t, repo.Delete(ctx, session.KeyAccessToken))
			require.NoError(t, repo.Delete(ctx, session.KeyAccessToken))
			_, ok, err = repo.Get(ctx, session.KeyAccessToken)
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, repo.Clear(ctx))
			_, ok, err = repo.Get(ctx, session.KeyRole)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestFileRepo_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	r, err := session.NewFileRepo(path)
	require.NoError(t, err)
	require.NoError(t, r.Set(ctx, session.KeyAccessToken, "persisted"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))

	reopened, err := session.NewFileRepo(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, session.KeyAccessToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "persisted", v)

	require.NoError(t, reopened.Clear(ctx))
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestFileRepo_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := session.NewFileRepo(path)
	require.Error(t, err)
}

func TestRedisRepo_UsesSingleHash(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := session.NewRedisRepo(client, "clinic:session:ops")
	require.NoError(t, repo.Set(ctx, session.KeyAccessToken, "abc"))

	require.Equal(t, "abc", mr.HGet("clinic:session:ops", session.KeyAccessToken))
	require.NoError(t, repo.Clear(ctx))
	require.False(t, mr.Exists("clinic:session:ops"))
}

func TestRedisRepo_ConnectionError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	_, _, err := session.NewRedisRepo(client, "k").Get(context.Background(), session.KeyAccessToken)
	require.Error(t, err)
}
