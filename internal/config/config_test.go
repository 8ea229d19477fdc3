package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/clinic-admin-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, v := range []string{"CLINIC_API_BASE_URL", "REFRESH_TIMEOUT", "RATE_LIMIT_RPS", "SESSION_BACKEND", "REPLAY_CONCURRENCY"} {
		t.Setenv(v, "")
	}
	cfg := config.New()

	require.Equal(t, "http://localhost:3000/api", cfg.GetBaseURL())
	require.Equal(t, "/auth/refresh", cfg.GetRefreshPath())
	require.Equal(t, 15*time.Second, cfg.GetRefreshTimeout())
	require.Equal(t, 0.0, cfg.GetRateLimit())
	require.Equal(t, 4, cfg.GetReplayConcurrency())
	require.Equal(t, config.SessionBackendFile, cfg.GetSessionBackend())
}

func TestOverrides(t *testing.T) {
	t.Setenv("CLINIC_API_BASE_URL", "https://api.clinic.test/api/")
	t.Setenv("REFRESH_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REPLAY_CONCURRENCY", "8")
	cfg := config.New()

	require.Equal(t, "https://api.clinic.test/api", cfg.GetBaseURL())
	require.Equal(t, 3*time.Second, cfg.GetRefreshTimeout())
	require.Equal(t, 2.5, cfg.GetRateLimit())
	require.Equal(t, config.SessionBackendRedis, cfg.GetSessionBackend())
	require.Equal(t, 8, cfg.GetReplayConcurrency())
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("REFRESH_TIMEOUT", "soon")
	t.Setenv("REPLAY_CONCURRENCY", "many")
	t.Setenv("SESSION_BACKEND", "sqlite")
	cfg := config.New()

	require.Equal(t, 15*time.Second, cfg.GetRefreshTimeout())
	require.Equal(t, 4, cfg.GetReplayConcurrency())
	require.Equal(t, config.SessionBackendFile, cfg.GetSessionBackend())
}

func TestCookieFileFollowsSessionFile(t *testing.T) {
	t.Setenv("COOKIE_FILE", "")
	t.Setenv("SESSION_FILE", "/var/lib/clinicctl/session.json")
	cfg := config.New()
	require.Equal(t, "/var/lib/clinicctl/cookies.json", cfg.GetCookieFile())

	t.Setenv("COOKIE_FILE", "/tmp/jar.json")
	require.Equal(t, "/tmp/jar.json", cfg.GetCookieFile())
}
