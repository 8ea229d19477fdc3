package config

import "time"

type ClientConfig interface {
	GetLoginPath() string
	GetLogoutPath() string
	GetRefreshPath() string
	GetRefreshTimeout() time.Duration
	GetRequestTimeout() time.Duration
	GetRateLimit() float64
	GetReplayConcurrency() int
}

type Client struct{}

var _ ClientConfig = Client{}

func (Client) GetLoginPath() string {
	return GetEnv("LOGIN_PATH", "/auth/login")
}

func (Client) GetLogoutPath() string {
	return GetEnv("LOGOUT_PATH", "/auth/logout")
}

func (Client) GetRefreshPath() string {
	return GetEnv("REFRESH_PATH", "/auth/refresh")
}

// GetRefreshTimeout bounds a single refresh call; queued requests fail once it elapses.
func (Client) GetRefreshTimeout() time.Duration {
	return GetEnvDuration("REFRESH_TIMEOUT", 15*time.Second)
}

func (Client) GetRequestTimeout() time.Duration {
	return GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)
}

// GetRateLimit is requests per second; 0 disables client-side limiting
func (Client) GetRateLimit() float64 {
	return GetEnvFloat("RATE_LIMIT_RPS", 0)
}

func (Client) GetReplayConcurrency() int {
	return GetEnvInt("REPLAY_CONCURRENCY", 4)
}
