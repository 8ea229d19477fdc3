package config

import "path/filepath"

type SessionBackend string

const (
	SessionBackendMemory SessionBackend = "memory"
	SessionBackendFile   SessionBackend = "file"
	SessionBackendRedis  SessionBackend = "redis"
)

type SessionConfig interface {
	GetSessionBackend() SessionBackend
	GetSessionFile() string
	GetCookieFile() string
	GetRedisAddr() string
	GetRedisKeyPrefix() string
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionBackend() SessionBackend {
	switch b := SessionBackend(GetEnv("SESSION_BACKEND", string(SessionBackendFile))); b {
	case SessionBackendMemory, SessionBackendFile, SessionBackendRedis:
		return b
	default:
		return SessionBackendFile
	}
}

func (Session) GetSessionFile() string {
	return GetEnv("SESSION_FILE", "./data/session.json")
}

// GetCookieFile defaults to cookies.json beside the session file
func (s Session) GetCookieFile() string {
	return GetEnv("COOKIE_FILE", filepath.Join(filepath.Dir(s.GetSessionFile()), "cookies.json"))
}

func (Session) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Session) GetRedisKeyPrefix() string {
	return GetEnv("REDIS_KEY_PREFIX", "clinic:session:")
}
