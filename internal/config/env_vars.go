package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	baseURLVar  = "CLINIC_API_BASE_URL"
	appNameVar  = "APP_NAME"
	logLevelVar = "LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// GetBaseURL returns the origin every API path is resolved against (e.g. "https://api.clinic.example/api")
func (EnvVars) GetBaseURL() string {
	return strings.TrimRight(GetEnv(baseURLVar, "http://localhost:3000/api"), "/")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Clinic Admin")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvDuration parses values such as "15s" or "2m"; unparsable values fall back to the default.
func GetEnvDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func GetEnvInt(envVar string, defaultValue int) int {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}

func GetEnvFloat(envVar string, defaultValue float64) float64 {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
