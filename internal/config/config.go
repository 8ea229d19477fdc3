package config

type Config interface {
	EnvConfig
	ClientConfig
	SessionConfig
}

type EnvConfig interface {
	GetBaseURL() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	Client
	Session
}

func New() Config {
	return mainConfig{}
}
