package config

type Config interface {
	EnvConfig
	BackendConfig
	SessionConfig
}

type mainConfig struct {
	EnvVars
	Backend
	Sessions
}

func New() Config {
	return mainConfig{}
}
