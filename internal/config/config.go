package config

type Config interface {
	APIConfig
	AuthConfig
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
