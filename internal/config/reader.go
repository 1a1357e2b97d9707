package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Reader interface {
	Read() (*Config, error)
}

// EnvReader reads the configuration from the process environment.
// A .env file, if any, is expected to be loaded beforehand.
type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	switch cfg.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return nil, fmt.Errorf("unknown env: %q", cfg.Env)
	}
	return cfg, nil
}

// Usage describes every supported environment variable.
func Usage() (string, error) {
	return cleanenv.GetDescription(new(Config), nil)
}
