package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/meruem/meruem-web/internal/errors"
)

type Config interface {
	EnvConfig
	BackendConfig
	SessionConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsDev() bool
}

type mainConfig struct {
	EnvVars
	Backend
	Session
	Cors
}

// New reads the configuration from the environment and validates it.
func New() (Config, error) {
	var c mainConfig
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Backend.validate(); err != nil {
		return nil, errors.Wrapf(err, "config")
	}
	return c, nil
}
