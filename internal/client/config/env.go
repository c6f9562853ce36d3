package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors the variables the client reads. Unset variables leave
// the corresponding Config field untouched.
type envConfig struct {
	ServerURL      string        `env:"RESOURCES_SERVER_URL"`
	TokenDir       string        `env:"RESOURCES_TOKEN_DIR"`
	RequestTimeout time.Duration `env:"RESOURCES_TIMEOUT"`
}

func parseEnv(cfg *Config) error {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if e.ServerURL != "" {
		cfg.ServerURL = e.ServerURL
	}
	if e.TokenDir != "" {
		cfg.TokenDir = e.TokenDir
	}
	if e.RequestTimeout != 0 {
		cfg.RequestTimeout = e.RequestTimeout
	}
	return nil
}
