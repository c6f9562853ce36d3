package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors the variables the server reads. Unset variables leave
// the corresponding Config field untouched.
type envConfig struct {
	DatabaseURL   string        `env:"DATABASE_URL"`
	JWTSecret     string        `env:"JWT_SECRET"`
	ServerAddress string        `env:"SERVER_ADDRESS"`
	ServerPort    int           `env:"SERVER_PORT"`
	TokenTTL      time.Duration `env:"TOKEN_TTL"`
	BcryptCost    int           `env:"BCRYPT_COST"`
	LogLevel      string        `env:"LOG_LEVEL"`
}

func parseEnv(config *Config) error {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if e.DatabaseURL != "" {
		config.DatabaseDSN = e.DatabaseURL
	}
	if e.JWTSecret != "" {
		config.SecretKey = e.JWTSecret
	}
	if e.ServerAddress != "" {
		config.EndpointAddr = e.ServerAddress
	}
	if e.ServerPort != 0 {
		host, _, err := net.SplitHostPort(config.EndpointAddr)
		if err != nil {
			host = ""
		}
		config.EndpointAddr = net.JoinHostPort(host, strconv.Itoa(e.ServerPort))
	}
	if e.TokenTTL != 0 {
		config.TokenValidityDuration = e.TokenTTL
	}
	if e.BcryptCost != 0 {
		config.BcryptCost = e.BcryptCost
	}
	if e.LogLevel != "" {
		config.LogLevel = e.LogLevel
	}
	return nil
}
