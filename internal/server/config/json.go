package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/OscarDom1/community-resource-platform/internal/flagx"
	"github.com/OscarDom1/community-resource-platform/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Only keys present in
// the file override the current values.
type JSONConfig struct {
	EndpointAddr          *string         `json:"endpoint_addr"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	BcryptCost            *int            `json:"bcrypt_cost"`
	LogLevel              *string         `json:"log_level"`
	ShutdownTimeout       *timex.Duration `json:"shutdown_timeout"`
}

// parseJSON loads the file named by -c/-config (or $CONFIG) into config.
// No file configured is not an error.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	return nil
}
