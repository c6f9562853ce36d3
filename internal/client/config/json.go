package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/OscarDom1/community-resource-platform/internal/flagx"
	"github.com/OscarDom1/community-resource-platform/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling.
type JSONConfig struct {
	ServerURL      *string         `json:"server_url"`
	TokenDir       *string         `json:"token_dir"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.TokenDir != nil {
		cfg.TokenDir = *jc.TokenDir
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}
