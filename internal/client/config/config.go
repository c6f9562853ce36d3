package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the client.
type Config struct {
	ServerURL      string
	TokenDir       string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.TokenDir = ".resources"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config from defaults, JSON, environment and flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
