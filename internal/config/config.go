package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds environment-driven settings shared by the CLI and server.
type Config struct {
	// Storage
	DBPath string `env:"INTERLOG_DB" envDefault:"interlog.db"`

	// HTTP surface
	Listen string `env:"INTERLOG_LISTEN" envDefault:":8080"`

	// Identity
	KeyringPath string `env:"INTERLOG_KEYRING"`
	APIKey      string `env:"INTERLOG_API_KEY"`

	// Notification sinks (empty = disabled)
	NotifyJSONLPath  string `env:"INTERLOG_NOTIFY_JSONL"`
	NotifyWebhookURL string `env:"INTERLOG_NOTIFY_WEBHOOK"`
	NotifyBuffer     int    `env:"INTERLOG_NOTIFY_BUFFER" envDefault:"256"`
}

// Load reads configuration from the environment, applying a .env file
// first if one exists in the working directory.
func Load() (*Config, error) {
	// .env is optional; absence is not an error
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
