// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings. Values come from HEARTH_* environment
// variables.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	DBPath   string `envconfig:"DB_PATH" default:"hearth.db"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	PostmarkToken string `envconfig:"POSTMARK_TOKEN"`
	FromEmail     string `envconfig:"FROM_EMAIL" default:"hearth@localhost"`

	ReminderInterval     time.Duration `envconfig:"REMINDER_INTERVAL" default:"1h"`
	ReminderStartupDelay time.Duration `envconfig:"REMINDER_STARTUP_DELAY" default:"30s"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("hearth", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}
