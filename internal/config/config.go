// Package config holds runtime configuration for the taskfilter CLI.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/renatomen/tasknotes-sub005/internal/env"
)

// Defaults applied before reading the environment.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultDBPath    = "taskfilter.db"
)

// Config is loaded from TASKFILTER_* environment variables.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"TASKFILTER_LOG_LEVEL"`

	// LogFormat is "text" or "json".
	LogFormat string `env:"TASKFILTER_LOG_FORMAT"`

	// Timezone is an IANA timezone name anchoring date comparisons and
	// natural-language resolution. Empty means the system local zone.
	Timezone string `env:"TASKFILTER_TIMEZONE"`

	// DBPath is the SQLite file holding saved views.
	DBPath string `env:"TASKFILTER_DB_PATH"`
}

// Load reads configuration from the environment on top of defaults.
func Load() (Config, error) {
	cfg := Config{
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		DBPath:    DefaultDBPath,
	}
	if err := env.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the loaded values. Called by env.Load.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (supported: debug, info, warn, error)", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (supported: text, json)", c.LogFormat)
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path is required")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// SlogLevel maps the configured level to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Location resolves the configured timezone, defaulting to local time.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
