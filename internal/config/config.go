// Package config loads tada's settings from defaults, a config file and
// the environment. Command line flags are applied last by package cli.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Default values.
const (
	DefaultAddr           = "127.0.0.1:4567"
	DefaultSessionBackend = "memory"
	DefaultSessionDriver  = "sqlite"
	DefaultSessionDSN     = "tada-sessions.sqlite"
	DefaultSessionTTL     = "24h"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Config holds the full configuration for tada.
type Config struct {
	// HTTP
	Addr         string `toml:"addr" yaml:"addr"`
	CookieSecure bool   `toml:"cookie_secure" yaml:"cookie_secure"`

	// Local session file used by the CLI and the TUI.
	SessionFile string `toml:"session_file" yaml:"session_file"`

	// Server sessions
	SessionBackend string `toml:"session_backend" yaml:"session_backend"` // memory | sql
	SessionDriver  string `toml:"session_driver" yaml:"session_driver"`   // sqlite | mysql
	SessionDSN     string `toml:"session_dsn" yaml:"session_dsn"`
	SessionTTL     string `toml:"session_ttl" yaml:"session_ttl"`
	SessionSecret  string `toml:"session_secret" yaml:"session_secret"`

	// Logging
	LogLevel      string `toml:"log_level" yaml:"log_level"`
	LogFormat     string `toml:"log_format" yaml:"log_format"` // text | json | logfmt
	LogTimestamps bool   `toml:"log_timestamps" yaml:"log_timestamps"`

	// Computed
	TTL  time.Duration `toml:"-" yaml:"-"`
	File string        `toml:"-" yaml:"-"` // config file that was read, if any
}

func setDefaults(cfg *Config) {
	cfg.Addr = DefaultAddr
	cfg.SessionFile = "tada-session.json"
	cfg.SessionBackend = DefaultSessionBackend
	cfg.SessionDriver = DefaultSessionDriver
	cfg.SessionDSN = DefaultSessionDSN
	cfg.SessionTTL = DefaultSessionTTL
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = true
}

// Default returns a config holding only default values.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	_ = cfg.Finalize()
	return cfg
}

// Finalize normalizes values, computes derived fields and validates.
func (c *Config) Finalize() error {
	c.SessionBackend = strings.ToLower(strings.TrimSpace(c.SessionBackend))
	c.SessionDriver = strings.ToLower(strings.TrimSpace(c.SessionDriver))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	switch c.SessionBackend {
	case "memory", "sql":
	default:
		return fmt.Errorf("session_backend: unknown backend %q (want memory or sql)", c.SessionBackend)
	}
	switch c.SessionDriver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("session_driver: unknown driver %q (want sqlite or mysql)", c.SessionDriver)
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format: unknown format %q", c.LogFormat)
	}
	ttl, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return fmt.Errorf("session_ttl: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("session_ttl: must be positive, got %s", c.SessionTTL)
	}
	c.TTL = ttl
	return nil
}
