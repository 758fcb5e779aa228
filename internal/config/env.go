package config

import (
	"os"
	"strconv"
)

// loadFromEnv overrides config from TADA_* environment variables.
func loadFromEnv(cfg *Config) {
	str := func(name string, dst *string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) {
		if v := os.Getenv(name); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	str("TADA_ADDR", &cfg.Addr)
	boolean("TADA_COOKIE_SECURE", &cfg.CookieSecure)
	str("TADA_SESSION_FILE", &cfg.SessionFile)
	str("TADA_SESSION_BACKEND", &cfg.SessionBackend)
	str("TADA_SESSION_DRIVER", &cfg.SessionDriver)
	str("TADA_SESSION_DSN", &cfg.SessionDSN)
	str("TADA_SESSION_TTL", &cfg.SessionTTL)
	str("TADA_SESSION_SECRET", &cfg.SessionSecret)
	str("TADA_LOG_LEVEL", &cfg.LogLevel)
	str("TADA_LOG_FORMAT", &cfg.LogFormat)
	boolean("TADA_LOG_TIMESTAMPS", &cfg.LogTimestamps)
}
