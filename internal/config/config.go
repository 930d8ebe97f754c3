// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SessionSecret string `env:"STAFFREG_SESSION_SECRET,required"`
	ServerHost    string `env:"STAFFREG_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"STAFFREG_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"STAFFREG_ENV" envDefault:"development"`
	LogLevel      string `env:"STAFFREG_LOG_LEVEL" envDefault:"info"`
	Timezone      string `env:"STAFFREG_TIMEZONE" envDefault:"Local"` // Zone used to decide "today"
	DefaultLang   string `env:"STAFFREG_DEFAULT_LANG" envDefault:"es"`

	// Session configuration
	SessionLifetime    time.Duration `env:"STAFFREG_SESSION_LIFETIME" envDefault:"12h"`
	SessionIdleTimeout time.Duration `env:"STAFFREG_SESSION_IDLE_TIMEOUT" envDefault:"2h"`
	RedisURL           string        `env:"STAFFREG_REDIS_URL"`                                   // Optional Redis URL for shared session storage
	RedisPrefix        string        `env:"STAFFREG_REDIS_PREFIX" envDefault:"staffreg:session:"` // Redis key prefix

	// Rate limiting for form posts (per client IP)
	RateLimit float64 `env:"STAFFREG_RATE_LIMIT" envDefault:"5"`
	RateBurst int     `env:"STAFFREG_RATE_BURST" envDefault:"10"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisSessions returns true if sessions should be stored in Redis.
func (c Config) UseRedisSessions() bool {
	return c.RedisURL != ""
}

// Location returns the time zone used for date checks.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to Info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// MinSessionSecretLength is the minimum required length for the session secret.
// It also keys the CSRF protection, which needs 32 bytes.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("STAFFREG_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("STAFFREG_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("STAFFREG_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	if cfg.RateLimit <= 0 || cfg.RateBurst <= 0 {
		return nil, fmt.Errorf("STAFFREG_RATE_LIMIT and STAFFREG_RATE_BURST must be positive")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
