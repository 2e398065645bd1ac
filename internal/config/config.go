// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads blog preferences and process configuration from
// environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Blog preferences
	BlogHost   string `env:"SOLO_BLOG_HOST,required"` // host[:port], no scheme
	BlogTitle  string `env:"SOLO_BLOG_TITLE" envDefault:"Solo"`
	AdminEmail string `env:"SOLO_ADMIN_EMAIL"`
	B3Key      string `env:"SOLO_B3_KEY"` // installation key for the Symphony mirror

	DBPath     string `env:"SOLO_DB_PATH" envDefault:"./data/solo.db"`
	ServerHost string `env:"SOLO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SOLO_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SOLO_ENV" envDefault:"development"`
	LogLevel   string `env:"SOLO_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL    string `env:"SOLO_REDIS_URL"`                       // Optional Redis URL for the query cache
	CachePrefix string `env:"SOLO_CACHE_PREFIX" envDefault:"solo:"` // Redis key prefix
	CacheTTL    int    `env:"SOLO_CACHE_TTL" envDefault:"3600"`     // Default cache TTL in seconds

	// StatFlushSpec is the cron spec for the view-count flush job.
	StatFlushSpec string `env:"SOLO_STAT_FLUSH_SPEC" envDefault:"*/10 * * * *"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// IsLocalHost reports whether the configured blog host is a loopback or
// otherwise non-public address. Notification dispatchers use this to skip
// outbound pings from local installations.
func (c Config) IsLocalHost() bool {
	host := strings.ToLower(strings.TrimSpace(c.BlogHost))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// The blog host is stored without a scheme; tolerate operators pasting one.
	cfg.BlogHost = strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(
		strings.TrimSpace(cfg.BlogHost), "http://"), "https://"), "/")
	if cfg.BlogHost == "" {
		return nil, fmt.Errorf("SOLO_BLOG_HOST must not be empty")
	}

	return cfg, nil
}

// SlogLevel converts the configured log level string to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
