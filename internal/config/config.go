// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Session storage backends.
const (
	SessionBackendFile   = "file"
	SessionBackendValkey = "valkey"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Platform API
	APIBaseURL string
	APITimeout time.Duration

	// Session persistence
	SessionBackend string // "file" or "valkey"
	SessionFile    string
	SessionKey     string // optional passphrase sealing the file store

	// Valkey (Redis-compatible), used when SessionBackend is "valkey"
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A local .env file is merged first when
// present. Returns an error if critical values are missing in production mode.
func Load() (*Config, error) {
	// Best effort: a missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "127.0.0.1"),
		Port: envOrDefault("APP_PORT", "8090"),
		Env:  envOrDefault("APP_ENV", "development"),

		APIBaseURL: envOrDefault("API_BASE_URL", "http://localhost:8000/api"),

		SessionBackend: envOrDefault("SESSION_BACKEND", SessionBackendFile),
		SessionFile:    envOrDefault("SESSION_FILE", defaultSessionFile()),
		SessionKey:     os.Getenv("SESSION_KEY"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	timeoutSec, err := strconv.Atoi(envOrDefault("API_TIMEOUT", "30"))
	if err != nil || timeoutSec <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT must be a positive number of seconds")
	}
	cfg.APITimeout = time.Duration(timeoutSec) * time.Second

	switch cfg.SessionBackend {
	case SessionBackendFile, SessionBackendValkey:
	default:
		return nil, fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q",
			SessionBackendFile, SessionBackendValkey, cfg.SessionBackend)
	}

	if cfg.Env == "production" {
		if os.Getenv("API_BASE_URL") == "" {
			return nil, fmt.Errorf("API_BASE_URL must be set in production")
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// defaultSessionFile places the session document under the operator's home
// directory, falling back to the working directory when home is unknown.
func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".educonsole/session.json"
	}
	return filepath.Join(home, ".educonsole", "session.json")
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
