// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Document store driver: "postgres" or "valkey"
	DocstoreDriver string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible; document store variant + sessions)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// AdminPassword protects the editing API when set. Empty in
	// development means the API is open.
	AdminPassword string

	// SaveQuietPeriod is the debounce window for the coalesced tree save.
	SaveQuietPeriod time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DocstoreDriver: envOrDefault("DOCSTORE_DRIVER", "postgres"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "bibtree"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "bibtree"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	quietMs, err := strconv.Atoi(envOrDefault("SAVE_QUIET_MS", "1000"))
	if err != nil || quietMs < 0 {
		return nil, fmt.Errorf("SAVE_QUIET_MS must be a non-negative integer")
	}
	cfg.SaveQuietPeriod = time.Duration(quietMs) * time.Millisecond

	if cfg.DocstoreDriver != "postgres" && cfg.DocstoreDriver != "valkey" {
		return nil, fmt.Errorf("DOCSTORE_DRIVER must be postgres or valkey, got %q", cfg.DocstoreDriver)
	}

	if cfg.Env == "production" {
		if cfg.DocstoreDriver == "postgres" && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.AdminPassword == "" {
			return nil, fmt.Errorf("ADMIN_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// ValkeyAddr returns the Valkey host:port.
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// AuthEnabled reports whether the editing API requires a login.
func (c *Config) AuthEnabled() bool {
	return c.AdminPassword != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
