// Copyright (c) 2026 AtharHuda. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (storage, cache) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage driver identifiers accepted by STORAGE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the AtharHuda API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Snapshot storage backend: sqlite (default, single local file),
	// postgres (hosted deployment), or memory (ephemeral).
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`

	// SQLitePath is the snapshot database file for the sqlite driver.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/atharhuda.db"`

	// DatabaseURL is required only when StorageDriver is "postgres".
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory
	// (postgres driver only).
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// RedisURL enables the Redis-backed Quran response cache when set.
	// When empty, an in-process cache is used instead.
	RedisURL string `env:"REDIS_URL"`

	// Quran text/audio provider
	QuranAPIBaseURL         string `env:"QURAN_API_BASE_URL"        envDefault:"https://api.alquran.cloud/v1"`
	QuranAudioBaseURL       string `env:"QURAN_AUDIO_BASE_URL"      envDefault:"https://cdn.islamic.network/quran/audio/128"`
	QuranTextEdition        string `env:"QURAN_TEXT_EDITION"        envDefault:"quran-uthmani"`
	QuranTranslationEdition string `env:"QURAN_TRANSLATION_EDITION" envDefault:"en.asad"`
	QuranDefaultReciter     string `env:"QURAN_DEFAULT_RECITER"     envDefault:"ar.alafasy"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Cross-field requirements that struct tags cannot express.
	switch cfg.StorageDriver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("config: unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedExtraOrigins returns the additional CORS origins from EXTRA_ORIGINS
// (comma-separated), trimmed and with empty entries dropped.
func (c *Config) AllowedExtraOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	parts := strings.Split(c.ExtraOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
