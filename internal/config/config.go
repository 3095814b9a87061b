// CineChance - Watchlist Tracker and Pick-For-Me Recommendation Service
// Copyright 2026 Toria-web
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Toria-web/CineChance-sub000

// Package config loads and validates the CineChance service configuration.
//
// Configuration is layered with Koanf v2: built-in defaults, then an optional
// YAML file, then environment variables (highest priority).
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server" validate:"required"`
	Database  DatabaseConfig  `koanf:"database" validate:"required"`
	Catalog   CatalogConfig   `koanf:"catalog" validate:"required"`
	Cache     CacheConfig     `koanf:"cache" validate:"required"`
	Recommend RecommendConfig `koanf:"recommend" validate:"required"`
	Logging   LoggingConfig   `koanf:"logging" validate:"required"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"min=1s"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file. ":memory:" runs fully in memory.
	Path      string `koanf:"path" validate:"required"`
	MaxMemory string `koanf:"max_memory"`
	// Threads caps DuckDB worker threads. 0 uses runtime.NumCPU().
	Threads int `koanf:"threads" validate:"min=0"`
}

// CatalogConfig holds settings for the outbound metadata catalog client.
type CatalogConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	APIKey  string `koanf:"api_key"`
	// Timeout bounds a single metadata lookup.
	Timeout time.Duration `koanf:"timeout" validate:"min=100ms"`
	// RateLimit is the outbound request budget in requests per second.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
	RateBurst int     `koanf:"rate_burst" validate:"min=1"`
	CacheTTL  time.Duration `koanf:"cache_ttl" validate:"min=0"`
	// Circuit breaker settings.
	BreakerMaxRequests uint32        `koanf:"breaker_max_requests" validate:"min=1"`
	BreakerInterval    time.Duration `koanf:"breaker_interval"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout" validate:"min=1s"`
	BreakerFailures    uint32        `koanf:"breaker_failures" validate:"min=1"`
}

// CacheConfig holds metadata cache settings.
type CacheConfig struct {
	// Backend selects the cache implementation: memory or badger.
	Backend string `koanf:"backend" validate:"oneof=memory badger"`
	// Path is the badger directory. Ignored for the memory backend.
	Path string `koanf:"path"`
	// GCInterval is how often the badger value log GC runs.
	GCInterval time.Duration `koanf:"gc_interval" validate:"min=1m"`
}

// RecommendConfig holds selection engine settings.
type RecommendConfig struct {
	// CooldownWindow is the trailing period during which an already-shown
	// item is excluded from selection.
	CooldownWindow time.Duration `koanf:"cooldown_window" validate:"min=0"`
	// EnrichWorkers bounds concurrent metadata lookups per request.
	EnrichWorkers int `koanf:"enrich_workers" validate:"min=1,max=64"`
	// LookupTimeout bounds a single metadata lookup inside the enricher.
	LookupTimeout time.Duration `koanf:"lookup_timeout" validate:"min=100ms"`
	// AdultAge is the minimum age for adult-flagged content.
	AdultAge int `koanf:"adult_age" validate:"min=0,max=150"`
	// RandomSeed seeds the selector RNG. 0 seeds from the current time.
	RandomSeed int64 `koanf:"random_seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. These are applied
// first, then overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8585,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Database: DatabaseConfig{
			Path:      "/data/cinechance.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Catalog: CatalogConfig{
			BaseURL:            "https://api.themoviedb.org/3",
			APIKey:             "",
			Timeout:            5 * time.Second,
			RateLimit:          40,
			RateBurst:          10,
			CacheTTL:           24 * time.Hour,
			BreakerMaxRequests: 3,
			BreakerInterval:    0,
			BreakerTimeout:     30 * time.Second,
			BreakerFailures:    5,
		},
		Cache: CacheConfig{
			Backend:    "memory",
			Path:       "/data/cache",
			GCInterval: 10 * time.Minute,
		},
		Recommend: RecommendConfig{
			CooldownWindow: 7 * 24 * time.Hour,
			EnrichWorkers:  8,
			LookupTimeout:  5 * time.Second,
			AdultAge:       18,
			RandomSeed:     0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration against struct tags and cross-field
// constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Cache.Backend == "badger" && c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required when cache.backend is badger")
	}
	return nil
}
