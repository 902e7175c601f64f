// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

// Package config loads the service configuration.
//
// Values are layered with Koanf v2: struct defaults first, then an optional
// YAML file, then environment variables. See LoadWithKoanf.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	TMDB     TMDBConfig     `koanf:"tmdb"`
	Cache    CacheConfig    `koanf:"cache"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	// RequestTimeout bounds a single recommendation request end to end.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`
	Environment    string        `koanf:"environment"`
}

// DatabaseConfig holds DuckDB settings for the library store.
type DatabaseConfig struct {
	Path      string `koanf:"path" validate:"required"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads" validate:"min=0"`
}

// TMDBConfig configures the metadata provider.
//
// APIKey may be empty: the service still starts and recommendation requests
// fail with a configuration error until a key is supplied.
type TMDBConfig struct {
	BaseURL           string               `koanf:"base_url" validate:"required,url"`
	APIKey            string               `koanf:"api_key"`
	Language          string               `koanf:"language" validate:"required"`
	Timeout           time.Duration        `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64              `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int                  `koanf:"burst" validate:"min=1"`
	CircuitBreaker    CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// CircuitBreakerConfig holds gobreaker settings for the TMDB client.
type CircuitBreakerConfig struct {
	Enabled bool `koanf:"enabled"`
	// MaxRequests allowed through while half-open.
	MaxRequests uint32 `koanf:"max_requests" validate:"min=1"`
	// Interval after which closed-state counts are cleared.
	Interval time.Duration `koanf:"interval" validate:"gte=0"`
	// Timeout spent open before probing again.
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	MinRequests  uint32        `koanf:"min_requests" validate:"min=1"`
	FailureRatio float64       `koanf:"failure_ratio" validate:"gt=0,lte=1"`
}

// CacheConfig configures the two-tier metadata cache.
type CacheConfig struct {
	Enabled        bool          `koanf:"enabled"`
	MemoryCapacity int           `koanf:"memory_capacity" validate:"min=1"`
	TTL            time.Duration `koanf:"ttl" validate:"gt=0"`
	TrendingTTL    time.Duration `koanf:"trending_ttl" validate:"gt=0"`
	BadgerPath     string        `koanf:"badger_path"`
	BadgerInMemory bool          `koanf:"badger_in_memory"`
	GCInterval     time.Duration `koanf:"gc_interval" validate:"gt=0"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio" validate:"gt=0,lt=1"`
}

// SecurityConfig holds identity and HTTP protection settings.
type SecurityConfig struct {
	// AuthMode is "jwt" (Bearer HS256 tokens) or "none" (trust X-User-ID, development only).
	AuthMode          string        `koanf:"auth_mode" validate:"oneof=jwt none"`
	JWTSecret         string        `koanf:"jwt_secret"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	switch c.Server.Environment {
	case "production", "prod":
		return true
	default:
		return false
	}
}

// TMDBConfigured reports whether a TMDB credential is present.
func (c *Config) TMDBConfigured() bool {
	return c.TMDB.APIKey != ""
}
