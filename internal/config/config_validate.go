// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateModel(); err != nil {
		return err
	}

	if err := c.validateTraining(); err != nil {
		return err
	}

	return c.validateQuery()
}

// validEnvironments defines the allowed deployment environments
var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// validateServer validates the HTTP listener configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}

	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"HTTP_TIMEOUT", c.Server.Timeout},
		{"HTTP_READ_TIMEOUT", c.Server.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", c.Server.WriteTimeout},
		{"HTTP_IDLE_TIMEOUT", c.Server.IdleTimeout},
		{"HTTP_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if t.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", t.name, t.value)
		}
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// validateSecurity validates CORS and rate limiting
func (c *Config) validateSecurity() error {
	for _, origin := range c.Security.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ORIGINS entry %q must be * or an http(s) origin", origin)
		}
	}
	return c.validateRateLimits()
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if a production deployment accepts any
// origin, which should be logged at startup
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateModel validates the model storage configuration
func (c *Config) validateModel() error {
	switch c.Model.Backend {
	case BackendFile:
		if c.Model.Path == "" {
			return fmt.Errorf("MODEL_PATH is required when MODEL_BACKEND=file")
		}
	case BackendStore, BackendBadger:
		if c.Model.StoreDir == "" {
			return fmt.Errorf("MODEL_STORE_DIR is required when MODEL_BACKEND=%s", c.Model.Backend)
		}
		if c.Model.Name == "" || strings.ContainsAny(c.Model.Name, `/\`) {
			return fmt.Errorf("MODEL_NAME must be non-empty and contain no path separators")
		}
	default:
		return fmt.Errorf("MODEL_BACKEND must be one of: file, store, badger")
	}

	if c.Model.Version < 0 {
		return fmt.Errorf("MODEL_VERSION must be non-negative (0 = latest)")
	}
	if c.Model.KeepVersions < 0 {
		return fmt.Errorf("MODEL_KEEP_VERSIONS must be non-negative (0 = keep all)")
	}
	return nil
}

// validCorpusFormats defines the accepted corpus formats; empty infers from the extension
var validCorpusFormats = map[string]bool{
	"":     true,
	"json": true,
	"csv":  true,
}

// validateTraining validates the training configuration
func (c *Config) validateTraining() error {
	if !validCorpusFormats[c.Training.CorpusFormat] {
		return fmt.Errorf("CORPUS_FORMAT must be one of: json, csv (or empty)")
	}
	if c.Training.Workers < 0 {
		return fmt.Errorf("TRAIN_WORKERS must be non-negative (0 = GOMAXPROCS)")
	}
	if err := c.Training.Schema.Validate(); err != nil {
		return fmt.Errorf("training schema is invalid: %w", err)
	}
	return nil
}

// maxQueryK bounds RECOMMEND_MAX_K
const maxQueryK = 1000

// validateQuery validates the query service configuration
func (c *Config) validateQuery() error {
	if c.Query.DefaultK < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be at least 1")
	}
	if c.Query.MaxK < c.Query.DefaultK || c.Query.MaxK > maxQueryK {
		return fmt.Errorf("RECOMMEND_MAX_K must be between RECOMMEND_DEFAULT_K (%d) and %d", c.Query.DefaultK, maxQueryK)
	}
	if c.Query.CacheSize < 0 {
		return fmt.Errorf("RECOMMEND_CACHE_SIZE must be non-negative (0 = disabled)")
	}
	if c.Query.CacheTTL < 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must be non-negative (0 = no expiry)")
	}
	if c.Query.StatsInterval < 0 {
		return fmt.Errorf("RECOMMEND_STATS_INTERVAL must be non-negative (0 = disabled)")
	}
	return nil
}
