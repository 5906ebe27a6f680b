// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend/features"
	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
)

// DefaultTopK is the number of recommendations returned when none is requested.
const DefaultTopK = 5

// TrainConfig controls model training.
type TrainConfig struct {
	// Schema selects and configures the feature groups.
	Schema features.Schema `json:"schema"`

	// Workers bounds parallel transform goroutines. 0 uses GOMAXPROCS.
	Workers int `json:"workers"`
}

// DefaultTrainConfig returns the default schema with automatic parallelism.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{Schema: features.DefaultSchema()}
}

// Validate checks the training configuration.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (c TrainConfig) Validate() error {
	if c.Workers < 0 {
		return recerr.NewConfigError("train", fmt.Sprintf("workers must be non-negative, got %d", c.Workers), nil)
	}
	return c.Schema.Validate()
}

// QueryConfig controls the query service.
type QueryConfig struct {
	// DefaultK is used when a request asks for 0 recommendations.
	DefaultK int `json:"default_k"`

	// MaxK caps the number of recommendations per request.
	MaxK int `json:"max_k"`

	// CacheSize is the number of memoised responses. 0 disables the cache.
	CacheSize int `json:"cache_size"`

	// CacheTTL expires memoised responses. 0 keeps them for the process lifetime.
	CacheTTL time.Duration `json:"cache_ttl"`
}

// DefaultQueryConfig returns production defaults.
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		DefaultK:  DefaultTopK,
		MaxK:      100,
		CacheSize: 4096,
	}
}

// Validate checks the query configuration.
func (c QueryConfig) Validate() error {
	if c.DefaultK < 1 {
		return recerr.NewConfigError("query", fmt.Sprintf("default_k must be at least 1, got %d", c.DefaultK), nil)
	}
	if c.MaxK < c.DefaultK {
		return recerr.NewConfigError("query", fmt.Sprintf("max_k (%d) must be >= default_k (%d)", c.MaxK, c.DefaultK), nil)
	}
	if c.CacheSize < 0 {
		return recerr.NewConfigError("query", fmt.Sprintf("cache_size must be non-negative, got %d", c.CacheSize), nil)
	}
	if c.CacheTTL < 0 {
		return recerr.NewConfigError("query", "cache_ttl must be non-negative", nil)
	}
	return nil
}
