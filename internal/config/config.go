// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend/features"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in values for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Sections:
//   - Server: HTTP listener and timeouts
//   - Security: CORS and rate limiting
//   - Logging: Log level and output format
//   - Model: Where trained snapshots are saved and loaded
//   - Training: Corpus location and feature schema used by cmd/train
//   - Query: Defaults and cache sizing for the query service
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	Model    ModelConfig    `koanf:"model"`
	Training TrainingConfig `koanf:"training"`
	Query    QueryConfig    `koanf:"query"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"` // Per-request handler timeout
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production" (default: "development")
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SecurityConfig configures CORS and request rate limiting.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig configures the global zerolog logger.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Model storage backends.
const (
	BackendFile   = "file"
	BackendStore  = "store"
	BackendBadger = "badger"
)

// ModelConfig selects where the trained model lives.
type ModelConfig struct {
	// Backend is one of "file" (single snapshot at Path), "store" (versioned
	// files under StoreDir) or "badger" (embedded BadgerDB under StoreDir).
	Backend string `koanf:"backend"`

	// Path is the snapshot file for the file backend.
	Path string `koanf:"path"`

	// StoreDir is the directory of the store and badger backends.
	StoreDir string `koanf:"store_dir"`

	// Name identifies the model inside a versioned backend.
	Name string `koanf:"name"`

	// Version pins the version to load. 0 loads the latest.
	Version int `koanf:"version"`

	// KeepVersions is how many versions the store backend keeps after a
	// training run. 0 keeps all of them.
	KeepVersions int `koanf:"keep_versions"`
}

// Versioned reports whether the backend stores multiple model versions.
func (m ModelConfig) Versioned() bool {
	return m.Backend == BackendStore || m.Backend == BackendBadger
}

// TrainingConfig configures cmd/train.
type TrainingConfig struct {
	// CorpusPath is the movie catalog to train on.
	CorpusPath string `koanf:"corpus_path"`

	// CorpusFormat is "json", "csv" or empty to infer from the extension.
	CorpusFormat string `koanf:"corpus_format"`

	// Workers bounds parallel feature encoding. 0 uses GOMAXPROCS.
	Workers int `koanf:"workers"`

	// Schema selects the feature groups of the item signature.
	Schema features.Schema `koanf:"schema"`
}

// QueryConfig configures the query service.
type QueryConfig struct {
	DefaultK  int           `koanf:"default_k"`
	MaxK      int           `koanf:"max_k"`
	CacheSize int           `koanf:"cache_size"` // 0 disables response memoisation
	CacheTTL  time.Duration `koanf:"cache_ttl"`  // 0 keeps entries for the process lifetime

	// StatsInterval is how often the server logs query counters. 0 disables it.
	StatsInterval time.Duration `koanf:"stats_interval"`
}

// Load reads configuration from all sources in order of precedence:
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
