// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config provides centralized configuration management for Reelmatch.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. Later layers win.

# Configuration File

The file is read from CONFIG_PATH when set, otherwise from the first of
config.yaml, config.yml, /etc/reelmatch/config.yaml, /etc/reelmatch/config.yml
that exists:

	server:
	  port: 8080
	  timeout: 10s
	model:
	  backend: store
	  store_dir: /data/reelmatch/models
	  name: movies
	training:
	  corpus_path: /data/reelmatch/tmdb_5000_movies.json
	  schema:
	    categorical: [genres]
	    numeric:
	      - {name: release_year, impute: median}
	      - {name: vote_average, impute: mean}
	    text: {enabled: true, max_features: 10000, min_token_length: 2}
	query:
	  default_k: 5
	  max_k: 100
	  cache_size: 4096
	  stats_interval: 5m

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT: Listen address (default: 0.0.0.0:8080)
  - HTTP_TIMEOUT: Per-request handler timeout (default: 10s)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - ENVIRONMENT: development, staging or production

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW: Per-IP limit (default: 100 per 1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include file:line

Model storage:
  - MODEL_BACKEND: file, store or badger (default: file)
  - MODEL_PATH: Snapshot file for the file backend
  - MODEL_STORE_DIR, MODEL_NAME, MODEL_VERSION: Versioned backends (version 0 = latest)
  - MODEL_KEEP_VERSIONS: Versions kept by cmd/train on the store backend

Training:
  - CORPUS_PATH, CORPUS_FORMAT: Catalog to train on (json or csv)
  - TRAIN_WORKERS: Parallel encoding workers (0 = GOMAXPROCS)
  - TRAIN_CATEGORICAL_FIELDS: Comma-separated multi-hot fields
  - TRAIN_TEXT_ENABLED, TRAIN_TEXT_MAX_FEATURES, TRAIN_TEXT_MIN_TOKEN_LENGTH

Query service:
  - RECOMMEND_DEFAULT_K: Recommendations when a request asks for 0 (default: 5)
  - RECOMMEND_MAX_K: Upper bound per request (default: 100)
  - RECOMMEND_CACHE_SIZE, RECOMMEND_CACHE_TTL: Response memoisation
  - RECOMMEND_STATS_INTERVAL: Period of the query stats log line (0 = off)

Numeric schema fields can only be set from the YAML file.

# Thread Safety

The Config struct is immutable after Load() returns.
*/
package config
