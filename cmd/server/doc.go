// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package main is the entry point for the Reelmatch query server.

The server loads a model produced by cmd/train and answers "movies like
this one" queries over HTTP. It never trains: a new model is picked up by
restarting the process.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("reelmatch")
	├── ModelSupervisor ("model-layer")
	│   └── Stats reporter (optional, RECOMMEND_STATS_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Startup order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Model: loaded from the configured backend (file, store or badger)
 4. Query service: bounded top-k lookups with an LRU response cache
 5. Supervisor tree and HTTP server

A model that cannot be loaded is fatal. The server refuses to start rather
than answer every query with an empty list.

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=8080               # HTTP server port
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	MODEL_BACKEND=file           # file, store or badger
	MODEL_PATH=/data/model.gob.gz # file backend
	MODEL_STORE_DIR=/data/models # store and badger backends
	MODEL_NAME=movies
	MODEL_VERSION=0              # 0 loads the latest version

	RECOMMEND_DEFAULT_K=5
	RECOMMEND_MAX_K=100
	RECOMMEND_CACHE_SIZE=4096
	RECOMMEND_STATS_INTERVAL=5m

See internal/config for the complete list.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP service first marks
the readiness check as failing, then shuts the server down within
HTTP_SHUTDOWN_TIMEOUT.

# Example Usage

	./reelmatch-train -corpus movies.json -out /data/model.gob.gz
	MODEL_PATH=/data/model.gob.gz ./reelmatch

	curl -s localhost:8080/api/v1/recommend/Heat?k=3
*/
package main
