// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
)

// loadModel reads the model selected by cfg. The badger database is closed
// again before returning; the server keeps the model in memory only.
//
//nolint:gocritic // ModelConfig is read once at startup
func loadModel(ctx context.Context, cfg config.ModelConfig) (*recommend.Model, *storage.ModelMetadata, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return recommend.LoadModel(ctx, cfg.Path)

	case config.BackendStore:
		store, err := storage.NewStore(cfg.StoreDir)
		if err != nil {
			return nil, nil, err
		}
		return recommend.LoadVersion(ctx, store, cfg.Name, cfg.Version)

	case config.BackendBadger:
		db, err := storage.OpenBadgerStore(cfg.StoreDir)
		if err != nil {
			return nil, nil, err
		}
		defer func() {
			if err := db.Close(); err != nil {
				logging.Warn().Err(err).Str("dir", cfg.StoreDir).Msg("Error closing model database")
			}
		}()
		return recommend.LoadVersion(ctx, db, cfg.Name, cfg.Version)

	default:
		return nil, nil, fmt.Errorf("unknown model backend %q", cfg.Backend)
	}
}
