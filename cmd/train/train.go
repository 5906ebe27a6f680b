// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/corpus"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
)

// run loads the corpus, trains a model and saves it to the configured backend.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (storage.ModelMetadata, error) {
	logger = logger.With().Str("correlation_id", logging.CorrelationIDFromContext(ctx)).Logger()
	start := time.Now()

	items, stats, err := corpus.LoadFile(ctx, cfg.Training.CorpusPath, corpus.Format(cfg.Training.CorpusFormat))
	if err != nil {
		return storage.ModelMetadata{}, fmt.Errorf("load corpus: %w", err)
	}
	logger.Info().
		Str("path", cfg.Training.CorpusPath).
		Int("records", stats.Records).
		Int("loaded", stats.Loaded).
		Int("skipped", stats.Skipped).
		Msg("Corpus loaded")
	if len(items) == 0 {
		return storage.ModelMetadata{}, recerr.NewConfigError("train", "corpus has no usable records", nil)
	}

	model, err := recommend.Train(ctx, items, recommend.TrainConfig{
		Schema:  cfg.Training.Schema,
		Workers: cfg.Training.Workers,
	}, logger)
	if err != nil {
		return storage.ModelMetadata{}, err
	}

	meta := storage.ModelMetadata{
		Name:               cfg.Model.Name,
		TrainedAt:          model.Info().TrainedAt,
		TrainingDurationMS: time.Since(start).Milliseconds(),
	}
	return save(ctx, cfg.Model, model, meta, logger)
}

// save writes model to the backend selected by cfg.
//
//nolint:gocritic // config and metadata are small and read-only
func save(ctx context.Context, cfg config.ModelConfig, model *recommend.Model, meta storage.ModelMetadata, logger zerolog.Logger) (storage.ModelMetadata, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return recommend.SaveModel(ctx, cfg.Path, model, meta)

	case config.BackendStore:
		store, err := storage.NewStore(cfg.StoreDir)
		if err != nil {
			return meta, err
		}
		saved, err := recommend.SaveVersion(ctx, store, cfg.Name, model, meta)
		if err != nil {
			return saved, err
		}
		if cfg.KeepVersions > 0 {
			pruned, err := store.Prune(ctx, cfg.Name, cfg.KeepVersions)
			if err != nil {
				logger.Warn().Err(err).Msg("Failed to prune old model versions")
			} else if pruned > 0 {
				logger.Info().Int("pruned", pruned).Int("kept", cfg.KeepVersions).Msg("Pruned old model versions")
			}
		}
		return saved, nil

	case config.BackendBadger:
		db, err := storage.OpenBadgerStore(cfg.StoreDir)
		if err != nil {
			return meta, err
		}
		saved, err := recommend.SaveVersion(ctx, db, cfg.Name, model, meta)
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = recerr.NewIOError(cfg.StoreDir, "close badger store", closeErr)
		}
		return saved, err

	default:
		return meta, fmt.Errorf("unknown model backend %q", cfg.Backend)
	}
}
