// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		corpusPath = flag.String("corpus", "", "movie catalog to train on (overrides CORPUS_PATH)")
		format     = flag.String("format", "", "corpus format: json or csv (default: infer from extension)")
		outPath    = flag.String("out", "", "write the model to this file (selects the file backend)")
	)
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	applyFlags(cfg, *corpusPath, *format, *outPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithNewCorrelationID(ctx)

	meta, err := run(ctx, cfg, logging.WithComponent("train"))
	if err != nil {
		stop()
		logging.Fatal().Err(err).Msg("Training failed")
	}

	logging.Info().
		Str("backend", cfg.Model.Backend).
		Str("name", meta.Name).
		Int("version", meta.Version).
		Int("items", meta.ItemCount).
		Int("dimension", meta.Dimension).
		Int64("size_bytes", meta.SizeBytes).
		Str("checksum", meta.Checksum).
		Msg("Model saved")
}

// applyFlags overrides configuration with non-empty command-line values.
func applyFlags(cfg *config.Config, corpusPath, format, outPath string) {
	if corpusPath != "" {
		cfg.Training.CorpusPath = corpusPath
	}
	if format != "" {
		cfg.Training.CorpusFormat = format
	}
	if outPath != "" {
		cfg.Model.Backend = config.BackendFile
		cfg.Model.Path = outPath
	}
}
