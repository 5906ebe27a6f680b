// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package logging provides the process-wide zerolog logger for Reelmatch.
//
// JSON output is the default and suits log shippers; console output is meant
// for local development and the training CLI.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("items", n).Msg("Model loaded")
//	logging.Err(err).Str("path", path).Msg("Failed to save snapshot")
//
// Components take a child logger once and keep it:
//
//	logger := logging.WithComponent("train")
//	logger.Info().Dur("elapsed", d).Msg("Index built")
//
// # Request Context
//
// The API middleware stores the request ID in the context. Ctx returns a
// logger carrying it, so handler and service logs can be joined per request:
//
//	logging.Ctx(ctx).Debug().Str("title", title).Msg("Recommendation served")
//
// # slog Bridge
//
// NewSlogLogger adapts the zerolog logger to log/slog for libraries that
// require it (sutureslog for supervisor events).
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send(). Prefer structured fields
// over Msgf.
package logging
