// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("model_backend", cfg.Model.Backend).
		Msg("Starting Reelmatch")

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	model, meta, err := loadModel(ctx, cfg.Model)
	if err != nil {
		logging.Fatal().Err(err).Str("backend", cfg.Model.Backend).Msg("Failed to load model")
	}
	info := model.Info()
	logging.Info().
		Str("name", meta.Name).
		Int("version", meta.Version).
		Int("items", info.Items).
		Int("dimension", info.Dimension).
		Int("duplicate_titles", info.DuplicateTitles).
		Time("trained_at", info.TrainedAt).
		Msg("Model loaded")

	queryService, err := recommend.NewQueryService(model, recommend.QueryConfig{
		DefaultK:  cfg.Query.DefaultK,
		MaxK:      cfg.Query.MaxK,
		CacheSize: cfg.Query.CacheSize,
		CacheTTL:  cfg.Query.CacheTTL,
	}, logging.WithComponent("query"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create query service")
	}

	handler := api.NewHandler(queryService)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)), cfg.Server.Timeout)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout + treeCfg.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Query.StatsInterval > 0 {
		tree.AddModelService(services.NewStatsReporterService(queryService, cfg.Query.StatsInterval, logging.WithComponent("stats")))
	}

	httpService := services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout)
	httpService.OnShutdown(func() { handler.SetReady(false) })
	tree.AddAPIService(httpService)
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	stop()

	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Reelmatch stopped gracefully")
}
