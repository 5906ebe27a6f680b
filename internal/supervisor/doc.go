// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor runs the server's long-lived services under suture v4.

Tree:

	RootSupervisor ("reelmatch")
	├── ModelSupervisor ("model-layer")
	│   └── StatsReporterService (if RECOMMEND_STATS_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff; a failing model-layer
service does not restart the HTTP server. Canceling the context passed to
Serve shuts every service down, waiting at most TreeConfig.ShutdownTimeout
per service. Supervisor events are logged through sutureslog, which takes an
*slog.Logger; logging.NewSlogLogger bridges it to the zerolog pipeline.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("supervisor exited")
	}

Service implementations live in the services subpackage.
*/
package supervisor
