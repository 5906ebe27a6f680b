// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package services adapts server components to suture.Service.

Each wrapper turns a component lifecycle into Serve(ctx) error, returns when
ctx is canceled, and implements fmt.Stringer so supervisor events name it.

HTTPServerService wraps *http.Server. ListenAndServe runs in a goroutine;
cancellation runs an optional drain hook and then Shutdown with a bounded
timeout. http.ErrServerClosed is treated as a clean exit.

StatsReporterService logs the query service counters on a fixed interval,
with per-interval deltas and the cache hit ratio, plus one final report on
shutdown.
*/
package services
