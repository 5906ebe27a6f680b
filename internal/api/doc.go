// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api exposes the recommendation query service over HTTP.

Routes:

	POST /api/v1/recommend           {"movieTitle": "Inception", "topK": 5}
	GET  /api/v1/recommend/{title}   ?k=5&details=true
	GET  /api/v1/model               model summary, query limits, service counters
	GET  /health/live                liveness check
	GET  /health/ready               readiness check (503 until a model is served)
	GET  /metrics                    Prometheus exposition

Every JSON endpoint answers with the same envelope:

	{
	  "success": true,
	  "data": {"movieTitle": "Inception", "found": true, "recommendations": [...]},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 0}
	}

Errors set success to false and fill error{code, message, details, request_id}.
Request validation failures use code VALIDATION_FAILED with status 400. An
unknown title is not an error: the response is 200 with found=false and an
empty recommendation list.

Middleware, outermost first: request ID with logging context, RealIP, access
log, Recoverer, CORS (go-chi/cors), then for /api/v1 only: rate limiting
(go-chi/httprate, keyed by client IP), security headers, Prometheus
instrumentation, per-request timeout and gzip compression.

Usage:

	handler := api.NewHandler(service)
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security))
	srv := &http.Server{
	    Addr:    cfg.Server.Addr(),
	    Handler: api.NewRouter(handler, mw, cfg.Server.Timeout).SetupChi(),
	}
*/
package api
