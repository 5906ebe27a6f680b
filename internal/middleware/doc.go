// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides HTTP instrumentation shared by the API router.

PrometheusMetrics wraps a handler and records:

  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

The endpoint label is the chi route pattern, so a request for
/api/v1/recommend/Inception is counted under /api/v1/recommend/{title}.
Requests that never reach a chi route are labelled "unmatched".

Usage:

	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)

CORS, rate limiting, request IDs and security headers live in internal/api,
next to the router that composes them.
*/
package middleware
