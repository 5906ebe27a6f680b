// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics provides Prometheus instrumentation for Reelmatch.

All collectors are registered with the default registry through promauto and
exposed by the API at /metrics.

# Metric Categories

API (api_*):
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Recommendations (recommend_*):
  - recommend_queries_total{outcome}: "found" or "not_found"
  - recommend_query_duration_seconds
  - recommend_cache_hits_total, recommend_cache_misses_total

Model (model_*):
  - model_items, model_signature_dimension: set once when the query service starts
  - model_load_duration_seconds
  - model_training_duration_seconds

# Example Queries

	# p99 query latency
	histogram_quantile(0.99, rate(recommend_query_duration_seconds_bucket[5m]))

	# share of queries for unknown titles
	rate(recommend_queries_total{outcome="not_found"}[5m])
	  / rate(recommend_queries_total[5m])

	# cache hit rate
	rate(recommend_cache_hits_total[5m])
	  / (rate(recommend_cache_hits_total[5m]) + rate(recommend_cache_misses_total[5m]))
*/
package metrics
