// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"maps"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
)

// RecommendRequest asks for titles similar to MovieTitle.
// TopK 0 or below means the configured default.
type RecommendRequest struct {
	MovieTitle string `json:"movieTitle" validate:"required,max=512"`
	TopK       int    `json:"topK" validate:"min=0"`

	// Details adds each recommendation's ID and attributes to the response.
	Details bool `json:"details,omitempty"`
}

// RecommendationDetail is a recommendation with its display metadata.
type RecommendationDetail struct {
	Recommendation
	ID         int64              `json:"id"`
	Attributes map[string]float64 `json:"attributes,omitempty"`
}

// RecommendResponse is the query-service answer. Found is false for unknown
// titles and Recommendations is then empty.
type RecommendResponse struct {
	MovieTitle      string                 `json:"movieTitle"`
	Found           bool                   `json:"found"`
	Recommendations []Recommendation       `json:"recommendations"`
	Details         []RecommendationDetail `json:"details,omitempty"`
}

type cacheKey struct {
	title   string
	k       int
	details bool
}

// QueryService serves one model for the lifetime of the process.
// It is safe for concurrent use.
type QueryService struct {
	model  *Model
	config QueryConfig
	logger zerolog.Logger

	cache *cache.LRU[cacheKey, RecommendResponse]

	requestCount  atomic.Int64
	notFoundCount atomic.Int64
}

// NewQueryService wraps model. The model must not be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewQueryService(model *Model, cfg QueryConfig, logger zerolog.Logger) (*QueryService, error) {
	if model == nil {
		return nil, recerr.NewConfigError("query service", "model is required", nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &QueryService{
		model:  model,
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.CacheSize > 0 {
		s.cache = cache.NewLRU[cacheKey, RecommendResponse](cfg.CacheSize, cfg.CacheTTL)
	}

	info := model.Info()
	metrics.ModelItems.Set(float64(info.Items))
	metrics.ModelDimension.Set(float64(info.Dimension))

	s.logger.Info().
		Int("items", info.Items).
		Int("dimension", info.Dimension).
		Int("default_k", cfg.DefaultK).
		Int("max_k", cfg.MaxK).
		Msg("query service ready")

	return s, nil
}

// Model returns the served model.
func (s *QueryService) Model() *Model {
	return s.model
}

// Config returns the service configuration.
func (s *QueryService) Config() QueryConfig {
	return s.config
}

// resolveK applies the default and the cap. Non-positive values select
// the default.
func (s *QueryService) resolveK(k int) int {
	if k <= 0 {
		return s.config.DefaultK
	}
	return min(k, s.config.MaxK)
}

// Recommend answers a request. It never fails: unknown titles produce
// Found=false with an empty list.
//
//nolint:gocritic // req is small and read-only
func (s *QueryService) Recommend(ctx context.Context, req RecommendRequest) RecommendResponse {
	start := time.Now()
	s.requestCount.Add(1)

	k := s.resolveK(req.TopK)
	key := cacheKey{title: req.MovieTitle, k: k, details: req.Details}

	if s.cache != nil {
		if resp, ok := s.cache.Get(key); ok {
			metrics.RecommendCacheHits.Inc()
			s.observe(resp, start)
			return copyResponse(resp)
		}
		metrics.RecommendCacheMisses.Inc()
	}

	resp := s.compute(req.MovieTitle, k, req.Details)
	if s.cache != nil {
		s.cache.Add(key, resp)
	}

	s.observe(resp, start)
	logging.Ctx(ctx).Debug().
		Str("component", "recommend").
		Str("title", req.MovieTitle).
		Int("k", k).
		Bool("found", resp.Found).
		Int("returned", len(resp.Recommendations)).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation complete")

	return copyResponse(resp)
}

func (s *QueryService) compute(title string, k int, details bool) RecommendResponse {
	neighbors, err := s.model.Neighbors(title, k)
	if err != nil {
		return RecommendResponse{MovieTitle: title, Recommendations: []Recommendation{}}
	}

	resp := RecommendResponse{
		MovieTitle:      title,
		Found:           true,
		Recommendations: make([]Recommendation, len(neighbors)),
	}
	if details {
		resp.Details = make([]RecommendationDetail, len(neighbors))
	}
	for i, nb := range neighbors {
		info, _ := s.model.Item(nb.Row)
		rec := Recommendation{Title: info.Title, Score: nb.Score}
		resp.Recommendations[i] = rec
		if details {
			resp.Details[i] = RecommendationDetail{Recommendation: rec, ID: info.ID, Attributes: maps.Clone(info.Attributes)}
		}
	}
	return resp
}

//nolint:gocritic // resp passed by value for immutability
func (s *QueryService) observe(resp RecommendResponse, start time.Time) {
	outcome := "found"
	if !resp.Found {
		outcome = "not_found"
		s.notFoundCount.Add(1)
	}
	metrics.RecommendQueries.WithLabelValues(outcome).Inc()
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())
}

// copyResponse returns a response whose slices and maps the caller may modify
// without touching the cached copy.
//
//nolint:gocritic // resp passed by value for immutability
func copyResponse(resp RecommendResponse) RecommendResponse {
	out := resp
	out.Recommendations = append([]Recommendation(nil), resp.Recommendations...)
	if out.Recommendations == nil {
		out.Recommendations = []Recommendation{}
	}
	if resp.Details != nil {
		out.Details = make([]RecommendationDetail, len(resp.Details))
		for i, d := range resp.Details {
			d.Attributes = maps.Clone(d.Attributes)
			out.Details[i] = d
		}
	}
	return out
}

// Stats returns the service counters.
func (s *QueryService) Stats() QueryStats {
	st := QueryStats{
		Requests: s.requestCount.Load(),
		NotFound: s.notFoundCount.Load(),
	}
	if s.cache != nil {
		cs := s.cache.Stats()
		st.CacheHits = cs.Hits
		st.CacheMisses = cs.Misses
		st.Evictions = cs.Evictions
		st.CacheSize = cs.Size
	}
	return st
}
