// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// StatsSource is satisfied by *recommend.QueryService.
type StatsSource interface {
	Stats() recommend.QueryStats
}

// StatsReporterService periodically logs query-service counters and the
// traffic since the previous report.
type StatsReporterService struct {
	source   StatsSource
	interval time.Duration
	logger   zerolog.Logger
	name     string

	last recommend.QueryStats
}

// NewStatsReporterService creates a reporter. A non-positive interval means 5m.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStatsReporterService(source StatsSource, interval time.Duration, logger zerolog.Logger) *StatsReporterService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &StatsReporterService{
		source:   source,
		interval: interval,
		logger:   logger.With().Str("service", "stats-reporter").Logger(),
		name:     "stats-reporter",
	}
}

// Serve implements suture.Service.
func (s *StatsReporterService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.last = s.source.Stats()

	for {
		select {
		case <-ctx.Done():
			s.report()
			return ctx.Err()
		case <-ticker.C:
			s.report()
		}
	}
}

func (s *StatsReporterService) report() {
	cur := s.source.Stats()
	requests := cur.Requests - s.last.Requests
	hits := cur.CacheHits - s.last.CacheHits

	hitRatio := 0.0
	if lookups := hits + cur.CacheMisses - s.last.CacheMisses; lookups > 0 {
		hitRatio = float64(hits) / float64(lookups)
	}

	s.logger.Info().
		Int64("requests", requests).
		Int64("not_found", cur.NotFound-s.last.NotFound).
		Float64("cache_hit_ratio", hitRatio).
		Int("cache_size", cur.CacheSize).
		Int64("cache_evictions", cur.Evictions-s.last.Evictions).
		Int64("requests_total", cur.Requests).
		Msg("query stats")

	s.last = cur
}

// String implements fmt.Stringer.
func (s *StatsReporterService) String() string {
	return s.name
}
