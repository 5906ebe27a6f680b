// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend/features"
	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
)

func newTestService(t *testing.T, cfg QueryConfig) *QueryService {
	t.Helper()

	svc, err := NewQueryService(trainModel(t, catalog(), features.DefaultSchema()), cfg, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewQueryService() error = %v", err)
	}
	return svc
}

func TestQueryConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     QueryConfig
		wantErr bool
	}{
		{name: "defaults", cfg: DefaultQueryConfig()},
		{name: "no cache", cfg: QueryConfig{DefaultK: 5, MaxK: 5}},
		{name: "zero default", cfg: QueryConfig{DefaultK: 0, MaxK: 5}, wantErr: true},
		{name: "max below default", cfg: QueryConfig{DefaultK: 5, MaxK: 4}, wantErr: true},
		{name: "negative cache", cfg: QueryConfig{DefaultK: 5, MaxK: 10, CacheSize: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewQueryService_NilModel(t *testing.T) {
	_, err := NewQueryService(nil, DefaultQueryConfig(), logging.NewTestLogger(io.Discard))
	if !errors.Is(err, recerr.ErrConfig) {
		t.Errorf("NewQueryService(nil) error = %v, want ConfigError", err)
	}
}

func TestQueryService_Recommend(t *testing.T) {
	svc := newTestService(t, QueryConfig{DefaultK: 2, MaxK: 3, CacheSize: 16})
	ctx := context.Background()

	tests := []struct {
		name      string
		req       RecommendRequest
		wantFound bool
		wantLen   int
	}{
		{name: "default k", req: RecommendRequest{MovieTitle: "Inception"}, wantFound: true, wantLen: 2},
		{name: "explicit k", req: RecommendRequest{MovieTitle: "Inception", TopK: 1}, wantFound: true, wantLen: 1},
		{name: "k capped", req: RecommendRequest{MovieTitle: "Inception", TopK: 50}, wantFound: true, wantLen: 3},
		{name: "unknown title", req: RecommendRequest{MovieTitle: "Nonexistent Movie", TopK: 5}, wantFound: false, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := svc.Recommend(ctx, tt.req)
			if resp.MovieTitle != tt.req.MovieTitle {
				t.Errorf("MovieTitle = %q, want %q", resp.MovieTitle, tt.req.MovieTitle)
			}
			if resp.Found != tt.wantFound {
				t.Errorf("Found = %v, want %v", resp.Found, tt.wantFound)
			}
			if resp.Recommendations == nil || len(resp.Recommendations) != tt.wantLen {
				t.Errorf("Recommendations = %v, want %d entries", resp.Recommendations, tt.wantLen)
			}
			if resp.Details != nil {
				t.Errorf("Details = %v, want nil without details flag", resp.Details)
			}
		})
	}

	stats := svc.Stats()
	if stats.Requests != 4 || stats.NotFound != 1 {
		t.Errorf("Stats() = %+v, want 4 requests, 1 not found", stats)
	}
}

func TestQueryService_Details(t *testing.T) {
	svc := newTestService(t, DefaultQueryConfig())

	resp := svc.Recommend(context.Background(), RecommendRequest{MovieTitle: "The Dark Knight", TopK: 1, Details: true})
	if len(resp.Details) != 1 {
		t.Fatalf("len(Details) = %d, want 1", len(resp.Details))
	}
	d := resp.Details[0]
	if d.Title != "The Dark Knight Rises" || d.ID != 49026 || d.Attributes["release_year"] != 2012 {
		t.Errorf("Details[0] = %+v", d)
	}
	if d.Recommendation != resp.Recommendations[0] {
		t.Errorf("Details[0].Recommendation = %+v, want %+v", d.Recommendation, resp.Recommendations[0])
	}
}

func TestQueryService_Cache(t *testing.T) {
	svc := newTestService(t, QueryConfig{DefaultK: 5, MaxK: 10, CacheSize: 8})
	ctx := context.Background()

	first := svc.Recommend(ctx, RecommendRequest{MovieTitle: "Interstellar"})
	// TopK 5 resolves to the same key as the default.
	second := svc.Recommend(ctx, RecommendRequest{MovieTitle: "Interstellar", TopK: 5})

	stats := svc.Stats()
	if stats.CacheHits != 1 || stats.CacheMisses != 1 || stats.CacheSize != 1 {
		t.Errorf("Stats() = %+v, want 1 hit, 1 miss, size 1", stats)
	}
	if len(first.Recommendations) != len(second.Recommendations) || first.Recommendations[0] != second.Recommendations[0] {
		t.Errorf("cached response = %v, want %v", second.Recommendations, first.Recommendations)
	}

	// Callers mutating a response must not corrupt the cache.
	second.Recommendations[0].Title = "mutated"
	third := svc.Recommend(ctx, RecommendRequest{MovieTitle: "Interstellar"})
	if third.Recommendations[0].Title == "mutated" {
		t.Error("cached response was modified through a returned slice")
	}
}

func TestQueryService_StatsFromCache(t *testing.T) {
	svc := newTestService(t, QueryConfig{DefaultK: 2, MaxK: 5, CacheSize: 1})
	ctx := context.Background()

	svc.Recommend(ctx, RecommendRequest{MovieTitle: "Interstellar"})
	svc.Recommend(ctx, RecommendRequest{MovieTitle: "Inception"})
	svc.Recommend(ctx, RecommendRequest{MovieTitle: "Inception"})

	stats := svc.Stats()
	want := QueryStats{Requests: 3, CacheHits: 1, CacheMisses: 2, Evictions: 1, CacheSize: 1}
	if stats != want {
		t.Errorf("Stats() = %+v, want %+v", stats, want)
	}
}

func TestQueryService_NonPositiveTopK(t *testing.T) {
	svc := newTestService(t, QueryConfig{DefaultK: 2, MaxK: 5})
	ctx := context.Background()

	for _, k := range []int{0, -1, -100} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			resp := svc.Recommend(ctx, RecommendRequest{MovieTitle: "Inception", TopK: k})
			if !resp.Found || len(resp.Recommendations) != 2 {
				t.Errorf("Recommend(TopK=%d) = found %v, %d results, want found with 2", k, resp.Found, len(resp.Recommendations))
			}
		})
	}
}

func TestQueryService_DetailsIsolation(t *testing.T) {
	tests := []struct {
		name      string
		cacheSize int
	}{
		{name: "cached", cacheSize: 8},
		{name: "uncached", cacheSize: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, QueryConfig{DefaultK: 1, MaxK: 5, CacheSize: tt.cacheSize})
			req := RecommendRequest{MovieTitle: "The Dark Knight", TopK: 1, Details: true}

			first := svc.Recommend(context.Background(), req)
			first.Details[0].Attributes["release_year"] = 1900
			delete(first.Details[0].Attributes, "runtime")

			second := svc.Recommend(context.Background(), req)
			if got := second.Details[0].Attributes["release_year"]; got != 2012 {
				t.Errorf("release_year after caller mutation = %v, want 2012", got)
			}
			row, _ := svc.Model().Lookup("The Dark Knight Rises")
			info, _ := svc.Model().Item(row)
			if got := info.Attributes["release_year"]; got != 2012 {
				t.Errorf("model release_year = %v, want 2012", got)
			}
		})
	}
}

func TestQueryService_NoCache(t *testing.T) {
	svc := newTestService(t, QueryConfig{DefaultK: 5, MaxK: 10})

	svc.Recommend(context.Background(), RecommendRequest{MovieTitle: "Interstellar"})
	svc.Recommend(context.Background(), RecommendRequest{MovieTitle: "Interstellar"})

	if stats := svc.Stats(); stats.CacheHits != 0 || stats.CacheMisses != 0 || stats.CacheSize != 0 {
		t.Errorf("Stats() = %+v, want no cache activity", stats)
	}
}

func TestQueryService_Concurrent(t *testing.T) {
	svc := newTestService(t, QueryConfig{DefaultK: 3, MaxK: 5, CacheSize: 2})
	titles := svc.Model().Titles()

	want := make(map[string][]string, len(titles))
	for _, title := range titles {
		want[title] = titlesOf(svc.Model().Recommend(title, 3).Recommendations)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				title := titles[(g+i)%len(titles)]
				resp := svc.Recommend(context.Background(), RecommendRequest{MovieTitle: title})
				got := titlesOf(resp.Recommendations)
				for j := range got {
					if got[j] != want[title][j] {
						t.Errorf("Recommend(%q) = %v, want %v", title, got, want[title])
						return
					}
				}
			}
		}(g)
	}
	wg.Wait()

	if got := svc.Stats().Requests; got != 800 {
		t.Errorf("Requests = %d, want 800", got)
	}
}
