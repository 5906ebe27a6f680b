// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
)

// Recommendation is one ranked neighbour of a query title.
type Recommendation struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Result is the outcome of a title query. Found is false when the title is not
// in the model; Recommendations is then empty.
type Result struct {
	Query           string           `json:"query"`
	Found           bool             `json:"found"`
	Recommendations []Recommendation `json:"recommendations"`
}

// NotFound returns the result for a title the model does not contain.
func NotFound(title string) Result {
	return Result{Query: title, Recommendations: []Recommendation{}}
}

// Err returns the DataError a not-found result stands for, or nil.
//
//nolint:gocritic // Result is small and passed by value everywhere
func (r Result) Err() error {
	if r.Found {
		return nil
	}
	return recerr.NewDataError("recommend", fmt.Sprintf("title %q not found", r.Query), nil)
}

// ItemInfo is the display metadata kept for each model row.
type ItemInfo struct {
	ID         int64              `json:"id"`
	Title      string             `json:"title"`
	Attributes map[string]float64 `json:"attributes,omitempty"`
}

// ModelInfo summarises a loaded model.
type ModelInfo struct {
	Items           int       `json:"items"`
	Dimension       int       `json:"dimension"`
	Features        int       `json:"features"`
	DuplicateTitles int       `json:"duplicate_titles"`
	TrainedAt       time.Time `json:"trained_at"`
}

// QueryStats holds QueryService counters.
type QueryStats struct {
	Requests    int64 `json:"requests"`
	NotFound    int64 `json:"not_found"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	Evictions   int64 `json:"cache_evictions"`
	CacheSize   int   `json:"cache_size"`
}
