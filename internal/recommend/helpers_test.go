// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"io"
	"testing"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend/features"
)

// scoreSchema encodes genres plus one mean-imputed numeric column.
func scoreSchema() features.Schema {
	return features.Schema{
		Categorical: []string{"genres"},
		Numeric:     []features.NumericField{{Name: "score", Impute: features.ImputeMean}},
	}
}

// threeMovies share a genre; scores 1.0, 1.1, 5.0 scale to 0, 0.025, 1.
func threeMovies() []features.Item {
	return []features.Item{
		{ID: 1, Title: "A", Tags: map[string][]string{"genres": {"Drama"}}, Numeric: map[string]float64{"score": 1.0}},
		{ID: 2, Title: "B", Tags: map[string][]string{"genres": {"Drama"}}, Numeric: map[string]float64{"score": 1.1}},
		{ID: 3, Title: "C", Tags: map[string][]string{"genres": {"Drama"}}, Numeric: map[string]float64{"score": 5.0}},
	}
}

func catalog() []features.Item {
	return []features.Item{
		{ID: 27205, Title: "Inception", Tags: map[string][]string{"genres": {"Action", "Science Fiction"}},
			Numeric: map[string]float64{"release_year": 2010, "vote_average": 8.1}, Text: "dream heist subconscious"},
		{ID: 157336, Title: "Interstellar", Tags: map[string][]string{"genres": {"Adventure", "Science Fiction"}},
			Numeric: map[string]float64{"release_year": 2014, "vote_average": 8.1}, Text: "space wormhole astronaut"},
		{ID: 155, Title: "The Dark Knight", Tags: map[string][]string{"genres": {"Action", "Crime"}},
			Numeric: map[string]float64{"release_year": 2008, "vote_average": 8.2}, Text: "gotham joker vigilante"},
		{ID: 49026, Title: "The Dark Knight Rises", Tags: map[string][]string{"genres": {"Action", "Crime"}},
			Numeric: map[string]float64{"release_year": 2012, "vote_average": 7.6}, Text: "gotham bane vigilante"},
		{ID: 13, Title: "Forrest Gump", Tags: map[string][]string{"genres": {"Comedy", "Drama", "Romance"}},
			Numeric: map[string]float64{"release_year": 1994}, Text: "life running shrimp"},
		{ID: 11, Title: "Star Wars", Tags: map[string][]string{"genres": {"Adventure", "Science Fiction"}},
			Numeric: map[string]float64{"vote_average": 8.1}, Text: "space rebellion empire"},
	}
}

func trainModel(t *testing.T, items []features.Item, schema features.Schema) *Model {
	t.Helper()

	m, err := Train(context.Background(), items, TrainConfig{Schema: schema, Workers: 2}, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	return m
}
