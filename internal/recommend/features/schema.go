// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"fmt"

	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
)

// Item is one catalog entry as seen by the encoder.
type Item struct {
	// ID is the catalog identifier (TMDB id for movies).
	ID int64 `json:"id"`

	// Title is the lookup key. Uniqueness is assumed, not enforced.
	Title string `json:"title"`

	// Tags maps a categorical field (e.g. "genres") to its values.
	Tags map[string][]string `json:"tags,omitempty"`

	// Numeric maps a numeric field (e.g. "release_year") to its value.
	// An absent key or NaN means missing.
	Numeric map[string]float64 `json:"numeric,omitempty"`

	// Text is optional free text (overview, keywords).
	Text string `json:"text,omitempty"`
}

// ImputeStrategy selects the corpus statistic used to fill missing numeric values.
type ImputeStrategy string

// Supported imputation strategies.
const (
	ImputeMean   ImputeStrategy = "mean"
	ImputeMedian ImputeStrategy = "median"
)

// NumericField declares one numeric column of the signature.
type NumericField struct {
	Name   string         `json:"name" koanf:"name"`
	Impute ImputeStrategy `json:"impute" koanf:"impute"`
}

// TextConfig controls the TF-IDF block.
type TextConfig struct {
	// Enabled turns the text block on.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// MaxFeatures bounds the vocabulary to the most frequent terms.
	MaxFeatures int `json:"max_features" koanf:"max_features"`

	// MinTokenLength drops shorter tokens (counted in runes).
	MinTokenLength int `json:"min_token_length" koanf:"min_token_length"`
}

// Schema lists the feature groups of a signature, in output order.
type Schema struct {
	Categorical []string       `json:"categorical" koanf:"categorical"`
	Numeric     []NumericField `json:"numeric" koanf:"numeric"`
	Text        TextConfig     `json:"text" koanf:"text"`
}

// DefaultSchema mirrors the movie vectorisation: multi-hot genres, release
// year (median imputed) and rating (mean imputed), plus TF-IDF text.
func DefaultSchema() Schema {
	return Schema{
		Categorical: []string{"genres"},
		Numeric: []NumericField{
			{Name: "release_year", Impute: ImputeMedian},
			{Name: "vote_average", Impute: ImputeMean},
		},
		Text: TextConfig{
			Enabled:        true,
			MaxFeatures:    10000,
			MinTokenLength: 2,
		},
	}
}

// Validate checks the schema for structural problems.
//
//nolint:gocritic // value receiver keeps Schema usable as a plain config value
func (s Schema) Validate() error {
	if len(s.Categorical) == 0 && len(s.Numeric) == 0 && !s.Text.Enabled {
		return recerr.NewConfigError("schema", "no feature groups configured", nil)
	}

	seen := make(map[string]bool)
	for _, field := range s.Categorical {
		if field == "" {
			return recerr.NewConfigError("schema", "categorical field name is empty", nil)
		}
		if seen["c:"+field] {
			return recerr.NewConfigError("schema", fmt.Sprintf("duplicate categorical field %q", field), nil)
		}
		seen["c:"+field] = true
	}

	for _, nf := range s.Numeric {
		if nf.Name == "" {
			return recerr.NewConfigError("schema", "numeric field name is empty", nil)
		}
		if seen["n:"+nf.Name] {
			return recerr.NewConfigError("schema", fmt.Sprintf("duplicate numeric field %q", nf.Name), nil)
		}
		seen["n:"+nf.Name] = true

		switch nf.Impute {
		case ImputeMean, ImputeMedian:
		default:
			return recerr.NewConfigError("schema",
				fmt.Sprintf("numeric field %q: unknown impute strategy %q", nf.Name, nf.Impute), nil)
		}
	}

	if s.Text.Enabled {
		if s.Text.MaxFeatures < 1 {
			return recerr.NewConfigError("schema",
				fmt.Sprintf("text.max_features must be positive, got %d", s.Text.MaxFeatures), nil)
		}
		if s.Text.MinTokenLength < 0 {
			return recerr.NewConfigError("schema",
				fmt.Sprintf("text.min_token_length must be non-negative, got %d", s.Text.MinTokenLength), nil)
		}
	}

	return nil
}

// Clone returns a deep copy of the schema.
//
//nolint:gocritic // value receiver keeps Schema usable as a plain config value
func (s Schema) Clone() Schema {
	out := Schema{Text: s.Text}
	out.Categorical = append([]string(nil), s.Categorical...)
	out.Numeric = append([]NumericField(nil), s.Numeric...)
	return out
}
