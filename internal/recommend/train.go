// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend/features"
	"github.com/tomtom215/reelmatch/internal/recommend/similarity"
)

// Train fits an encoder on items, encodes them, and builds the similarity
// model. Row i of the model is items[i].
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Train(ctx context.Context, items []features.Item, cfg TrainConfig, logger zerolog.Logger) (*Model, error) {
	start := time.Now()
	logger = logger.With().Str("component", "train").Logger()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	enc, err := features.NewEncoder(cfg.Schema)
	if err != nil {
		return nil, err
	}
	if err := enc.Fit(items); err != nil {
		return nil, err
	}
	logger.Info().
		Int("items", len(items)).
		Int("dimension", enc.Dim()).
		Dur("elapsed", time.Since(start)).
		Msg("encoder fitted")

	vectors, err := enc.TransformAll(ctx, items, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("transform corpus: %w", err)
	}

	buildStart := time.Now()
	index, err := similarity.Build(vectors)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int("rows", index.Len()).
		Dur("elapsed", time.Since(buildStart)).
		Msg("similarity matrix built")

	infos := make([]ItemInfo, len(items))
	for i := range items {
		infos[i] = itemInfo(&items[i])
	}

	model, err := NewModel(infos, index, WithEncoder(enc), WithTrainedAt(time.Now().UTC()))
	if err != nil {
		return nil, err
	}

	if dup := model.Info().DuplicateTitles; dup > 0 {
		logger.Warn().Int("duplicates", dup).Msg("duplicate titles resolve to their first occurrence")
	}

	elapsed := time.Since(start)
	metrics.TrainingDuration.Observe(elapsed.Seconds())
	logger.Info().Dur("elapsed", elapsed).Msg("training complete")

	return model, nil
}

// itemInfo keeps the finite numeric attributes of it for display.
func itemInfo(it *features.Item) ItemInfo {
	info := ItemInfo{ID: it.ID, Title: it.Title}
	for k, v := range it.Numeric {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if info.Attributes == nil {
			info.Attributes = make(map[string]float64, len(it.Numeric))
		}
		info.Attributes[k] = v
	}
	return info
}
