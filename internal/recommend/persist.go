// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend/features"
	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
	"github.com/tomtom215/reelmatch/internal/recommend/similarity"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
)

// ToSnapshot captures the model state for persistence.
func ToSnapshot(m *Model) (*storage.Snapshot, error) {
	snap := &storage.Snapshot{
		Titles:     make([]string, len(m.items)),
		IDs:        make([]int64, len(m.items)),
		Attributes: make([]map[string]float64, len(m.items)),
		Similarity: m.index.Packed(),
		Dimension:  m.Dim(),
		TrainedAt:  m.trainedAt,
	}
	for i, it := range m.items {
		snap.Titles[i] = it.Title
		snap.IDs[i] = it.ID
		snap.Attributes[i] = it.Attributes
	}

	if m.encoder != nil {
		state, err := m.encoder.State()
		if err != nil {
			return nil, err
		}
		snap.Encoder = &state
	}
	return snap, nil
}

// FromSnapshot rebuilds a model from a snapshot.
func FromSnapshot(snap *storage.Snapshot) (*Model, error) {
	if err := snap.Validate(); err != nil {
		return nil, recerr.NewConfigError("from snapshot", "invalid snapshot", err)
	}

	index, err := similarity.FromPacked(len(snap.Titles), snap.Similarity)
	if err != nil {
		return nil, err
	}

	items := make([]ItemInfo, len(snap.Titles))
	for i := range items {
		items[i] = ItemInfo{ID: snap.IDs[i], Title: snap.Titles[i], Attributes: snap.Attributes[i]}
		if len(items[i].Attributes) == 0 {
			items[i].Attributes = nil
		}
	}

	opts := []ModelOption{WithTrainedAt(snap.TrainedAt)}
	if snap.Encoder != nil {
		enc, err := features.FromState(*snap.Encoder)
		if err != nil {
			return nil, err
		}
		if enc.Dim() != snap.Dimension {
			return nil, recerr.NewConfigError("from snapshot", "encoder dimension does not match snapshot", nil)
		}
		opts = append(opts, WithEncoder(enc))
	}

	return NewModel(items, index, opts...)
}

// SaveModel writes m to path with meta stored in the file header.
// Failures are IOErrors.
//
//nolint:gocritic // meta is filled in and returned
func SaveModel(ctx context.Context, path string, m *Model, meta storage.ModelMetadata) (storage.ModelMetadata, error) {
	snap, err := ToSnapshot(m)
	if err != nil {
		return meta, recerr.NewIOError(path, "snapshot model", err)
	}
	return storage.SaveFile(ctx, path, snap, meta)
}

// LoadModel reads a model written by SaveModel. Missing or corrupt files are LoadErrors.
func LoadModel(ctx context.Context, path string) (*Model, *storage.ModelMetadata, error) {
	start := time.Now()

	snap, meta, err := storage.LoadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	m, err := FromSnapshot(snap)
	if err != nil {
		return nil, nil, recerr.NewLoadError(path, "rebuild model", err)
	}

	metrics.ModelLoadDuration.Observe(time.Since(start).Seconds())
	return m, meta, nil
}

// SaveVersion stores m in a versioned backend under name and returns the
// assigned metadata.
func SaveVersion(ctx context.Context, backend storage.Backend, name string, m *Model, meta storage.ModelMetadata) (storage.ModelMetadata, error) {
	snap, err := ToSnapshot(m)
	if err != nil {
		return meta, recerr.NewIOError(name, "snapshot model", err)
	}
	return backend.Save(ctx, name, 0, snap, meta)
}

// LoadVersion loads version (0 = latest) of name from a versioned backend.
func LoadVersion(ctx context.Context, backend storage.Backend, name string, version int) (*Model, *storage.ModelMetadata, error) {
	start := time.Now()

	snap, meta, err := backend.Load(ctx, name, version)
	if err != nil {
		return nil, nil, err
	}
	m, err := FromSnapshot(snap)
	if err != nil {
		return nil, nil, recerr.NewLoadError(name, "rebuild model", err)
	}

	metrics.ModelLoadDuration.Observe(time.Since(start).Seconds())
	return m, meta, nil
}
