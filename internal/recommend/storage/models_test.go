// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package storage

import (
	"context"
	"encoding/gob"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend/features"
	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Titles: []string{"Alien", "Aliens", "Amélie"},
		IDs:    []int64{348, 679, 194},
		Attributes: []map[string]float64{
			{"release_year": 1979, "vote_average": 8.1},
			{"release_year": 1986},
			{},
		},
		Similarity: []float64{1, 0.9, 0.1, 1, 0.2, 1},
		Encoder: &features.State{
			Schema:      features.Schema{Categorical: []string{"genres"}},
			Categorical: []features.CategoricalParams{{Field: "genres", Vocabulary: []string{"Horror", "Romance"}}},
		},
		Dimension: 2,
		TrainedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Snapshot)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Snapshot) {}},
		{name: "no items", mutate: func(s *Snapshot) { s.Titles, s.IDs, s.Attributes, s.Similarity = nil, nil, nil, nil }, wantErr: true},
		{name: "id count mismatch", mutate: func(s *Snapshot) { s.IDs = s.IDs[:2] }, wantErr: true},
		{name: "attribute count mismatch", mutate: func(s *Snapshot) { s.Attributes = s.Attributes[:1] }, wantErr: true},
		{name: "matrix size mismatch", mutate: func(s *Snapshot) { s.Similarity = s.Similarity[:5] }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := testSnapshot()
			tt.mutate(snap)
			if err := snap.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveLoadFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "model.gob.gz")
	snap := testSnapshot()

	meta, err := SaveFile(ctx, path, snap, ModelMetadata{Name: "movies", TrainingDurationMS: 42})
	if err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if meta.Checksum == "" {
		t.Error("SaveFile() left Checksum empty")
	}
	if meta.ItemCount != 3 || meta.Dimension != 2 {
		t.Errorf("SaveFile() meta = %+v, want ItemCount 3 Dimension 2", meta)
	}
	if !meta.TrainedAt.Equal(snap.TrainedAt) {
		t.Errorf("TrainedAt = %v, want %v", meta.TrainedAt, snap.TrainedAt)
	}

	loaded, loadedMeta, err := LoadFile(ctx, path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !slices.Equal(loaded.Titles, snap.Titles) {
		t.Errorf("Titles = %v, want %v", loaded.Titles, snap.Titles)
	}
	if !slices.Equal(loaded.IDs, snap.IDs) {
		t.Errorf("IDs = %v, want %v", loaded.IDs, snap.IDs)
	}
	if !slices.Equal(loaded.Similarity, snap.Similarity) {
		t.Errorf("Similarity = %v, want %v", loaded.Similarity, snap.Similarity)
	}
	if got := loaded.Attributes[0]["release_year"]; got != 1979 {
		t.Errorf("Attributes[0][release_year] = %v, want 1979", got)
	}
	if loaded.Encoder == nil || !slices.Equal(loaded.Encoder.Categorical[0].Vocabulary, []string{"Horror", "Romance"}) {
		t.Errorf("Encoder = %+v, want genres vocabulary preserved", loaded.Encoder)
	}
	if loadedMeta.Checksum != meta.Checksum || loadedMeta.TrainingDurationMS != 42 {
		t.Errorf("loaded meta = %+v, want %+v", loadedMeta, meta)
	}

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".*.tmp"))
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("temporary files left behind: %v", matches)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.gob.gz")
	if err := os.WriteFile(garbage, []byte("not a model"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tampered := filepath.Join(dir, "tampered.gob.gz")
	if _, err := SaveFile(ctx, tampered, testSnapshot(), ModelMetadata{}); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	rewriteChecksum(t, tampered, "0000")

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.gob.gz")},
		{name: "undecodable content", path: garbage},
		{name: "checksum mismatch", path: tampered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadFile(ctx, tt.path)
			if !errors.Is(err, recerr.ErrLoad) {
				t.Errorf("LoadFile() error = %v, want LoadError", err)
			}
		})
	}
}

func rewriteChecksum(t *testing.T, path, checksum string) {
	t.Helper()

	f, err := os.Open(path) //nolint:gosec // test file
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	var sf storedFile
	err = gob.NewDecoder(f).Decode(&sf)
	_ = f.Close()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	sf.Metadata.Checksum = checksum
	out, err := os.Create(path) //nolint:gosec // test file
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer func() { _ = out.Close() }()
	if err := gob.NewEncoder(out).Encode(sf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
}

func TestSaveFile_Errors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Run("unwritable directory", func(t *testing.T) {
		_, err := SaveFile(context.Background(), filepath.Join(blocker, "model.gob.gz"), testSnapshot(), ModelMetadata{})
		if !errors.Is(err, recerr.ErrIO) {
			t.Errorf("SaveFile() error = %v, want IOError", err)
		}
	})

	t.Run("invalid snapshot", func(t *testing.T) {
		_, err := SaveFile(context.Background(), filepath.Join(dir, "m.gob.gz"), &Snapshot{}, ModelMetadata{})
		if !errors.Is(err, recerr.ErrIO) {
			t.Errorf("SaveFile() error = %v, want IOError", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := SaveFile(ctx, filepath.Join(dir, "m.gob.gz"), testSnapshot(), ModelMetadata{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("SaveFile() error = %v, want context.Canceled", err)
		}
	})
}
