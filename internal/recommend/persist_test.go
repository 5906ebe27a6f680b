// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/tomtom215/reelmatch/internal/recommend/features"
	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
)

func assertSameModel(t *testing.T, got, want *Model) {
	t.Helper()

	if !slices.Equal(got.Titles(), want.Titles()) {
		t.Fatalf("Titles() = %v, want %v", got.Titles(), want.Titles())
	}
	for _, title := range want.Titles() {
		g, w := got.Recommend(title, 10), want.Recommend(title, 10)
		if !slices.Equal(titlesOf(g.Recommendations), titlesOf(w.Recommendations)) {
			t.Errorf("Recommend(%q) = %v, want %v", title, titlesOf(g.Recommendations), titlesOf(w.Recommendations))
			continue
		}
		for i := range w.Recommendations {
			if math.Abs(g.Recommendations[i].Score-w.Recommendations[i].Score) > 1e-6 {
				t.Errorf("Recommend(%q)[%d].Score = %v, want %v", title, i, g.Recommendations[i].Score, w.Recommendations[i].Score)
			}
		}
	}
	if got.Dim() != want.Dim() {
		t.Errorf("Dim() = %d, want %d", got.Dim(), want.Dim())
	}
	if !got.Info().TrainedAt.Equal(want.Info().TrainedAt) {
		t.Errorf("TrainedAt = %v, want %v", got.Info().TrainedAt, want.Info().TrainedAt)
	}
}

func TestSaveLoadModel_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := trainModel(t, catalog(), features.DefaultSchema())
	path := filepath.Join(t.TempDir(), "model.gob.gz")

	meta, err := SaveModel(ctx, path, m, storage.ModelMetadata{Name: "movies", TrainingDurationMS: 42})
	if err != nil {
		t.Fatalf("SaveModel() error = %v", err)
	}
	if meta.ItemCount != m.Len() || meta.Dimension != m.Dim() {
		t.Errorf("SaveModel() meta = %+v", meta)
	}
	if meta.Name != "movies" || meta.TrainingDurationMS != 42 {
		t.Errorf("SaveModel() meta = %+v, want caller name and duration kept", meta)
	}

	loaded, loadedMeta, err := LoadModel(ctx, path)
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}
	if loadedMeta.Checksum != meta.Checksum {
		t.Errorf("Checksum = %s, want %s", loadedMeta.Checksum, meta.Checksum)
	}
	if loadedMeta.Name != "movies" || loadedMeta.TrainingDurationMS != 42 {
		t.Errorf("LoadModel() meta = %+v, want name movies and duration 42", loadedMeta)
	}
	assertSameModel(t, loaded, m)

	t.Run("restored encoder transforms like the original", func(t *testing.T) {
		if err := loaded.CheckEncoder(m.Encoder()); err != nil {
			t.Fatalf("CheckEncoder() error = %v", err)
		}
		sample := catalog()[0]
		want, _ := m.Encoder().Transform(sample)
		got, err := loaded.Encoder().Transform(sample)
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if !slices.Equal(got, want) {
			t.Errorf("Transform() = %v, want %v", got, want)
		}
	})

	t.Run("display metadata survives", func(t *testing.T) {
		info, _ := loaded.Item(2)
		if info.ID != 155 || info.Attributes["vote_average"] != 8.2 {
			t.Errorf("Item(2) = %+v", info)
		}
	})
}

func TestLoadModel_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "corrupt.gob.gz")
	if err := os.WriteFile(corrupt, []byte{0x1f, 0x8b, 0x00}, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "missing", path: filepath.Join(dir, "absent.gob.gz")},
		{name: "corrupt", path: corrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadModel(ctx, tt.path)
			if !errors.Is(err, recerr.ErrLoad) {
				t.Errorf("LoadModel() error = %v, want LoadError", err)
			}
		})
	}
}

func TestSaveModel_IOError(t *testing.T) {
	m := trainModel(t, threeMovies(), scoreSchema())

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := SaveModel(context.Background(), filepath.Join(blocker, "model.gob.gz"), m, storage.ModelMetadata{})
	if !errors.Is(err, recerr.ErrIO) {
		t.Errorf("SaveModel() error = %v, want IOError", err)
	}
}

func TestFromSnapshot_Mismatch(t *testing.T) {
	m := trainModel(t, threeMovies(), scoreSchema())
	snap, err := ToSnapshot(m)
	if err != nil {
		t.Fatalf("ToSnapshot() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*storage.Snapshot)
	}{
		{name: "truncated matrix", mutate: func(s *storage.Snapshot) { s.Similarity = s.Similarity[:2] }},
		{name: "dimension disagrees with encoder", mutate: func(s *storage.Snapshot) { s.Dimension++ }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broken := *snap
			tt.mutate(&broken)
			if _, err := FromSnapshot(&broken); !errors.Is(err, recerr.ErrConfig) {
				t.Errorf("FromSnapshot() error = %v, want ConfigError", err)
			}
		})
	}
}

func TestSaveLoadVersion(t *testing.T) {
	ctx := context.Background()
	m := trainModel(t, catalog(), features.DefaultSchema())

	fileStore, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	badgerStore, err := storage.OpenBadgerStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}
	defer func() { _ = badgerStore.Close() }()

	backends := []struct {
		name    string
		backend storage.Backend
	}{
		{name: "directory", backend: fileStore},
		{name: "badger", backend: badgerStore},
	}

	for _, tt := range backends {
		t.Run(tt.name, func(t *testing.T) {
			for want := 1; want <= 2; want++ {
				meta, err := SaveVersion(ctx, tt.backend, "movies", m, storage.ModelMetadata{TrainingDurationMS: 5})
				if err != nil {
					t.Fatalf("SaveVersion() error = %v", err)
				}
				if meta.Version != want {
					t.Errorf("SaveVersion() version = %d, want %d", meta.Version, want)
				}
			}

			loaded, meta, err := LoadVersion(ctx, tt.backend, "movies", 0)
			if err != nil {
				t.Fatalf("LoadVersion() error = %v", err)
			}
			if meta.Version != 2 {
				t.Errorf("LoadVersion() version = %d, want 2", meta.Version)
			}
			assertSameModel(t, loaded, m)

			if _, _, err := LoadVersion(ctx, tt.backend, "shows", 0); !errors.Is(err, recerr.ErrLoad) {
				t.Errorf("LoadVersion(shows) error = %v, want LoadError", err)
			}
		})
	}
}
