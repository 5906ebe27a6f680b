// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package storage

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend/features"
)

// ModelMetadata contains information about a stored model.
type ModelMetadata struct {
	// Name is the logical model name (e.g., "movies").
	Name string `json:"name"`

	// Version is the model version (monotonically increasing per name).
	Version int `json:"version"`

	// TrainedAt is when the model was trained.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the model was saved.
	SavedAt time.Time `json:"saved_at"`

	// ItemCount is the number of catalog items.
	ItemCount int `json:"item_count"`

	// Dimension is the signature vector dimension.
	Dimension int `json:"dimension"`

	// Checksum is the SHA-256 checksum of the uncompressed snapshot.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed snapshot size in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// TrainingDurationMS is how long training took.
	TrainingDurationMS int64 `json:"training_duration_ms"`
}

// Snapshot is the serializable state of a trained recommender model.
type Snapshot struct {
	Titles     []string
	IDs        []int64
	Attributes []map[string]float64

	// Similarity is the packed upper triangle of the N×N matrix.
	Similarity []float64

	Encoder   *features.State
	Dimension int
	TrainedAt time.Time
}

// Validate checks that the per-item slices agree with each other and with the
// packed matrix.
func (s *Snapshot) Validate() error {
	n := len(s.Titles)
	if n == 0 {
		return fmt.Errorf("snapshot has no items")
	}
	if len(s.IDs) != n || len(s.Attributes) != n {
		return fmt.Errorf("snapshot has %d titles, %d ids, %d attribute rows", n, len(s.IDs), len(s.Attributes))
	}
	if want := n * (n + 1) / 2; len(s.Similarity) != want {
		return fmt.Errorf("snapshot matrix has %d values, want %d", len(s.Similarity), want)
	}
	return nil
}

// storedFile is the on-disk format for model files.
type storedFile struct {
	Metadata       ModelMetadata
	CompressedData []byte
}

// encode writes snap as a storedFile to w and returns the completed metadata.
//
//nolint:gocritic // meta is filled in and returned
func encode(w io.Writer, snap *Snapshot, meta ModelMetadata) (ModelMetadata, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return meta, fmt.Errorf("encode snapshot: %w", err)
	}
	rawData := buf.Bytes()

	hash := sha256.Sum256(rawData)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(rawData); err != nil {
		return meta, fmt.Errorf("compress snapshot: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return meta, fmt.Errorf("finalize compression: %w", err)
	}

	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now().UTC()
	meta.ItemCount = len(snap.Titles)
	meta.Dimension = snap.Dimension
	if meta.TrainedAt.IsZero() {
		meta.TrainedAt = snap.TrainedAt
	}

	sf := storedFile{Metadata: meta, CompressedData: compressed.Bytes()}
	if err := gob.NewEncoder(w).Encode(sf); err != nil {
		return meta, fmt.Errorf("write model file: %w", err)
	}
	return meta, nil
}

// readMetadata decodes only the storedFile header fields needed for listings.
func readMetadata(r io.Reader) (*ModelMetadata, error) {
	var sf storedFile
	if err := gob.NewDecoder(r).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	return &sf.Metadata, nil
}

// decode reads a storedFile from r, verifies its checksum, and decodes the snapshot.
func decode(r io.Reader) (*Snapshot, *ModelMetadata, error) {
	var sf storedFile
	if err := gob.NewDecoder(r).Decode(&sf); err != nil {
		return nil, nil, fmt.Errorf("read model file: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	rawData, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(rawData)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, nil, fmt.Errorf("checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, checksum)
	}

	var snap Snapshot
	if err := gob.NewDecoder(bytes.NewReader(rawData)).Decode(&snap); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, nil, err
	}

	return &snap, &sf.Metadata, nil
}
