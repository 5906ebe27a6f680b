// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package storage

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
)

// SaveFile writes snap to path. The file is written to a temporary sibling and
// renamed into place, so readers never observe a partial snapshot.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func SaveFile(ctx context.Context, path string, snap *Snapshot, meta ModelMetadata) (ModelMetadata, error) {
	if err := ctx.Err(); err != nil {
		return meta, recerr.NewIOError(path, "save canceled", err)
	}
	if err := snap.Validate(); err != nil {
		return meta, recerr.NewIOError(path, "refusing to save invalid snapshot", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return meta, recerr.NewIOError(path, "create directory", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return meta, recerr.NewIOError(path, "create temp file", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() //nolint:errcheck // no-op after a successful rename

	w := bufio.NewWriter(tmp)
	meta, err = encode(w, snap, meta)
	if err == nil {
		err = w.Flush()
	}
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return meta, recerr.NewIOError(path, "write snapshot", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return meta, recerr.NewIOError(path, "rename snapshot into place", err)
	}
	return meta, nil
}

// LoadFile reads and verifies a snapshot written by SaveFile.
func LoadFile(ctx context.Context, path string) (*Snapshot, *ModelMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, recerr.NewLoadError(path, "load canceled", err)
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, recerr.NewLoadError(path, "snapshot not found", err)
		}
		return nil, nil, recerr.NewLoadError(path, "open snapshot", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	snap, meta, err := decode(bufio.NewReader(f))
	if err != nil {
		return nil, nil, recerr.NewLoadError(path, "corrupt snapshot", err)
	}
	return snap, meta, nil
}
