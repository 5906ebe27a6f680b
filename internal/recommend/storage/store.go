// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
)

const modelExt = ".gob.gz"

// Store keeps versioned snapshots in a directory as {name}_v{version}.gob.gz.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// latest version per model name
	versions map[string]int
}

// NewStore creates a store rooted at baseDir, creating the directory if needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return nil, recerr.NewIOError(baseDir, "create storage directory", err)
	}

	s := &Store{
		baseDir:  baseDir,
		versions: make(map[string]int),
	}

	all, err := s.scanVersions()
	if err != nil {
		return nil, recerr.NewLoadError(baseDir, "scan existing models", err)
	}
	for name, versions := range all {
		s.versions[name] = versions[0]
	}

	return s, nil
}

// scanVersions lists every stored version per name, newest first.
func (s *Store) scanVersions() (map[string][]int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, version, ok := parseModelFilename(entry.Name())
		if !ok {
			continue
		}
		out[name] = append(out[name], version)
	}
	for name := range out {
		sort.Sort(sort.Reverse(sort.IntSlice(out[name])))
	}
	return out, nil
}

// parseModelFilename splits "movies_v3.gob.gz" into ("movies", 3).
func parseModelFilename(filename string) (name string, version int, ok bool) {
	base, found := strings.CutSuffix(filename, modelExt)
	if !found {
		return "", 0, false
	}
	idx := strings.LastIndex(base, "_v")
	if idx <= 0 {
		return "", 0, false
	}
	version, err := strconv.Atoi(base[idx+2:])
	if err != nil || version < 1 {
		return "", 0, false
	}
	return base[:idx], version, true
}

// Save stores snap under name. version <= 0 assigns the next version.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, name string, version int, snap *Snapshot, meta ModelMetadata) (ModelMetadata, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return meta, recerr.NewConfigError("save", fmt.Sprintf("invalid model name %q", name), nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if version <= 0 {
		version = s.versions[name] + 1
	}
	meta.Name = name
	meta.Version = version

	meta, err := SaveFile(ctx, s.modelPath(name, version), snap, meta)
	if err != nil {
		return meta, err
	}

	if version > s.versions[name] {
		s.versions[name] = version
	}
	return meta, nil
}

// Load loads a snapshot by name and version. Version 0 loads the latest.
func (s *Store) Load(ctx context.Context, name string, version int) (*Snapshot, *ModelMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		var ok bool
		version, ok = s.versions[name]
		if !ok {
			return nil, nil, recerr.NewLoadError(s.baseDir, fmt.Sprintf("no model found for %s", name), nil)
		}
	}

	return LoadFile(ctx, s.modelPath(name, version))
}

// GetLatestVersion returns the latest version number for a model.
func (s *Store) GetLatestVersion(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	version, ok := s.versions[name]
	return version, ok
}

// ListModels returns metadata for the latest version of every stored model,
// sorted by name. Unreadable files are skipped.
func (s *Store) ListModels(ctx context.Context) ([]ModelMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	models := make([]ModelMetadata, 0, len(s.versions))
	for name, version := range s.versions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f, err := os.Open(s.modelPath(name, version)) //nolint:gosec // filename is constructed from trusted name parameter
		if err != nil {
			continue
		}
		meta, err := readMetadata(f)
		_ = f.Close() //nolint:errcheck // error on close after read is not actionable
		if err != nil {
			continue
		}
		models = append(models, *meta)
	}

	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models, nil
}

// Delete removes a specific model version.
func (s *Store) Delete(ctx context.Context, name string, version int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.modelPath(name, version)); err != nil {
		return recerr.NewIOError(s.modelPath(name, version), "delete model", err)
	}

	if s.versions[name] != version {
		return nil
	}

	all, err := s.scanVersions()
	if err != nil {
		return recerr.NewIOError(s.baseDir, "read directory", err)
	}
	if remaining := all[name]; len(remaining) > 0 {
		s.versions[name] = remaining[0]
	} else {
		delete(s.versions, name)
	}
	return nil
}

// Prune removes old versions of name, keeping the latest keepVersions (at least 1).
// It returns the number of files removed.
func (s *Store) Prune(ctx context.Context, name string, keepVersions int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keepVersions < 1 {
		keepVersions = 1
	}
	if _, ok := s.versions[name]; !ok {
		return 0, nil
	}

	all, err := s.scanVersions()
	if err != nil {
		return 0, recerr.NewIOError(s.baseDir, "read directory", err)
	}

	removed := 0
	versions := all[name]
	for i := keepVersions; i < len(versions); i++ {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := os.Remove(s.modelPath(name, versions[i])); err == nil {
			removed++
		}
	}
	return removed, nil
}

func (s *Store) modelPath(name string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d%s", name, version, modelExt))
}
