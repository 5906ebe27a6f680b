// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
)

// Key layout: model/{name}/v{version}
const badgerKeyPrefix = "model/"

// BadgerStore keeps versioned snapshots in an embedded BadgerDB.
// Values use the same encoding as snapshot files.
type BadgerStore struct {
	db  *badger.DB
	dir string
}

// OpenBadgerStore opens (or creates) a BadgerDB at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, recerr.NewLoadError(dir, "open badger store", err)
	}
	return &BadgerStore{db: db, dir: dir}, nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func badgerKey(name string, version int) []byte {
	return []byte(fmt.Sprintf("%s%s/v%d", badgerKeyPrefix, name, version))
}

func badgerNamePrefix(name string) []byte {
	return []byte(badgerKeyPrefix + name + "/v")
}

// parseBadgerKey splits "model/movies/v3" into ("movies", 3).
func parseBadgerKey(key []byte) (string, int, bool) {
	rest, ok := strings.CutPrefix(string(key), badgerKeyPrefix)
	if !ok {
		return "", 0, false
	}
	idx := strings.LastIndex(rest, "/v")
	if idx <= 0 {
		return "", 0, false
	}
	version, err := strconv.Atoi(rest[idx+2:])
	if err != nil || version < 1 {
		return "", 0, false
	}
	return rest[:idx], version, true
}

// latestVersion scans the keys of name. Versions are compared numerically
// because v10 sorts before v2 lexically.
func latestVersion(txn *badger.Txn, name string) int {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	latest := 0
	prefix := badgerNamePrefix(name)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if n, v, ok := parseBadgerKey(it.Item().Key()); ok && n == name && v > latest {
			latest = v
		}
	}
	return latest
}

// GetLatestVersion returns the latest version number for a model.
func (s *BadgerStore) GetLatestVersion(name string) (int, bool) {
	var latest int
	_ = s.db.View(func(txn *badger.Txn) error { //nolint:errcheck // the closure never fails
		latest = latestVersion(txn, name)
		return nil
	})
	return latest, latest > 0
}

// Save stores snap under name. version <= 0 assigns the next version.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *BadgerStore) Save(ctx context.Context, name string, version int, snap *Snapshot, meta ModelMetadata) (ModelMetadata, error) {
	if name == "" || strings.Contains(name, "/") {
		return meta, recerr.NewConfigError("save", fmt.Sprintf("invalid model name %q", name), nil)
	}
	if err := ctx.Err(); err != nil {
		return meta, recerr.NewIOError(s.dir, "save canceled", err)
	}
	if err := snap.Validate(); err != nil {
		return meta, recerr.NewIOError(s.dir, "refusing to save invalid snapshot", err)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if version <= 0 {
			version = latestVersion(txn, name) + 1
		}
		meta.Name = name
		meta.Version = version

		var buf bytes.Buffer
		var err error
		if meta, err = encode(&buf, snap, meta); err != nil {
			return err
		}
		return txn.Set(badgerKey(name, version), buf.Bytes())
	})
	if err != nil {
		return meta, recerr.NewIOError(s.dir, "write snapshot", err)
	}
	return meta, nil
}

// Load loads a snapshot by name and version. Version 0 loads the latest.
func (s *BadgerStore) Load(ctx context.Context, name string, version int) (*Snapshot, *ModelMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, recerr.NewLoadError(s.dir, "load canceled", err)
	}

	var (
		snap *Snapshot
		meta *ModelMetadata
	)
	err := s.db.View(func(txn *badger.Txn) error {
		if version == 0 {
			version = latestVersion(txn, name)
			if version == 0 {
				return fmt.Errorf("no model found for %s", name)
			}
		}

		item, err := txn.Get(badgerKey(name, version))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("model %s v%d not found", name, version)
		}
		if err != nil {
			return fmt.Errorf("get model: %w", err)
		}

		return item.Value(func(val []byte) error {
			var decErr error
			snap, meta, decErr = decode(bytes.NewReader(val))
			return decErr
		})
	})
	if err != nil {
		return nil, nil, recerr.NewLoadError(s.dir, fmt.Sprintf("model %s", name), err)
	}
	return snap, meta, nil
}

// ListModels returns metadata for the latest version of every stored model,
// sorted by name.
func (s *BadgerStore) ListModels(ctx context.Context) ([]ModelMetadata, error) {
	latest := make(map[string][]byte)
	versions := make(map[string]int)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(badgerKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			name, v, ok := parseBadgerKey(item.Key())
			if !ok || v <= versions[name] {
				continue
			}
			val, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read %s: %w", item.Key(), err)
			}
			versions[name] = v
			latest[name] = val
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	models := make([]ModelMetadata, 0, len(latest))
	for _, val := range latest {
		meta, err := readMetadata(bytes.NewReader(val))
		if err != nil {
			continue
		}
		models = append(models, *meta)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models, nil
}
