// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package storage provides persistence for trained recommender models.
//
// A model is reduced to a Snapshot (titles, IDs, display attributes, the
// packed similarity matrix, and the fitted encoder state) which is written
// in a private format:
//
//	structure:
//	  - Metadata (ModelMetadata)
//	  - CompressedData (gzip-compressed gob-encoded Snapshot)
//
// Metadata.Checksum is the SHA-256 of the uncompressed gob bytes and is
// verified on every load. The format is not meant to be read by other tools.
//
// # Backends
//
// SaveFile and LoadFile handle a single snapshot file. Writes go to a
// temporary sibling that is renamed into place.
//
// Store keeps numbered versions in a directory:
//
//	filename: {name}_v{version}.gob.gz
//
// BadgerStore keeps the same encoded bytes in an embedded BadgerDB under
// keys of the form model/{name}/v{version}.
//
// # Usage Example
//
//	store, err := storage.NewStore("/data/models")
//	if err != nil {
//	    return err
//	}
//	meta, err := store.Save(ctx, "movies", 0, snap, storage.ModelMetadata{})
//	...
//	snap, meta, err := store.Load(ctx, "movies", 0) // 0 = latest version
//
// # Errors
//
// Write failures are recerr.IOError; missing or corrupt snapshots are
// recerr.LoadError.
package storage
