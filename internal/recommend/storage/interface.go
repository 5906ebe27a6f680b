// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package storage

import "context"

// Backend is a versioned snapshot store. Store and BadgerStore implement it.
type Backend interface {
	// Save stores snap under name; version <= 0 assigns the next version.
	Save(ctx context.Context, name string, version int, snap *Snapshot, meta ModelMetadata) (ModelMetadata, error)

	// Load returns a snapshot by name and version; version 0 is the latest.
	Load(ctx context.Context, name string, version int) (*Snapshot, *ModelMetadata, error)

	GetLatestVersion(name string) (int, bool)
	ListModels(ctx context.Context) ([]ModelMetadata, error)
}

var (
	_ Backend = (*Store)(nil)
	_ Backend = (*BadgerStore)(nil)
)
