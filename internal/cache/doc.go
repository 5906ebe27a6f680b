// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package cache provides a bounded, thread-safe LRU cache.
//
// The query service memoises responses keyed by (title, k). Because the
// served model never changes during the process lifetime, entries need no
// expiry by default; a TTL can still be set for callers that want one.
//
// Usage:
//
//	c := cache.NewLRU[string, Response](4096, 0)
//	c.Add("alien|5", resp)
//	if resp, ok := c.Get("alien|5"); ok {
//	    // Use cached value
//	}
package cache
