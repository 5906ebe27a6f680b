// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package features turns heterogeneous item attributes into fixed-dimension
// signature vectors.
//
// # Fit / Transform
//
// An Encoder has two phases. Fit derives every parameter from a training
// batch: category vocabularies, numeric imputation statistics and min/max
// bounds, and the text vocabulary with its idf weights. Transform applies
// those parameters to one item and never refits.
//
// # Signature Layout
//
// The vector is the concatenation, in schema order, of:
//
//	[ categorical field 1 | categorical field 2 | ... | numeric fields | text terms ]
//
// Categorical blocks are multi-hot over the vocabulary fixed at fit time.
// A value unseen during Fit contributes nothing.
//
// Numeric fields occupy one column each. Missing values (absent key or NaN)
// are imputed with the fitted mean or median, then min-max scaled with the
// fitted bounds. Values outside the fitted range are clipped into [0, 1].
// A column whose fitted min equals its max encodes as 0.
//
// The text block is TF-IDF over the MaxFeatures most frequent terms of the
// training corpus. Text is split with the bleve unicode tokenizer,
// lower-cased, and filtered through the English stop word list; the block is
// L2-normalised. Unseen terms weigh 0.
//
// # Concurrency
//
// Fit mutates the encoder and must not run concurrently with anything else.
// After Fit, Transform and TransformAll are read-only and safe for concurrent use.
package features
