// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package main is the offline training tool for Reelmatch.

It reads a movie catalog (TMDB-style JSON array or CSV export), fits the
feature encoder, builds the pairwise similarity model and writes it to the
configured model backend. The query server loads the result on startup.

# Usage

	reelmatch-train [-config config.yaml] [-corpus movies.json] [-format json|csv] [-out model.gob.gz]

Flags override the matching configuration keys:

	-corpus  CORPUS_PATH / training.corpus_path
	-format  CORPUS_FORMAT / training.corpus_format (empty infers from extension)
	-out     MODEL_PATH / model.path, and selects the file backend

With MODEL_BACKEND=store the model is saved as the next version of
MODEL_NAME and older versions beyond MODEL_KEEP_VERSIONS are pruned. The
badger backend keeps every version.

Records without a title are skipped and counted. The tool exits non-zero
when the corpus cannot be read, yields no usable records, or the model
cannot be written.
*/
package main
