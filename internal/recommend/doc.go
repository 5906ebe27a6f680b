// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend implements a content-based "more like this" recommender.
//
// # Architecture
//
// Training and serving are separate processes joined by a snapshot file:
//
//	corpus -> features.Encoder (Fit, TransformAll) -> similarity.Build
//	       -> Model -> SaveModel
//
//	LoadModel -> Model -> QueryService -> HTTP API
//
// A Model maps item titles to rows of a precomputed similarity matrix and
// answers top-K queries by title. Titles are looked up exactly; when a title
// occurs more than once the first row wins.
//
// # Usage
//
//	model, err := recommend.Train(ctx, items, recommend.DefaultTrainConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	res := model.Recommend("The Dark Knight", 5)
//	if !res.Found {
//	    // unknown title, res.Recommendations is empty
//	}
//
// # Thread Safety
//
// A Model is immutable after construction and may be shared by any number of
// goroutines without locking. QueryService adds a mutex-guarded LRU in front
// of it; its counters are atomic.
package recommend
