// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package corpus reads movie catalogs into feature items.
//
// Two input shapes are supported:
//
//   - JSON: an array of TMDB-style movie objects
//     (id, title, overview, genres, keywords, release_date, vote_average, runtime),
//     where genres and keywords are lists of {"id", "name"} objects. A keywords
//     value of the form {"keywords": [...]} is accepted as well.
//   - CSV: a header row naming the same columns. List columns may hold a
//     JSON or Python-literal list of {name} objects, or "|"-separated values.
//     Without a release_date column, a trailing "(YYYY)" in the title is taken
//     as the release year and removed from the title.
//
// Every record becomes a features.Item with tags "genres" and "keywords",
// numeric fields "release_year", "vote_average" and "runtime", and text built
// from the overview followed by the genre and keyword names. Records without a
// title are skipped and counted in Stats.
package corpus
