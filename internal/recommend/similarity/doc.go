// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package similarity computes and queries the pairwise cosine similarity of
signature vectors.

The index is built eagerly: every row is L2-normalised and the full N×N
matrix is formed with a single symmetric rank-k update (gonum SymDense), so
M[i][j] and M[j][i] share storage and are equal by construction. Memory is
O(N²) and build time O(N²·D), which suits catalogs of up to a few tens of
thousands of items.

Example:

	idx, err := similarity.Build(vectors)
	if err != nil {
		return err
	}
	for _, nb := range idx.TopK(row, 5) {
		fmt.Println(nb.Row, nb.Score)
	}

An Index is immutable after Build or FromPacked and safe for concurrent use.
*/
package similarity
