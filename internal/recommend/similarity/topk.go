// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package similarity

import (
	"container/heap"
	"sort"
)

// Neighbor is one ranked row.
type Neighbor struct {
	Row   int
	Score float64
}

// ranksAbove orders by score descending, then row ascending.
func ranksAbove(a, b Neighbor) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Row < b.Row
}

// worstFirst keeps the lowest-ranked neighbor at the root.
type worstFirst []Neighbor

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return ranksAbove(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *worstFirst) Push(x any) { *h = append(*h, x.(Neighbor)) }

func (h *worstFirst) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TopK returns up to k rows most similar to row i, excluding i itself,
// highest score first with ties broken by ascending row. k larger than
// Len()-1 is capped; k <= 0 or an out-of-range i returns nil.
func (x *Index) TopK(i, k int) []Neighbor {
	if k <= 0 || i < 0 || i >= x.n {
		return nil
	}
	k = min(k, x.n-1)
	if k == 0 {
		return nil
	}

	h := make(worstFirst, 0, k)
	for j := 0; j < x.n; j++ {
		if j == i {
			continue
		}
		cand := Neighbor{Row: j, Score: x.sym.At(i, j)}
		if len(h) < k {
			heap.Push(&h, cand)
			continue
		}
		if ranksAbove(cand, h[0]) {
			h[0] = cand
			heap.Fix(&h, 0)
		}
	}

	out := []Neighbor(h)
	sort.Slice(out, func(a, b int) bool { return ranksAbove(out[a], out[b]) })
	return out
}
