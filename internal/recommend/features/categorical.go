// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import "sort"

// CategoricalParams holds the fitted vocabulary of one multi-valued field.
type CategoricalParams struct {
	Field      string
	Vocabulary []string

	index map[string]int
}

// fitCategorical collects the sorted set of values seen for field.
func fitCategorical(field string, items []Item) *CategoricalParams {
	set := make(map[string]struct{})
	for i := range items {
		for _, v := range items[i].Tags[field] {
			if v == "" {
				continue
			}
			set[v] = struct{}{}
		}
	}

	vocab := make([]string, 0, len(set))
	for v := range set {
		vocab = append(vocab, v)
	}
	sort.Strings(vocab)

	p := &CategoricalParams{Field: field, Vocabulary: vocab}
	p.buildIndex()
	return p
}

func (p *CategoricalParams) buildIndex() {
	p.index = make(map[string]int, len(p.Vocabulary))
	for i, v := range p.Vocabulary {
		p.index[v] = i
	}
}

func (p *CategoricalParams) width() int {
	return len(p.Vocabulary)
}

// encode writes the multi-hot block into dst, which must be width() long.
// Unknown values are ignored.
func (p *CategoricalParams) encode(values []string, dst []float64) {
	for i := range dst {
		dst[i] = 0
	}
	for _, v := range values {
		if pos, ok := p.index[v]; ok {
			dst[pos] = 1
		}
	}
}
