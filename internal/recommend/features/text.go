// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/token/stop"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"gonum.org/v1/gonum/floats"
)

// analyzer is the bleve "standard" chain without stemming: unicode word
// segmentation, lower-casing, and English stop word removal.
type analyzer struct {
	tokenizer *unicode.UnicodeTokenizer
	lower     *lowercase.LowerCaseFilter
	stop      *stop.StopTokensFilter
	minLen    int
}

func newAnalyzer(minLen int) *analyzer {
	stopWords := analysis.NewTokenMap()
	// The embedded list is static; a load failure leaves the map empty.
	_ = stopWords.LoadBytes(en.EnglishStopWords) //nolint:errcheck // static data

	return &analyzer{
		tokenizer: unicode.NewUnicodeTokenizer(),
		lower:     lowercase.NewLowerCaseFilter(),
		stop:      stop.NewStopTokensFilter(stopWords),
		minLen:    minLen,
	}
}

// terms returns the analysed tokens of text in document order.
func (a *analyzer) terms(text string) []string {
	if text == "" {
		return nil
	}

	stream := a.tokenizer.Tokenize([]byte(text))
	stream = a.lower.Filter(stream)
	stream = a.stop.Filter(stream)

	out := make([]string, 0, len(stream))
	for _, tok := range stream {
		if utf8.RuneCount(tok.Term) < a.minLen {
			continue
		}
		out = append(out, string(tok.Term))
	}
	return out
}

// TextParams holds the fitted vocabulary and idf weights of the text block.
type TextParams struct {
	Vocabulary     []string
	IDF            []float64
	MinTokenLength int

	index    map[string]int
	analyzer *analyzer
}

// fitText ranks terms by corpus frequency (ties by term), keeps the top
// maxFeatures, and computes the smoothed idf ln((1+n)/(1+df)) + 1.
// The kept vocabulary is stored in lexical order.
func fitText(cfg TextConfig, items []Item) *TextParams {
	a := newAnalyzer(cfg.MinTokenLength)

	freq := make(map[string]int)
	docFreq := make(map[string]int)
	for i := range items {
		seen := make(map[string]bool)
		for _, term := range a.terms(items[i].Text) {
			freq[term]++
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}

	ranked := make([]string, 0, len(freq))
	for term := range freq {
		ranked = append(ranked, term)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if freq[ranked[i]] != freq[ranked[j]] {
			return freq[ranked[i]] > freq[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > cfg.MaxFeatures {
		ranked = ranked[:cfg.MaxFeatures]
	}
	sort.Strings(ranked)

	n := float64(len(items))
	idf := make([]float64, len(ranked))
	for i, term := range ranked {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	p := &TextParams{
		Vocabulary:     ranked,
		IDF:            idf,
		MinTokenLength: cfg.MinTokenLength,
	}
	p.prepare()
	return p
}

// prepare rebuilds the unexported lookup state after Fit or FromState.
func (p *TextParams) prepare() {
	p.index = make(map[string]int, len(p.Vocabulary))
	for i, term := range p.Vocabulary {
		p.index[term] = i
	}
	p.analyzer = newAnalyzer(p.MinTokenLength)
}

func (p *TextParams) width() int {
	return len(p.Vocabulary)
}

// encode writes the L2-normalised TF-IDF block into dst.
func (p *TextParams) encode(text string, dst []float64) {
	for i := range dst {
		dst[i] = 0
	}

	for _, term := range p.analyzer.terms(text) {
		if pos, ok := p.index[term]; ok {
			dst[pos]++
		}
	}

	floats.Mul(dst, p.IDF)
	norm := floats.Norm(dst, 2)
	if norm == 0 {
		return
	}
	floats.Scale(1/norm, dst)
}
