// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend/features"
	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
	"github.com/tomtom215/reelmatch/internal/recommend/similarity"
)

// Model answers top-K similarity queries by title. It is immutable.
type Model struct {
	items   []ItemInfo
	index   *similarity.Index
	byTitle map[string]int
	copies  map[string]int // rows per title, only for duplicated titles

	encoder    *features.Encoder
	duplicates int
	trainedAt  time.Time
}

// ModelOption configures optional Model fields.
type ModelOption func(*Model)

// WithEncoder attaches the fitted encoder the model was trained with.
func WithEncoder(enc *features.Encoder) ModelOption {
	return func(m *Model) { m.encoder = enc }
}

// WithTrainedAt records the training time.
func WithTrainedAt(t time.Time) ModelOption {
	return func(m *Model) { m.trainedAt = t }
}

// NewModel binds items to the rows of index. items[i] describes row i.
func NewModel(items []ItemInfo, index *similarity.Index, opts ...ModelOption) (*Model, error) {
	if len(items) == 0 {
		return nil, recerr.NewConfigError("new model", "no items", nil)
	}
	if index == nil || index.Len() != len(items) {
		n := 0
		if index != nil {
			n = index.Len()
		}
		return nil, recerr.NewConfigError("new model",
			fmt.Sprintf("%d items but similarity index has %d rows", len(items), n), nil)
	}

	m := &Model{
		items:   items,
		index:   index,
		byTitle: make(map[string]int, len(items)),
	}
	for row, it := range items {
		if _, seen := m.byTitle[it.Title]; seen {
			m.duplicates++
			if m.copies == nil {
				m.copies = make(map[string]int)
			}
			m.copies[it.Title]++
			continue
		}
		m.byTitle[it.Title] = row
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.encoder != nil && !m.encoder.Fitted() {
		return nil, recerr.NewConfigError("new model", "encoder is not fitted", nil)
	}

	return m, nil
}

// Lookup returns the row of title. Duplicated titles resolve to the first row.
func (m *Model) Lookup(title string) (int, error) {
	row, ok := m.byTitle[title]
	if !ok {
		return 0, recerr.NewDataError("lookup", fmt.Sprintf("title %q not found", title), nil)
	}
	return row, nil
}

// Neighbors returns the top-k rows most similar to title. Rows that repeat
// the query title are never returned.
func (m *Model) Neighbors(title string, topK int) ([]similarity.Neighbor, error) {
	row, err := m.Lookup(title)
	if err != nil {
		return nil, err
	}

	extra := m.copies[title]
	if extra == 0 || topK <= 0 {
		return m.index.TopK(row, topK), nil
	}

	candidates := m.index.TopK(row, topK+extra)
	out := candidates[:0]
	for _, nb := range candidates {
		if m.items[nb.Row].Title == title {
			continue
		}
		out = append(out, nb)
		if len(out) == topK {
			break
		}
	}
	return out, nil
}

// Recommend returns up to topK titles most similar to title, highest score
// first. The query title itself never appears, even when the catalog repeats
// it. An unknown title yields a not-found Result.
func (m *Model) Recommend(title string, topK int) Result {
	neighbors, err := m.Neighbors(title, topK)
	if err != nil {
		return NotFound(title)
	}

	recs := make([]Recommendation, len(neighbors))
	for i, nb := range neighbors {
		recs[i] = Recommendation{Title: m.items[nb.Row].Title, Score: nb.Score}
	}
	return Result{Query: title, Found: true, Recommendations: recs}
}

// Item returns the display metadata of row.
func (m *Model) Item(row int) (ItemInfo, bool) {
	if row < 0 || row >= len(m.items) {
		return ItemInfo{}, false
	}
	return m.items[row], true
}

// Len returns the number of rows.
func (m *Model) Len() int {
	return len(m.items)
}

// Titles returns the titles in row order.
func (m *Model) Titles() []string {
	out := make([]string, len(m.items))
	for i, it := range m.items {
		out[i] = it.Title
	}
	return out
}

// Similarity returns the score between rows i and j.
func (m *Model) Similarity(i, j int) float64 {
	return m.index.Similarity(i, j)
}

// Encoder returns the attached encoder, or nil.
func (m *Model) Encoder() *features.Encoder {
	return m.encoder
}

// Dim returns the signature dimension, or 0 without an encoder.
func (m *Model) Dim() int {
	if m.encoder == nil {
		return 0
	}
	return m.encoder.Dim()
}

// Info summarises the model.
func (m *Model) Info() ModelInfo {
	info := ModelInfo{
		Items:           len(m.items),
		Dimension:       m.Dim(),
		DuplicateTitles: m.duplicates,
		TrainedAt:       m.trainedAt,
	}
	if m.encoder != nil {
		info.Features = len(m.encoder.FeatureNames())
	}
	return info
}

// CheckEncoder verifies that enc produces vectors of the model's dimension.
func (m *Model) CheckEncoder(enc *features.Encoder) error {
	if enc == nil || !enc.Fitted() {
		return recerr.NewConfigError("check encoder", "encoder is not fitted", nil)
	}
	if m.encoder == nil {
		return recerr.NewConfigError("check encoder", "model carries no encoder state", nil)
	}
	if enc.Dim() != m.encoder.Dim() {
		return recerr.NewConfigError("check encoder",
			fmt.Sprintf("model dimension %d, encoder dimension %d", m.encoder.Dim(), enc.Dim()), nil)
	}
	return nil
}
