// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
)

// Encoder fits feature parameters on a corpus and maps items to signature vectors.
type Encoder struct {
	schema Schema

	categorical []*CategoricalParams
	numeric     []*NumericParams
	text        *TextParams

	dim    int
	fitted bool
}

// NewEncoder creates an unfitted encoder for the given schema.
//
//nolint:gocritic // schema is copied into the encoder
func NewEncoder(schema Schema) (*Encoder, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &Encoder{schema: schema.Clone()}, nil
}

// Fit derives every encoding parameter from items. Refitting replaces the
// previous parameters.
func (e *Encoder) Fit(items []Item) error {
	if len(items) == 0 {
		return recerr.NewConfigError("fit", "empty training corpus", nil)
	}

	categorical := make([]*CategoricalParams, 0, len(e.schema.Categorical))
	for _, field := range e.schema.Categorical {
		categorical = append(categorical, fitCategorical(field, items))
	}

	numeric := make([]*NumericParams, 0, len(e.schema.Numeric))
	for _, nf := range e.schema.Numeric {
		numeric = append(numeric, fitNumeric(nf, items))
	}

	var text *TextParams
	if e.schema.Text.Enabled {
		text = fitText(e.schema.Text, items)
	}

	e.categorical = categorical
	e.numeric = numeric
	e.text = text
	e.dim = e.computeDim()
	e.fitted = true

	return nil
}

func (e *Encoder) computeDim() int {
	dim := len(e.numeric)
	for _, c := range e.categorical {
		dim += c.width()
	}
	if e.text != nil {
		dim += e.text.width()
	}
	return dim
}

// Fitted reports whether Fit (or FromState) has run.
func (e *Encoder) Fitted() bool {
	return e.fitted
}

// Dim returns the signature dimension. It is zero before Fit.
func (e *Encoder) Dim() int {
	return e.dim
}

// Schema returns a copy of the encoder schema.
func (e *Encoder) Schema() Schema {
	return e.schema.Clone()
}

// Transform encodes one item with the fitted parameters.
//
//nolint:gocritic // Item is read-only here
func (e *Encoder) Transform(item Item) ([]float64, error) {
	if !e.fitted {
		return nil, recerr.NewConfigError("transform", "encoder is not fitted", nil)
	}
	out := make([]float64, e.dim)
	if err := e.TransformInto(item, out); err != nil {
		return nil, err
	}
	return out, nil
}

// TransformInto encodes item into dst, which must be exactly Dim() long.
//
//nolint:gocritic // Item is read-only here
func (e *Encoder) TransformInto(item Item, dst []float64) error {
	if !e.fitted {
		return recerr.NewConfigError("transform", "encoder is not fitted", nil)
	}
	if len(dst) != e.dim {
		return recerr.NewDataError("transform",
			fmt.Sprintf("destination has %d columns, encoder dimension is %d", len(dst), e.dim), nil)
	}

	off := 0
	for _, c := range e.categorical {
		w := c.width()
		c.encode(item.Tags[c.Field], dst[off:off+w])
		off += w
	}

	for _, n := range e.numeric {
		v, err := n.encode(&item)
		if err != nil {
			return err
		}
		dst[off] = v
		off++
	}

	if e.text != nil {
		e.text.encode(item.Text, dst[off:off+e.text.width()])
	}

	return nil
}

// TransformAll encodes items in parallel and returns one vector per item in
// input order. workers <= 0 uses GOMAXPROCS. All vectors share one backing array.
func (e *Encoder) TransformAll(ctx context.Context, items []Item, workers int) ([][]float64, error) {
	if !e.fitted {
		return nil, recerr.NewConfigError("transform", "encoder is not fitted", nil)
	}

	n := len(items)
	out := make([][]float64, n)
	if n == 0 {
		return out, nil
	}

	backing := make([]float64, n*e.dim)
	for i := range out {
		out[i] = backing[i*e.dim : (i+1)*e.dim : (i+1)*e.dim]
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < n; start += chunk {
		lo, hi := start, min(start+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return fmt.Errorf("transform canceled: %w", err)
				}
				if err := e.TransformInto(items[i], out[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// FeatureNames returns a label per signature column, for example
// "genres=Drama", "num:release_year", or "text:space".
func (e *Encoder) FeatureNames() []string {
	names := make([]string, 0, e.dim)
	for _, c := range e.categorical {
		for _, v := range c.Vocabulary {
			names = append(names, c.Field+"="+v)
		}
	}
	for _, n := range e.numeric {
		names = append(names, "num:"+n.Field)
	}
	if e.text != nil {
		for _, term := range e.text.Vocabulary {
			names = append(names, "text:"+term)
		}
	}
	return names
}
