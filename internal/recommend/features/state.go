// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"fmt"

	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
)

// State is the serializable form of a fitted encoder.
type State struct {
	Schema      Schema
	Categorical []CategoricalParams
	Numeric     []NumericParams
	Text        *TextParams
}

// State exports the fitted parameters.
func (e *Encoder) State() (State, error) {
	if !e.fitted {
		return State{}, recerr.NewConfigError("state", "encoder is not fitted", nil)
	}

	s := State{Schema: e.schema.Clone()}
	for _, c := range e.categorical {
		s.Categorical = append(s.Categorical, CategoricalParams{
			Field:      c.Field,
			Vocabulary: append([]string(nil), c.Vocabulary...),
		})
	}
	for _, n := range e.numeric {
		s.Numeric = append(s.Numeric, *n)
	}
	if e.text != nil {
		s.Text = &TextParams{
			Vocabulary:     append([]string(nil), e.text.Vocabulary...),
			IDF:            append([]float64(nil), e.text.IDF...),
			MinTokenLength: e.text.MinTokenLength,
		}
	}
	return s, nil
}

// FromState rebuilds a fitted encoder from exported parameters.
//
//nolint:gocritic // State is consumed once at load time
func FromState(s State) (*Encoder, error) {
	if err := s.Schema.Validate(); err != nil {
		return nil, err
	}
	if len(s.Categorical) != len(s.Schema.Categorical) {
		return nil, recerr.NewConfigError("state",
			fmt.Sprintf("schema has %d categorical fields, state has %d", len(s.Schema.Categorical), len(s.Categorical)), nil)
	}
	if len(s.Numeric) != len(s.Schema.Numeric) {
		return nil, recerr.NewConfigError("state",
			fmt.Sprintf("schema has %d numeric fields, state has %d", len(s.Schema.Numeric), len(s.Numeric)), nil)
	}
	if s.Schema.Text.Enabled != (s.Text != nil) {
		return nil, recerr.NewConfigError("state", "text block does not match schema", nil)
	}

	e := &Encoder{schema: s.Schema.Clone()}
	for i := range s.Categorical {
		c := s.Categorical[i]
		if c.Field != s.Schema.Categorical[i] {
			return nil, recerr.NewConfigError("state",
				fmt.Sprintf("categorical field %d is %q, schema expects %q", i, c.Field, s.Schema.Categorical[i]), nil)
		}
		c.buildIndex()
		e.categorical = append(e.categorical, &c)
	}
	for i := range s.Numeric {
		n := s.Numeric[i]
		if n.Field != s.Schema.Numeric[i].Name {
			return nil, recerr.NewConfigError("state",
				fmt.Sprintf("numeric field %d is %q, schema expects %q", i, n.Field, s.Schema.Numeric[i].Name), nil)
		}
		e.numeric = append(e.numeric, &n)
	}
	if s.Text != nil {
		if len(s.Text.Vocabulary) != len(s.Text.IDF) {
			return nil, recerr.NewConfigError("state",
				fmt.Sprintf("text vocabulary has %d terms but %d idf weights", len(s.Text.Vocabulary), len(s.Text.IDF)), nil)
		}
		t := &TextParams{
			Vocabulary:     s.Text.Vocabulary,
			IDF:            s.Text.IDF,
			MinTokenLength: s.Text.MinTokenLength,
		}
		t.prepare()
		e.text = t
	}

	e.dim = e.computeDim()
	e.fitted = true
	return e, nil
}
