// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
)

// NumericParams holds the fitted imputation value and scaling bounds of one field.
type NumericParams struct {
	Field  string
	Impute ImputeStrategy
	Fill   float64
	Min    float64
	Max    float64
}

// lookup returns the raw value of field and whether it is present.
func lookup(item *Item, field string) (float64, bool) {
	v, ok := item.Numeric[field]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// fitNumeric computes the imputation statistic over non-missing training values,
// then the min/max of the imputed column. A column with no values fits to zeros.
func fitNumeric(nf NumericField, items []Item) *NumericParams {
	present := make([]float64, 0, len(items))
	for i := range items {
		if v, ok := lookup(&items[i], nf.Name); ok && !math.IsInf(v, 0) {
			present = append(present, v)
		}
	}

	p := &NumericParams{Field: nf.Name, Impute: nf.Impute}
	if len(present) == 0 {
		return p
	}

	if nf.Impute == ImputeMedian {
		p.Fill = median(present)
	} else {
		p.Fill = stat.Mean(present, nil)
	}

	// Fill lies inside [Min, Max], so imputed rows never widen the bounds.
	p.Min, p.Max = floats.Min(present), floats.Max(present)

	return p
}

// encode imputes, scales, and clips one value into [0, 1].
func (p *NumericParams) encode(item *Item) (float64, error) {
	v, ok := lookup(item, p.Field)
	if !ok {
		v = p.Fill
	}
	if math.IsInf(v, 0) {
		return 0, recerr.NewDataError("transform",
			fmt.Sprintf("item %q: numeric field %q is not finite", item.Title, p.Field), nil)
	}

	span := p.Max - p.Min
	if span == 0 {
		return 0, nil
	}

	scaled := (v - p.Min) / span
	switch {
	case scaled < 0:
		return 0, nil
	case scaled > 1:
		return 1, nil
	default:
		return scaled, nil
	}
}

// median sorts a copy; for an even count it averages the two middle values,
// which stat.Quantile does not.
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
