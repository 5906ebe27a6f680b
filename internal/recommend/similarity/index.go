// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package similarity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/reelmatch/internal/recommend/recerr"
)

// Index is a dense symmetric similarity matrix over N rows.
type Index struct {
	n   int
	sym *mat.SymDense
}

// Cosine returns the cosine similarity of a and b, or 0 when either has zero norm.
// a and b must have the same length.
func Cosine(a, b []float64) float64 {
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp(floats.Dot(a, b) / (na * nb))
}

// Build computes the similarity of every pair of vectors.
func Build(vectors [][]float64) (*Index, error) {
	n := len(vectors)
	if n == 0 {
		return nil, recerr.NewConfigError("build", "no vectors to index", nil)
	}

	d := len(vectors[0])
	for i, v := range vectors {
		if len(v) != d {
			return nil, recerr.NewConfigError("build",
				fmt.Sprintf("row %d has dimension %d, expected %d", i, len(v), d), nil)
		}
	}

	sym := mat.NewSymDense(n, nil)
	if d == 0 {
		return &Index{n: n, sym: sym}, nil
	}

	data := make([]float64, n*d)
	for i, v := range vectors {
		row := data[i*d : (i+1)*d]
		copy(row, v)
		if floats.HasNaN(row) {
			return nil, recerr.NewDataError("build", fmt.Sprintf("row %d contains NaN", i), nil)
		}
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
	}

	sym.SymOuterK(1, mat.NewDense(n, d, data))

	// Rounding can push normalised dot products a hair outside [-1, 1].
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if v := sym.At(i, j); v > 1 || v < -1 {
				sym.SetSym(i, j, clamp(v))
			}
		}
	}

	return &Index{n: n, sym: sym}, nil
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// Len returns the number of rows.
func (x *Index) Len() int {
	return x.n
}

// Similarity returns M[i][j]. It panics if i or j is out of range.
func (x *Index) Similarity(i, j int) float64 {
	return x.sym.At(i, j)
}

// Packed returns the upper triangle, diagonal included, in row-major order.
func (x *Index) Packed() []float64 {
	out := make([]float64, 0, x.n*(x.n+1)/2)
	for i := 0; i < x.n; i++ {
		for j := i; j < x.n; j++ {
			out = append(out, x.sym.At(i, j))
		}
	}
	return out
}

// FromPacked rebuilds an index from the output of Packed.
func FromPacked(n int, upper []float64) (*Index, error) {
	if n <= 0 {
		return nil, recerr.NewConfigError("unpack", fmt.Sprintf("invalid row count %d", n), nil)
	}
	if want := n * (n + 1) / 2; len(upper) != want {
		return nil, recerr.NewConfigError("unpack",
			fmt.Sprintf("packed matrix has %d values, %d rows need %d", len(upper), n, want), nil)
	}

	sym := mat.NewSymDense(n, nil)
	k := 0
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, upper[k])
			k++
		}
	}
	return &Index{n: n, sym: sym}, nil
}
