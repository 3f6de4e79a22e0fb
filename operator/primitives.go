// SPDX-License-Identifier: MIT
// Package operator: small stock primitives.
//
// These are the handful of concrete operators the library ships with —
// enough to compose tests, examples and regularization terms. Anything
// richer (derivatives, convolutions, ...) belongs to downstream packages
// built on New.

package operator

import (
	"fmt"
	"math"

	"github.com/kmarenkova/linop/array"
)

// Identity builds the n×n identity operator: both maps copy their input.
func Identity(n int, dtype array.Dtype) (Operator, error) {
	k := Kernel(func(dst, src []float64) { copy(dst, src) })

	return New("Identity", n, n, dtype, k, k)
}

// Null builds the m×n zero operator: both maps produce all zeros.
func Null(m, n int, dtype array.Dtype) (Operator, error) {
	zero := func(dst, _ []float64) {
		for i := range dst {
			dst[i] = 0
		}
	}

	return New("Null", m, n, dtype, zero, zero)
}

// Diagonal builds the n×n operator diag(d): forward and adjoint both
// multiply elementwise by d (real diagonal, so the adjoint reuses it).
//
// Errors:
//   - ErrBadShape when d is empty.
//   - ErrBadScalar when any entry of d is NaN or ±Inf.
func Diagonal(d []float64, dtype array.Dtype) (Operator, error) {
	const tag = "Diagonal"
	if len(d) == 0 {
		return nil, opErrorf(tag, ErrBadShape)
	}
	for i, v := range d {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s: entry %d: %w", tag, i, ErrBadScalar)
		}
	}
	diag := make([]float64, len(d))
	copy(diag, d)
	k := Kernel(func(dst, src []float64) {
		for i := range dst {
			dst[i] = diag[i] * src[i]
		}
	})

	return New(tag, len(d), len(d), dtype, k, k)
}
