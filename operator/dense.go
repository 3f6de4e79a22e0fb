// SPDX-License-Identifier: MIT

package operator

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kmarenkova/linop/array"
)

// FromDense builds the explicit operator backed by a dense matrix A:
// forward computes A·x and adjoint computes Aᵗ·y via gonum. The matrix is
// cloned at construction, so the operator stays immutable no matter what
// the caller later does with a.
//
// Errors:
//   - ErrNilOperator when a is nil.
//   - ErrBadShape / ErrDtypeMismatch via New.
func FromDense(a *mat.Dense, dtype array.Dtype) (Operator, error) {
	const tag = "Dense"
	if a == nil {
		return nil, opErrorf(tag, ErrNilOperator)
	}
	m, n := a.Dims()
	var owned mat.Dense
	owned.CloneFrom(a)

	fwd := Kernel(func(dst, src []float64) {
		y := mat.NewVecDense(m, dst)
		y.MulVec(&owned, mat.NewVecDense(n, src))
	})
	adj := Kernel(func(dst, src []float64) {
		x := mat.NewVecDense(n, dst)
		x.MulVec(owned.T(), mat.NewVecDense(m, src))
	})

	return New(tag, m, n, dtype, fwd, adj)
}
