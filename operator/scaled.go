// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"

	"github.com/kmarenkova/linop/array"
)

// scaled is c·A: forward multiplies A's forward by c, adjoint multiplies
// A's adjoint by conj(c). Values are real, so conj(c) == c.
type scaled struct {
	base
	op     Operator
	factor float64
}

// Scale builds the composite c·A. Shape and dtype follow A; building the
// composite performs no computation.
//
// Errors:
//   - ErrNilOperator when A is nil.
//   - ErrBadScalar when c is NaN or ±Inf.
func Scale(a Operator, c float64) (Operator, error) {
	if a == nil {
		return nil, opErrorf("Scale", ErrNilOperator)
	}
	if !finite(c) {
		return nil, fmt.Errorf("Scale: factor %v: %w", c, ErrBadScalar)
	}
	m, n := a.Shape()

	return &scaled{base: base{rows: m, cols: n, dtype: a.Dtype()}, op: a, factor: c}, nil
}

func (s *scaled) Forward(x array.Array) (array.Array, error) {
	if err := checkLen("Scale.Forward", s.cols, x); err != nil {
		return nil, err
	}
	y, err := s.op.Forward(x)
	if err != nil {
		return nil, opErrorf("Scale.Forward", err)
	}

	return array.Scale(y, s.factor)
}

func (s *scaled) Adjoint(y array.Array) (array.Array, error) {
	if err := checkLen("Scale.Adjoint", s.rows, y); err != nil {
		return nil, err
	}
	x, err := s.op.Adjoint(y)
	if err != nil {
		return nil, opErrorf("Scale.Adjoint", err)
	}

	return array.Scale(x, s.factor)
}
