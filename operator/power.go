// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"

	"github.com/kmarenkova/linop/array"
)

// power is Aᵖ for square A: forward applies A's forward p times, adjoint
// applies A's adjoint p times ((Aᵖ)ᵗ = (Aᵗ)ᵖ). p == 0 is the identity.
type power struct {
	base
	op Operator
	p  int
}

// Power builds the composite Aᵖ (p ≥ 0, A square).
//
// Errors:
//   - ErrNilOperator when A is nil.
//   - ErrNonSquare when A's shape is not square.
//   - ErrBadExponent when p < 0.
func Power(a Operator, p int) (Operator, error) {
	const tag = "Power"
	if a == nil {
		return nil, opErrorf(tag, ErrNilOperator)
	}
	m, n := a.Shape()
	if m != n {
		return nil, fmt.Errorf("%s: %dx%d: %w", tag, m, n, ErrNonSquare)
	}
	if p < 0 {
		return nil, fmt.Errorf("%s: p=%d: %w", tag, p, ErrBadExponent)
	}

	return &power{base: base{rows: m, cols: n, dtype: a.Dtype()}, op: a, p: p}, nil
}

func (pw *power) Forward(x array.Array) (array.Array, error) {
	return pw.repeat("Power.Forward", Operator.Forward, x)
}

func (pw *power) Adjoint(y array.Array) (array.Array, error) {
	return pw.repeat("Power.Adjoint", Operator.Adjoint, y)
}

func (pw *power) repeat(tag string, apply func(Operator, array.Array) (array.Array, error), x array.Array) (array.Array, error) {
	if err := checkLen(tag, pw.cols, x); err != nil {
		return nil, err
	}
	res := x
	var err error
	for i := 0; i < pw.p; i++ {
		if res, err = apply(pw.op, res); err != nil {
			return nil, opErrorf(tag, err)
		}
	}

	return res, nil
}
