// SPDX-License-Identifier: MIT

package operator

import "github.com/kmarenkova/linop/array"

// adjointView relabels A as Aᵗ without copying: forward delegates to A's
// adjoint and vice versa, shape is A's shape transposed.
type adjointView struct {
	base
	op Operator
}

// Transpose returns the adjoint view Aᵗ of a. Construction is a read-only
// relabeling — no copy, no computation. Transposing a view unwraps it back
// to the original operator.
func Transpose(a Operator) (Operator, error) {
	if a == nil {
		return nil, opErrorf("Transpose", ErrNilOperator)
	}
	if v, ok := a.(*adjointView); ok {
		return v.op, nil
	}
	m, n := a.Shape()

	return &adjointView{base: base{rows: n, cols: m, dtype: a.Dtype()}, op: a}, nil
}

func (v *adjointView) Forward(x array.Array) (array.Array, error) {
	if err := checkLen("Transpose.Forward", v.cols, x); err != nil {
		return nil, err
	}

	return v.op.Adjoint(x)
}

func (v *adjointView) Adjoint(y array.Array) (array.Array, error) {
	if err := checkLen("Transpose.Adjoint", v.rows, y); err != nil {
		return nil, err
	}

	return v.op.Forward(y)
}
