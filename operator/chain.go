// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"

	"github.com/kmarenkova/linop/array"
)

// chain is the matrix product A₁·A₂·…·Aₖ, applied right to left:
// forward(x) = A₁(A₂(…Aₖ(x))). Its adjoint reverses the order — the
// critical identity (AB)ᵗ = BᵗAᵗ — so adjoint(y) = Aₖᵗ(…A₂ᵗ(A₁ᵗ(y))).
type chain struct {
	base
	ops []Operator
}

// Chain builds the composite A₁∘A₂∘…∘Aₖ (k ≥ 2). Adjacent children must
// agree: Aᵢ.N == Aᵢ₊₁.M. Disagreement is detected here, at construction,
// naming the offending pair and dimension.
func Chain(ops ...Operator) (Operator, error) {
	const tag = "Chain"
	if len(ops) < 2 {
		return nil, fmt.Errorf("%s: got %d operands, want >= 2: %w", tag, len(ops), ErrOperandCount)
	}
	if err := nonNil(tag, ops); err != nil {
		return nil, err
	}
	for i := 0; i < len(ops)-1; i++ {
		_, ni := ops[i].Shape()
		mi1, _ := ops[i+1].Shape()
		if ni != mi1 {
			return nil, fmt.Errorf("%s: operand %d has N=%d but operand %d has M=%d: %w",
				tag, i, ni, i+1, mi1, ErrShapeMismatch)
		}
	}
	dt, err := promoteAll(tag, ops)
	if err != nil {
		return nil, err
	}
	m, _ := ops[0].Shape()
	_, n := ops[len(ops)-1].Shape()
	owned := make([]Operator, len(ops))
	copy(owned, ops)

	return &chain{base: base{rows: m, cols: n, dtype: dt}, ops: owned}, nil
}

func (c *chain) Forward(x array.Array) (array.Array, error) {
	const tag = "Chain.Forward"
	if err := checkLen(tag, c.cols, x); err != nil {
		return nil, err
	}
	y := x
	var err error
	for i := len(c.ops) - 1; i >= 0; i-- {
		if y, err = c.ops[i].Forward(y); err != nil {
			return nil, opErrorf(tag, err)
		}
	}

	return y, nil
}

func (c *chain) Adjoint(y array.Array) (array.Array, error) {
	const tag = "Chain.Adjoint"
	if err := checkLen(tag, c.rows, y); err != nil {
		return nil, err
	}
	x := y
	var err error
	for _, op := range c.ops {
		if x, err = op.Adjoint(x); err != nil {
			return nil, opErrorf(tag, err)
		}
	}

	return x, nil
}
