// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"

	"github.com/kmarenkova/linop/array"
)

// blockdiag applies each child to its own input/output slice with no cross
// terms:
//
//	forward(x)ᵢ = Aᵢ.forward(x[colOff(i):colOff(i+1)])
//	adjoint(y)ᵢ = Aᵢ.adjoint(y[rowOff(i):rowOff(i+1)])
//
// Both offset tables are precomputed once at construction; per-call shape
// bookkeeping reduces to cached lookups.
type blockdiag struct {
	base
	ops    []Operator
	rowOff []int
	colOff []int
}

// BlockDiag builds the block-diagonal composite diag(A₁, …, Aₖ) (k ≥ 1).
// Children may have arbitrary, mutually independent shapes.
func BlockDiag(ops ...Operator) (Operator, error) {
	const tag = "BlockDiag"
	if len(ops) < 1 {
		return nil, fmt.Errorf("%s: got 0 operands, want >= 1: %w", tag, ErrOperandCount)
	}
	if err := nonNil(tag, ops); err != nil {
		return nil, err
	}
	rowOff := make([]int, len(ops)+1)
	colOff := make([]int, len(ops)+1)
	for i, op := range ops {
		mi, ni := op.Shape()
		rowOff[i+1] = rowOff[i] + mi
		colOff[i+1] = colOff[i] + ni
	}
	dt, err := promoteAll(tag, ops)
	if err != nil {
		return nil, err
	}
	owned := make([]Operator, len(ops))
	copy(owned, ops)

	return &blockdiag{
		base:   base{rows: rowOff[len(ops)], cols: colOff[len(ops)], dtype: dt},
		ops:    owned,
		rowOff: rowOff,
		colOff: colOff,
	}, nil
}

func (b *blockdiag) Forward(x array.Array) (array.Array, error) {
	return b.blocks("BlockDiag.Forward", Operator.Forward, b.colOff, b.cols, x)
}

func (b *blockdiag) Adjoint(y array.Array) (array.Array, error) {
	return b.blocks("BlockDiag.Adjoint", Operator.Adjoint, b.rowOff, b.rows, y)
}

// blocks slices the input at the cached offsets, applies one map per child
// and concatenates the per-block results.
func (b *blockdiag) blocks(tag string, apply func(Operator, array.Array) (array.Array, error), off []int, inLen int, x array.Array) (array.Array, error) {
	if err := checkLen(tag, inLen, x); err != nil {
		return nil, err
	}
	parts := make([]array.Array, len(b.ops))
	for i, op := range b.ops {
		xi, err := array.Slice(x, off[i], off[i+1]-off[i])
		if err != nil {
			return nil, opErrorf(tag, err)
		}
		if parts[i], err = apply(op, xi); err != nil {
			return nil, opErrorf(tag, err)
		}
	}

	return array.Concat(parts...)
}
