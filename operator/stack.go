// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"

	"github.com/kmarenkova/linop/array"
)

// vstack stacks outputs over a shared input size:
//
//	forward(x) = concat(A₁.forward(x), …, Aₖ.forward(x))
//	adjoint(y) = Σ Aᵢ.adjoint(yᵢ)   with y split at the block offsets.
//
// Per-block offsets are precomputed once at construction and cached; the
// hot path never recomputes them.
type vstack struct {
	base
	ops     []Operator
	offsets []int // k+1 cumulative output offsets
}

// VStack builds the vertically stacked composite over ops (k ≥ 1). All
// children must share one input size N; disagreement is reported at
// construction, naming the offending pair.
func VStack(ops ...Operator) (Operator, error) {
	const tag = "VStack"
	if len(ops) < 1 {
		return nil, fmt.Errorf("%s: got 0 operands, want >= 1: %w", tag, ErrOperandCount)
	}
	if err := nonNil(tag, ops); err != nil {
		return nil, err
	}
	_, n := ops[0].Shape()
	offsets := make([]int, len(ops)+1)
	for i, op := range ops {
		mi, ni := op.Shape()
		if ni != n {
			return nil, fmt.Errorf("%s: operands 0 (N=%d) and %d (N=%d): %w", tag, n, i, ni, ErrShapeMismatch)
		}
		offsets[i+1] = offsets[i] + mi
	}
	dt, err := promoteAll(tag, ops)
	if err != nil {
		return nil, err
	}
	owned := make([]Operator, len(ops))
	copy(owned, ops)

	return &vstack{base: base{rows: offsets[len(ops)], cols: n, dtype: dt}, ops: owned, offsets: offsets}, nil
}

func (v *vstack) Forward(x array.Array) (array.Array, error) {
	const tag = "VStack.Forward"
	if err := checkLen(tag, v.cols, x); err != nil {
		return nil, err
	}
	parts := make([]array.Array, len(v.ops))
	for i, op := range v.ops {
		y, err := op.Forward(x)
		if err != nil {
			return nil, opErrorf(tag, err)
		}
		parts[i] = y
	}

	return array.Concat(parts...)
}

func (v *vstack) Adjoint(y array.Array) (array.Array, error) {
	const tag = "VStack.Adjoint"
	if err := checkLen(tag, v.rows, y); err != nil {
		return nil, err
	}
	var acc array.Array
	for i, op := range v.ops {
		yi, err := array.Slice(y, v.offsets[i], v.offsets[i+1]-v.offsets[i])
		if err != nil {
			return nil, opErrorf(tag, err)
		}
		xi, err := op.Adjoint(yi)
		if err != nil {
			return nil, opErrorf(tag, err)
		}
		if acc == nil {
			acc = xi
			continue
		}
		if acc, err = array.Add(acc, xi); err != nil {
			return nil, opErrorf(tag, err)
		}
	}

	return acc, nil
}

// hstack is the transpose construction — stacked inputs, shared output
// size. Its algebra mirrors VStack by symmetry: HStack(A₁…Aₖ) equals
// Transpose(VStack(A₁ᵗ…Aₖᵗ)); the maps are implemented directly with the
// mirrored slice/concat identities to avoid wrapping every child.
type hstack struct {
	base
	ops     []Operator
	offsets []int // k+1 cumulative input offsets
}

// HStack builds the horizontally stacked composite over ops (k ≥ 1). All
// children must share one output size M.
func HStack(ops ...Operator) (Operator, error) {
	const tag = "HStack"
	if len(ops) < 1 {
		return nil, fmt.Errorf("%s: got 0 operands, want >= 1: %w", tag, ErrOperandCount)
	}
	if err := nonNil(tag, ops); err != nil {
		return nil, err
	}
	m, _ := ops[0].Shape()
	offsets := make([]int, len(ops)+1)
	for i, op := range ops {
		mi, ni := op.Shape()
		if mi != m {
			return nil, fmt.Errorf("%s: operands 0 (M=%d) and %d (M=%d): %w", tag, m, i, mi, ErrShapeMismatch)
		}
		offsets[i+1] = offsets[i] + ni
	}
	dt, err := promoteAll(tag, ops)
	if err != nil {
		return nil, err
	}
	owned := make([]Operator, len(ops))
	copy(owned, ops)

	return &hstack{base: base{rows: m, cols: offsets[len(ops)], dtype: dt}, ops: owned, offsets: offsets}, nil
}

func (h *hstack) Forward(x array.Array) (array.Array, error) {
	const tag = "HStack.Forward"
	if err := checkLen(tag, h.cols, x); err != nil {
		return nil, err
	}
	var acc array.Array
	for i, op := range h.ops {
		xi, err := array.Slice(x, h.offsets[i], h.offsets[i+1]-h.offsets[i])
		if err != nil {
			return nil, opErrorf(tag, err)
		}
		yi, err := op.Forward(xi)
		if err != nil {
			return nil, opErrorf(tag, err)
		}
		if acc == nil {
			acc = yi
			continue
		}
		if acc, err = array.Add(acc, yi); err != nil {
			return nil, opErrorf(tag, err)
		}
	}

	return acc, nil
}

func (h *hstack) Adjoint(y array.Array) (array.Array, error) {
	const tag = "HStack.Adjoint"
	if err := checkLen(tag, h.rows, y); err != nil {
		return nil, err
	}
	parts := make([]array.Array, len(h.ops))
	for i, op := range h.ops {
		xi, err := op.Adjoint(y)
		if err != nil {
			return nil, opErrorf(tag, err)
		}
		parts[i] = xi
	}

	return array.Concat(parts...)
}
