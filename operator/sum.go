// SPDX-License-Identifier: MIT

package operator

import (
	"fmt"

	"github.com/kmarenkova/linop/array"
)

// sum is A₁ + A₂ + … + Aₖ over identically shaped children:
// forward(x) = Σ Aᵢ.forward(x), adjoint(y) = Σ Aᵢ.adjoint(y).
type sum struct {
	base
	ops []Operator
}

// Sum builds the composite A₁ + … + Aₖ (k ≥ 2). All children must share
// one shape; disagreement is detected here, at construction, naming the
// offending pair of children and their dimensions.
func Sum(ops ...Operator) (Operator, error) {
	const tag = "Sum"
	if len(ops) < 2 {
		return nil, fmt.Errorf("%s: got %d operands, want >= 2: %w", tag, len(ops), ErrOperandCount)
	}
	if err := nonNil(tag, ops); err != nil {
		return nil, err
	}
	m, n := ops[0].Shape()
	for i := 1; i < len(ops); i++ {
		mi, ni := ops[i].Shape()
		if mi != m || ni != n {
			return nil, fmt.Errorf("%s: operands 0 (%dx%d) and %d (%dx%d): %w",
				tag, m, n, i, mi, ni, ErrShapeMismatch)
		}
	}
	dt, err := promoteAll(tag, ops)
	if err != nil {
		return nil, err
	}
	owned := make([]Operator, len(ops))
	copy(owned, ops)

	return &sum{base: base{rows: m, cols: n, dtype: dt}, ops: owned}, nil
}

func (s *sum) Forward(x array.Array) (array.Array, error) {
	return s.fold("Sum.Forward", Operator.Forward, s.cols, x)
}

func (s *sum) Adjoint(y array.Array) (array.Array, error) {
	return s.fold("Sum.Adjoint", Operator.Adjoint, s.rows, y)
}

// fold accumulates one map over all children; laziness of the accumulator
// follows the input, so a lazy x yields one shared upstream leaf and a
// chain of add nodes.
func (s *sum) fold(tag string, apply func(Operator, array.Array) (array.Array, error), inLen int, x array.Array) (array.Array, error) {
	if err := checkLen(tag, inLen, x); err != nil {
		return nil, err
	}
	acc, err := apply(s.ops[0], x)
	if err != nil {
		return nil, opErrorf(tag, err)
	}
	for _, op := range s.ops[1:] {
		part, perr := apply(op, x)
		if perr != nil {
			return nil, opErrorf(tag, perr)
		}
		if acc, err = array.Add(acc, part); err != nil {
			return nil, opErrorf(tag, err)
		}
	}

	return acc, nil
}
