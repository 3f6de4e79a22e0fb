// Package solver: shared plumbing for the iterative schemes.
//
// Solvers drive an operator through the narrow contract only — Forward,
// Adjoint, Shape, Dtype plus the array vector algebra — and never inspect
// composite internals. Every vector update is expressed with the
// lazy-preserving array ops, so a solve over lazy inputs accumulates one
// deferred graph; scalar step sizes ride along as length-1 handles
// (array.ScaleBy) instead of forcing realization.

package solver

import (
	"fmt"

	"github.com/kmarenkova/linop/array"
	"github.com/kmarenkova/linop/operator"
)

// validate checks the operator/data/options triple shared by all solvers
// and returns the operator shape.
func validate(a operator.Operator, b array.Array, opts Options) (m, n int, err error) {
	if a == nil {
		return 0, 0, ErrNilOperator
	}
	if b == nil {
		return 0, 0, ErrNilData
	}
	m, n = a.Shape()
	if b.Len() != m {
		return 0, 0, fmt.Errorf("data: want length %d, got %d: %w", m, b.Len(), ErrShapeMismatch)
	}
	if opts.MaxIterations <= 0 {
		return 0, 0, fmt.Errorf("MaxIterations=%d: %w", opts.MaxIterations, ErrBadOptions)
	}

	return m, n, nil
}

// initState resolves the initial iterate x and residual r = b − A·x.
// A nil guess means x = 0, so r is b itself and no forward pass is spent.
func initState(a operator.Operator, b, x0 array.Array, n int) (x, r array.Array, err error) {
	if x0 == nil {
		if x, err = array.Zeros(n, b.Dtype()); err != nil {
			return nil, nil, err
		}

		return x, b, nil
	}
	if x0.Len() != n {
		return nil, nil, fmt.Errorf("guess: want length %d, got %d: %w", n, x0.Len(), ErrShapeMismatch)
	}
	ax, err := a.Forward(x0)
	if err != nil {
		return nil, nil, err
	}
	if r, err = array.Sub(b, ax); err != nil {
		return nil, nil, err
	}

	return x0, r, nil
}

// exactZero reports whether a scalar handle is already realized and holds
// exactly zero. Lazy handles report false: probing them would force a
// mid-run realization, which the lazy contract forbids. An exactly zero
// gamma means the iterate is exact; iterating on it would divide 0 by 0.
func exactZero(s array.Array) bool {
	e, ok := s.(*array.Eager)

	return ok && e.Values()[0] == 0
}

// addScaled returns v + s·w without realizing anything.
func addScaled(v, w, s array.Array) (array.Array, error) {
	t, err := array.ScaleBy(w, s)
	if err != nil {
		return nil, err
	}

	return array.Add(v, t)
}

// subScaled returns v − s·w without realizing anything.
func subScaled(v, w, s array.Array) (array.Array, error) {
	t, err := array.ScaleBy(w, s)
	if err != nil {
		return nil, err
	}

	return array.Sub(v, t)
}

// finish materializes the final iterate. For a lazy run this is the single
// point the whole accumulated graph executes.
func finish(x array.Array, iters int, residual float64, reason Reason) (Result, error) {
	xe, err := array.Materialize(x)
	if err != nil {
		return Result{}, err
	}

	return Result{X: xe, Iterations: iters, Residual: residual, Reason: reason}, nil
}
