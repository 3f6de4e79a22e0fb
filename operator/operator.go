// SPDX-License-Identifier: MIT
// Package operator: the contract and the primitive factory.
//
// Operator is the single interface every operator implements, primitive or
// composite. Primitives are built from two kernels over realized data; the
// engine (array.Apply) decides per call whether to execute now or extend
// the deferred graph, so kernel authors never see handles.

package operator

import (
	"fmt"
	"math"

	"github.com/kmarenkova/linop/array"
)

// Operator is the common interface for performing matrix-vector products.
// Forward computes y = A·x (output length M); Adjoint computes x = Aᵗ·y
// (output length N). Shape returns (M, N). All operators are linear by
// construction and immutable after construction: a tree may be reused
// across calls, including concurrently.
//
// Eagerness preservation: if the input handle is Lazy the result is Lazy
// (graph extension), if Eager the result is Eager — unless the operator
// was constructed with an explicit eagerness override (WithDeferredInput,
// WithRealizedOutput).
type Operator interface {
	Forward(x array.Array) (array.Array, error)
	Adjoint(y array.Array) (array.Array, error)
	Shape() (m, n int)
	Dtype() array.Dtype
}

// Kernel is the realized-data callable of a primitive: write the result
// into dst (pre-allocated, zeroed), reading only src. See array.Kernel.
type Kernel = array.Kernel

// Option configures eagerness overrides on a primitive at construction.
// These are the explicit escape hatches from eagerness preservation,
// opted into per operator, never implied.
type Option func(*custom)

// WithDeferredInput converts eager inputs to lazy leaves on backend before
// applying, so results come out lazy even for eager callers.
func WithDeferredInput(b array.Backend) Option {
	return func(c *custom) { c.deferTo = b }
}

// WithRealizedOutput forces realization of lazy results of both maps,
// returning eager handles. The inverse escape hatch of WithDeferredInput.
func WithRealizedOutput() Option {
	return func(c *custom) { c.realizeFwd, c.realizeAdj = true, true }
}

// base carries the shape/dtype pair shared by every operator kind.
type base struct {
	rows, cols int
	dtype      array.Dtype
}

// Shape returns (M, N): output length M, input length N.
func (b base) Shape() (m, n int) { return b.rows, b.cols }

// Dtype returns the operator's element type.
func (b base) Dtype() array.Dtype { return b.dtype }

// custom is a primitive operator defined by user-specified kernels: the
// factory contract for concrete operators (derivative, convolution, ...).
// The core never inspects kernel internals.
type custom struct {
	base
	name     string
	fwd, adj Kernel

	deferTo    array.Backend // non-nil: eager inputs become lazy leaves
	realizeFwd bool
	realizeAdj bool
}

// New builds a primitive operator of shape (m, n) from forward and adjoint
// kernels. name labels the operator in errors and execution diagnostics.
// adj may be nil for forward-only operators; their Adjoint returns
// ErrNoAdjoint.
//
// Errors:
//   - ErrBadShape when m <= 0 or n <= 0.
//   - ErrDtypeMismatch when dtype is invalid.
//   - ErrNilKernel when fwd is nil.
func New(name string, m, n int, dtype array.Dtype, fwd, adj Kernel, opts ...Option) (Operator, error) {
	if m <= 0 || n <= 0 {
		return nil, fmt.Errorf("%s: %dx%d: %w", name, m, n, ErrBadShape)
	}
	if _, err := array.Promote(dtype, dtype); err != nil {
		return nil, opErrorf(name, ErrDtypeMismatch)
	}
	if fwd == nil {
		return nil, opErrorf(name, ErrNilKernel)
	}
	c := &custom{base: base{rows: m, cols: n, dtype: dtype}, name: name, fwd: fwd, adj: adj}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *custom) Forward(x array.Array) (array.Array, error) {
	return c.apply(c.name+".Forward", c.fwd, c.rows, c.cols, c.realizeFwd, x)
}

func (c *custom) Adjoint(y array.Array) (array.Array, error) {
	if c.adj == nil {
		return nil, opErrorf(c.name+".Adjoint", ErrNoAdjoint)
	}

	return c.apply(c.name+".Adjoint", c.adj, c.cols, c.rows, c.realizeAdj, y)
}

// apply is the primitive application path: validate, optionally defer the
// input, run the kernel through the engine, optionally force realization.
func (c *custom) apply(tag string, k Kernel, outLen, inLen int, realize bool, x array.Array) (array.Array, error) {
	if err := checkLen(tag, inLen, x); err != nil {
		return nil, err
	}
	dt, err := array.Promote(c.dtype, x.Dtype())
	if err != nil {
		return nil, opErrorf(tag, err)
	}
	if c.deferTo != nil {
		if e, ok := x.(*array.Eager); ok {
			if x, err = array.Deferred(c.deferTo, e.Values(), e.Dtype()); err != nil {
				return nil, opErrorf(tag, err)
			}
		}
	}
	y, err := array.Apply(c.name, outLen, dt, k, x)
	if err != nil {
		return nil, opErrorf(tag, err)
	}
	if realize && y.IsLazy() {
		return array.Materialize(y)
	}

	return y, nil
}

// checkLen enforces the call-time length constraint of the contract,
// naming expected vs actual lengths.
func checkLen(tag string, want int, x array.Array) error {
	if x == nil {
		return opErrorf(tag, array.ErrNilArray)
	}
	if x.Len() != want {
		return fmt.Errorf("%s: want input length %d, got %d: %w", tag, want, x.Len(), ErrShapeMismatch)
	}

	return nil
}

// finite reports whether v is an ordinary float64.
func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// promoteAll folds the promotion policy over the dtypes of ops, tagging
// failures with the index of the offending operand.
func promoteAll(tag string, ops []Operator) (array.Dtype, error) {
	dt := ops[0].Dtype()
	var err error
	for i := 1; i < len(ops); i++ {
		if dt, err = array.Promote(dt, ops[i].Dtype()); err != nil {
			return 0, fmt.Errorf("%s: operand %d: %w", tag, i, ErrDtypeMismatch)
		}
	}

	return dt, nil
}

// nonNil rejects nil operands up front, naming the offender.
func nonNil(tag string, ops []Operator) error {
	for i, op := range ops {
		if op == nil {
			return fmt.Errorf("%s: operand %d: %w", tag, i, ErrNilOperator)
		}
	}

	return nil
}
