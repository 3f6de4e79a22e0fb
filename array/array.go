// SPDX-License-Identifier: MIT
// Package array: the two-state handle model.
//
// An Array is either Eager (realized values held fully in memory) or Lazy
// (a reference into an immutable deferred-computation graph with exact
// shape/dtype metadata but no realized values). The only state transition
// is Lazy→Eager via Realize; it produces a new Eager handle and never
// mutates the Lazy one. No Eager→Lazy transition exists.

package array

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// Array is the capability surface shared by both handle states.
// Metadata is never approximate: a Lazy handle's Len and Dtype always match
// what executing its graph would eventually produce.
type Array interface {
	// Len is the number of elements.
	Len() int

	// Dtype is the declared element type.
	Dtype() Dtype

	// IsLazy reports whether the handle defers computation.
	IsLazy() bool
}

// Eager owns realized numeric data. It is immutable after construction:
// Values hands out a copy, and no method mutates the backing slice.
type Eager struct {
	data  []float64
	dtype Dtype
}

// NewEager builds a realized handle from data. The slice is copied, so the
// caller keeps ownership of its argument.
//
// Errors:
//   - ErrNilArray when data is nil.
//   - ErrEmpty when data has length zero.
//   - ErrDtypeMismatch when dtype is invalid.
//   - ErrNaNInf when any element is NaN or ±Inf.
func NewEager(data []float64, dtype Dtype) (*Eager, error) {
	if data == nil {
		return nil, ErrNilArray
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if !dtype.valid() {
		return nil, fmt.Errorf("dtype %s: %w", dtype, ErrDtypeMismatch)
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("element %d: %w", i, ErrNaNInf)
		}
	}
	out := make([]float64, len(data))
	copy(out, data)

	return &Eager{data: out, dtype: dtype}, nil
}

// Zeros builds a realized handle of n zero elements.
func Zeros(n int, dtype Dtype) (*Eager, error) {
	if n <= 0 {
		return nil, ErrEmpty
	}
	if !dtype.valid() {
		return nil, fmt.Errorf("dtype %s: %w", dtype, ErrDtypeMismatch)
	}

	return &Eager{data: make([]float64, n), dtype: dtype}, nil
}

// Len returns the number of elements.
func (e *Eager) Len() int { return len(e.data) }

// Dtype returns the declared element type.
func (e *Eager) Dtype() Dtype { return e.dtype }

// IsLazy always reports false for a realized handle.
func (e *Eager) IsLazy() bool { return false }

// Values returns a copy of the realized data; mutating it never touches
// the handle.
func (e *Eager) Values() []float64 {
	out := make([]float64, len(e.data))
	copy(out, e.data)

	return out
}

// values is the internal zero-copy accessor. Callers must not mutate.
func (e *Eager) values() []float64 { return e.data }

// Lazy references one node of a deferred computation graph plus the backend
// that will eventually execute it. Safe to share for reading; Realize is
// guarded so concurrent realizations of the same handle execute once.
type Lazy struct {
	node    *Node
	backend Backend

	mu       sync.Mutex
	realized *Eager // cached result of the first successful Realize
}

// NewLazy wraps an existing graph node into a handle bound to backend.
// Most callers never build nodes directly: Deferred ingests eager data,
// and the elementwise/operator application functions append nodes.
func NewLazy(backend Backend, node *Node) (*Lazy, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	if node == nil {
		return nil, ErrNilNode
	}

	return &Lazy{node: node, backend: backend}, nil
}

// Deferred ingests eager data as a leaf of a fresh deferred graph on the
// given backend: the lazy counterpart of NewEager. Validation rules match
// NewEager.
func Deferred(backend Backend, data []float64, dtype Dtype) (*Lazy, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	src, err := NewEager(data, dtype)
	if err != nil {
		return nil, err
	}

	return &Lazy{node: newLeaf(src.values(), dtype), backend: backend}, nil
}

// Len returns the element count the realized result will have.
func (l *Lazy) Len() int { return l.node.length }

// Dtype returns the element type the realized result will have.
func (l *Lazy) Dtype() Dtype { return l.node.dtype }

// IsLazy always reports true for a deferred handle.
func (l *Lazy) IsLazy() bool { return true }

// Node exposes the graph node backing this handle (read-only).
func (l *Lazy) Node() *Node { return l.node }

// Realize forces the backend to execute the graph reachable from this
// handle and returns the result as a new Eager handle. The transition is
// terminal: the result is cached, so repeated calls return bit-identical
// values without re-executing, and the Lazy handle itself is not mutated
// into an Eager one.
//
// This is the only blocking call in the package; the backend is treated as
// an opaque executor and its failures surface wrapped in ExecError.
func (l *Lazy) Realize() (*Eager, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.realized != nil {
		return l.realized, nil
	}
	if l.backend == nil {
		return nil, ErrNilBackend
	}
	vals, err := l.backend.Execute(l.node)
	if err != nil {
		var ee *ExecError
		if !errors.As(err, &ee) {
			// Opaque backends report failures without graph context;
			// attach the realized handle's root node before surfacing.
			err = &ExecError{Op: l.node.opName(), Err: err}
		}

		return nil, fmt.Errorf("realize: %w", err)
	}
	out := make([]float64, len(vals))
	copy(out, vals)
	l.realized = &Eager{data: out, dtype: l.node.dtype}

	return l.realized, nil
}

// Materialize resolves any handle to realized data: an Eager handle is
// returned as-is, a Lazy handle is realized.
func Materialize(a Array) (*Eager, error) {
	switch v := a.(type) {
	case *Eager:
		return v, nil
	case *Lazy:
		return v.Realize()
	case nil:
		return nil, ErrNilArray
	default:
		return nil, fmt.Errorf("%T: %w", a, ErrUnsupported)
	}
}

// Scalar resolves a length-1 handle (e.g. a Dot or Norm result) to its
// value, realizing a Lazy scalar (and only the scalar) on demand.
//
// Errors:
//   - ErrShapeMismatch when the handle length is not exactly 1.
func Scalar(a Array) (float64, error) {
	if a == nil {
		return 0, ErrNilArray
	}
	if a.Len() != 1 {
		return 0, fmt.Errorf("scalar: want length 1, got %d: %w", a.Len(), ErrShapeMismatch)
	}
	e, err := Materialize(a)
	if err != nil {
		return 0, err
	}

	return e.values()[0], nil
}
