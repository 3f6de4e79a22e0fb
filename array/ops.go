// SPDX-License-Identifier: MIT
// Package array: the lazy-preserving elementwise/reduction algebra.
//
// Every function in this file obeys one rule, the central correctness
// contract of the library: if every operand is Eager the result is computed
// immediately (gonum kernels, fresh allocation, operands untouched); if any
// operand is Lazy the result is a new graph node and nothing is computed.
// Eager co-operands of a lazy one are captured as leaf nodes, so a shared
// upstream is represented once and memoized once.

package array

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Add returns a + b elementwise. Operand lengths must match.
func Add(a, b Array) (Array, error) { return binary(OpAdd, a, b) }

// Sub returns a - b elementwise. Operand lengths must match.
func Sub(a, b Array) (Array, error) { return binary(OpSub, a, b) }

// Div returns a / b elementwise. Operand lengths must match. Division by
// zero follows IEEE-754 (the backend does not police infinities produced
// mid-graph; only ingestion validates finiteness).
func Div(a, b Array) (Array, error) { return binary(OpDiv, a, b) }

// Scale returns c·a. The factor must be finite.
func Scale(a Array, c float64) (Array, error) {
	if a == nil {
		return nil, ErrNilArray
	}
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return nil, fmt.Errorf("scale factor: %w", ErrNaNInf)
	}
	if e, ok := a.(*Eager); ok {
		out := make([]float64, e.Len())
		floats.ScaleTo(out, c, e.values())

		return &Eager{data: out, dtype: e.dtype}, nil
	}
	n, bk, err := operand(a)
	if err != nil {
		return nil, err
	}

	return &Lazy{node: newScale(n, c, n.dtype), backend: bk}, nil
}

// ScaleBy returns s·a where s is a length-1 handle (e.g. a Dot result).
// It exists so scalar step sizes computed mid-graph can multiply vectors
// without being realized first: a fully lazy iteration stays one graph.
func ScaleBy(a, s Array) (Array, error) {
	if a == nil || s == nil {
		return nil, ErrNilArray
	}
	if s.Len() != 1 {
		return nil, fmt.Errorf("scaleby: want scalar of length 1, got %d: %w", s.Len(), ErrShapeMismatch)
	}
	dt, err := Promote(a.Dtype(), s.Dtype())
	if err != nil {
		return nil, err
	}
	if ae, ok := a.(*Eager); ok {
		if se, ok2 := s.(*Eager); ok2 {
			out := make([]float64, ae.Len())
			floats.ScaleTo(out, se.values()[0], ae.values())

			return &Eager{data: out, dtype: dt}, nil
		}
	}
	na, nb, bk, err := operands(a, s)
	if err != nil {
		return nil, err
	}

	return &Lazy{node: newScaleBy(na, nb, dt), backend: bk}, nil
}

// Dot returns the inner product <a, b> as a length-1 handle. For lazy
// operands, realizing the result forces only a scalar out of the backend.
func Dot(a, b Array) (Array, error) {
	if err := sameLen("dot", a, b); err != nil {
		return nil, err
	}
	dt, err := Promote(a.Dtype(), b.Dtype())
	if err != nil {
		return nil, err
	}
	if ae, ok := a.(*Eager); ok {
		if be, ok2 := b.(*Eager); ok2 {
			v := floats.Dot(ae.values(), be.values())

			return &Eager{data: []float64{v}, dtype: dt}, nil
		}
	}
	na, nb, bk, err := operands(a, b)
	if err != nil {
		return nil, err
	}

	return &Lazy{node: newDot(na, nb, dt), backend: bk}, nil
}

// Norm returns the Euclidean (L2) norm of a as a length-1 handle.
func Norm(a Array) (Array, error) {
	if a == nil {
		return nil, ErrNilArray
	}
	if e, ok := a.(*Eager); ok {
		return &Eager{data: []float64{floats.Norm(e.values(), 2)}, dtype: e.dtype}, nil
	}
	n, bk, err := operand(a)
	if err != nil {
		return nil, err
	}

	return &Lazy{node: newNorm(n), backend: bk}, nil
}

// Concat concatenates the parts in order into one handle. Used by stacked
// composites; lazy and eager parts may be mixed freely.
func Concat(parts ...Array) (Array, error) {
	if len(parts) == 0 {
		return nil, ErrEmpty
	}
	dt := parts[0].Dtype()
	allEager := true
	total := 0
	var err error
	for i, p := range parts {
		if p == nil {
			return nil, fmt.Errorf("concat: part %d: %w", i, ErrNilArray)
		}
		if i > 0 {
			if dt, err = Promote(dt, p.Dtype()); err != nil {
				return nil, fmt.Errorf("concat: part %d: %w", i, err)
			}
		}
		if _, ok := p.(*Eager); !ok {
			allEager = false
		}
		total += p.Len()
	}
	if allEager {
		out := make([]float64, 0, total)
		for _, p := range parts {
			out = append(out, p.(*Eager).values()...)
		}

		return &Eager{data: out, dtype: dt}, nil
	}
	nodes := make([]*Node, len(parts))
	var bk Backend
	for i, p := range parts {
		n, pbk, operr := operand(p)
		if operr != nil {
			return nil, fmt.Errorf("concat: part %d: %w", i, operr)
		}
		nodes[i] = n
		if bk, err = mergeBackend(bk, pbk); err != nil {
			return nil, fmt.Errorf("concat: part %d: %w", i, err)
		}
	}

	return &Lazy{node: newConcat(dt, nodes), backend: bk}, nil
}

// Slice extracts length elements of a starting at offset. Bounds are
// checked against the handle's metadata, never against realized data.
func Slice(a Array, offset, length int) (Array, error) {
	if a == nil {
		return nil, ErrNilArray
	}
	if length <= 0 {
		return nil, ErrEmpty
	}
	if offset < 0 || offset+length > a.Len() {
		return nil, fmt.Errorf("slice [%d:%d) of length %d: %w", offset, offset+length, a.Len(), ErrShapeMismatch)
	}
	if e, ok := a.(*Eager); ok {
		out := make([]float64, length)
		copy(out, e.values()[offset:offset+length])

		return &Eager{data: out, dtype: e.dtype}, nil
	}
	n, bk, err := operand(a)
	if err != nil {
		return nil, err
	}

	return &Lazy{node: newSlice(n, offset, length), backend: bk}, nil
}

// Apply runs a primitive-operator kernel over x, producing a handle of the
// given output length and dtype. This is the single choke point where the
// eagerness-preservation rule is enforced for operator application: an
// Eager x runs the kernel now, a Lazy x appends an apply node. The label
// names the operator in execution diagnostics.
func Apply(label string, length int, dtype Dtype, k Kernel, x Array) (Array, error) {
	if x == nil {
		return nil, ErrNilArray
	}
	if k == nil {
		return nil, fmt.Errorf("apply %s: nil kernel: %w", label, ErrUnsupported)
	}
	if length <= 0 {
		return nil, ErrEmpty
	}
	if !dtype.valid() {
		return nil, fmt.Errorf("apply %s: %w", label, ErrDtypeMismatch)
	}
	if e, ok := x.(*Eager); ok {
		out := make([]float64, length)
		k(out, e.values())

		return &Eager{data: out, dtype: dtype}, nil
	}
	n, bk, err := operand(x)
	if err != nil {
		return nil, err
	}

	return &Lazy{node: newApply(label, k, length, dtype, n), backend: bk}, nil
}

// --------------------------- internal helpers ---------------------------

// binary implements Add/Sub/Div over the shared validate-then-branch path.
func binary(code OpCode, a, b Array) (Array, error) {
	if err := sameLen(code.String(), a, b); err != nil {
		return nil, err
	}
	dt, err := Promote(a.Dtype(), b.Dtype())
	if err != nil {
		return nil, err
	}
	ae, aok := a.(*Eager)
	be, bok := b.(*Eager)
	if aok && bok {
		out := make([]float64, ae.Len())
		switch code {
		case OpAdd:
			floats.AddTo(out, ae.values(), be.values())
		case OpSub:
			floats.SubTo(out, ae.values(), be.values())
		case OpDiv:
			floats.DivTo(out, ae.values(), be.values())
		}

		return &Eager{data: out, dtype: dt}, nil
	}
	na, nb, bk, err := operands(a, b)
	if err != nil {
		return nil, err
	}

	return &Lazy{node: newBinary(code, na, nb, dt), backend: bk}, nil
}

// sameLen rejects nil operands and disagreeing lengths, naming both.
func sameLen(op string, a, b Array) error {
	if a == nil || b == nil {
		return ErrNilArray
	}
	if a.Len() != b.Len() {
		return fmt.Errorf("%s: lengths %d and %d: %w", op, a.Len(), b.Len(), ErrShapeMismatch)
	}

	return nil
}

// operand resolves a handle to its graph node: a Lazy hands out its node
// and backend, an Eager is captured as a fresh leaf with no backend.
func operand(a Array) (*Node, Backend, error) {
	switch v := a.(type) {
	case *Eager:
		return newLeaf(v.values(), v.dtype), nil, nil
	case *Lazy:
		return v.node, v.backend, nil
	default:
		return nil, nil, fmt.Errorf("%T: %w", a, ErrUnsupported)
	}
}

// operands resolves a binary pair and the backend the result belongs to.
func operands(a, b Array) (*Node, *Node, Backend, error) {
	na, ba, err := operand(a)
	if err != nil {
		return nil, nil, nil, err
	}
	nb, bb, err := operand(b)
	if err != nil {
		return nil, nil, nil, err
	}
	bk, err := mergeBackend(ba, bb)
	if err != nil {
		return nil, nil, nil, err
	}

	return na, nb, bk, nil
}

// mergeBackend picks the single backend of a multi-operand expression.
// Distinct non-nil backends cannot share one deferred graph.
func mergeBackend(a, b Backend) (Backend, error) {
	switch {
	case a == nil:
		return b, nil
	case b == nil || a == b:
		return a, nil
	default:
		return nil, ErrBackendMismatch
	}
}
