// SPDX-License-Identifier: MIT
// Package array: numeric element types and the promotion policy.
//
// Dtype is pure metadata: values are always computed and stored as float64,
// while the dtype tags what precision the producing source declared. The
// promotion policy is explicit and total over known dtypes — widest wins —
// so mixed-precision compositions never fail, only unknown kinds do.

package array

import "fmt"

// Dtype identifies the declared element type of a handle.
// The zero value is invalid on purpose: a forgotten dtype must surface as
// ErrDtypeMismatch instead of silently defaulting.
type Dtype uint8

const (
	// Float32 tags single-precision sources.
	Float32 Dtype = iota + 1

	// Float64 tags double-precision sources (the widest supported kind).
	Float64
)

// String returns a stable lower-case name, "invalid" for unknown kinds.
func (d Dtype) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// valid reports whether d is one of the known kinds.
func (d Dtype) valid() bool { return d == Float32 || d == Float64 }

// Promote resolves the result dtype of combining two operands: the widest
// of the two wins (Float32 ⊕ Float64 ⇒ Float64). This is the single,
// documented promotion policy of the whole library; composites and
// elementwise ops all defer here.
//
// Errors:
//   - ErrDtypeMismatch when either operand dtype is invalid/unknown.
func Promote(a, b Dtype) (Dtype, error) {
	if !a.valid() || !b.valid() {
		return 0, fmt.Errorf("promote %s and %s: %w", a, b, ErrDtypeMismatch)
	}
	if a == Float64 || b == Float64 {
		return Float64, nil
	}

	return Float32, nil
}
