// SPDX-License-Identifier: MIT
// Package operator: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the
// operator package. All constructors and calls MUST return these sentinels
// (wrapped with context at the boundary via fmt.Errorf "%w") and tests MUST
// check them via errors.Is. Shape and dtype errors indicate a programming
// error in how an operator tree was built: they are never recovered locally
// and always fail fast.

package operator

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch indicates a dimension disagreement: among composite
	// children at construction, or between an operator and its input at
	// call time. Wrapping context names the offending pair and dimensions.
	ErrShapeMismatch = errors.New("operator: shape mismatch")

	// ErrDtypeMismatch indicates children or inputs disagree on numeric
	// type in a way the promotion policy cannot reconcile.
	ErrDtypeMismatch = errors.New("operator: dtype mismatch")

	// ErrBadShape is returned when a requested shape is invalid (m<=0 or n<=0).
	ErrBadShape = errors.New("operator: invalid shape")

	// ErrNilOperator indicates a nil Operator operand.
	ErrNilOperator = errors.New("operator: nil operator")

	// ErrNilKernel indicates a primitive was constructed without a forward
	// kernel. (A nil adjoint kernel is legal; see ErrNoAdjoint.)
	ErrNilKernel = errors.New("operator: nil forward kernel")

	// ErrNoAdjoint is returned by Adjoint when the primitive declared no
	// adjoint kernel.
	ErrNoAdjoint = errors.New("operator: adjoint is not defined")

	// ErrOperandCount indicates a composite received fewer operands than
	// its algebra requires (two for Sum/Chain, one for stacks).
	ErrOperandCount = errors.New("operator: too few operands")

	// ErrNonSquare signals that a square operator was required (Power).
	ErrNonSquare = errors.New("operator: operator is not square")

	// ErrBadExponent signals a negative Power exponent.
	ErrBadExponent = errors.New("operator: exponent must be >= 0")

	// ErrBadScalar signals a NaN or ±Inf scale factor.
	ErrBadScalar = errors.New("operator: scale factor must be finite")
)

// opErrorf wraps err with an operation tag, preserving the sentinel via %w.
// Use only when err != nil.
func opErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
