// SPDX-License-Identifier: MIT
// Package array: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the array
// package. All operations MUST return these sentinels and tests MUST check
// them via errors.Is. No operation panics on user-triggered error conditions.

package array

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "array: ..." for consistency and to allow
// easy grepping across logs. DO NOT %w wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("ctx: %w", ErrX)
// at the outer boundary — callers will still use errors.Is to match.

var (
	// ErrShapeMismatch indicates that operand lengths disagree, or that an
	// index/offset falls outside the valid range of a handle.
	ErrShapeMismatch = errors.New("array: shape mismatch")

	// ErrDtypeMismatch indicates an invalid or unknown dtype that the
	// promotion policy cannot reconcile. All known real dtypes promote;
	// only the zero value (or a future unknown kind) triggers this.
	ErrDtypeMismatch = errors.New("array: dtype mismatch")

	// ErrNaNInf signals a NaN or ±Inf value encountered at ingestion, where
	// finite values are required by the numeric policy.
	ErrNaNInf = errors.New("array: NaN or Inf encountered")

	// ErrEmpty indicates a handle of length zero was requested or supplied.
	ErrEmpty = errors.New("array: length must be > 0")

	// ErrNilArray indicates a nil Array (or nil data slice) was passed in.
	ErrNilArray = errors.New("array: nil array")

	// ErrNilBackend indicates a Lazy handle has no backend to realize with.
	ErrNilBackend = errors.New("array: nil backend")

	// ErrNilNode indicates a nil deferred-graph node was supplied.
	ErrNilNode = errors.New("array: nil graph node")

	// ErrBackendMismatch indicates two Lazy operands belong to different
	// backends; a single deferred graph must execute on one backend.
	ErrBackendMismatch = errors.New("array: operands belong to different backends")

	// ErrUnsupported marks an Array implementation the engine does not know.
	// The handle set is intentionally closed: Eager and Lazy only.
	ErrUnsupported = errors.New("array: unsupported array implementation")
)

// ExecError carries the failure surfaced when a backend executes a deferred
// graph. Op names the graph node the failure is attributed to: the exact
// failing node for the Local executor, or the realized handle's root node
// when an opaque backend reports a failure without graph context. The
// underlying backend error is preserved verbatim and matchable via
// errors.Is / errors.As.
type ExecError struct {
	Op  string // node kind, e.g. "apply(Diagonal)" or "concat"
	Err error  // underlying cause, never nil
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("array: execute %s: %v", e.Op, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }
