package solver

import (
	"errors"

	"github.com/kmarenkova/linop/array"
)

// ErrNilOperator indicates a nil operator was passed to a solver.
var ErrNilOperator = errors.New("solver: nil operator")

// ErrNilData indicates nil right-hand-side data.
var ErrNilData = errors.New("solver: nil data")

// ErrShapeMismatch indicates operator/data/guess lengths disagree.
var ErrShapeMismatch = errors.New("solver: shape mismatch")

// ErrNonSquare indicates CG was given a rectangular operator.
var ErrNonSquare = errors.New("solver: operator is not square")

// ErrBadOptions indicates a nonsensical configuration (e.g. MaxIterations <= 0).
var ErrBadOptions = errors.New("solver: bad options")

// Defaults (single source of truth; DefaultOptions must mirror these).
const (
	// DefaultMaxIterations caps the iteration count.
	DefaultMaxIterations = 100

	// DefaultTolerance is the residual-norm convergence threshold.
	// Set Tolerance <= 0 to disable the per-iteration check entirely: the
	// solver then runs exactly MaxIterations and, over lazy inputs,
	// accumulates one deferred graph realized once at the end.
	DefaultTolerance = 1e-8

	// DefaultDamp disables Tikhonov damping in CGLS.
	DefaultDamp = 0.0
)

// Options configures the iterative solvers.
//   - MaxIterations: hard iteration cap (> 0).
//   - Tolerance: stop once the residual norm drops below it; <= 0 disables
//     the check (and with it any mid-run realization of lazy inputs).
//   - Damp: CGLS-only Tikhonov factor, minimizing ‖Ax−b‖² + damp·‖x‖².
type Options struct {
	MaxIterations int
	Tolerance     float64
	Damp          float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		Damp:          DefaultDamp,
	}
}

// Reason signals which condition terminated an iteration. Hitting the
// iteration cap is a structured outcome, not an error: the approximate
// solution may still be usable, and the caller decides.
type Reason uint8

const (
	// Converged: the residual norm dropped below Options.Tolerance, or an
	// eager run reached an exactly zero residual.
	Converged Reason = iota + 1

	// MaxIterations: the iteration cap was reached before convergence
	// (the usual reason when the tolerance check is disabled; an eager run
	// that hits an exactly zero residual still reports Converged).
	MaxIterations
)

// String returns a stable name for logs and test failures.
func (r Reason) String() string {
	switch r {
	case Converged:
		return "converged"
	case MaxIterations:
		return "max-iterations"
	default:
		return "unknown"
	}
}

// Result reports a finished solve. X is always realized: for a lazy run
// the final materialization is the (single) point the backend executes.
// Residual is the last residual norm observed by the tolerance check, or
// NaN when the check was disabled (nothing was realized mid-run to
// measure it).
type Result struct {
	X          *array.Eager
	Iterations int
	Residual   float64
	Reason     Reason
}
