// Package solver provides iterative least-squares solvers written against
// the narrow operator contract: repeated Forward/Adjoint calls plus vector
// arithmetic, nothing else. A solver therefore never knows — or needs to
// know — whether it is driving an eager or a lazy operator.
//
// Two schemes are included:
//
//	CG(A, b, x0, opts)    conjugate gradients for square self-adjoint
//	                      positive-definite systems A·x = b
//	CGLS(A, b, x0, opts)  conjugate gradients on the normal equations for
//	                      rectangular min ‖A·x − b‖² + damp·‖x‖²
//
// Laziness end-to-end: every vector update uses the lazy-preserving array
// ops, and scalar step sizes are carried as length-1 handles, so a solve
// over lazy inputs builds one deferred graph across all iterations. With
// the tolerance check enabled, each iteration realizes only a scalar
// residual; with it disabled (Tolerance <= 0) the backend executes exactly
// once, when the final iterate is materialized.
//
// Termination is reported, never hidden: Result.Reason says whether the
// tolerance was met or the iteration cap was the cause, and a capped run
// still returns its (possibly useful) approximate solution.
package solver
