package solver

import (
	"math"

	"github.com/kmarenkova/linop/array"
	"github.com/kmarenkova/linop/operator"
)

// CG solves the square system A·x = b by the conjugate-gradient method.
// A must be self-adjoint positive definite for the theory to hold; the
// solver itself only requires the operator contract and does not verify
// definiteness.
//
// x0 is the starting guess; nil means the zero vector. With a positive
// Tolerance the residual norm ‖b − A·x‖ is checked once per iteration —
// over lazy inputs this realizes a length-1 scalar, never the iterate.
// With Tolerance <= 0 the loop runs up to MaxIterations with no mid-run
// realization at all; an eager run still exits early once the residual
// is exactly zero, since further iterations would divide zero by zero.
//
// Termination is always signaled via Result.Reason; hitting the cap is a
// structured outcome, not an error.
func CG(a operator.Operator, b, x0 array.Array, opts Options) (Result, error) {
	m, n, err := validate(a, b, opts)
	if err != nil {
		return Result{}, err
	}
	if m != n {
		return Result{}, ErrNonSquare
	}

	x, r, err := initState(a, b, x0, n)
	if err != nil {
		return Result{}, err
	}
	p := r
	gamma, err := array.Dot(r, r)
	if err != nil {
		return Result{}, err
	}

	check := opts.Tolerance > 0
	residual := math.NaN()
	if check {
		// Guard against an already-converged guess: iterating on a zero
		// residual would divide by a zero gamma.
		g, serr := array.Scalar(gamma)
		if serr != nil {
			return Result{}, serr
		}
		residual = math.Sqrt(g)
		if residual < opts.Tolerance {
			return finish(x, 0, residual, Converged)
		}
	}
	for k := 0; k < opts.MaxIterations; k++ {
		if exactZero(gamma) {
			return finish(x, k, 0, Converged)
		}
		q, ferr := a.Forward(p)
		if ferr != nil {
			return Result{}, ferr
		}
		delta, derr := array.Dot(p, q)
		if derr != nil {
			return Result{}, derr
		}
		alpha, aerr := array.Div(gamma, delta)
		if aerr != nil {
			return Result{}, aerr
		}
		if x, err = addScaled(x, p, alpha); err != nil {
			return Result{}, err
		}
		if r, err = subScaled(r, q, alpha); err != nil {
			return Result{}, err
		}
		gammaNew, gerr := array.Dot(r, r)
		if gerr != nil {
			return Result{}, gerr
		}
		if check {
			g, serr := array.Scalar(gammaNew)
			if serr != nil {
				return Result{}, serr
			}
			residual = math.Sqrt(g)
			if residual < opts.Tolerance {
				return finish(x, k+1, residual, Converged)
			}
		}
		beta, berr := array.Div(gammaNew, gamma)
		if berr != nil {
			return Result{}, berr
		}
		if p, err = addScaled(r, p, beta); err != nil {
			return Result{}, err
		}
		gamma = gammaNew
	}

	return finish(x, opts.MaxIterations, residual, MaxIterations)
}
