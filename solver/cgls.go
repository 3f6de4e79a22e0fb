package solver

import (
	"math"

	"github.com/kmarenkova/linop/array"
	"github.com/kmarenkova/linop/operator"
)

// CGLS solves the least-squares problem min ‖A·x − b‖² + damp·‖x‖² for a
// rectangular A by conjugate gradients on the normal equations, without
// ever forming AᵗA. Only Forward, Adjoint and the vector algebra are used.
//
// x0 is the starting guess; nil means the zero vector. The per-iteration
// convergence check compares the gradient norm ‖Aᵗr − damp·x‖ against
// Tolerance; as in CG, a lazy run with Tolerance <= 0 accumulates one
// graph and realizes exactly once.
func CGLS(a operator.Operator, b, x0 array.Array, opts Options) (Result, error) {
	_, n, err := validate(a, b, opts)
	if err != nil {
		return Result{}, err
	}
	damp := opts.Damp

	x, r, err := initState(a, b, x0, n)
	if err != nil {
		return Result{}, err
	}
	s, err := gradient(a, r, x, damp, x0 != nil)
	if err != nil {
		return Result{}, err
	}
	p := s
	gamma, err := array.Dot(s, s)
	if err != nil {
		return Result{}, err
	}

	check := opts.Tolerance > 0
	residual := math.NaN()
	if check {
		// Guard against an already-converged guess: iterating on a zero
		// gradient would divide by a zero gamma.
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
		delta, derr := stepDenominator(q, p, damp)
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
		if s, err = gradient(a, r, x, damp, true); err != nil {
			return Result{}, err
		}
		gammaNew, gerr := array.Dot(s, s)
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
		if p, err = addScaled(s, p, beta); err != nil {
			return Result{}, err
		}
		gamma = gammaNew
	}

	return finish(x, opts.MaxIterations, residual, MaxIterations)
}

// gradient computes s = Aᵗ·r − damp·x, the negative normal-equations
// gradient. The damp term is skipped when damp == 0, and also on the very
// first call with a zero iterate (withX false), keeping graphs lean.
func gradient(a operator.Operator, r, x array.Array, damp float64, withX bool) (array.Array, error) {
	s, err := a.Adjoint(r)
	if err != nil {
		return nil, err
	}
	if damp == 0 || !withX {
		return s, nil
	}
	dx, err := array.Scale(x, damp)
	if err != nil {
		return nil, err
	}

	return array.Sub(s, dx)
}

// stepDenominator computes ‖q‖² (+ damp·‖p‖²) as a scalar handle.
func stepDenominator(q, p array.Array, damp float64) (array.Array, error) {
	delta, err := array.Dot(q, q)
	if err != nil {
		return nil, err
	}
	if damp == 0 {
		return delta, nil
	}
	pp, err := array.Dot(p, p)
	if err != nil {
		return nil, err
	}
	if pp, err = array.Scale(pp, damp); err != nil {
		return nil, err
	}

	return array.Add(delta, pp)
}
