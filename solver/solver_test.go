package solver_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/mat"

	"github.com/kmarenkova/linop/array"
	"github.com/kmarenkova/linop/operator"
	"github.com/kmarenkova/linop/solver"
)

// SolverSuite exercises CG and CGLS over eager inputs.
type SolverSuite struct {
	suite.Suite
}

func TestSolverSuite(t *testing.T) {
	suite.Run(t, new(SolverSuite))
}

func (s *SolverSuite) eager(data []float64) *array.Eager {
	e, err := array.NewEager(data, array.Float64)
	require.NoError(s.T(), err)

	return e
}

// TestCGSmallSPD solves a 2×2 symmetric positive-definite system and
// checks the exact solution.
func (s *SolverSuite) TestCGSmallSPD() {
	// | 4 1 |        | 1 |        | 1/11 |
	// | 1 3 | · x =  | 2 |,  x =  | 7/11 |
	a, err := operator.FromDense(mat.NewDense(2, 2, []float64{4, 1, 1, 3}), array.Float64)
	require.NoError(s.T(), err)

	res, err := solver.CG(a, s.eager([]float64{1, 2}), nil, solver.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), solver.Converged, res.Reason)
	require.LessOrEqual(s.T(), res.Iterations, 2)
	require.Less(s.T(), res.Residual, solver.DefaultTolerance)
	require.InDeltaSlice(s.T(), []float64{1.0 / 11, 7.0 / 11}, res.X.Values(), 1e-8)
}

// TestCGDiagonal solves a diagonal system through the operator contract
// only (no explicit matrix anywhere).
func (s *SolverSuite) TestCGDiagonal() {
	d, err := operator.Diagonal([]float64{2, 4, 8}, array.Float64)
	require.NoError(s.T(), err)

	res, err := solver.CG(d, s.eager([]float64{2, 8, 32}), nil, solver.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), solver.Converged, res.Reason)
	require.InDeltaSlice(s.T(), []float64{1, 2, 4}, res.X.Values(), 1e-8)
}

// TestCGWarmStart starts from the exact solution: the first residual
// check must already be below tolerance.
func (s *SolverSuite) TestCGWarmStart() {
	d, err := operator.Diagonal([]float64{2, 4}, array.Float64)
	require.NoError(s.T(), err)

	res, err := solver.CG(d, s.eager([]float64{2, 8}), s.eager([]float64{1, 2}), solver.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), solver.Converged, res.Reason)
	require.Equal(s.T(), 0, res.Iterations)
	require.InDeltaSlice(s.T(), []float64{1, 2}, res.X.Values(), 1e-10)
}

// TestCGIterationCap caps a hard problem after two iterations: the run
// must report MaxIterations as the termination cause, not fail.
func (s *SolverSuite) TestCGIterationCap() {
	a, err := operator.FromDense(mat.NewDense(3, 3, []float64{
		100, 1, 0,
		1, 50, 1,
		0, 1, 0.01,
	}), array.Float64)
	require.NoError(s.T(), err)

	opts := solver.Options{MaxIterations: 2, Tolerance: 1e-12}
	res, err := solver.CG(a, s.eager([]float64{1, 1, 1}), nil, opts)
	require.NoError(s.T(), err)
	require.Equal(s.T(), solver.MaxIterations, res.Reason)
	require.Equal(s.T(), 2, res.Iterations)
	require.NotNil(s.T(), res.X, "a capped run still returns its approximation")
}

// TestCGLSLeastSquares solves an overdetermined 3×2 system with known
// least-squares solution [1, 2].
func (s *SolverSuite) TestCGLSLeastSquares() {
	a, err := operator.FromDense(mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	}), array.Float64)
	require.NoError(s.T(), err)

	res, err := solver.CGLS(a, s.eager([]float64{1, 2, 3}), nil, solver.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), solver.Converged, res.Reason)
	require.InDeltaSlice(s.T(), []float64{1, 2}, res.X.Values(), 1e-6)
}

// TestCGLSDamped verifies that damping shrinks the solution norm.
func (s *SolverSuite) TestCGLSDamped() {
	a, err := operator.FromDense(mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	}), array.Float64)
	require.NoError(s.T(), err)
	b := s.eager([]float64{1, 2, 3})

	plain, err := solver.CGLS(a, b, nil, solver.DefaultOptions())
	require.NoError(s.T(), err)

	opts := solver.DefaultOptions()
	opts.Damp = 5
	damped, err := solver.CGLS(a, b, nil, opts)
	require.NoError(s.T(), err)

	normOf := func(x *array.Eager) float64 {
		n, err := array.Norm(x)
		require.NoError(s.T(), err)
		v, err := array.Scalar(n)
		require.NoError(s.T(), err)

		return v
	}
	require.Less(s.T(), normOf(damped.X), normOf(plain.X))
}

// TestCGLSThroughComposite drives the solver through a composite tree,
// exercising the contract boundary rather than a bare primitive.
func (s *SolverSuite) TestCGLSThroughComposite() {
	d1, err := operator.Diagonal([]float64{1, 2, 3}, array.Float64)
	require.NoError(s.T(), err)
	d2, err := operator.Diagonal([]float64{2, 2, 2}, array.Float64)
	require.NoError(s.T(), err)
	op, err := operator.Chain(d1, d2) // diag(2,4,6)
	require.NoError(s.T(), err)

	res, err := solver.CGLS(op, s.eager([]float64{2, 4, 6}), nil, solver.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), solver.Converged, res.Reason)
	require.InDeltaSlice(s.T(), []float64{1, 1, 1}, res.X.Values(), 1e-8)
}

func TestSolverValidation(t *testing.T) {
	d, err := operator.Diagonal([]float64{1, 2}, array.Float64)
	require.NoError(t, err)
	rect, err := operator.Null(3, 2, array.Float64)
	require.NoError(t, err)
	b, err := array.NewEager([]float64{1, 2}, array.Float64)
	require.NoError(t, err)

	_, err = solver.CG(nil, b, nil, solver.DefaultOptions())
	require.True(t, errors.Is(err, solver.ErrNilOperator))

	_, err = solver.CG(d, nil, nil, solver.DefaultOptions())
	require.True(t, errors.Is(err, solver.ErrNilData))

	_, err = solver.CG(rect, mustLen3(t), nil, solver.DefaultOptions())
	require.True(t, errors.Is(err, solver.ErrNonSquare))

	_, err = solver.CG(d, mustLen3(t), nil, solver.DefaultOptions())
	require.True(t, errors.Is(err, solver.ErrShapeMismatch))

	_, err = solver.CG(d, b, mustLen3(t), solver.DefaultOptions())
	require.True(t, errors.Is(err, solver.ErrShapeMismatch))

	_, err = solver.CG(d, b, nil, solver.Options{MaxIterations: 0})
	require.True(t, errors.Is(err, solver.ErrBadOptions))
}

func mustLen3(t *testing.T) *array.Eager {
	t.Helper()
	e, err := array.NewEager([]float64{1, 2, 3}, array.Float64)
	require.NoError(t, err)

	return e
}

// TestZeroResidualNoChecks: an eager run that starts (or lands) on an
// exact solution must exit cleanly even with the tolerance check disabled,
// instead of iterating into a 0/0 step size.
func TestZeroResidualNoChecks(t *testing.T) {
	d, err := operator.Diagonal([]float64{2, 4}, array.Float64)
	require.NoError(t, err)
	opts := solver.Options{MaxIterations: 5, Tolerance: 0}

	zero, err := array.NewEager([]float64{0, 0}, array.Float64)
	require.NoError(t, err)

	res, err := solver.CG(d, zero, nil, opts)
	require.NoError(t, err)
	require.Equal(t, solver.Converged, res.Reason)
	require.Equal(t, 0, res.Iterations)
	require.Equal(t, 0.0, res.Residual)
	require.Equal(t, []float64{0, 0}, res.X.Values())

	res, err = solver.CGLS(d, zero, nil, opts)
	require.NoError(t, err)
	require.Equal(t, solver.Converged, res.Reason)
	require.Equal(t, []float64{0, 0}, res.X.Values())

	// exact warm start: r = b − A·x0 is exactly zero
	b, err := array.NewEager([]float64{2, 8}, array.Float64)
	require.NoError(t, err)
	x0, err := array.NewEager([]float64{1, 2}, array.Float64)
	require.NoError(t, err)

	res, err = solver.CG(d, b, x0, opts)
	require.NoError(t, err)
	require.Equal(t, solver.Converged, res.Reason)
	require.Equal(t, 0, res.Iterations)
	require.Equal(t, []float64{1, 2}, res.X.Values())
}

// TestResidualDisabled: with the check off the solver never measures a
// residual, so the report carries NaN rather than a stale number.
func TestResidualDisabled(t *testing.T) {
	d, err := operator.Diagonal([]float64{2, 4}, array.Float64)
	require.NoError(t, err)
	b, err := array.NewEager([]float64{2, 8}, array.Float64)
	require.NoError(t, err)

	res, err := solver.CG(d, b, nil, solver.Options{MaxIterations: 2, Tolerance: 0})
	require.NoError(t, err)
	require.Equal(t, solver.MaxIterations, res.Reason)
	require.True(t, math.IsNaN(res.Residual))
	require.InDeltaSlice(t, []float64{1, 2}, res.X.Values(), 1e-10)
}
