// Package solver_test: end-to-end laziness tests. A solver must be able to
// drive a lazy operator without ever forcing intermediate materialization;
// the counting backend below makes every forced execution observable.
package solver_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/kmarenkova/linop/array"
	"github.com/kmarenkova/linop/operator"
	"github.com/kmarenkova/linop/solver"
)

// countingBackend wraps the in-process backend and counts Execute calls.
type countingBackend struct {
	inner *array.Local
	calls int
}

func newCountingBackend() *countingBackend {
	return &countingBackend{inner: array.NewLocal()}
}

func (c *countingBackend) Execute(n *array.Node) ([]float64, error) {
	c.calls++

	return c.inner.Execute(n)
}

// lazyChain builds Chain(A, D, E): one rectangular explicit operator and
// two square diagonals, m×n overall.
func lazyChain(t *testing.T, m, n int) operator.Operator {
	t.Helper()
	rng := rand.New(rand.NewSource(7))

	data := make([]float64, m*n)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	a, err := operator.FromDense(mat.NewDense(m, n, data), array.Float64)
	require.NoError(t, err)

	diag := func(seed int64) operator.Operator {
		r := rand.New(rand.NewSource(seed))
		d := make([]float64, n)
		for i := range d {
			d[i] = 1 + r.Float64()
		}
		op, derr := operator.Diagonal(d, array.Float64)
		require.NoError(t, derr)

		return op
	}

	chain, err := operator.Chain(a, diag(8), diag(9))
	require.NoError(t, err)

	return chain
}

// TestLazySolveRealizesOnce: with the residual check disabled, 50 CGLS
// iterations over a lazy chain of three operators accumulate one deferred
// graph, and the backend executes exactly once — at the final materialize.
func TestLazySolveRealizesOnce(t *testing.T) {
	const m, n = 70, 60
	bk := newCountingBackend()
	op := lazyChain(t, m, n)

	rng := rand.New(rand.NewSource(12))
	data := make([]float64, m)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	b, err := array.Deferred(bk, data, array.Float64)
	require.NoError(t, err)

	opts := solver.Options{MaxIterations: 50, Tolerance: 0}
	res, err := solver.CGLS(op, b, nil, opts)
	require.NoError(t, err)

	require.Equal(t, solver.MaxIterations, res.Reason)
	require.Equal(t, 50, res.Iterations)
	require.Equal(t, 1, bk.calls, "the whole solve must execute as one graph")
	require.False(t, res.X.IsLazy())
	require.Equal(t, n, res.X.Len())
}

// TestLazySolveScalarResidualsOnly: with the residual check enabled, each
// iteration realizes one scalar (plus the pre-loop guard and the final
// materialize) — never a full vector mid-run.
func TestLazySolveScalarResidualsOnly(t *testing.T) {
	bk := newCountingBackend()
	d, err := operator.Diagonal([]float64{2, 4, 8}, array.Float64)
	require.NoError(t, err)
	b, err := array.Deferred(bk, []float64{2, 8, 32}, array.Float64)
	require.NoError(t, err)

	res, err := solver.CG(d, b, nil, solver.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, solver.Converged, res.Reason)
	require.InDeltaSlice(t, []float64{1, 2, 4}, res.X.Values(), 1e-8)

	// one scalar per iteration + initial residual guard + final materialize
	require.Equal(t, res.Iterations+2, bk.calls)
}

// TestLazyAndEagerAgree: the same solve over eager and lazy inputs must
// produce identical results.
func TestLazyAndEagerAgree(t *testing.T) {
	bk := array.NewLocal()
	d, err := operator.Diagonal([]float64{3, 5, 7, 9}, array.Float64)
	require.NoError(t, err)
	data := []float64{3, 10, 21, 36}

	be, err := array.NewEager(data, array.Float64)
	require.NoError(t, err)
	bl, err := array.Deferred(bk, data, array.Float64)
	require.NoError(t, err)

	opts := solver.Options{MaxIterations: 3, Tolerance: 0}
	eager, err := solver.CG(d, be, nil, opts)
	require.NoError(t, err)
	lazy, err := solver.CG(d, bl, nil, opts)
	require.NoError(t, err)

	require.Equal(t, eager.X.Values(), lazy.X.Values())
}
