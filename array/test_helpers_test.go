// Package array_test: shared helpers for the array test files.
package array_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmarenkova/linop/array"
)

// countingBackend wraps the in-process backend and counts Execute calls,
// so tests can observe exactly how often a graph is handed to the backend.
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

// failingBackend rejects every execution with a fixed error, standing in
// for a remote backend whose workers are gone.
type failingBackend struct {
	err error
}

func (f *failingBackend) Execute(*array.Node) ([]float64, error) {
	return nil, f.err
}

// mustEager builds a realized handle or fails the test.
func mustEager(t *testing.T, data []float64) *array.Eager {
	t.Helper()
	e, err := array.NewEager(data, array.Float64)
	require.NoError(t, err)

	return e
}

// mustDeferred ingests data as a lazy leaf on bk or fails the test.
func mustDeferred(t *testing.T, bk array.Backend, data []float64) *array.Lazy {
	t.Helper()
	l, err := array.Deferred(bk, data, array.Float64)
	require.NoError(t, err)

	return l
}

// realizeValues materializes a handle and returns its data.
func realizeValues(t *testing.T, a array.Array) []float64 {
	t.Helper()
	e, err := array.Materialize(a)
	require.NoError(t, err)

	return e.Values()
}
