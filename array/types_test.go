package array_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kmarenkova/linop/array"
)

func TestPromote(t *testing.T) {
	for _, tc := range []struct {
		name string
		a, b array.Dtype
		want array.Dtype
	}{
		{"f32+f32", array.Float32, array.Float32, array.Float32},
		{"f32+f64", array.Float32, array.Float64, array.Float64},
		{"f64+f32", array.Float64, array.Float32, array.Float64},
		{"f64+f64", array.Float64, array.Float64, array.Float64},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := array.Promote(tc.a, tc.b)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestPromoteInvalid(t *testing.T) {
	var none array.Dtype
	_, err := array.Promote(none, array.Float64)
	require.True(t, errors.Is(err, array.ErrDtypeMismatch))

	_, err = array.Promote(array.Float32, none)
	require.True(t, errors.Is(err, array.ErrDtypeMismatch))
}

func TestDtypeString(t *testing.T) {
	require.Equal(t, "float32", array.Float32.String())
	require.Equal(t, "float64", array.Float64.String())
	require.Equal(t, "invalid", array.Dtype(0).String())
}
