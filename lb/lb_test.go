package lb_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/dtwnn/dtw"
	"github.com/katalvlaran/dtwnn/lb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope_Window(t *testing.T) {
	q := []float64{3, 1, 4, 1, 5, 9, 2}

	env, err := lb.NewEnvelope(q, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 2, 2}, env.Lower)
	assert.Equal(t, []float64{3, 4, 4, 5, 9, 9, 9}, env.Upper)

	// w = 0 reproduces the query itself.
	env, err = lb.NewEnvelope(q, 0)
	require.NoError(t, err)
	assert.Equal(t, q, env.Lower)
	assert.Equal(t, q, env.Upper)

	// Oversized windows are clipped to the whole series.
	env, err = lb.NewEnvelope(q, 100)
	require.NoError(t, err)
	for i := range q {
		assert.Equal(t, 1.0, env.Lower[i])
		assert.Equal(t, 9.0, env.Upper[i])
	}
}

// TestNewEnvelope_AllNegative guards the running-max identity: a window of
// negative values must keep its true (negative) maximum.
func TestNewEnvelope_AllNegative(t *testing.T) {
	env, err := lb.NewEnvelope([]float64{-5, -3, -4}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -3, -3}, env.Upper)
	assert.Equal(t, []float64{-5, -5, -4}, env.Lower)
}

func TestKeogh_Errors(t *testing.T) {
	env, err := lb.NewEnvelope([]float64{1, 2, 3}, 1)
	require.NoError(t, err)

	_, err = lb.Keogh(env, []float64{1, 2})
	assert.ErrorIs(t, err, lb.ErrDimensionMismatch)

	_, err = lb.Keogh(env, nil)
	assert.ErrorIs(t, err, lb.ErrEmptyInput)

	_, err = lb.NewEnvelope(nil, 1)
	assert.ErrorIs(t, err, lb.ErrEmptyInput)
}

// TestKeogh_ExcludesLastPosition documents the fixed boundary policy.
func TestKeogh_ExcludesLastPosition(t *testing.T) {
	env, err := lb.NewEnvelope([]float64{0, 0, 0}, 0)
	require.NoError(t, err)

	d, err := lb.Keogh(env, []float64{3, -4, 100})
	require.NoError(t, err)
	assert.Equal(t, 5.0, d)
}

// TestKeogh_Admissible checks LB_Keogh ≤ banded DTW on random data.
func TestKeogh_Admissible(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	for trial := 0; trial < 300; trial++ {
		n := 1 + r.Intn(40)
		p := r.Intn(101)
		q := make([]float64, n)
		c := make([]float64, n)
		for i := 0; i < n; i++ {
			q[i] = r.NormFloat64()*2 - 1
			c[i] = r.NormFloat64()*2 + 0.5
		}

		env, err := lb.NewEnvelope(q, dtw.Window(p, n))
		require.NoError(t, err)
		bound, err := lb.Keogh(env, c)
		require.NoError(t, err)

		opts := dtw.DefaultOptions()
		opts.WindowPercent = p
		exact, err := dtw.Distance(q, c, &opts)
		require.NoError(t, err)

		assert.LessOrEqual(t, bound, exact+1e-9, "n=%d p=%d", n, p)
		assert.False(t, math.IsNaN(bound))
	}
}
