package distance_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/dtwnn/distance"
	"github.com/katalvlaran/dtwnn/dtw"
	"github.com/katalvlaran/dtwnn/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s(vals ...float64) series.Series { return series.Series{Values: vals} }

func TestDTW_Distance(t *testing.T) {
	d := distance.NewDTW(100)
	got, err := d.Distance(s(0, 0), s(0, 5), math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	_, err = d.Distance(s(1, 2), s(1), math.Inf(1))
	assert.ErrorIs(t, err, distance.ErrDimensionMismatch)
}

func TestDTW_AttributeRange(t *testing.T) {
	d := distance.NewDTW(0)
	d.Attributes = series.MustParseRange("first-2")

	// Only the first two positions count.
	got, err := d.Distance(s(1, 2, 100), s(1, 2, -100), math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
	assert.Equal(t, []float64{1, 2}, d.Project(s(1, 2, 100)))

	d.Attributes = d.Attributes.WithInvert(true)
	got, err = d.Distance(s(1, 2, 3), s(9, 9, 3), math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got, "single remaining point, squared difference 0")

	d.Attributes = series.MustParseRange("9")
	_, err = d.Distance(s(1, 2, 3), s(1, 2, 3), math.Inf(1))
	assert.ErrorIs(t, err, distance.ErrNoAttributes)
}

func TestEuclidean_Distance(t *testing.T) {
	e := distance.NewEuclidean()
	got, err := e.Distance(s(0, 0), s(3, 4), math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	got, err = e.Distance(s(0, 0), s(3, 4), 4)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1), "above cutoff returns +Inf")

	got, err = e.Distance(s(0, 0), s(3, 4), 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got, "cutoff equal to the distance is exact")
}

func TestParse(t *testing.T) {
	f, err := distance.Parse("")
	require.NoError(t, err)
	d, ok := f.(*distance.DTW)
	require.True(t, ok)
	assert.Equal(t, dtw.DefaultWindowPercent, d.WindowPercent)
	assert.Equal(t, "dtw -W 10", f.String())

	f, err = distance.Parse("distance.DTWDistance -W 25 -R 2-last -V")
	require.NoError(t, err)
	d, ok = f.(*distance.DTW)
	require.True(t, ok)
	assert.Equal(t, 25, d.WindowPercent)
	assert.True(t, d.Attributes.Inverted())
	assert.Equal(t, "dtw -W 25 -R 2-last -V", f.String())

	f, err = distance.Parse("EuclideanDistance")
	require.NoError(t, err)
	_, ok = f.(*distance.Euclidean)
	assert.True(t, ok)
	assert.Equal(t, "euclidean", f.String())

	// Round trip.
	again, err := distance.Parse(d.String())
	require.NoError(t, err)
	assert.Equal(t, d.String(), again.String())
}

func TestParse_Errors(t *testing.T) {
	for _, spec := range []string{
		"manhattan",
		"dtw -W",
		"dtw -W 101",
		"dtw -W x",
		"dtw -R",
		"dtw -R 0",
		"dtw -X",
		"euclidean -W 10",
	} {
		_, err := distance.Parse(spec)
		assert.ErrorIs(t, err, distance.ErrInvalidConfiguration, spec)
	}
}
