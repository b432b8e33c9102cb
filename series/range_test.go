package series_test

import (
	"testing"

	"github.com/katalvlaran/dtwnn/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange_Selections(t *testing.T) {
	cases := []struct {
		spec string
		n    int
		want []int
	}{
		{"first-last", 4, []int{0, 1, 2, 3}},
		{"first", 4, []int{0}},
		{"last", 4, []int{3}},
		{"2-3", 5, []int{1, 2}},
		{"first-2, 4 ,last", 6, []int{0, 1, 3, 5}},
		{"3-last", 4, []int{2, 3}},
		{"9", 4, []int{}},
	}
	for _, tc := range cases {
		r, err := series.ParseRange(tc.spec)
		require.NoError(t, err, tc.spec)
		assert.Equal(t, tc.want, r.Select(tc.n), tc.spec)
	}
}

func TestParseRange_Invert(t *testing.T) {
	r := series.MustParseRange("first-2").WithInvert(true)
	assert.True(t, r.Inverted())
	assert.Equal(t, []int{2, 3}, r.Select(4))
	assert.False(t, r.IsAll())
}

func TestParseRange_Errors(t *testing.T) {
	for _, spec := range []string{"", " ", "a-b", "0", "3-1", "1,,2", "-1"} {
		_, err := series.ParseRange(spec)
		assert.ErrorIs(t, err, series.ErrBadRange, "spec %q", spec)
	}
}

func TestRange_ZeroValueSelectsAll(t *testing.T) {
	var r series.Range
	assert.True(t, r.IsAll())
	assert.True(t, r.Contains(2, 3))
	assert.False(t, r.Contains(3, 3))
	assert.Equal(t, series.DefaultRange, r.String())
}
