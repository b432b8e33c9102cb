package knn_test

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/katalvlaran/dtwnn/distance"
	"github.com/katalvlaran/dtwnn/knn"
	"github.com/katalvlaran/dtwnn/metrics"
	"github.com/katalvlaran/dtwnn/series"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomDataset returns count series of length n with two classes.
func randomDataset(r *rand.Rand, count, n int) *series.Dataset {
	ds := series.New("a", "b")
	for i := 0; i < count; i++ {
		vals := make([]float64, n)
		for j := range vals {
			vals[j] = r.NormFloat64()
		}
		_ = ds.Add(series.Series{Values: vals, Class: i % 2})
	}

	return ds
}

// bruteForce returns all distances from q to the dataset, by id.
func bruteForce(t *testing.T, ds *series.Dataset, df distance.Func, q series.Series) []float64 {
	out := make([]float64, ds.Len())
	for id, c := range ds.Series {
		d, err := df.Distance(c, q, math.Inf(1))
		require.NoError(t, err)
		out[id] = d
	}

	return out
}

func ids(nbs []knn.Neighbor) []int {
	out := make([]int, len(nbs))
	for i, nb := range nbs {
		out[i] = nb.ID
	}

	return out
}

func TestNewDTWSearch_Errors(t *testing.T) {
	_, err := knn.NewDTWSearch(nil, distance.NewDTW(10))
	assert.ErrorIs(t, err, knn.ErrEmptyDataset)

	_, err = knn.NewDTWSearch(series.New("a"), distance.NewEuclidean())
	assert.ErrorIs(t, err, knn.ErrInvalidConfiguration)

	_, err = knn.NewLinearSearch(series.New("a"), nil)
	assert.ErrorIs(t, err, knn.ErrInvalidConfiguration)

	_, err = knn.New(nil, distance.NewEuclidean())
	assert.ErrorIs(t, err, knn.ErrEmptyDataset)
}

func TestSearch_Validation(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	ds := randomDataset(r, 5, 8)
	s, err := knn.NewDTWSearch(ds, distance.NewDTW(10))
	require.NoError(t, err)

	_, err = s.Distances()
	assert.ErrorIs(t, err, knn.ErrNoDistanceComputed)

	_, err = s.KNearest(ds.Series[0], 0)
	assert.ErrorIs(t, err, knn.ErrBadK)

	_, err = s.KNearest(series.Series{Values: []float64{1, 2}}, 1)
	assert.ErrorIs(t, err, distance.ErrDimensionMismatch)

	_, err = s.LeaveOneOut(5, 1)
	assert.ErrorIs(t, err, knn.ErrBadID)
}

// TestKNearest_MatchesBruteForce: pruning never changes the best distance.
func TestKNearest_MatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for trial := 0; trial < 20; trial++ {
		ds := randomDataset(r, 30, 12)
		df := distance.NewDTW(r.Intn(101))
		s, err := knn.NewDTWSearch(ds, df)
		require.NoError(t, err)

		q := randomDataset(r, 1, 12).Series[0]
		got, err := s.KNearest(q, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)

		all := bruteForce(t, ds, df, q)
		best := math.Inf(1)
		bestID := -1
		for id, d := range all {
			if d < best {
				best, bestID = d, id
			}
		}
		assert.Equal(t, bestID, got[0].ID)
		assert.InDelta(t, best, got[0].Distance, 1e-9)

		dists, err := s.Distances()
		require.NoError(t, err)
		assert.Equal(t, []float64{got[0].Distance}, dists)
	}
}

// TestKNearest_TiesIgnoreK: all series tied for the best distance come back,
// whatever k is.
func TestKNearest_TiesIgnoreK(t *testing.T) {
	ds := series.New("a", "b")
	require.NoError(t, ds.Add(series.Series{Values: []float64{1, 1, 1}, Class: 0}))
	require.NoError(t, ds.Add(series.Series{Values: []float64{1, 1, 1}, Class: 1}))
	require.NoError(t, ds.Add(series.Series{Values: []float64{5, 5, 5}, Class: 0}))

	s, err := knn.NewDTWSearch(ds, distance.NewDTW(0))
	require.NoError(t, err)

	got, err := s.KNearest(series.Series{Values: []float64{0, 0, 0}}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, ids(got))

	dists, err := s.Distances()
	require.NoError(t, err)
	assert.Equal(t, []float64{math.Sqrt(3), math.Sqrt(3)}, dists)
}

func TestLeaveOneOut_SkipsSelf(t *testing.T) {
	ds := series.New("a")
	for _, v := range []float64{0, 1, 3} {
		require.NoError(t, ds.Add(series.Series{Values: []float64{v, v}, Class: 0}))
	}
	s, err := knn.NewDTWSearch(ds, distance.NewDTW(10))
	require.NoError(t, err)

	got, err := s.LeaveOneOut(0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(got))

	got, err = s.LeaveOneOut(2, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(got))
}

func TestKNearest_SkipIdentical(t *testing.T) {
	ds := series.New("a")
	require.NoError(t, ds.Add(series.Series{Values: []float64{0, 0}, Class: 0}))
	require.NoError(t, ds.Add(series.Series{Values: []float64{2, 2}, Class: 0}))

	s, err := knn.NewLinearSearch(ds, distance.NewEuclidean(), knn.WithSkipIdentical())
	require.NoError(t, err)
	got, err := s.KNearest(series.Series{Values: []float64{0, 0}}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(got))
}

// TestLinearSearch_FindsAllTies: without a lower bound every tie is kept.
func TestLinearSearch_FindsAllTies(t *testing.T) {
	ds := series.New("a", "b")
	require.NoError(t, ds.Add(series.Series{Values: []float64{1, 0}, Class: 0}))
	require.NoError(t, ds.Add(series.Series{Values: []float64{0, 1}, Class: 1}))
	require.NoError(t, ds.Add(series.Series{Values: []float64{-1, 0}, Class: 0}))

	s, err := knn.New(ds, distance.NewEuclidean())
	require.NoError(t, err)
	_, isLinear := s.(*knn.LinearSearch)
	require.True(t, isLinear)

	got, err := s.KNearest(series.Series{Values: []float64{0, 0}}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, ids(got))
}

// TestKBest_MatchesSortedBruteForce checks the bounded-heap variant.
func TestKBest_MatchesSortedBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		ds := randomDataset(r, 25, 10)
		df := distance.NewDTW(20)
		s, err := knn.New(ds, df)
		require.NoError(t, err)

		q := randomDataset(r, 1, 10).Series[0]
		k := 1 + r.Intn(6)
		got, err := s.KBest(q, k)
		require.NoError(t, err)
		require.Len(t, got, k)

		all := bruteForce(t, ds, df, q)
		order := make([]int, len(all))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool { return all[order[i]] < all[order[j]] })
		assert.Equal(t, order[:k], ids(got))

		dists, err := s.Distances()
		require.NoError(t, err)
		for i := 1; i < len(dists); i++ {
			assert.LessOrEqual(t, dists[i-1], dists[i])
		}
	}
}

func TestKBest_KeepsTiesAtK(t *testing.T) {
	ds := series.New("a")
	for _, v := range [][]float64{{1, 0}, {0, 1}, {-1, 0}, {5, 5}} {
		require.NoError(t, ds.Add(series.Series{Values: v, Class: 0}))
	}
	s, err := knn.NewLinearSearch(ds, distance.NewEuclidean())
	require.NoError(t, err)

	got, err := s.KBest(series.Series{Values: []float64{0, 0}}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, ids(got))
}

func TestSearch_Metrics(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	ds := randomDataset(r, 40, 16)
	m := metrics.New()
	s, err := knn.NewDTWSearch(ds, distance.NewDTW(10), knn.WithMetrics(m))
	require.NoError(t, err)

	_, err = s.LeaveOneOut(0, 1)
	require.NoError(t, err)

	candidates := testutil.ToFloat64(m.Candidates)
	assert.Equal(t, 39.0, candidates)
	assert.Equal(t, candidates, testutil.ToFloat64(m.Pruned)+testutil.ToFloat64(m.Computed))
}
