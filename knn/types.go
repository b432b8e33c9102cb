package knn

import (
	"errors"

	"github.com/katalvlaran/dtwnn/metrics"
	"github.com/katalvlaran/dtwnn/series"
)

// Sentinel errors returned by the searchers.
var (
	// ErrEmptyDataset indicates a searcher without a backing dataset.
	ErrEmptyDataset = errors.New("knn: no dataset supplied")

	// ErrInvalidConfiguration indicates a distance function the search
	// strategy cannot use.
	ErrInvalidConfiguration = errors.New("knn: distance function incompatible with search strategy")

	// ErrNoDistanceComputed indicates Distances was called before a search.
	ErrNoDistanceComputed = errors.New("knn: no distances available, run a search first")

	// ErrBadK indicates a non-positive neighbour count.
	ErrBadK = errors.New("knn: k must be at least 1")

	// ErrBadID indicates a series id outside the dataset.
	ErrBadID = errors.New("knn: series id out of range")
)

// Neighbor is one search result. ID is the position of the series in the
// searched dataset.
type Neighbor struct {
	ID       int
	Series   series.Series
	Distance float64
}

// Searcher is the common API of DTWSearch and LinearSearch.
type Searcher interface {
	// KNearest returns every series tied for the best distance to query.
	KNearest(query series.Series, k int) ([]Neighbor, error)

	// LeaveOneOut is KNearest for the dataset series id, never comparing
	// it with itself.
	LeaveOneOut(id, k int) ([]Neighbor, error)

	// KBest returns the k nearest series plus any ties at the k-th distance,
	// ordered by (distance, id).
	KBest(query series.Series, k int) ([]Neighbor, error)

	// Distances returns the distances of the last search, one per neighbour.
	Distances() ([]float64, error)
}

// Options configures a searcher.
//
//   - SkipIdentical - ignore candidates at distance 0 from the query.
//   - Metrics       - optional collector for candidate/prune/compute counts.
type Options struct {
	SkipIdentical bool
	Metrics       *metrics.Collector
}

// Option is a functional option for searchers.
type Option func(*Options)

// WithSkipIdentical makes searches ignore candidates identical to the query
// (distance 0).
func WithSkipIdentical() Option {
	return func(o *Options) {
		o.SkipIdentical = true
	}
}

// WithMetrics attaches a metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *Options) {
		o.Metrics = c
	}
}

// DefaultOptions returns options with identical candidates kept and no metrics.
func DefaultOptions() Options {
	return Options{}
}
