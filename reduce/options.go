package reduce

import (
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/dtwnn/distance"
	"github.com/katalvlaran/dtwnn/metrics"
	"github.com/katalvlaran/dtwnn/series"
	"github.com/sirupsen/logrus"
)

// Sentinel errors for numerosity reduction.
var (
	// ErrEmptyDataset indicates a reduction without series.
	ErrEmptyDataset = errors.New("reduce: no dataset supplied")

	// ErrBadPercent indicates a removal percentage outside [0, 100].
	ErrBadPercent = errors.New("reduce: percentage must be in [0, 100]")

	// ErrBadWorkers indicates a non-positive worker count.
	ErrBadWorkers = errors.New("reduce: workers must be at least 1")
)

// DefaultPercent is the share of each targeted class removed by default.
const DefaultPercent = 10

// Ordering selects which sequence Select walks.
type Ordering int

const (
	// OrderRanked walks the phase-3 ranked list; tie-breaks only reorder
	// Ranking.Priority.
	OrderRanked Ordering = iota

	// OrderPriority walks the tie-broken priority sequence (phase 4).
	OrderPriority
)

// Options configures a reduction.
//
//   - Percent     - share of the targeted series to remove, in [0, 100].
//   - Classes     - 1-based class-index range to reduce ("first-last").
//   - Distance    - distance function; DTW uses LB_Keogh search, anything
//     else a linear scan.
//   - Workers     - goroutines for the leave-one-out graph (≥ 1).
//   - PooledQuota - one quota for all targeted classes instead of one per
//     class.
//   - Ordering    - OrderRanked (default) or OrderPriority.
//   - Logger      - phase progress at Debug level.
//   - Metrics     - optional Prometheus collector.
type Options struct {
	Percent     int
	Classes     series.Range
	Distance    distance.Func
	Workers     int
	PooledQuota bool
	Ordering    Ordering
	Logger      logrus.FieldLogger
	Metrics     *metrics.Collector
}

// Option is a functional option for Rank, Select and Reduce.
type Option func(*Options)

// WithPercent sets the removal percentage.
func WithPercent(p int) Option {
	return func(o *Options) {
		o.Percent = p
	}
}

// WithClassRange sets the class-index range to reduce.
func WithClassRange(r series.Range) Option {
	return func(o *Options) {
		o.Classes = r
	}
}

// WithDistance sets the distance function.
func WithDistance(df distance.Func) Option {
	return func(o *Options) {
		o.Distance = df
	}
}

// WithWorkers sets the number of leave-one-out workers.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithPooledQuota uses a single quota across all targeted classes.
func WithPooledQuota() Option {
	return func(o *Options) {
		o.PooledQuota = true
	}
}

// WithOrdering selects the sequence walked by Select.
func WithOrdering(ord Ordering) Option {
	return func(o *Options) {
		o.Ordering = ord
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// DefaultOptions returns 10% removal over every class with DTW (10% band),
// one worker, per-class quotas, ranked ordering and a silent logger.
func DefaultOptions() Options {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	return Options{
		Percent:  DefaultPercent,
		Classes:  series.MustParseRange(series.DefaultRange),
		Distance: distance.NewDTW(10),
		Workers:  1,
		Ordering: OrderRanked,
		Logger:   quiet,
	}
}

// build applies opts over the defaults and validates the result.
func build(opts []Option) (Options, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Percent < 0 || cfg.Percent > 100 {
		return cfg, fmt.Errorf("%w: got %d", ErrBadPercent, cfg.Percent)
	}
	if cfg.Workers < 1 {
		return cfg, fmt.Errorf("%w: got %d", ErrBadWorkers, cfg.Workers)
	}
	if cfg.Distance == nil {
		cfg.Distance = distance.NewDTW(10)
	}
	if cfg.Logger == nil {
		cfg.Logger = DefaultOptions().Logger
	}

	return cfg, nil
}
