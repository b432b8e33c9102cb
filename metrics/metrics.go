// Package metrics exposes Prometheus instrumentation for neighbour search
// and numerosity reduction: how many candidates were examined, how many
// LB_Keogh pruned, how many needed exact DTW (and how many of those were
// abandoned early), and how long each reduction phase took.
//
// A nil *Collector is valid and records nothing, so instrumented code never
// has to branch on whether metrics are enabled.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dtwnn"

// phase buckets in seconds
var buckets = []float64{.001, .01, .1, .5, 1, 5, 30, 120}

// Collector groups the search and reduction metrics.
type Collector struct {
	Candidates   prometheus.Counter
	Pruned       prometheus.Counter
	Computed     prometheus.Counter
	Abandoned    prometheus.Counter
	PhaseSeconds *prometheus.HistogramVec
}

// New returns an unregistered Collector.
func New() *Collector {
	return &Collector{
		Candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Candidate series examined by neighbour searches.",
		}),
		Pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pruned_total",
			Help:      "Candidates skipped because their lower bound was not below the best distance.",
		}),
		Computed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "distance_computations_total",
			Help:      "Exact distance evaluations.",
		}),
		Abandoned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "abandoned_total",
			Help:      "Exact distance evaluations stopped early against the cutoff.",
		}),
		PhaseSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reduce_phase_seconds",
			Help:      "Time spent in each numerosity-reduction phase.",
			Buckets:   buckets,
		}, []string{"phase"}),
	}
}

// Register adds every metric of c to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, m := range []prometheus.Collector{c.Candidates, c.Pruned, c.Computed, c.Abandoned, c.PhaseSeconds} {
		if err := reg.Register(m); err != nil {
			return err
		}
	}

	return nil
}

// Candidate counts one examined candidate.
func (c *Collector) Candidate() {
	if c != nil {
		c.Candidates.Inc()
	}
}

// Prune counts one candidate rejected by its lower bound.
func (c *Collector) Prune() {
	if c != nil {
		c.Pruned.Inc()
	}
}

// Compute counts one exact distance evaluation; abandoned marks evaluations
// that stopped at the cutoff.
func (c *Collector) Compute(abandoned bool) {
	if c == nil {
		return
	}
	c.Computed.Inc()
	if abandoned {
		c.Abandoned.Inc()
	}
}

// ObservePhase records the time elapsed since start under phase.
func (c *Collector) ObservePhase(phase string, start time.Time) {
	if c != nil {
		c.PhaseSeconds.WithLabelValues(phase).Observe(time.Since(start).Seconds())
	}
}

// WriteFile writes every metric gathered from g to path in the Prometheus
// text exposition format.
func WriteFile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
