package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/katalvlaran/dtwnn/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counts(t *testing.T) {
	c := metrics.New()
	c.Candidate()
	c.Candidate()
	c.Prune()
	c.Compute(false)
	c.Compute(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Candidates))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Pruned))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Computed))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Abandoned))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *metrics.Collector
	assert.NotPanics(t, func() {
		c.Candidate()
		c.Prune()
		c.Compute(true)
		c.ObservePhase("rank", time.Now())
	})
}

func TestWriteFile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New()
	require.NoError(t, c.Register(reg))
	c.Compute(false)
	c.ObservePhase("graph", time.Now())

	path := filepath.Join(t.TempDir(), "dtwnn.prom")
	require.NoError(t, metrics.WriteFile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dtwnn_distance_computations_total 1")
	assert.Contains(t, string(data), `dtwnn_reduce_phase_seconds_count{phase="graph"} 1`)

	// Registering twice is rejected by the registry.
	assert.Error(t, c.Register(reg))
}
