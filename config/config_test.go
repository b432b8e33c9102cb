package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/dtwnn/config"
	"github.com/katalvlaran/dtwnn/reduce"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every override for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PERCENT", "CLASSES", "INVERT_CLASSES", "DISTANCE", "WORKERS",
		"POOLED_QUOTA", "ORDERING", "LOG_LEVEL", "METRICS_FILE", "STORE"} {
		t.Setenv(config.EnvPrefix+k, "")
		require.NoError(t, os.Unsetenv(config.EnvPrefix+k))
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 10, cfg.Percent)
	assert.Equal(t, "first-last", cfg.Classes)
	assert.Equal(t, "dtw -W 10", cfg.Distance)
	assert.Equal(t, config.OrderingRanked, cfg.Ordering)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "dtwnn.yml", "percent: 25\nclasses: \"2\"\nworkers: 4\nordering: priority\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Percent)
	assert.Equal(t, "2", cfg.Classes)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, config.OrderingPriority, cfg.Ordering)
	assert.Equal(t, "dtw -W 10", cfg.Distance, "unset keys keep their default")

	cfg, err = config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = config.Load(writeFile(t, "bad.yml", "percent: [1\n"))
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	cfg := config.Default()
	cfg.PooledQuota = true
	cfg.MetricsFile = "/tmp/m.prom"
	path := filepath.Join(t.TempDir(), "out.yml")

	require.NoError(t, cfg.Save(path))
	back, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	envFile := writeFile(t, ".env", "DTWNN_PERCENT=30\nDTWNN_DISTANCE=euclidean\nDTWNN_POOLED_QUOTA=true\n")
	t.Setenv("DTWNN_PERCENT", "40")
	t.Setenv("DTWNN_LOG_LEVEL", "debug")

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv(envFile, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, 40, cfg.Percent, "process environment wins over .env")
	assert.Equal(t, "euclidean", cfg.Distance)
	assert.True(t, cfg.PooledQuota)
	assert.Equal(t, "debug", cfg.LogLevel)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, lvl)
}

func TestApplyEnv_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("DTWNN_WORKERS", "many")
	assert.ErrorIs(t, config.Default().ApplyEnv(), config.ErrInvalid)

	clearEnv(t)
	t.Setenv("DTWNN_INVERT_CLASSES", "perhaps")
	assert.ErrorIs(t, config.Default().ApplyEnv(), config.ErrInvalid)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"percent":   func(c *config.Config) { c.Percent = 101 },
		"workers":   func(c *config.Config) { c.Workers = 0 },
		"ordering":  func(c *config.Config) { c.Ordering = "random" },
		"classes":   func(c *config.Config) { c.Classes = "3-1" },
		"distance":  func(c *config.Config) { c.Distance = "manhattan" },
		"log level": func(c *config.Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}

func TestReduceOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Percent = 40
	cfg.Distance = "euclidean"
	cfg.PooledQuota = true

	opts, err := cfg.ReduceOptions()
	require.NoError(t, err)
	var o reduce.Options
	for _, opt := range opts {
		opt(&o)
	}
	assert.Equal(t, 40, o.Percent)
	assert.True(t, o.PooledQuota)
	assert.Equal(t, "euclidean", o.Distance.String())
	assert.Equal(t, reduce.OrderRanked, o.Ordering, "ranked walk is the default")

	cfg.Ordering = config.OrderingPriority
	opts, err = cfg.ReduceOptions()
	require.NoError(t, err)
	for _, opt := range opts {
		opt(&o)
	}
	assert.Equal(t, reduce.OrderPriority, o.Ordering)

	cfg.Workers = 0
	_, err = cfg.ReduceOptions()
	assert.ErrorIs(t, err, config.ErrInvalid)
}
