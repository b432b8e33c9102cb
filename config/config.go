// Package config loads reduction and search settings for the dtwnn command.
//
// Settings are layered: built-in defaults, then a YAML file, then DTWNN_*
// variables from the process environment or from .env files. Command-line
// flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/katalvlaran/dtwnn/distance"
	"github.com/katalvlaran/dtwnn/reduce"
	"github.com/katalvlaran/dtwnn/series"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates a setting that fails validation.
var ErrInvalid = errors.New("config: invalid setting")

// Ordering names accepted by Config.Ordering.
const (
	OrderingPriority = "priority"
	OrderingRanked   = "ranked"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DTWNN_"

// Config holds every tunable of a run.
type Config struct {
	Percent       int    `yaml:"percent"`
	Classes       string `yaml:"classes"`
	InvertClasses bool   `yaml:"invert_classes,omitempty"`
	Distance      string `yaml:"distance"`
	Workers       int    `yaml:"workers"`
	PooledQuota   bool   `yaml:"pooled_quota,omitempty"`
	Ordering      string `yaml:"ordering"`
	LogLevel      string `yaml:"log_level"`
	MetricsFile   string `yaml:"metrics_file,omitempty"`
	Store         string `yaml:"store,omitempty"`
}

// Default returns the built-in settings: 10% removal over every class with
// DTW at a 10% band, one worker, ranked ordering, info logging.
func Default() *Config {
	return &Config{
		Percent:  reduce.DefaultPercent,
		Classes:  series.DefaultRange,
		Distance: "dtw -W 10",
		Workers:  1,
		Ordering: OrderingRanked,
		LogLevel: "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overrides c with DTWNN_* variables. The process environment wins
// over the given .env files; among files the first one defining a key wins.
// Missing files are skipped.
func (c *Config) ApplyEnv(envFiles ...string) error {
	fileVars := make(map[string]string)
	for _, f := range envFiles {
		vars, err := godotenv.Read(f)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("reading %s: %w", f, err)
		}
		for k, v := range vars {
			if _, seen := fileVars[k]; !seen {
				fileVars[k] = v
			}
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := fileVars[EnvPrefix+key]

		return v, ok
	}

	if v, ok := lookup("PERCENT"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sPERCENT=%q", ErrInvalid, EnvPrefix, v)
		}
		c.Percent = n
	}
	if v, ok := lookup("WORKERS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sWORKERS=%q", ErrInvalid, EnvPrefix, v)
		}
		c.Workers = n
	}
	for key, dst := range map[string]*bool{"INVERT_CLASSES": &c.InvertClasses, "POOLED_QUOTA": &c.PooledQuota} {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q", ErrInvalid, EnvPrefix, key, v)
			}
			*dst = b
		}
	}
	for key, dst := range map[string]*string{
		"CLASSES":      &c.Classes,
		"DISTANCE":     &c.Distance,
		"ORDERING":     &c.Ordering,
		"LOG_LEVEL":    &c.LogLevel,
		"METRICS_FILE": &c.MetricsFile,
		"STORE":        &c.Store,
	} {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	return nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.Percent < 0 || c.Percent > 100 {
		return fmt.Errorf("%w: percent %d not in [0, 100]", ErrInvalid, c.Percent)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d must be at least 1", ErrInvalid, c.Workers)
	}
	if _, err := c.ordering(); err != nil {
		return err
	}
	if _, err := series.ParseRange(c.Classes); err != nil {
		return fmt.Errorf("%w: classes: %w", ErrInvalid, err)
	}
	if _, err := distance.Parse(c.Distance); err != nil {
		return fmt.Errorf("%w: distance: %w", ErrInvalid, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}

	return nil
}

// DistanceFunc parses the configured distance specification.
func (c *Config) DistanceFunc() (distance.Func, error) {
	return distance.Parse(c.Distance)
}

// Level returns the configured log level.
func (c *Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// ReduceOptions converts c into reduce options after validating it.
func (c *Config) ReduceOptions() ([]reduce.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	classes, _ := series.ParseRange(c.Classes)
	df, _ := c.DistanceFunc()
	ord, _ := c.ordering()

	opts := []reduce.Option{
		reduce.WithPercent(c.Percent),
		reduce.WithClassRange(classes.WithInvert(c.InvertClasses)),
		reduce.WithDistance(df),
		reduce.WithWorkers(c.Workers),
		reduce.WithOrdering(ord),
	}
	if c.PooledQuota {
		opts = append(opts, reduce.WithPooledQuota())
	}

	return opts, nil
}

func (c *Config) ordering() (reduce.Ordering, error) {
	switch strings.ToLower(c.Ordering) {
	case OrderingRanked, "":
		return reduce.OrderRanked, nil
	case OrderingPriority:
		return reduce.OrderPriority, nil
	default:
		return 0, fmt.Errorf("%w: ordering %q (want %q or %q)", ErrInvalid, c.Ordering, OrderingPriority, OrderingRanked)
	}
}
