// Package main provides the dtwnn CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/katalvlaran/dtwnn/config"
	"github.com/katalvlaran/dtwnn/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// Persistent flags.
var (
	configPath  string
	envFile     string
	logLevel    string
	metricsFile string
	storePath   string
	humanOutput bool
)

// Shared state prepared by PersistentPreRunE.
var (
	cfg       *config.Config
	log       = logrus.New()
	collector *metrics.Collector
	registry  *prometheus.Registry
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dtwnn",
	Short: "DTW nearest-neighbour search and numerosity reduction",
	Long: `dtwnn works on labelled time-series datasets in UCR format
(label first, then the values; comma- or tab-separated).

It computes banded DTW distances, runs LB_Keogh-pruned nearest-neighbour
searches and shrinks training sets by rank-based numerosity reduction.
Datasets can also be kept in a SQLite store and addressed as store:NAME.

Settings come from --config (YAML), then DTWNN_* variables (environment or
.env), then flags. All commands output JSON unless --human is given.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil || cfg.MetricsFile == "" {
			return nil
		}
		if err := metrics.WriteFile(cfg.MetricsFile, registry); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		log.WithField("path", cfg.MetricsFile).Debug("metrics written")

		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML configuration file")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file with DTWNN_* overrides")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	pf.StringVar(&storePath, "store", "", "SQLite dataset store used by store:NAME references")
	pf.BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// setup layers configuration, then builds the logger and metrics registry.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return configError(err)
	}
	if err := c.ApplyEnv(envFile); err != nil {
		return configError(err)
	}
	pf := cmd.Flags()
	if pf.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if pf.Changed("metrics-file") {
		c.MetricsFile = metricsFile
	}
	if pf.Changed("store") {
		c.Store = storePath
	}

	lvl, err := c.Level()
	if err != nil {
		return configError(fmt.Errorf("%w: %v", config.ErrInvalid, err))
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	registry = prometheus.NewRegistry()
	collector = metrics.New()
	if err := collector.Register(registry); err != nil {
		return err
	}

	cfg = c

	return nil
}
