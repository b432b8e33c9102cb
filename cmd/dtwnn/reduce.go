package main

import (
	"fmt"

	"github.com/katalvlaran/dtwnn/reduce"
	"github.com/spf13/cobra"
)

var (
	reduceOutput   string
	reducePercent  int
	reduceClasses  string
	reduceInvert   bool
	reduceDistance string
	reduceWorkers  int
	reducePooled   bool
	reduceOrdering string
)

func init() {
	f := reduceCmd.Flags()
	f.StringVarP(&reduceOutput, "output", "o", "", "write the reduced dataset here (file or store:NAME)")
	f.IntVarP(&reducePercent, "percent", "p", 0, "percentage of each targeted class to remove")
	f.StringVar(&reduceClasses, "classes", "", "1-based class index range to reduce, e.g. first-last or 1,3")
	f.BoolVar(&reduceInvert, "invert-classes", false, "reduce every class outside --classes")
	f.StringVar(&reduceDistance, "distance", "", `distance function, e.g. "dtw -W 10" or "euclidean"`)
	f.IntVar(&reduceWorkers, "workers", 0, "goroutines for the leave-one-out search")
	f.BoolVar(&reducePooled, "pooled", false, "one quota over all targeted classes instead of one per class")
	f.StringVar(&reduceOrdering, "ordering", "", "selection order: ranked (default) or priority")
	rootCmd.AddCommand(reduceCmd)
}

var reduceCmd = &cobra.Command{
	Use:   "reduce <dataset>",
	Short: "Shrink a training set by rank-based numerosity reduction",
	Long: `Remove duplicate series, rank the rest by their contribution to
leave-one-out 1-NN classification and drop the lowest-ranked share of every
targeted class.

Examples:
  dtwnn reduce Coffee_TRAIN.tsv -p 20 -o Coffee_REDUCED.tsv
  dtwnn reduce store:gunpoint --classes 1 --workers 8 -o store:gunpoint-small`,
	Args: cobra.ExactArgs(1),
	RunE: runReduce,
}

// ReduceResponse summarises a reduction.
type ReduceResponse struct {
	Input      int    `json:"input"`
	Duplicates int    `json:"duplicates"`
	Removed    int    `json:"removed"`
	Kept       int    `json:"kept"`
	Distance   string `json:"distance"`
	Output     string `json:"output,omitempty"`
}

func runReduce(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	if f.Changed("percent") {
		cfg.Percent = reducePercent
	}
	if f.Changed("classes") {
		cfg.Classes = reduceClasses
	}
	if f.Changed("invert-classes") {
		cfg.InvertClasses = reduceInvert
	}
	if f.Changed("distance") {
		cfg.Distance = reduceDistance
	}
	if f.Changed("workers") {
		cfg.Workers = reduceWorkers
	}
	if f.Changed("pooled") {
		cfg.PooledQuota = reducePooled
	}
	if f.Changed("ordering") {
		cfg.Ordering = reduceOrdering
	}
	opts, err := cfg.ReduceOptions()
	if err != nil {
		return configError(err)
	}
	opts = append(opts, reduce.WithLogger(log), reduce.WithMetrics(collector))

	ctx := cmd.Context()
	ds, err := loadDataset(ctx, args[0])
	if err != nil {
		return err
	}
	log.WithField("series", ds.Len()).Info("dataset loaded")

	res, err := reduce.Reduce(ctx, ds, opts...)
	if err != nil {
		return fmt.Errorf("reducing %s: %w", args[0], err)
	}
	if reduceOutput != "" {
		if err := saveDataset(ctx, reduceOutput, res.Dataset); err != nil {
			return err
		}
	}

	resp := ReduceResponse{
		Input:      ds.Len(),
		Duplicates: res.Duplicates,
		Removed:    res.Removed,
		Kept:       res.Dataset.Len(),
		Distance:   cfg.Distance,
		Output:     reduceOutput,
	}
	return output(resp, func() {
		outputHuman("%d series in, %d duplicates, %d removed, %d kept\n",
			resp.Input, resp.Duplicates, resp.Removed, resp.Kept)
		if resp.Output != "" {
			outputHuman("written to %s\n", resp.Output)
		}
	})
}
