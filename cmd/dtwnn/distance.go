package main

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/dtwnn/distance"
	"github.com/katalvlaran/dtwnn/dtw"
	"github.com/spf13/cobra"
)

var (
	distanceSpec string
	distancePath bool
)

func init() {
	distanceCmd.Flags().StringVar(&distanceSpec, "distance", "", `distance function, e.g. "dtw -W 10" or "euclidean"`)
	distanceCmd.Flags().BoolVar(&distancePath, "path", false, "also print the optimal DTW warping path")
	rootCmd.AddCommand(distanceCmd)
}

var distanceCmd = &cobra.Command{
	Use:   "distance <dataset> <i> <j>",
	Short: "Compute the distance between two series of a dataset",
	Long: `Compute the distance between series i and j (0-based) of a dataset.

Examples:
  dtwnn distance Coffee_TRAIN.tsv 0 7
  dtwnn distance Coffee_TRAIN.tsv 0 7 --distance "dtw -W 100" --path`,
	Args: cobra.ExactArgs(3),
	RunE: runDistance,
}

// DistanceResponse is the output of the distance command.
type DistanceResponse struct {
	I        int         `json:"i"`
	J        int         `json:"j"`
	Distance float64     `json:"distance"`
	Function string      `json:"function"`
	Path     []dtw.Coord `json:"path,omitempty"`
}

func runDistance(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("distance") {
		cfg.Distance = distanceSpec
	}
	df, err := distance.Parse(cfg.Distance)
	if err != nil {
		return configError(err)
	}

	ds, err := loadDataset(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	var idx [2]int
	for k, a := range args[1:] {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 || n >= ds.Len() {
			return fmt.Errorf("series index %q not in [0, %d)", a, ds.Len())
		}
		idx[k] = n
	}
	a, b := ds.Series[idx[0]], ds.Series[idx[1]]

	resp := DistanceResponse{I: idx[0], J: idx[1], Function: df.String()}
	if distancePath {
		d, ok := df.(*distance.DTW)
		if !ok {
			return configError(fmt.Errorf("--path needs a dtw distance, got %q", df.String()))
		}
		opts := dtw.DefaultOptions()
		opts.WindowPercent = d.WindowPercent
		opts.MemoryMode = dtw.FullMatrix
		opts.ReturnPath = true
		resp.Distance, resp.Path, err = dtw.DistanceWithPath(d.Project(a), d.Project(b), &opts)
	} else {
		resp.Distance, err = df.Distance(a, b, 0)
	}
	if err != nil {
		return dataError(err)
	}

	return output(resp, func() {
		outputHuman("%s(%d, %d) = %g\n", resp.Function, resp.I, resp.J, resp.Distance)
		for _, c := range resp.Path {
			outputHuman("  (%d, %d)\n", c.I, c.J)
		}
	})
}
