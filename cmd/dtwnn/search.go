package main

import (
	"fmt"

	"github.com/katalvlaran/dtwnn/distance"
	"github.com/katalvlaran/dtwnn/knn"
	"github.com/spf13/cobra"
)

var (
	searchK             int
	searchBest          bool
	searchDistance      string
	searchSkipIdentical bool
)

func init() {
	f := searchCmd.Flags()
	f.IntVarP(&searchK, "neighbors", "k", 1, "neighbours per query (with --best)")
	f.BoolVar(&searchBest, "best", false, "return the k nearest instead of every series tied for the nearest")
	f.StringVar(&searchDistance, "distance", "", `distance function, e.g. "dtw -W 10" or "euclidean"`)
	f.BoolVar(&searchSkipIdentical, "skip-identical", false, "ignore training series identical to the query")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <train> <queries>",
	Short: "Find nearest training series for every query series",
	Long: `For every series of <queries>, list the nearest series of <train>.

Without --best, every training series tied for the smallest distance is
returned. With --best, the k nearest (plus ties at the k-th distance) are
returned in ascending order. DTW distances use LB_Keogh pruning; other
distances fall back to a linear scan.

Examples:
  dtwnn search Coffee_TRAIN.tsv Coffee_TEST.tsv
  dtwnn search store:train store:test --best -k 5 --distance "dtw -W 5"`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

// NeighborResult is one neighbour of a query.
type NeighborResult struct {
	ID       int     `json:"id"`
	Class    string  `json:"class"`
	Distance float64 `json:"distance"`
}

// QueryResult lists the neighbours of one query series.
type QueryResult struct {
	Query     int              `json:"query"`
	Class     string           `json:"class"`
	Neighbors []NeighborResult `json:"neighbors"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("distance") {
		cfg.Distance = searchDistance
	}
	df, err := distance.Parse(cfg.Distance)
	if err != nil {
		return configError(err)
	}

	ctx := cmd.Context()
	train, err := loadDataset(ctx, args[0])
	if err != nil {
		return err
	}
	queries, err := loadDataset(ctx, args[1])
	if err != nil {
		return err
	}

	opts := []knn.Option{knn.WithMetrics(collector)}
	if searchSkipIdentical {
		opts = append(opts, knn.WithSkipIdentical())
	}
	s, err := knn.New(train, df, opts...)
	if err != nil {
		return configError(err)
	}

	results := make([]QueryResult, 0, queries.Len())
	for qi, q := range queries.Series {
		var nbs []knn.Neighbor
		if searchBest {
			nbs, err = s.KBest(q, searchK)
		} else {
			nbs, err = s.KNearest(q, searchK)
		}
		if err != nil {
			return dataError(fmt.Errorf("query %d: %w", qi, err))
		}

		qr := QueryResult{Query: qi, Class: label(queries.Classes, q.Class), Neighbors: make([]NeighborResult, len(nbs))}
		for i, nb := range nbs {
			qr.Neighbors[i] = NeighborResult{ID: nb.ID, Class: label(train.Classes, nb.Series.Class), Distance: nb.Distance}
		}
		results = append(results, qr)
	}
	log.WithField("queries", len(results)).Debug("search done")

	return output(results, func() {
		for _, r := range results {
			outputHuman("query %d (%s):\n", r.Query, r.Class)
			for _, nb := range r.Neighbors {
				outputHuman("  %6d  %-12s %g\n", nb.ID, nb.Class, nb.Distance)
			}
		}
	})
}

// label returns the class name of index c, or "?" when unknown.
func label(classes []string, c int) string {
	if c < 0 || c >= len(classes) {
		return "?"
	}
	return classes[c]
}
