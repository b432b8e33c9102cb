package reduce

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dtwnn/knn"
	"github.com/katalvlaran/dtwnn/series"
	"golang.org/x/sync/errgroup"
)

// record is the per-series bookkeeping of one reduction run.
type record struct {
	id      int
	nearest []knn.Neighbor // leave-one-out nearest neighbours of id
	reverse []int          // ids having id among their nearest neighbours, ascending
	revDist []float64      // distance of each reverse edge
	rank    float64        // phase-3 rank
	score   float64        // phase-4 score (== rank outside tie runs)
}

// buildGraph runs the leave-one-out 1-NN search for every series and fills
// the forward and reverse neighbour sets.
//
// Worker w handles ids w, w+W, w+2W, ... with its own searcher over the
// frozen dataset; results land in their id slot, and reverse sets are filled
// afterwards in id order, so the graph does not depend on scheduling.
func buildGraph(ctx context.Context, ds *series.Dataset, cfg Options) ([]record, error) {
	n := ds.Len()
	recs := make([]record, n)
	for id := range recs {
		recs[id].id = id
	}

	workers := cfg.Workers
	if workers > n {
		workers = n
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w
		g.Go(func() error {
			s, err := knn.New(ds, cfg.Distance, knn.WithMetrics(cfg.Metrics))
			if err != nil {
				return err
			}
			for id := start; id < n; id += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				nbs, err := s.LeaveOneOut(id, 1)
				if err != nil {
					return fmt.Errorf("leave-one-out search for series %d: %w", id, err)
				}
				recs[id].nearest = nbs
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for id := range recs {
		for _, nb := range recs[id].nearest {
			y := &recs[nb.ID]
			y.reverse = append(y.reverse, id)
			y.revDist = append(y.revDist, nb.Distance)
		}
	}

	return recs, nil
}
