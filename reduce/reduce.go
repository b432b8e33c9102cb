package reduce

import (
	"context"
	"time"

	"github.com/katalvlaran/dtwnn/series"
	"github.com/sirupsen/logrus"
)

// Result is the outcome of Reduce.
//
// Duplicates counts series dropped by deduplication and Removed those dropped
// by selection, so Dataset.Len() == input length − Duplicates − Removed.
// Priority is the tie-broken sequence over the deduplicated series, lowest
// priority first.
type Result struct {
	Dataset    *series.Dataset
	Duplicates int
	Removed    int
	Priority   []Entry
}

// Reduce runs every phase on ds and returns the reduced dataset. ds is left
// untouched.
//
// Errors: ErrEmptyDataset for a nil or empty dataset, ErrBadPercent,
// ErrBadWorkers, dataset validation errors, and ctx.Err() when cancelled
// during the leave-one-out graph.
func Reduce(ctx context.Context, ds *series.Dataset, opts ...Option) (*Result, error) {
	cfg, err := build(opts)
	if err != nil {
		return nil, err
	}

	r, err := rank(ctx, ds, cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, removed, err := selectSeries(r, cfg)
	if err != nil {
		return nil, err
	}
	cfg.Metrics.ObservePhase("select", start)

	cfg.Logger.WithFields(logrus.Fields{
		"phase":      "select",
		"series":     ds.Len(),
		"duplicates": r.Duplicates,
		"removed":    removed,
		"kept":       out.Len(),
	}).Debug("reduction done")

	return &Result{
		Dataset:    out,
		Duplicates: r.Duplicates,
		Removed:    removed,
		Priority:   r.Priority,
	}, nil
}
