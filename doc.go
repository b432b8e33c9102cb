// Package dtwnn accelerates nearest-neighbour classification of time series.
//
// It brings together:
//
//	• Banded DTW: Sakoe–Chiba window, rolling rows, early abandoning
//	• LB_Keogh: envelope lower bound that skips most exact DTW calls
//	• Neighbour search: tie-aware 1-NN, leave-one-out and bounded k-best
//	• Numerosity reduction: rank training series by how much they help
//	  leave-one-out 1-NN and drop the least useful share of each class
//
// Everything is organized in subpackages, leaf first:
//
//	series/   - Series, Dataset and "first-last" index ranges
//	dtw/      - banded DTW distance and warping path
//	lb/       - envelopes and the LB_Keogh bound
//	distance/ - the distance function contract, DTW and Euclidean
//	knn/      - DTWSearch (LB-pruned) and LinearSearch
//	reduce/   - deduplicate, rank, tie-break, select
//	metrics/  - Prometheus counters for pruning and phase timings
//	dataio/   - UCR CSV/TSV files and a SQLite dataset store
//	config/   - YAML + DTWNN_* environment settings
//	cmd/dtwnn - the command-line tool
//
// Quick start:
//
//	res, err := reduce.Reduce(ctx, train, reduce.WithPercent(20))
//	// res.Dataset keeps 80% of every class, best-ranked first
//
//	go install github.com/katalvlaran/dtwnn/cmd/dtwnn@latest
package dtwnn
