// Package distance defines the distance-function contract used by the
// neighbour search and the numerosity reducer, with two implementations:
//
//   - DTW       - banded Dynamic Time Warping (package dtw); the only
//     function the LB_Keogh search accepts.
//   - Euclidean - plain Euclidean distance, served by linear-scan search.
//
// Both restrict the computation to an attribute Range ("first-last" by
// default, optionally inverted) and honour an early-exit cutoff: when the
// true distance would exceed the cutoff they may return +Inf instead.
//
// Functions are described by Weka-style specification strings and parsed
// with Parse:
//
//	dtw -W 10 -R first-last
//	euclidean -R 2-last -V
package distance
