// Package lb implements the LB_Keogh lower bound for banded DTW.
//
// An Envelope holds, for each position i of a query, the minimum (Lower) and
// maximum (Upper) of the query over the window [i-w, i+w]. Keogh sums the
// squared excursions of a candidate outside that envelope; the square root of
// the sum never exceeds the banded DTW distance between query and candidate
// when both use the same window (dtw.Window), so a candidate whose bound is
// already worse than the best exact distance can be skipped without running
// DTW at all.
//
// Boundary policy: Keogh ignores the final position. The bound stays
// admissible (dropping a non-negative term only loosens it); the policy is
// fixed so that bounds are reproducible across versions.
//
// Complexity:
//
//   - NewEnvelope: O(n·w)
//   - Keogh:       O(n)
package lb
