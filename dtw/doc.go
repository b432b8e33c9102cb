// Package dtw computes banded Dynamic Time Warping (DTW) distances between
// equal-length numeric time series.
//
// 🚀 What is banded DTW?
//
//	DTW aligns two sequences non-linearly, warping the time axis to minimise
//	the accumulated squared difference. A Sakoe–Chiba band restricts the
//	alignment to |i−j| ≤ w, turning the classic O(n²) recurrence into
//	O(n·w). The band is a fixed global constraint chosen for speed.
//
// ✨ Key features:
//   - band width given as a percentage of the series length (Window)
//   - full-matrix mode with warping-path recovery
//   - two-row mode: O(n) memory, identical distances
//   - early abandoning against a cutoff (returns +Inf), for pruning callers
//   - single-point series return the squared difference (no square root)
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/dtwnn/dtw"
//
//	opts := dtw.DefaultOptions()
//	opts.WindowPercent = 20
//	dist, err := dtw.Distance(a, b, &opts)
//
// Performance:
//
//   - Time:   O(n·w)
//   - Memory: O(n²) (FullMatrix) or O(n) (TwoRows)
package dtw
