// Package dtw defines options and modes for banded Dynamic Time Warping.
package dtw

import (
	"errors"
	"math"
)

// Sentinel errors returned by Distance and DistanceWithPath.
var (
	// ErrEmptyInput indicates one or both inputs are empty.
	ErrEmptyInput = errors.New("dtw: input sequences must be non-empty")

	// ErrDimensionMismatch indicates sequences of different lengths.
	ErrDimensionMismatch = errors.New("dtw: sequences must have equal length")

	// ErrBadWindow indicates a window percentage outside [0, 100].
	ErrBadWindow = errors.New("dtw: window percent must be in [0, 100]")

	// ErrPathNeedsMatrix indicates that path recovery requires FullMatrix mode.
	ErrPathNeedsMatrix = errors.New("dtw: ReturnPath requires MemoryMode=FullMatrix")
)

// MemoryMode controls how DTW stores its accumulated-cost grid.
//
//   - FullMatrix - keep the entire n×n grid. Allows path recovery.
//     Memory: O(n²).
//
//   - TwoRows - keep only the previous and the current row.
//     Memory: O(n). Produces exactly the same distance as FullMatrix.
type MemoryMode int

const (
	// FullMatrix stores all rows and supports path recovery.
	FullMatrix MemoryMode = iota

	// TwoRows keeps a rolling pair of rows; no path recovery.
	TwoRows
)

// DefaultWindowPercent is the Sakoe–Chiba band width used when none is given.
const DefaultWindowPercent = 10

// Options configures banded DTW.
//
// Fields:
//   - WindowPercent - Sakoe–Chiba band half-width as a percentage of the
//     series length, in [0, 100]. See Window for the conversion.
//   - Cutoff        - early-abandon threshold; once every cell of a finished
//     row exceeds Cutoff (after the square root), Distance returns +Inf.
//     Zero or +Inf disables abandoning.
//   - ReturnPath    - DistanceWithPath backtracks the warping path.
//     Requires MemoryMode=FullMatrix.
//   - MemoryMode    - FullMatrix or TwoRows.
type Options struct {
	WindowPercent int
	Cutoff        float64
	ReturnPath    bool
	MemoryMode    MemoryMode
}

// DefaultOptions returns a 10% band, no cutoff, no path and rolling rows.
func DefaultOptions() Options {
	return Options{
		WindowPercent: DefaultWindowPercent,
		Cutoff:        math.Inf(1),
		ReturnPath:    false,
		MemoryMode:    TwoRows,
	}
}

// Coord is one cell (I, J) of a warping path: a[I] is aligned with b[J].
type Coord struct {
	I, J int
}

// Window converts a band percentage into an absolute half-width for series
// of length n: percent*n/100 (integer division), clipped to [0, n-1].
//
// Distance and the lb envelope both derive their band from this function, so
// the pruning bound and the exact distance always agree on the window.
func Window(percent, n int) int {
	if n <= 1 || percent <= 0 {
		return 0
	}
	w := percent * n / 100
	if w > n-1 {
		w = n - 1
	}

	return w
}
