package dtw

import (
	"fmt"
	"math"
)

// Distance computes the banded DTW distance between two equal-length series.
//
// Algorithm (Sakoe–Chiba band of half-width w = Window(WindowPercent, n)):
//  1. n == 1: return (a0-b0)² directly. No square root is taken; callers
//     must not compare this scale with the general case.
//  2. Initialise every cell to +Inf, D[0][0] = (a0-b0)².
//  3. Seed row 0 and column 0 with prefix sums of squared differences for
//     the first w cells.
//  4. For each row i ≥ 1 fill columns j ∈ [max(1, i-w), min(i+w, n-1)]:
//     D[i][j] = (a[i]-b[j])² + min(diag, left, up), where at the band edges
//     only the two predecessors inside the band are considered
//     (j == i+w: diag, left; j == i-w: diag, up).
//  5. Return sqrt(D[n-1][n-1]).
//
// If opts.Cutoff is positive and finite, the fill stops as soon as the
// square root of the smallest cell of a finished row exceeds it, and +Inf is
// returned. Every warping path crosses every row, so the true distance is
// then known to exceed the cutoff.
//
// opts may be nil (DefaultOptions). opts.ReturnPath is ignored here; use
// DistanceWithPath.
//
// Complexity: O(n·w) time; O(n²) memory for FullMatrix, O(n) for TwoRows.
func Distance(a, b []float64, opts *Options) (float64, error) {
	cfg, err := prepare(a, b, opts)
	if err != nil {
		return 0, err
	}
	g := newGrid(len(a), cfg.MemoryMode)
	dist, _ := g.fill(a, b, Window(cfg.WindowPercent, len(a)), cfg.Cutoff)

	return dist, nil
}

// DistanceWithPath computes Distance and, when opts.ReturnPath is set,
// backtracks the optimal warping path from (0,0) to (n-1,n-1).
//
// Errors: ErrPathNeedsMatrix if ReturnPath is requested with TwoRows.
// An abandoned computation (distance +Inf) yields a nil path.
func DistanceWithPath(a, b []float64, opts *Options) (float64, []Coord, error) {
	cfg, err := prepare(a, b, opts)
	if err != nil {
		return 0, nil, err
	}
	if cfg.ReturnPath && cfg.MemoryMode != FullMatrix {
		return 0, nil, ErrPathNeedsMatrix
	}

	w := Window(cfg.WindowPercent, len(a))
	g := newGrid(len(a), cfg.MemoryMode)
	dist, ok := g.fill(a, b, w, cfg.Cutoff)
	if !cfg.ReturnPath || !ok {
		return dist, nil, nil
	}

	return dist, g.backtrack(w), nil
}

// prepare validates inputs and resolves options.
func prepare(a, b []float64, opts *Options) (Options, error) {
	if len(a) == 0 || len(b) == 0 {
		return Options{}, ErrEmptyInput
	}
	if len(a) != len(b) {
		return Options{}, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	cfg := DefaultOptions()
	if opts != nil {
		cfg = *opts
	}
	if cfg.WindowPercent < 0 || cfg.WindowPercent > 100 {
		return Options{}, fmt.Errorf("%w: got %d", ErrBadWindow, cfg.WindowPercent)
	}
	if cfg.Cutoff <= 0 || math.IsNaN(cfg.Cutoff) {
		cfg.Cutoff = math.Inf(1)
	}

	return cfg, nil
}

// grid is the accumulated-cost storage. In FullMatrix mode rows holds all n
// rows; in TwoRows mode it holds two rows addressed by i%2.
type grid struct {
	n    int
	full bool
	rows [][]float64
}

func newGrid(n int, mode MemoryMode) *grid {
	g := &grid{n: n, full: mode == FullMatrix}
	count := 2
	if g.full {
		count = n
	}
	g.rows = make([][]float64, count)
	for i := range g.rows {
		g.rows[i] = make([]float64, n)
	}

	return g
}

// row returns the storage for logical row i.
func (g *grid) row(i int) []float64 {
	if g.full {
		return g.rows[i]
	}

	return g.rows[i%2]
}

// fill runs the banded recurrence. It returns the distance and false when
// the computation was abandoned against cutoff.
func (g *grid) fill(a, b []float64, w int, cutoff float64) (float64, bool) {
	n := g.n
	inf := math.Inf(1)

	// 1) Single-point series: squared difference, no square root.
	if n == 1 {
		d := sq(a[0] - b[0])
		if d > cutoff {
			return inf, false
		}

		return d, true
	}

	// 2) Row 0: D[0][0] plus the seeded prefix along the row.
	cur := g.row(0)
	for j := range cur {
		cur[j] = inf
	}
	cur[0] = sq(a[0] - b[0])
	for j := 1; j <= w; j++ {
		cur[j] = cur[j-1] + sq(a[0]-b[j])
	}
	if abandoned(cur[:w+1], cutoff) {
		return inf, false
	}

	// 3) Column 0 is carried separately so TwoRows can reuse its rows.
	col0 := cur[0]

	// 4) Banded rows.
	for i := 1; i < n; i++ {
		prev := g.row(i - 1)
		cur = g.row(i)
		for j := range cur {
			cur[j] = inf
		}

		lo := i - w
		if i <= w {
			col0 += sq(a[i] - b[0])
			cur[0] = col0
			lo = 0
		}
		hi := i + w
		if hi > n-1 {
			hi = n - 1
		}
		start := lo
		if start < 1 {
			start = 1
		}

		for j := start; j <= hi; j++ {
			var best float64
			switch {
			case j == i+w:
				// Up neighbour lies outside the band.
				best = math.Min(prev[j-1], cur[j-1])
			case j == i-w:
				// Left neighbour lies outside the band.
				best = math.Min(prev[j-1], prev[j])
			default:
				best = math.Min(math.Min(prev[j-1], cur[j-1]), prev[j])
			}
			cur[j] = sq(a[i]-b[j]) + best
		}

		if abandoned(cur[lo:hi+1], cutoff) {
			return inf, false
		}
	}

	return math.Sqrt(g.row(n - 1)[n-1]), true
}

// backtrack walks from the last cell to the origin choosing the cheapest
// in-band predecessor; ties prefer the diagonal. FullMatrix only.
func (g *grid) backtrack(w int) []Coord {
	n := g.n
	if n == 1 {
		return []Coord{{I: 0, J: 0}}
	}

	i, j := n-1, n-1
	path := []Coord{{I: i, J: j}}
	for i > 0 || j > 0 {
		switch {
		case i == 0:
			j--
		case j == 0:
			i--
		default:
			diag := g.rows[i-1][j-1]
			up, left := math.Inf(1), math.Inf(1)
			if j-(i-1) <= w {
				up = g.rows[i-1][j]
			}
			if i-(j-1) <= w {
				left = g.rows[i][j-1]
			}
			switch {
			case diag <= up && diag <= left:
				i, j = i-1, j-1
			case up <= left:
				i--
			default:
				j--
			}
		}
		path = append(path, Coord{I: i, J: j})
	}

	// reverse in place
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return path
}

// abandoned reports whether every cell exceeds cutoff after the square root.
func abandoned(cells []float64, cutoff float64) bool {
	if math.IsInf(cutoff, 1) {
		return false
	}
	lowest := math.Inf(1)
	for _, c := range cells {
		if c < lowest {
			lowest = c
		}
	}

	return math.Sqrt(lowest) > cutoff
}

// sq returns x².
func sq(x float64) float64 { return x * x }
