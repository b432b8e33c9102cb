package dtw_test

import (
	"testing"

	"github.com/katalvlaran/dtwnn/dtw"
)

// benchmarkDistance runs banded DTW on two length-n ramps with opts.
func benchmarkDistance(b *testing.B, n int, opts dtw.Options) {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		y[i] = float64(n - i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dtw.Distance(x, y, &opts); err != nil {
			b.Fatalf("Distance failed: %v", err)
		}
	}
}

func BenchmarkDistance_TwoRows10pct(b *testing.B) {
	benchmarkDistance(b, 500, dtw.DefaultOptions())
}

func BenchmarkDistance_FullMatrix10pct(b *testing.B) {
	opts := dtw.DefaultOptions()
	opts.MemoryMode = dtw.FullMatrix
	benchmarkDistance(b, 500, opts)
}

func BenchmarkDistance_TwoRowsFullBand(b *testing.B) {
	opts := dtw.DefaultOptions()
	opts.WindowPercent = 100
	benchmarkDistance(b, 500, opts)
}
