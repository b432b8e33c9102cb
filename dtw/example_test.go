package dtw_test

import (
	"fmt"

	"github.com/katalvlaran/dtwnn/dtw"
)

// ExampleDistance shows a single warping step absorbing a shifted spike.
//
//	a = [0, 0]
//	b = [0, 5]
//
// With a full band the cheapest alignment matches both zeros of a against
// the leading 0 of b and pays one 5² step for the spike: sqrt(25) = 5.
func ExampleDistance() {
	opts := dtw.DefaultOptions()
	opts.WindowPercent = 100

	d, _ := dtw.Distance([]float64{0, 0}, []float64{0, 5}, &opts)
	fmt.Printf("distance=%.0f\n", d)
	// Output:
	// distance=5
}

// ExampleDistance_singlePoint documents the single-point special case.
func ExampleDistance_singlePoint() {
	d, _ := dtw.Distance([]float64{3}, []float64{7}, nil)
	fmt.Printf("distance=%.0f\n", d)
	// Output:
	// distance=16
}

// ExampleDistanceWithPath recovers the alignment of a stretched pattern.
func ExampleDistanceWithPath() {
	a := []float64{1, 2, 3, 3}
	b := []float64{1, 2, 2, 3}
	opts := dtw.DefaultOptions()
	opts.WindowPercent = 50
	opts.MemoryMode = dtw.FullMatrix
	opts.ReturnPath = true

	d, path, _ := dtw.DistanceWithPath(a, b, &opts)
	fmt.Printf("distance=%.0f\npath=%v\n", d, path)
	// Output:
	// distance=0
	// path=[{0 0} {1 1} {1 2} {2 3} {3 3}]
}
