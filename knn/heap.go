package knn

import "math"

// maxHeap is a container/heap max-heap of distances.
type maxHeap []float64

func (h maxHeap) Len() int            { return len(h) }
func (h maxHeap) Less(i, j int) bool  { return h[i] > h[j] }
func (h maxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x interface{}) { *h = append(*h, x.(float64)) }

func (h *maxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]

	return x
}

// threshold is the k-th smallest distance once k are held, +Inf before.
func (h maxHeap) threshold(k int) float64 {
	if len(h) < k {
		return math.Inf(1)
	}

	return h[0]
}
