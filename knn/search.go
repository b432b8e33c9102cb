package knn

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/dtwnn/distance"
	"github.com/katalvlaran/dtwnn/series"
)

// probe evaluates candidates against one prepared query.
type probe interface {
	// bound returns a lower bound on the distance to candidate id.
	bound(id int) (float64, error)
	// exact returns the distance to candidate id, or +Inf once it is known
	// to exceed cutoff.
	exact(id int, cutoff float64) (float64, error)
}

// base implements the Searcher API on top of a probe factory.
type base struct {
	ds       *series.Dataset
	cfg      Options
	last     []float64
	newProbe func(query series.Series) (probe, error)
}

func newBase(ds *series.Dataset, opts []Option) base {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return base{ds: ds, cfg: cfg}
}

// KNearest implements Searcher.
func (b *base) KNearest(query series.Series, k int) ([]Neighbor, error) {
	return b.nearest(query, k, -1)
}

// LeaveOneOut implements Searcher.
func (b *base) LeaveOneOut(id, k int) ([]Neighbor, error) {
	if b.ds == nil {
		return nil, ErrEmptyDataset
	}
	if id < 0 || id >= b.ds.Len() {
		return nil, fmt.Errorf("%w: %d", ErrBadID, id)
	}

	return b.nearest(b.ds.Series[id], k, id)
}

// Distances implements Searcher.
func (b *base) Distances() ([]float64, error) {
	if b.last == nil {
		return nil, ErrNoDistanceComputed
	}
	out := make([]float64, len(b.last))
	copy(out, b.last)

	return out, nil
}

// check validates the dataset, k and the query shape.
func (b *base) check(query series.Series, k int) error {
	if b.ds == nil {
		return ErrEmptyDataset
	}
	if k < 1 {
		return fmt.Errorf("%w: got %d", ErrBadK, k)
	}
	if n := b.ds.Length(); n != 0 && len(query.Values) != n {
		return fmt.Errorf("%w: query length %d, dataset length %d",
			distance.ErrDimensionMismatch, len(query.Values), n)
	}

	return nil
}

// nearest runs the single-best scan, skipping candidate skip (-1: none).
//
//  1. best = +Inf, result empty.
//  2. For every candidate: prune unless bound < best.
//  3. Exact distance with cutoff best; d < best resets the result,
//     d == best appends.
func (b *base) nearest(query series.Series, k int, skip int) ([]Neighbor, error) {
	if err := b.check(query, k); err != nil {
		return nil, err
	}
	p, err := b.newProbe(query)
	if err != nil {
		return nil, err
	}

	m := b.cfg.Metrics
	best := math.Inf(1)
	var out []Neighbor
	for id := range b.ds.Series {
		if id == skip {
			continue
		}
		m.Candidate()

		lower, err := p.bound(id)
		if err != nil {
			return nil, err
		}
		if !(lower < best) {
			m.Prune()
			continue
		}

		d, err := p.exact(id, best)
		if err != nil {
			return nil, err
		}
		m.Compute(math.IsInf(d, 1) && !math.IsInf(best, 1))
		if math.IsInf(d, 1) || (b.cfg.SkipIdentical && d == 0) {
			continue
		}

		switch {
		case d < best:
			best = d
			out = append(out[:0], Neighbor{ID: id, Series: b.ds.Series[id], Distance: d})
		case d == best:
			out = append(out, Neighbor{ID: id, Series: b.ds.Series[id], Distance: d})
		}
	}

	b.last = make([]float64, len(out))
	for i := range b.last {
		b.last[i] = best
	}

	return out, nil
}

// KBest implements Searcher.
//
// A max-heap holds the k smallest distances seen; its top is the pruning
// threshold once full. Candidates with bound ≤ threshold are evaluated with
// cutoff = threshold, so exact ties with the k-th distance survive. The
// result is every evaluated candidate whose distance does not exceed the
// final k-th distance, ordered by (distance, id).
func (b *base) KBest(query series.Series, k int) ([]Neighbor, error) {
	if err := b.check(query, k); err != nil {
		return nil, err
	}
	p, err := b.newProbe(query)
	if err != nil {
		return nil, err
	}

	m := b.cfg.Metrics
	top := make(maxHeap, 0, k)
	var seen []Neighbor
	for id := range b.ds.Series {
		m.Candidate()
		threshold := top.threshold(k)

		lower, err := p.bound(id)
		if err != nil {
			return nil, err
		}
		if lower > threshold {
			m.Prune()
			continue
		}

		d, err := p.exact(id, threshold)
		if err != nil {
			return nil, err
		}
		m.Compute(math.IsInf(d, 1) && !math.IsInf(threshold, 1))
		if math.IsInf(d, 1) || (b.cfg.SkipIdentical && d == 0) {
			continue
		}

		seen = append(seen, Neighbor{ID: id, Series: b.ds.Series[id], Distance: d})
		switch {
		case top.Len() < k:
			heap.Push(&top, d)
		case d < top[0]:
			top[0] = d
			heap.Fix(&top, 0)
		}
	}

	limit := top.threshold(k)
	out := seen[:0]
	for _, nb := range seen {
		if nb.Distance <= limit {
			out = append(out, nb)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}

		return out[i].ID < out[j].ID
	})

	b.last = make([]float64, len(out))
	for i, nb := range out {
		b.last[i] = nb.Distance
	}

	return out, nil
}
