package reduce

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dtwnn/series"
)

// ErrNoRanking indicates Select without a Ranking.
var ErrNoRanking = errors.New("reduce: no ranking supplied")

// Select keeps the highest-priority series of r.Dataset.
//
// The sequence chosen by Options.Ordering is walked from its last (highest)
// entry down to its first:
//  1. series whose class lies outside Options.Classes are always kept;
//  2. an in-range series is kept while its quota lasts.
//
// The quota is per class by default, count_c − ⌊count_c·p/100⌋, so every
// targeted class loses the same share. This departs from the classic rank
// reduction filter, which pools one quota count − ⌊count·p/100⌋ over all
// in-range series and so may take the whole removal from a single class;
// WithPooledQuota restores that behaviour.
//
// The returned dataset holds copies of the kept series in traversal order;
// the int is the number of series dropped.
func Select(r *Ranking, opts ...Option) (*series.Dataset, int, error) {
	cfg, err := build(opts)
	if err != nil {
		return nil, 0, err
	}

	return selectSeries(r, cfg)
}

func selectSeries(r *Ranking, cfg Options) (*series.Dataset, int, error) {
	if r == nil || r.Dataset == nil {
		return nil, 0, ErrNoRanking
	}

	seq := r.Ranked
	if cfg.Ordering == OrderPriority {
		seq = r.Priority
	}
	if len(seq) != r.Dataset.Len() {
		return nil, 0, fmt.Errorf("%w: %d entries for %d series", ErrNoRanking, len(seq), r.Dataset.Len())
	}

	ds := r.Dataset
	nc := ds.NumClasses()
	inRange := make([]bool, nc)
	for c := range inRange {
		inRange[c] = cfg.Classes.Contains(c, nc)
	}

	// quota[c] for per-class mode; pooled mode uses quota[0] for every class.
	quota := make([]int, nc)
	counts := ds.CountByClass()
	if cfg.PooledQuota {
		total := 0
		for c, n := range counts {
			if inRange[c] {
				total += n
			}
		}
		if nc > 0 {
			quota[0] = total - total*cfg.Percent/100
		}
	} else {
		for c, n := range counts {
			quota[c] = n - n*cfg.Percent/100
		}
	}

	out := ds.Empty()
	for i := len(seq) - 1; i >= 0; i-- {
		s := ds.Series[seq[i].ID]
		c := s.Class
		if !inRange[c] {
			out.Series = append(out.Series, s.Clone())
			continue
		}
		slot := c
		if cfg.PooledQuota {
			slot = 0
		}
		if quota[slot] > 0 {
			quota[slot]--
			out.Series = append(out.Series, s.Clone())
		}
	}

	return out, ds.Len() - out.Len(), nil
}
