package reduce

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/dtwnn/series"
	"github.com/sirupsen/logrus"
)

// Rank scores.
const (
	sameClassScore  = 1
	otherClassScore = -2
)

// Entry is one series in a ranked sequence.
//
// Rank is the phase-3 classification contribution. Score orders entries
// inside a run of equal Rank (Σ 1/d² over reverse neighbours); outside such
// runs it equals Rank. Reverse lists the ids that have this series as their
// leave-one-out nearest neighbour.
type Entry struct {
	ID      int
	Series  series.Series
	Rank    float64
	Score   float64
	Reverse []int
}

// Ranking is the outcome of phases 1–4.
//
// Dataset is the deduplicated input; Entry.ID indexes into it. Ranked is the
// phase-3 list and Priority the tie-broken sequence, both ascending.
type Ranking struct {
	Dataset    *series.Dataset
	Duplicates int
	Ranked     []Entry
	Priority   []Entry
}

// Rank runs deduplication, the leave-one-out graph, ranking and tie-breaking
// on ds. ds itself is not modified.
func Rank(ctx context.Context, ds *series.Dataset, opts ...Option) (*Ranking, error) {
	cfg, err := build(opts)
	if err != nil {
		return nil, err
	}

	return rank(ctx, ds, cfg)
}

func rank(ctx context.Context, ds *series.Dataset, cfg Options) (*Ranking, error) {
	if ds.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("reduce: %w", err)
	}
	log := cfg.Logger.WithField("distance", cfg.Distance.String())

	// 1) Deduplicate.
	start := time.Now()
	uniq, dups := Deduplicate(ds)
	cfg.Metrics.ObservePhase("dedup", start)
	log.WithFields(logrus.Fields{"phase": "dedup", "series": uniq.Len(), "duplicates": dups}).Debug("phase done")

	// 2) Leave-one-out neighbour graph.
	start = time.Now()
	recs, err := buildGraph(ctx, uniq, cfg)
	if err != nil {
		return nil, err
	}
	cfg.Metrics.ObservePhase("graph", start)
	log.WithFields(logrus.Fields{"phase": "graph", "workers": cfg.Workers}).Debug("phase done")

	// 3) Rank by classification contribution.
	start = time.Now()
	ranked := make([]int, 0, len(recs))
	for id := range recs {
		r := &recs[id]
		r.rank = contribution(uniq, recs, id)
		r.score = r.rank
		ranked = insert(ranked, id, r.rank, func(k int) float64 { return recs[k].rank })
	}
	cfg.Metrics.ObservePhase("rank", start)

	// 4) Break ties.
	start = time.Now()
	priority := tieBreak(recs, ranked)
	cfg.Metrics.ObservePhase("tiebreak", start)
	log.WithFields(logrus.Fields{"phase": "rank", "entries": len(priority)}).Debug("phase done")

	return &Ranking{
		Dataset:    uniq,
		Duplicates: dups,
		Ranked:     entries(uniq, recs, ranked),
		Priority:   entries(uniq, recs, priority),
	}, nil
}

// contribution sums +1 per same-class reverse neighbour and −2 per other.
func contribution(ds *series.Dataset, recs []record, id int) float64 {
	var sum float64
	class := ds.Series[id].Class
	for _, x := range recs[id].reverse {
		if ds.Series[x].Class == class {
			sum += sameClassScore
		} else {
			sum += otherClassScore
		}
	}

	return sum
}

// tieBreak walks the ranked list; every run of equal rank longer than one is
// re-scored by Σ 1/d² over its reverse edges and re-inserted in score order.
// A reverse edge at distance 0 contributes +Inf.
func tieBreak(recs []record, ranked []int) []int {
	priority := make([]int, 0, len(ranked))
	for i := 0; i < len(ranked); {
		j := i + 1
		for j < len(ranked) && recs[ranked[j]].rank == recs[ranked[i]].rank {
			j++
		}
		if j-i == 1 {
			priority = append(priority, ranked[i])
			i = j
			continue
		}

		run := make([]int, 0, j-i)
		for _, id := range ranked[i:j] {
			r := &recs[id]
			r.score = 0
			for _, d := range r.revDist {
				r.score += 1 / (d * d)
			}
			run = insert(run, id, r.score, func(k int) float64 { return recs[k].score })
		}
		priority = append(priority, run...)
		i = j
	}

	return priority
}

// insert places id into the ascending list at the lower-bound position of
// value: before the first element whose key is ≥ value.
func insert(list []int, id int, value float64, key func(int) float64) []int {
	pos := lowerBound(list, value, key)
	list = append(list, 0)
	copy(list[pos+1:], list[pos:])
	list[pos] = id

	return list
}

// lowerBound is an iterative bisection returning the first index whose key
// is ≥ value, or len(list).
func lowerBound(list []int, value float64, key func(int) float64) int {
	lo, hi := 0, len(list)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if key(list[mid]) >= value {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo
}

// entries materialises ids as Entry values.
func entries(ds *series.Dataset, recs []record, ids []int) []Entry {
	out := make([]Entry, len(ids))
	for i, id := range ids {
		r := recs[id]
		rev := make([]int, len(r.reverse))
		copy(rev, r.reverse)
		out[i] = Entry{
			ID:      id,
			Series:  ds.Series[id],
			Rank:    r.rank,
			Score:   r.score,
			Reverse: rev,
		}
	}

	return out
}
