package knn

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dtwnn/distance"
	"github.com/katalvlaran/dtwnn/series"
)

// LinearSearch evaluates a distance function on every candidate. It has no
// lower bound, so only the early-exit cutoff saves work.
type LinearSearch struct {
	base
	df distance.Func
}

// NewLinearSearch returns a linear-scan searcher over ds using df.
func NewLinearSearch(ds *series.Dataset, df distance.Func, opts ...Option) (*LinearSearch, error) {
	if ds == nil {
		return nil, ErrEmptyDataset
	}
	if df == nil {
		return nil, fmt.Errorf("%w: nil distance function", ErrInvalidConfiguration)
	}

	s := &LinearSearch{base: newBase(ds, opts), df: df}
	s.newProbe = s.probe

	return s, nil
}

type linearProbe struct {
	s     *LinearSearch
	query series.Series
}

func (s *LinearSearch) probe(query series.Series) (probe, error) {
	return &linearProbe{s: s, query: query}, nil
}

// bound is -Inf: no candidate is ever pruned, ties included.
func (p *linearProbe) bound(int) (float64, error) { return math.Inf(-1), nil }

func (p *linearProbe) exact(id int, cutoff float64) (float64, error) {
	return p.s.df.Distance(p.s.ds.Series[id], p.query, cutoff)
}

// New returns a DTWSearch when df is a DTW distance and a LinearSearch
// otherwise.
func New(ds *series.Dataset, df distance.Func, opts ...Option) (Searcher, error) {
	if _, ok := df.(*distance.DTW); ok {
		return NewDTWSearch(ds, df, opts...)
	}

	return NewLinearSearch(ds, df, opts...)
}
