package knn

import (
	"fmt"

	"github.com/katalvlaran/dtwnn/distance"
	"github.com/katalvlaran/dtwnn/dtw"
	"github.com/katalvlaran/dtwnn/lb"
	"github.com/katalvlaran/dtwnn/series"
)

// DTWSearch is the LB_Keogh-pruned nearest-neighbour search for banded DTW.
type DTWSearch struct {
	base
	df   *distance.DTW
	proj [][]float64 // attribute-projected candidates, by id
}

// NewDTWSearch returns a searcher over ds using df, which must be a
// *distance.DTW (ErrInvalidConfiguration otherwise).
//
// Candidate projections onto df's attribute range are computed once here.
func NewDTWSearch(ds *series.Dataset, df distance.Func, opts ...Option) (*DTWSearch, error) {
	if ds == nil {
		return nil, ErrEmptyDataset
	}
	d, ok := df.(*distance.DTW)
	if !ok || d == nil {
		return nil, fmt.Errorf("%w: DTW search requires a DTW distance, got %v", ErrInvalidConfiguration, df)
	}

	s := &DTWSearch{base: newBase(ds, opts), df: d}
	s.proj = make([][]float64, ds.Len())
	for id, cand := range ds.Series {
		s.proj[id] = d.Project(cand)
	}
	s.newProbe = s.probe

	return s, nil
}

// dtwProbe bounds candidates with the query envelope and evaluates banded
// DTW on the projected values.
type dtwProbe struct {
	s     *DTWSearch
	query []float64
	env   lb.Envelope
}

func (s *DTWSearch) probe(query series.Series) (probe, error) {
	q := s.df.Project(query)
	env, err := lb.NewEnvelope(q, dtw.Window(s.df.WindowPercent, len(q)))
	if err != nil {
		return nil, err
	}

	return &dtwProbe{s: s, query: q, env: env}, nil
}

func (p *dtwProbe) bound(id int) (float64, error) {
	return lb.Keogh(p.env, p.s.proj[id])
}

func (p *dtwProbe) exact(id int, cutoff float64) (float64, error) {
	opts := dtw.Options{
		WindowPercent: p.s.df.WindowPercent,
		Cutoff:        cutoff,
		MemoryMode:    p.s.df.MemoryMode,
	}

	return dtw.Distance(p.s.proj[id], p.query, &opts)
}
