package lb

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for envelope construction and bounding.
var (
	// ErrEmptyInput indicates an empty query or candidate.
	ErrEmptyInput = errors.New("lb: input sequence must be non-empty")

	// ErrDimensionMismatch indicates a candidate whose length differs from
	// the envelope.
	ErrDimensionMismatch = errors.New("lb: candidate length differs from envelope")
)

// Envelope is the per-position [Lower, Upper] band of a query series.
// It is derived data: build it once per query and never mutate it.
type Envelope struct {
	Lower []float64
	Upper []float64
}

// Len returns the number of positions covered by the envelope.
func (e Envelope) Len() int { return len(e.Lower) }

// NewEnvelope computes the envelope of query for an absolute window width w.
// w is clipped to [0, n-1]; callers convert percentages with dtw.Window.
//
// Upper uses -Inf as the identity of the running maximum, so windows made
// only of negative values keep their true maximum.
func NewEnvelope(query []float64, w int) (Envelope, error) {
	n := len(query)
	if n == 0 {
		return Envelope{}, ErrEmptyInput
	}
	if w < 0 {
		w = 0
	}
	if w > n-1 {
		w = n - 1
	}

	env := Envelope{
		Lower: make([]float64, n),
		Upper: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		lo, hi := i-w, i+w
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}

		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, v := range query[lo : hi+1] {
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
		env.Lower[i] = minV
		env.Upper[i] = maxV
	}

	return env, nil
}

// Keogh returns the LB_Keogh lower bound between env and candidate:
// sqrt(Σ (c_i - U_i)² for c_i > U_i + Σ (c_i - L_i)² for c_i < L_i) over
// every position except the last.
func Keogh(env Envelope, candidate []float64) (float64, error) {
	if len(candidate) == 0 {
		return 0, ErrEmptyInput
	}
	if len(candidate) != env.Len() {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(candidate), env.Len())
	}

	var sum float64
	for i := 0; i < len(candidate)-1; i++ {
		p := candidate[i]
		switch {
		case p > env.Upper[i]:
			d := p - env.Upper[i]
			sum += d * d
		case p < env.Lower[i]:
			d := p - env.Lower[i]
			sum += d * d
		}
	}

	return math.Sqrt(sum), nil
}
