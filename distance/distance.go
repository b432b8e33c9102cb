package distance

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/dtwnn/dtw"
	"github.com/katalvlaran/dtwnn/series"
)

// Sentinel errors for distance functions.
var (
	// ErrDimensionMismatch indicates series of unequal length.
	ErrDimensionMismatch = errors.New("distance: series must have equal length")

	// ErrInvalidConfiguration indicates an unknown or malformed specification.
	ErrInvalidConfiguration = errors.New("distance: invalid configuration")

	// ErrNoAttributes indicates an attribute range that selects nothing.
	ErrNoAttributes = errors.New("distance: attribute range selects no values")
)

// Func is a distance between two equal-length series.
//
// Distance returns a non-negative value. If the true distance would exceed
// cutoff, implementations may stop early and return +Inf; pass +Inf to
// always get the exact value.
type Func interface {
	Distance(a, b series.Series, cutoff float64) (float64, error)

	// String returns the specification string accepted by Parse.
	String() string
}

// DTW is the banded DTW distance restricted to an attribute range.
type DTW struct {
	// WindowPercent is the Sakoe–Chiba band as a percentage of the
	// (selected) series length.
	WindowPercent int

	// Attributes selects the positions taken into account.
	Attributes series.Range

	// MemoryMode is forwarded to dtw.Distance.
	MemoryMode dtw.MemoryMode
}

// NewDTW returns a DTW distance over all attributes.
func NewDTW(windowPercent int) *DTW {
	return &DTW{
		WindowPercent: windowPercent,
		Attributes:    series.MustParseRange(series.DefaultRange),
		MemoryMode:    dtw.TwoRows,
	}
}

// Distance implements Func.
func (d *DTW) Distance(a, b series.Series, cutoff float64) (float64, error) {
	x, y, err := project(d.Attributes, a, b)
	if err != nil {
		return 0, err
	}
	opts := dtw.Options{
		WindowPercent: d.WindowPercent,
		Cutoff:        cutoff,
		MemoryMode:    d.MemoryMode,
	}

	return dtw.Distance(x, y, &opts)
}

// Project returns the selected attribute values of s. When the range selects
// everything the original slice is returned without copying.
func (d *DTW) Project(s series.Series) []float64 {
	return selectValues(d.Attributes, s.Values)
}

// String implements Func.
func (d *DTW) String() string {
	return fmt.Sprintf("dtw -W %d%s", d.WindowPercent, rangeFlags(d.Attributes))
}

// Euclidean is the Euclidean distance restricted to an attribute range.
type Euclidean struct {
	Attributes series.Range
}

// NewEuclidean returns a Euclidean distance over all attributes.
func NewEuclidean() *Euclidean {
	return &Euclidean{Attributes: series.MustParseRange(series.DefaultRange)}
}

// Distance implements Func. The running sum is checked against cutoff² after
// every term.
func (e *Euclidean) Distance(a, b series.Series, cutoff float64) (float64, error) {
	x, y, err := project(e.Attributes, a, b)
	if err != nil {
		return 0, err
	}

	limit := math.Inf(1)
	if cutoff > 0 && !math.IsInf(cutoff, 1) {
		limit = cutoff * cutoff
	}
	var sum float64
	for i := range x {
		diff := x[i] - y[i]
		sum += diff * diff
		if sum > limit && math.Sqrt(sum) > cutoff {
			return math.Inf(1), nil
		}
	}

	return math.Sqrt(sum), nil
}

// String implements Func.
func (e *Euclidean) String() string {
	return "euclidean" + rangeFlags(e.Attributes)
}

// project validates lengths and applies the attribute range to both series.
func project(r series.Range, a, b series.Series) ([]float64, []float64, error) {
	if len(a.Values) != len(b.Values) {
		return nil, nil, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a.Values), len(b.Values))
	}
	x, y := selectValues(r, a.Values), selectValues(r, b.Values)
	if len(x) == 0 {
		return nil, nil, ErrNoAttributes
	}

	return x, y, nil
}

// selectValues applies r to values.
func selectValues(r series.Range, values []float64) []float64 {
	if r.IsAll() {
		return values
	}
	idx := r.Select(len(values))
	out := make([]float64, len(idx))
	for k, i := range idx {
		out[k] = values[i]
	}

	return out
}

// rangeFlags renders the -R/-V flags, omitting defaults.
func rangeFlags(r series.Range) string {
	var b strings.Builder
	if r.String() != series.DefaultRange {
		b.WriteString(" -R ")
		b.WriteString(r.String())
	}
	if r.Inverted() {
		b.WriteString(" -V")
	}

	return b.String()
}

// Parse builds a Func from a specification string: a function name followed
// by options.
//
// Names: "dtw", "DTWDistance" (any package prefix) and "euclidean",
// "EuclideanDistance". The empty string means DTW with default options.
//
// Options:
//
//	-W <percent>  DTW band width in [0, 100] (default 10; DTW only)
//	-R <range>    attribute range (default "first-last")
//	-V            invert the attribute range
func Parse(spec string) (Func, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return NewDTW(dtw.DefaultWindowPercent), nil
	}

	name := strings.ToLower(fields[0])
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}

	window := dtw.DefaultWindowPercent
	windowSet := false
	rangeSpec := series.DefaultRange
	invert := false
	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "-W":
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("%w: -W needs a value", ErrInvalidConfiguration)
			}
			i++
			w, err := strconv.Atoi(fields[i])
			if err != nil || w < 0 || w > 100 {
				return nil, fmt.Errorf("%w: bad window %q", ErrInvalidConfiguration, fields[i])
			}
			window, windowSet = w, true
		case "-R":
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("%w: -R needs a value", ErrInvalidConfiguration)
			}
			i++
			rangeSpec = fields[i]
		case "-V":
			invert = true
		default:
			return nil, fmt.Errorf("%w: unknown option %q", ErrInvalidConfiguration, fields[i])
		}
	}

	attrs, err := series.ParseRange(rangeSpec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	attrs = attrs.WithInvert(invert)

	switch name {
	case "dtw", "dtwdistance":
		d := NewDTW(window)
		d.Attributes = attrs

		return d, nil
	case "euclidean", "euclideandistance":
		if windowSet {
			return nil, fmt.Errorf("%w: -W applies to dtw only", ErrInvalidConfiguration)
		}

		return &Euclidean{Attributes: attrs}, nil
	default:
		return nil, fmt.Errorf("%w: unknown distance function %q", ErrInvalidConfiguration, fields[0])
	}
}
