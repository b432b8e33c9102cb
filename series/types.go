package series

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for the data model.
var (
	// ErrEmptySeries indicates a series with zero values.
	ErrEmptySeries = errors.New("series: series must have at least one value")

	// ErrDimensionMismatch indicates series of unequal length in one dataset.
	ErrDimensionMismatch = errors.New("series: dimension mismatch")

	// ErrUnknownClass indicates a class index outside Dataset.Classes.
	ErrUnknownClass = errors.New("series: unknown class index")

	// ErrBadRange indicates a malformed range specification.
	ErrBadRange = errors.New("series: invalid range specification")
)

// Series is one labelled time series.
//
// Values holds the measurements in time order; Class is the index of the
// series label in the owning Dataset's Classes slice.
type Series struct {
	Values []float64
	Class  int
}

// Len returns the number of measurements.
func (s Series) Len() int { return len(s.Values) }

// Clone returns a deep copy of s.
func (s Series) Clone() Series {
	vals := make([]float64, len(s.Values))
	copy(vals, s.Values)

	return Series{Values: vals, Class: s.Class}
}

// Equal reports whether s and o carry the same class and exactly the same
// values. Comparison uses ==, so NaN never matches and -0 equals +0.
func (s Series) Equal(o Series) bool {
	if s.Class != o.Class || len(s.Values) != len(o.Values) {
		return false
	}
	for i, v := range s.Values {
		if v != o.Values[i] {
			return false
		}
	}

	return true
}

// Dataset is an ordered collection of equal-length Series.
//
// A series is identified by its position; duplicates by value are allowed.
// Classes is the nominal class vocabulary: Series.Class indexes into it.
type Dataset struct {
	Classes []string
	Series  []Series
}

// New returns an empty dataset with the given class vocabulary.
func New(classes ...string) *Dataset {
	cls := make([]string, len(classes))
	copy(cls, classes)

	return &Dataset{Classes: cls}
}

// Len returns the number of series in the dataset. A nil dataset has length 0.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}

	return len(d.Series)
}

// Length returns the common series length, or 0 for an empty dataset.
func (d *Dataset) Length() int {
	if d.Len() == 0 {
		return 0
	}

	return len(d.Series[0].Values)
}

// NumClasses returns the size of the class vocabulary.
func (d *Dataset) NumClasses() int { return len(d.Classes) }

// ClassIndex returns the index of label in the vocabulary, appending it when
// absent.
func (d *Dataset) ClassIndex(label string) int {
	for i, c := range d.Classes {
		if c == label {
			return i
		}
	}
	d.Classes = append(d.Classes, label)

	return len(d.Classes) - 1
}

// ClassName returns the label of class index c.
func (d *Dataset) ClassName(c int) (string, error) {
	if c < 0 || c >= len(d.Classes) {
		return "", fmt.Errorf("%w: %d", ErrUnknownClass, c)
	}

	return d.Classes[c], nil
}

// Add appends s after checking it against the dataset shape.
func (d *Dataset) Add(s Series) error {
	if err := d.check(s); err != nil {
		return err
	}
	d.Series = append(d.Series, s)

	return nil
}

// AddLabeled appends a series whose class is given by label, growing the
// vocabulary when needed.
func (d *Dataset) AddLabeled(label string, values []float64) error {
	return d.Add(Series{Values: values, Class: d.ClassIndex(label)})
}

// Validate checks every series: non-empty, equal length, known class.
func (d *Dataset) Validate() error {
	for i, s := range d.Series {
		if err := d.check(s); err != nil {
			return fmt.Errorf("series %d: %w", i, err)
		}
	}

	return nil
}

// check validates one series against the dataset.
func (d *Dataset) check(s Series) error {
	if len(s.Values) == 0 {
		return ErrEmptySeries
	}
	if n := d.Length(); n != 0 && len(s.Values) != n {
		return fmt.Errorf("%w: length %d, want %d", ErrDimensionMismatch, len(s.Values), n)
	}
	if s.Class < 0 || s.Class >= len(d.Classes) {
		return fmt.Errorf("%w: %d", ErrUnknownClass, s.Class)
	}

	return nil
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Classes: make([]string, len(d.Classes)),
		Series:  make([]Series, len(d.Series)),
	}
	copy(out.Classes, d.Classes)
	for i, s := range d.Series {
		out.Series[i] = s.Clone()
	}

	return out
}

// Empty returns a dataset that shares the class vocabulary of d but holds no
// series. The vocabulary is copied.
func (d *Dataset) Empty() *Dataset {
	return New(d.Classes...)
}

// CountByClass returns the number of series per class index.
func (d *Dataset) CountByClass() []int {
	counts := make([]int, len(d.Classes))
	for _, s := range d.Series {
		if s.Class >= 0 && s.Class < len(counts) {
			counts[s.Class]++
		}
	}

	return counts
}

// IsFinite reports whether every value of s is a finite number.
func IsFinite(s Series) bool {
	for _, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
