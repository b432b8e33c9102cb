// Package series defines the labelled time-series data model shared by the
// dtwnn packages: Series (a fixed-length numeric sequence with a nominal class
// index), Dataset (an ordered, position-identified collection of Series with
// its class vocabulary) and Range (1-based index ranges such as
// "first-3,5,7-last", used to pick attributes and classes).
//
// Datasets have value semantics: Clone returns a deep copy, and nothing in
// dtwnn mutates a Dataset it was handed; reductions return new Datasets.
//
// Errors:
//
//	ErrEmptySeries       - a series has no values.
//	ErrDimensionMismatch - series of different lengths in one dataset.
//	ErrUnknownClass      - a class index outside the dataset vocabulary.
//	ErrBadRange          - a range specification cannot be parsed.
package series
