package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/dtwnn/series"
)

// Sentinel errors for dataset I/O.
var (
	// ErrMalformedRow indicates a line without a label and at least one value,
	// or a value that does not parse as a number.
	ErrMalformedRow = errors.New("dataio: malformed row")

	// ErrNonFinite indicates a NaN or infinite value.
	ErrNonFinite = errors.New("dataio: non-finite value")

	// ErrNotFound indicates a dataset name absent from a store.
	ErrNotFound = errors.New("dataio: dataset not found")
)

// Separator returns the field separator for path: a tab for .tsv files, a
// comma otherwise (.csv and the comma-separated .txt files of the 2015 UCR
// archive).
func Separator(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}

	return ','
}

// ReadUCR parses a UCR-format dataset from r. Lines starting with '#' are
// comments. Every row must have the same number of fields.
func ReadUCR(r io.Reader, comma rune) (*series.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	ds := series.New()
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("%w: record %d has %d fields", ErrMalformedRow, line, len(rec))
		}

		vals := make([]float64, len(rec)-1)
		for i, f := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: record %d field %d: %v", ErrMalformedRow, line, i+2, err)
			}
			vals[i] = v
		}
		s := series.Series{Values: vals, Class: ds.ClassIndex(strings.TrimSpace(rec[0]))}
		if !series.IsFinite(s) {
			return nil, fmt.Errorf("%w: record %d", ErrNonFinite, line)
		}
		if err := ds.Add(s); err != nil {
			return nil, fmt.Errorf("record %d: %w", line, err)
		}
	}

	return ds, nil
}

// WriteUCR writes ds to w in UCR format. Values use the shortest
// representation that parses back to the same float64.
func WriteUCR(w io.Writer, ds *series.Dataset, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	rec := make([]string, 0, ds.Length()+1)
	for i, s := range ds.Series {
		label, err := ds.ClassName(s.Class)
		if err != nil {
			return fmt.Errorf("series %d: %w", i, err)
		}
		rec = append(rec[:0], label)
		for _, v := range s.Values {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// ReadFile reads a UCR dataset from path, choosing the separator by extension.
func ReadFile(path string) (*series.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := ReadUCR(f, Separator(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ds, nil
}

// WriteFile writes ds to path in UCR format, choosing the separator by
// extension.
func WriteFile(path string, ds *series.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteUCR(f, ds, Separator(path)); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}
