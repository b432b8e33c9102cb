package series

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultRange selects every index.
const DefaultRange = "first-last"

// Range is a set of 1-based inclusive index intervals such as
// "first-3,5,7-last". The bounds "first" and "last" resolve against the size
// passed to Contains, so one Range can be reused across collections.
// Indices beyond the size never match.
//
// Inverted ranges select the complement.
type Range struct {
	spec   string
	parts  []span
	invert bool
}

// span is one interval; a bound of 0 means "first", -1 means "last".
type span struct {
	lo, hi int
}

const (
	boundFirst = 0
	boundLast  = -1
)

// ParseRange parses a comma-separated list of indices and intervals.
// Whitespace around items is ignored. The empty string is rejected.
func ParseRange(spec string) (Range, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return Range{}, fmt.Errorf("%w: empty", ErrBadRange)
	}

	var parts []span
	for _, item := range strings.Split(trimmed, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			return Range{}, fmt.Errorf("%w: empty item in %q", ErrBadRange, spec)
		}

		loTok, hiTok, isInterval := strings.Cut(item, "-")
		lo, err := parseBound(loTok)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q: %v", ErrBadRange, item, err)
		}
		hi := lo
		if isInterval {
			if hi, err = parseBound(hiTok); err != nil {
				return Range{}, fmt.Errorf("%w: %q: %v", ErrBadRange, item, err)
			}
		}
		// Only numeric bounds can be ordered before the size is known.
		if lo > 0 && hi > 0 && lo > hi {
			return Range{}, fmt.Errorf("%w: %q: lower bound above upper bound", ErrBadRange, item)
		}
		parts = append(parts, span{lo: lo, hi: hi})
	}

	return Range{spec: trimmed, parts: parts}, nil
}

// MustParseRange is ParseRange for constant specifications; it panics on error.
func MustParseRange(spec string) Range {
	r, err := ParseRange(spec)
	if err != nil {
		panic(err)
	}

	return r
}

// parseBound parses "first", "last" or a positive 1-based index.
func parseBound(tok string) (int, error) {
	switch tok = strings.TrimSpace(strings.ToLower(tok)); tok {
	case "first":
		return boundFirst, nil
	case "last":
		return boundLast, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", tok)
	}
	if n < 1 {
		return 0, fmt.Errorf("index %d must be >= 1", n)
	}

	return n, nil
}

// WithInvert returns a copy of r whose selection is complemented when invert
// is true.
func (r Range) WithInvert(invert bool) Range {
	r.invert = invert

	return r
}

// Inverted reports whether r selects the complement of its intervals.
func (r Range) Inverted() bool { return r.invert }

// String returns the specification r was parsed from.
func (r Range) String() string {
	if r.spec == "" {
		return DefaultRange
	}

	return r.spec
}

// IsAll reports whether r selects every index of any collection.
func (r Range) IsAll() bool {
	if r.invert {
		return false
	}
	for _, p := range r.parts {
		if p.lo == boundFirst && p.hi == boundLast {
			return true
		}
	}

	return len(r.parts) == 0
}

// Contains reports whether the 0-based index is selected in a collection of
// the given size. The zero Range selects everything.
func (r Range) Contains(index, size int) bool {
	if index < 0 || index >= size {
		return false
	}
	if len(r.parts) == 0 {
		return !r.invert
	}

	pos := index + 1
	hit := false
	for _, p := range r.parts {
		lo, hi := resolve(p.lo, size), resolve(p.hi, size)
		if pos >= lo && pos <= hi {
			hit = true
			break
		}
	}

	return hit != r.invert
}

// Select returns the selected 0-based indices of a collection of size n in
// ascending order.
func (r Range) Select(n int) []int {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if r.Contains(i, n) {
			out = append(out, i)
		}
	}

	return out
}

// resolve maps a bound to a 1-based position.
func resolve(b, size int) int {
	switch b {
	case boundFirst:
		return 1
	case boundLast:
		return size
	default:
		return b
	}
}
