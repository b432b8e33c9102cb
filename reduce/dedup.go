package reduce

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/katalvlaran/dtwnn/series"
)

// Deduplicate returns a copy of ds without series that equal an earlier one
// (same class, every value ==), together with the number removed. The first
// occurrence of each group is kept and the input order is preserved.
//
// Series are bucketed by an xxhash digest of their class and values and
// compared exactly within a bucket, so the pass is linear in practice.
// Running Deduplicate on its own output removes nothing.
func Deduplicate(ds *series.Dataset) (*series.Dataset, int) {
	out := ds.Empty()
	buckets := make(map[uint64][]int, ds.Len())
	removed := 0
	for _, s := range ds.Series {
		key := digest(s)
		dup := false
		for _, k := range buckets[key] {
			if out.Series[k].Equal(s) {
				dup = true
				break
			}
		}
		if dup {
			removed++
			continue
		}
		buckets[key] = append(buckets[key], len(out.Series))
		out.Series = append(out.Series, s.Clone())
	}

	return out, removed
}

// digest hashes the class and values of s. -0 is hashed as +0 so values
// that compare equal share a bucket.
func digest(s series.Series) uint64 {
	h := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(s.Class)))
	_, _ = h.Write(buf[:])
	for _, v := range s.Values {
		if v == 0 {
			v = 0
		}
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}

	return h.Sum64()
}
