package interval

import (
	"sort"
)

// PosType is this package's coordinate type.  Coordinates live in the
// concatenated-genome space (see Genome), so the usual int32 genomic position
// type is not wide enough: a human genome already concatenates past 3.1e9.
type PosType int64

// Iv is a half-open interval [Start, Stop) in concatenated-genome
// coordinates.  Iv is a value type; it carries no identity beyond its
// coordinates.
type Iv struct {
	Start PosType
	Stop  PosType
}

// Len returns the number of bases covered by the interval.
func (i Iv) Len() PosType { return i.Stop - i.Start }

// Overlaps checks whether the two half-open intervals have a non-empty
// intersection.
func (i Iv) Overlaps(other Iv) bool {
	return i.Stop > other.Start && i.Start < other.Stop
}

// Set is a sequence of intervals sorted ascending by start position (ties
// broken by stop).  A Set loaded through NewSetFromPath and then Merge()d is
// additionally guaranteed non-overlapping; a freshly randomized Set from the
// shuffle strategy is not.
type Set struct {
	ivs []Iv
}

// NewSet builds a Set from the given intervals.  The slice is copied and
// sorted; the caller keeps ownership of its argument.
func NewSet(ivs []Iv) *Set {
	s := &Set{ivs: make([]Iv, len(ivs))}
	copy(s.ivs, ivs)
	sort.Slice(s.ivs, func(i, j int) bool {
		if s.ivs[i].Start != s.ivs[j].Start {
			return s.ivs[i].Start < s.ivs[j].Start
		}
		return s.ivs[i].Stop < s.ivs[j].Stop
	})
	return s
}

// Count returns the number of intervals in the set.
func (s *Set) Count() int { return len(s.ivs) }

// Ivs returns the sorted interval slice.  The slice is shared; callers must
// not mutate it.
func (s *Set) Ivs() []Iv { return s.ivs }

// Clone returns a Set with its own copy of the interval slice.
func (s *Set) Clone() *Set {
	ivs := make([]Iv, len(s.ivs))
	copy(ivs, s.ivs)
	return &Set{ivs: ivs}
}

// Merge returns a new Set with touching and overlapping intervals unioned
// into maximal non-overlapping intervals.  [0,50) and [50,100) merge into
// [0,100).
func (s *Set) Merge() *Set {
	if len(s.ivs) == 0 {
		return &Set{}
	}
	merged := make([]Iv, 0, len(s.ivs))
	cur := s.ivs[0]
	for _, iv := range s.ivs[1:] {
		if iv.Start > cur.Stop {
			merged = append(merged, cur)
			cur = iv
			continue
		}
		if iv.Stop > cur.Stop {
			cur.Stop = iv.Stop
		}
	}
	merged = append(merged, cur)
	return &Set{ivs: merged}
}

// CoveredBases returns the total number of bases covered by the union of the
// set's intervals.
func (s *Set) CoveredBases() PosType {
	var tot PosType
	for _, iv := range s.Merge().ivs {
		tot += iv.Len()
	}
	return tot
}
