package interval

// searchPosType returns the index of x in a[], or the position where x would
// be inserted if x isn't in a (this could be len(a)).  It's exactly the same
// as sort.SearchInt(), except for PosType.
func searchPosType(a []PosType, x PosType) int {
	// Inlined sort.Search; the compiler does not inline closures passed to it.
	startIdx := 0
	endIdx := len(a)
	for startIdx < endIdx {
		midIdx := int(uint(startIdx+endIdx) >> 1)
		if a[midIdx] >= x {
			endIdx = midIdx
		} else {
			startIdx = midIdx + 1
		}
	}
	return startIdx
}

// fwdsearchPosType checks a[idx], then a[idx + 1], then a[idx + 3], then
// a[idx + 7], etc., and then uses binary search to finish the job.  It's
// usually a better choice than searchPosType when iterating with
// nondecreasing x.
func fwdsearchPosType(a []PosType, x PosType, idx int) int {
	nextIncr := 1
	startIdx := idx
	endIdx := len(a)
	for idx < endIdx {
		if a[idx] >= x {
			endIdx = idx
			break
		}
		startIdx = idx + 1
		idx += nextIncr
		nextIncr *= 2
	}
	for startIdx < endIdx {
		midIdx := int(uint(startIdx+endIdx) >> 1)
		if a[midIdx] >= x {
			endIdx = midIdx
		} else {
			startIdx = midIdx + 1
		}
	}
	return startIdx
}

// Union is a merged interval union in concatenated-genome coordinates,
// stored as a length-2N boundary sequence: the start of interval #k
// (numbering from zero) is in element [2k] and the end position is in
// element [2k+1], in increasing order.  Advantages of this representation
// over a length-N sequence of Iv structs include trivial membership tests
// (the parity of a binary-search insertion point) and reuse of the plain
// []PosType search routines above.
//
// A nil *Union behaves as an empty union, so an optional mask can be carried
// around without nil checks at every use.
type Union struct {
	bounds []PosType
}

// NewUnion builds a Union from a Set, merging touching and overlapping
// intervals.
func NewUnion(s *Set) *Union {
	merged := s.Merge().Ivs()
	u := &Union{bounds: make([]PosType, 0, 2*len(merged))}
	for _, iv := range merged {
		u.bounds = append(u.bounds, iv.Start, iv.Stop)
	}
	return u
}

// Empty returns true if the union covers no bases.
func (u *Union) Empty() bool { return u == nil || len(u.bounds) == 0 }

// Overlaps checks whether the half-open interval [start, stop) intersects
// the union.
func (u *Union) Overlaps(start, stop PosType) bool {
	if u.Empty() {
		return false
	}
	idx := searchPosType(u.bounds, start+1)
	if idx&1 == 1 {
		return true
	}
	return idx != len(u.bounds) && u.bounds[idx] < stop
}

// Spans returns the union's maximal intervals in increasing order.
func (u *Union) Spans() []Iv {
	if u.Empty() {
		return nil
	}
	spans := make([]Iv, 0, len(u.bounds)/2)
	for i := 0; i < len(u.bounds); i += 2 {
		spans = append(spans, Iv{Start: u.bounds[i], Stop: u.bounds[i+1]})
	}
	return spans
}

// Complement returns the maximal intervals of the genome not covered by the
// union, clipped to chromosome spans: this is the placeable space when the
// union is a mask.  An empty union complements to the full chromosome spans.
// Union intervals merged across a chromosome boundary (adjacent chromosomes
// masked at their facing ends) are handled by the clipping.
func (u *Union) Complement(g *Genome) []Iv {
	spans := u.Spans()
	var out []Iv
	j := 0
	for c := 0; c < g.NChrom(); c++ {
		chrom := g.ChromSpan(c)
		pos := chrom.Start
		for j < len(spans) && spans[j].Stop <= chrom.Start {
			j++
		}
		for k := j; k < len(spans) && spans[k].Start < chrom.Stop; k++ {
			if spans[k].Start > pos {
				out = append(out, Iv{Start: pos, Stop: spans[k].Start})
			}
			if spans[k].Stop > pos {
				pos = spans[k].Stop
			}
		}
		if pos < chrom.Stop {
			out = append(out, Iv{Start: pos, Stop: chrom.Stop})
		}
	}
	return out
}

// Filter returns the subset of s with no overlap against the mask.  Removal
// is all-or-nothing: an interval partially covered by the mask is removed
// entirely, never clipped.  Filtering is idempotent.
func Filter(s *Set, mask *Union) *Set {
	if mask.Empty() {
		return s.Clone()
	}
	kept := make([]Iv, 0, s.Count())
	idx := 0
	for _, iv := range s.Ivs() {
		// s is sorted by start, so the insertion point only moves forward.
		idx = fwdsearchPosType(mask.bounds, iv.Start+1, idx)
		if idx&1 == 1 || (idx != len(mask.bounds) && mask.bounds[idx] < iv.Stop) {
			continue
		}
		kept = append(kept, iv)
	}
	return &Set{ivs: kept}
}
