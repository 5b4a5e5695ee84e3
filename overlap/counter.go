package overlap

import (
	"github.com/grailbio/permute/interval"
	"github.com/pkg/errors"
)

// CountMode selects how overlaps between two interval sets are tallied.
type CountMode int

const (
	// CountAll counts every intersecting (a, b) pair: a single a interval
	// overlapping three b intervals contributes 3.
	CountAll CountMode = iota
	// CountAny counts each a interval with at least one overlapping b
	// interval, regardless of multiplicity.
	CountAny
)

// String returns the label used in flags and in the result JSON.
func (m CountMode) String() string {
	switch m {
	case CountAll:
		return "all"
	case CountAny:
		return "any"
	}
	return "unknown"
}

// ParseCountMode converts a -count flag value to a CountMode.
func ParseCountMode(s string) (CountMode, error) {
	switch s {
	case "all":
		return CountAll, nil
	case "any":
		return CountAny, nil
	}
	return 0, errors.Errorf("unknown count mode %q (want \"all\" or \"any\")", s)
}

// Count returns the overlap count of a against b under the given mode.  Both
// sets must be sorted by start (interval.Set guarantees this); neither needs
// to be internally non-overlapping.  The caller is responsible for argument
// order: throughout this package the first argument is the randomized
// (movable) set and the second the fixed set, for both the observed count
// and every permutation, so counts stay comparable.
//
// The scan is a linear merge over the two sorted lists.  The lower bound
// into b only moves forward: once b[lo].Stop <= a[i].Start, no later a (all
// of which start at or after a[i].Start) can reach b[lo] again.
func Count(a, b *interval.Set, mode CountMode) int64 {
	av, bv := a.Ivs(), b.Ivs()
	var total int64
	lo := 0
	for _, iv := range av {
		for lo < len(bv) && bv[lo].Stop <= iv.Start {
			lo++
		}
		for j := lo; j < len(bv) && bv[j].Start < iv.Stop; j++ {
			if bv[j].Stop > iv.Start {
				total++
				if mode == CountAny {
					break
				}
			}
		}
	}
	return total
}
