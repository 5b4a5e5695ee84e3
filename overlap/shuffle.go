package overlap

import (
	"math/rand"

	"github.com/grailbio/permute/interval"
	"github.com/pkg/errors"
)

// shuffler implements ModeShuffle: each interval is independently assigned a
// uniform draw over all legal placements, i.e. every (span, start) pair that
// keeps the whole interval inside one contiguous placeable span.  Larger
// spans therefore receive proportionally more placements.  Outputs may
// overlap each other; this strategy makes no disjointness guarantee.
type shuffler struct {
	placement
}

func (s *shuffler) Randomize(movable *interval.Set, rng *rand.Rand) (*interval.Set, error) {
	out := make([]interval.Iv, 0, movable.Count())
	for _, iv := range movable.Ivs() {
		spans := s.spansFor(iv.Start)
		length := iv.Len()
		// Legal starts in a span of length L: L - length + 1.
		var total interval.PosType
		for _, sp := range spans {
			if c := sp.Len() - length + 1; c > 0 {
				total += c
			}
		}
		if total == 0 {
			return nil, errors.Wrapf(ErrPlacementExhausted,
				"no placeable span fits an interval of length %d", length)
		}
		r := interval.PosType(rng.Int63n(int64(total)))
		for _, sp := range spans {
			c := sp.Len() - length + 1
			if c <= 0 {
				continue
			}
			if r < c {
				out = append(out, interval.Iv{Start: sp.Start + r, Stop: sp.Start + r + length})
				break
			}
			r -= c
		}
	}
	return interval.NewSet(out), nil
}
