package overlap

import (
	"math/rand"

	"github.com/grailbio/permute/interval"
	"github.com/pkg/errors"
)

// novlMagic controls how finely uncovered space is split into filler blocks,
// as the inverse of the maximum filler size relative to the remaining gap
// budget.  Truly uniform non-overlapping placement would split the gaps into
// 1bp pieces, which is intractable; drawing pieces up to remaining/novlMagic
// keeps the piece count bounded while avoiding a bias toward one giant gap.
// This entropy reduction is a documented approximation of the strategy, not
// an implementation accident.
const novlMagic = 10000

// novler implements ModeNOvl, the gap-decomposition strategy: within each
// packing region, the space not covered by input intervals is split into
// randomly sized filler blocks, the fillers and the input intervals are
// shuffled together, and the blocks are laid end to end from the region
// start.  Total length is conserved exactly, so the last block ends at the
// region boundary and no two intervals can overlap.
//
// Packing regions are the maximal placeable spans when a mask is present
// (each span repacked independently), otherwise the chromosome spans under
// the per-chromosome constraint, or the single concatenated-genome span
// without it.
type novler struct {
	placement
	regions []interval.Iv
}

func newNovler(p placement) *novler {
	n := &novler{placement: p}
	switch {
	case !p.mask.Empty():
		n.regions = p.space
	case p.perChrom:
		n.regions = p.genome.Spans()
	default:
		n.regions = []interval.Iv{{Start: 0, Stop: p.genome.Span()}}
	}
	return n
}

func (n *novler) Randomize(movable *interval.Set, rng *rand.Rand) (*interval.Set, error) {
	ivs := movable.Ivs()
	out := make([]interval.Iv, 0, len(ivs))
	j := 0
	for _, region := range n.regions {
		k := j
		var realLen interval.PosType
		for k < len(ivs) && ivs[k].Start < region.Stop {
			if ivs[k].Start < region.Start || ivs[k].Stop > region.Stop {
				return nil, errors.Errorf(
					"novl: interval [%d, %d) extends outside placeable region [%d, %d)",
					ivs[k].Start, ivs[k].Stop, region.Start, region.Stop)
			}
			realLen += ivs[k].Len()
			k++
		}
		gap := region.Len() - realLen
		if gap < 0 {
			// Overlapping input; the engine rejects novl+no-merge before any
			// trial, so this indicates a caller bug.
			return nil, errors.Wrap(ErrIncompatibleConfig,
				"novl: input intervals overlap (merge required)")
		}

		// Arena of block lengths, real intervals tagged.  Indices are
		// shuffled instead of the blocks themselves.
		nReal := k - j
		lens := make([]interval.PosType, 0, nReal+16)
		isReal := make([]bool, 0, nReal+16)
		for remaining := gap; remaining > 0; {
			hi := remaining / novlMagic
			if hi < 2 {
				hi = 2
			}
			// Uniform in [1, hi); never exceeds remaining.
			piece := 1 + interval.PosType(rng.Int63n(int64(hi-1)))
			lens = append(lens, piece)
			isReal = append(isReal, false)
			remaining -= piece
		}
		for i := j; i < k; i++ {
			lens = append(lens, ivs[i].Len())
			isReal = append(isReal, true)
		}
		order := make([]int, len(lens))
		for i := range order {
			order[i] = i
		}
		rng.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })

		cur := region.Start
		for _, idx := range order {
			if isReal[idx] {
				out = append(out, interval.Iv{Start: cur, Stop: cur + lens[idx]})
			}
			cur += lens[idx]
		}
		j = k
	}
	return interval.NewSet(out), nil
}
