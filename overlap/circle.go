package overlap

import (
	"math/rand"

	"github.com/grailbio/permute/interval"
	"github.com/pkg/errors"
)

// circleMaxRetries bounds how many rotations are drawn for one chromosome
// (or for the whole genome) before a mask-blocked circle randomization is
// declared exhausted.
const circleMaxRetries = 1000

// circler implements ModeCircle: a single rotation amount is drawn per
// chromosome (or per genome without the per-chromosome constraint) and added
// modulo the span length to every interval, preserving all pairwise
// distances.  Intervals pushed past the span end wrap around to its start,
// splitting at the boundary.  If any placed piece lands in masked space the
// rotation is redrawn; after circleMaxRetries failures the run fails with
// ErrPlacementExhausted rather than degrading silently.
type circler struct {
	placement
}

func (c *circler) Randomize(movable *interval.Set, rng *rand.Rand) (*interval.Set, error) {
	ivs := movable.Ivs()
	out := make([]interval.Iv, 0, len(ivs)+1)
	if !c.perChrom {
		placed, err := c.rotateGroup(ivs, interval.Iv{Start: 0, Stop: c.genome.Span()}, rng)
		if err != nil {
			return nil, err
		}
		return interval.NewSet(append(out, placed...)), nil
	}
	for lo := 0; lo < len(ivs); {
		chrom := c.genome.ChromSpan(c.genome.ChromIndex(ivs[lo].Start))
		hi := lo
		for hi < len(ivs) && ivs[hi].Start < chrom.Stop {
			hi++
		}
		placed, err := c.rotateGroup(ivs[lo:hi], chrom, rng)
		if err != nil {
			return nil, err
		}
		out = append(out, placed...)
		lo = hi
	}
	return interval.NewSet(out), nil
}

// rotateGroup draws rotations for one span's intervals until a draw avoids
// the mask, up to the retry ceiling.  With an empty mask the first draw
// always succeeds.
func (c *circler) rotateGroup(ivs []interval.Iv, span interval.Iv, rng *rand.Rand) ([]interval.Iv, error) {
	for try := 0; try < circleMaxRetries; try++ {
		r := interval.PosType(rng.Int63n(int64(span.Len())))
		if placed, ok := c.rotate(ivs, span, r); ok {
			return placed, nil
		}
	}
	return nil, errors.Wrapf(ErrPlacementExhausted,
		"no mask-compatible rotation of span [%d, %d) found in %d tries",
		span.Start, span.Stop, circleMaxRetries)
}

// rotate shifts every interval by r within span, wrapping at the span end.
// ok is false if any placed piece intersects the mask.
func (c *circler) rotate(ivs []interval.Iv, span interval.Iv, r interval.PosType) ([]interval.Iv, bool) {
	width := span.Len()
	placed := make([]interval.Iv, 0, len(ivs)+1)
	for _, iv := range ivs {
		newStart := span.Start + (iv.Start-span.Start+r)%width
		newStop := newStart + iv.Len()
		pieces := [2]interval.Iv{}
		n := 1
		if newStop <= span.Stop {
			pieces[0] = interval.Iv{Start: newStart, Stop: newStop}
		} else {
			pieces[0] = interval.Iv{Start: newStart, Stop: span.Stop}
			pieces[1] = interval.Iv{Start: span.Start, Stop: span.Start + newStop - span.Stop}
			n = 2
		}
		for _, piece := range pieces[:n] {
			if c.mask.Overlaps(piece.Start, piece.Stop) {
				return nil, false
			}
		}
		placed = append(placed, pieces[:n]...)
	}
	return placed, true
}
