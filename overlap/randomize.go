package overlap

import (
	"math/rand"

	"github.com/grailbio/permute/interval"
	"github.com/pkg/errors"
)

var (
	// ErrPlacementExhausted is the cause returned when a randomizer cannot
	// find a legal, mask-respecting placement within its retry budget.  It is
	// fatal for the run: silently falling back to an illegal or skipped
	// placement would bias the permutation distribution.
	ErrPlacementExhausted = errors.New("placement exhausted")
	// ErrIncompatibleConfig is the cause returned when the requested
	// configuration cannot produce a sound test, e.g. novl randomization with
	// merging disabled.
	ErrIncompatibleConfig = errors.New("incompatible configuration")
)

// Mode selects the interval-randomization strategy.
type Mode int

const (
	// ModeShuffle moves each interval independently to a uniform legal
	// position; outputs may overlap each other.
	ModeShuffle Mode = iota
	// ModeCircle rotates the whole interval layout around the chromosome (or
	// concatenated genome), preserving pairwise distances.
	ModeCircle
	// ModeNOvl repacks intervals and randomly split gap filler end to end,
	// producing a strictly non-overlapping layout.
	ModeNOvl
)

// String returns the label used in flags and in the result JSON.
func (m Mode) String() string {
	switch m {
	case ModeShuffle:
		return "shuffle"
	case ModeCircle:
		return "circle"
	case ModeNOvl:
		return "novl"
	}
	return "unknown"
}

// ParseMode converts a -random flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "shuffle":
		return ModeShuffle, nil
	case "circle":
		return ModeCircle, nil
	case "novl":
		return ModeNOvl, nil
	}
	return 0, errors.Errorf("unknown randomization mode %q (want \"shuffle\", \"circle\" or \"novl\")", s)
}

// Randomizer produces a new interval set with the same interval count and
// per-interval lengths as its input, placed entirely within placeable space
// according to one of the three strategies.  Implementations share no
// mutable state: the same Randomizer is safely invoked from many trials at
// once, each with its own rand.Rand.
type Randomizer interface {
	Randomize(movable *interval.Set, rng *rand.Rand) (*interval.Set, error)
}

// placement is the read-only state shared by all randomizers: the genome,
// the mask, the placeable spans (mask complement, sorted), and per-chromosome
// index ranges into those spans.
type placement struct {
	genome   *interval.Genome
	mask     *interval.Union
	space    []interval.Iv
	perChrom bool
	// chromSpans[c] = [lo, hi) index range of space belonging to chromosome c.
	chromSpans [][2]int
}

func newPlacement(g *interval.Genome, mask *interval.Union, perChrom bool) placement {
	p := placement{
		genome:     g,
		mask:       mask,
		space:      mask.Complement(g),
		perChrom:   perChrom,
		chromSpans: make([][2]int, g.NChrom()),
	}
	lo := 0
	for c := 0; c < g.NChrom(); c++ {
		chrom := g.ChromSpan(c)
		hi := lo
		for hi < len(p.space) && p.space[hi].Stop <= chrom.Stop {
			hi++
		}
		p.chromSpans[c] = [2]int{lo, hi}
		lo = hi
	}
	return p
}

// spansFor returns the candidate placeable spans for an interval whose
// original position is at the given concatenated-space coordinate.
func (p *placement) spansFor(pos interval.PosType) []interval.Iv {
	if !p.perChrom {
		return p.space
	}
	r := p.chromSpans[p.genome.ChromIndex(pos)]
	return p.space[r[0]:r[1]]
}

// NewRandomizer constructs the strategy selected by mode.  Selection happens
// once at configuration time; trials only see the Randomizer interface.
func NewRandomizer(mode Mode, g *interval.Genome, mask *interval.Union, perChrom bool) (Randomizer, error) {
	p := newPlacement(g, mask, perChrom)
	switch mode {
	case ModeShuffle:
		return &shuffler{placement: p}, nil
	case ModeCircle:
		return &circler{placement: p}, nil
	case ModeNOvl:
		return newNovler(p), nil
	}
	return nil, errors.Errorf("unknown randomization mode %v", mode)
}
