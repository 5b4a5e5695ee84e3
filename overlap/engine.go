package overlap

import (
	"encoding/binary"
	"math/rand"
	"runtime"
	"time"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/permute/interval"
	"github.com/pkg/errors"
)

// Opts configures a permutation-test run.
type Opts struct {
	// Random selects the randomization strategy.
	Random Mode
	// Count selects the overlap-counting mode.
	Count CountMode
	// NumTimes is the number of permutation trials.
	NumTimes int
	// Alt fixes the alternative-hypothesis direction; AltAuto derives it
	// from the observed count versus the permutation mean.
	Alt Alternative
	// PerChrom restricts randomized placement of each interval to its
	// original chromosome.
	PerChrom bool
	// NoMerge disables the merge of touching/overlapping input intervals.
	// Incompatible with ModeNOvl.
	NoMerge bool
	// NoSwap disables swapping A and B when A is the larger set.
	NoSwap bool
	// Seed makes the run reproducible; 0 seeds from the wall clock.
	Seed int64
	// Parallelism bounds the number of concurrent trial workers;
	// 0 = runtime.NumCPU().
	Parallelism int
}

// DefaultOpts holds the default run configuration.
var DefaultOpts = Opts{
	Random:   ModeShuffle,
	Count:    CountAll,
	NumTimes: 100,
}

// trialSeed derives the RNG seed for one trial from the run seed and the
// trial index, so trials own independent deterministic sources with no
// shared mutable RNG state.
func trialSeed(runSeed int64, trial int) int64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(trial))
	return int64(farm.Hash64WithSeed(buf[:], uint64(runSeed)))
}

// Run executes the permutation test of a against b.  a and b must already be
// mask-filtered (NewSetFromPath does this); mask may be nil.  The returned
// Result contains the observed count, all NumTimes permutation counts in
// trial order (stable for a fixed Opts.Seed), and the derived statistics.
//
// Configuration errors are detected before any trial starts, and any trial
// failure aborts the whole run: a test with silently dropped trials would
// misrepresent n and corrupt the p-value.
func Run(g *interval.Genome, a, b *interval.Set, mask *interval.Union, opts Opts) (*Result, error) {
	if opts.NumTimes <= 0 {
		return nil, errors.Errorf("number of permutations must be positive, got %d", opts.NumTimes)
	}
	if opts.Random == ModeNOvl && opts.NoMerge {
		return nil, errors.Wrap(ErrIncompatibleConfig, "novl randomization requires merged input")
	}
	if !opts.NoMerge {
		log.Printf("merging overlaps")
		a = a.Merge()
		b = b.Merge()
	}
	swapped := false
	if !opts.NoSwap && a.Count() > b.Count() {
		log.Printf("swapping A for shorter B")
		a, b = b, a
		swapped = true
	}
	randomizer, err := NewRandomizer(opts.Random, g, mask, opts.PerChrom)
	if err != nil {
		return nil, err
	}

	observed := Count(a, b, opts.Count)
	log.Printf("%d intersections", observed)

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > opts.NumTimes {
		parallelism = opts.NumTimes
	}
	counts := make([]int64, opts.NumTimes)
	err = traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * opts.NumTimes) / parallelism
		endIdx := ((jobIdx + 1) * opts.NumTimes) / parallelism
		for trial := startIdx; trial < endIdx; trial++ {
			rng := rand.New(rand.NewSource(trialSeed(seed, trial)))
			randomized, err := randomizer.Randomize(a, rng)
			if err != nil {
				return err
			}
			counts[trial] = Count(randomized, b, opts.Count)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s := summarize(observed, counts, opts.Alt)
	log.Printf("perm mu: %v", s.mean)
	log.Printf("perm sd: %v", s.sd)
	log.Printf("alt : %s", s.alt)
	log.Printf("p-val : %v", s.pvalue)
	return &Result{
		PValue:   Float(s.pvalue),
		ZScore:   Float(s.zscore),
		Observed: observed,
		PermMean: s.mean,
		PermSD:   s.sd,
		Alt:      s.alt.String(),
		N:        opts.NumTimes,
		Swapped:  swapped,
		NoMerge:  opts.NoMerge,
		Random:   opts.Random.String(),
		Counter:  opts.Count.String(),
		ACount:   a.Count(),
		BCount:   b.Count(),
		PerChrom: opts.PerChrom,
		Perms:    counts,
	}, nil
}
