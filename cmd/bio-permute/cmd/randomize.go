package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/permute/interval"
	"github.com/grailbio/permute/overlap"
	"v.io/x/lib/cmdline"
)

type randomizeFlags struct {
	mask     string
	random   string
	output   string
	seed     int64
	perChrom bool
	noMerge  bool
}

func newCmdRandomize() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "randomize",
		Short: `Emit one randomized draw of a BED as BED.

Applies the selected randomization strategy once and prints the repositioned
intervals, mainly for eyeballing strategy behavior and for piping into other
tools.  Intervals crossing a chromosome boundary in whole-genome modes are
split per chromosome on output.`,
		ArgsName: "genome a.bed",
	}
	flags := randomizeFlags{}
	cmd.Flags.StringVar(&flags.mask, "mask", "", "BED of forbidden regions")
	cmd.Flags.StringVar(&flags.random, "random", overlap.DefaultOpts.Random.String(), "Randomization strategy; 'shuffle', 'circle' or 'novl'")
	cmd.Flags.BoolVar(&flags.perChrom, "per-chrom", false, "Keep each randomized interval on its original chromosome")
	cmd.Flags.BoolVar(&flags.noMerge, "no-merge", false, "Do not merge touching/overlapping input intervals (incompatible with -random=novl)")
	cmd.Flags.Int64Var(&flags.seed, "seed", 0, "Seed for reproducible draws; 0 seeds from the wall clock")
	cmd.Flags.StringVar(&flags.output, "output", "-", "Output BED path; '-' writes to stdout")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("randomize takes genome and a.bed arguments, but got %v", argv)
		}
		return runRandomize(flags, argv[0], argv[1])
	})
	return cmd
}

// writeBED renders a set in per-chromosome BED coordinates, splitting
// intervals that straddle chromosome boundaries.
func writeBED(w io.Writer, g *interval.Genome, s *interval.Set) error {
	bw := bufio.NewWriter(w)
	for _, iv := range s.Ivs() {
		for iv.Len() > 0 {
			chrom := g.ChromSpan(g.ChromIndex(iv.Start))
			stop := iv.Stop
			if stop > chrom.Stop {
				stop = chrom.Stop
			}
			name, chrPos := g.Local(iv.Start)
			if _, err := fmt.Fprintf(bw, "%s\t%d\t%d\n", name, chrPos, chrPos+(stop-iv.Start)); err != nil {
				return err
			}
			iv.Start = stop
		}
	}
	return bw.Flush()
}

func runRandomize(flags randomizeFlags, genomePath, aPath string) error {
	mode, err := overlap.ParseMode(flags.random)
	if err != nil {
		return err
	}
	if mode == overlap.ModeNOvl && flags.noMerge {
		return fmt.Errorf("novl randomization requires merged input; drop -no-merge")
	}
	g, err := interval.NewGenomeFromPath(genomePath)
	if err != nil {
		return err
	}
	var mask *interval.Union
	if flags.mask != "" {
		if mask, err = interval.NewUnionFromPath(flags.mask, g); err != nil {
			return err
		}
	}
	a, err := interval.NewSetFromPath(aPath, g, mask)
	if err != nil {
		return err
	}
	if !flags.noMerge {
		a = a.Merge()
	}
	randomizer, err := overlap.NewRandomizer(mode, g, mask, flags.perChrom)
	if err != nil {
		return err
	}
	seed := flags.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	randomized, err := randomizer.Randomize(a, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	if flags.output == "" || flags.output == "-" {
		return writeBED(os.Stdout, g, randomized)
	}
	ctx := vcontext.Background()
	out, err := file.Create(ctx, flags.output)
	if err != nil {
		return err
	}
	if err = writeBED(out.Writer(ctx), g, randomized); err != nil {
		_ = out.Close(ctx)
		return err
	}
	return out.Close(ctx)
}
