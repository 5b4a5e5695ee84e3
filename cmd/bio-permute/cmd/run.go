package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/permute/interval"
	"github.com/grailbio/permute/overlap"
	"v.io/x/lib/cmdline"
)

type runFlags struct {
	mask        string
	random      string
	count       string
	alt         string
	output      string
	numTimes    int
	parallelism int
	seed        int64
	perChrom    bool
	noMerge     bool
	noSwap      bool
}

func newCmdRun() *cmdline.Command {
	cmd := &cmdline.Command{
		Name: "run",
		Short: `Run the permutation test.

Counts the overlap between A and B, then repeats the count across N trials in
which A (or B, if it is the smaller set after the default swap) is randomly
repositioned, and reports permutation mean/sd, z-score and p-value as JSON.`,
		ArgsName: "genome a.bed b.bed",
	}
	flags := runFlags{}
	cmd.Flags.StringVar(&flags.mask, "mask", "", "BED of forbidden regions. Input intervals overlapping the mask are removed and randomized placement never enters it")
	cmd.Flags.StringVar(&flags.random, "random", overlap.DefaultOpts.Random.String(), "Randomization strategy; 'shuffle', 'circle' or 'novl'")
	cmd.Flags.StringVar(&flags.count, "count", overlap.DefaultOpts.Count.String(), "Overlap counting mode; 'all' counts every intersecting pair, 'any' counts intervals with at least one intersection")
	cmd.Flags.StringVar(&flags.alt, "alt", "auto", "Alternative hypothesis; 'auto', 'less' or 'greater'")
	cmd.Flags.IntVar(&flags.numTimes, "n", overlap.DefaultOpts.NumTimes, "Number of permutation trials")
	cmd.Flags.BoolVar(&flags.perChrom, "per-chrom", false, "Keep each randomized interval on its original chromosome")
	cmd.Flags.BoolVar(&flags.noMerge, "no-merge", false, "Do not merge touching/overlapping input intervals (incompatible with -random=novl)")
	cmd.Flags.BoolVar(&flags.noSwap, "no-swap", false, "Do not swap A and B when A is the larger set")
	cmd.Flags.Int64Var(&flags.seed, "seed", 0, "Seed for reproducible runs; 0 seeds from the wall clock")
	cmd.Flags.IntVar(&flags.parallelism, "parallelism", 0, "Maximum number of simultaneous trial workers; 0 = runtime.NumCPU()")
	cmd.Flags.StringVar(&flags.output, "output", "-", "Output JSON path; '-' writes to stdout")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 3 {
			return fmt.Errorf("run takes genome, a.bed and b.bed arguments, but got %v", argv)
		}
		return runPermute(flags, argv[0], argv[1], argv[2])
	})
	return cmd
}

func parseOpts(flags runFlags) (opts overlap.Opts, err error) {
	opts = overlap.DefaultOpts
	if opts.Random, err = overlap.ParseMode(flags.random); err != nil {
		return
	}
	if opts.Count, err = overlap.ParseCountMode(flags.count); err != nil {
		return
	}
	if opts.Alt, err = overlap.ParseAlternative(flags.alt); err != nil {
		return
	}
	opts.NumTimes = flags.numTimes
	opts.PerChrom = flags.perChrom
	opts.NoMerge = flags.noMerge
	opts.NoSwap = flags.noSwap
	opts.Seed = flags.seed
	opts.Parallelism = flags.parallelism
	return
}

// loadInputs reads the genome, the optional mask, and the two mask-filtered
// interval sets.
func loadInputs(genomePath, maskPath, aPath, bPath string) (g *interval.Genome, a, b *interval.Set, mask *interval.Union, err error) {
	if g, err = interval.NewGenomeFromPath(genomePath); err != nil {
		return
	}
	if maskPath != "" {
		if mask, err = interval.NewUnionFromPath(maskPath, g); err != nil {
			return
		}
	}
	if a, err = interval.NewSetFromPath(aPath, g, mask); err != nil {
		return
	}
	b, err = interval.NewSetFromPath(bPath, g, mask)
	return
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	ctx := vcontext.Background()
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	if _, err = out.Writer(ctx).Write(data); err != nil {
		_ = out.Close(ctx)
		return err
	}
	return out.Close(ctx)
}

func runPermute(flags runFlags, genomePath, aPath, bPath string) error {
	opts, err := parseOpts(flags)
	if err != nil {
		return err
	}
	g, a, b, mask, err := loadInputs(genomePath, flags.mask, aPath, bPath)
	if err != nil {
		return err
	}
	result, err := overlap.Run(g, a, b, mask, opts)
	if err != nil {
		return err
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return writeOutput(flags.output, data)
}
