package cmd

import (
	"log"

	"v.io/x/lib/cmdline"
)

// Run parses the command line and dispatches to a subcommand.
func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-permute",
			Short:    "Permutation testing of genomic interval overlap",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdRun(),
				newCmdRandomize(),
			},
		})
}
