// bio-permute tests whether the overlap between two BED interval sets is
// larger or smaller than expected by chance, by re-counting the overlap
// across many randomized placements of one of the sets.
package main

import (
	"github.com/grailbio/permute/cmd/bio-permute/cmd"
)

func main() {
	cmd.Run()
}
