package interval

import (
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestNewSetFromReader(t *testing.T) {
	g := mustGenome(t, []string{"chr1", "chr2"}, []PosType{1000, 500})
	bed := `chr1	100	200	featA	960
chr2	0	50
chr1	50	60

chrUn	10	20
`
	s, err := NewSetFromReader(strings.NewReader(bed), g, nil)
	assert.NoError(t, err)
	// chrUn is dropped silently; the rest is sorted into concatenated
	// coordinates (chr2 starts at 1000).
	expect.EQ(t, s.Ivs(), []Iv{{50, 60}, {100, 200}, {1000, 1050}})
}

func TestNewSetFromReaderMaskFilter(t *testing.T) {
	g := mustGenome(t, []string{"chr1"}, []PosType{1000})
	mask := NewUnion(NewSet([]Iv{{100, 200}}))
	bed := "chr1\t120\t130\nchr1\t300\t400\n"
	s, err := NewSetFromReader(strings.NewReader(bed), g, mask)
	assert.NoError(t, err)
	expect.EQ(t, s.Ivs(), []Iv{{300, 400}})
}

func TestNewSetFromReaderErrors(t *testing.T) {
	g := mustGenome(t, []string{"chr1"}, []PosType{1000})
	for _, bed := range []string{
		"chr1\t100\n",        // too few columns
		"chr1\tx\t200\n",     // bad start
		"chr1\t100\ty\n",     // bad end
		"chr1\t200\t100\n",   // start >= stop
		"chr1\t100\t100\n",   // empty interval
		"chr1\t900\t1001\n",  // past chromosome end
		"chr1\t-10\t100\n",   // negative start
	} {
		_, err := NewSetFromReader(strings.NewReader(bed), g, nil)
		expect.True(t, err != nil)
	}
}
