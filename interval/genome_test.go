package interval

import (
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/pkg/errors"
)

func mustGenome(t *testing.T, names []string, lengths []PosType) *Genome {
	g, err := NewGenome(names, lengths)
	assert.NoError(t, err)
	return g
}

func TestNewGenome(t *testing.T) {
	g := mustGenome(t, []string{"chr1", "chr2", "chrM"}, []PosType{1000, 500, 16569})
	expect.EQ(t, g.NChrom(), 3)
	expect.EQ(t, g.Span(), PosType(18069))
	expect.EQ(t, g.ChromSpan(0), Iv{0, 1000})
	expect.EQ(t, g.ChromSpan(1), Iv{1000, 1500})
	expect.EQ(t, g.ChromSpan(2), Iv{1500, 18069})
	expect.EQ(t, g.Name(1), "chr2")
	expect.EQ(t, g.Length(1), PosType(500))
	expect.True(t, g.Has("chrM"))
	expect.False(t, g.Has("chrX"))
}

func TestNewGenomeInvalid(t *testing.T) {
	_, err := NewGenome([]string{"chr1", "chr2"}, []PosType{1000, 0})
	expect.EQ(t, errors.Cause(err), ErrInvalidGenome)
	_, err = NewGenome([]string{"chr1", "chr1"}, []PosType{1000, 500})
	expect.EQ(t, errors.Cause(err), ErrInvalidGenome)
	_, err = NewGenome(nil, nil)
	expect.EQ(t, errors.Cause(err), ErrInvalidGenome)
	_, err = NewGenome([]string{"chr1"}, []PosType{-5})
	expect.EQ(t, errors.Cause(err), ErrInvalidGenome)
}

func TestChromIndex(t *testing.T) {
	g := mustGenome(t, []string{"chr1", "chr2", "chr3"}, []PosType{1000, 500, 2000})
	expect.EQ(t, g.ChromIndex(0), 0)
	expect.EQ(t, g.ChromIndex(999), 0)
	expect.EQ(t, g.ChromIndex(1000), 1)
	expect.EQ(t, g.ChromIndex(1499), 1)
	expect.EQ(t, g.ChromIndex(1500), 2)
	expect.EQ(t, g.ChromIndex(3499), 2)
}

func TestGlobalLocalRoundTrip(t *testing.T) {
	g := mustGenome(t, []string{"chr1", "chr2"}, []PosType{1000, 500})
	iv, ok, err := g.Global("chr2", 100, 200)
	assert.NoError(t, err)
	expect.True(t, ok)
	expect.EQ(t, iv, Iv{1100, 1200})
	name, pos := g.Local(iv.Start)
	expect.EQ(t, name, "chr2")
	expect.EQ(t, pos, PosType(100))

	// Unknown chromosomes report ok=false without an error; the loader drops
	// them silently.
	_, ok, err = g.Global("chrUn", 0, 10)
	assert.NoError(t, err)
	expect.False(t, ok)

	// Out-of-range coordinates are a real error.
	_, ok, err = g.Global("chr2", 100, 501)
	expect.True(t, ok)
	expect.True(t, err != nil)
	_, _, err = g.Global("chr1", -1, 10)
	expect.True(t, err != nil)
	_, _, err = g.Global("chr1", 10, 10)
	expect.True(t, err != nil)
}

func TestNewGenomeFromReader(t *testing.T) {
	g, err := NewGenomeFromReader(strings.NewReader("chr1\t1000\nchr2\t500\n\n"))
	assert.NoError(t, err)
	expect.EQ(t, g.NChrom(), 2)
	expect.EQ(t, g.Span(), PosType(1500))
}

func TestNewGenomeFromReaderFai(t *testing.T) {
	// .fai lines carry extra columns; only the first two are read.
	fai := "chr1\t248956422\t112\t70\t71\nchr2\t242193529\t252513167\t70\t71\n"
	g, err := NewGenomeFromReader(strings.NewReader(fai))
	assert.NoError(t, err)
	expect.EQ(t, g.NChrom(), 2)
	expect.EQ(t, g.Length(0), PosType(248956422))
	expect.EQ(t, g.Length(1), PosType(242193529))
}

func TestNewGenomeFromReaderBadLength(t *testing.T) {
	_, err := NewGenomeFromReader(strings.NewReader("chr1\tx\n"))
	expect.True(t, err != nil)
	_, err = NewGenomeFromReader(strings.NewReader("chr1\n"))
	expect.True(t, err != nil)
}
