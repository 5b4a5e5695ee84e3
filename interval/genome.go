package interval

import (
	"bufio"
	"io"
	"sort"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/sam"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// ErrInvalidGenome is the cause of every genome-construction failure:
// non-positive chromosome length or duplicate chromosome name.
var ErrInvalidGenome = errors.New("invalid genome")

// Genome maps chromosome names to lengths and assigns each chromosome a
// contiguous span in a single concatenated coordinate space: chromosome i
// occupies [offset[i], offset[i]+length[i]), with offsets assigned in input
// order.  Genomes are immutable after construction and safely shared
// read-only across goroutines.
type Genome struct {
	names   []string
	lengths []PosType
	offsets []PosType
	span    PosType
	byName  map[string]int
}

// NewGenome builds a Genome from parallel name/length slices, preserving
// input order.  It fails with an ErrInvalidGenome cause if any length is
// non-positive or a name repeats.
func NewGenome(names []string, lengths []PosType) (*Genome, error) {
	if len(names) != len(lengths) {
		return nil, errors.Wrapf(ErrInvalidGenome, "%d names but %d lengths", len(names), len(lengths))
	}
	if len(names) == 0 {
		return nil, errors.Wrap(ErrInvalidGenome, "no chromosomes")
	}
	g := &Genome{
		names:   make([]string, len(names)),
		lengths: make([]PosType, len(names)),
		offsets: make([]PosType, len(names)),
		byName:  make(map[string]int, len(names)),
	}
	copy(g.names, names)
	copy(g.lengths, lengths)
	for i, name := range g.names {
		if g.lengths[i] <= 0 {
			return nil, errors.Wrapf(ErrInvalidGenome, "chromosome %s has non-positive length %d", name, g.lengths[i])
		}
		if _, dup := g.byName[name]; dup {
			return nil, errors.Wrapf(ErrInvalidGenome, "duplicate chromosome %s", name)
		}
		g.byName[name] = i
		g.offsets[i] = g.span
		g.span += g.lengths[i]
	}
	return g, nil
}

// NewGenomeFromSAMHeader builds a Genome from the reference sequences of a
// SAM/BAM header, in header order.
func NewGenomeFromSAMHeader(header *sam.Header) (*Genome, error) {
	refs := header.Refs()
	names := make([]string, len(refs))
	lengths := make([]PosType, len(refs))
	for i, ref := range refs {
		names[i] = ref.Name()
		lengths[i] = PosType(ref.Len())
	}
	return NewGenome(names, lengths)
}

// NewGenomeFromReader parses chromosome-size lines (name<TAB>length, extra
// columns ignored).  Since only the first two columns are read, a samtools
// .fai index is accepted directly.
func NewGenomeFromReader(reader io.Reader) (*Genome, error) {
	scanner := bufio.NewScanner(reader)
	var names []string
	var lengths []PosType
	var tokens [2][]byte
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		nToken := getTokens(tokens[:], scanner.Bytes())
		if nToken == 0 {
			continue
		}
		if nToken != 2 {
			return nil, errors.Errorf("interval.NewGenomeFromReader: line %d has fewer tokens than expected", lineIdx)
		}
		length, err := strconv.ParseInt(gunsafe.BytesToString(tokens[1]), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "interval.NewGenomeFromReader: bad length on line %d", lineIdx)
		}
		names = append(names, string(tokens[0]))
		lengths = append(lengths, PosType(length))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewGenome(names, lengths)
}

// NewGenomeFromPath is a wrapper for NewGenomeFromReader that takes a path
// (possibly gzipped, possibly remote) instead of an io.Reader.
func NewGenomeFromPath(path string) (g *Genome, err error) {
	ctx := vcontext.Background()
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	if g, err = NewGenomeFromReader(reader); err != nil {
		return
	}
	log.Printf("genome loaded, %d chromosome(s), %d base(s)\n", g.NChrom(), g.Span())
	return
}

// Span returns the total concatenated length of the genome.
func (g *Genome) Span() PosType { return g.span }

// NChrom returns the number of chromosomes.
func (g *Genome) NChrom() int { return len(g.names) }

// Name returns the name of chromosome i.
func (g *Genome) Name(i int) string { return g.names[i] }

// Length returns the length of chromosome i.
func (g *Genome) Length(i int) PosType { return g.lengths[i] }

// ChromSpan returns chromosome i's interval in concatenated coordinates.
func (g *Genome) ChromSpan(i int) Iv {
	return Iv{Start: g.offsets[i], Stop: g.offsets[i] + g.lengths[i]}
}

// Spans returns every chromosome span in genome order.
func (g *Genome) Spans() []Iv {
	spans := make([]Iv, g.NChrom())
	for i := range spans {
		spans[i] = g.ChromSpan(i)
	}
	return spans
}

// ChromIndex returns the index of the chromosome containing the given
// concatenated-space position.  pos must be in [0, Span()).
func (g *Genome) ChromIndex(pos PosType) int {
	// First offset strictly greater than pos, minus one.
	return sort.Search(len(g.offsets), func(i int) bool { return g.offsets[i] > pos }) - 1
}

// Has checks whether the genome contains a chromosome with the given name.
func (g *Genome) Has(name string) bool {
	_, ok := g.byName[name]
	return ok
}

// Global converts a per-chromosome half-open interval into concatenated
// coordinates.  ok is false if the chromosome is absent from the genome; out
// of range coordinates are an error.
func (g *Genome) Global(chrName string, start, stop PosType) (iv Iv, ok bool, err error) {
	idx, ok := g.byName[chrName]
	if !ok {
		return Iv{}, false, nil
	}
	if start < 0 || stop <= start || stop > g.lengths[idx] {
		return Iv{}, true, errors.Errorf("interval [%d, %d) out of range for chromosome %s (length %d)",
			start, stop, chrName, g.lengths[idx])
	}
	return Iv{Start: g.offsets[idx] + start, Stop: g.offsets[idx] + stop}, true, nil
}

// Local converts a concatenated-space position back to (chromosome name,
// position within chromosome).
func (g *Genome) Local(pos PosType) (chrName string, chrPos PosType) {
	idx := g.ChromIndex(pos)
	return g.names[idx], pos - g.offsets[idx]
}
