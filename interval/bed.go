package interval

import (
	"bufio"
	"io"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		// These simple loops beat the standard library string-split functions
		// when only the first few columns matter.
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// NewSetFromReader parses BED-style lines (chrom, 0-based start, end; extra
// columns ignored) into a Set in concatenated-genome coordinates.  Input
// need not be sorted.  Intervals on chromosomes absent from the genome are
// silently dropped (their count is logged); this is documented behavior, not
// an error.  Intervals overlapping the mask are removed entirely; pass a nil
// mask to skip that filtering.
func NewSetFromReader(reader io.Reader, g *Genome, mask *Union) (*Set, error) {
	scanner := bufio.NewScanner(reader)
	var tokens [3][]byte
	var ivs []Iv
	lineIdx := 0
	nDropped := 0
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		nToken := getTokens(tokens[:], curLine)
		if nToken != 3 {
			if nToken == 0 {
				continue
			}
			return nil, errors.Errorf("interval.NewSetFromReader: line %d has fewer tokens than expected", lineIdx)
		}
		// A separate gunsafe.BytesToString instance per strconv call; the
		// tokens alias scanner.Bytes() and do not survive the next Scan.
		parsedStart, err := strconv.ParseInt(gunsafe.BytesToString(tokens[1]), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "interval.NewSetFromReader: bad start on line %d", lineIdx)
		}
		parsedEnd, err := strconv.ParseInt(gunsafe.BytesToString(tokens[2]), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "interval.NewSetFromReader: bad end on line %d", lineIdx)
		}
		iv, ok, err := g.Global(gunsafe.BytesToString(tokens[0]), PosType(parsedStart), PosType(parsedEnd))
		if err != nil {
			return nil, errors.Wrapf(err, "interval.NewSetFromReader: line %d", lineIdx)
		}
		if !ok {
			nDropped++
			continue
		}
		ivs = append(ivs, iv)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if nDropped > 0 {
		log.Printf("dropped %d interval(s) on chromosomes absent from the genome\n", nDropped)
	}
	s := NewSet(ivs)
	if !mask.Empty() {
		nBefore := s.Count()
		s = Filter(s, mask)
		if removed := nBefore - s.Count(); removed > 0 {
			log.Printf("removed %d mask-overlapping interval(s)\n", removed)
		}
	}
	log.Printf("BED loaded, %d interval(s), %d base(s) covered.\n", s.Count(), s.CoveredBases())
	return s, nil
}

// NewSetFromPath is a wrapper for NewSetFromReader that takes a path
// (possibly gzipped, possibly remote) instead of an io.Reader.
func NewSetFromPath(path string, g *Genome, mask *Union) (s *Set, err error) {
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
	return NewSetFromReader(reader, g, mask)
}

// NewUnionFromPath loads a BED as a merged Union (the mask representation).
// Intervals on chromosomes absent from the genome are dropped, as in
// NewSetFromPath.
func NewUnionFromPath(path string, g *Genome) (*Union, error) {
	s, err := NewSetFromPath(path, g, nil)
	if err != nil {
		return nil, err
	}
	return NewUnion(s), nil
}
