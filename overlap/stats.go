package overlap

import (
	"math"

	"github.com/pkg/errors"
)

// Alternative is the alternative-hypothesis direction of the test.
type Alternative int

const (
	// AltAuto picks AltLess when the observed count falls below the
	// permutation mean and AltGreater otherwise.
	AltAuto Alternative = iota
	// AltLess tests for depletion: observed smaller than expected.
	AltLess
	// AltGreater tests for enrichment: observed larger than expected.
	AltGreater
)

// String returns the label used in flags and in the result JSON ("l"/"g").
func (a Alternative) String() string {
	switch a {
	case AltAuto:
		return "auto"
	case AltLess:
		return "l"
	case AltGreater:
		return "g"
	}
	return "unknown"
}

// ParseAlternative converts an -alt flag value to an Alternative.
func ParseAlternative(s string) (Alternative, error) {
	switch s {
	case "auto":
		return AltAuto, nil
	case "l", "less":
		return AltLess, nil
	case "g", "greater":
		return AltGreater, nil
	}
	return 0, errors.Errorf("unknown alternative %q (want \"auto\", \"less\" or \"greater\")", s)
}

// summary holds the reduction of the permutation counts.
type summary struct {
	mean   float64
	sd     float64
	zscore float64
	pvalue float64
	alt    Alternative
}

// meanSD returns the population mean and standard deviation (denominator n,
// not n-1) of the counts.  The population definition is used consistently
// for mean, sd and z-score.
func meanSD(counts []int64) (mean, sd float64) {
	n := float64(len(counts))
	var sum int64
	for _, c := range counts {
		sum += c
	}
	mean = float64(sum) / n
	var ss float64
	for _, c := range counts {
		d := float64(c) - mean
		ss += d * d
	}
	sd = math.Sqrt(ss / n)
	return mean, sd
}

// summarize reduces the observed count and permutation counts into the final
// statistics.  The reduction does not depend on the order of counts.
//
// The p-value counts the permutations at least as extreme as the observed
// value in the alt direction, plus the observed trial itself: (k+1)/(n+1),
// so it can never reach zero and always lies in [1/(n+1), 1].  The z-score
// is NaN when sd == 0 (all permutations identical); NaN serializes as null.
func summarize(observed int64, counts []int64, alt Alternative) summary {
	mean, sd := meanSD(counts)
	if alt == AltAuto {
		if float64(observed) < mean {
			alt = AltLess
		} else {
			alt = AltGreater
		}
	}
	k := 0
	for _, c := range counts {
		if (alt == AltLess && c <= observed) || (alt == AltGreater && c >= observed) {
			k++
		}
	}
	s := summary{
		mean:   mean,
		sd:     sd,
		pvalue: float64(k+1) / float64(len(counts)+1),
		alt:    alt,
		zscore: math.NaN(),
	}
	if sd > 0 {
		s.zscore = (float64(observed) - mean) / sd
	}
	return s
}
