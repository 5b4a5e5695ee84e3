package overlap

import (
	"encoding/json"
	"math"
)

// Float is a float64 that marshals NaN and infinities as JSON null;
// encoding/json otherwise refuses to encode them.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// Result is the immutable snapshot of one permutation-test run.  Field names
// follow the tool's documented JSON schema.  ACount/BCount are the interval
// counts after any swap, so ACount is always the randomized set's size.
type Result struct {
	PValue   Float   `json:"pval"`
	ZScore   Float   `json:"zscore"`
	Observed int64   `json:"obs"`
	PermMean float64 `json:"perm_mu"`
	PermSD   float64 `json:"perm_sd"`
	Alt      string  `json:"alt"`
	N        int     `json:"n"`
	Swapped  bool    `json:"swapped"`
	NoMerge  bool    `json:"no_merge"`
	Random   string  `json:"random"`
	Counter  string  `json:"counter"`
	ACount   int     `json:"A_cnt"`
	BCount   int     `json:"B_cnt"`
	PerChrom bool    `json:"per_chrom"`
	Perms    []int64 `json:"perms"`
}
