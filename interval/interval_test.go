package interval

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestNewSetSorts(t *testing.T) {
	s := NewSet([]Iv{{300, 400}, {0, 10}, {50, 60}, {0, 5}})
	expect.EQ(t, s.Ivs(), []Iv{{0, 5}, {0, 10}, {50, 60}, {300, 400}})
	expect.EQ(t, s.Count(), 4)
}

func TestMerge(t *testing.T) {
	tests := []struct {
		in   []Iv
		want []Iv
	}{
		// Touching intervals merge into one.
		{[]Iv{{0, 50}, {50, 100}}, []Iv{{0, 100}}},
		// Overlapping intervals merge, disjoint ones stay apart.
		{[]Iv{{0, 60}, {50, 100}, {200, 300}}, []Iv{{0, 100}, {200, 300}}},
		// Containment.
		{[]Iv{{0, 100}, {10, 20}, {30, 40}}, []Iv{{0, 100}}},
		// Already disjoint.
		{[]Iv{{0, 10}, {20, 30}}, []Iv{{0, 10}, {20, 30}}},
		{nil, nil},
	}
	for _, test := range tests {
		got := NewSet(test.in).Merge().Ivs()
		if len(test.want) == 0 {
			expect.EQ(t, len(got), 0)
			continue
		}
		expect.EQ(t, got, test.want)
	}
}

func TestMergeIdempotent(t *testing.T) {
	s := NewSet([]Iv{{0, 60}, {50, 100}, {100, 120}, {500, 501}}).Merge()
	expect.EQ(t, s.Merge().Ivs(), s.Ivs())
}

func TestCoveredBases(t *testing.T) {
	s := NewSet([]Iv{{0, 60}, {50, 100}, {200, 210}})
	expect.EQ(t, s.CoveredBases(), PosType(110))
}

func TestIvOverlaps(t *testing.T) {
	expect.True(t, Iv{0, 10}.Overlaps(Iv{9, 20}))
	expect.False(t, Iv{0, 10}.Overlaps(Iv{10, 20}))
	expect.False(t, Iv{10, 20}.Overlaps(Iv{0, 10}))
	expect.True(t, Iv{0, 100}.Overlaps(Iv{40, 50}))
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSet([]Iv{{0, 10}, {20, 30}})
	c := s.Clone()
	c.Ivs()[0] = Iv{5, 6}
	expect.EQ(t, s.Ivs()[0], Iv{0, 10})
}
