package polyroots_test

import (
	"math/big"
	"testing"

	"github.com/njchilds90/polyroots"
)

func int64s(xs []int64) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = polyroots.R(x).String()
	}
	return out
}

// ============================================================
// Rational Zero Test
// ============================================================

func TestRationalZeroTest(t *testing.T) {
	res, err := polyroots.RationalZeroTest(polyroots.VectorOf(2, 13, 6))
	if err != nil {
		t.Fatal(err)
	}
	if got := int64s(res.PValues); !sameStrings(got, []string{"1", "2", "3", "6"}) {
		t.Errorf("want p [1 2 3 6], got %v", got)
	}
	if got := int64s(res.QValues); !sameStrings(got, []string{"1", "2"}) {
		t.Errorf("want q [1 2], got %v", got)
	}
	if got := rootStrings(res.PositiveRoots); !sameStrings(got, []string{"1/2", "1", "1", "3/2", "2", "3", "3", "6"}) {
		t.Errorf("unexpected unreduced candidates %v", got)
	}
	if got := rootStrings(res.AllReduced.Pos); !sameStrings(got, []string{"1/2", "1", "3/2", "2", "3", "6"}) {
		t.Errorf("unexpected positive candidates %v", got)
	}
	if got := rootStrings(res.AllReduced.Neg); !sameStrings(got, []string{"-1/2", "-1", "-3/2", "-2", "-3", "-6"}) {
		t.Errorf("unexpected negative candidates %v", got)
	}
}

func TestRationalZeroTest_ZeroConstant(t *testing.T) {
	res, err := polyroots.RationalZeroTest(polyroots.VectorOf(1, 0, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if got := rootStrings(res.AllReduced.Pos); !sameStrings(got, []string{"0"}) {
		t.Errorf("want [0], got %v", got)
	}
	if len(res.AllReduced.Neg) != 0 {
		t.Errorf("want no negative candidates, got %v", rootStrings(res.AllReduced.Neg))
	}
}

func TestRationalZeroTest_PrimeAndFractions(t *testing.T) {
	res, err := polyroots.RationalZeroTest(polyroots.VectorOf(1, 0, -7))
	if err != nil {
		t.Fatal(err)
	}
	if got := int64s(res.PValues); !sameStrings(got, []string{"1", "7"}) {
		t.Errorf("want p [1 7], got %v", got)
	}

	res, err = polyroots.RationalZeroTest(polyroots.Vector{polyroots.R(1), polyroots.R(0), polyroots.Frac(-1, 4)})
	if err != nil {
		t.Fatal(err)
	}
	if got := rootStrings(res.AllReduced.Pos); !sameStrings(got, []string{"1/4", "1/2", "1"}) {
		t.Errorf("want [1/4 1/2 1], got %v", got)
	}
}

func TestRationalZeroTest_Constant(t *testing.T) {
	res, err := polyroots.RationalZeroTest(polyroots.VectorOf(5))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.AllReduced.All()) != 0 {
		t.Errorf("want no candidates, got %v", rootStrings(res.AllReduced.All()))
	}
}

func TestRationalZeroTest_CoefficientRange(t *testing.T) {
	huge, _ := new(big.Rat).SetString("100000000000000000000")
	v := polyroots.Vector{polyroots.R(1), polyroots.NewRational(huge)}
	if _, err := polyroots.RationalZeroTest(v); !polyroots.IsCoefficientRange(err) {
		t.Errorf("want coefficient range error, got %v", err)
	}
}

func TestRationalZeroTest_LargeMiddleCoefficient(t *testing.T) {
	huge, _ := new(big.Rat).SetString("100000000000000000000")
	v := polyroots.Vector{polyroots.R(1), polyroots.NewRational(huge), polyroots.R(1), polyroots.R(1)}
	res, err := polyroots.RationalZeroTest(v)
	if err != nil {
		t.Fatal(err)
	}
	if got := rootStrings(res.AllReduced.All()); !sameStrings(got, []string{"1", "-1"}) {
		t.Errorf("want [1 -1], got %v", got)
	}

	rep, err := polyroots.Solve("x^3+100000000000000000000x^2+x+1")
	if err != nil {
		t.Fatal(err)
	}
	if rep.Outcome != polyroots.OutcomeIrrationalExhaustion {
		t.Errorf("want irrational_exhaustion, got %s", rep.Outcome)
	}
}

func TestCandidatesFor(t *testing.T) {
	got, err := polyroots.CandidatesFor(polyroots.VectorOf(1, 4))
	if err != nil || !sameStrings(rootStrings(got), []string{"-4"}) {
		t.Errorf("want [-4], got %v (%v)", rootStrings(got), err)
	}
	got, err = polyroots.CandidatesFor(polyroots.VectorOf(2, -1))
	if err != nil || !sameStrings(rootStrings(got), []string{"1/2"}) {
		t.Errorf("want [1/2], got %v (%v)", rootStrings(got), err)
	}
	got, _ = polyroots.CandidatesFor(polyroots.VectorOf(7))
	if len(got) != 0 {
		t.Errorf("want nothing for a constant, got %v", rootStrings(got))
	}
	got, _ = polyroots.CandidatesFor(polyroots.VectorOf(1, 0, -1))
	if !sameStrings(rootStrings(got), []string{"1", "-1"}) {
		t.Errorf("want [1 -1], got %v", rootStrings(got))
	}
}

// ============================================================
// Descartes' rule of signs
// ============================================================

func TestDescartes(t *testing.T) {
	cases := []struct {
		v        polyroots.Vector
		pos, neg []int
		max      int
	}{
		{polyroots.VectorOf(1, 5, -6), []int{1}, []int{1}, 2},
		{polyroots.VectorOf(1, -2, -5, 6), []int{2, 0}, []int{1}, 3},
		{polyroots.VectorOf(1, 0, 0, 0), []int{0}, []int{0}, 3},
		{polyroots.VectorOf(1, 0, 0, 0, 4), []int{0}, []int{0}, 0},
		{polyroots.VectorOf(1, -1, 1, -1, 1, -1), []int{5, 3, 1}, []int{0}, 5},
	}
	for _, c := range cases {
		s := polyroots.Descartes(c.v)
		if !sameInts(s.PossiblePositives, c.pos) || !sameInts(s.PossibleNegatives, c.neg) {
			t.Errorf("%s: want %v/%v, got %v/%v", c.v, c.pos, c.neg, s.PossiblePositives, s.PossibleNegatives)
		}
		if m := s.MaxRoots(); m != c.max {
			t.Errorf("%s: want max %d, got %d", c.v, c.max, m)
		}
	}
}

func TestDescartes_Negated(t *testing.T) {
	s := polyroots.Descartes(polyroots.VectorOf(1, 5, -6))
	if got := s.NegatedExpression(); got != "x^2-5x-6" {
		t.Errorf("want x^2-5x-6, got %s", got)
	}
	if s.PosSignChanges != 1 || s.NegSignChanges != 1 {
		t.Errorf("want 1 and 1 sign changes, got %d and %d", s.PosSignChanges, s.NegSignChanges)
	}
}

func TestSignChanges_SkipsZeros(t *testing.T) {
	if n := polyroots.SignChanges(polyroots.VectorOf(1, 0, 0, -1, 0, 2)); n != 2 {
		t.Errorf("want 2, got %d", n)
	}
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
