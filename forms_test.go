package polyroots_test

import (
	"testing"

	"github.com/njchilds90/polyroots"
)

func rootStrings(rs []polyroots.Rational) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.String()
	}
	return out
}

func sameStrings(a, b []string) bool {
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

func count(xs []string, want string) int {
	n := 0
	for _, x := range xs {
		if x == want {
			n++
		}
	}
	return n
}

// ============================================================
// Special-form detection
// ============================================================

func TestDetectSpecialForm(t *testing.T) {
	cases := []struct {
		v    polyroots.Vector
		kind polyroots.FormKind
		ok   bool
	}{
		{polyroots.VectorOf(1, 0, -4), polyroots.DifferenceOfSquares, true},
		{polyroots.VectorOf(-1, 0, 4), polyroots.DifferenceOfSquares, true},
		{polyroots.VectorOf(4, 0, 0, 0, -9), polyroots.DifferenceOfSquares, true},
		{polyroots.VectorOf(2, 0, -8), polyroots.DifferenceOfSquares, true},
		{polyroots.VectorOf(1, 0, 0, 8), polyroots.SumOfCubes, true},
		{polyroots.VectorOf(2, 0, 0, 16), polyroots.SumOfCubes, true},
		{polyroots.VectorOf(1, 0, 0, -8), polyroots.DifferenceOfCubes, true},
		{polyroots.VectorOf(27, 0, 0, -1), polyroots.DifferenceOfCubes, true},
		{polyroots.VectorOf(1, 0, 4), 0, false},
		{polyroots.VectorOf(1, 0, -3), 0, false},
		{polyroots.VectorOf(1, 2, 1), 0, false},
		{polyroots.VectorOf(1, 0, 0, 7), 0, false},
		{polyroots.VectorOf(1, -4), 0, false},
	}
	for _, c := range cases {
		kind, ok := polyroots.DetectSpecialForm(c.v)
		if ok != c.ok || (ok && kind != c.kind) {
			t.Errorf("%s: want %v %v, got %v %v", c.v, c.kind, c.ok, kind, ok)
		}
	}
}

// ============================================================
// Analyze
// ============================================================

func TestAnalyze_DifferenceOfSquares(t *testing.T) {
	res, err := polyroots.Analyze("x^2-4")
	if err != nil {
		t.Fatal(err)
	}
	if res.Shape != polyroots.ShapeAdditive {
		t.Errorf("want additive, got %s", res.Shape)
	}
	if len(res.DifSquares) != 1 {
		t.Fatalf("want one difference of squares, got %d", len(res.DifSquares))
	}
	if got := res.DifSquares[0].Factors; !sameStrings(got, []string{"x-2", "x+2"}) {
		t.Errorf("want [x-2 x+2], got %v", got)
	}
	if got := rootStrings(res.FinalRoots); !sameStrings(got, []string{"2", "-2"}) {
		t.Errorf("want roots [2 -2], got %v", got)
	}
	if res.HasFactors() {
		t.Errorf("special form factors should not be listed as factors, got %v", res.Factors)
	}
	if !res.FullyFactored() {
		t.Errorf("want nothing reduced, got %s", res.Reduced)
	}
}

func TestAnalyze_NegatedDifferenceOfSquares(t *testing.T) {
	res, err := polyroots.Analyze("-x^2+4")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.DifSquares) != 1 {
		t.Fatalf("want one difference of squares, got %d", len(res.DifSquares))
	}
	if !res.Constant.Equal(polyroots.R(-1)) {
		t.Errorf("want constant -1, got %s", res.Constant)
	}
	if got := rootStrings(res.FinalRoots); !sameStrings(got, []string{"2", "-2"}) {
		t.Errorf("want roots [2 -2], got %v", got)
	}
}

func TestAnalyze_DifferenceOfCubes(t *testing.T) {
	res, err := polyroots.Analyze("x^3-8")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.DifCubes) != 1 {
		t.Fatalf("want one difference of cubes, got %d", len(res.DifCubes))
	}
	if got := rootStrings(res.FinalRoots); !sameStrings(got, []string{"2"}) {
		t.Errorf("want roots [2], got %v", got)
	}
	if !sameStrings(res.IrrationalOrComplex, []string{"x^2+2x+4"}) {
		t.Errorf("want [x^2+2x+4], got %v", res.IrrationalOrComplex)
	}
	if res.ComplexRootCount != 2 {
		t.Errorf("want 2 complex roots, got %d", res.ComplexRootCount)
	}
	if len(res.QuadraticRoots) != 2 || res.QuadraticRoots[0].String() != "-1+sqrt(3)*i" {
		t.Errorf("want -1+sqrt(3)*i first, got %v", res.QuadraticRoots)
	}
	if res.Reduced != "" {
		t.Errorf("want empty reduced, got %s", res.Reduced)
	}
}

func TestAnalyze_SumOfCubes(t *testing.T) {
	res, err := polyroots.Analyze("2x^3+16")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.SumCubes) != 1 {
		t.Fatalf("want one sum of cubes, got %d", len(res.SumCubes))
	}
	if got := res.SumCubes[0].Factored; got != "2(x+2)(x^2-2x+4)" {
		t.Errorf("want 2(x+2)(x^2-2x+4), got %s", got)
	}
	if !res.Constant.Equal(polyroots.R(2)) {
		t.Errorf("want constant 2, got %s", res.Constant)
	}
	if got := rootStrings(res.FinalRoots); !sameStrings(got, []string{"-2"}) {
		t.Errorf("want roots [-2], got %v", got)
	}
}

func TestAnalyze_NestedMultiplicity(t *testing.T) {
	res, err := polyroots.Analyze("(((x+2)^2(x+4))^2)^2")
	if err != nil {
		t.Fatal(err)
	}
	if res.Shape != polyroots.ShapeMultiplicative {
		t.Errorf("want multiplicative, got %s", res.Shape)
	}
	if n := count(res.Factors, "x+2"); n != 8 {
		t.Errorf("want x+2 eight times, got %d", n)
	}
	if n := count(res.Factors, "x+4"); n != 4 {
		t.Errorf("want x+4 four times, got %d", n)
	}
	if len(res.FinalRoots) != 12 {
		t.Errorf("want 12 roots, got %d", len(res.FinalRoots))
	}
	for _, term := range res.Terms {
		if term.Global {
			t.Errorf("%s sits under a power and should not be global", term.Expression)
		}
	}
}

func TestAnalyze_MonomialFactor(t *testing.T) {
	res, err := polyroots.Analyze("x^2(x-1)^2")
	if err != nil {
		t.Fatal(err)
	}
	if n := count(res.Factors, "x"); n != 2 {
		t.Errorf("want x twice, got %v", res.Factors)
	}
	if n := count(res.Factors, "x-1"); n != 2 {
		t.Errorf("want x-1 twice, got %v", res.Factors)
	}
	if got := rootStrings(res.FinalRoots); !sameStrings(got, []string{"0", "0", "1", "1"}) {
		t.Errorf("want roots [0 0 1 1], got %v", got)
	}
}

func TestAnalyze_Residual(t *testing.T) {
	res, err := polyroots.Analyze("(x^3+2x^2-x-2)(x+3)")
	if err != nil {
		t.Fatal(err)
	}
	if !sameStrings(res.Factors, []string{"x+3"}) {
		t.Errorf("want [x+3], got %v", res.Factors)
	}
	if res.Reduced != "x^3+2x^2-x-2" {
		t.Errorf("want reduced x^3+2x^2-x-2, got %s", res.Reduced)
	}
	if !res.ReducedVector.Equal(polyroots.VectorOf(1, 2, -1, -2)) {
		t.Errorf("want [1 2 -1 -2], got %v", res.ReducedVector.Strings())
	}
	if len(res.Terms) != 2 || res.Terms[0].Reduced || !res.Terms[1].Reduced {
		t.Errorf("want the cubic unresolved and x+3 resolved, got %+v", res.Terms)
	}
}

func TestAnalyze_IrreducibleQuadratic(t *testing.T) {
	res, err := polyroots.Analyze("3(x^2+1)")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Constant.Equal(polyroots.R(3)) {
		t.Errorf("want constant 3, got %s", res.Constant)
	}
	if !sameStrings(res.IrrationalOrComplex, []string{"x^2+1"}) || res.ComplexRootCount != 2 {
		t.Errorf("want x^2+1 with 2 complex roots, got %v %d", res.IrrationalOrComplex, res.ComplexRootCount)
	}
	if res.Reduced != "" {
		t.Errorf("want empty reduced, got %s", res.Reduced)
	}
}

func TestAnalyze_RationalQuadraticIsResidual(t *testing.T) {
	res, err := polyroots.Analyze("x^2+5x+6")
	if err != nil {
		t.Fatal(err)
	}
	if res.Reduced != "x^2+5x+6" {
		t.Errorf("want reduced x^2+5x+6, got %s", res.Reduced)
	}
	if res.HasFactors() || res.HasForms() {
		t.Errorf("want no factors or forms, got %v %v", res.Factors, res.SpecialForms())
	}
}

func TestAnalyze_DifferenceOfFourthPowers(t *testing.T) {
	res, err := polyroots.Analyze("x^4-16")
	if err != nil {
		t.Fatal(err)
	}
	if got := rootStrings(res.FinalRoots); !sameStrings(got, []string{"2", "-2"}) {
		t.Errorf("want roots [2 -2], got %v", got)
	}
	if !sameStrings(res.IrrationalOrComplex, []string{"x^2+4"}) {
		t.Errorf("want [x^2+4], got %v", res.IrrationalOrComplex)
	}
}

func TestAnalyze_FactorFailureFallsBack(t *testing.T) {
	// the square root of the constant is past the divisor enumeration limit
	res, err := polyroots.Analyze("x^2-4000000000000000000000000000000")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 1 {
		t.Errorf("want one diagnostic, got %v", res.Diagnostics)
	}
	if res.HasForms() {
		t.Errorf("want no recorded forms, got %v", res.SpecialForms())
	}
	if res.Reduced != "x^2-4000000000000000000000000000000" {
		t.Errorf("want the leaf left reduced, got %s", res.Reduced)
	}
}

func TestAnalyze_Errors(t *testing.T) {
	for _, in := range []string{"x*y", "x+", "(x+1", "x/(x+1)", "0", "x-x"} {
		if _, err := polyroots.Analyze(in); !polyroots.IsParseFailure(err) {
			t.Errorf("%q: want parse failure, got %v", in, err)
		}
	}
	if _, err := polyroots.Analyze("((x+1)^256)^256"); !polyroots.IsDegreeLimit(err) {
		t.Errorf("want degree limit for a nested power, got %v", err)
	}
}

func TestCheckDegree(t *testing.T) {
	cases := []struct {
		in   string
		opts []polyroots.Option
		ok   bool
	}{
		{"x^9+1", nil, true},
		{"x^10", nil, false},
		{"(((x+2)^2(x+4))^2)^2", nil, false},
		{"(((x+2)^2(x+4))^2)^2", []polyroots.Option{polyroots.WithMaxDegree(13)}, true},
		{"x^12-x^12+x", nil, true},
		{"x^3-8", []polyroots.Option{polyroots.WithMaxDegree(3)}, false},
		{"((x+1)^256)^256", nil, false},
		{"((x+1)^256)^256", []polyroots.Option{polyroots.WithMaxDegree(100000)}, false},
	}
	for _, c := range cases {
		err := polyroots.CheckDegree(c.in, c.opts...)
		if c.ok && err != nil {
			t.Errorf("%q: want accepted, got %v", c.in, err)
		}
		if !c.ok && !polyroots.IsDegreeLimit(err) {
			t.Errorf("%q: want degree limit, got %v", c.in, err)
		}
	}
	if err := polyroots.CheckDegree("x*y"); !polyroots.IsParseFailure(err) {
		t.Errorf("want parse failure, got %v", err)
	}
}
