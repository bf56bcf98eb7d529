package cas_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/njchilds90/polyroots/cas"
)

func TestQuadraticRoots(t *testing.T) {
	cases := []struct {
		poly       string
		want1      string
		want2      string
		imaginary  bool
		rationalOK bool
	}{
		{"x^2+2x+4", "-1+sqrt(3)*i", "-1-sqrt(3)*i", true, false},
		{"x^2-2", "sqrt(2)", "-sqrt(2)", false, false},
		{"2x^2+13x+6", "-1/2", "-6", false, true},
		{"x^2+4", "2*i", "-2*i", true, false},
		{"x^2+x+1", "(-1/2)+(1/2)*sqrt(3)*i", "(-1/2)-(1/2)*sqrt(3)*i", true, false},
		{"x^2-1/2", "(1/2)*sqrt(2)", "-(1/2)*sqrt(2)", false, false},
		{"x^2-2x+1", "1", "1", false, true},
	}
	for _, c := range cases {
		p, err := cas.ParsePoly(c.poly)
		if err != nil {
			t.Fatal(err)
		}
		roots, err := cas.QuadraticRootsOf(p)
		if err != nil {
			t.Errorf("%s: unexpected error %v", c.poly, err)
			continue
		}
		if roots[0].String() != c.want1 || roots[1].String() != c.want2 {
			t.Errorf("%s: want %s, %s; got %s, %s", c.poly, c.want1, c.want2, roots[0], roots[1])
		}
		if roots[0].Imaginary != c.imaginary {
			t.Errorf("%s: want imaginary=%v", c.poly, c.imaginary)
		}
		if roots[0].IsRational() != c.rationalOK {
			t.Errorf("%s: want rational=%v", c.poly, c.rationalOK)
		}
	}
}

func TestQuadraticRoots_NotQuadratic(t *testing.T) {
	if _, err := cas.QuadraticRootsOf(cas.IntPoly("x", 1, 1)); err == nil {
		t.Error("want error for a linear polynomial")
	}
	if _, err := cas.QuadraticRoots(new(big.Rat), big.NewRat(1, 1), big.NewRat(1, 1)); err == nil {
		t.Error("want error for a zero leading coefficient")
	}
}

func TestSurd_Complex128(t *testing.T) {
	roots, err := cas.QuadraticRoots(big.NewRat(1, 1), big.NewRat(0, 1), big.NewRat(-2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if v := roots[0].Complex128(); math.Abs(real(v)-math.Sqrt2) > 1e-12 || imag(v) != 0 {
		t.Errorf("want sqrt(2), got %v", v)
	}
	roots, err = cas.QuadraticRoots(big.NewRat(1, 1), big.NewRat(2, 1), big.NewRat(4, 1))
	if err != nil {
		t.Fatal(err)
	}
	if v := roots[1].Complex128(); real(v) != -1 || math.Abs(imag(v)+math.Sqrt(3)) > 1e-12 {
		t.Errorf("want -1-1.732i, got %v", v)
	}
}

func TestSurd_LaTeX(t *testing.T) {
	roots, err := cas.QuadraticRoots(big.NewRat(1, 1), big.NewRat(2, 1), big.NewRat(4, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got := roots[0].LaTeX(); got != `-1 + \sqrt{3}i` {
		t.Errorf("want -1 + \\sqrt{3}i, got %s", got)
	}
	if got := roots[1].LaTeX(); got != `-1 - \sqrt{3}i` {
		t.Errorf("want -1 - \\sqrt{3}i, got %s", got)
	}
}
