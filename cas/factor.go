package cas

import (
	"math/big"
	"sort"
	"strings"

	"gopkg.in/errgo.v1"
)

// ============================================================
// Factoring over Q
// ============================================================

// Factor is one irreducible-so-far factor and how often it occurs.
type Factor struct {
	Poly         Poly
	Multiplicity int
}

// Factorization is Content * prod(Factors[i].Poly ^ Factors[i].Multiplicity).
// Every factor has coprime integer coefficients and a positive leading
// coefficient; the sign lives in Content.
type Factorization struct {
	Content *big.Rat
	Factors []Factor
}

// FactorPoly factors p over the rationals. It pulls out the content, powers
// of the variable, binomials that are differences of squares or sums and
// differences of cubes, and every rational root. What is left is reported
// as is; no claim is made that it is irreducible beyond degree 3.
func FactorPoly(p Poly) (Factorization, error) {
	p = NewPoly(p.Var, p.Coeffs...)
	if p.IsZero() {
		return Factorization{}, errgo.New("cannot factor the zero polynomial")
	}
	if p.Degree() == 0 {
		return Factorization{Content: p.Lead()}, nil
	}
	prim, err := Primitive(p)
	if err != nil {
		return Factorization{}, errgo.Mask(err, errgo.Any)
	}

	var pieces []Poly
	// x^k
	shift := 0
	for prim.Coeffs[shift].Sign() == 0 {
		shift++
	}
	for i := 0; i < shift; i++ {
		pieces = append(pieces, Monomial(p.Var, big.NewRat(1, 1), 1))
	}
	if shift > 0 {
		prim = NewPoly(p.Var, prim.Coeffs[shift:]...)
	}

	work := []Poly{prim}
	for len(work) > 0 {
		q := work[len(work)-1]
		work = work[:len(work)-1]
		if q.Degree() == 0 {
			continue
		}
		if split, ok := splitBinomial(q); ok {
			work = append(work, split...)
			continue
		}
		lin, rest, err := extractRationalRoots(q)
		if err != nil {
			return Factorization{}, errgo.Mask(err, errgo.Any)
		}
		pieces = append(pieces, lin...)
		if rest.Degree() > 0 {
			pieces = append(pieces, rest)
		}
	}

	f := Factorization{Factors: mergeFactors(pieces)}
	leads := big.NewRat(1, 1)
	for _, fc := range f.Factors {
		leads.Mul(leads, ratPow(fc.Poly.Lead(), fc.Multiplicity))
	}
	f.Content = new(big.Rat).Quo(p.Lead(), leads)
	return f, nil
}

// FactorString parses s and returns its factored form, e.g. "2(x+2)(x^2-2x+4)".
func FactorString(s string) (string, error) {
	p, err := ParsePoly(s)
	if err != nil {
		return "", errgo.Mask(err, errgo.Any)
	}
	f, err := FactorPoly(p)
	if err != nil {
		return "", errgo.Mask(err, errgo.Any)
	}
	return f.String(), nil
}

// Primitive scales p to coprime integer coefficients with a positive
// leading coefficient.
func Primitive(p Poly) (Poly, error) {
	if p.IsZero() {
		return Poly{}, errgo.New("zero polynomial has no primitive part")
	}
	l := big.NewInt(1)
	for _, c := range p.Coeffs {
		l = LCM(l, c.Denom())
	}
	g := new(big.Int)
	ints := make([]*big.Int, len(p.Coeffs))
	for i, c := range p.Coeffs {
		n := new(big.Int).Mul(c.Num(), l)
		n.Quo(n, c.Denom())
		ints[i] = n
		g = GCD(g, n)
	}
	if p.Lead().Sign() < 0 {
		g.Neg(g)
	}
	out := make([]*big.Rat, len(ints))
	for i, n := range ints {
		out[i] = new(big.Rat).SetFrac(n, g)
	}
	return NewPoly(p.Var, out...), nil
}

// splitBinomial factors a*x^n + b when it is a difference of squares or a
// sum or difference of cubes. q must be primitive.
func splitBinomial(q Poly) ([]Poly, bool) {
	n := q.Degree()
	if n < 2 {
		return nil, false
	}
	for k := 1; k < n; k++ {
		if q.Coeffs[k].Sign() != 0 {
			return nil, false
		}
	}
	a, b := q.Coeffs[n].Num(), q.Coeffs[0].Num()
	if b.Sign() == 0 {
		return nil, false
	}
	v := q.Var
	if n%2 == 0 && b.Sign() < 0 {
		s, okA := SquareRoot(a)
		t, okB := SquareRoot(new(big.Int).Neg(b))
		if okA && okB {
			// (s x^m - t)(s x^m + t)
			m := n / 2
			sx := Monomial(v, new(big.Rat).SetInt(s), m)
			tc := Const(v, new(big.Rat).SetInt(t))
			return []Poly{sx.Sub(tc), sx.Add(tc)}, true
		}
	}
	if n%3 == 0 {
		s, okA := CubeRoot(a)
		t, okB := CubeRoot(b)
		if okA && okB {
			// (s x^m + t)(s^2 x^2m - s t x^m + t^2)
			m := n / 3
			sr, tr := new(big.Rat).SetInt(s), new(big.Rat).SetInt(t)
			lin := Monomial(v, sr, m).Add(Const(v, tr))
			quad := Monomial(v, new(big.Rat).Mul(sr, sr), 2*m).
				Sub(Monomial(v, new(big.Rat).Mul(sr, tr), m)).
				Add(Const(v, new(big.Rat).Mul(tr, tr)))
			return []Poly{lin, quad}, true
		}
	}
	return nil, false
}

// extractRationalRoots divides out (q x - p) for every rational root p/q of
// the primitive polynomial f, repeated roots included.
func extractRationalRoots(f Poly) ([]Poly, Poly, error) {
	var lin []Poly
	for f.Degree() > 0 {
		c0, cn := f.Coeffs[0].Num(), f.Lead().Num()
		if c0.Sign() == 0 {
			lin = append(lin, Monomial(f.Var, big.NewRat(1, 1), 1))
			f = NewPoly(f.Var, f.Coeffs[1:]...)
			continue
		}
		if !c0.IsInt64() || !cn.IsInt64() {
			return nil, Poly{}, errgo.WithCausef(nil, ErrTooLarge, "coefficients of %s exceed int64", f)
		}
		ps, err := Divisors(c0.Int64())
		if err != nil {
			return nil, Poly{}, errgo.Mask(err, errgo.Any)
		}
		qs, err := Divisors(cn.Int64())
		if err != nil {
			return nil, Poly{}, errgo.Mask(err, errgo.Any)
		}
		found := false
	search:
		for _, q := range qs {
			for _, p := range ps {
				for _, sign := range []int64{1, -1} {
					r := big.NewRat(sign*p, q)
					if f.Eval(r).Sign() != 0 {
						continue
					}
					// q x - p, reduced
					d, _ := Primitive(NewPoly(f.Var, new(big.Rat).Neg(r), big.NewRat(1, 1)))
					quo, _, err := f.DivRem(d)
					if err != nil {
						return nil, Poly{}, errgo.Mask(err, errgo.Any)
					}
					lin = append(lin, d)
					f, _ = Primitive(quo)
					found = true
					break search
				}
			}
		}
		if !found {
			break
		}
	}
	return lin, f, nil
}

func mergeFactors(pieces []Poly) []Factor {
	var out []Factor
	for _, p := range pieces {
		merged := false
		for i := range out {
			if out[i].Poly.Equal(p) {
				out[i].Multiplicity++
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, Factor{Poly: p, Multiplicity: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return lessPoly(out[i].Poly, out[j].Poly) })
	return out
}

// lessPoly orders by degree, then coefficient by coefficient from the
// constant term up, so x-2 sorts before x+2.
func lessPoly(a, b Poly) bool {
	if a.Degree() != b.Degree() {
		return a.Degree() < b.Degree()
	}
	for k := 0; k <= a.Degree(); k++ {
		if c := a.Coeff(k).Cmp(b.Coeff(k)); c != 0 {
			return c < 0
		}
	}
	return false
}

// Flat lists every factor once per multiplicity, in order.
func (f Factorization) Flat() []Poly {
	var out []Poly
	for _, fc := range f.Factors {
		for i := 0; i < fc.Multiplicity; i++ {
			out = append(out, fc.Poly)
		}
	}
	return out
}

// String renders e.g. "2(x-2)(x^2+2x+4)", "-(x-2)(x+2)", "x^2(x+1)".
func (f Factorization) String() string {
	content := f.Content
	if content == nil {
		content = new(big.Rat)
	}
	var b strings.Builder
	switch {
	case len(f.Factors) == 0:
		return ratText(content)
	case content.Cmp(big.NewRat(-1, 1)) == 0:
		b.WriteByte('-')
	case content.Cmp(big.NewRat(1, 1)) != 0:
		b.WriteString(paren(content))
	}
	bare := len(f.Factors) == 1 && b.Len() == 0
	for _, fc := range f.Factors {
		txt := fc.Poly.String()
		isVar := fc.Poly.Degree() == 1 && fc.Poly.Coeffs[0].Sign() == 0 && fc.Poly.Lead().Cmp(big.NewRat(1, 1)) == 0
		if !isVar && !(bare && fc.Multiplicity == 1) {
			txt = "(" + txt + ")"
		}
		b.WriteString(txt)
		if fc.Multiplicity > 1 {
			b.WriteString("^" + big.NewInt(int64(fc.Multiplicity)).String())
		}
	}
	return b.String()
}
