package cas

import (
	"fmt"
	"math/big"
	"strings"

	"gopkg.in/errgo.v1"
)

// DefaultVar is the variable name used for constant polynomials.
const DefaultVar = "x"

// ============================================================
// Dense univariate polynomials over Q
// ============================================================

// Poly is a univariate polynomial with exact rational coefficients.
// Coeffs are in ascending order: Coeffs[i] multiplies Var^i. Values are
// treated as immutable; every operation returns a fresh Poly.
type Poly struct {
	Var    string
	Coeffs []*big.Rat
}

// NewPoly builds a polynomial from ascending coefficients, copying them and
// trimming high zero terms.
func NewPoly(v string, coeffs ...*big.Rat) Poly {
	if v == "" {
		v = DefaultVar
	}
	cs := make([]*big.Rat, len(coeffs))
	for i, c := range coeffs {
		if c == nil {
			cs[i] = new(big.Rat)
		} else {
			cs[i] = new(big.Rat).Set(c)
		}
	}
	return Poly{Var: v, Coeffs: cs}.trim()
}

// IntPoly builds a polynomial from ascending int64 coefficients.
//
// For example, IntPoly("x", -4, 0, 1) is x^2-4.
func IntPoly(v string, coeffs ...int64) Poly {
	cs := make([]*big.Rat, len(coeffs))
	for i, c := range coeffs {
		cs[i] = new(big.Rat).SetInt64(c)
	}
	return NewPoly(v, cs...)
}

// Const returns the constant polynomial c.
func Const(v string, c *big.Rat) Poly { return NewPoly(v, c) }

// Monomial returns c*v^n.
func Monomial(v string, c *big.Rat, n int) Poly {
	cs := make([]*big.Rat, n+1)
	cs[n] = c
	return NewPoly(v, cs...)
}

func (p Poly) trim() Poly {
	n := len(p.Coeffs)
	for n > 1 && p.Coeffs[n-1].Sign() == 0 {
		n--
	}
	if n == 0 {
		return Poly{Var: p.Var, Coeffs: []*big.Rat{new(big.Rat)}}
	}
	p.Coeffs = p.Coeffs[:n]
	return p
}

// Degree is the index of the highest non-zero coefficient; the zero
// polynomial has degree 0.
func (p Poly) Degree() int {
	p = p.trim()
	return len(p.Coeffs) - 1
}

// IsZero reports whether every coefficient is zero.
func (p Poly) IsZero() bool {
	for _, c := range p.Coeffs {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// Coeff returns a copy of the coefficient of Var^k, zero when k is out of range.
func (p Poly) Coeff(k int) *big.Rat {
	if k < 0 || k >= len(p.Coeffs) {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.Coeffs[k])
}

// Lead returns a copy of the leading coefficient.
func (p Poly) Lead() *big.Rat { return p.Coeff(p.Degree()) }

func (p Poly) Equal(q Poly) bool {
	p, q = p.trim(), q.trim()
	if len(p.Coeffs) != len(q.Coeffs) {
		return false
	}
	for i := range p.Coeffs {
		if p.Coeffs[i].Cmp(q.Coeffs[i]) != 0 {
			return false
		}
	}
	return true
}

// ============================================================
// Arithmetic
// ============================================================

func (p Poly) Add(q Poly) Poly {
	n := max(len(p.Coeffs), len(q.Coeffs))
	out := make([]*big.Rat, n)
	for i := range out {
		out[i] = new(big.Rat).Add(p.Coeff(i), q.Coeff(i))
	}
	return Poly{Var: p.Var, Coeffs: out}.trim()
}

func (p Poly) Sub(q Poly) Poly { return p.Add(q.Neg()) }

func (p Poly) Neg() Poly { return p.Scale(big.NewRat(-1, 1)) }

// Scale multiplies every coefficient by c.
func (p Poly) Scale(c *big.Rat) Poly {
	out := make([]*big.Rat, len(p.Coeffs))
	for i, a := range p.Coeffs {
		out[i] = new(big.Rat).Mul(a, c)
	}
	return Poly{Var: p.Var, Coeffs: out}.trim()
}

func (p Poly) Mul(q Poly) Poly {
	out := make([]*big.Rat, len(p.Coeffs)+len(q.Coeffs)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	t := new(big.Rat)
	for i, a := range p.Coeffs {
		if a.Sign() == 0 {
			continue
		}
		for j, b := range q.Coeffs {
			out[i+j].Add(out[i+j], t.Mul(a, b))
		}
	}
	return Poly{Var: p.Var, Coeffs: out}.trim()
}

// Pow raises p to a non-negative power by repeated squaring.
func (p Poly) Pow(n int) Poly {
	result := Const(p.Var, big.NewRat(1, 1))
	base := p
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result
}

// DivRem performs long division p = q*d + r with deg r < deg d.
func (p Poly) DivRem(d Poly) (q, r Poly, err error) {
	if d.IsZero() {
		return Poly{}, Poly{}, errgo.New("polynomial division by zero")
	}
	d = d.trim()
	r = NewPoly(p.Var, p.Coeffs...)
	dd := d.Degree()
	if r.Degree() < dd || r.IsZero() {
		return Const(p.Var, new(big.Rat)), r, nil
	}
	qc := make([]*big.Rat, r.Degree()-dd+1)
	for i := range qc {
		qc[i] = new(big.Rat)
	}
	lead := d.Lead()
	rc := r.Coeffs
	for k := len(rc) - 1; k >= dd; k-- {
		if rc[k].Sign() == 0 {
			continue
		}
		f := new(big.Rat).Quo(rc[k], lead)
		qc[k-dd] = f
		for j := 0; j <= dd; j++ {
			t := new(big.Rat).Mul(f, d.Coeffs[j])
			rc[k-dd+j] = new(big.Rat).Sub(rc[k-dd+j], t)
		}
	}
	return Poly{Var: p.Var, Coeffs: qc}.trim(), Poly{Var: p.Var, Coeffs: rc}.trim(), nil
}

// Eval evaluates p at x with Horner's rule.
func (p Poly) Eval(x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, p.Coeffs[i])
	}
	return acc
}

// ============================================================
// Formatting
// ============================================================

// String renders p with descending terms, implicit multiplication and x^n,
// e.g. "2x^2+13x+6", "-x^2+4", "(1/2)x-3".
func (p Poly) String() string {
	return p.format(func(c *big.Rat, k int, first bool) string {
		var b strings.Builder
		if c.Sign() < 0 {
			b.WriteByte('-')
		} else if !first {
			b.WriteByte('+')
		}
		abs := new(big.Rat).Abs(c)
		switch {
		case k == 0:
			b.WriteString(ratText(abs))
		case abs.Cmp(big.NewRat(1, 1)) == 0:
		case abs.IsInt():
			b.WriteString(abs.Num().String())
		default:
			b.WriteString("(" + abs.RatString() + ")")
		}
		switch {
		case k == 1:
			b.WriteString(p.Var)
		case k > 1:
			fmt.Fprintf(&b, "%s^%d", p.Var, k)
		}
		return b.String()
	})
}

// LaTeX renders p for MathJax-style display.
func (p Poly) LaTeX() string {
	return p.format(func(c *big.Rat, k int, first bool) string {
		var b strings.Builder
		if c.Sign() < 0 {
			b.WriteString("-")
		} else if !first {
			b.WriteString("+")
		}
		abs := new(big.Rat).Abs(c)
		if k == 0 || abs.Cmp(big.NewRat(1, 1)) != 0 {
			b.WriteString(RatLaTeX(abs))
		}
		switch {
		case k == 1:
			b.WriteString(p.Var)
		case k > 1:
			fmt.Fprintf(&b, "%s^{%d}", p.Var, k)
		}
		return b.String()
	})
}

func (p Poly) format(term func(c *big.Rat, k int, first bool) string) string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	first := true
	for k := len(p.Coeffs) - 1; k >= 0; k-- {
		c := p.Coeffs[k]
		if c.Sign() == 0 {
			continue
		}
		b.WriteString(term(c, k, first))
		first = false
	}
	return b.String()
}

func ratText(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.RatString()
}

// RatLaTeX renders a rational as an integer or \frac{p}{q}.
func RatLaTeX(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(r)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

// ============================================================
// Expansion and string-level primitives
// ============================================================

// Expand multiplies out a parsed tree into a polynomial in v. An empty v
// means "the tree's only variable", falling back to DefaultVar for
// constants. A tree mentioning any other variable fails with ErrMultivariate.
func Expand(n Node, v string) (Poly, error) {
	vars := Variables(n)
	if v == "" {
		switch len(vars) {
		case 0:
			v = DefaultVar
		case 1:
			v = vars[0]
		default:
			return Poly{}, errgo.WithCausef(nil, ErrMultivariate, "variables %s", strings.Join(vars, ", "))
		}
	}
	for _, name := range vars {
		if name != v {
			return Poly{}, errgo.WithCausef(nil, ErrMultivariate, "unexpected variable %s in a polynomial in %s", name, v)
		}
	}
	if d := DegreeBound(n); d > MaxExpandDegree {
		return Poly{}, errgo.WithCausef(nil, ErrDegreeTooHigh, "expansion would reach degree %d, above %d", d, MaxExpandDegree)
	}
	return expandNode(n, v), nil
}

// MaxExpandDegree is the largest degree Expand will multiply out.
const MaxExpandDegree = MaxExponent

// DegreeBound returns an upper bound on the degree of n without expanding
// it: a Sum takes the largest term, a Product adds its factors and a Power
// multiplies. Cancellation can make the true degree lower. Results
// saturate just above MaxExpandDegree, so nesting cannot overflow.
func DegreeBound(n Node) int {
	const ceiling = MaxExpandDegree + 1
	clamp := func(d int) int {
		if d > ceiling {
			return ceiling
		}
		return d
	}
	switch n := n.(type) {
	case Var:
		return 1
	case Sum:
		d := 0
		for _, t := range n.Terms {
			if td := DegreeBound(t); td > d {
				d = td
			}
		}
		return d
	case Product:
		d := 0
		for _, f := range n.Factors {
			d = clamp(d + DegreeBound(f))
		}
		return d
	case Power:
		if n.Exp <= 0 {
			return 0
		}
		return clamp(DegreeBound(n.Base) * n.Exp)
	}
	return 0
}

func expandNode(n Node, v string) Poly {
	switch n := n.(type) {
	case Num:
		return Const(v, n.Val)
	case Var:
		return Monomial(v, big.NewRat(1, 1), 1)
	case Sum:
		acc := Const(v, new(big.Rat))
		for _, t := range n.Terms {
			acc = acc.Add(expandNode(t, v))
		}
		return acc
	case Product:
		acc := Const(v, big.NewRat(1, 1))
		for _, f := range n.Factors {
			acc = acc.Mul(expandNode(f, v))
		}
		return acc
	case Power:
		return expandNode(n.Base, v).Pow(n.Exp)
	}
	panic(fmt.Sprintf("cas: unknown node %T", n))
}

// ParsePoly parses and expands s in one step.
func ParsePoly(s string) (Poly, error) {
	n, err := Parse(s)
	if err != nil {
		return Poly{}, errgo.Mask(err, errgo.Any)
	}
	p, err := Expand(n, "")
	if err != nil {
		return Poly{}, errgo.Mask(err, errgo.Any)
	}
	return p, nil
}

// Simplify returns the canonical expanded form of s.
func Simplify(s string) (string, error) {
	p, err := ParsePoly(s)
	if err != nil {
		return "", errgo.Mask(err, errgo.Any)
	}
	return p.String(), nil
}

// Degree returns the degree of the polynomial s.
func Degree(s string) (int, error) {
	p, err := ParsePoly(s)
	if err != nil {
		return 0, errgo.Mask(err, errgo.Any)
	}
	return p.Degree(), nil
}

// Coefficient returns the coefficient of x^k in s.
func Coefficient(s string, k int) (*big.Rat, error) {
	p, err := ParsePoly(s)
	if err != nil {
		return nil, errgo.Mask(err, errgo.Any)
	}
	return p.Coeff(k), nil
}
