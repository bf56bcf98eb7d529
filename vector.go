package polyroots

import (
	"math/big"
	"strings"

	"gopkg.in/errgo.v1"

	"github.com/njchilds90/polyroots/cas"
)

// ============================================================
// Vector codec
// ============================================================

// Vector is a dense coefficient list with index 0 holding the coefficient
// of the highest power. [1, 0, -4] is x^2-4.
type Vector []Rational

// VectorOf builds a vector from integer coefficients, highest power first.
func VectorOf(coeffs ...int64) Vector {
	v := make(Vector, len(coeffs))
	for i, c := range coeffs {
		v[i] = R(c)
	}
	return v
}

// ToVector parses expr, expands it and reads every coefficient from the
// detected degree down to the constant, recording zeros explicitly.
func ToVector(expr string) (Vector, error) {
	p, err := cas.ParsePoly(Normalize(expr))
	if err != nil {
		return nil, parseFailure(err, expr)
	}
	return FromPoly(p), nil
}

// FromPoly converts a kernel polynomial to a vector.
func FromPoly(p cas.Poly) Vector {
	deg := p.Degree()
	v := make(Vector, 0, deg+1)
	for k := deg; k >= 0; k-- {
		v = append(v, NewRational(p.Coeff(k)))
	}
	return v
}

// Poly converts the vector back into a kernel polynomial in x.
func (v Vector) Poly() cas.Poly {
	asc := make([]*big.Rat, len(v))
	for i, c := range v {
		asc[len(v)-1-i] = c.rat()
	}
	return cas.NewPoly(cas.DefaultVar, asc...)
}

// ToExpression formats v with descending terms, e.g. "2x^2+13x+6".
func ToExpression(v Vector) string { return v.Poly().String() }

func (v Vector) String() string { return ToExpression(v) }

func (v Vector) LaTeX() string { return v.Poly().LaTeX() }

// Degree is len(v)-1 after dropping leading zeros.
func (v Vector) Degree() int {
	t := v.Trim()
	if len(t) == 0 {
		return 0
	}
	return len(t) - 1
}

// Trim drops leading zero coefficients, keeping at least one entry.
func (v Vector) Trim() Vector {
	i := 0
	for i < len(v)-1 && v[i].IsZero() {
		i++
	}
	return v[i:]
}

// Leading returns the first non-zero coefficient, or zero.
func (v Vector) Leading() Rational {
	t := v.Trim()
	if len(t) == 0 {
		return Rational{}
	}
	return t[0]
}

// Constant returns the last coefficient.
func (v Vector) Constant() Rational {
	if len(v) == 0 {
		return Rational{}
	}
	return v[len(v)-1]
}

func (v Vector) IsZero() bool {
	for _, c := range v {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// IsMonomial reports whether only the leading coefficient is non-zero.
func (v Vector) IsMonomial() bool {
	t := v.Trim()
	if len(t) == 0 || t[0].IsZero() {
		return false
	}
	for _, c := range t[1:] {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// Integral scales v by the LCM of its denominators so that every entry is an
// integer; the scale factor is returned alongside.
func (v Vector) Integral() (Vector, Rational) {
	l := big.NewInt(1)
	for _, c := range v {
		l = cas.LCM(l, c.rat().Denom())
	}
	scale := NewRational(new(big.Rat).SetInt(l))
	out := make(Vector, len(v))
	for i, c := range v {
		out[i] = c.Mul(scale)
	}
	return out, scale
}

// Eval evaluates v at x with Horner's rule.
func (v Vector) Eval(x Rational) Rational {
	acc := Rational{}
	for _, c := range v {
		acc = acc.Mul(x).Add(c)
	}
	return acc
}

// Negated returns the coefficients of f(-x): every odd-power coefficient
// changes sign.
func (v Vector) Negated() Vector {
	n := len(v) - 1
	out := make(Vector, len(v))
	for i, c := range v {
		if (n-i)%2 == 1 {
			out[i] = c.Neg()
		} else {
			out[i] = c
		}
	}
	return out
}

func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if !v[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Strings renders each coefficient.
func (v Vector) Strings() []string {
	out := make([]string, len(v))
	for i, c := range v {
		out[i] = c.String()
	}
	return out
}

// ParseVector reads coefficients such as ["1", "0", "-4"] or "1, 0, -4".
func ParseVector(fields []string) (Vector, error) {
	var v Vector
	for _, f := range fields {
		for _, part := range strings.Split(f, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			r, err := ParseRational(part)
			if err != nil {
				return nil, errgo.Mask(err, IsParseFailure)
			}
			v = append(v, r)
		}
	}
	if len(v) == 0 {
		return nil, errgo.WithCausef(nil, ErrParse, "empty coefficient list")
	}
	return v, nil
}
