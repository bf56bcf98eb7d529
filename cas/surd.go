package cas

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"gopkg.in/errgo.v1"
)

// ============================================================
// Exact quadratic roots
// ============================================================

// Surd is an exact number of the form P + Q*sqrt(R), or P + Q*sqrt(R)*i when
// Imaginary is set. R is a positive integer, reduced to its square-free part;
// R == 1 with Imaginary unset means the value is rational.
type Surd struct {
	P, Q      *big.Rat
	R         *big.Int
	Imaginary bool
}

// QuadraticRoots solves a*x^2 + b*x + c = 0 exactly. The root with +Q comes
// first.
func QuadraticRoots(a, b, c *big.Rat) ([2]Surd, error) {
	if a.Sign() == 0 {
		return [2]Surd{}, errgo.Newf("leading coefficient is zero")
	}
	// D = b^2 - 4ac
	disc := new(big.Rat).Mul(b, b)
	disc.Sub(disc, new(big.Rat).Mul(big.NewRat(4, 1), new(big.Rat).Mul(a, c)))
	twoA := new(big.Rat).Mul(big.NewRat(2, 1), a)
	p := new(big.Rat).Neg(b)
	p.Quo(p, twoA)

	// sqrt(|N/M|) = sqrt(|N|*M)/M
	absD := new(big.Rat).Abs(disc)
	radicand := new(big.Int).Mul(absD.Num(), absD.Denom())
	s, r := squareFree(radicand)
	q := new(big.Rat).SetFrac(s, absD.Denom())
	q.Quo(q, new(big.Rat).Abs(twoA))

	imag := disc.Sign() < 0
	if disc.Sign() == 0 {
		q.SetInt64(0)
		r = big.NewInt(1)
	}
	if !imag && r.Cmp(big.NewInt(1)) == 0 {
		// Rational roots: fold Q into P.
		return [2]Surd{
			rationalSurd(new(big.Rat).Add(p, q)),
			rationalSurd(new(big.Rat).Sub(p, q)),
		}, nil
	}
	return [2]Surd{
		{P: new(big.Rat).Set(p), Q: new(big.Rat).Set(q), R: new(big.Int).Set(r), Imaginary: imag},
		{P: new(big.Rat).Set(p), Q: new(big.Rat).Neg(q), R: new(big.Int).Set(r), Imaginary: imag},
	}, nil
}

// QuadraticRootsOf solves a degree-2 polynomial.
func QuadraticRootsOf(p Poly) ([2]Surd, error) {
	if p.Degree() != 2 {
		return [2]Surd{}, errgo.Newf("%s is not quadratic", p)
	}
	return QuadraticRoots(p.Coeff(2), p.Coeff(1), p.Coeff(0))
}

func rationalSurd(v *big.Rat) Surd {
	return Surd{P: v, Q: new(big.Rat), R: big.NewInt(1)}
}

func (s Surd) p() *big.Rat {
	if s.P == nil {
		return new(big.Rat)
	}
	return s.P
}

func (s Surd) q() *big.Rat {
	if s.Q == nil {
		return new(big.Rat)
	}
	return s.Q
}

func (s Surd) r() *big.Int {
	if s.R == nil {
		return big.NewInt(1)
	}
	return s.R
}

// IsRational reports whether the value has no radical part.
func (s Surd) IsRational() bool {
	return s.q().Sign() == 0 || (!s.Imaginary && s.r().Cmp(big.NewInt(1)) == 0)
}

// Rat returns the value when it is rational.
func (s Surd) Rat() (*big.Rat, bool) {
	if !s.IsRational() {
		return nil, false
	}
	if s.q().Sign() == 0 {
		return new(big.Rat).Set(s.p()), true
	}
	return new(big.Rat).Add(s.p(), s.q()), true
}

// Complex128 approximates the value.
func (s Surd) Complex128() complex128 {
	p, _ := s.p().Float64()
	q, _ := s.q().Float64()
	rf, _ := new(big.Float).SetInt(s.r()).Float64()
	rad := q * math.Sqrt(rf)
	if s.Imaginary {
		return complex(p, rad)
	}
	return complex(p+rad, 0)
}

func (s Surd) Equal(o Surd) bool {
	return s.p().Cmp(o.p()) == 0 && s.q().Cmp(o.q()) == 0 &&
		s.r().Cmp(o.r()) == 0 && s.Imaginary == o.Imaginary
}

// String renders the surd as e.g. "2", "-1+sqrt(3)*i", "(1/2)-(1/2)*sqrt(5)".
func (s Surd) String() string {
	if v, ok := s.Rat(); ok && !s.Imaginary {
		return ratText(v)
	}
	var b strings.Builder
	p, q := s.p(), s.q()
	if p.Sign() != 0 {
		b.WriteString(paren(p))
		if q.Sign() >= 0 {
			b.WriteByte('+')
		}
	}
	if q.Sign() < 0 {
		b.WriteByte('-')
	}
	abs := new(big.Rat).Abs(q)
	radical := ""
	if s.r().Cmp(big.NewInt(1)) != 0 {
		radical = "sqrt(" + s.r().String() + ")"
	}
	var parts []string
	if abs.Cmp(big.NewRat(1, 1)) != 0 || radical == "" && !s.Imaginary {
		parts = append(parts, paren(abs))
	}
	if radical != "" {
		parts = append(parts, radical)
	}
	if s.Imaginary {
		parts = append(parts, "i")
	}
	b.WriteString(strings.Join(parts, "*"))
	return b.String()
}

// LaTeX renders the surd, e.g. "-1 + \sqrt{3}i".
func (s Surd) LaTeX() string {
	if v, ok := s.Rat(); ok && !s.Imaginary {
		return RatLaTeX(v)
	}
	var b strings.Builder
	p, q := s.p(), s.q()
	if p.Sign() != 0 {
		b.WriteString(RatLaTeX(p))
		if q.Sign() >= 0 {
			b.WriteString(" + ")
		} else {
			b.WriteString(" - ")
		}
	} else if q.Sign() < 0 {
		b.WriteString("-")
	}
	abs := new(big.Rat).Abs(q)
	if abs.Cmp(big.NewRat(1, 1)) != 0 {
		b.WriteString(RatLaTeX(abs))
	}
	if s.r().Cmp(big.NewInt(1)) != 0 {
		fmt.Fprintf(&b, "\\sqrt{%s}", s.r().String())
	}
	if s.Imaginary {
		b.WriteString("i")
	}
	return b.String()
}

// MarshalText lets surds travel as strings in JSON.
func (s Surd) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func paren(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return "(" + r.RatString() + ")"
}
