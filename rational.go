package polyroots

import (
	"math/big"
	"sort"

	"gopkg.in/errgo.v1"

	"github.com/njchilds90/polyroots/cas"
)

// ============================================================
// Rational numbers
// ============================================================

// Rational is an exact rational in lowest terms. The zero value is 0.
// Values never share mutable state, so they are safe to copy and compare.
type Rational struct{ v *big.Rat }

// R returns the integer n as a Rational.
func R(n int64) Rational { return Rational{v: big.NewRat(n, 1)} }

// Frac returns p/q. It panics when q is zero.
func Frac(p, q int64) Rational {
	if q == 0 {
		panic("polyroots: denominator is zero")
	}
	return Rational{v: big.NewRat(p, q)}
}

// NewRational copies r.
func NewRational(r *big.Rat) Rational {
	if r == nil {
		return Rational{}
	}
	return Rational{v: new(big.Rat).Set(r)}
}

// ParseRational accepts "3", "-3/2" and "1.5".
func ParseRational(s string) (Rational, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Rational{}, errgo.WithCausef(nil, ErrParse, "invalid rational %q", s)
	}
	return Rational{v: r}, nil
}

func (r Rational) rat() *big.Rat {
	if r.v == nil {
		return new(big.Rat)
	}
	return r.v
}

func (r Rational) Add(o Rational) Rational { return Rational{v: new(big.Rat).Add(r.rat(), o.rat())} }
func (r Rational) Sub(o Rational) Rational { return Rational{v: new(big.Rat).Sub(r.rat(), o.rat())} }
func (r Rational) Mul(o Rational) Rational { return Rational{v: new(big.Rat).Mul(r.rat(), o.rat())} }
func (r Rational) Neg() Rational           { return Rational{v: new(big.Rat).Neg(r.rat())} }
func (r Rational) Abs() Rational           { return Rational{v: new(big.Rat).Abs(r.rat())} }
func (r Rational) Cmp(o Rational) int      { return r.rat().Cmp(o.rat()) }
func (r Rational) Equal(o Rational) bool   { return r.Cmp(o) == 0 }
func (r Rational) Sign() int               { return r.rat().Sign() }
func (r Rational) IsZero() bool            { return r.Sign() == 0 }
func (r Rational) IsInt() bool             { return r.rat().IsInt() }
func (r Rational) Num() *big.Int           { return new(big.Int).Set(r.rat().Num()) }
func (r Rational) Den() *big.Int           { return new(big.Int).Set(r.rat().Denom()) }
func (r Rational) Big() *big.Rat           { return new(big.Rat).Set(r.rat()) }
func (r Rational) Float64() float64        { f, _ := r.rat().Float64(); return f }

// Quo returns r/o. It panics when o is zero.
func (r Rational) Quo(o Rational) Rational {
	if o.IsZero() {
		panic("polyroots: division by zero")
	}
	return Rational{v: new(big.Rat).Quo(r.rat(), o.rat())}
}

// Int64 returns the value when it is an integer that fits in int64.
func (r Rational) Int64() (int64, bool) {
	v := r.rat()
	if !v.IsInt() || !v.Num().IsInt64() {
		return 0, false
	}
	return v.Num().Int64(), true
}

func (r Rational) String() string {
	v := r.rat()
	if v.IsInt() {
		return v.Num().String()
	}
	return v.RatString()
}

func (r Rational) LaTeX() string { return cas.RatLaTeX(r.rat()) }

func (r Rational) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Rational) UnmarshalText(text []byte) error {
	v, err := ParseRational(string(text))
	if err != nil {
		return errgo.Mask(err, errgo.Any)
	}
	*r = v
	return nil
}

func sortRationals(rs []Rational) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Cmp(rs[j]) < 0 })
}
