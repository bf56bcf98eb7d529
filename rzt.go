package polyroots

import (
	"gopkg.in/errgo.v1"

	"github.com/njchilds90/polyroots/cas"
)

// ============================================================
// Rational Zero Test
// ============================================================

// Candidates splits candidate roots by sign. Pos is ascending and holds
// zero when it is a candidate; Neg is the negation of each non-zero Pos
// entry, in the same order.
type Candidates struct {
	Pos []Rational `json:"pos"`
	Neg []Rational `json:"neg"`
}

// All returns Pos followed by Neg.
func (c Candidates) All() []Rational {
	out := make([]Rational, 0, len(c.Pos)+len(c.Neg))
	out = append(out, c.Pos...)
	return append(out, c.Neg...)
}

// RZTResult lists every possible rational root p/q of a polynomial.
type RZTResult struct {
	PValues              []int64    `json:"p_values"`
	QValues              []int64    `json:"q_values"`
	PositiveRoots        []Rational `json:"positive_roots"`
	ReducedPositiveRoots []Rational `json:"reduced_positive_roots"`
	AllReduced           Candidates `json:"all_reduced"`
}

// RationalZeroTest enumerates the possible rational roots of v. Fractional
// coefficients are cleared first; the zero vector and constants yield an
// empty result.
func RationalZeroTest(v Vector) (RZTResult, error) {
	v = v.Trim()
	if len(v) < 2 || v.IsZero() {
		return RZTResult{}, nil
	}
	// Only the leading and constant coefficients matter; the middle ones
	// may be arbitrarily large.
	iv, _ := v.Integral()
	lead, ok := iv[0].Int64()
	if !ok {
		return RZTResult{}, errgo.WithCausef(nil, ErrCoefficientRange, "leading coefficient %s of %s does not fit in int64", iv[0], v)
	}
	constant, ok := iv[len(iv)-1].Int64()
	if !ok {
		return RZTResult{}, errgo.WithCausef(nil, ErrCoefficientRange, "constant %s of %s does not fit in int64", iv[len(iv)-1], v)
	}
	ps, err := divisorsOf(constant)
	if err != nil {
		return RZTResult{}, errgo.Mask(err, IsCoefficientRange)
	}
	qs, err := divisorsOf(lead)
	if err != nil {
		return RZTResult{}, errgo.Mask(err, IsCoefficientRange)
	}

	res := RZTResult{PValues: ps, QValues: qs}
	for _, p := range ps {
		for _, q := range qs {
			res.PositiveRoots = append(res.PositiveRoots, Frac(p, q))
		}
	}
	sortRationals(res.PositiveRoots)
	res.ReducedPositiveRoots = NewCandidatePool(res.PositiveRoots...).Ascending()

	res.AllReduced.Pos = res.ReducedPositiveRoots
	for _, r := range res.ReducedPositiveRoots {
		if !r.IsZero() {
			res.AllReduced.Neg = append(res.AllReduced.Neg, r.Neg())
		}
	}
	return res, nil
}

// divisorsOf is the divisor list used for p and q: [0] for 0, [1] for ±1,
// [1, |n|] for primes and every positive divisor otherwise.
func divisorsOf(n int64) ([]int64, error) {
	if n < 0 {
		n = -n
	}
	switch {
	case n == 0:
		return []int64{0}, nil
	case n == 1:
		return []int64{1}, nil
	case cas.IsPrime(n):
		return []int64{1, n}, nil
	}
	ds, err := cas.Divisors(n)
	if err != nil {
		return nil, errgo.WithCausef(err, ErrCoefficientRange, "divisors of %d", n)
	}
	return ds, nil
}

// CandidatesFor is the candidate pool for a polynomial: nothing for a
// constant, the exact root for a linear polynomial, and every reduced
// RZT candidate otherwise.
func CandidatesFor(v Vector) ([]Rational, error) {
	v = v.Trim()
	switch v.Degree() {
	case 0:
		return nil, nil
	case 1:
		return []Rational{v[1].Neg().Quo(v[0])}, nil
	}
	res, err := RationalZeroTest(v)
	if err != nil {
		return nil, errgo.Mask(err, IsCoefficientRange)
	}
	return res.AllReduced.All(), nil
}
