package cas

import (
	"math/big"

	"gopkg.in/errgo.v1"
)

// MaxDivisorInput is the largest magnitude Divisors will enumerate.
const MaxDivisorInput = int64(1) << 40

// GCD returns the non-negative greatest common divisor of a and b.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	return new(big.Int).GCD(nil, nil, x, y)
}

// LCM returns the non-negative least common multiple of a and b; zero if
// either is zero.
func LCM(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	g := GCD(a, b)
	out := new(big.Int).Mul(a, b)
	out.Abs(out)
	return out.Quo(out, g)
}

// IsPrime reports whether |n| is prime. ProbablyPrime is exact below 2^64.
func IsPrime(n int64) bool {
	if n < 0 {
		n = -n
	}
	if n < 2 {
		return false
	}
	return big.NewInt(n).ProbablyPrime(20)
}

// Divisors returns every positive divisor of |n| in ascending order, pairing
// d with n/d up to sqrt(n). Zero has no divisors here.
func Divisors(n int64) ([]int64, error) {
	if n < 0 {
		n = -n
	}
	if n < 0 || n > MaxDivisorInput {
		return nil, errgo.WithCausef(nil, ErrTooLarge, "cannot enumerate divisors of %d", n)
	}
	if n == 0 {
		return nil, nil
	}
	var low, high []int64
	for d := int64(1); d*d <= n; d++ {
		if n%d != 0 {
			continue
		}
		low = append(low, d)
		if q := n / d; q != d {
			high = append(high, q)
		}
	}
	for i := len(high) - 1; i >= 0; i-- {
		low = append(low, high[i])
	}
	return low, nil
}

// SquareRoot returns the exact square root of n when n is a perfect square.
func SquareRoot(n *big.Int) (*big.Int, bool) {
	if n.Sign() < 0 {
		return nil, false
	}
	r := new(big.Int).Sqrt(n)
	if new(big.Int).Mul(r, r).Cmp(n) != 0 {
		return nil, false
	}
	return r, true
}

// CubeRoot returns the exact, signed cube root of n when n is a perfect cube.
func CubeRoot(n *big.Int) (*big.Int, bool) {
	a := new(big.Int).Abs(n)
	lo := new(big.Int)
	hi := new(big.Int).Lsh(big.NewInt(1), uint(a.BitLen()/3+1))
	one := big.NewInt(1)
	cube := new(big.Int)
	for lo.Cmp(hi) <= 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Rsh(mid, 1)
		cube.Mul(mid, mid).Mul(cube, mid)
		switch cube.Cmp(a) {
		case 0:
			if n.Sign() < 0 {
				mid.Neg(mid)
			}
			return mid, true
		case -1:
			lo.Add(mid, one)
		default:
			hi.Sub(mid, one)
		}
	}
	return nil, false
}

// RatSquareRoot returns the exact square root of a non-negative rational
// when both numerator and denominator are perfect squares.
func RatSquareRoot(r *big.Rat) (*big.Rat, bool) {
	if r.Sign() < 0 {
		return nil, false
	}
	n, ok := SquareRoot(r.Num())
	if !ok {
		return nil, false
	}
	d, ok := SquareRoot(r.Denom())
	if !ok {
		return nil, false
	}
	return new(big.Rat).SetFrac(n, d), true
}

// squareFree splits n > 0 into s^2 * r with r square-free as far as trial
// division up to trialLimit can tell.
func squareFree(n *big.Int) (s, r *big.Int) {
	const trialLimit = 1 << 20
	s = big.NewInt(1)
	r = new(big.Int).Set(n)
	if r.Sign() == 0 {
		return s, r
	}
	if root, ok := SquareRoot(r); ok {
		return root, big.NewInt(1)
	}
	d := big.NewInt(2)
	sq := new(big.Int)
	q, m := new(big.Int), new(big.Int)
	for i := int64(2); i <= trialLimit; i++ {
		d.SetInt64(i)
		sq.Mul(d, d)
		if sq.Cmp(r) > 0 {
			break
		}
		for {
			q.QuoRem(r, sq, m)
			if m.Sign() != 0 {
				break
			}
			r.Set(q)
			s.Mul(s, d)
		}
	}
	return s, r
}
