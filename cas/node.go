// Package cas is a small exact symbolic kernel for univariate polynomials.
//
// It parses infix expressions into an explicit tree, expands trees into dense
// polynomials over math/big.Rat, factors them over the rationals and solves
// quadratics exactly. Everything is deterministic: the same input always
// yields the same output string.
package cas

import (
	"math/big"
	"strings"
)

// ============================================================
// Tree nodes
// ============================================================

// Node is a parsed expression. The concrete types are Num, Var, Sum, Product
// and Power.
type Node interface {
	String() string
	node()
}

// Num is an exact rational constant.
type Num struct{ Val *big.Rat }

// Var is a symbolic variable.
type Var struct{ Name string }

// Sum is an n-ary addition. Subtraction is stored as addition of a term
// multiplied by -1.
type Sum struct{ Terms []Node }

// Product is an n-ary multiplication.
type Product struct{ Factors []Node }

// Power raises Base to a non-negative integer exponent.
type Power struct {
	Base Node
	Exp  int
}

func (Num) node()     {}
func (Var) node()     {}
func (Sum) node()     {}
func (Product) node() {}
func (Power) node()   {}

// NewNum returns a constant node holding a copy of r.
func NewNum(r *big.Rat) Num { return Num{Val: new(big.Rat).Set(r)} }

// Int returns a constant node for n.
func Int(n int64) Num { return Num{Val: new(big.Rat).SetInt64(n)} }

// SumOf builds a Sum, flattening nested sums. A single term is returned as is.
func SumOf(terms ...Node) Node {
	var flat []Node
	for _, t := range terms {
		if s, ok := t.(Sum); ok {
			flat = append(flat, s.Terms...)
			continue
		}
		flat = append(flat, t)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Sum{Terms: flat}
}

// ProductOf builds a Product, flattening nested products. A single factor is
// returned as is.
func ProductOf(factors ...Node) Node {
	var flat []Node
	for _, f := range factors {
		if p, ok := f.(Product); ok {
			flat = append(flat, p.Factors...)
			continue
		}
		flat = append(flat, f)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Product{Factors: flat}
}

// ============================================================
// Printing
// ============================================================

func (n Num) String() string {
	if n.Val.IsInt() {
		return n.Val.Num().String()
	}
	return n.Val.RatString()
}

func (v Var) String() string { return v.Name }

func (s Sum) String() string {
	var b strings.Builder
	for i, t := range s.Terms {
		txt := t.String()
		if i > 0 && !strings.HasPrefix(txt, "-") {
			b.WriteByte('+')
		}
		b.WriteString(txt)
	}
	return b.String()
}

func (p Product) String() string {
	parts := make([]string, 0, len(p.Factors))
	for i, f := range p.Factors {
		if n, ok := f.(Num); ok && i == 0 && n.Val.Cmp(big.NewRat(-1, 1)) == 0 && len(p.Factors) > 1 {
			parts = append(parts, "-")
			continue
		}
		parts = append(parts, wrap(f, i > 0))
	}
	out := strings.Join(parts, "*")
	return strings.Replace(out, "-*", "-", 1)
}

func (p Power) String() string {
	return wrap(p.Base, true) + "^" + big.NewInt(int64(p.Exp)).String()
}

// wrap parenthesizes compound nodes, and negative or fractional constants
// when strict is set.
func wrap(n Node, strict bool) string {
	switch n := n.(type) {
	case Sum, Product:
		return "(" + n.String() + ")"
	case Num:
		if strict && (n.Val.Sign() < 0 || !n.Val.IsInt()) {
			return "(" + n.String() + ")"
		}
	}
	return n.String()
}

// ============================================================
// Variables
// ============================================================

// Variables returns the distinct variable names in n, in first-seen order.
func Variables(n Node) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case Var:
			if !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		case Sum:
			for _, t := range n.Terms {
				walk(t)
			}
		case Product:
			for _, f := range n.Factors {
				walk(f)
			}
		case Power:
			walk(n.Base)
		}
	}
	walk(n)
	return out
}
