package cas

import (
	"math/big"
	"unicode"

	"gopkg.in/errgo.v1"
)

var (
	// ErrSyntax is the cause of every malformed-input error returned by Parse.
	ErrSyntax = errgo.New("syntax error")
	// ErrMultivariate is the cause when an expression uses more than one variable.
	ErrMultivariate = errgo.New("expression has more than one variable")
	// ErrNotPolynomial is the cause for division by a non-constant or a
	// non-integer exponent.
	ErrNotPolynomial = errgo.New("expression is not a polynomial")
	// ErrTooLarge is the cause when an exponent or integer exceeds the
	// kernel's working limits.
	ErrTooLarge = errgo.New("value too large")
	// ErrDegreeTooHigh is the cause when a tree would expand past
	// MaxExpandDegree.
	ErrDegreeTooHigh = errgo.New("degree too high to expand")
)

// MaxExponent bounds literal exponents so a typo cannot expand into a huge
// polynomial.
const MaxExponent = 256

// ============================================================
// Tokenizer
// ============================================================

type tokKind int

const (
	tokEOF tokKind = iota
	tokNum
	tokVar
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
	pos  int
}

func tokenize(s string) ([]token, error) {
	var toks []token
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			dot := false
			for i < len(rs) && (unicode.IsDigit(rs[i]) || rs[i] == '.') {
				if rs[i] == '.' {
					if dot {
						return nil, errgo.WithCausef(nil, ErrSyntax, "malformed number at offset %d", start)
					}
					dot = true
				}
				i++
			}
			text := string(rs[start:i])
			if text == "." {
				return nil, errgo.WithCausef(nil, ErrSyntax, "malformed number at offset %d", start)
			}
			toks = append(toks, token{kind: tokNum, text: text, pos: start})
		case unicode.IsLetter(r):
			toks = append(toks, token{kind: tokVar, text: string(r), pos: i})
			i++
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^':
			toks = append(toks, token{kind: tokOp, text: string(r), pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, errgo.WithCausef(nil, ErrSyntax, "unexpected character %q at offset %d", r, i)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(rs)})
	return toks, nil
}

// ============================================================
// Parser
// ============================================================

// Parse parses an infix expression over +, -, *, /, ^ and parentheses.
// Juxtaposition is multiplication ("2x(x+1)"), ^ is right associative and
// binds tighter than unary minus, so "-x^2" is -(x^2). Exponents must be
// non-negative integer constants and divisors must be non-zero constants.
func Parse(s string) (Node, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, errgo.WithCausef(nil, ErrSyntax, "empty expression")
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, errgo.WithCausef(nil, ErrSyntax, "unexpected %q at offset %d", t.text, t.pos)
	}
	return n, nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }
func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) isOp(op string) bool {
	t := p.peek()
	return t.kind == tokOp && t.text == op
}

// expr := term (('+'|'-') term)*
func (p *parser) expr() (Node, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	terms := []Node{first}
	for p.isOp("+") || p.isOp("-") {
		neg := p.next().text == "-"
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		if neg {
			t = negate(t)
		}
		terms = append(terms, t)
	}
	return SumOf(terms...), nil
}

// term := unary (('*'|'/') unary | unary)*
func (p *parser) term() (Node, error) {
	first, err := p.unary()
	if err != nil {
		return nil, err
	}
	factors := []Node{first}
	for {
		t := p.peek()
		switch {
		case p.isOp("*"):
			p.next()
			f, err := p.unary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, f)
		case p.isOp("/"):
			p.next()
			f, err := p.unary()
			if err != nil {
				return nil, err
			}
			c, ok := constValue(f)
			if !ok {
				return nil, errgo.WithCausef(nil, ErrNotPolynomial, "division by non-constant %s", f)
			}
			if c.Sign() == 0 {
				return nil, errgo.WithCausef(nil, ErrSyntax, "division by zero at offset %d", t.pos)
			}
			factors = append(factors, Num{Val: new(big.Rat).Inv(c)})
		case t.kind == tokNum || t.kind == tokVar || t.kind == tokLParen:
			f, err := p.unary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, f)
		default:
			return ProductOf(factors...), nil
		}
	}
}

// unary := ('+'|'-') unary | power
func (p *parser) unary() (Node, error) {
	switch {
	case p.isOp("-"):
		p.next()
		n, err := p.unary()
		if err != nil {
			return nil, err
		}
		return negate(n), nil
	case p.isOp("+"):
		p.next()
		return p.unary()
	}
	return p.power()
}

// power := primary ('^' unary)?
func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !p.isOp("^") {
		return base, nil
	}
	caret := p.next()
	expNode, err := p.unary()
	if err != nil {
		return nil, err
	}
	e, ok := constValue(expNode)
	if !ok || !e.IsInt() {
		return nil, errgo.WithCausef(nil, ErrNotPolynomial, "exponent %s at offset %d is not an integer constant", expNode, caret.pos)
	}
	if !e.Num().IsInt64() || e.Num().Int64() > MaxExponent || e.Num().Int64() < -MaxExponent {
		return nil, errgo.WithCausef(nil, ErrTooLarge, "exponent %s exceeds %d", e.RatString(), MaxExponent)
	}
	k := int(e.Num().Int64())
	if c, ok := constValue(base); ok {
		if k < 0 && c.Sign() == 0 {
			return nil, errgo.WithCausef(nil, ErrSyntax, "zero raised to a negative power")
		}
		return Num{Val: ratPow(c, k)}, nil
	}
	if k < 0 {
		return nil, errgo.WithCausef(nil, ErrNotPolynomial, "negative exponent on %s", base)
	}
	return Power{Base: base, Exp: k}, nil
}

// primary := NUMBER | VAR | '(' expr ')'
func (p *parser) primary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		r, ok := new(big.Rat).SetString(t.text)
		if !ok {
			return nil, errgo.WithCausef(nil, ErrSyntax, "malformed number %q at offset %d", t.text, t.pos)
		}
		return Num{Val: r}, nil
	case tokVar:
		return Var{Name: t.text}, nil
	case tokLParen:
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, errgo.WithCausef(nil, ErrSyntax, "missing ) for ( at offset %d", t.pos)
		}
		return n, nil
	case tokEOF:
		return nil, errgo.WithCausef(nil, ErrSyntax, "unexpected end of expression")
	}
	return nil, errgo.WithCausef(nil, ErrSyntax, "unexpected %q at offset %d", t.text, t.pos)
}

func negate(n Node) Node {
	if c, ok := n.(Num); ok {
		return Num{Val: new(big.Rat).Neg(c.Val)}
	}
	return ProductOf(Int(-1), n)
}

// constValue folds n to a constant when it has no variables.
func constValue(n Node) (*big.Rat, bool) {
	switch n := n.(type) {
	case Num:
		return n.Val, true
	case Sum:
		acc := new(big.Rat)
		for _, t := range n.Terms {
			v, ok := constValue(t)
			if !ok {
				return nil, false
			}
			acc.Add(acc, v)
		}
		return acc, true
	case Product:
		acc := big.NewRat(1, 1)
		for _, f := range n.Factors {
			v, ok := constValue(f)
			if !ok {
				return nil, false
			}
			acc.Mul(acc, v)
		}
		return acc, true
	case Power:
		v, ok := constValue(n.Base)
		if !ok {
			return nil, false
		}
		return ratPow(v, n.Exp), true
	}
	return nil, false
}

// ratPow computes r^k for any integer k; r must be non-zero when k < 0.
func ratPow(r *big.Rat, k int) *big.Rat {
	base := new(big.Rat).Set(r)
	if k < 0 {
		base.Inv(base)
		k = -k
	}
	out := big.NewRat(1, 1)
	for ; k > 0; k-- {
		out.Mul(out, base)
	}
	return out
}
