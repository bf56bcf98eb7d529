package polyroots

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
	"gopkg.in/errgo.v1"

	"github.com/njchilds90/polyroots/cas"
)

// Normalize turns loosely typed input into an expression the kernel parses
// unambiguously: whitespace goes, full-width forms fold to ASCII, X becomes
// x, juxtaposition gets an explicit *, "+-" collapses to "-" and stray *
// at either end are trimmed. "7x(x+5)" becomes "7*x*(x+5)".
func Normalize(raw string) string {
	s := width.Fold.String(raw)
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return -1
		case r == 'X':
			return 'x'
		case r == '−':
			return '-'
		}
		return r
	}, s)

	var b strings.Builder
	rs := []rune(s)
	for i, r := range rs {
		if i > 0 && needsStar(rs[i-1], r) {
			b.WriteByte('*')
		}
		b.WriteRune(r)
	}
	out := b.String()
	for strings.Contains(out, "+-") {
		out = strings.ReplaceAll(out, "+-", "-")
	}
	return strings.Trim(out, "*")
}

func needsStar(prev, cur rune) bool {
	switch {
	case prev == 'x':
		return cur == 'x' || isDigit(cur) || cur == '('
	case isDigit(prev):
		return cur == 'x' || cur == '('
	case prev == ')':
		return cur == 'x' || isDigit(cur) || cur == '('
	}
	return false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Validate rejects input containing anything but digits, x, ^, parentheses
// and the four arithmetic operators.
func Validate(raw string) error {
	s := Normalize(raw)
	if s == "" {
		return errgo.WithCausef(nil, ErrParse, "empty polynomial")
	}
	for i, r := range s {
		if isDigit(r) || strings.ContainsRune("x^()+*/-", r) {
			continue
		}
		return errgo.WithCausef(nil, ErrParse, "unexpected character %q at offset %d", r, i)
	}
	return nil
}

// CheckDegree rejects input whose degree reaches the configured maximum
// with ErrDegreeLimit. The degree is bounded from the parse tree first, so
// nested powers such as ((x+1)^256)^256 fail without being expanded; only
// trees whose bound reaches the limit are expanded to find the true degree.
func CheckDegree(raw string, opts ...Option) error {
	o := newOptions(opts)
	tree, err := cas.Parse(Normalize(raw))
	if err != nil {
		return parseFailure(err, raw)
	}
	bound := cas.DegreeBound(tree)
	if bound < o.maxDegree {
		return nil
	}
	if bound > cas.MaxExpandDegree {
		return errgo.WithCausef(nil, ErrDegreeLimit, "degree of %q exceeds %d", raw, cas.MaxExpandDegree)
	}
	p, err := cas.Expand(tree, "")
	if err != nil {
		return parseFailure(err, raw)
	}
	if d := p.Degree(); d >= o.maxDegree {
		return errgo.WithCausef(nil, ErrDegreeLimit, "degree %d of %q is not below %d", d, raw, o.maxDegree)
	}
	return nil
}

// Canonicalize normalizes raw and returns its expanded polynomial form.
func Canonicalize(raw string) (string, error) {
	out, err := cas.Simplify(Normalize(raw))
	if err != nil {
		return "", parseFailure(err, raw)
	}
	return out, nil
}
