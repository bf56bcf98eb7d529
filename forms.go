package polyroots

import (
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"gopkg.in/errgo.v1"

	"github.com/njchilds90/polyroots/cas"
)

// ============================================================
// Recognizable forms
// ============================================================

// Shape is how the top level of an input is treated.
type Shape int

const (
	// ShapeAdditive: the input is a sum and is expanded wholesale.
	ShapeAdditive Shape = iota
	// ShapeMultiplicative: the input is a product or power and each factor
	// is examined on its own.
	ShapeMultiplicative
)

func (s Shape) String() string {
	if s == ShapeAdditive {
		return "additive"
	}
	return "multiplicative"
}

func (s Shape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// FormKind names a recognizable special form.
type FormKind int

const (
	DifferenceOfSquares FormKind = iota
	SumOfCubes
	DifferenceOfCubes
)

func (k FormKind) String() string {
	switch k {
	case DifferenceOfSquares:
		return "difference of squares"
	case SumOfCubes:
		return "sum of cubes"
	case DifferenceOfCubes:
		return "difference of cubes"
	}
	return "unknown form"
}

func (k FormKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// SpecialForm is one leaf recognized as a special binomial.
type SpecialForm struct {
	Kind       FormKind `json:"kind"`
	Expression string   `json:"expression"`
	Factored   string   `json:"factored"`
	Factors    []string `json:"factors"`
}

// Term is one leaf of the input as the engine saw it.
type Term struct {
	Expression   string `json:"expression"`
	Reduced      bool   `json:"reduced"`
	Multiplicity int    `json:"multiplicity"`
	// Global is set for leaves that sit directly in the top-level product,
	// outside any power.
	Global bool `json:"global"`
}

// FormsResult is the outcome of Analyze.
type FormsResult struct {
	Input      string   `json:"input"`
	Normalized string   `json:"normalized"`
	Polynomial string   `json:"polynomial"`
	Degree     int      `json:"degree"`
	Shape      Shape    `json:"shape"`
	Constant   Rational `json:"constant"`
	Terms      []Term   `json:"terms"`

	Factors    []string      `json:"factors"`
	DifSquares []SpecialForm `json:"dif_squares"`
	SumCubes   []SpecialForm `json:"sum_cubes"`
	DifCubes   []SpecialForm `json:"dif_cubes"`
	FinalRoots []Rational    `json:"final_roots"`

	// IrrationalOrComplex lists quadratic leaves and factors whose roots are
	// not rational. QuadraticRoots holds their exact roots, two per entry.
	IrrationalOrComplex []string   `json:"irrational_or_complex"`
	ComplexRootCount    int        `json:"complex_root_count"`
	QuadraticRoots      []cas.Surd `json:"quadratic_roots,omitempty"`

	// Reduced is the expanded product of the leaves no rule could resolve;
	// empty when the input is fully factored.
	Reduced       string   `json:"reduced"`
	ReducedVector Vector   `json:"reduced_vector,omitempty"`
	Diagnostics   []string `json:"diagnostics,omitempty"`
}

// FullyFactored reports whether nothing is left for the later stages.
func (f FormsResult) FullyFactored() bool { return f.Reduced == "" }

// HasForms reports whether any special form was recognized.
func (f FormsResult) HasForms() bool {
	return len(f.DifSquares)+len(f.SumCubes)+len(f.DifCubes) > 0
}

func (f FormsResult) HasFactors() bool { return len(f.Factors) > 0 }

// SpecialForms lists every recognized form in detection order.
func (f FormsResult) SpecialForms() []SpecialForm {
	var out []SpecialForm
	out = append(out, f.DifSquares...)
	out = append(out, f.SumCubes...)
	return append(out, f.DifCubes...)
}

// Analyze parses poly, classifies its top level and resolves every leaf it
// can: constants, linear factors, monomials, irreducible quadratics and
// special binomials. Whatever is left becomes Reduced, the input of the
// rational zero test. Analyze does not apply the configured degree limit;
// CheckDegree does that at the input boundary.
func Analyze(poly string, opts ...Option) (FormsResult, error) {
	o := newOptions(opts)
	res := FormsResult{Input: poly, Normalized: Normalize(poly), Constant: R(1)}

	tree, err := cas.Parse(res.Normalized)
	if err != nil {
		return res, parseFailure(err, poly)
	}
	whole, err := cas.Expand(tree, "")
	if err != nil {
		return res, parseFailure(err, poly)
	}
	if whole.IsZero() {
		return res, errgo.WithCausef(nil, ErrParse, "polynomial %q is identically zero", poly)
	}
	res.Polynomial = whole.String()
	res.Degree = whole.Degree()

	red := &reduction{res: &res, variable: whole.Var, log: o.logger}
	switch n := tree.(type) {
	case cas.Sum:
		res.Shape = ShapeAdditive
		red.leaf(whole, 1, true)
	default:
		res.Shape = ShapeMultiplicative
		if err := red.walk(n, 1, true); err != nil {
			return res, parseFailure(err, poly)
		}
	}
	if err := red.finish(); err != nil {
		return res, errgo.Mask(err, errgo.Any)
	}
	o.logger.Debug("forms analyzed",
		slog.String("input", poly),
		slog.String("shape", res.Shape.String()),
		slog.Int("factors", len(res.Factors)),
		slog.Int("special_forms", len(res.SpecialForms())),
		slog.String("reduced", res.Reduced))
	return res, nil
}

// reduction collects leaf results while walking the tree.
type reduction struct {
	res      *FormsResult
	variable string
	log      *slog.Logger
	residual []residual
}

type residual struct {
	poly cas.Poly
	mult int
}

// walk descends through products and powers, multiplying the exponents
// into mult. Sums and variables are leaves; constants fold into Constant.
func (r *reduction) walk(n cas.Node, mult int, global bool) error {
	if mult == 0 {
		return nil
	}
	switch n := n.(type) {
	case cas.Product:
		for _, f := range n.Factors {
			if err := r.walk(f, mult, global); err != nil {
				return err
			}
		}
	case cas.Power:
		return r.walk(n.Base, mult*n.Exp, false)
	case cas.Num:
		r.scaleConstant(n.Val, mult)
	default:
		p, err := cas.Expand(n, r.variable)
		if err != nil {
			return errgo.Mask(err, errgo.Any)
		}
		r.leaf(p, mult, global)
	}
	return nil
}

func (r *reduction) scaleConstant(c *big.Rat, mult int) {
	for i := 0; i < mult; i++ {
		r.res.Constant = r.res.Constant.Mul(NewRational(c))
	}
}

func (r *reduction) leaf(p cas.Poly, mult int, global bool) {
	term := Term{Expression: p.String(), Multiplicity: mult, Global: global}
	if p.Degree() == 0 {
		r.scaleConstant(p.Coeff(0), mult)
		term.Reduced = true
		r.res.Terms = append(r.res.Terms, term)
		return
	}
	if kind, ok := DetectSpecialForm(FromPoly(p)); ok {
		if resolved, handled := r.special(kind, p, mult); handled {
			term.Reduced = resolved
			r.res.Terms = append(r.res.Terms, term)
			return
		}
	}
	term.Reduced = r.classify(p, mult, true)
	r.res.Terms = append(r.res.Terms, term)
}

// special records a recognized binomial and classifies its factors. A
// kernel failure is logged and the leaf falls back to plain handling
// (handled is false). resolved is false when a factor was left residual.
func (r *reduction) special(kind FormKind, p cas.Poly, mult int) (resolved, handled bool) {
	fz, err := cas.FactorPoly(p)
	if err != nil {
		r.log.Debug("special form not factored", slog.String("leaf", p.String()), slog.Any("error", err))
		r.res.Diagnostics = append(r.res.Diagnostics, fmt.Sprintf("factoring %s failed: %v", p, err))
		return false, false
	}
	sf := SpecialForm{Kind: kind, Expression: p.String(), Factored: fz.String()}
	for _, q := range fz.Flat() {
		sf.Factors = append(sf.Factors, q.String())
	}
	for i := 0; i < mult; i++ {
		switch kind {
		case DifferenceOfSquares:
			r.res.DifSquares = append(r.res.DifSquares, sf)
		case SumOfCubes:
			r.res.SumCubes = append(r.res.SumCubes, sf)
		case DifferenceOfCubes:
			r.res.DifCubes = append(r.res.DifCubes, sf)
		}
	}
	r.scaleConstant(fz.Content, mult)
	resolved = true
	for _, fc := range fz.Factors {
		if !r.classify(fc.Poly, mult*fc.Multiplicity, false) {
			resolved = false
		}
	}
	return resolved, true
}

// classify resolves a leaf that is not a special form. record controls
// whether linear factors and monomials are listed in Factors; factors of a
// special form are not. It reports whether the leaf was resolved.
func (r *reduction) classify(p cas.Poly, mult int, record bool) bool {
	v := FromPoly(p)
	expr := p.String()
	switch {
	case p.Degree() == 1:
		root := v[1].Neg().Quo(v[0])
		for i := 0; i < mult; i++ {
			if record {
				r.res.Factors = append(r.res.Factors, expr)
			}
			r.res.FinalRoots = append(r.res.FinalRoots, root)
		}
		return true
	case v.IsMonomial():
		for i := 0; i < mult; i++ {
			if record {
				r.res.Factors = append(r.res.Factors, expr)
			}
			for k := 0; k < p.Degree(); k++ {
				r.res.FinalRoots = append(r.res.FinalRoots, Rational{})
			}
		}
		return true
	case p.Degree() == 2 && !rationalDiscriminant(p):
		roots, err := cas.QuadraticRootsOf(p)
		if err != nil {
			r.res.Diagnostics = append(r.res.Diagnostics, err.Error())
		}
		for i := 0; i < mult; i++ {
			r.res.IrrationalOrComplex = append(r.res.IrrationalOrComplex, expr)
			r.res.ComplexRootCount += 2
			if err == nil {
				r.res.QuadraticRoots = append(r.res.QuadraticRoots, roots[0], roots[1])
			}
		}
		return true
	}
	r.residual = append(r.residual, residual{poly: p, mult: mult})
	return false
}

// finish multiplies the residual leaves back together through the kernel.
func (r *reduction) finish() error {
	if len(r.residual) == 0 {
		return nil
	}
	parts := make([]string, len(r.residual))
	for i, rs := range r.residual {
		parts[i] = "(" + rs.poly.String() + ")"
		if rs.mult > 1 {
			parts[i] += fmt.Sprintf("^%d", rs.mult)
		}
	}
	p, err := cas.ParsePoly(strings.Join(parts, "*"))
	if err != nil {
		return errgo.Notef(err, "cannot expand residual %s", strings.Join(parts, "*"))
	}
	r.res.Reduced = p.String()
	r.res.ReducedVector = FromPoly(p)
	return nil
}

// rationalDiscriminant reports whether b^2-4ac of a quadratic is the square
// of a rational, i.e. whether it splits over Q.
func rationalDiscriminant(p cas.Poly) bool {
	a, b, c := p.Coeff(2), p.Coeff(1), p.Coeff(0)
	d := new(big.Rat).Mul(b, b)
	d.Sub(d, new(big.Rat).Mul(big.NewRat(4, 1), new(big.Rat).Mul(a, c)))
	_, ok := cas.RatSquareRoot(d)
	return ok
}

// ============================================================
// Special-form detection
// ============================================================

// DetectSpecialForm checks a leaf against the binomial rules, in priority
// order: difference of squares, sum of cubes, difference of cubes. The
// leaf must have zeros strictly between its first and last coefficient.
// The end coefficients are divided by their GCD, taken negative when the
// leading one is negative, before the perfect power tests.
func DetectSpecialForm(v Vector) (FormKind, bool) {
	iv, _ := v.Trim().Integral()
	n := len(iv)
	if n < 3 {
		return 0, false
	}
	for _, c := range iv[1 : n-1] {
		if !c.IsZero() {
			return 0, false
		}
	}
	a, b := iv[0].Num(), iv[n-1].Num()
	if b.Sign() == 0 {
		return 0, false
	}
	if g := cas.GCD(a, b); g.Cmp(big.NewInt(1)) > 0 {
		if a.Sign() < 0 {
			g.Neg(g)
		}
		a.Quo(a, g)
		b.Quo(b, g)
	}
	opposite := a.Sign() != b.Sign()
	deg := n - 1

	if opposite && n%2 == 1 {
		_, okA := cas.SquareRoot(new(big.Int).Abs(a))
		_, okB := cas.SquareRoot(new(big.Int).Abs(b))
		if okA && okB {
			return DifferenceOfSquares, true
		}
	}
	if deg%3 == 0 {
		_, okA := cas.CubeRoot(a)
		_, okB := cas.CubeRoot(b)
		if okA && okB {
			if opposite {
				return DifferenceOfCubes, true
			}
			return SumOfCubes, true
		}
	}
	return 0, false
}
