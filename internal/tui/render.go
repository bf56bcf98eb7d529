package tui

import (
	"fmt"
	"strings"

	"github.com/njchilds90/polyroots"
	"github.com/njchilds90/polyroots/cas"
)

// The Render functions turn stage results into plain text blocks. They are
// shared by the terminal UI and the CLI.

const none = "(none)"

func rationals(rs []polyroots.Rational, latex bool) string {
	if len(rs) == 0 {
		return none
	}
	parts := make([]string, len(rs))
	for i, r := range rs {
		if latex {
			parts[i] = r.LaTeX()
		} else {
			parts[i] = r.String()
		}
	}
	return strings.Join(parts, ", ")
}

func surds(ss []cas.Surd, latex bool) string {
	if len(ss) == 0 {
		return none
	}
	parts := make([]string, len(ss))
	for i, s := range ss {
		if latex {
			parts[i] = s.LaTeX()
		} else {
			parts[i] = s.String()
		}
	}
	return strings.Join(parts, ", ")
}

func ints(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}

func int64s(ns []int64) string {
	if len(ns) == 0 {
		return none
	}
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}

func list(xs []string) string {
	if len(xs) == 0 {
		return none
	}
	return strings.Join(xs, ", ")
}

func line(b *strings.Builder, label, value string) {
	b.WriteString(LabelStyle.Render(label+":") + " " + value + "\n")
}

// RenderForms shows what the forms stage read off the input.
func RenderForms(f polyroots.FormsResult, latex bool) string {
	var b strings.Builder
	poly := f.Polynomial
	if latex {
		if v, err := polyroots.ToVector(f.Polynomial); err == nil {
			poly = v.LaTeX()
		}
	}
	line(&b, "Polynomial", poly)
	line(&b, "Shape", f.Shape.String())
	if !f.Constant.Equal(polyroots.R(1)) {
		line(&b, "Constant factor", f.Constant.String())
	}
	line(&b, "Factors", list(f.Factors))
	for _, sf := range f.SpecialForms() {
		line(&b, strings.ToUpper(sf.Kind.String()[:1])+sf.Kind.String()[1:], sf.Expression+" = "+sf.Factored)
	}
	line(&b, "Roots from factors", RootStyle.Render(rationals(f.FinalRoots, latex)))
	if len(f.IrrationalOrComplex) > 0 {
		line(&b, "Irrational or complex", fmt.Sprintf("%s (%d roots: %s)",
			list(f.IrrationalOrComplex), f.ComplexRootCount, surds(f.QuadraticRoots, latex)))
	}
	if f.FullyFactored() {
		line(&b, "Reduced", "(fully factored)")
	} else if latex {
		line(&b, "Reduced", f.ReducedVector.LaTeX())
	} else {
		line(&b, "Reduced", f.Reduced)
	}
	for _, d := range f.Diagnostics {
		b.WriteString(WarningStyle.Render("note: "+d) + "\n")
	}
	return b.String()
}

// RenderRZT lists the p and q values and the reduced candidates.
func RenderRZT(r polyroots.RZTResult, latex bool) string {
	var b strings.Builder
	line(&b, "p (divisors of the constant)", int64s(r.PValues))
	line(&b, "q (divisors of the leading coefficient)", int64s(r.QValues))
	line(&b, "All p/q", rationals(r.PositiveRoots, latex))
	line(&b, "Positive candidates", rationals(r.AllReduced.Pos, latex))
	line(&b, "Negative candidates", rationals(r.AllReduced.Neg, latex))
	return b.String()
}

// RenderDescartes shows f(x), f(-x) and the possible root counts.
func RenderDescartes(s polyroots.SignCount) string {
	var b strings.Builder
	line(&b, "f(x)", fmt.Sprintf("%s  (%d sign changes)", polyroots.ToExpression(s.Vector), s.PosSignChanges))
	line(&b, "f(-x)", fmt.Sprintf("%s  (%d sign changes)", s.NegatedExpression(), s.NegSignChanges))
	line(&b, "Possible positive roots", ints(s.PossiblePositives))
	line(&b, "Possible negative roots", ints(s.PossibleNegatives))
	if s.ZeroRoots > 0 {
		line(&b, "Roots at zero", fmt.Sprint(s.ZeroRoots))
	}
	line(&b, "At most", fmt.Sprintf("%d real roots", s.MaxRoots()))
	return b.String()
}

// RenderDivision lays out a synthetic division tableau:
//
//	3 |  1 -2 -5  6
//	  |     3  3 -6
//	  +------------
//	     1  1 -2  0
func RenderDivision(d polyroots.Division) string {
	top := d.Top.Strings()
	mid := append([]string{""}, d.Middle.Strings()...)
	bottom := append(d.Bottom.Strings(), d.Remainder.String())
	width := 1
	for _, row := range [][]string{top, mid, bottom} {
		for _, c := range row {
			if len(c) > width {
				width = len(c)
			}
		}
	}
	root := d.Root.String()
	pad := strings.Repeat(" ", len(root))
	cells := func(row []string) string {
		var b strings.Builder
		for _, c := range row {
			fmt.Fprintf(&b, " %*s", width, c)
		}
		return b.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s |%s\n", root, cells(top))
	fmt.Fprintf(&b, "%s |%s\n", pad, cells(mid))
	fmt.Fprintf(&b, "%s +%s\n", pad, strings.Repeat("-", len(top)*(width+1)))
	fmt.Fprintf(&b, "%s  %s\n", pad, cells(bottom))
	verdict := RejectedStyle.Render(root + " is not a root")
	if d.IsRoot() {
		verdict = RootStyle.Render(root + " is a root")
	}
	b.WriteString(verdict + "\n")
	return b.String()
}

// RenderSession shows the working polynomial, the candidate pool and the
// most recent division.
func RenderSession(s polyroots.SessionSnapshot, latex bool) string {
	var b strings.Builder
	line(&b, "State", s.State.String())
	cur := s.CurrentExpr
	if latex {
		cur = s.Current.LaTeX()
	}
	line(&b, "Working polynomial", cur)
	line(&b, "Remaining candidates", rationals(s.Remaining, latex))
	line(&b, "Roots found", RootStyle.Render(rationals(s.RationalRoots, latex)))
	line(&b, "Budget", fmt.Sprintf("%d positive, %d negative, %d roots at most", s.PositiveBudget, s.NegativeBudget, s.MaxRoots))
	if len(s.IrrationalRoots) > 0 {
		line(&b, "Quadratic formula", surds(s.IrrationalRoots, latex))
	}
	if n := len(s.Steps); n > 0 {
		b.WriteString("\n" + RenderDivision(s.Steps[n-1]))
	}
	if s.State == polyroots.StateUndiscoverable {
		b.WriteString(WarningStyle.Render("No rational candidates remain; the remaining roots cannot be found with these tools.") + "\n")
	}
	return b.String()
}

// RenderReport summarizes a finished walk-through.
func RenderReport(r polyroots.Report, latex bool) string {
	var b strings.Builder
	line(&b, "Polynomial", r.Polynomial)
	switch r.Outcome {
	case polyroots.OutcomeNoRoots:
		b.WriteString(WarningStyle.Render("This polynomial has no roots to find.") + "\n")
		return b.String()
	case polyroots.OutcomeIrrationalExhaustion:
		b.WriteString(WarningStyle.Render("Some roots are irrational and could not be found.") + "\n")
	}
	if len(r.Factors) > 0 {
		line(&b, "Factors", list(r.Factors))
	}
	line(&b, "Rational roots", RootStyle.Render(rationals(r.AllRationalRoots(), latex)))
	if len(r.IrrationalRoots) > 0 {
		line(&b, "Irrational or complex roots", surds(r.IrrationalRoots, latex))
	}
	if r.Remaining != "" {
		line(&b, "Left over", r.Remaining)
		if len(r.RemainingRoots) > 0 {
			line(&b, "Its roots", surds(r.RemainingRoots, latex))
		}
	}
	line(&b, "Outcome", r.Outcome.String())
	return b.String()
}
