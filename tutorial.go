package polyroots

import (
	"log/slog"
	"strings"

	"gopkg.in/errgo.v1"

	"github.com/njchilds90/polyroots/cas"
)

// ============================================================
// Stages
// ============================================================

// Stage is one step of the guided walk-through.
type Stage int

const (
	StageForms Stage = iota
	StageRZT
	StageDescartes
	StageSynthetic
	StageFinal
)

// Stages lists every stage in order.
var Stages = []Stage{StageForms, StageRZT, StageDescartes, StageSynthetic, StageFinal}

func (s Stage) String() string {
	switch s {
	case StageForms:
		return "forms"
	case StageRZT:
		return "rzt"
	case StageDescartes:
		return "descartes"
	case StageSynthetic:
		return "synthetic"
	case StageFinal:
		return "final"
	}
	return "unknown"
}

// Title is the heading shown to a learner.
func (s Stage) Title() string {
	switch s {
	case StageForms:
		return "Recognizable Forms"
	case StageRZT:
		return "Rational Zero Test"
	case StageDescartes:
		return "Descartes' Rule of Signs"
	case StageSynthetic:
		return "Synthetic Division"
	case StageFinal:
		return "Final Answer"
	}
	return "Unknown"
}

func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ParseStage accepts a stage name as printed by String.
func ParseStage(name string) (Stage, error) {
	for _, s := range Stages {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, errgo.Newf("unknown stage %q", name)
}

// ============================================================
// Outcome and report
// ============================================================

// Outcome is how a walk-through ended.
type Outcome int

const (
	// OutcomeComplete: every real root was found.
	OutcomeComplete Outcome = iota
	// OutcomeNoRoots: nothing in the input yields a root or a candidate.
	OutcomeNoRoots
	// OutcomeQuadraticFallback: rational candidates ran out and the quadratic
	// left over was solved exactly.
	OutcomeQuadraticFallback
	// OutcomeIrrationalExhaustion: rational candidates ran out with a
	// polynomial of degree three or more left over.
	OutcomeIrrationalExhaustion
)

func (o Outcome) String() string {
	switch o {
	case OutcomeComplete:
		return "complete"
	case OutcomeNoRoots:
		return "no_roots"
	case OutcomeQuadraticFallback:
		return "quadratic_fallback"
	case OutcomeIrrationalExhaustion:
		return "irrational_exhaustion"
	}
	return "unknown"
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Report aggregates every stage into a final answer.
type Report struct {
	Polynomial   string        `json:"polynomial"`
	Constant     Rational      `json:"constant"`
	Factors      []string      `json:"factors"`
	SpecialForms []SpecialForm `json:"special_forms"`
	// FormRoots were read off factors; RationalRoots were confirmed by
	// synthetic division.
	FormRoots     []Rational `json:"form_roots"`
	RationalRoots []Rational `json:"rational_roots"`
	// IrrationalOrComplex lists quadratic factors from the forms stage;
	// IrrationalRoots holds their exact roots and those of the quadratic
	// fallback.
	IrrationalOrComplex []string   `json:"irrational_or_complex"`
	IrrationalRoots     []cas.Surd `json:"irrational_roots"`
	// Remaining is what synthetic division left undivided, "" when nothing
	// of degree one or more remains.
	Remaining      string     `json:"remaining"`
	RemainingRoots []cas.Surd `json:"remaining_roots,omitempty"`
	Outcome        Outcome    `json:"outcome"`
}

// AllRationalRoots merges the roots from factors and from synthetic
// division, ascending, with multiplicity.
func (r Report) AllRationalRoots() []Rational {
	out := make([]Rational, 0, len(r.FormRoots)+len(r.RationalRoots))
	out = append(out, r.FormRoots...)
	out = append(out, r.RationalRoots...)
	sortRationals(out)
	return out
}

// ============================================================
// Tutorial
// ============================================================

// Tutorial owns one polynomial's walk-through: forms, RZT, Descartes,
// synthetic division, final answer. Stages unlock in order; any completed
// stage may be revisited. A Tutorial is not safe for concurrent use.
type Tutorial struct {
	opts      options
	forms     FormsResult
	rzt       *RZTResult
	signs     *SignCount
	session   *Session
	current   Stage
	previous  Stage
	completed map[Stage]bool
}

// NewTutorial validates raw and runs the forms stage. Input with characters
// outside digits, x, ^, parentheses and + - * / fails with ErrParse, as
// does anything that is not a polynomial in x. Degrees at or above the
// configured maximum fail with ErrDegreeLimit.
func NewTutorial(raw string, opts ...Option) (*Tutorial, error) {
	if err := Validate(raw); err != nil {
		return nil, errgo.Mask(err, IsParseFailure)
	}
	if err := CheckDegree(raw, opts...); err != nil {
		return nil, errgo.Mask(err, IsParseFailure, IsDegreeLimit, IsCoefficientRange)
	}
	o := newOptions(opts)
	forms, err := Analyze(raw, opts...)
	if err != nil {
		return nil, errgo.Mask(err, IsParseFailure, IsDegreeLimit, IsCoefficientRange)
	}
	t := &Tutorial{
		opts:      o,
		forms:     forms,
		current:   StageForms,
		previous:  StageForms,
		completed: map[Stage]bool{StageForms: true},
	}
	o.logger.Info("tutorial started",
		slog.String("polynomial", forms.Polynomial),
		slog.String("reduced", forms.Reduced))
	return t, nil
}

func (t *Tutorial) Forms() FormsResult { return t.forms }

// Stage is the stage being shown.
func (t *Tutorial) Stage() Stage { return t.current }

// Previous is the stage shown before the current one.
func (t *Tutorial) Previous() Stage { return t.previous }

func (t *Tutorial) Completed(s Stage) bool { return t.completed[s] }

// Reduced is the polynomial handed to the later stages.
func (t *Tutorial) Reduced() Vector { return t.forms.ReducedVector }

func (t *Tutorial) enter(s Stage) {
	if s != t.current {
		t.previous = t.current
	}
	t.current = s
	t.completed[s] = true
}

func (t *Tutorial) requireCompleted(s Stage) error {
	if !t.completed[s] {
		return errgo.WithCausef(nil, ErrStageLocked, "stage %s comes first", s)
	}
	return nil
}

// RationalZeroTest computes, once, the candidates for the reduced polynomial
// and moves to the RZT stage.
func (t *Tutorial) RationalZeroTest() (RZTResult, error) {
	if t.rzt == nil {
		res, err := RationalZeroTest(t.forms.ReducedVector)
		if err != nil {
			return RZTResult{}, errgo.Mask(err, IsCoefficientRange)
		}
		t.rzt = &res
	}
	t.enter(StageRZT)
	return *t.rzt, nil
}

// Descartes computes, once, the sign counts of the reduced polynomial and
// moves to the Descartes stage. The RZT stage must have been reached.
func (t *Tutorial) Descartes() (SignCount, error) {
	if err := t.requireCompleted(StageRZT); err != nil {
		return SignCount{}, errgo.Mask(err, IsSessionFailure)
	}
	if t.signs == nil {
		s := Descartes(t.forms.ReducedVector)
		t.signs = &s
	}
	t.enter(StageDescartes)
	return *t.signs, nil
}

// StartSynthetic builds a fresh session, discarding any progress from an
// earlier visit, and moves to the synthetic division stage.
func (t *Tutorial) StartSynthetic() (*Session, error) {
	if err := t.requireCompleted(StageDescartes); err != nil {
		return nil, errgo.Mask(err, IsSessionFailure)
	}
	t.session = NewSession(t.forms.ReducedVector, *t.rzt, *t.signs)
	t.enter(StageSynthetic)
	t.opts.logger.Debug("synthetic division started",
		slog.String("polynomial", ToExpression(t.forms.ReducedVector)),
		slog.Int("candidates", len(t.session.Remaining())),
		slog.Int("max_roots", t.session.MaxRoots()))
	return t.session, nil
}

// Session is the active synthetic division session, nil outside that stage.
func (t *Tutorial) Session() *Session { return t.session }

// Guess forwards to the active session.
func (t *Tutorial) Guess(r Rational) (Division, error) {
	if t.session == nil || t.current != StageSynthetic {
		return Division{}, errgo.WithCausef(nil, ErrStageLocked, "no synthetic division in progress")
	}
	d, err := t.session.Guess(r)
	if err != nil {
		return d, errgo.Mask(err, IsSessionFailure, IsCoefficientRange)
	}
	t.opts.logger.Debug("guess",
		slog.String("candidate", r.String()),
		slog.Bool("root", d.IsRoot()),
		slog.String("state", t.session.State().String()))
	return d, nil
}

// Final aggregates every stage once the session has ended.
func (t *Tutorial) Final() (Report, error) {
	if t.session == nil || !t.session.State().Terminal() {
		return Report{}, errgo.WithCausef(nil, ErrStageLocked, "synthetic division has not finished")
	}
	t.enter(StageFinal)
	return t.report(), nil
}

// Goto moves to a completed stage. Leaving synthetic division for an
// earlier stage discards the session; returning to it starts a new one.
func (t *Tutorial) Goto(s Stage) error {
	if err := t.requireCompleted(s); err != nil {
		return errgo.Mask(err, IsSessionFailure)
	}
	switch {
	case s == StageSynthetic:
		_, err := t.StartSynthetic()
		return err
	case s < StageSynthetic:
		t.session = nil
	case s == StageFinal && (t.session == nil || !t.session.State().Terminal()):
		return errgo.WithCausef(nil, ErrStageLocked, "synthetic division has not finished")
	}
	t.enter(s)
	return nil
}

// Next runs the stage after the current one.
func (t *Tutorial) Next() (Stage, error) {
	var err error
	switch t.current {
	case StageForms:
		_, err = t.RationalZeroTest()
	case StageRZT:
		_, err = t.Descartes()
	case StageDescartes:
		_, err = t.StartSynthetic()
	case StageSynthetic:
		_, err = t.Final()
	case StageFinal:
		err = errgo.WithCausef(nil, ErrStageLocked, "already at the final stage")
	}
	if err != nil {
		return t.current, errgo.Mask(err, errgo.Any)
	}
	return t.current, nil
}

// NoRoots reports that the input has nothing to find: the forms stage
// resolved nothing, and what is left either has no rational candidates or
// admits no real roots by Descartes' rule of signs, as with x^4+1.
func (t *Tutorial) NoRoots() bool {
	f := t.forms
	if len(f.FinalRoots) > 0 || f.HasForms() || f.HasFactors() || len(f.IrrationalOrComplex) > 0 {
		return false
	}
	if Descartes(f.ReducedVector).MaxRoots() <= 0 {
		return true
	}
	cands, err := CandidatesFor(f.ReducedVector)
	return err == nil && len(cands) == 0
}

func (t *Tutorial) report() Report {
	f := t.forms
	r := Report{
		Polynomial:          f.Polynomial,
		Constant:            f.Constant,
		Factors:             f.Factors,
		SpecialForms:        f.SpecialForms(),
		FormRoots:           f.FinalRoots,
		IrrationalOrComplex: f.IrrationalOrComplex,
	}
	r.IrrationalRoots = append(r.IrrationalRoots, f.QuadraticRoots...)
	s := t.session
	r.RationalRoots = s.RationalRoots()
	r.IrrationalRoots = append(r.IrrationalRoots, s.IrrationalRoots()...)

	cur := s.Current()
	if cur.Degree() > 0 {
		r.Remaining = ToExpression(cur)
		if cur.Degree() == 2 && s.State() != StateExhaustedRational {
			if roots, err := cas.QuadraticRootsOf(cur.Poly()); err == nil {
				r.RemainingRoots = roots[:]
			}
		}
	}

	switch {
	case t.NoRoots():
		r.Outcome = OutcomeNoRoots
	case s.State() == StateExhaustedRational:
		r.Outcome = OutcomeQuadraticFallback
	case s.State() == StateUndiscoverable:
		r.Outcome = OutcomeIrrationalExhaustion
	default:
		r.Outcome = OutcomeComplete
	}
	return r
}

// ============================================================
// Solve
// ============================================================

// Solve runs every stage without a learner, always guessing the first
// remaining candidate.
func Solve(raw string, opts ...Option) (Report, error) {
	t, err := NewTutorial(raw, opts...)
	if err != nil {
		return Report{}, errgo.Mask(err, errgo.Any)
	}
	if _, err := t.RationalZeroTest(); err != nil {
		return Report{}, errgo.Mask(err, errgo.Any)
	}
	if _, err := t.Descartes(); err != nil {
		return Report{}, errgo.Mask(err, errgo.Any)
	}
	s, err := t.StartSynthetic()
	if err != nil {
		return Report{}, errgo.Mask(err, errgo.Any)
	}
	for !s.State().Terminal() {
		next := s.Remaining()
		if _, err := t.Guess(next[0]); err != nil {
			return Report{}, errgo.Mask(err, errgo.Any)
		}
	}
	return t.Final()
}
