package polyroots

import (
	"gopkg.in/errgo.v1"

	"github.com/njchilds90/polyroots/cas"
)

// ============================================================
// Synthetic division
// ============================================================

// Division is one synthetic division tableau. Top is the dividend, Middle
// the products carried down, Bottom the quotient coefficients.
type Division struct {
	Root      Rational `json:"root"`
	Top       Vector   `json:"top"`
	Middle    Vector   `json:"middle"`
	Bottom    Vector   `json:"bottom"`
	Remainder Rational `json:"remainder"`
}

// Divide divides v by (x - r).
func Divide(v Vector, r Rational) Division {
	d := Division{Root: r, Top: v}
	if len(v) == 0 {
		return d
	}
	n := len(v) - 1
	bottom := make(Vector, n+1)
	d.Middle = make(Vector, n)
	bottom[0] = v[0]
	for i := 1; i <= n; i++ {
		d.Middle[i-1] = bottom[i-1].Mul(r)
		bottom[i] = v[i].Add(d.Middle[i-1])
	}
	d.Bottom = bottom[:n]
	d.Remainder = bottom[n]
	return d
}

// IsRoot reports a zero remainder.
func (d Division) IsRoot() bool { return d.Remainder.IsZero() }

// Quotient is the polynomial left after dividing out the root.
func (d Division) Quotient() Vector { return d.Bottom }

// ============================================================
// Session state machine
// ============================================================

// State is the state of a synthetic division session.
type State int

const (
	StateAwaitingGuess State = iota
	StateRootConfirmed
	// StateExhaustedRational: no rational candidates remain and the
	// quadratic left over was solved exactly.
	StateExhaustedRational
	StateComplete
	// StateUndiscoverable: no rational candidates remain and the polynomial
	// left over has degree above two.
	StateUndiscoverable
)

func (s State) String() string {
	switch s {
	case StateAwaitingGuess:
		return "awaiting_guess"
	case StateRootConfirmed:
		return "root_confirmed"
	case StateExhaustedRational:
		return "exhausted_rational"
	case StateComplete:
		return "complete"
	case StateUndiscoverable:
		return "undiscoverable"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Terminal reports whether no further guesses are accepted.
func (s State) Terminal() bool {
	return s == StateExhaustedRational || s == StateComplete || s == StateUndiscoverable
}

// Session walks a learner through guessing candidate roots. Each confirmed
// root replaces the working polynomial with the quotient; a rejected guess
// leaves it untouched. A Session is not safe for concurrent use.
type Session struct {
	state      State
	current    Vector
	remaining  *CandidatePool
	nonRoots   *CandidatePool
	guessed    []Rational
	rational   []Rational
	irrational []cas.Surd
	posBudget  int
	negBudget  int
	maxRoots   int
	steps      []Division
}

// NewSession starts a session on v with the RZT candidates and sign budget
// computed for it.
func NewSession(v Vector, rzt RZTResult, signs SignCount) *Session {
	s := &Session{
		current:   v.Trim(),
		remaining: NewCandidatePool(rzt.AllReduced.All()...),
		nonRoots:  NewCandidatePool(),
		maxRoots:  signs.MaxRoots(),
	}
	if len(signs.PossiblePositives) > 0 {
		s.posBudget = signs.PossiblePositives[0]
	}
	if len(signs.PossibleNegatives) > 0 {
		s.negBudget = signs.PossibleNegatives[0]
	}
	s.evaluate()
	return s
}

// Guess divides the working polynomial by (x - r). r must still be in the
// remaining pool.
func (s *Session) Guess(r Rational) (Division, error) {
	if s.state.Terminal() {
		return Division{}, errgo.WithCausef(nil, ErrSessionFinished, "session is %s", s.state)
	}
	if !s.remaining.Has(r) {
		return Division{}, errgo.WithCausef(nil, ErrUnknownCandidate, "%s is not a remaining candidate", r)
	}
	d := Divide(s.current, r)
	if !d.IsRoot() {
		s.steps = append(s.steps, d)
		s.guessed = append(s.guessed, r)
		s.remaining.Remove(r)
		s.nonRoots.Insert(r)
		s.state = StateAwaitingGuess
		s.evaluate()
		return d, nil
	}

	// Computed before any state changes so a failure leaves the session intact.
	fresh, err := CandidatesFor(d.Quotient())
	if err != nil {
		return d, errgo.Mask(err, IsCoefficientRange)
	}
	s.steps = append(s.steps, d)
	s.guessed = append(s.guessed, r)
	s.rational = append(s.rational, r)
	switch {
	case r.Sign() > 0 && s.posBudget > 0:
		s.posBudget--
	case r.Sign() < 0 && s.negBudget > 0:
		s.negBudget--
	}
	s.current = d.Quotient()
	s.remaining = NewCandidatePool(fresh...).Without(s.nonRoots)
	s.state = StateRootConfirmed
	s.evaluate()
	return d, nil
}

func (s *Session) evaluate() {
	switch {
	case len(s.rational) >= s.maxRoots || s.current.Degree() == 0:
		s.state = StateComplete
	case s.remaining.Len() > 0:
		return
	case s.current.Degree() == 1:
		root := s.current[1].Neg().Quo(s.current[0])
		s.rational = append(s.rational, root)
		s.current = Vector{s.current[0]}
		s.state = StateComplete
	case s.current.Degree() == 2:
		roots, err := cas.QuadraticRootsOf(s.current.Poly())
		if err == nil {
			s.irrational = append(s.irrational, roots[0], roots[1])
		}
		s.state = StateExhaustedRational
	default:
		s.state = StateUndiscoverable
	}
}

func (s *Session) State() State { return s.state }

// Current is the working polynomial.
func (s *Session) Current() Vector { return append(Vector(nil), s.current...) }

// Remaining lists the candidates not yet tried, in display order.
func (s *Session) Remaining() []Rational { return s.remaining.Ordered() }

// Guessed lists every tried candidate, in order.
func (s *Session) Guessed() []Rational { return append([]Rational(nil), s.guessed...) }

// RationalRoots lists the confirmed roots, in order found.
func (s *Session) RationalRoots() []Rational { return append([]Rational(nil), s.rational...) }

// IrrationalRoots holds the exact quadratic roots found after the rational
// candidates ran out.
func (s *Session) IrrationalRoots() []cas.Surd { return append([]cas.Surd(nil), s.irrational...) }

func (s *Session) MaxRoots() int { return s.maxRoots }

// Budget is the remaining Descartes allowance of positive and negative roots.
func (s *Session) Budget() (pos, neg int) { return s.posBudget, s.negBudget }

// Steps lists every division performed, in order.
func (s *Session) Steps() []Division { return append([]Division(nil), s.steps...) }

// SessionSnapshot is an immutable copy of a session for display layers.
type SessionSnapshot struct {
	State           State      `json:"state"`
	Current         Vector     `json:"current"`
	CurrentExpr     string     `json:"current_expr"`
	Remaining       []Rational `json:"remaining"`
	Guessed         []Rational `json:"guessed"`
	RationalRoots   []Rational `json:"rational_roots"`
	IrrationalRoots []cas.Surd `json:"irrational_roots,omitempty"`
	PositiveBudget  int        `json:"positive_budget"`
	NegativeBudget  int        `json:"negative_budget"`
	MaxRoots        int        `json:"max_roots"`
	Steps           []Division `json:"steps"`
}

func (s *Session) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		State:           s.state,
		Current:         s.Current(),
		CurrentExpr:     ToExpression(s.current),
		Remaining:       s.Remaining(),
		Guessed:         s.Guessed(),
		RationalRoots:   s.RationalRoots(),
		IrrationalRoots: s.IrrationalRoots(),
		PositiveBudget:  s.posBudget,
		NegativeBudget:  s.negBudget,
		MaxRoots:        s.maxRoots,
		Steps:           s.Steps(),
	}
}
