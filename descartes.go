package polyroots

// SignCount is the outcome of Descartes' rule of signs.
type SignCount struct {
	Vector            Vector `json:"vector"`
	Negated           Vector `json:"negated"`
	PosSignChanges    int    `json:"pos_sign_changes"`
	NegSignChanges    int    `json:"neg_sign_changes"`
	PossiblePositives []int  `json:"possible_positives"`
	PossibleNegatives []int  `json:"possible_negatives"`
	// ZeroRoots is the multiplicity of x = 0, which the rule never counts.
	ZeroRoots int `json:"zero_roots"`
}

// Descartes counts sign changes in f(x) and f(-x) and lists the possible
// numbers of positive and negative real roots.
func Descartes(v Vector) SignCount {
	neg := v.Negated()
	s := SignCount{
		Vector:         v,
		Negated:        neg,
		PosSignChanges: SignChanges(v),
		NegSignChanges: SignChanges(neg),
	}
	s.PossiblePositives = possibleCounts(s.PosSignChanges)
	s.PossibleNegatives = possibleCounts(s.NegSignChanges)
	if !v.IsZero() {
		for i := len(v) - 1; i >= 0 && v[i].IsZero(); i-- {
			s.ZeroRoots++
		}
	}
	return s
}

// SignChanges counts sign flips between consecutive non-zero coefficients.
func SignChanges(v Vector) int {
	n, prev := 0, 0
	for _, c := range v {
		sg := c.Sign()
		if sg == 0 {
			continue
		}
		if prev != 0 && sg != prev {
			n++
		}
		prev = sg
	}
	return n
}

// possibleCounts returns n, n-2, ... down to 0 or 1.
func possibleCounts(n int) []int {
	out := []int{n}
	for k := n - 2; k >= 0; k -= 2 {
		out = append(out, k)
	}
	return out
}

// MaxRoots bounds the number of real roots a session can find: the largest
// positive and negative counts plus the zero roots, capped at the degree.
func (s SignCount) MaxRoots() int {
	if len(s.PossiblePositives) == 0 || len(s.PossibleNegatives) == 0 {
		return 0
	}
	m := s.PossiblePositives[0] + s.PossibleNegatives[0] + s.ZeroRoots
	if d := s.Vector.Degree(); m > d {
		m = d
	}
	return m
}

// NegatedExpression renders f(-x).
func (s SignCount) NegatedExpression() string { return ToExpression(s.Negated) }
