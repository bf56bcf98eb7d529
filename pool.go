package polyroots

import (
	"github.com/petar/GoLLRB/llrb"
)

// ratItem orders rationals by value inside the tree.
type ratItem struct{ r Rational }

func (a ratItem) Less(than llrb.Item) bool { return a.r.Cmp(than.(ratItem).r) < 0 }

// CandidatePool is an ordered set of rationals keyed by value, so 2/4 and
// 1/2 are the same member. It backs RZT deduplication and the remaining and
// rejected pools of a synthetic division session.
type CandidatePool struct {
	tree *llrb.LLRB
}

// NewCandidatePool returns a pool holding rs, duplicates dropped.
func NewCandidatePool(rs ...Rational) *CandidatePool {
	p := &CandidatePool{tree: llrb.New()}
	for _, r := range rs {
		p.Insert(r)
	}
	return p
}

// Insert adds r and reports whether it was new.
func (p *CandidatePool) Insert(r Rational) bool {
	if p.tree.Has(ratItem{r}) {
		return false
	}
	p.tree.ReplaceOrInsert(ratItem{r})
	return true
}

// Remove deletes r and reports whether it was present.
func (p *CandidatePool) Remove(r Rational) bool {
	return p.tree.Delete(ratItem{r}) != nil
}

func (p *CandidatePool) Has(r Rational) bool { return p.tree.Has(ratItem{r}) }

func (p *CandidatePool) Len() int { return p.tree.Len() }

// Ascending lists the members from smallest to largest.
func (p *CandidatePool) Ascending() []Rational {
	if p.tree.Len() == 0 {
		return nil
	}
	out := make([]Rational, 0, p.tree.Len())
	p.tree.AscendGreaterOrEqual(p.tree.Min(), func(i llrb.Item) bool {
		out = append(out, i.(ratItem).r)
		return true
	})
	return out
}

// Ordered lists non-negative members ascending, then negative members by
// increasing magnitude: the order candidates are shown to a learner.
func (p *CandidatePool) Ordered() []Rational {
	all := p.Ascending()
	split := 0
	for split < len(all) && all[split].Sign() < 0 {
		split++
	}
	out := make([]Rational, 0, len(all))
	out = append(out, all[split:]...)
	for i := split - 1; i >= 0; i-- {
		out = append(out, all[i])
	}
	return out
}

// Without returns a new pool holding the members of p that are not in q.
func (p *CandidatePool) Without(q *CandidatePool) *CandidatePool {
	out := NewCandidatePool()
	for _, r := range p.Ascending() {
		if q == nil || !q.Has(r) {
			out.Insert(r)
		}
	}
	return out
}
