package poly

import (
	"fmt"
	"strings"

	"github.com/notargets/wgfem/types"
)

// Deg is a polynomial degree or monomial exponent.
type Deg int

/*
Monomial is what the mesh and the basis need from a monomial implementation. A monomial is
defined on a fixed number of domain dimensions and is a product of non-negative integer powers
of the coordinate variables, with unit coefficient.
*/
type Monomial interface {
	DomainDim() int
	Exp(r types.Dim) Deg
	TotalDeg() Deg
	Value(x []float64) float64
	// Partial returns the partial derivative along axis r as a coefficient and a monomial.
	// The coefficient is zero when the monomial is constant in r.
	Partial(r types.Dim) (coef float64, dm Monomial)
	// MonsWithDegLimAsc returns all monomials of this monomial's domain satisfying lim, in
	// ascending order of exponent sequence with lower dimension exponents more significant.
	MonsWithDegLimAsc(lim DegLim) []Monomial
	String() string
}

// Mon is an exponent vector monomial.
type Mon struct {
	exps []Deg
}

func NewMon(exps ...Deg) Mon {
	for r, e := range exps {
		if e < 0 {
			panic(fmt.Errorf("negative exponent %d for dimension %d", e, r))
		}
	}
	m := Mon{exps: make([]Deg, len(exps))}
	copy(m.exps, exps)
	return m
}

// One returns the constant monomial on a domain of dimension d.
func One(d int) Mon {
	return Mon{exps: make([]Deg, d)}
}

func (m Mon) DomainDim() int { return len(m.exps) }

func (m Mon) Exp(r types.Dim) Deg { return m.exps[r] }

func (m Mon) TotalDeg() (deg Deg) {
	for _, e := range m.exps {
		deg += e
	}
	return
}

func (m Mon) Value(x []float64) float64 {
	if len(x) != len(m.exps) {
		panic(fmt.Errorf("monomial of dimension %d evaluated at point of dimension %d",
			len(m.exps), len(x)))
	}
	var (
		val = 1.
	)
	for r, e := range m.exps {
		for i := Deg(0); i < e; i++ {
			val *= x[r]
		}
	}
	return val
}

func (m Mon) Partial(r types.Dim) (coef float64, dm Monomial) {
	if m.exps[r] == 0 {
		return 0, One(len(m.exps))
	}
	d := NewMon(m.exps...)
	d.exps[r]--
	return float64(m.exps[r]), d
}

func (m Mon) MonsWithDegLimAsc(lim DegLim) (mons []Monomial) {
	var (
		d    = len(m.exps)
		exps = make([]Deg, d)
	)
	var fill func(r int, budget Deg)
	fill = func(r int, budget Deg) {
		if r == d {
			mons = append(mons, NewMon(exps...))
			return
		}
		maxE := lim.K
		if lim.Kind == MaxMonDeg {
			maxE = budget
		}
		for e := Deg(0); e <= maxE; e++ {
			exps[r] = e
			fill(r+1, budget-e)
		}
		exps[r] = 0
	}
	fill(0, lim.K)
	return
}

// Equal compares exponent vectors.
func (m Mon) Equal(o Monomial) bool {
	if m.DomainDim() != o.DomainDim() {
		return false
	}
	for r := range m.exps {
		if m.exps[r] != o.Exp(types.Dim(r)) {
			return false
		}
	}
	return true
}

func (m Mon) String() string {
	var b strings.Builder
	for r, e := range m.exps {
		if r > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "x%d^%d", r, e)
	}
	return b.String()
}
