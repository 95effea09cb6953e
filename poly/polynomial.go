package poly

import (
	"fmt"

	"github.com/notargets/wgfem/types"
)

/*
Polynomial pairs a coefficient sequence with a monomial sequence of the same length. Both
slices are borrowed, so a Polynomial built over a section of a global solution vector is a
view of that vector and not a copy.
*/
type Polynomial struct {
	Coefs []float64
	Mons  []Monomial
}

func NewPolynomial(coefs []float64, mons []Monomial) Polynomial {
	if len(coefs) != len(mons) {
		panic(fmt.Errorf("polynomial needs one coefficient per monomial, have %d coefficients, %d monomials",
			len(coefs), len(mons)))
	}
	return Polynomial{Coefs: coefs, Mons: mons}
}

func (p Polynomial) Value(x []float64) (val float64) {
	for i, m := range p.Mons {
		val += p.Coefs[i] * m.Value(x)
	}
	return
}

// VectorMonomial is a vector valued function with a monomial in component Comp and zeros elsewhere.
type VectorMonomial struct {
	Comp types.Dim
	Mon  Monomial
}

// Component evaluates component r of the vector monomial at x.
func (q VectorMonomial) Component(r types.Dim, x []float64) float64 {
	if r != q.Comp {
		return 0
	}
	return q.Mon.Value(x)
}

// Divergence returns the divergence of the vector monomial as a coefficient and a monomial.
func (q VectorMonomial) Divergence() (coef float64, dm Monomial) {
	return q.Mon.Partial(q.Comp)
}

func (q VectorMonomial) String() string {
	return fmt.Sprintf("(%s)e%d", q.Mon, q.Comp)
}

// VectorMonomials returns the vector monomials with each of the monomials in every one of d
// components, ordered by component first.
func VectorMonomials(mons []Monomial, d int) (vmons []VectorMonomial) {
	vmons = make([]VectorMonomial, 0, d*len(mons))
	for r := 0; r < d; r++ {
		for _, m := range mons {
			vmons = append(vmons, VectorMonomial{Comp: types.Dim(r), Mon: m})
		}
	}
	return
}
