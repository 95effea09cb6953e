package poly

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/wgfem/types"
)

func exps(m Monomial) (e []Deg) {
	for r := 0; r < m.DomainDim(); r++ {
		e = append(e, m.Exp(types.Dim(r)))
	}
	return
}

func TestMonsWithDegLimAsc(t *testing.T) {
	{ // Total degree, lower dimension exponents more significant: x^0 y^2 before x^1 y^1
		mons := One(2).MonsWithDegLimAsc(NewMaxMonDeg(2))
		var got [][]Deg
		for _, m := range mons {
			got = append(got, exps(m))
		}
		assert.Equal(t, [][]Deg{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {2, 0}}, got)
	}
	{ // Per factor degree
		mons := One(2).MonsWithDegLimAsc(NewMaxMonFactorDeg(1))
		var got [][]Deg
		for _, m := range mons {
			got = append(got, exps(m))
		}
		assert.Equal(t, [][]Deg{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, got)
	}
	{ // Counts: C(k+d,d) for total degree, (k+1)^d for factor degree
		assert.Equal(t, 20, len(One(3).MonsWithDegLimAsc(NewMaxMonDeg(3))))
		assert.Equal(t, 27, len(One(3).MonsWithDegLimAsc(NewMaxMonFactorDeg(2))))
		assert.Equal(t, 1, len(One(3).MonsWithDegLimAsc(NewMaxMonDeg(0))))
		assert.Equal(t, 4, len(One(1).MonsWithDegLimAsc(NewMaxMonDeg(3))))
	}
	{ // Every enumerated monomial satisfies its limit
		for _, lim := range []DegLim{NewMaxMonDeg(3), NewMaxMonFactorDeg(2)} {
			for _, m := range One(3).MonsWithDegLimAsc(lim) {
				assert.True(t, lim.Admits(m), "%s %s", lim, m)
			}
		}
	}
}

func TestMonomialAlgebra(t *testing.T) {
	m := NewMon(2, 0, 1)
	assert.Equal(t, 3, m.DomainDim())
	assert.Equal(t, Deg(3), m.TotalDeg())
	assert.InDelta(t, 4.*5., m.Value([]float64{2, 7, 5}), 1e-15)
	assert.Equal(t, 1., One(3).Value([]float64{2, 7, 5}))
	assert.Panics(t, func() { m.Value([]float64{1, 2}) })
	assert.Panics(t, func() { NewMon(1, -1) })

	c, dm := m.Partial(0)
	assert.Equal(t, 2., c)
	assert.True(t, NewMon(1, 0, 1).Equal(dm))
	c, dm = m.Partial(1)
	assert.Equal(t, 0., c)
	assert.True(t, One(3).Equal(dm))
	// Partial must not modify the receiver
	assert.Equal(t, []Deg{2, 0, 1}, exps(m))
	assert.Equal(t, "x0^2 x1^0 x2^1", m.String())
}

func TestDegLim(t *testing.T) {
	lim, err := ParseDegLim("MaxMonDeg", 2)
	require.NoError(t, err)
	assert.Equal(t, NewMaxMonDeg(2), lim)
	lim, err = ParseDegLim(" factor ", 1)
	require.NoError(t, err)
	assert.Equal(t, NewMaxMonFactorDeg(1), lim)
	assert.Equal(t, "MaxMonFactorDeg(1)", lim.String())
	_, err = ParseDegLim("quadratic", 1)
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
	_, err = ParseDegLim("total", -1)
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
}

func TestPolynomial(t *testing.T) {
	mons := One(2).MonsWithDegLimAsc(NewMaxMonDeg(1)) // 1, y, x
	coefs := []float64{1, 2, 3}
	p := NewPolynomial(coefs, mons)
	assert.InDelta(t, 1+2*5.+3*7., p.Value([]float64{7, 5}), 1e-14)
	// Views share storage with the coefficient slice
	coefs[0] = 0
	assert.InDelta(t, 2*5.+3*7., p.Value([]float64{7, 5}), 1e-14)
	assert.Panics(t, func() { NewPolynomial([]float64{1}, mons) })

	q := VectorMonomial{Comp: 1, Mon: NewMon(1, 2)}
	assert.Equal(t, 0., q.Component(0, []float64{2, 3}))
	assert.Equal(t, 18., q.Component(1, []float64{2, 3}))
	c, dm := q.Divergence()
	assert.Equal(t, 2., c)
	assert.True(t, NewMon(1, 1).Equal(dm))

	vmons := VectorMonomials(mons, 2)
	assert.Equal(t, 6, len(vmons))
	assert.Equal(t, types.Dim(0), vmons[2].Comp)
	assert.Equal(t, types.Dim(1), vmons[3].Comp)
}
