package wgbasis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/wgfem/mesh"
	"github.com/notargets/wgfem/poly"
	"github.com/notargets/wgfem/types"
	"github.com/notargets/wgfem/weakgrad"
)

type countingSolver struct {
	calls          int
	sideMonsBySide [][]poly.Monomial
	err            error
	short          bool
}

func (s *countingSolver) WGradsOnOShape(intMons []poly.Monomial, sideMonsBySide [][]poly.Monomial, os types.OShape,
	m mesh.Mesh) (intWGs []weakgrad.WeakGrad, sideWGs [][]weakgrad.WeakGrad, err error) {
	s.calls++
	s.sideMonsBySide = sideMonsBySide
	if s.err != nil {
		return nil, nil, s.err
	}
	intWGs = make([]weakgrad.WeakGrad, len(intMons))
	if s.short {
		intWGs = intWGs[:0]
	}
	sideWGs = make([][]weakgrad.WeakGrad, len(sideMonsBySide))
	for sf := range sideMonsBySide {
		sideWGs[sf] = make([]weakgrad.WeakGrad, len(sideMonsBySide[sf]))
	}
	return
}

// Unit square elements, 2 x 3 of them
func newTestBasis(t *testing.T, solver WeakGradSolver) *WgBasis {
	rm, err := mesh.NewRectMesh([]float64{0, 0}, []float64{2, 3}, []types.MeshCoord{2, 3}, poly.One(2))
	require.NoError(t, err)
	wgb, err := New(rm, poly.NewMaxMonDeg(1), poly.NewMaxMonDeg(1), solver)
	require.NoError(t, err)
	return wgb
}

func TestWgBasisCounts(t *testing.T) {
	solver := &countingSolver{}
	wgb := newTestBasis(t, solver)
	assert.Equal(t, 1, solver.calls)
	assert.Equal(t, 3, wgb.MonsPerFEInt())
	assert.Equal(t, 2, wgb.MonsPerFESide())
	assert.Equal(t, 6*3, wgb.NumIntEls())
	assert.Equal(t, 6*3+7*2, wgb.TotalEls())
	assert.Equal(t, types.BasisElNum(18), wgb.FirstNBSideBelNum())
	assert.Equal(t, poly.NewMaxMonDeg(1), wgb.IntPolysDegLim())
	assert.Equal(t, poly.NewMaxMonDeg(1), wgb.SidePolysDegLim())
	// Per element non-boundary sides are 2, 2, 3, 3, 2, 2
	assert.Equal(t, 6*9+4*(12*2+4*4)+2*(12*3+4*9), wgb.UBEstimateNumBelBelCommonSupportFETriplets())

	t.Run("3D", func(t *testing.T) {
		rm, err := mesh.NewRectMesh([]float64{0, 0, 0}, []float64{1, 1, 1}, []types.MeshCoord{3, 4, 2}, poly.One(3))
		require.NoError(t, err)
		wgb, err := New(rm, poly.NewMaxMonFactorDeg(1), poly.NewMaxMonDeg(2), &countingSolver{})
		require.NoError(t, err)
		assert.Equal(t, 8, wgb.MonsPerFEInt())
		assert.Equal(t, 6, wgb.MonsPerFESide())
		for sf := types.SideFace(0); sf < 6; sf++ {
			assert.Len(t, wgb.SideMonsForOShapeSide(0, sf), 6)
		}
		assert.Equal(t, 24*8+46*6, wgb.TotalEls())
	})
}

func TestWgBasisPartition(t *testing.T) {
	wgb := newTestBasis(t, &countingSolver{})
	for i := types.BasisElNum(0); int(i) < wgb.TotalEls(); i++ {
		assert.True(t, wgb.IsIntSupported(i) != wgb.IsSideSupported(i), "basis element %d", i)
		assert.Equal(t, int(i) < wgb.NumIntEls(), wgb.IsIntSupported(i))
	}
	last := types.BasisElNum(wgb.TotalEls())
	assert.False(t, wgb.IsIntSupported(last))
	assert.False(t, wgb.IsSideSupported(last))

	_, err := wgb.BasisElNum(wgb.TotalEls())
	assert.True(t, errors.Is(err, types.ErrOutOfRange))
	i, err := wgb.BasisElNum(wgb.TotalEls() - 1)
	assert.NoError(t, err)
	assert.True(t, wgb.IsSideSupported(i))

	assert.Panics(t, func() { wgb.SupportIntFENum(18) })
	assert.Panics(t, func() { wgb.IntRelMonNum(-1) })
	assert.Panics(t, func() { wgb.SupportNBSideNum(17) })
	assert.Panics(t, func() { wgb.SideRelMonNum(last) })

	// Element numbers from out of range faces or monomials
	numFEs := types.FENum(wgb.Mesh().NumFEs())
	greater0 := types.GreaterSideFacePerpToAxis(0)
	assert.Panics(t, func() { wgb.IntMonElNum(0, 3) })
	assert.Panics(t, func() { wgb.IntMonElNum(0, -1) })
	assert.Panics(t, func() { wgb.IntMonElNum(numFEs, 0) })
	assert.Panics(t, func() { wgb.SideMonElNum(0, greater0, 2) })
	assert.Panics(t, func() { wgb.SideMonElNum(numFEs, greater0, 0) })
	assert.Panics(t, func() { wgb.FEIntPoly(numFEs, make([]float64, wgb.TotalEls())) })
	assert.Panics(t, func() { wgb.FESidePoly(numFEs, greater0, make([]float64, wgb.TotalEls())) })
	assert.NotPanics(t, func() { wgb.SideMonElNum(0, greater0, 1) })
}

func TestWgBasisOrdering(t *testing.T) {
	wgb := newTestBasis(t, &countingSolver{})
	m := wgb.Mesh()
	t.Run("interior supported", func(t *testing.T) {
		next := types.BasisElNum(0)
		for fe := types.FENum(0); int(fe) < m.NumFEs(); fe++ {
			for monn := types.FaceMonNum(0); int(monn) < wgb.MonsPerFEInt(); monn++ {
				i := wgb.IntMonElNum(fe, monn)
				assert.Equal(t, next, i)
				next++
				assert.Equal(t, fe, wgb.SupportIntFENum(i))
				assert.Equal(t, monn, wgb.IntRelMonNum(i))
				assert.Equal(t, wgb.RefIntMons()[monn], wgb.IntMon(i))
			}
		}
	})
	t.Run("side supported", func(t *testing.T) {
		next := wgb.FirstNBSideBelNum()
		for n := types.NBSideNum(0); int(n) < m.NumNBSides(); n++ {
			inc := m.FEInclusionsOfNBSide(n)
			for monn := types.FaceMonNum(0); int(monn) < wgb.MonsPerFESide(); monn++ {
				i := wgb.SideMonElNum(inc.FE1, inc.SideFaceInFE1, monn)
				assert.Equal(t, next, i)
				next++
				// Both elements sharing the side agree on its basis elements
				assert.Equal(t, i, wgb.SideMonElNum(inc.FE2, inc.SideFaceInFE2, monn))
				assert.Equal(t, n, wgb.SupportNBSideNum(i))
				assert.Equal(t, monn, wgb.SideRelMonNum(i))
				assert.Equal(t, inc, wgb.FEInclusionsOfSideSupport(i))
				assert.Equal(t, wgb.SideMonsForFESide(inc.FE1, inc.SideFaceInFE1)[monn], wgb.SideMon(i))
			}
		}
		assert.Equal(t, types.BasisElNum(wgb.TotalEls()), next)
	})
	t.Run("monomial order", func(t *testing.T) {
		assert.Equal(t, []poly.Monomial{poly.NewMon(0, 0), poly.NewMon(0, 1), poly.NewMon(1, 0)}, wgb.RefIntMons())
		assert.Equal(t, poly.Monomial(poly.NewMon(1, 0)), wgb.IntMon(wgb.IntMonElNum(4, 2)))
		// Sides perpendicular to y start at side number 3 and have dependent dimension 1
		assert.Equal(t, poly.Monomial(poly.NewMon(1, 0)), wgb.SideMon(wgb.FirstNBSideBelNum()+3*2+1))
		assert.Equal(t, poly.Monomial(poly.NewMon(0, 1)), wgb.SideMon(wgb.FirstNBSideBelNum()+1))
	})
}

func TestWgBasisSideMonomials(t *testing.T) {
	solver := &countingSolver{}
	wgb := newTestBasis(t, solver)
	require.Len(t, solver.sideMonsBySide, 4)
	for sf := types.SideFace(0); sf < 4; sf++ {
		mons := wgb.SideMonsForOShapeSide(0, sf)
		assert.Equal(t, mons, solver.sideMonsBySide[sf])
		assert.Equal(t, mons, wgb.SideMonsForFESide(5, sf))
		for _, mon := range mons {
			assert.Equal(t, poly.Deg(0), mon.Exp(sf.PerpAxis()), "%s on %s", mon, sf)
		}
	}
}

func TestWgBasisRestrictionPolys(t *testing.T) {
	wgb := newTestBasis(t, &countingSolver{})
	coefs := make([]float64, wgb.TotalEls())
	for i := range coefs {
		coefs[i] = float64(i)
	}
	p := wgb.FEIntPoly(2, coefs)
	assert.Equal(t, []float64{6, 7, 8}, p.Coefs)
	assert.Equal(t, wgb.RefIntMons(), p.Mons)
	// Views share storage with the coefficient vector
	coefs[7] = -1
	assert.Equal(t, -1., p.Coefs[1])

	// The greater x side of fe 2 is non-boundary side 1
	sp := wgb.FESidePoly(2, 1, coefs)
	assert.Equal(t, []float64{20, 21}, sp.Coefs)
	assert.Equal(t, wgb.SideMonsForFESide(2, 1), sp.Mons)
	assert.Equal(t, sp.Coefs, wgb.FESidePoly(3, 0, coefs).Coefs)
	assert.Panics(t, func() { wgb.FESidePoly(2, 0, coefs) })
}

func TestWgBasisInnerProds(t *testing.T) {
	wgb := newTestBasis(t, &countingSolver{})
	// Interior monomials 1, y, x on the unit square
	g := wgb.IntMonsInnerProds(0)
	r, c := g.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	assert.InDelta(t, 1., g.At(0, 0), 1e-14)
	assert.InDelta(t, 1./3, g.At(1, 1), 1e-14)
	assert.InDelta(t, 1./4, g.At(1, 2), 1e-14)
	assert.InDelta(t, 1./4, g.At(2, 1), 1e-14)
	// Side monomials 1, x on the lesser y side
	sg := wgb.SideMonsInnerProds(0, 2)
	assert.InDelta(t, 1./2, sg.At(0, 1), 1e-14)
	assert.InDelta(t, 1./3, sg.At(1, 1), 1e-14)
}

func TestWgBasisSolverErrors(t *testing.T) {
	rm, err := mesh.NewRectMesh([]float64{0, 0}, []float64{1, 1}, []types.MeshCoord{2, 2}, poly.One(2))
	require.NoError(t, err)
	lim := poly.NewMaxMonDeg(1)
	failure := errors.New("no convergence")
	wgb, err := New(rm, lim, lim, &countingSolver{err: failure})
	assert.Nil(t, wgb)
	assert.True(t, errors.Is(err, failure))

	wgb, err = New(rm, lim, lim, &countingSolver{short: true})
	assert.Nil(t, wgb)
	assert.Error(t, err)

	_, err = New(rm, lim, lim, nil)
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
	_, err = New(nil, lim, lim, &countingSolver{})
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
}

func TestWgBasisWithWeakGradSolver(t *testing.T) {
	rm, err := mesh.NewRectMesh([]float64{0, 0}, []float64{1, 1}, []types.MeshCoord{2, 2}, poly.One(2))
	require.NoError(t, err)
	lim := poly.NewMaxMonDeg(1)
	solver, err := weakgrad.NewSolver(lim)
	require.NoError(t, err)
	wgb, err := New(rm, lim, lim, solver)
	require.NoError(t, err)
	// The constant function is one on the interior and every side, its weak gradient is zero
	x := []float64{0.2, 0.3}
	sum := wgb.WGradIntMon(0, 0).Value(x)
	for sf := types.SideFace(0); sf < 4; sf++ {
		require.True(t, wgb.SideMonsForOShapeSide(0, sf)[0].TotalDeg() == 0)
		v := wgb.WGradSideMon(0, 0, sf).Value(x)
		for c := range sum {
			sum[c] += v[c]
		}
	}
	assert.InDeltaSlice(t, []float64{0, 0}, sum, 1e-10)
	// A side shape function has a weak gradient along the side normal only
	assert.InDelta(t, 0., wgb.WGradSideMon(0, 0, 3).Value(x)[0], 1e-12)
	assert.Greater(t, wgb.WGradSideMon(0, 0, 3).Value(x)[1], 0.)
}
