package weakgrad

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/wgfem/mesh"
	"github.com/notargets/wgfem/poly"
	"github.com/notargets/wgfem/types"
)

type weightedWGrad struct {
	w  float64
	wg WeakGrad
}

func sumAt(x []float64, terms ...weightedWGrad) (v []float64) {
	for _, t := range terms {
		tv := t.wg.Value(x)
		if v == nil {
			v = make([]float64, len(tv))
		}
		for c := range tv {
			v[c] += t.w * tv[c]
		}
	}
	return
}

var interiorPoints = [][]float64{{0.1, 0.2}, {0.4, 0.05}, {0.25, 0.125}, {0, 0}}

func TestNewSolver(t *testing.T) {
	_, err := NewSolver(poly.NewMaxMonDeg(0))
	assert.True(t, errors.Is(err, types.ErrInvalidConfig))
	s, err := NewSolver(poly.NewMaxMonFactorDeg(3))
	require.NoError(t, err)
	assert.Equal(t, poly.NewMaxMonDeg(2), s.DegLim())
}

func TestWeakGradsReproduceGradients(t *testing.T) {
	// Elements are 0.5 x 0.25
	rm, err := mesh.NewRectMesh([]float64{0, 0}, []float64{1, 1}, []types.MeshCoord{2, 4}, poly.One(2))
	require.NoError(t, err)
	h := rm.FEDims()
	var (
		one = poly.Monomial(poly.One(2))
		x0  = poly.Monomial(poly.NewMon(1, 0))
		x1  = poly.Monomial(poly.NewMon(0, 1))
	)
	t.Run("linear", func(t *testing.T) {
		s, err := NewSolver(poly.NewMaxMonDeg(1))
		require.NoError(t, err)
		// v = x0, with traces 0, h0, x0, x0 on the four side faces
		intWGs, sideWGs, err := s.WGradsOnOShape([]poly.Monomial{x0},
			[][]poly.Monomial{{one}, {one}, {x0}, {x0}}, 0, rm)
		require.NoError(t, err)
		require.Len(t, intWGs, 1)
		require.Len(t, sideWGs, 4)
		for _, x := range interiorPoints {
			v := sumAt(x, weightedWGrad{1, intWGs[0]}, weightedWGrad{h[0], sideWGs[1][0]},
				weightedWGrad{1, sideWGs[2][0]}, weightedWGrad{1, sideWGs[3][0]})
			assert.InDeltaSlice(t, []float64{1, 0}, v, 1e-9)
		}
		// The trace on the lesser x side is zero, the shape function there contributes -e0/h0
		assert.InDeltaSlice(t, []float64{-1 / h[0], 0}, sideWGs[0][0].Value(interiorPoints[0]), 1e-9)
	})
	t.Run("quadratic", func(t *testing.T) {
		s, err := NewSolver(poly.NewMaxMonDeg(2))
		require.NoError(t, err)
		// v = x0^2 and v = x0 x1
		x0Sq := poly.Monomial(poly.NewMon(2, 0))
		x0x1 := poly.Monomial(poly.NewMon(1, 1))
		intWGs, sideWGs, err := s.WGradsOnOShape([]poly.Monomial{x0Sq, x0x1},
			[][]poly.Monomial{{}, {one, x1}, {x0Sq}, {x0Sq, x0}}, 0, rm)
		require.NoError(t, err)
		for _, x := range interiorPoints {
			v := sumAt(x, weightedWGrad{1, intWGs[0]}, weightedWGrad{h[0] * h[0], sideWGs[1][0]},
				weightedWGrad{1, sideWGs[2][0]}, weightedWGrad{1, sideWGs[3][0]})
			assert.InDeltaSlice(t, []float64{2 * x[0], 0}, v, 1e-8)
			v = sumAt(x, weightedWGrad{1, intWGs[1]}, weightedWGrad{h[0], sideWGs[1][1]},
				weightedWGrad{h[1], sideWGs[3][1]})
			assert.InDeltaSlice(t, []float64{x[1], x[0]}, v, 1e-8)
		}
		comp := intWGs[0].Component(0)
		assert.Equal(t, len(intWGs[0].Mons), len(comp.Coefs))
	})
	t.Run("side count mismatch", func(t *testing.T) {
		s, err := NewSolver(poly.NewMaxMonDeg(1))
		require.NoError(t, err)
		_, _, err = s.WGradsOnOShape([]poly.Monomial{x0}, [][]poly.Monomial{{one}}, 0, rm)
		assert.True(t, errors.Is(err, types.ErrInvalidConfig))
	})
}

func TestWeakGradsOneDimensional(t *testing.T) {
	rm, err := mesh.NewRectMesh([]float64{0}, []float64{2}, []types.MeshCoord{4}, poly.One(1))
	require.NoError(t, err)
	h := rm.FEDims()[0]
	s, err := NewSolver(poly.NewMaxMonDeg(2))
	require.NoError(t, err)
	intWGs, sideWGs, err := s.WGradsOnOShape([]poly.Monomial{poly.NewMon(2)},
		[][]poly.Monomial{{poly.One(1)}, {poly.One(1)}}, 0, rm)
	require.NoError(t, err)
	for _, x := range []float64{0, 0.1, 0.3, 0.5} {
		v := sumAt([]float64{x}, weightedWGrad{1, intWGs[0]}, weightedWGrad{h * h, sideWGs[1][0]})
		assert.InDeltaSlice(t, []float64{2 * x}, v, 1e-9)
	}
}
