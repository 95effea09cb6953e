package mesh

import (
	"github.com/notargets/wgfem/poly"
	"github.com/notargets/wgfem/types"
)

/*
Integration on element faces. Interiors integrate over the element box. Sides integrate over the
(d-1) dimensional box left after dropping the perpendicular axis from the element extents, with
the integrand wrapped to put back the fixed perpendicular coordinate.

Face relative functions are evaluated at x - o, where o is the face's corner of minimum
coordinates: the element origin for interiors and lesser sides, and the element origin moved
by the element extent along the perpendicular axis for greater sides. Oriented shape integrals
use the reference element with its origin at zero.
*/

// IntgGlobalFnOnFEFace integrates f, a function of absolute coordinates, over a face of fe.
func (rm *RectMesh) IntgGlobalFnOnFEFace(f func(x []float64) float64, fe types.FENum, face types.Face) float64 {
	return rm.intgOnFace(f, rm.FEInteriorOrigin(fe), face)
}

func (rm *RectMesh) IntgGlobalFnXFacerelMonOnFEFace(g func(x []float64) float64, mon poly.Monomial,
	fe types.FENum, face types.Face) float64 {
	var (
		intOrigin = rm.FEInteriorOrigin(fe)
		fo        = rm.faceOrigin(intOrigin, face)
	)
	return rm.intgOnFace(func(x []float64) float64 {
		return g(x) * mon.Value(relativeTo(x, fo))
	}, intOrigin, face)
}

func (rm *RectMesh) IntgFacerelPolyOnOShapeFace(p poly.Polynomial, os types.OShape, face types.Face) float64 {
	return rm.intgFacerelOnOShapeFace(p.Value, os, face)
}

func (rm *RectMesh) IntgFacerelPolyXFacerelPolyOnOShapeFace(p1, p2 poly.Polynomial, os types.OShape,
	face types.Face) float64 {
	return rm.intgFacerelOnOShapeFace(func(y []float64) float64 {
		return p1.Value(y) * p2.Value(y)
	}, os, face)
}

func (rm *RectMesh) IntgFacerelMonXFacerelMonOnOShapeFace(mon1, mon2 poly.Monomial, os types.OShape,
	face types.Face) float64 {
	return rm.intgFacerelOnOShapeFace(func(y []float64) float64 {
		return mon1.Value(y) * mon2.Value(y)
	}, os, face)
}

func (rm *RectMesh) IntgFacerelMonXFacerelPolyOnOShapeFace(mon poly.Monomial, p poly.Polynomial,
	os types.OShape, face types.Face) float64 {
	return rm.intgFacerelOnOShapeFace(func(y []float64) float64 {
		return mon.Value(y) * p.Value(y)
	}, os, face)
}

// IntgIntrelMonXSiderelMonOnOShapeSide integrates the product of an interior relative monomial
// and a side relative monomial over a side of the reference element.
func (rm *RectMesh) IntgIntrelMonXSiderelMonOnOShapeSide(intMon, sideMon poly.Monomial, os types.OShape,
	sf types.SideFace) float64 {
	types.MustBeInRange("oriented shape", int(os), 1)
	var (
		face = types.Side(sf)
		so   = rm.faceOrigin(rm.spaceDimZeros, face)
	)
	return rm.intgOnFace(func(x []float64) float64 {
		return intMon.Value(x) * sideMon.Value(relativeTo(x, so))
	}, rm.spaceDimZeros, face)
}

// IntgSiderelMonXIntrelVMonDotNormalOnOShapeSide integrates a side relative monomial times the
// normal component of an interior relative vector monomial, using the outward normal.
func (rm *RectMesh) IntgSiderelMonXIntrelVMonDotNormalOnOShapeSide(mon poly.Monomial, q poly.VectorMonomial,
	os types.OShape, sf types.SideFace) float64 {
	return rm.intgSiderelXVMonDotNormal(mon.Value, q, os, sf)
}

func (rm *RectMesh) IntgSiderelPolyXIntrelVMonDotNormalOnOShapeSide(p poly.Polynomial, q poly.VectorMonomial,
	os types.OShape, sf types.SideFace) float64 {
	return rm.intgSiderelXVMonDotNormal(p.Value, q, os, sf)
}

func (rm *RectMesh) intgSiderelXVMonDotNormal(f func(y []float64) float64, q poly.VectorMonomial,
	os types.OShape, sf types.SideFace) float64 {
	types.MustBeInRange("oriented shape", int(os), 1)
	a := sf.PerpAxis()
	if q.Comp != a {
		// q is tangential to the side
		return 0
	}
	var (
		face   = types.Side(sf)
		so     = rm.faceOrigin(rm.spaceDimZeros, face)
		normal = OutwardNormalSign(sf)
	)
	return normal * rm.intgOnFace(func(x []float64) float64 {
		return f(relativeTo(x, so)) * q.Mon.Value(x)
	}, rm.spaceDimZeros, face)
}

// OutwardNormalSign is the perpendicular axis component of the side face's outward unit normal.
func OutwardNormalSign(sf types.SideFace) float64 {
	if sf.IsLesser() {
		return -1
	}
	return 1
}

func (rm *RectMesh) intgFacerelOnOShapeFace(f func(y []float64) float64, os types.OShape, face types.Face) float64 {
	types.MustBeInRange("oriented shape", int(os), 1)
	fo := rm.faceOrigin(rm.spaceDimZeros, face)
	return rm.intgOnFace(func(x []float64) float64 {
		return f(relativeTo(x, fo))
	}, rm.spaceDimZeros, face)
}

// faceOrigin is the corner of minimum coordinates of a face of the element with the given origin.
func (rm *RectMesh) faceOrigin(intOrigin []float64, face types.Face) (o []float64) {
	o = append([]float64{}, intOrigin...)
	if !face.IsInterior() {
		sf := face.SideFace()
		if !sf.IsLesser() {
			o[sf.PerpAxis()] += rm.feDims[sf.PerpAxis()]
		}
	}
	return
}

func relativeTo(x, o []float64) (y []float64) {
	y = make([]float64, len(x))
	for r := range x {
		y[r] = x[r] - o[r]
	}
	return
}

// intgOnFace integrates f, a function of absolute coordinates, over a face of the element whose
// corner of minimum coordinates is intOrigin.
func (rm *RectMesh) intgOnFace(f func(x []float64) float64, intOrigin []float64, face types.Face) float64 {
	d := rm.spaceDim
	if face.IsInterior() {
		feMaxCorner := make([]float64, d)
		for r := range feMaxCorner {
			feMaxCorner[r] = intOrigin[r] + rm.feDims[r]
		}
		return rm.integrator.Integrate(f, intOrigin, feMaxCorner, rm.integrationRelErr, rm.integrationAbsErr)
	}
	sf := face.SideFace()
	types.MustBeInRange("side face", int(sf), rm.numSideFacesPerFE)
	var (
		a          = int(sf.PerpAxis())
		sideACoord = intOrigin[a]
	)
	if !sf.IsLesser() {
		sideACoord += rm.feDims[a]
	}
	// Integrand on the (d-1) dimensional side space, with origin at the side's minimum corner
	sideSpaceIntegrand := func(xSide []float64) float64 {
		xFull := make([]float64, d)
		for r := 0; r < a; r++ {
			xFull[r] = intOrigin[r] + xSide[r]
		}
		xFull[a] = sideACoord
		for r := a + 1; r < d; r++ {
			xFull[r] = intOrigin[r] + xSide[r-1]
		}
		return f(xFull)
	}
	return rm.integrator.Integrate(sideSpaceIntegrand, rm.spaceDimLessOneZeros, rm.feDimsWODim[a],
		rm.integrationRelErr, rm.integrationAbsErr)
}
