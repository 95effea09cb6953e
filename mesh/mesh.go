package mesh

import (
	"github.com/notargets/wgfem/poly"
	"github.com/notargets/wgfem/types"
)

// NBSideInclusions describes the two finite elements sharing a non-boundary side, and which of
// their side faces the side is.
type NBSideInclusions struct {
	NBSideNum     types.NBSideNum
	FE1           types.FENum
	SideFaceInFE1 types.SideFace
	FE2           types.FENum
	SideFaceInFE2 types.SideFace
}

/*
Mesh is the mesh capability consumed by the Weak Galerkin basis. Face relative functions are
evaluated in coordinates measured from the face's corner of minimum coordinates, and oriented
shape functions integrate over a reference element of that shape.
*/
type Mesh interface {
	SpaceDim() int
	// OneMon is the constant monomial of the mesh's monomial implementation, used to generate
	// monomial sequences on the mesh's faces.
	OneMon() poly.Monomial
	NumFEs() int
	NumNBSides() int
	NumOrientedElementShapes() int
	OrientedShapeForFE(fe types.FENum) types.OShape
	NumSideFacesForFE(fe types.FENum) int
	NumSideFacesForShape(os types.OShape) int
	MaxNumShapeSides() int
	// DependentDimForOShapeSide is the axis whose coordinate is an affine function of the others
	// on the side. Side monomials hosted on the side are constant in that axis.
	DependentDimForOShapeSide(os types.OShape, sf types.SideFace) types.Dim

	FEInclusionsOfNBSide(n types.NBSideNum) NBSideInclusions
	NBSideNumForFESide(fe types.FENum, sf types.SideFace) types.NBSideNum
	IsBoundarySide(fe types.FENum, sf types.SideFace) bool
	NumBoundarySides() int
	NumNonBoundarySidesForFE(fe types.FENum) int

	ShapeDiameterInv(os types.OShape) float64
	MaxFEDiameter() float64
	FEInteriorOrigin(fe types.FENum) []float64

	IntgGlobalFnOnFEFace(f func(x []float64) float64, fe types.FENum, face types.Face) float64
	IntgGlobalFnXFacerelMonOnFEFace(g func(x []float64) float64, mon poly.Monomial, fe types.FENum, face types.Face) float64
	IntgFacerelPolyOnOShapeFace(p poly.Polynomial, os types.OShape, face types.Face) float64
	IntgFacerelPolyXFacerelPolyOnOShapeFace(p1, p2 poly.Polynomial, os types.OShape, face types.Face) float64
	IntgFacerelMonXFacerelMonOnOShapeFace(mon1, mon2 poly.Monomial, os types.OShape, face types.Face) float64
	IntgFacerelMonXFacerelPolyOnOShapeFace(mon poly.Monomial, p poly.Polynomial, os types.OShape, face types.Face) float64
	IntgIntrelMonXSiderelMonOnOShapeSide(intMon, sideMon poly.Monomial, os types.OShape, sf types.SideFace) float64
	IntgSiderelMonXIntrelVMonDotNormalOnOShapeSide(mon poly.Monomial, q poly.VectorMonomial, os types.OShape, sf types.SideFace) float64
	IntgSiderelPolyXIntrelVMonDotNormalOnOShapeSide(p poly.Polynomial, q poly.VectorMonomial, os types.OShape, sf types.SideFace) float64
}
