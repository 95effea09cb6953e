package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/wgfem/cubature"
	"github.com/notargets/wgfem/poly"
	"github.com/notargets/wgfem/types"
)

const (
	DefaultIntegrationRelErr = 1e-12
	DefaultIntegrationAbsErr = 1e-12
)

var _ Mesh = (*RectMesh)(nil)

// NBSideGeom locates a non-boundary side: its perpendicular axis, and its coordinates in the
// mesh of sides perpendicular to that axis.
type NBSideGeom struct {
	PerpAxis   types.Dim
	MeshCoords []types.MeshCoord
}

/*
RectMesh is a structured mesh of identical axis aligned boxes filling a rectangular domain.

Elements are numbered by mixed radix encoding of their integer mesh coordinates, axis 0 least
significant. The non-boundary sides perpendicular to axis a form their own mesh, the element
mesh with axis a's extent reduced by one, and are numbered within that mesh the same way. The
per axis side numberings are then laid end to end in increasing axis order.
*/
type RectMesh struct {
	spaceDim int

	// Bounds of the domain
	minBounds, maxBounds []float64

	// Logical dimensions of the mesh in elements, by axis (cols, rows, stacks, ...)
	meshLDims []types.MeshCoord

	// Extents of every element, the displacement from its minimum corner to its maximum corner
	feDims []float64
	// feDimsWODim[r] is feDims without component r, the integration domain for sides
	// perpendicular to axis r
	feDimsWODim [][]float64

	// cumprodsMeshLDims[r] is the product of the logical dimensions through axis r
	cumprodsMeshLDims []int

	// cumprodsNBSideMeshLDimsByPerpAxis[a][r] is the product through axis r of the logical
	// dimensions of the mesh of sides perpendicular to axis a
	cumprodsNBSideMeshLDimsByPerpAxis [][]int

	// First side number of each group of sides sharing a perpendicular axis
	firstNBSideNumsByPerpAxis []types.NBSideNum
	nbSideCountsByPerpAxis    []int

	numFEs, numNBSides, numSideFacesPerFE int

	rectDiameter, rectDiameterInv float64

	oneMon poly.Monomial

	spaceDimZeros                        []float64
	spaceDimLessOneZeros                 []float64
	integrationRelErr, integrationAbsErr float64
	integrator                           cubature.Integrator
}

// NewRectMesh builds a mesh with the default integration tolerances. The space dimension is
// the domain dimension of the unit monomial one.
func NewRectMesh(minBounds, maxBounds []float64, meshLDims []types.MeshCoord,
	one poly.Monomial) (*RectMesh, error) {
	return NewRectMeshWithErrTols(minBounds, maxBounds, meshLDims, one,
		DefaultIntegrationRelErr, DefaultIntegrationAbsErr)
}

func NewRectMeshWithErrTols(minBounds, maxBounds []float64, meshLDims []types.MeshCoord,
	one poly.Monomial, integrationRelErr, integrationAbsErr float64) (rm *RectMesh, err error) {
	if one == nil {
		err = types.InvalidConfigf("a unit monomial is required to fix the space dimension")
		return
	}
	d := one.DomainDim()
	switch {
	case d < 1:
		err = types.InvalidConfigf("space dimension must be positive, have %d", d)
	case len(minBounds) != d:
		err = types.InvalidConfigf("min bounds have length %d, space dimension is %d", len(minBounds), d)
	case len(maxBounds) != d:
		err = types.InvalidConfigf("max bounds have length %d, space dimension is %d", len(maxBounds), d)
	case len(meshLDims) != d:
		err = types.InvalidConfigf("mesh logical dimensions have length %d, space dimension is %d",
			len(meshLDims), d)
	case integrationRelErr < 0 || integrationAbsErr < 0:
		err = types.InvalidConfigf("integration tolerances must be non-negative, have %g, %g",
			integrationRelErr, integrationAbsErr)
	}
	if err != nil {
		return
	}
	feDims := make([]float64, d)
	for r := 0; r < d; r++ {
		span := maxBounds[r] - minBounds[r]
		if !(span > 0) {
			err = types.InvalidConfigf("bounds span on axis %d is %g, must be positive", r, span)
			return
		}
		if meshLDims[r] <= 0 {
			err = types.InvalidConfigf("logical dimension on axis %d is %d, must be positive", r, meshLDims[r])
			return
		}
		feDims[r] = span / float64(meshLDims[r])
	}

	rm = &RectMesh{
		spaceDim:             d,
		minBounds:            append([]float64{}, minBounds...),
		maxBounds:            append([]float64{}, maxBounds...),
		meshLDims:            append([]types.MeshCoord{}, meshLDims...),
		feDims:               feDims,
		numSideFacesPerFE:    2 * d,
		oneMon:               one,
		spaceDimZeros:        make([]float64, d),
		spaceDimLessOneZeros: make([]float64, d-1),
		integrationRelErr:    integrationRelErr,
		integrationAbsErr:    integrationAbsErr,
		integrator:           cubature.Default,
	}

	rm.feDimsWODim = make([][]float64, d)
	for a := 0; a < d; a++ {
		rm.feDimsWODim[a] = dropComponent(feDims, a)
	}

	rm.cumprodsMeshLDims = make([]int, d)
	prod := 1
	for r := 0; r < d; r++ {
		prod *= int(meshLDims[r])
		rm.cumprodsMeshLDims[r] = prod
	}
	rm.numFEs = prod

	// There are ldim[a]-1 separating positions between elements along axis a
	rm.cumprodsNBSideMeshLDimsByPerpAxis = make([][]int, d)
	rm.nbSideCountsByPerpAxis = make([]int, d)
	rm.firstNBSideNumsByPerpAxis = make([]types.NBSideNum, d)
	for a := 0; a < d; a++ {
		cumprods := make([]int, d)
		prod = 1
		for r := 0; r < d; r++ {
			if r == a {
				prod *= int(meshLDims[r]) - 1
			} else {
				prod *= int(meshLDims[r])
			}
			cumprods[r] = prod
		}
		rm.cumprodsNBSideMeshLDimsByPerpAxis[a] = cumprods
		rm.nbSideCountsByPerpAxis[a] = prod
		rm.firstNBSideNumsByPerpAxis[a] = types.NBSideNum(rm.numNBSides)
		rm.numNBSides += prod
	}

	rm.rectDiameter = floats.Norm(feDims, 2)
	rm.rectDiameterInv = 1. / rm.rectDiameter
	return
}

// WithIntegrator replaces the cubature routine used for all integrals and returns the mesh.
// It is meant to be called once, right after construction.
func (rm *RectMesh) WithIntegrator(integ cubature.Integrator) *RectMesh {
	rm.integrator = integ
	return rm
}

func dropComponent(v []float64, r int) (w []float64) {
	w = make([]float64, 0, len(v)-1)
	w = append(w, v[:r]...)
	return append(w, v[r+1:]...)
}

// Range checked handle construction

func (rm *RectMesh) FENum(i int) (types.FENum, error) {
	if err := types.CheckRange("finite element", i, rm.numFEs); err != nil {
		return 0, err
	}
	return types.FENum(i), nil
}

func (rm *RectMesh) NBSideNum(i int) (types.NBSideNum, error) {
	if err := types.CheckRange("non-boundary side", i, rm.numNBSides); err != nil {
		return 0, err
	}
	return types.NBSideNum(i), nil
}

func (rm *RectMesh) SideFace(i int) (types.SideFace, error) {
	if err := types.CheckRange("side face", i, rm.numSideFacesPerFE); err != nil {
		return 0, err
	}
	return types.SideFace(i), nil
}

// Accessors

func (rm *RectMesh) SpaceDim() int                 { return rm.spaceDim }
func (rm *RectMesh) MinBounds() []float64          { return append([]float64{}, rm.minBounds...) }
func (rm *RectMesh) MaxBounds() []float64          { return append([]float64{}, rm.maxBounds...) }
func (rm *RectMesh) MeshLDims() []types.MeshCoord  { return append([]types.MeshCoord{}, rm.meshLDims...) }
func (rm *RectMesh) FEDims() []float64             { return append([]float64{}, rm.feDims...) }
func (rm *RectMesh) OneMon() poly.Monomial         { return rm.oneMon }
func (rm *RectMesh) NBSideCountForPerpAxis(a types.Dim) int {
	return rm.nbSideCountsByPerpAxis[a]
}
func (rm *RectMesh) FirstNBSideNumForPerpAxis(a types.Dim) types.NBSideNum {
	return rm.firstNBSideNumsByPerpAxis[a]
}

// Element coordinate codec

// FEWithMeshCoords converts element mesh coordinates to an element number.
func (rm *RectMesh) FEWithMeshCoords(coords []types.MeshCoord) types.FENum {
	/*
		The element number for mesh coordinates (c_0,...,c_{d-1}) is
			c_0 + sum_{r=1..d-1} c_r * prod_{l=0..r-1} k_l
		where k_l is the logical dimension of the mesh along axis l.
	*/
	rm.checkCoords("element", coords, func(r int) int { return int(rm.meshLDims[r]) })
	sum := int(coords[0])
	for r := 1; r < rm.spaceDim; r++ {
		sum += int(coords[r]) * rm.cumprodsMeshLDims[r-1]
	}
	return types.FENum(sum)
}

func (rm *RectMesh) FEMeshCoords(fe types.FENum) (coords []types.MeshCoord) {
	coords = make([]types.MeshCoord, rm.spaceDim)
	for r := range coords {
		coords[r] = rm.FEMeshCoord(types.Dim(r), fe)
	}
	return
}

func (rm *RectMesh) FEMeshCoord(r types.Dim, fe types.FENum) types.MeshCoord {
	/*
		The r'th mesh coordinate of element n is
			(n mod (k_0 ... k_r)) / (k_0 ... k_{r-1})
	*/
	types.MustBeInRange("axis", int(r), rm.spaceDim)
	types.MustBeInRange("finite element", int(fe), rm.numFEs)
	return types.MeshCoord((int(fe) % rm.cumprodsMeshLDims[r]) / cumprodBefore(rm.cumprodsMeshLDims, int(r)))
}

func cumprodBefore(cumprods []int, r int) int {
	if r == 0 {
		return 1
	}
	return cumprods[r-1]
}

func (rm *RectMesh) checkCoords(kind string, coords []types.MeshCoord, extent func(r int) int) {
	if len(coords) != rm.spaceDim {
		panic(fmt.Errorf("%w: %s mesh coordinates have length %d, space dimension is %d",
			types.ErrOutOfRange, kind, len(coords), rm.spaceDim))
	}
	for r, c := range coords {
		types.MustBeInRange(fmt.Sprintf("%s mesh coordinate on axis %d", kind, r), int(c), extent(r))
	}
}

// Non-boundary side codec

// PerpAxisForNBSide finds the axis perpendicular to a non-boundary side.
func (rm *RectMesh) PerpAxisForNBSide(n types.NBSideNum) types.Dim {
	types.MustBeInRange("non-boundary side", int(n), rm.numNBSides)
	for r := rm.spaceDim - 1; r >= 0; r-- {
		if rm.firstNBSideNumsByPerpAxis[r] <= n {
			return types.Dim(r)
		}
	}
	panic(fmt.Errorf("cannot find perpendicular axis for non-boundary side %d", n))
}

// NBSideGeom returns the perpendicular axis of a non-boundary side together with its
// coordinates in the mesh of sides having that perpendicular axis.
func (rm *RectMesh) NBSideGeom(n types.NBSideNum) NBSideGeom {
	/*
		The r'th coordinate of side n in the mesh of sides perpendicular to a = a(n) is
			((n - s_a) mod prod_{i=0..r} k_{a,i}) / prod_{i=0..r-1} k_{a,i}
		where s_a is the first side number perpendicular to a, and k_{a,i} the logical dimension
		of that side mesh along axis i.
	*/
	var (
		a        = rm.PerpAxisForNBSide(n)
		relNum   = int(n - rm.firstNBSideNumsByPerpAxis[a])
		cumprods = rm.cumprodsNBSideMeshLDimsByPerpAxis[a]
		coords   = make([]types.MeshCoord, rm.spaceDim)
	)
	for r := range coords {
		coords[r] = types.MeshCoord((relNum % cumprods[r]) / cumprodBefore(cumprods, r))
	}
	return NBSideGeom{PerpAxis: a, MeshCoords: coords}
}

// NBSideWithMeshCoords converts side mesh coordinates for sides perpendicular to perpAxis into a
// non-boundary side number.
func (rm *RectMesh) NBSideWithMeshCoords(coords []types.MeshCoord, perpAxis types.Dim) types.NBSideNum {
	types.MustBeInRange("axis", int(perpAxis), rm.spaceDim)
	rm.checkCoords("non-boundary side", coords, func(r int) int {
		if r == int(perpAxis) {
			return int(rm.meshLDims[r]) - 1
		}
		return int(rm.meshLDims[r])
	})
	var (
		cumprods = rm.cumprodsNBSideMeshLDimsByPerpAxis[perpAxis]
		sum      = int(rm.firstNBSideNumsByPerpAxis[perpAxis]) + int(coords[0])
	)
	for r := 1; r < rm.spaceDim; r++ {
		sum += int(coords[r]) * cumprods[r-1]
	}
	return types.NBSideNum(sum)
}

// Mesh capability

func (rm *RectMesh) NumFEs() int                   { return rm.numFEs }
func (rm *RectMesh) NumNBSides() int               { return rm.numNBSides }
func (rm *RectMesh) NumOrientedElementShapes() int { return 1 }

func (rm *RectMesh) OrientedShapeForFE(fe types.FENum) types.OShape {
	types.MustBeInRange("finite element", int(fe), rm.numFEs)
	return 0
}

func (rm *RectMesh) NumSideFacesForFE(types.FENum) int        { return rm.numSideFacesPerFE }
func (rm *RectMesh) NumSideFacesForShape(types.OShape) int    { return rm.numSideFacesPerFE }
func (rm *RectMesh) MaxNumShapeSides() int                    { return rm.numSideFacesPerFE }
func (rm *RectMesh) ShapeDiameterInv(types.OShape) float64    { return rm.rectDiameterInv }
func (rm *RectMesh) MaxFEDiameter() float64                   { return rm.rectDiameter }
func (rm *RectMesh) IntegrationErrTols() (relErr, absErr float64) {
	return rm.integrationRelErr, rm.integrationAbsErr
}

func (rm *RectMesh) DependentDimForOShapeSide(os types.OShape, sf types.SideFace) types.Dim {
	types.MustBeInRange("oriented shape", int(os), 1)
	types.MustBeInRange("side face", int(sf), rm.numSideFacesPerFE)
	return sf.PerpAxis()
}

func (rm *RectMesh) FEInclusionsOfNBSide(n types.NBSideNum) NBSideInclusions {
	var (
		geom     = rm.NBSideGeom(n)
		a        = geom.PerpAxis
		lesserFE = rm.FEWithMeshCoords(geom.MeshCoords)
	)
	return NBSideInclusions{
		NBSideNum:     n,
		FE1:           lesserFE,
		SideFaceInFE1: types.GreaterSideFacePerpToAxis(a),
		FE2:           lesserFE + types.FENum(cumprodBefore(rm.cumprodsMeshLDims, int(a))),
		SideFaceInFE2: types.LesserSideFacePerpToAxis(a),
	}
}

// NBSideNumForFESide panics when the side face is on the mesh boundary.
func (rm *RectMesh) NBSideNumForFESide(fe types.FENum, sf types.SideFace) types.NBSideNum {
	if rm.IsBoundarySide(fe, sf) {
		panic(fmt.Errorf("%w: side face %d of element %d is a boundary side", types.ErrOutOfRange, sf, fe))
	}
	var (
		a      = sf.PerpAxis()
		coords = rm.FEMeshCoords(fe)
	)
	if sf.IsLesser() {
		// The side below the element on axis a
		coords[a]--
	}
	return rm.NBSideWithMeshCoords(coords, a)
}

func (rm *RectMesh) IsBoundarySide(fe types.FENum, sf types.SideFace) bool {
	types.MustBeInRange("side face", int(sf), rm.numSideFacesPerFE)
	var (
		a      = sf.PerpAxis()
		coordA = rm.FEMeshCoord(a, fe)
	)
	if sf.IsLesser() {
		return coordA == 0
	}
	return coordA == rm.meshLDims[a]-1
}

func (rm *RectMesh) NumBoundarySides() (bsides int) {
	for a := 0; a < rm.spaceDim; a++ {
		prod := 2 // one cap at each end of axis a
		for r := 0; r < rm.spaceDim; r++ {
			if r != a {
				prod *= int(rm.meshLDims[r])
			}
		}
		bsides += prod
	}
	return
}

func (rm *RectMesh) NumNonBoundarySidesForFE(fe types.FENum) (count int) {
	for sf := types.SideFace(0); int(sf) < rm.numSideFacesPerFE; sf++ {
		if !rm.IsBoundarySide(fe, sf) {
			count++
		}
	}
	return
}

// FEInteriorOrigin is the corner of minimum coordinates of the element.
func (rm *RectMesh) FEInteriorOrigin(fe types.FENum) (origin []float64) {
	origin = make([]float64, rm.spaceDim)
	for r := range origin {
		origin[r] = rm.minBounds[r] + float64(rm.FEMeshCoord(types.Dim(r), fe))*rm.feDims[r]
	}
	return
}
