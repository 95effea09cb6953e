package wgbasis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/wgfem/mesh"
	"github.com/notargets/wgfem/poly"
	"github.com/notargets/wgfem/types"
	"github.com/notargets/wgfem/weakgrad"
)

/*
WgBasis is a basis for the piecewise polynomials on the interiors and non-boundary sides of a
mesh whose monomials satisfy given degree limits. Each basis element is a monomial on exactly
one interior or non-boundary side and zero elsewhere.

A side hosts only monomials with zero exponent in its dependent dimension, the coordinate
that is an affine function of the others on the side, so the elements supported on a side
stay linearly independent.

Basis elements are numbered with all interior supported elements first. Within the interior
and side groups, elements are grouped by supporting interior or side in the mesh's order of
those, and within a face's group by the face's monomial order. That order is ascending in
exponent sequence with lower dimension exponents more significant, so x^0 y^2 comes before
x^1 y^1.
*/
type WgBasis struct {
	mesh mesh.Mesh

	intPolysDegLim, sidePolysDegLim poly.DegLim

	// Monomials defining the elements supported on any interior
	intMons []poly.Monomial
	// sideMonsByDepDim[r] are the monomials defining the elements supported on any side with
	// dependent dimension r
	sideMonsByDepDim [][]poly.Monomial

	monsPerFEInt, monsPerFESide int

	totalEls, numIntEls int
	// All basis elements before this one are interior supported
	firstNBSideBel types.BasisElNum

	intMonWGrads  [][]weakgrad.WeakGrad   // by oriented shape, interior monomial
	sideMonWGrads [][][]weakgrad.WeakGrad // by oriented shape, side face, side monomial

	intMonsInnerProds  []*mat.SymDense   // by oriented shape
	sideMonsInnerProds [][]*mat.SymDense // by oriented shape, side face
}

// WeakGradSolver computes the weak gradients of the shape functions defined by monomials on the
// faces of an oriented shape. sideMonsBySide[sf] are the monomials hosted on side face sf.
type WeakGradSolver interface {
	WGradsOnOShape(intMons []poly.Monomial, sideMonsBySide [][]poly.Monomial, os types.OShape,
		m mesh.Mesh) ([]weakgrad.WeakGrad, [][]weakgrad.WeakGrad, error)
}

var _ WeakGradSolver = (*weakgrad.Solver)(nil)

// New builds the basis over m. The basis takes ownership of the mesh, which must not be changed
// afterward. The solver is called once per oriented shape.
func New(m mesh.Mesh, intPolysDegLim, sidePolysDegLim poly.DegLim, solver WeakGradSolver) (wgb *WgBasis, err error) {
	if m == nil {
		return nil, types.InvalidConfigf("no mesh")
	}
	if solver == nil {
		return nil, types.InvalidConfigf("no weak gradient solver")
	}
	var (
		d   = m.SpaceDim()
		one = m.OneMon()
	)
	wgb = &WgBasis{
		mesh:             m,
		intPolysDegLim:   intPolysDegLim,
		sidePolysDegLim:  sidePolysDegLim,
		intMons:          one.MonsWithDegLimAsc(intPolysDegLim),
		sideMonsByDepDim: make([][]poly.Monomial, d),
	}
	sideMons := one.MonsWithDegLimAsc(sidePolysDegLim)
	for r := 0; r < d; r++ {
		for _, mon := range sideMons {
			if mon.Exp(types.Dim(r)) == 0 {
				wgb.sideMonsByDepDim[r] = append(wgb.sideMonsByDepDim[r], mon)
			}
		}
	}
	wgb.monsPerFEInt = len(wgb.intMons)
	wgb.monsPerFESide = len(wgb.sideMonsByDepDim[0])
	wgb.numIntEls = m.NumFEs() * wgb.monsPerFEInt
	wgb.totalEls = wgb.numIntEls + m.NumNBSides()*wgb.monsPerFESide
	wgb.firstNBSideBel = types.BasisElNum(wgb.numIntEls)

	if err = wgb.computeWGrads(solver); err != nil {
		return nil, err
	}
	wgb.computeInnerProds()
	return
}

func (wgb *WgBasis) computeWGrads(solver WeakGradSolver) (err error) {
	var (
		numOShapes = wgb.mesh.NumOrientedElementShapes()
	)
	wgb.intMonWGrads = make([][]weakgrad.WeakGrad, numOShapes)
	wgb.sideMonWGrads = make([][][]weakgrad.WeakGrad, numOShapes)
	for osi := 0; osi < numOShapes; osi++ {
		os := types.OShape(osi)
		sideMonsBySide := make([][]poly.Monomial, wgb.mesh.NumSideFacesForShape(os))
		for sf := range sideMonsBySide {
			sideMonsBySide[sf] = wgb.SideMonsForOShapeSide(os, types.SideFace(sf))
		}
		var (
			intWGrads  []weakgrad.WeakGrad
			sideWGrads [][]weakgrad.WeakGrad
		)
		if intWGrads, sideWGrads, err = solver.WGradsOnOShape(wgb.intMons, sideMonsBySide, os, wgb.mesh); err != nil {
			return fmt.Errorf("weak gradients on oriented shape %d: %w", os, err)
		}
		if len(intWGrads) != len(wgb.intMons) || len(sideWGrads) != len(sideMonsBySide) {
			return fmt.Errorf("weak gradient solver returned %d interior and %d side gradient sets, want %d and %d",
				len(intWGrads), len(sideWGrads), len(wgb.intMons), len(sideMonsBySide))
		}
		wgb.intMonWGrads[os] = intWGrads
		wgb.sideMonWGrads[os] = sideWGrads
	}
	return
}

func (wgb *WgBasis) computeInnerProds() {
	var (
		numOShapes = wgb.mesh.NumOrientedElementShapes()
	)
	gram := func(mons []poly.Monomial, os types.OShape, face types.Face) (g *mat.SymDense) {
		g = mat.NewSymDense(len(mons), nil)
		for i := range mons {
			for j := i; j < len(mons); j++ {
				g.SetSym(i, j, wgb.mesh.IntgFacerelMonXFacerelMonOnOShapeFace(mons[i], mons[j], os, face))
			}
		}
		return
	}
	wgb.intMonsInnerProds = make([]*mat.SymDense, numOShapes)
	wgb.sideMonsInnerProds = make([][]*mat.SymDense, numOShapes)
	for osi := 0; osi < numOShapes; osi++ {
		os := types.OShape(osi)
		wgb.intMonsInnerProds[os] = gram(wgb.intMons, os, types.Interior())
		wgb.sideMonsInnerProds[os] = make([]*mat.SymDense, wgb.mesh.NumSideFacesForShape(os))
		for sfi := range wgb.sideMonsInnerProds[os] {
			sf := types.SideFace(sfi)
			wgb.sideMonsInnerProds[os][sf] = gram(wgb.SideMonsForOShapeSide(os, sf), os, types.Side(sf))
		}
	}
}

/*
UBEstimateNumBelBelCommonSupportFETriplets bounds the number of triplets (bel1, bel2, fe) with
both basis elements supported on finite element fe, for sizing sparse matrix storage before
assembly. Pairs on a side shared by two elements are counted from both, so the bound is not
exact.
*/
func (wgb *WgBasis) UBEstimateNumBelBelCommonSupportFETriplets() (total int) {
	var (
		numFEs = wgb.mesh.NumFEs()
	)
	total = numFEs * wgb.monsPerFEInt * wgb.monsPerFEInt
	for fe := types.FENum(0); int(fe) < numFEs; fe++ {
		nbSides := wgb.mesh.NumNonBoundarySidesForFE(fe)
		intSideAndSideInt := 2 * wgb.monsPerFEInt * nbSides * wgb.monsPerFESide
		sideSideMonChoices := nbSides * wgb.monsPerFESide
		total += intSideAndSideInt + sideSideMonChoices*sideSideMonChoices
	}
	return
}

// BasisElNum range checks i as a basis element number.
func (wgb *WgBasis) BasisElNum(i int) (types.BasisElNum, error) {
	if err := types.CheckRange("basis element", i, wgb.totalEls); err != nil {
		return 0, err
	}
	return types.BasisElNum(i), nil
}

func (wgb *WgBasis) Mesh() mesh.Mesh                     { return wgb.mesh }
func (wgb *WgBasis) IntPolysDegLim() poly.DegLim         { return wgb.intPolysDegLim }
func (wgb *WgBasis) SidePolysDegLim() poly.DegLim        { return wgb.sidePolysDegLim }
func (wgb *WgBasis) MonsPerFEInt() int                   { return wgb.monsPerFEInt }
func (wgb *WgBasis) MonsPerFESide() int                  { return wgb.monsPerFESide }
func (wgb *WgBasis) NumIntEls() int                      { return wgb.numIntEls }
func (wgb *WgBasis) TotalEls() int                       { return wgb.totalEls }
func (wgb *WgBasis) FirstNBSideBelNum() types.BasisElNum { return wgb.firstNBSideBel }

func (wgb *WgBasis) IsIntSupported(i types.BasisElNum) bool {
	return i >= 0 && int(i) < wgb.numIntEls
}

func (wgb *WgBasis) IsSideSupported(i types.BasisElNum) bool {
	return wgb.numIntEls <= int(i) && int(i) < wgb.totalEls
}

func (wgb *WgBasis) mustBeIntSupported(i types.BasisElNum) {
	if !wgb.IsIntSupported(i) {
		panic(fmt.Errorf("%w: basis element %d is not interior supported, interior elements are [0,%d)",
			types.ErrOutOfRange, i, wgb.numIntEls))
	}
}

func (wgb *WgBasis) mustBeSideSupported(i types.BasisElNum) {
	if !wgb.IsSideSupported(i) {
		panic(fmt.Errorf("%w: basis element %d is not side supported, side elements are [%d,%d)",
			types.ErrOutOfRange, i, wgb.numIntEls, wgb.totalEls))
	}
}

// SupportIntFENum is the finite element whose interior supports interior supported element i.
func (wgb *WgBasis) SupportIntFENum(i types.BasisElNum) types.FENum {
	wgb.mustBeIntSupported(i)
	return types.FENum(int(i) / wgb.monsPerFEInt)
}

// SupportNBSideNum is the non-boundary side supporting side supported element i.
func (wgb *WgBasis) SupportNBSideNum(i types.BasisElNum) types.NBSideNum {
	wgb.mustBeSideSupported(i)
	return types.NBSideNum(int(i-wgb.firstNBSideBel) / wgb.monsPerFESide)
}

// FEInclusionsOfSideSupport describes the two finite elements sharing the side supporting i.
func (wgb *WgBasis) FEInclusionsOfSideSupport(i types.BasisElNum) mesh.NBSideInclusions {
	return wgb.mesh.FEInclusionsOfNBSide(wgb.SupportNBSideNum(i))
}

// RefIntMons are the monomials defining the elements supported on any interior. The slice is
// shared and must not be modified.
func (wgb *WgBasis) RefIntMons() []poly.Monomial { return wgb.intMons }

func (wgb *WgBasis) SideMonsForFESide(fe types.FENum, sf types.SideFace) []poly.Monomial {
	return wgb.SideMonsForOShapeSide(wgb.mesh.OrientedShapeForFE(fe), sf)
}

func (wgb *WgBasis) SideMonsForOShapeSide(os types.OShape, sf types.SideFace) []poly.Monomial {
	return wgb.sideMonsByDepDim[wgb.mesh.DependentDimForOShapeSide(os, sf)]
}

// IntRelMonNum is the interior relative number of the monomial defining element i.
func (wgb *WgBasis) IntRelMonNum(i types.BasisElNum) types.FaceMonNum {
	wgb.mustBeIntSupported(i)
	return types.FaceMonNum(int(i) % wgb.monsPerFEInt)
}

// SideRelMonNum is the side relative number of the monomial defining element i.
func (wgb *WgBasis) SideRelMonNum(i types.BasisElNum) types.FaceMonNum {
	wgb.mustBeSideSupported(i)
	return types.FaceMonNum(int(i-wgb.firstNBSideBel) % wgb.monsPerFESide)
}

// IntMon is the monomial defining interior supported element i.
func (wgb *WgBasis) IntMon(i types.BasisElNum) poly.Monomial {
	return wgb.intMons[wgb.IntRelMonNum(i)]
}

// SideMon is the monomial defining side supported element i, taken from the lesser element's
// view of the side.
func (wgb *WgBasis) SideMon(i types.BasisElNum) poly.Monomial {
	var (
		monn = wgb.SideRelMonNum(i)
		inc  = wgb.FEInclusionsOfSideSupport(i)
	)
	return wgb.SideMonsForFESide(inc.FE1, inc.SideFaceInFE1)[monn]
}

// IntMonElNum is the element defined by interior monomial monn on the interior of fe.
func (wgb *WgBasis) IntMonElNum(fe types.FENum, monn types.FaceMonNum) types.BasisElNum {
	types.MustBeInRange("finite element", int(fe), wgb.mesh.NumFEs())
	types.MustBeInRange("interior monomial", int(monn), wgb.monsPerFEInt)
	return types.BasisElNum(int(fe)*wgb.monsPerFEInt + int(monn))
}

// SideMonElNum is the element defined by monomial monn on side face sf of fe, which must not be
// a boundary side.
func (wgb *WgBasis) SideMonElNum(fe types.FENum, sf types.SideFace, monn types.FaceMonNum) types.BasisElNum {
	types.MustBeInRange("finite element", int(fe), wgb.mesh.NumFEs())
	types.MustBeInRange("side monomial", int(monn), wgb.monsPerFESide)
	nbSide := wgb.mesh.NBSideNumForFESide(fe, sf)
	return wgb.firstNBSideBel + types.BasisElNum(int(nbSide)*wgb.monsPerFESide+int(monn))
}

// FEIntPoly is the restriction of the solution with basis coefficients coefs to the interior of
// fe. The polynomial is a view of coefs.
func (wgb *WgBasis) FEIntPoly(fe types.FENum, coefs []float64) poly.Polynomial {
	first := int(wgb.IntMonElNum(fe, 0))
	return poly.NewPolynomial(coefs[first:first+wgb.monsPerFEInt], wgb.intMons)
}

// FESidePoly is the restriction of the solution with basis coefficients coefs to side face sf of
// fe. The polynomial is a view of coefs.
func (wgb *WgBasis) FESidePoly(fe types.FENum, sf types.SideFace, coefs []float64) poly.Polynomial {
	var (
		mons  = wgb.SideMonsForFESide(fe, sf)
		first = int(wgb.SideMonElNum(fe, sf, 0))
	)
	return poly.NewPolynomial(coefs[first:first+len(mons)], mons)
}

// WGradIntMon is the weak gradient of the element defined by interior monomial monn on the
// interior of oriented shape os.
func (wgb *WgBasis) WGradIntMon(monn types.FaceMonNum, os types.OShape) weakgrad.WeakGrad {
	return wgb.intMonWGrads[os][monn]
}

// WGradSideMon is the weak gradient of the element defined by side monomial monn on side face
// sf of oriented shape os.
func (wgb *WgBasis) WGradSideMon(monn types.FaceMonNum, os types.OShape, sf types.SideFace) weakgrad.WeakGrad {
	return wgb.sideMonWGrads[os][sf][monn]
}

// IntMonsInnerProds is the Gram matrix of the interior monomials on the interior of oriented
// shape os. It is shared and must not be modified.
func (wgb *WgBasis) IntMonsInnerProds(os types.OShape) *mat.SymDense {
	return wgb.intMonsInnerProds[os]
}

// SideMonsInnerProds is the Gram matrix of the side monomials hosted on side face sf of
// oriented shape os. It is shared and must not be modified.
func (wgb *WgBasis) SideMonsInnerProds(os types.OShape, sf types.SideFace) *mat.SymDense {
	return wgb.sideMonsInnerProds[os][sf]
}
