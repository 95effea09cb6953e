package weakgrad

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/wgfem/mesh"
	"github.com/notargets/wgfem/poly"
	"github.com/notargets/wgfem/types"
)

/*
WeakGrad is the weak gradient of a basis shape function on an oriented shape, as coefficients
of the gradient space monomials in each vector component. CompMonCoefs[c][j] multiplies
Mons[j] in component c. The monomials are interior relative.
*/
type WeakGrad struct {
	CompMonCoefs [][]float64
	Mons         []poly.Monomial
}

// Value evaluates the weak gradient at interior relative point x.
func (wg WeakGrad) Value(x []float64) (v []float64) {
	v = make([]float64, len(wg.CompMonCoefs))
	for c, coefs := range wg.CompMonCoefs {
		for j, m := range wg.Mons {
			v[c] += coefs[j] * m.Value(x)
		}
	}
	return
}

// Component is the polynomial in vector component c, a view of the weak gradient's storage.
func (wg WeakGrad) Component(c types.Dim) poly.Polynomial {
	return poly.NewPolynomial(wg.CompMonCoefs[c], wg.Mons)
}

/*
Solver computes weak gradients in [P_{k-1}]^d, k the degree limit of the interior polynomials.
For a shape function v with interior part v0 and side parts vb, the weak gradient w is the
member of the gradient space with

	(w, q)_T = -(v0, div q)_T + <vb, q.n>_dT

for every q in the gradient space. Taking q = m_j e_c for each gradient space monomial m_j
gives one linear system per component whose matrix is the monomial Gram matrix on T.
*/
type Solver struct {
	wgradDegLim poly.DegLim
}

// NewSolver builds a solver for interior polynomials limited by intLim.
func NewSolver(intLim poly.DegLim) (*Solver, error) {
	if intLim.K < 1 {
		return nil, types.InvalidConfigf("weak gradients need interior degree limit at least 1, have %s", intLim)
	}
	return &Solver{wgradDegLim: poly.NewMaxMonDeg(intLim.K - 1)}, nil
}

// DegLim is the total degree limit of the gradient space monomials.
func (s *Solver) DegLim() poly.DegLim { return s.wgradDegLim }

/*
WGradsOnOShape computes the weak gradients of the shape functions defined by each interior
monomial, and by each side monomial on its side face, for the oriented shape os.
sideMonsBySide[sf] are the side monomials hosted on side face sf.
*/
func (s *Solver) WGradsOnOShape(intMons []poly.Monomial, sideMonsBySide [][]poly.Monomial, os types.OShape,
	m mesh.Mesh) (intWGrads []WeakGrad, sideWGrads [][]WeakGrad, err error) {
	var (
		d      = m.SpaceDim()
		nSides = m.NumSideFacesForShape(os)
	)
	if len(sideMonsBySide) != nSides {
		err = fmt.Errorf("%w: %d side monomial sequences for a shape with %d side faces",
			types.ErrInvalidConfig, len(sideMonsBySide), nSides)
		return
	}
	var (
		gradMons = m.OneMon().MonsWithDegLimAsc(s.wgradDegLim)
		n        = len(gradMons)
		gram     = mat.NewSymDense(n, nil)
		chol     mat.Cholesky
	)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			gram.SetSym(i, j, m.IntgFacerelMonXFacerelMonOnOShapeFace(gradMons[i], gradMons[j], os, types.Interior()))
		}
	}
	if ok := chol.Factorize(gram); !ok {
		err = fmt.Errorf("weak gradient monomial Gram matrix on oriented shape %d is not positive definite", os)
		return
	}
	solve := func(rhs *mat.Dense) (wg WeakGrad, err error) {
		var x mat.Dense
		if err = chol.SolveTo(&x, rhs); err != nil {
			// Monomial Gram matrices are poorly conditioned at higher degree, the solution stands
			if _, ok := err.(mat.Condition); !ok {
				return
			}
			err = nil
		}
		wg.Mons = gradMons
		wg.CompMonCoefs = make([][]float64, d)
		for c := 0; c < d; c++ {
			wg.CompMonCoefs[c] = mat.Col(nil, c, &x)
		}
		return
	}

	intWGrads = make([]WeakGrad, len(intMons))
	for monn, v := range intMons {
		// -(v, d_c m_j)_T
		rhs := mat.NewDense(n, d, nil)
		for j, mj := range gradMons {
			for c := 0; c < d; c++ {
				coef, dm := mj.Partial(types.Dim(c))
				if coef == 0 {
					continue
				}
				rhs.Set(j, c, -coef*m.IntgFacerelMonXFacerelMonOnOShapeFace(v, dm, os, types.Interior()))
			}
		}
		if intWGrads[monn], err = solve(rhs); err != nil {
			return
		}
	}

	sideWGrads = make([][]WeakGrad, nSides)
	for sfi, sideMons := range sideMonsBySide {
		sf := types.SideFace(sfi)
		sideWGrads[sf] = make([]WeakGrad, len(sideMons))
		for monn, vb := range sideMons {
			// <vb, m_j e_c . n>_sf, zero for all components but the perpendicular one
			rhs := mat.NewDense(n, d, nil)
			for j, mj := range gradMons {
				q := poly.VectorMonomial{Comp: sf.PerpAxis(), Mon: mj}
				rhs.Set(j, int(q.Comp), m.IntgSiderelMonXIntrelVMonDotNormalOnOShapeSide(vb, q, os, sf))
			}
			if sideWGrads[sf][monn], err = solve(rhs); err != nil {
				return
			}
		}
	}
	return
}
