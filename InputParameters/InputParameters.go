package InputParameters

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/wgfem/la"
	"github.com/notargets/wgfem/mesh"
	"github.com/notargets/wgfem/poly"
	"github.com/notargets/wgfem/types"
)

type DegLimParameters struct {
	Type string `json:"Type"` // MaxMonDeg (alias total) or MaxMonFactorDeg (alias factor)
	K    int    `json:"K"`
}

// Parameters for a Weak Galerkin mesh and basis, obtained from the YAML input file
type WGParameters struct {
	Title             string           `json:"Title"`
	MinBounds         []float64        `json:"MinBounds"`
	MaxBounds         []float64        `json:"MaxBounds"`
	MeshLDims         []int            `json:"MeshLDims"`
	IntPolysDegLim    DegLimParameters `json:"IntPolysDegLim"`
	SidePolysDegLim   DegLimParameters `json:"SidePolysDegLim"`
	IntegrationRelErr float64          `json:"IntegrationRelErr"`
	IntegrationAbsErr float64          `json:"IntegrationAbsErr"`
}

// Parse reads the parameters and fills in the default integration tolerances.
func (ip *WGParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	if ip.IntegrationRelErr == 0 {
		ip.IntegrationRelErr = mesh.DefaultIntegrationRelErr
	}
	if ip.IntegrationAbsErr == 0 {
		ip.IntegrationAbsErr = mesh.DefaultIntegrationAbsErr
	}
	return
}

func (ip *WGParameters) Validate() (err error) {
	d := len(ip.MeshLDims)
	if d == 0 {
		return types.InvalidConfigf("no MeshLDims")
	}
	if len(ip.MinBounds) != d || len(ip.MaxBounds) != d {
		return types.InvalidConfigf("MinBounds and MaxBounds need %d components, have %d and %d",
			d, len(ip.MinBounds), len(ip.MaxBounds))
	}
	if _, _, err = ip.DegLims(); err != nil {
		return
	}
	if ip.IntegrationRelErr < 0 || ip.IntegrationAbsErr < 0 {
		return types.InvalidConfigf("negative integration tolerance")
	}
	return
}

// DegLims are the interior and side degree limits.
func (ip *WGParameters) DegLims() (intLim, sideLim poly.DegLim, err error) {
	if intLim, err = poly.ParseDegLim(ip.IntPolysDegLim.Type, ip.IntPolysDegLim.K); err != nil {
		err = fmt.Errorf("IntPolysDegLim: %w", err)
		return
	}
	if sideLim, err = poly.ParseDegLim(ip.SidePolysDegLim.Type, ip.SidePolysDegLim.K); err != nil {
		err = fmt.Errorf("SidePolysDegLim: %w", err)
	}
	return
}

// NewMesh builds the mesh described by the parameters, using the exponent vector monomials.
func (ip *WGParameters) NewMesh() (rm *mesh.RectMesh, err error) {
	if err = ip.Validate(); err != nil {
		return
	}
	ldims := make([]types.MeshCoord, len(ip.MeshLDims))
	for r, l := range ip.MeshLDims {
		ldims[r] = types.MeshCoord(l)
	}
	return mesh.NewRectMeshWithErrTols(ip.MinBounds, ip.MaxBounds, ldims, poly.One(len(ldims)),
		ip.IntegrationRelErr, ip.IntegrationAbsErr)
}

func (ip *WGParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%v\t\t= MinBounds\n", ip.MinBounds)
	fmt.Printf("%v\t\t= MaxBounds\n", ip.MaxBounds)
	fmt.Printf("%v\t\t\t= MeshLDims\n", ip.MeshLDims)
	fmt.Printf("[%s(%d)]\t= Interior Degree Limit\n", ip.IntPolysDegLim.Type, ip.IntPolysDegLim.K)
	fmt.Printf("[%s(%d)]\t= Side Degree Limit\n", ip.SidePolysDegLim.Type, ip.SidePolysDegLim.K)
	fmt.Printf("%8.2e\t\t= Integration Relative Error\n", ip.IntegrationRelErr)
	fmt.Printf("%8.2e\t\t= Integration Absolute Error\n", ip.IntegrationAbsErr)
}

type SparseEntry struct {
	Row   int     `json:"Row"`
	Col   int     `json:"Col"`
	Value float64 `json:"Value"`
}

// Parameters for a sparse linear system, obtained from the YAML input file
type SystemParameters struct {
	Title   string        `json:"Title"`
	Type    string        `json:"Type"` // Symmetric (upper triangle entries only) or StructurallySymmetric
	Size    int           `json:"Size"`
	Entries []SparseEntry `json:"Entries"`
	RHS     [][]float64   `json:"RHS"` // One right hand side per member
}

func (sp *SystemParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, sp)
}

// MatrixType maps Type to the sparse matrix type.
func (sp *SystemParameters) MatrixType() (mt la.MatrixType, err error) {
	var ok bool
	if mt, ok = la.MatrixTypeNameMap[strings.ToLower(strings.TrimSpace(sp.Type))]; !ok {
		err = types.InvalidConfigf("unknown matrix type %q", sp.Type)
	}
	return
}

// NewSystem builds the sparse matrix and checks the right hand sides.
func (sp *SystemParameters) NewSystem() (A *la.SparseMatrix, err error) {
	var mt la.MatrixType
	if mt, err = sp.MatrixType(); err != nil {
		return
	}
	if sp.Size < 1 {
		return nil, types.InvalidConfigf("system size %d", sp.Size)
	}
	if len(sp.RHS) == 0 {
		return nil, types.InvalidConfigf("no right hand sides")
	}
	for n, b := range sp.RHS {
		if len(b) != sp.Size {
			return nil, types.InvalidConfigf("right hand side %d has %d values, system size is %d", n, len(b), sp.Size)
		}
	}
	A = la.NewSparseMatrix(sp.Size, sp.Size, mt)
	for _, e := range sp.Entries {
		if e.Row < 0 || e.Row >= sp.Size || e.Col < 0 || e.Col >= sp.Size {
			return nil, types.InvalidConfigf("entry (%d,%d) outside of %dx%d system", e.Row, e.Col, sp.Size, sp.Size)
		}
		A.Push(e.Row, e.Col, e.Value)
	}
	return
}

func (sp *SystemParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", sp.Title)
	fmt.Printf("[%s]\t= Matrix Type\n", sp.Type)
	fmt.Printf("[%d]\t\t\t\t= Size\n", sp.Size)
	fmt.Printf("[%d]\t\t\t\t= Entries\n", len(sp.Entries))
	fmt.Printf("[%d]\t\t\t\t= Right Hand Sides\n", len(sp.RHS))
}
