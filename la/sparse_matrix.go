package la

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

type MatrixType uint8

const (
	General MatrixType = iota
	// Symmetric matrices are given by their upper triangle only
	Symmetric
	// StructurallySymmetric matrices have a symmetric nonzero pattern, values may differ
	StructurallySymmetric
)

func (t MatrixType) String() string {
	switch t {
	case General:
		return "General"
	case Symmetric:
		return "Symmetric"
	case StructurallySymmetric:
		return "StructurallySymmetric"
	default:
		return fmt.Sprintf("MatrixType(%d)", uint8(t))
	}
}

var MatrixTypeNameMap = map[string]MatrixType{
	"general":               General,
	"symmetric":             Symmetric,
	"structurallysymmetric": StructurallySymmetric,
}

// SparseMatrix accumulates entries in dictionary of keys form and is compressed to CSR for
// solving.
type SparseMatrix struct {
	mtype MatrixType
	M     *sparse.DOK
}

func NewSparseMatrix(nr, nc int, mtype MatrixType) *SparseMatrix {
	return &SparseMatrix{
		mtype: mtype,
		M:     sparse.NewDOK(nr, nc),
	}
}

// Push adds v to entry (i, j). Entries pushed more than once are summed.
func (m *SparseMatrix) Push(i, j int, v float64) {
	nr, nc := m.M.Dims()
	if i < 0 || i >= nr || j < 0 || j >= nc {
		panic(fmt.Errorf("entry (%d,%d) outside of %dx%d sparse matrix", i, j, nr, nc))
	}
	m.M.Set(i, j, m.M.At(i, j)+v)
}

func (m *SparseMatrix) Dims() (r, c int)       { return m.M.Dims() }
func (m *SparseMatrix) At(i, j int) float64    { return m.M.At(i, j) }
func (m *SparseMatrix) MatrixType() MatrixType { return m.mtype }
func (m *SparseMatrix) NumNonZeros() int       { return m.M.NNZ() }
func (m *SparseMatrix) ToCSR() *sparse.CSR     { return m.M.ToCSR() }

// CSR3 returns the three array compressed row form: row pointers, column indices and values.
// Row i's entries are at positions [rowPtrs[i], rowPtrs[i+1]).
func (m *SparseMatrix) CSR3() (rowPtrs, colIdxs []int, vals []float64) {
	raw := m.M.ToCSR().RawMatrix()
	return raw.Indptr, raw.Ind, raw.Data
}

// checkStructure verifies the entries are consistent with the matrix type.
func (m *SparseMatrix) checkStructure() (err error) {
	nr, nc := m.Dims()
	if nr != nc {
		return &SolveError{Status: StatusInputInconsistent, Msg: fmt.Sprintf("matrix is %dx%d, not square", nr, nc)}
	}
	var (
		rowPtrs, colIdxs, _ = m.CSR3()
		pattern             = make(map[[2]int]bool, len(colIdxs))
	)
	for i := 0; i < nr; i++ {
		for k := rowPtrs[i]; k < rowPtrs[i+1]; k++ {
			pattern[[2]int{i, colIdxs[k]}] = true
		}
	}
	for i := 0; i < nr; i++ {
		for k := rowPtrs[i]; k < rowPtrs[i+1]; k++ {
			j := colIdxs[k]
			switch m.mtype {
			case Symmetric:
				if j < i {
					return &SolveError{Status: StatusInputInconsistent,
						Msg: fmt.Sprintf("lower triangular entry (%d,%d) in symmetric matrix, give the upper triangle only", i, j)}
				}
			case StructurallySymmetric:
				if !pattern[[2]int{j, i}] {
					return &SolveError{Status: StatusInputInconsistent,
						Msg: fmt.Sprintf("entry (%d,%d) has no transposed entry in structurally symmetric matrix", i, j)}
				}
			}
		}
	}
	return
}

// dense expands the matrix, mirroring the upper triangle of symmetric matrices.
func (m *SparseMatrix) dense() (A *mat.Dense) {
	var (
		nr, nc                 = m.Dims()
		rowPtrs, colIdxs, vals = m.CSR3()
	)
	A = mat.NewDense(nr, nc, nil)
	for i := 0; i < nr; i++ {
		for k := rowPtrs[i]; k < rowPtrs[i+1]; k++ {
			j := colIdxs[k]
			A.Set(i, j, vals[k])
			if m.mtype == Symmetric {
				A.Set(j, i, vals[k])
			}
		}
	}
	return
}
