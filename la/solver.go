package la

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Status codes reported by failed solves
const (
	StatusOK                = 0
	StatusInputInconsistent = -1
	StatusZeroPivot         = -4
	StatusUnsupported       = -100
)

type SolveError struct {
	Status int
	Msg    string
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("sparse solve failed with status %d: %s", e.Status, e.Msg)
}

// Machine epsilon for float64
const epsilon = 0x1p-52

var nativeInit sync.Once

// Solver solves sparse systems using a fixed number of parallel workers. Native library setup
// happens once per process, on the first NewSolver.
type Solver struct {
	workers int
}

// NewSolver returns a solver using the given number of workers, all host CPUs if workers <= 0.
func NewSolver(workers int) *Solver {
	nativeInit.Do(initNative)
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Solver{workers: workers}
}

func (s *Solver) Workers() int { return s.workers }

/*
SolveSparse solves sys X = rhs, returning X with one column per right hand side column.
Symmetric systems must hold only their upper triangle. Structurally symmetric systems must have
a symmetric pattern of entries. General systems are not supported. Failures are *SolveError.
*/
func (s *Solver) SolveSparse(sys *SparseMatrix, rhs *mat.Dense) (X *mat.Dense, err error) {
	var (
		n, _     = sys.Dims()
		nb, nrhs = rhs.Dims()
	)
	if sys.MatrixType() == General {
		return nil, &SolveError{Status: StatusUnsupported, Msg: "general sparse systems are not supported"}
	}
	if err = sys.checkStructure(); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, &SolveError{Status: StatusInputInconsistent, Msg: "empty system"}
	}
	if nb != n {
		return nil, &SolveError{Status: StatusInputInconsistent,
			Msg: fmt.Sprintf("right hand side has %d rows, system has %d", nb, n)}
	}
	var (
		lu mat.LU
	)
	lu.Factorize(sys.dense())
	// The determinant underflows for well conditioned systems with small pivots, use the
	// condition estimate
	if cond := lu.Cond(); math.IsInf(cond, 1) || cond > 1/epsilon {
		return nil, &SolveError{Status: StatusZeroPivot,
			Msg: fmt.Sprintf("system matrix is singular, condition estimate %g", cond)}
	}
	X = mat.NewDense(n, nrhs, nil)
	var (
		pm = NewPartitionMap(s.workers, nrhs)
		eg errgroup.Group
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		np := np
		eg.Go(func() error {
			min, max := pm.GetBucketRange(np)
			for j := min; j < max; j++ {
				var x mat.VecDense
				if err := lu.SolveVecTo(&x, false, rhs.ColView(j)); err != nil {
					if _, ok := err.(mat.Condition); !ok {
						return &SolveError{Status: StatusZeroPivot, Msg: err.Error()}
					}
				}
				X.SetCol(j, x.RawVector().Data)
			}
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}
	return
}

// SolveSparseVec solves sys x = b for a single right hand side.
func (s *Solver) SolveSparseVec(sys *SparseMatrix, b []float64) (x []float64, err error) {
	if len(b) == 0 {
		return nil, &SolveError{Status: StatusInputInconsistent, Msg: "empty right hand side"}
	}
	var X *mat.Dense
	if X, err = s.SolveSparse(sys, mat.NewDense(len(b), 1, append([]float64{}, b...))); err != nil {
		return
	}
	return mat.Col(nil, 0, X), nil
}
