package cubature

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// Integrator integrates f over the axis aligned box [min, max] to within the given tolerances.
type Integrator interface {
	Integrate(f func(x []float64) float64, min, max []float64, relTol, absTol float64) float64
}

// IntegratorFunc adapts a plain function to the Integrator interface.
type IntegratorFunc func(f func(x []float64) float64, min, max []float64, relTol, absTol float64) float64

func (fn IntegratorFunc) Integrate(f func(x []float64) float64, min, max []float64, relTol, absTol float64) float64 {
	return fn(f, min, max, relTol, absTol)
}

/*
GaussLegendre is a tensor product Gauss-Legendre cubature. The number of points per axis starts
at MinOrder and doubles until two successive estimates agree within max(absTol, relTol*|I|), or
MaxOrder is reached. An n point rule is exact for polynomials of degree 2n-1 in each variable,
so polynomial integrands of modest degree converge on the first comparison.
*/
type GaussLegendre struct {
	MinOrder, MaxOrder int
}

var Default Integrator = GaussLegendre{MinOrder: 2, MaxOrder: 64}

func (gl GaussLegendre) Integrate(f func(x []float64) float64, min, max []float64, relTol, absTol float64) float64 {
	if len(min) != len(max) {
		panic(fmt.Errorf("box bounds have different dimensions: %d and %d", len(min), len(max)))
	}
	if len(min) == 0 { // A point
		return f([]float64{})
	}
	var (
		n     = gl.MinOrder
		prior float64
	)
	if n < 1 {
		n = 1
	}
	prior = tensorRule(f, min, max, n)
	for n*2 <= gl.MaxOrder {
		n *= 2
		est := tensorRule(f, min, max, n)
		if math.Abs(est-prior) <= math.Max(absTol, relTol*math.Abs(est)) {
			return est
		}
		prior = est
	}
	return prior
}

// Integrate uses the Default integrator.
func Integrate(f func(x []float64) float64, min, max []float64, relTol, absTol float64) float64 {
	return Default.Integrate(f, min, max, relTol, absTol)
}

func tensorRule(f func(x []float64) float64, min, max []float64, n int) float64 {
	var (
		d       = len(min)
		nodes   = make([][]float64, d)
		weights = make([][]float64, d)
		x       = make([]float64, d)
	)
	for r := 0; r < d; r++ {
		nodes[r], weights[r] = make([]float64, n), make([]float64, n)
		quad.Legendre{}.FixedLocations(nodes[r], weights[r], min[r], max[r])
	}
	var sum func(r int) float64
	sum = func(r int) (s float64) {
		for i := 0; i < n; i++ {
			x[r] = nodes[r][i]
			if r == d-1 {
				s += weights[r][i] * f(x)
			} else {
				s += weights[r][i] * sum(r+1)
			}
		}
		return
	}
	return sum(0)
}
