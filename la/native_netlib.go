//go:build netlib

package la

import (
	"log"

	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// initNative routes gonum's BLAS calls to the system's native CBLAS.
func initNative() {
	blas64.Use(netblas.Implementation{})
	log.Printf("Using netlib to accelerate BLAS")
}
