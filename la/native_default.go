//go:build !netlib

package la

// initNative leaves gonum on its pure Go BLAS.
func initNative() {}
