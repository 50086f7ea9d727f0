// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import "gonum.org/v1/gonum/mat"

// CholeskyPD attempts a Cholesky factorization of the symmetric matrix a,
// mirroring mat.Cholesky.Factorize. It reports ok == false, without
// panicking, both when a is not positive definite (the ⊥ outcome required
// by the positive-definiteness contract) and when a contains a non-finite
// entry.
func CholeskyPD(a mat.Symmetric) (chol *mat.Cholesky, ok bool) {
	if !finite(a) {
		return nil, false
	}
	chol = new(mat.Cholesky)
	if !chol.Factorize(a) {
		return nil, false
	}
	return chol, true
}

// TriangularSolve solves A x = b given a's successful Cholesky
// factorization chol, returning x. It propagates a non-finite b straight
// through to a non-finite x rather than raising, matching the C1 contract
// that every primitive here propagates non-finite inputs to their outputs.
func TriangularSolve(chol *mat.Cholesky, b []float64) []float64 {
	n := len(b)
	x := mat.NewVecDense(n, nil)
	if !finiteVec(b) {
		for i := range b {
			x.SetVec(i, b[i])
		}
		return x.RawVector().Data
	}
	bv := mat.NewVecDense(n, append([]float64(nil), b...))
	if err := x.SolveVec(chol, bv); err != nil {
		// Factorize already established a is PD; a solve failure here can
		// only mean a dimension mismatch, a programmer error rather than a
		// numerical one, so surface it the same way mat itself would.
		panic(err)
	}
	return x.RawVector().Data
}
