// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linalg wraps the symmetric-matrix factorizations that the
// trust-region subproblem solver and its driver need: a symmetric
// eigendecomposition, a positive-definite Cholesky test, and the triangular
// solve that rides on it. It is a thin adapter over gonum.org/v1/gonum/mat;
// the only behavior added on top of mat is that no routine here panics on
// non-finite input, which mat's factorizations do not guarantee on their
// own: Eigh and CholeskyPD report it as a failure (ok == false), and
// TriangularSolve passes a non-finite right-hand side through to its result.
package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Symmetrize returns a *mat.SymDense built from the upper and lower
// triangles of a, averaged: Symmetrize(A)_ij = (A_ij + A_ji) / 2. It is the
// defensive H ← ½(H + Hᵀ) step called for before any factorization runs on
// caller-supplied data that is only promised, not guaranteed, to be exactly
// symmetric.
func Symmetrize(n int, at func(i, j int) float64) *mat.SymDense {
	data := make([]float64, n*n)
	sym := mat.NewSymDense(n, data)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := at(i, j)
			if i != j {
				v = (v + at(j, i)) / 2
			}
			sym.SetSym(i, j, v)
		}
	}
	return sym
}

// finite reports whether every entry of the symmetric matrix a is finite.
func finite(a mat.Symmetric) bool {
	n := a.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := a.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// finiteVec reports whether every entry of v is finite.
func finiteVec(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// EigenResult holds the ascending eigenvalues and orthonormal eigenvectors
// of a symmetric matrix, as columns of Vectors corresponding by index to
// Values.
type EigenResult struct {
	Values  []float64
	Vectors *mat.Dense
}

// Eigh computes the symmetric eigendecomposition H = Q diag(Values) Qᵀ with
// Values in ascending order, mirroring mat.EigenSym.Factorize (eigen.go).
// Eigh never panics on bad input: if a contains a NaN or Inf entry, or if
// the underlying LAPACK routine fails to converge, ok is false and Values,
// Vectors are nil.
func Eigh(a mat.Symmetric) (result EigenResult, ok bool) {
	if !finite(a) {
		return EigenResult{}, false
	}
	var eig mat.EigenSym
	if !eig.Factorize(a, true) {
		return EigenResult{}, false
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	vectors.EigenvectorsSym(&eig)
	return EigenResult{Values: values, Vectors: &vectors}, true
}
