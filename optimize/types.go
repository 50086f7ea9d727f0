// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optimize drives a trust-region Newton method: at every major
// iteration it asks a Problem for the value, gradient, and Hessian at the
// current point, hands the gradient and Hessian to package trustregion to
// compute a bounded step, and accepts or rejects that step by the
// actual/predicted reduction ratio, adjusting the trust-region radius as it
// goes. It is the driver around the subproblem solver described in package
// trustregion's doc comment, generalized from the single-objective
// optimize.Problem/Settings/Result shape of gonum.org/v1/gonum/optimize.
package optimize

import "gonum.org/v1/gonum/mat"

// Problem describes the function being minimized. Func, Grad, and Hess
// must not modify x. Hess may use and return the supplied *mat.SymDense if
// it is non-nil, avoiding an allocation per iteration.
//
// All three fields must be non-nil: unlike the broader optimize.Problem
// this package is modeled on, Minimize always needs the Hessian.
type Problem struct {
	Func func(x []float64) float64
	Grad func(grad, x []float64) []float64
	Hess func(hess *mat.SymDense, x []float64) *mat.SymDense
}

// Record is one entry of a stored optimization trace.
type Record struct {
	Iteration int
	X         []float64
	F         float64
	GradNorm  float64
	Delta     float64
	Lambda    float64
	Interior  bool
	HardCase  bool
	// Eigenvalues holds the Hessian eigenvalues computed by the
	// subproblem solve at this iteration, populated only when
	// Settings.ExtendedTrace is set.
	Eigenvalues []float64
}
