// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trustregion

import "math"

// CheckHardCaseCandidate inspects the eigenvalues of H, in ascending order,
// and the gradient ĝ projected onto H's eigenbasis, and reports whether the
// configuration is structurally a hard case: the gradient has no component
// along the eigenspace of the smallest eigenvalue λ₁.
//
// It returns hardCase == true together with lambdaIndex, the 1-based index
// (in the ascending λ ordering) of the first eigenvalue outside the λ₁
// eigenspace with a nonzero ĝ component. If ĝ is entirely zero, lambdaIndex
// is len(lambda)+1, signaling the pure-descent-direction degeneracy where
// the λ₁ eigenvector alone (scaled to the boundary) solves the subproblem.
//
// CheckHardCaseCandidate only tests the structural condition. The solver
// additionally confirms that the shifted Newton step at λ = −λ₁ stays
// strictly inside the trust region before committing to the hard-case
// construction; that second test needs Δ and so is not part of this
// isolated, testable helper.
func CheckHardCaseCandidate(lambda, ghat []float64) (hardCase bool, lambdaIndex int) {
	n := len(lambda)
	if n == 0 {
		return false, 0
	}
	lambda1 := lambda[0]
	if lambda1 >= 0 {
		return false, 0
	}

	tol := 1e-10 * norm2(ghat)

	// p is the size of the ascending prefix sharing the smallest eigenvalue.
	p := 1
	for p < n && math.Abs(lambda[p]-lambda1) <= tol {
		p++
	}

	// The gradient must have no component in the λ₁ eigenspace.
	jStar := -1
	for i := 0; i < n; i++ {
		if math.Abs(ghat[i]) > tol {
			if i < p {
				return false, 0
			}
			if jStar == -1 {
				jStar = i
			}
		}
	}
	if jStar == -1 {
		// ĝ is zero everywhere: the pure-descent degeneracy.
		return true, n + 1
	}
	return true, jStar + 1
}

func norm2(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}
