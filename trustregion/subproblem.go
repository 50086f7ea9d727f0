// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trustregion solves the Moré–Sorensen trust-region subproblem
//
//	min_s  gᵀs + ½ sᵀHs   subject to  ‖s‖ ≤ Δ
//
// for an arbitrary symmetric, possibly indefinite, Hessian H. It is the
// routine a Newton trust-region optimizer calls at every outer iteration to
// turn a local quadratic model into a bounded step; see package optimize
// for the driver that does so.
package trustregion

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/gonum-community/trustregion/linalg"
)

// DefaultMaxIters is the iteration budget used by Solve when the caller
// passes maxIters <= 0, matching the max_iters=20 default from the external
// interface.
const DefaultMaxIters = 20

// Output reports the result of a trust-region subproblem solve.
type Output struct {
	// M is the model value gᵀs + ½sᵀHs at the returned step.
	M float64
	// Interior is true iff λ == 0, H is positive definite, and ‖s‖ < Δ.
	Interior bool
	// Lambda is the Lagrange multiplier; zero when Interior is true.
	Lambda float64
	// HardCase is true iff the degenerate hard case (the gradient has no
	// component along the eigenspace of the smallest eigenvalue, so the
	// usual shifted Newton step cannot reach the boundary on its own) was
	// detected and handled.
	HardCase bool
	// ReachedSolution is true iff the boundary-case root-finder converged
	// to tolerance within the iteration budget. It is also true for the
	// interior and hard cases, which are solved in closed form. A caller
	// still receives a usable step when ReachedSolution is false.
	ReachedSolution bool
	// Eigenvalues holds the ascending eigenvalues of H computed during
	// the solve, or nil if the eigendecomposition itself failed (the
	// non-finite-H fast path). The eigendecomposition dominates the cost
	// of Solve regardless, so exposing it here is free and lets a caller
	// build an extended diagnostic trace without recomputing it.
	Eigenvalues []float64
}

// tolerance for declaring φ(λ) == Δ in the boundary root-finder.
const epsTol = 1e-10

// Solve computes a step s that approximately minimizes gᵀs + ½sᵀHs subject
// to ‖s‖ ≤ Δ, writing it into the caller-supplied sOut (which must have
// length len(g)) and returning the remaining fields of the Moré–Sorensen
// characterization.
//
// Solve never panics on a pathological H: if H or g contains a NaN or Inf
// entry, sOut is zeroed, the model value is zero, and ReachedSolution is
// false, leaving the decision to reject the step to the caller (the
// trust-region outer loop).
//
// maxIters bounds the boundary-case root-finder; if it is <= 0,
// DefaultMaxIters is used.
func Solve(g []float64, h mat.Symmetric, delta float64, sOut []float64, maxIters int) Output {
	n := len(g)
	if maxIters <= 0 {
		maxIters = DefaultMaxIters
	}

	fail := func() Output {
		for i := range sOut {
			sOut[i] = 0
		}
		return Output{}
	}

	if !finiteVec(g) || delta <= 0 {
		return fail()
	}

	eig, ok := linalg.Eigh(h)
	if !ok {
		return fail()
	}
	values := eig.Values
	q := eig.Vectors

	ghat := make([]float64, n)
	for i := 0; i < n; i++ {
		var s float64
		for k := 0; k < n; k++ {
			s += q.At(k, i) * g[k]
		}
		ghat[i] = s
	}

	normG := floats.Norm(g, 2)
	ghatTol := 1e-10 * normG
	lambda1 := values[0]
	epsPD := 1e-10 * infNorm(h)

	// Case A: interior.
	if lambda1 > epsPD {
		shat := make([]float64, n)
		var normSq float64
		for i := 0; i < n; i++ {
			shat[i] = -ghat[i] / values[i]
			normSq += shat[i] * shat[i]
		}
		if math.Sqrt(normSq) < delta {
			writeStep(sOut, q, shat)
			return Output{
				M:               modelValue(ghat, values, shat),
				Interior:        true,
				Lambda:          0,
				ReachedSolution: true,
				Eigenvalues:     values,
			}
		}
	}

	// Case C: hard case.
	if hard, _ := CheckHardCaseCandidate(values, ghat); hard {
		shat := make([]float64, n)
		var partial float64
		for i := 0; i < n; i++ {
			if values[i] > lambda1+ghatTol {
				shat[i] = -ghat[i] / (values[i] - lambda1)
				partial += shat[i] * shat[i]
			}
		}
		if math.Sqrt(partial) < delta {
			tauSq := delta*delta - partial
			if tauSq < 0 {
				tauSq = 0
			}
			shat[0] += math.Sqrt(tauSq)
			writeStep(sOut, q, shat)
			return Output{
				M:               modelValue(ghat, values, shat),
				Interior:        false,
				Lambda:          -lambda1,
				HardCase:        true,
				ReachedSolution: true,
				Eigenvalues:     values,
			}
		}
	}

	// Case B: boundary, easy case. Safeguarded Newton on
	// ψ(λ) = 1/Δ − 1/φ(λ), bracketed in [lower, upper].
	lower := math.Max(0, -lambda1) + 1e-12*math.Max(1, math.Abs(lambda1))
	upper := normG/delta + infNorm(h)
	if upper <= lower {
		upper = lower + 1
	}
	lambda := lower

	phi := func(l float64) (val float64, shat []float64) {
		shat = make([]float64, n)
		var sq float64
		for i := 0; i < n; i++ {
			shat[i] = -ghat[i] / (values[i] + l)
			sq += shat[i] * shat[i]
		}
		return math.Sqrt(sq), shat
	}

	reached := false
	for iter := 0; iter < maxIters; iter++ {
		phiVal, _ := phi(lambda)
		if math.Abs(phiVal-delta) <= epsTol*math.Max(delta, 1) {
			reached = true
			break
		}

		var phiPrimeSum float64
		for i := 0; i < n; i++ {
			d := values[i] + lambda
			phiPrimeSum += ghat[i] * ghat[i] / (d * d * d)
		}
		phiPrime := -phiPrimeSum / phiVal

		next := lambda
		if phiPrime != 0 {
			next = lambda - (phiVal-delta)/delta*phiVal/phiPrime
		}
		if !(next > lower && next < upper) || phiPrime == 0 {
			// Bisection fallback: φ is decreasing, so φ > Δ means λ is too
			// small and φ < Δ means λ is too large.
			if phiVal > delta {
				lower = lambda
			} else {
				upper = lambda
			}
			next = (lower + upper) / 2
		} else if phiVal > delta {
			lower = lambda
		} else {
			upper = lambda
		}
		lambda = next
	}
	// shat must be recomputed from the final lambda: whichever branch ended
	// the loop above, lambda may have been reassigned since the last phi
	// evaluation, and the returned step must solve (H+lambda*I)s = -g for
	// the lambda actually reported in Output.
	_, shat := phi(lambda)

	writeStep(sOut, q, shat)
	return Output{
		M:               modelValue(ghat, values, shat),
		Interior:        false,
		Lambda:          lambda,
		ReachedSolution: reached,
		Eigenvalues:     values,
	}
}

func writeStep(sOut []float64, q *mat.Dense, shat []float64) {
	n := len(shat)
	for i := 0; i < n; i++ {
		var v float64
		for k := 0; k < n; k++ {
			v += q.At(i, k) * shat[k]
		}
		sOut[i] = v
	}
}

func modelValue(ghat, values, shat []float64) float64 {
	var m float64
	for i := range shat {
		m += ghat[i]*shat[i] + 0.5*values[i]*shat[i]*shat[i]
	}
	return m
}

func infNorm(h mat.Symmetric) float64 {
	n := h.SymmetricDim()
	var max float64
	for i := 0; i < n; i++ {
		var rowSum float64
		for j := 0; j < n; j++ {
			rowSum += math.Abs(h.At(i, j))
		}
		if rowSum > max {
			max = rowSum
		}
	}
	return max
}

func finiteVec(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
