// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trustregion

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func randSymDense(n int, src *rand.Rand) *mat.SymDense {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = src.NormFloat64() * 5
	}
	return linalgSymmetrize(n, data)
}

func linalgSymmetrize(n int, data []float64) *mat.SymDense {
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, (data[i*n+j]+data[j*n+i])/2)
		}
	}
	return sym
}

func modelAt(g []float64, h mat.Symmetric, s []float64) float64 {
	n := len(g)
	hv := mat.NewVecDense(n, nil)
	hv.MulVec(h, mat.NewVecDense(n, s))
	return floats.Dot(g, s) + 0.5*mat.Dot(hv, mat.NewVecDense(n, s))
}

func smallestEigenvalue(h mat.Symmetric) float64 {
	var eig mat.EigenSym
	eig.Factorize(h, false)
	v := eig.Values(nil)
	min := v[0]
	for _, x := range v {
		if x < min {
			min = x
		}
	}
	return min
}

func TestSolveInvariants(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		n := 2 + trial%4
		g := make([]float64, n)
		for i := range g {
			g[i] = src.NormFloat64() * 3
		}
		h := randSymDense(n, src)
		delta := 0.1 + src.Float64()*5

		s := make([]float64, n)
		out := Solve(g, h, delta, s, DefaultMaxIters)

		norm := floats.Norm(s, 2)
		if norm > delta*(1+1e-6) {
			t.Fatalf("trial %d: ||s|| = %v > Δ(1+ε) = %v", trial, norm, delta*(1+1e-6))
		}

		m0 := modelAt(g, h, make([]float64, n))
		mS := modelAt(g, h, s)
		if mS > m0+1e-8 {
			t.Fatalf("trial %d: m(s) = %v > m(0) = %v", trial, mS, m0)
		}
		if diff := math.Abs(mS - out.M); diff > 1e-6*math.Max(1, math.Abs(mS)) {
			t.Fatalf("trial %d: reported M = %v, recomputed m(s) = %v", trial, out.M, mS)
		}

		// Compare against random feasible points: s should dominate them.
		for k := 0; k < 20; k++ {
			sp := make([]float64, n)
			for i := range sp {
				sp[i] = src.NormFloat64()
			}
			norm := floats.Norm(sp, 2)
			r := src.Float64() * delta
			if norm > 0 {
				floats.Scale(r/norm, sp)
			}
			if modelAt(g, h, sp) < mS-1e-6 {
				t.Fatalf("trial %d: feasible s' beats returned s (%v < %v)", trial, modelAt(g, h, sp), mS)
			}
		}

		lambda1 := smallestEigenvalue(h)
		if out.Interior {
			if out.Lambda != 0 {
				t.Fatalf("trial %d: interior but lambda = %v", trial, out.Lambda)
			}
			if lambda1 <= 0 {
				t.Fatalf("trial %d: interior but H is not PD (λ1 = %v)", trial, lambda1)
			}
			if norm >= delta {
				t.Fatalf("trial %d: interior but ||s|| = %v >= Δ = %v", trial, norm, delta)
			}
		} else {
			if math.Abs(norm-delta) > 1e-6*math.Max(1, delta) {
				t.Fatalf("trial %d: non-interior but ||s|| = %v != Δ = %v", trial, norm, delta)
			}
		}
		if out.HardCase {
			if math.Abs(out.Lambda+lambda1) > 1e-4 {
				t.Fatalf("trial %d: hard case but λ + λ1 = %v", trial, out.Lambda+lambda1)
			}
		}
	}
}

func TestSolveNegativeDefiniteDoesNotRaise(t *testing.T) {
	g := []float64{0, 1}
	h := mat.NewSymDense(2, []float64{-1000, 0, 0, -999})
	delta := 1e-2

	s := make([]float64, 2)
	out := Solve(g, h, delta, s, DefaultMaxIters)

	norm := floats.Norm(s, 2)
	if math.Abs(norm-delta) > 1e-8 {
		t.Fatalf("||s|| = %v, want Δ = %v", norm, delta)
	}
	if out.Interior {
		t.Fatalf("negative-definite Hessian reported an interior solution")
	}
}

func TestSolveNonFiniteHessianDoesNotRaise(t *testing.T) {
	g := []float64{1, 1}
	h := mat.NewSymDense(2, []float64{math.NaN(), 0, 0, 1})
	s := []float64{99, 99}
	out := Solve(g, h, 1, s, DefaultMaxIters)

	if out.ReachedSolution {
		t.Fatalf("ReachedSolution = true for a NaN Hessian")
	}
	if out.M != 0 {
		t.Fatalf("M = %v, want 0", out.M)
	}
	for i, v := range s {
		if v != 0 {
			t.Fatalf("s[%d] = %v, want 0", i, v)
		}
	}
}

func TestSolveHardCase(t *testing.T) {
	// H = diag(-1,-1,3), g chosen with ĝ ⊥ the λ1 eigenspace (here H's own
	// basis is the standard basis, so g must be zero along the first two
	// coordinates) and a large enough Δ that the shifted Newton step alone
	// does not reach the boundary, forcing the τ q1 term in.
	h := mat.NewSymDense(3, []float64{
		-1, 0, 0,
		0, -1, 0,
		0, 0, 3,
	})
	g := []float64{0, 0, 1}
	delta := 10.0

	s := make([]float64, 3)
	out := Solve(g, h, delta, s, DefaultMaxIters)

	if !out.HardCase {
		t.Fatalf("expected hard case to be detected")
	}
	norm := floats.Norm(s, 2)
	if math.Abs(norm-delta) > 1e-6 {
		t.Fatalf("||s|| = %v, want Δ = %v", norm, delta)
	}
	if math.Abs(out.Lambda-1) > 1e-8 {
		t.Fatalf("lambda = %v, want 1 (=-λ1)", out.Lambda)
	}
}
