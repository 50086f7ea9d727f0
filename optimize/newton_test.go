// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// quarticProblem is f(x) = (x-5)^4, a 1D function with a degenerate
// (zero-curvature) minimum: the Hessian vanishes at the solution, exercising
// the subproblem solver's near-singular boundary case as the outer loop
// converges.
func quarticProblem() Problem {
	return Problem{
		Func: func(x []float64) float64 {
			d := x[0] - 5
			return d * d * d * d
		},
		Grad: func(grad, x []float64) []float64 {
			d := x[0] - 5
			grad[0] = 4 * d * d * d
			return grad
		},
		Hess: func(hess *mat.SymDense, x []float64) *mat.SymDense {
			d := x[0] - 5
			if hess == nil {
				hess = mat.NewSymDense(1, nil)
			}
			hess.SetSym(0, 0, 12*d*d)
			return hess
		},
	}
}

func TestMinimizeQuartic(t *testing.T) {
	p := quarticProblem()
	settings := &Settings{MaxIterations: 500}
	result, err := Minimize(p, []float64{0}, settings)
	if err != nil {
		t.Fatalf("Minimize returned error: %v", err)
	}
	if !result.Status.Converged() {
		t.Fatalf("did not converge: status %v", result.Status)
	}
	if math.Abs(result.X[0]-5) > 0.01 {
		t.Errorf("X = %v, want within 0.01 of 5", result.X)
	}
}

// anisotropicQuadraticProblem is f(x,y) = ½(x² + 0.9y²), a well-conditioned
// positive-definite quadratic that the trust-region step should solve
// essentially in one Newton step once the radius is unconstrained.
func anisotropicQuadraticProblem() Problem {
	a := []float64{1, 0.9}
	return Problem{
		Func: func(x []float64) float64 {
			return 0.5 * (a[0]*x[0]*x[0] + a[1]*x[1]*x[1])
		},
		Grad: func(grad, x []float64) []float64 {
			grad[0] = a[0] * x[0]
			grad[1] = a[1] * x[1]
			return grad
		},
		Hess: func(hess *mat.SymDense, x []float64) *mat.SymDense {
			if hess == nil {
				hess = mat.NewSymDense(2, nil)
			}
			hess.SetSym(0, 0, a[0])
			hess.SetSym(1, 1, a[1])
			hess.SetSym(0, 1, 0)
			return hess
		},
	}
}

func TestMinimizeAnisotropicQuadratic(t *testing.T) {
	p := anisotropicQuadraticProblem()
	settings := &Settings{InitialDelta: 10, DeltaMax: 1e6, MaxIterations: 200}
	result, err := Minimize(p, []float64{127, 921}, settings)
	if err != nil {
		t.Fatalf("Minimize returned error: %v", err)
	}
	if !result.Status.Converged() {
		t.Fatalf("did not converge: status %v", result.Status)
	}
	want := []float64{0, 0}
	if !floats.EqualApprox(result.X, want, 0.01) {
		t.Errorf("X = %v, want approximately %v", result.X, want)
	}
}

// negativeDefiniteProblem has a Hessian that is negative definite
// everywhere: the subproblem solve always lands on the boundary, so the
// outer loop makes progress only through boundary steps that move away from
// the stationary point at the origin, never through a classical interior
// Newton step.
func negativeDefiniteProblem() Problem {
	return Problem{
		Func: func(x []float64) float64 {
			return -0.5 * (x[0]*x[0] + x[1]*x[1])
		},
		Grad: func(grad, x []float64) []float64 {
			grad[0] = -x[0]
			grad[1] = -x[1]
			return grad
		},
		Hess: func(hess *mat.SymDense, x []float64) *mat.SymDense {
			if hess == nil {
				hess = mat.NewSymDense(2, nil)
			}
			hess.SetSym(0, 0, -1)
			hess.SetSym(1, 1, -1)
			hess.SetSym(0, 1, 0)
			return hess
		},
	}
}

func TestMinimizeNegativeDefiniteDoesNotCrash(t *testing.T) {
	p := negativeDefiniteProblem()
	settings := &Settings{InitialDelta: 1, DeltaMax: 5, MaxIterations: 50}
	result, err := Minimize(p, []float64{1, 1}, settings)
	if err != nil {
		t.Fatalf("Minimize returned error: %v", err)
	}
	// f is unbounded below, so the run must not report a false convergence;
	// it should exhaust its iteration budget or hit the Δ floor instead.
	if result.Status.Converged() {
		t.Errorf("reported spurious convergence with status %v on an unbounded objective", result.Status)
	}
}

// poisonedHessianProblem returns a NaN Hessian on every evaluation,
// including the first, modeling an oracle that is permanently poisoned.
func poisonedHessianProblem() Problem {
	return Problem{
		Func: func(x []float64) float64 {
			return 0.5 * floats.Dot(x, x)
		},
		Grad: func(grad, x []float64) []float64 {
			copy(grad, x)
			return grad
		},
		Hess: func(hess *mat.SymDense, x []float64) *mat.SymDense {
			if hess == nil {
				hess = mat.NewSymDense(len(x), nil)
			}
			hess.SetSym(0, 0, math.NaN())
			hess.SetSym(1, 1, math.NaN())
			hess.SetSym(0, 1, 0)
			return hess
		},
	}
}

func TestMinimizeNonFiniteHessianNeverConverges(t *testing.T) {
	p := poisonedHessianProblem()
	settings := &Settings{InitialDelta: 1, MaxIterations: 30}
	result, err := Minimize(p, []float64{1, 1}, settings)
	if err != nil {
		t.Fatalf("Minimize returned error: %v", err)
	}
	if result.Status.Converged() {
		t.Errorf("reported convergence %v despite a permanently poisoned Hessian", result.Status)
	}
	if result.FConverged || result.GConverged || result.XConverged {
		t.Errorf("convergence flags set on a poisoned run: F=%v G=%v X=%v",
			result.FConverged, result.GConverged, result.XConverged)
	}
}

func TestMinimizeRejectsNegativeDeltaMin(t *testing.T) {
	p := anisotropicQuadraticProblem()
	_, err := Minimize(p, []float64{1, 1}, &Settings{DeltaMin: -1})
	if err == nil {
		t.Fatal("expected a ConfigError for DeltaMin < 0, got nil")
	}
	if _, ok := err.(ConfigError); !ok {
		t.Errorf("err = %#v (%T), want ConfigError", err, err)
	}
}

func TestMinimizeZeroDimensional(t *testing.T) {
	p := anisotropicQuadraticProblem()
	_, err := Minimize(p, nil, nil)
	if err != ErrZeroDimensional {
		t.Errorf("err = %v, want ErrZeroDimensional", err)
	}
}

func TestMinimizeStoresTrace(t *testing.T) {
	p := anisotropicQuadraticProblem()
	settings := &Settings{InitialDelta: 10, MaxIterations: 200, StoreTrace: true, ExtendedTrace: true}
	result, err := Minimize(p, []float64{3, 4}, settings)
	if err != nil {
		t.Fatalf("Minimize returned error: %v", err)
	}
	if len(result.Trace) == 0 {
		t.Fatal("expected a non-empty trace with StoreTrace set")
	}
	for i, rec := range result.Trace {
		if len(rec.Eigenvalues) == 0 {
			t.Errorf("record %d: expected Eigenvalues populated with ExtendedTrace set", i)
		}
	}
}

func TestMinimizeCallbackStop(t *testing.T) {
	p := anisotropicQuadraticProblem()
	calls := 0
	settings := &Settings{
		InitialDelta:  0.01, // force several iterations before convergence
		MaxIterations: 200,
		Callback: func(stats *Stats) bool {
			calls++
			return calls < 2
		},
	}
	result, err := Minimize(p, []float64{100, 100}, settings)
	if err != nil {
		t.Fatalf("Minimize returned error: %v", err)
	}
	if result.Status != CallbackStop {
		t.Errorf("Status = %v, want CallbackStop", result.Status)
	}
}
