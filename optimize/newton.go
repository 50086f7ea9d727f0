// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/gonum-community/trustregion/trustregion"
)

// Minimize runs a trust-region Newton minimization of problem starting from
// x0, following the seven-step state machine: evaluate f/g/H, check
// convergence, call the subproblem solver for a bounded step, evaluate the
// step, update the trust-region radius by the actual/predicted reduction
// ratio, accept or reject, and enforce the radius floor. It is the driver
// around package trustregion, run as a single synchronous call: there are no
// suspension points, matching a single-threaded, synchronous concurrency
// model.
//
// Minimize returns a non-nil error only for a programmer mistake discovered
// before iteration begins (an invalid Settings field, or a dimension
// mismatch between x0 and the gradient or Hessian); every other outcome,
// including non-convergence, is reported through Result.Status.
func Minimize(problem Problem, x0 []float64, settings *Settings) (*Result, error) {
	if len(x0) == 0 {
		return nil, ErrZeroDimensional
	}
	var s Settings
	if settings != nil {
		s = *settings
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	s = s.withDefaults()

	n := len(x0)
	x := append([]float64(nil), x0...)
	g := make([]float64, n)
	step := make([]float64, n)
	xNext := make([]float64, n)
	var hess *mat.SymDense

	delta := s.InitialDelta
	stats := Stats{}
	start := time.Now()

	f := problem.Func(x)
	stats.FuncEvaluations++
	g = problem.Grad(g, x)
	stats.GradEvaluations++
	hess = problem.Hess(hess, x)
	stats.HessEvaluations++
	if hess.SymmetricDim() != n {
		return nil, DimensionError{Want: n, Got: hess.SymmetricDim(), Where: "Hess"}
	}
	if len(g) != n {
		return nil, DimensionError{Want: n, Got: len(g), Where: "Grad"}
	}

	var result Result
	result.Trace = nil

	recordIter := func(iter int, sub trustregion.Output, lambda float64) {
		if !s.StoreTrace && s.Recorder == nil {
			return
		}
		rec := Record{
			Iteration: iter,
			X:         append([]float64(nil), x...),
			F:         f,
			GradNorm:  infNorm(g),
			Delta:     delta,
			Lambda:    lambda,
			Interior:  sub.Interior,
			HardCase:  sub.HardCase,
		}
		if s.Recorder != nil {
			s.Recorder.Record(rec)
		}
		if !s.StoreTrace {
			return
		}
		if s.ExtendedTrace {
			rec.Eigenvalues = append([]float64(nil), sub.Eigenvalues...)
		}
		result.Trace = append(result.Trace, rec)
	}

	for iter := 0; ; iter++ {
		gNorm := infNorm(g)
		if gNorm <= s.GradientThreshold {
			result.Status = GradientConvergence
			result.GConverged = true
			break
		}
		if delta <= s.DeltaMin {
			result.Status = DeltaAtFloor
			break
		}
		if iter >= s.MaxIterations {
			result.Status = IterationLimit
			break
		}
		if s.TimeLimit > 0 && time.Since(start) >= s.TimeLimit {
			result.Status = RuntimeLimit
			break
		}

		sub := trustregion.Solve(g, hess, delta, step, s.SubproblemMaxIters)
		recordIter(iter, sub, sub.Lambda)

		stepNorm := floats.Norm(step, 2)
		floats.AddScaledTo(xNext, x, 1, step)
		fNext := problem.Func(xNext)
		stats.FuncEvaluations++

		accept, rho := evaluateStep(f, fNext, sub.M, *s.Eta, s.AllowFIncreases)
		delta = updateDelta(delta, rho, stepNorm, s.DeltaMax, s.RhoLower, s.RhoUpper)
		if delta < s.DeltaMin {
			delta = s.DeltaMin
		}

		if accept {
			if s.FunctionThreshold > 0 && f != 0 {
				relDecrease := (f - fNext) / math.Abs(f)
				if relDecrease >= 0 && relDecrease <= s.FunctionThreshold {
					x, xNext = xNext, x
					f = fNext
					result.Status = FunctionConvergence
					result.FConverged = true
					stats.MajorIterations = iter + 1
					break
				}
			}
			if s.StepThreshold > 0 && stepNorm <= s.StepThreshold {
				x, xNext = xNext, x
				f = fNext
				result.Status = StepConvergence
				result.XConverged = true
				stats.MajorIterations = iter + 1
				break
			}

			x, xNext = xNext, x
			f = fNext
			g = problem.Grad(g, x)
			stats.GradEvaluations++
			hess = problem.Hess(hess, x)
			stats.HessEvaluations++
		}

		stats.MajorIterations = iter + 1

		if s.Callback != nil && !s.Callback(&stats) {
			result.Status = CallbackStop
			break
		}
	}

	stats.Runtime = time.Since(start)
	result.X = x
	result.F = f
	result.Gradient = g
	result.Stats = stats
	return &result, nil
}

// evaluateStep reports whether the trial step should be accepted and the
// actual/predicted reduction ratio ρ used to decide it and the Δ update. A
// non-finite fNext is treated as an infinitely bad step: ρ is driven to
// -Inf, so the step is always rejected and Δ always shrinks.
func evaluateStep(f, fNext, mPred, eta float64, allowFIncreases bool) (accept bool, rho float64) {
	if math.IsNaN(fNext) || math.IsInf(fNext, 0) {
		return false, math.Inf(-1)
	}
	actual := f - fNext
	predicted := -mPred
	if predicted == 0 {
		rho = 0
	} else {
		rho = actual / predicted
	}
	if rho <= eta {
		return false, rho
	}
	if !allowFIncreases && fNext > f {
		return false, rho
	}
	return true, rho
}

// updateDelta applies the standard ρ-based trust-region radius update:
// shrink to a quarter of the step length when ρ < rhoLower, double (capped
// at deltaMax) when ρ > rhoUpper and the step reached the boundary,
// otherwise leave Δ unchanged.
func updateDelta(delta, rho, stepNorm, deltaMax, rhoLower, rhoUpper float64) float64 {
	const boundaryEps = 1e-8
	switch {
	case rho < rhoLower:
		return 0.25 * stepNorm
	case rho > rhoUpper && stepNorm >= delta*(1-boundaryEps):
		next := 2 * delta
		if next > deltaMax {
			next = deltaMax
		}
		return next
	default:
		return delta
	}
}

func infNorm(v []float64) float64 {
	var max float64
	for _, x := range v {
		if a := math.Abs(x); a > max {
			max = a
		}
	}
	return max
}
