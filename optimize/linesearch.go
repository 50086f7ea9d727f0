// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "gonum.org/v1/gonum/floats"

// Linesearcher finds a step length along a fixed search direction, given
// the value and directional derivative at the current point and an
// evaluator for points further along the direction. Minimize never uses one
// itself, since the trust-region step already carries its own
// length control, but an LBFGS search direction needs one to turn a
// direction into a full step.
type Linesearcher interface {
	// Search returns a step size t > 0 such that x + t*dir is an
	// acceptable next point, given the value and directional derivative at
	// the current point (f0, g0) and an evaluator that reports the value
	// and directional derivative at x + t*dir.
	Search(f0, g0 float64, eval func(step float64) (f, g float64)) float64
}

const (
	defaultBacktrackingDecrease = 0.5
	defaultBacktrackingFunConst = 1e-4
)

// Backtracking is a Linesearcher that repeatedly shrinks the step by
// Decrease until the Armijo sufficient-decrease condition holds. Search
// runs the whole backtracking loop itself in a single call, rather than
// exposing a stateful step-by-step protocol, since nothing here needs a
// suspension point between shrinks.
//
// Backtracking only checks the Armijo condition, not the Wolfe curvature
// condition, so it is not an appropriate line search for BFGS-family
// methods that require the latter; it is adequate for an LBFGS direction
// demonstration, which is the only place it is exercised here.
type Backtracking struct {
	// Decrease is the step-size multiplier applied each time the Armijo
	// condition fails. Must be in (0, 1). Defaults to 0.5.
	Decrease float64
	// FunConst is the Armijo sufficient-decrease constant c₁. Must be in
	// (0, 1). Defaults to 1e-4.
	FunConst float64
	// MaxIterations caps the number of step shrinks. Defaults to 100.
	MaxIterations int
}

// armijoMet reports whether f(step) <= f0 + c1*step*g0, the sufficient
// decrease condition for a descent direction (g0 < 0).
func armijoMet(f, f0, g0, step, c1 float64) bool {
	return f <= f0+c1*step*g0
}

// Search runs backtracking from an initial step size of 1, multiplying the
// step by Decrease (halving it by default) until the Armijo condition holds,
// and returns the first step that satisfies it. If MaxIterations shrinks
// all fail, it returns the step after the last shrink, which has not been
// evaluated.
func (b *Backtracking) Search(f0, g0 float64, eval func(step float64) (f, g float64)) float64 {
	decrease := b.Decrease
	if decrease == 0 {
		decrease = defaultBacktrackingDecrease
	}
	funConst := b.FunConst
	if funConst == 0 {
		funConst = defaultBacktrackingFunConst
	}
	maxIter := b.MaxIterations
	if maxIter == 0 {
		maxIter = 100
	}

	step := 1.0
	for i := 0; i < maxIter; i++ {
		f, _ := eval(step)
		if armijoMet(f, f0, g0, step, funConst) {
			return step
		}
		step *= decrease
	}
	return step
}

// directionalDerivative returns gᵀdir, the rate of change of f along dir at
// the point g was evaluated.
func directionalDerivative(g, dir []float64) float64 {
	return floats.Dot(g, dir)
}
