// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lbfgs

import "gonum.org/v1/gonum/floats"

// Preconditioner approximates r = P⁻¹q, writing the result into dst and
// returning it. dst and q may not alias.
type Preconditioner func(dst, q []float64) []float64

// Options controls the initial-Hessian guess used by Direction's middle
// step, r ← initial_guess(q).
type Options struct {
	// ScaleInvH0 requests the Nocedal–Wright 7.20 scaled-identity guess
	// γI, γ = (dx·dg)/(dg·dg) of the most recent pair, when at least one
	// pair is available. It is silently suppressed on a fresh start or
	// immediately after a curvature-condition reset, when no pair yet
	// exists to compute γ from.
	ScaleInvH0 bool
	// Preconditioner, if non-nil and ScaleInvH0 is false (or unusable),
	// supplies r = P⁻¹q. If both are unset, r = q (plain identity guess).
	Preconditioner Preconditioner
}

// Direction computes the LBFGS search direction s ≈ −B⁻¹g for the current
// gradient g and the bounded curvature history h, writing the result into
// dst (which must have the same length as g) and returning it.
//
// Direction implements the two-loop recursion of Nocedal & Wright,
// Numerical Optimization (2nd ed.), chapter 7, page 178: a backward pass
// over the most recent min(h.Pairs(), capacity) pairs, newest first,
// followed by the initial-Hessian guess and a forward pass over the same
// pairs, oldest first.
func Direction(h *History, g []float64, opts Options, dst []float64) []float64 {
	n := len(g)
	pairs := h.pairs
	windowLen := pairs
	if windowLen > h.capacity {
		windowLen = h.capacity
	}
	start := pairs - windowLen + 1 // oldest usable pair index, 1-based

	q := make([]float64, n)
	copy(q, g)

	// alpha is indexed by ring-buffer slot, not by pair number: within a
	// single window no two pairs share a slot, so this is safe and avoids
	// a map allocation.
	alpha := make([]float64, h.capacity)
	for i := pairs; i >= start; i-- {
		slot := h.slot(i)
		a := h.rho[slot] * floats.Dot(h.dx[slot], q)
		alpha[slot] = a
		floats.AddScaled(q, -a, h.dg[slot])
	}

	r := make([]float64, n)
	switch {
	case opts.ScaleInvH0 && pairs >= 1:
		slot := h.slot(pairs)
		gamma := floats.Dot(h.dx[slot], h.dg[slot]) / floats.Dot(h.dg[slot], h.dg[slot])
		copy(r, q)
		floats.Scale(gamma, r)
	case opts.Preconditioner != nil:
		opts.Preconditioner(r, q)
	default:
		copy(r, q)
	}

	for i := start; i <= pairs; i++ {
		slot := h.slot(i)
		beta := h.rho[slot] * floats.Dot(h.dg[slot], r)
		floats.AddScaled(r, alpha[slot]-beta, h.dx[slot])
	}

	for i := range dst {
		dst[i] = -r[i]
	}
	return dst
}
