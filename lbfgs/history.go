// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lbfgs computes limited-memory BFGS search directions via the
// two-loop recursion (Nocedal & Wright, Numerical Optimization, 2nd ed.,
// chapter 7), given a bounded ring-buffer history of (dx, dg) pairs. It is
// ported from the LBFGS.NextDirection two-loop in the monolithic Gonum
// optimize package and generalized into a standalone, reusable kernel: a
// caller owns the History and calls Direction wherever it needs a new
// search direction, rather than LBFGS being a self-contained optimize.Method.
package lbfgs

import "gonum.org/v1/gonum/floats"

// History is a fixed-capacity ring buffer of (dx, dg, ρ = 1/(dxᵀdg)) pairs
// used by the LBFGS two-loop recursion. Pair i (1-indexed) is stored in
// slot ((i-1) mod capacity).
type History struct {
	capacity int
	dim      int
	dx       [][]float64
	dg       [][]float64
	rho      []float64
	// pairs is the pseudo-iteration counter: the number of pairs
	// successfully stored since the last reset. It grows without bound
	// across the capacity; only the most recent min(pairs, capacity) of
	// them are visible to Direction.
	pairs int
}

// NewHistory allocates a History with room for capacity pairs of dimension
// dim. capacity must be at least 1.
func NewHistory(capacity, dim int) *History {
	if capacity < 1 {
		panic("lbfgs: capacity must be at least 1")
	}
	h := &History{
		capacity: capacity,
		dim:      dim,
		dx:       make([][]float64, capacity),
		dg:       make([][]float64, capacity),
		rho:      make([]float64, capacity),
	}
	for i := range h.dx {
		h.dx[i] = make([]float64, dim)
		h.dg[i] = make([]float64, dim)
	}
	return h
}

// Pairs reports the pseudo-iteration counter: how many (dx, dg) pairs have
// been stored since construction or the last Reset.
func (h *History) Pairs() int { return h.pairs }

// Reset discards the pseudo-iteration counter, as if the history were
// newly constructed. Previously stored slots are left in place but become
// unreachable: Direction only ever looks at the most recent min(Pairs(),
// capacity) pairs, and Pairs() is now 0.
func (h *History) Reset() { h.pairs = 0 }

// Update records a new (dx, dg) curvature pair: dx is the step xₖ - xₖ₋₁
// and dg is the gradient change gₖ - gₖ₋₁. If dxᵀdg <= 0, the
// curvature condition that keeps the implied Hessian approximation
// positive definite has failed; Update does not store the pair and instead
// resets the history, discarding it rather than letting a bad pair corrupt
// the two-loop recursion.
func (h *History) Update(dx, dg []float64) {
	curvature := floats.Dot(dx, dg)
	if curvature <= 0 {
		h.Reset()
		return
	}
	slot := h.pairs % h.capacity
	copy(h.dx[slot], dx)
	copy(h.dg[slot], dg)
	h.rho[slot] = 1 / curvature
	h.pairs++
}

func (h *History) slot(pairIndex int) int {
	return (pairIndex - 1) % h.capacity
}
