// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"math"
	"time"
)

var posInf = math.Inf(1)

// defaultEta is the acceptance threshold used when Settings.Eta is nil.
const defaultEta = 0.1

// Settings configures a Minimize run. It is the only
// configuration surface: there is no config file or CLI layer. It is
// passed by the caller and documents its defaults on each field rather than
// loading them from anywhere.
type Settings struct {
	// InitialDelta is the starting trust-region radius Δ. Defaults to 1.
	InitialDelta float64
	// DeltaMax caps the trust-region radius. Defaults to +Inf.
	DeltaMax float64
	// DeltaMin floors the trust-region radius. Must be >= 0, or
	// Minimize returns a ConfigError before iterating. Defaults to 0.
	DeltaMin float64
	// Eta is the step-acceptance threshold: a step is accepted when the
	// actual/predicted reduction ratio ρ exceeds *Eta. Must satisfy
	// 0 <= *Eta < 0.25, or Minimize returns a ConfigError. A nil Eta
	// defaults to 0.1; Eta is a pointer rather than a plain float64 because
	// 0 is itself a valid, distinct threshold (accept any step with
	// positive reduction) and must not be silently replaced by the default.
	Eta *float64
	// RhoLower and RhoUpper are the ρ thresholds that shrink or grow Δ.
	// Default to 0.25 and 0.75.
	RhoLower, RhoUpper float64

	// GradientThreshold stops the run with GradientConvergence when the
	// infinity norm of the gradient drops to or below this value.
	// Defaults to 1e-6.
	GradientThreshold float64
	// FunctionThreshold stops the run with FunctionConvergence when the
	// relative decrease in F between accepted steps drops to or below
	// this value. Defaults to 0 (disabled).
	FunctionThreshold float64
	// StepThreshold stops the run with StepConvergence when the norm of
	// an accepted step drops to or below this value. Defaults to 0
	// (disabled).
	StepThreshold float64

	// MaxIterations caps the number of major iterations. Defaults to 1000:
	// zero does not mean "unlimited" here, since the outer loop otherwise
	// has no other hard stop available to a caller who forgets to set one.
	MaxIterations int
	// TimeLimit caps the wall-clock runtime, checked between iterations
	// only (never mid-factorization, per the single-threaded, synchronous
	// concurrency model). Zero means unlimited. Defaults to 0.
	TimeLimit time.Duration

	// SubproblemMaxIters bounds the boundary-case root-finder inside the
	// trust-region subproblem solve. Defaults to
	// trustregion.DefaultMaxIters (20).
	SubproblemMaxIters int

	// AllowFIncreases lets a step be accepted even when f(x+s) > f(x), as
	// long as ρ > Eta is otherwise satisfied by a negative predicted
	// reduction; this can only arise from a poor quadratic model, and
	// the flag exists for callers who would rather tolerate occasional
	// uphill moves than shrink Δ aggressively. Defaults to false.
	AllowFIncreases bool

	// StoreTrace appends a Record to Result.Trace at every major
	// iteration. Defaults to false.
	StoreTrace bool
	// ExtendedTrace additionally records the Hessian eigenvalues computed
	// by the subproblem solve in each Record. Has no effect unless
	// StoreTrace is also set. Defaults to false.
	ExtendedTrace bool
	// Recorder, if non-nil, is called once per major iteration to observe
	// progress as the run proceeds.
	Recorder Recorder

	// Callback, if non-nil, is called once per major iteration with the
	// running Stats; returning false requests early termination with
	// status CallbackStop.
	Callback func(*Stats) bool
}

// withDefaults returns a copy of s with every zero-valued field that has a
// documented default replaced by that default.
func (s Settings) withDefaults() Settings {
	if s.InitialDelta == 0 {
		s.InitialDelta = 1
	}
	if s.DeltaMax == 0 {
		s.DeltaMax = posInf
	}
	if s.Eta == nil {
		eta := defaultEta
		s.Eta = &eta
	}
	if s.RhoLower == 0 {
		s.RhoLower = 0.25
	}
	if s.RhoUpper == 0 {
		s.RhoUpper = 0.75
	}
	if s.GradientThreshold == 0 {
		s.GradientThreshold = 1e-6
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = 1000
	}
	if s.SubproblemMaxIters == 0 {
		s.SubproblemMaxIters = 20
	}
	return s
}

// validate checks the fields that must be raised as a ConfigError at
// construction time rather than folded into a Status.
func (s Settings) validate() error {
	if s.DeltaMin < 0 {
		return ConfigError{Field: "DeltaMin", Value: s.DeltaMin}
	}
	if s.DeltaMax != 0 && s.DeltaMax <= s.DeltaMin {
		return ConfigError{Field: "DeltaMax", Value: s.DeltaMax}
	}
	if s.Eta != nil && (*s.Eta < 0 || *s.Eta >= 0.25) {
		return ConfigError{Field: "Eta", Value: *s.Eta}
	}
	return nil
}
