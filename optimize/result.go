// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

// Result is the answer of a Minimize run: the minimizer found, its
// function value and gradient, the termination status and work statistics,
// and which of the convergence tests fired.
type Result struct {
	X        []float64
	F        float64
	Gradient []float64

	Status Status
	Stats  Stats

	// FConverged, GConverged, and XConverged report which of the
	// function/gradient/step convergence tests (if any) fired. At most
	// the one matching Status is true on a successful termination; all
	// three are false on a soft termination (IterationLimit, Failure,
	// …).
	FConverged bool
	GConverged bool
	XConverged bool

	// Trace holds one Record per major iteration when Settings.StoreTrace
	// is set, else nil.
	Trace []Record
}
