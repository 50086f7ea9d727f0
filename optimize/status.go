// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "fmt"

// Status represents the termination status of a Minimize run.
// Statuses greater than zero report that a satisfactory minimum was found;
// statuses less than zero report a soft, non-fatal termination before
// convergence. Status is distinct from the error returned by Minimize: a
// Status is always produced, even when the run never converges, whereas an
// error is returned only for a programmer mistake (bad Settings, mismatched
// dimensions), per the ConfigError/DimensionError split in errors.go.
//
// Grounded on gonum.org/v1/gonum's termination.go Status type and its
// positive-success / negative-soft-failure convention.
type Status int

// NotTerminated is the zero value and is never returned from Minimize; it
// exists so a zero Result is visibly unterminated.
const NotTerminated Status = 0

// Successful termination statuses.
const (
	GradientConvergence Status = iota + 1
	FunctionConvergence
	StepConvergence
)

// Soft, non-fatal termination statuses.
const (
	Failure Status = -(iota + 1)
	IterationLimit
	RuntimeLimit
	DeltaAtFloor
	CallbackStop
)

var statusNames = map[Status]string{
	NotTerminated:        "NotTerminated",
	GradientConvergence:  "GradientConvergence",
	FunctionConvergence:  "FunctionConvergence",
	StepConvergence:      "StepConvergence",
	Failure:              "Failure",
	IterationLimit:       "IterationLimit",
	RuntimeLimit:         "RuntimeLimit",
	DeltaAtFloor:         "DeltaAtFloor",
	CallbackStop:         "CallbackStop",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Converged reports whether s represents a successful termination.
func (s Status) Converged() bool { return s > 0 }

// Err returns nil if s represents a successful termination, and otherwise
// an error describing the non-convergence.
func (s Status) Err() error {
	if s.Converged() {
		return nil
	}
	return fmt.Errorf("optimize: did not converge: %v", s)
}
