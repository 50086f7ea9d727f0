// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid Settings value discovered at construction
// time, before any iteration runs. Grounded on gonum's errors.go sentinel
// pattern, but typed here because the message needs the offending field
// and value.
type ConfigError struct {
	Field string
	Value float64
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("optimize: invalid setting %s = %v", e.Field, e.Value)
}

// DimensionError reports a shape mismatch between x0 and the gradient or
// Hessian returned by a Problem.
type DimensionError struct {
	Want, Got int
	Where     string
}

func (e DimensionError) Error() string {
	return fmt.Sprintf("optimize: %s has dimension %d, want %d", e.Where, e.Got, e.Want)
}

// ErrZeroDimensional signifies Minimize was called with a zero-length x0.
var ErrZeroDimensional = errors.New("optimize: zero dimensional input")
