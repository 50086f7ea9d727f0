// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import (
	"fmt"
	"io"
)

// Recorder observes the progress of a Minimize run once per major
// iteration. It is the concrete form of the "trace sink" abstract
// collaborator named in the component design; a Recorder must not modify
// the Record it is given.
type Recorder interface {
	Record(Record) error
}

// TextRecorder writes a column-formatted progress line to Writer once per
// major iteration: a heading row followed by one row per call carrying the
// iteration number, function value, gradient norm, trust-region radius, and
// Lagrange multiplier. There is no heading-interval or value-interval
// throttling, since a trust-region run is short enough that every iteration
// is worth a line.
type TextRecorder struct {
	Writer io.Writer

	wroteHeading bool
}

// NewTextRecorder returns a TextRecorder writing to w.
func NewTextRecorder(w io.Writer) *TextRecorder {
	return &TextRecorder{Writer: w}
}

func (r *TextRecorder) Record(rec Record) error {
	if !r.wroteHeading {
		if _, err := fmt.Fprintf(r.Writer, "%-6s%-14s%-14s%-10s%-10s\n", "Iter", "F", "GradNorm", "Delta", "Lambda"); err != nil {
			return err
		}
		r.wroteHeading = true
	}
	_, err := fmt.Fprintf(r.Writer, "%-6d%-14g%-14g%-10g%-10g\n", rec.Iteration, rec.F, rec.GradNorm, rec.Delta, rec.Lambda)
	return err
}
