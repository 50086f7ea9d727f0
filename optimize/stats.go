// Copyright ©2024 The gonum-community Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "time"

// Stats reports the work done during a Minimize run: the number of
// major iterations and the number of times each oracle operation
// (function, gradient, Hessian) was called, plus elapsed wall-clock time.
type Stats struct {
	MajorIterations int
	FuncEvaluations int
	GradEvaluations int
	HessEvaluations int
	Runtime         time.Duration
}
