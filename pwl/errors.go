// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pwl

import (
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	// ErrDomain reports a deviation that is not finite: the function is
	// undefined or its derivative is singular at a pivot.
	ErrDomain = fmt.Errorf("pwl: value out of range: %w", errdefs.ErrOutOfRange)

	// ErrNonConvergence reports a pivot search that ran out of iterations
	// before the deviations equioscillated.
	ErrNonConvergence = fmt.Errorf("pwl: pivot search did not converge: %w", errdefs.ErrAborted)

	// ErrSegmentBudgetExhausted reports that the error budget could not be
	// met within the maximum number of segments.
	ErrSegmentBudgetExhausted = fmt.Errorf("pwl: segment budget exhausted: %w", errdefs.ErrResourceExhausted)

	// ErrUnsupportedExponent reports a Power exponent constant with zero or
	// several elements, or an element type that cannot be read.
	ErrUnsupportedExponent = fmt.Errorf("pwl: unsupported exponent: %w", errdefs.ErrInvalidArgument)
)
