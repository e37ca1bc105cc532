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

package design

import (
	"fmt"
	"math"

	"github.com/containerd/errdefs"

	"github.com/ajroetker/go-pwl/pwl"
	"github.com/ajroetker/go-pwl/pwl/activation"
)

// Affine returns slope*x + intercept over the full int32 input range.
func Affine(slope, intercept float64) pwl.Segments {
	return pwl.Segments{
		{Slope: slope, Intercept: intercept, Breakpoint: math.MinInt32},
		pwl.Sentinel(math.MaxInt32),
	}
}

// Exact returns the closed-form segments of a piecewise-linear kind over the
// full int32 input range.
func Exact(fn activation.Function) (pwl.Segments, error) {
	switch fn.Kind {
	case activation.ReLU:
		return pwl.Segments{
			{Slope: 0, Intercept: 0, Breakpoint: math.MinInt32},
			{Slope: 1, Intercept: 0, Breakpoint: 0},
			pwl.Sentinel(math.MaxInt32),
		}, nil
	case activation.LeakyReLU:
		return pwl.Segments{
			{Slope: activation.LeakyReLUSlope, Intercept: 0, Breakpoint: math.MinInt32},
			{Slope: 1, Intercept: 0, Breakpoint: 0},
			pwl.Sentinel(math.MaxInt32),
		}, nil
	case activation.Clamp:
		if !(fn.Low < fn.High) || fn.Low <= math.MinInt32 || fn.High >= math.MaxInt32 {
			return nil, fmt.Errorf("design: clamp bounds [%g, %g] must be ordered and inside the int32 range: %w",
				fn.Low, fn.High, errdefs.ErrInvalidArgument)
		}
		return pwl.Segments{
			{Slope: 0, Intercept: fn.Low, Breakpoint: math.MinInt32},
			{Slope: 1, Intercept: 0, Breakpoint: fn.Low},
			{Slope: 0, Intercept: fn.High, Breakpoint: fn.High},
			pwl.Sentinel(math.MaxInt32),
		}, nil
	default:
		return nil, fmt.Errorf("design: %s has no exact segments: %w", fn, errdefs.ErrInvalidArgument)
	}
}
