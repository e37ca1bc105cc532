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

// Package activation describes the scalar activation functions that can be
// replaced by a piecewise-linear approximation.
//
// A Function pairs a Kind with its kind-specific parameters and exposes the
// per-kind table used by the segment designer:
//
//   - Value and Derivative evaluate f(x) and f'(x).
//   - Bounds returns the default domain the hardware input range maps onto.
//   - BreakPoint returns the interior point where the domain is split.
//   - IsNegative selects the sign convention for a (sub)domain.
//   - MaxError, MaxIterations and MaxSegments tune the search.
//
// # Supported Kinds
//
//	Kind       f(x)                      default domain
//	Sigmoid    1/(1+exp(-x))             [-10, 10]
//	Tanh       tanh(x)                   [-5, 5]
//	SoftSign   x/(1+|x|)                 [-10, 10]
//	Exp        exp(x)                    [ln(1/32767), ln(32767)]
//	Log        ln(x)                     [0.001, 2981]
//	Power      (scale*x+shift)^exponent  [-16, 16] or [0, 16]
//
// ReLU, LeakyReLU and Clamp are exactly piecewise linear. They are listed so
// callers can route every PWL-capable operator through one entry point, but
// they never enter the iterative search.
package activation
