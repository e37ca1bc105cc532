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

// Package pwl holds the piecewise-linear (PWL) segment representation shared
// by the segment designer and the graph conversion pass.
//
// A PWL function over [lower, upper] is stored as N affine segments followed
// by a sentinel:
//
//	[{m0, b0, alpha0}, {m1, b1, alpha1}, ..., {0, 0, alphaN}]
//
// Segment i applies on [alpha_i, alpha_{i+1}). Inputs below alpha0 use the
// first segment and inputs at or above alphaN use the last one, matching the
// reference evaluation of the hardware PWL unit.
//
// # Evaluation
//
// Segments.Eval and Segments.Apply compute m*x + b for the selected segment.
// On CPUs with a fused multiply-add unit the product is fused, which is what
// the target accelerators do. Set PWL_NO_FMA=1 to force the unfused form.
//
// # Errors
//
// The designer reports failures through the sentinel errors in this package
// (ErrDomain, ErrNonConvergence, ErrSegmentBudgetExhausted,
// ErrUnsupportedExponent). Each one also matches a containerd/errdefs class,
// so callers can branch on either.
package pwl
