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

// Package design finds piecewise-linear approximations of activation
// functions.
//
// The search has three layers:
//
//   - PivotSearch fits exactly N segments. Each segment is a tangent line of
//     f at a pivot point; neighboring tangents intersect at the breakpoints.
//     The pivots are moved by a damped exchange step until the deviations at
//     all breakpoints are within Threshold of each other (equioscillation),
//     which is the signature of a minimax fit.
//   - CountSearch grows N from 1 until MeasureError reports a maximum
//     deviation within the error budget, or MaxSegments is reached.
//   - Search handles exact kinds and the Power identity without iterating,
//     and splits the domain at the function's break point when it lies
//     strictly inside [lower, upper]. The two halves are searched
//     independently and merged.
//
// Every call builds its own state, so independent searches may run
// concurrently without synchronization. The only resource bound is
// Config.MaxIterations; there is no cancellation. The context passed to
// Search and CountSearch carries the logger only.
//
// # Example
//
//	fn := activation.New(activation.Sigmoid)
//	lower, upper := fn.Bounds()
//	res, err := design.Search(ctx, fn, lower, upper, design.DefaultConfig(fn))
//	if err != nil {
//	    return err
//	}
//	slopes, intercepts, breakpoints := res.Segments.Split()
package design
