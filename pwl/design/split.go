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
	"context"
	"fmt"

	"github.com/containerd/log"

	"github.com/ajroetker/go-pwl/pwl"
	"github.com/ajroetker/go-pwl/pwl/activation"
)

// splitSearch runs search on [lower, b] and [b, upper], b being the
// function's break point, and joins the halves.
func splitSearch(ctx context.Context, fn activation.Function, lower, upper float64, search func(lower, upper float64) (Result, error)) (Result, error) {
	b, _ := fn.BreakPoint()
	log.G(ctx).WithFields(log.Fields{
		"function": fn.String(),
		"break":    b,
	}).Trace("pwl: splitting domain")

	lo, err := search(lower, b)
	if err != nil {
		return Result{}, fmt.Errorf("lower half: %w", err)
	}
	hi, err := search(b, upper)
	if err != nil {
		return Result{}, fmt.Errorf("upper half: %w", err)
	}

	return Result{
		Segments: pwl.Merge(lo.Segments, hi.Segments),
		Epsilon:  (lo.Epsilon + hi.Epsilon) / 2,
		// Average rather than maximum; downstream tolerances are tuned to it.
		Error: (lo.Error + hi.Error) / 2,
	}, nil
}
