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

// Result is a designed segment set in the function's native sign.
type Result struct {
	Segments pwl.Segments `json:"segments"`
	// Epsilon is the pivot search centering offset. For a split domain it is
	// the average over both halves.
	Epsilon float64 `json:"epsilon"`
	// Error is the measured maximum deviation. For a split domain it is the
	// average of both halves, which can understate the true maximum.
	Error float64 `json:"error"`
}

// fitOne fits n segments to f over [lower, upper] in the sign convention
// the kind prescribes for that domain and measures the result. The returned
// segments are in the native sign.
func fitOne(fn activation.Function, n int, lower, upper float64, cfg Config) (Result, int, error) {
	negative := fn.IsNegative(upper)
	fit, err := PivotSearch(fn, n, lower, upper, negative, cfg.Threshold, cfg.MaxIterations)
	if err != nil {
		return Result{}, fit.Iterations, err
	}
	measured := MeasureError(fn, fit.Segments, lower, upper, negative, cfg.Samples)
	segs := fit.Segments
	if negative {
		segs = segs.Negate()
	}
	return Result{Segments: segs, Epsilon: fit.Epsilon, Error: measured}, fit.Iterations, nil
}

// CountSearch finds the smallest segment count N whose fit over
// [lower, upper] deviates from f by at most fn.MaxError(cfg.AllowedError).
// The domain is not split; use Search for that.
//
// Returns pwl.ErrSegmentBudgetExhausted when even cfg.MaxSegments segments
// miss the budget. Errors from PivotSearch abort the search.
func CountSearch(ctx context.Context, fn activation.Function, lower, upper float64, cfg Config) (Result, error) {
	cfg = cfg.Resolve(fn)
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if lower > upper {
		return Result{}, nil
	}

	budget := fn.MaxError(cfg.AllowedError)
	logger := log.G(ctx).WithFields(log.Fields{
		"function": fn.String(),
		"lower":    lower,
		"upper":    upper,
		"negative": fn.IsNegative(upper),
	})

	for n := 1; ; n++ {
		res, iterations, err := fitOne(fn, n, lower, upper, cfg)
		if err != nil {
			return Result{}, err
		}
		logger.WithFields(log.Fields{
			"segments":   n,
			"iterations": iterations,
			"epsilon":    res.Epsilon,
			"error":      res.Error,
		}).Trace("pwl: fitted segment count")

		if res.Error <= budget {
			return res, nil
		}
		if n >= cfg.MaxSegments {
			return Result{}, fmt.Errorf("%s on [%g, %g]: error %g with %d segments exceeds %g: %w",
				fn, lower, upper, res.Error, n, budget, pwl.ErrSegmentBudgetExhausted)
		}
	}
}

// closedForm returns the segments of functions that need no search.
func closedForm(fn activation.Function) (pwl.Segments, bool, error) {
	switch {
	case fn.Kind.Exact():
		segs, err := Exact(fn)
		return segs, true, err
	case fn.Kind == activation.Power && fn.Exponent == 1:
		return Affine(fn.Scale, fn.Shift), true, nil
	default:
		return nil, false, nil
	}
}

// Search designs a PWL approximation of f over [lower, upper].
//
// Exact kinds and Power with exponent 1 return closed-form segments without
// searching. When the function's break point lies strictly inside the domain,
// each side is searched separately and the results are merged. An inverted
// domain yields an empty result.
func Search(ctx context.Context, fn activation.Function, lower, upper float64, cfg Config) (Result, error) {
	var res Result
	segs, closed, err := closedForm(fn)
	switch {
	case closed:
		res.Segments = segs
	case lower > upper:
		return Result{}, nil
	case fn.Splits(lower, upper):
		res, err = splitSearch(ctx, fn, lower, upper, func(lower, upper float64) (Result, error) {
			return CountSearch(ctx, fn, lower, upper, cfg)
		})
	default:
		res, err = CountSearch(ctx, fn, lower, upper, cfg)
	}
	if err != nil {
		return Result{}, err
	}

	log.G(ctx).WithFields(log.Fields{
		"function": fn.String(),
		"segments": res.Segments.Count(),
		"error":    res.Error,
	}).Debug("pwl: designed segments")
	return res, nil
}

// SearchDefault runs Search over the function's default domain.
func SearchDefault(ctx context.Context, fn activation.Function, cfg Config) (Result, error) {
	lower, upper := fn.Bounds()
	return Search(ctx, fn, lower, upper, cfg)
}

// Fit designs exactly n segments on each side of the break point, ignoring
// the error budget. It is the building block of a segment count sweep.
// Closed-form functions and inverted domains behave as in Search.
func Fit(ctx context.Context, fn activation.Function, n int, lower, upper float64, cfg Config) (Result, error) {
	cfg = cfg.Resolve(fn)
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	segs, closed, err := closedForm(fn)
	switch {
	case err != nil:
		return Result{}, err
	case closed:
		return Result{Segments: segs}, nil
	case lower > upper:
		return Result{}, nil
	}

	one := func(lower, upper float64) (Result, error) {
		res, _, err := fitOne(fn, n, lower, upper, cfg)
		return res, err
	}
	if fn.Splits(lower, upper) {
		return splitSearch(ctx, fn, lower, upper, one)
	}
	return one(lower, upper)
}
