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

// FitResult is the outcome of a fixed-count pivot search.
type FitResult struct {
	// Segments approximate sgn*f, where sgn is -1 for a negative search.
	Segments pwl.Segments
	// Epsilon is the centering offset (max+min)/4 applied to the tangents.
	Epsilon float64
	// Iterations counts evaluated pivot sets, rolled back ones included.
	Iterations int
}

// pivotState is one iteration of the pivot search.
type pivotState struct {
	t     []float64 // pivots, one per segment
	alpha []float64 // breakpoints, n+1
	eps   []float64 // signed deviations at the breakpoints, n+1

	// f and f' at the pivots
	fv []float64
	dv []float64
}

func newPivotState(n int) *pivotState {
	return &pivotState{
		t:     make([]float64, n),
		alpha: make([]float64, n+1),
		eps:   make([]float64, n+1),
		fv:    make([]float64, n),
		dv:    make([]float64, n),
	}
}

func (s *pivotState) copyFrom(o *pivotState) {
	copy(s.t, o.t)
	copy(s.alpha, o.alpha)
	copy(s.eps, o.eps)
}

// breakpoints places alpha[i] where the tangents at t[i-1] and t[i] meet.
func (s *pivotState) breakpoints(fn activation.Function, lower, upper float64) {
	n := len(s.t)
	for i, t := range s.t {
		s.fv[i] = fn.Value(t)
		s.dv[i] = fn.Derivative(t)
	}
	s.alpha[0] = lower
	for i := 1; i < n; i++ {
		s.alpha[i] = (s.fv[i-1] - s.fv[i] + s.dv[i]*s.t[i] - s.dv[i-1]*s.t[i-1]) /
			(s.dv[i] - s.dv[i-1])
	}
	s.alpha[n] = upper
}

// deviations computes eps[i] = sgn*(tangent(alpha[i]) - f(alpha[i])). The
// outer breakpoints use the tangent of their only neighboring pivot.
func (s *pivotState) deviations(fn activation.Function, sgn float64) error {
	n := len(s.t)
	for i, a := range s.alpha {
		k := min(i, n-1)
		e := sgn * (s.dv[k]*(a-s.t[k]) + s.fv[k] - fn.Value(a))
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return fmt.Errorf("%w: deviation at breakpoint %d (x=%g, pivot=%g) is %g", pwl.ErrDomain, i, a, s.t[k], e)
		}
		s.eps[i] = e
	}
	return nil
}

func (s *pivotState) extremes() (maxEps, minEps float64) {
	maxEps = math.Abs(s.eps[0])
	minEps = maxEps
	for _, e := range s.eps[1:] {
		a := math.Abs(e)
		maxEps = max(maxEps, a)
		minEps = min(minEps, a)
	}
	return maxEps, minEps
}

// step returns the exchange displacement of pivot i. A larger imbalance
// between the deviations on either side moves the pivot further toward the
// side with the larger error.
func (s *pivotState) step(i int) float64 {
	t, lo, hi := s.t[i], s.alpha[i], s.alpha[i+1]
	return (s.eps[i+1] - s.eps[i]) / (s.eps[i+1]/(hi-t) + s.eps[i]/(t-lo))
}

// segments builds the tangent segments shifted down by offset.
func (s *pivotState) segments(sgn, offset float64) pwl.Segments {
	n := len(s.t)
	out := make(pwl.Segments, n+1)
	for i, t := range s.t {
		a0, a1 := s.alpha[i], s.alpha[i+1]
		v0 := sgn*s.dv[i]*(a0-t) + sgn*s.fv[i] - offset
		v1 := sgn*s.dv[i]*(a1-t) + sgn*s.fv[i] - offset
		m := (v1 - v0) / (a1 - a0)
		out[i] = pwl.Segment{Slope: m, Intercept: v0 - m*a0, Breakpoint: a0}
	}
	out[n] = pwl.Sentinel(s.alpha[n])
	return out
}

// PivotSearch fits n tangent segments to sgn*f over [lower, upper], where
// sgn is -1 when negative is set.
//
// The pivots start evenly spaced. Each iteration recomputes breakpoints and
// deviations; when max|eps| - min|eps| < threshold*min|eps| the tangents are
// shifted by (max+min)/4, centering the fit in the error band. An iteration
// that raises max|eps|, or the second one that leaves it unchanged, is
// rolled back and retried with half the step.
//
// Returns pwl.ErrDomain when a deviation is not finite and
// pwl.ErrNonConvergence after maxIterations accepted iterations.
func PivotSearch(fn activation.Function, n int, lower, upper float64, negative bool, threshold float64, maxIterations int) (FitResult, error) {
	if n < 1 {
		return FitResult{}, fmt.Errorf("design: segment count must be positive, got %d: %w", n, errdefs.ErrInvalidArgument)
	}
	sgn := 1.0
	if negative {
		sgn = -1
	}

	// Only the current and the last accepted iteration are ever read.
	cur, prev := newPivotState(n), newPivotState(n)
	span := upper - lower
	for i := 0; i < n; i++ {
		cur.t[i] = lower + float64(i+1)/float64(n+1)*span
	}

	var (
		j          int // accepted iterations
		delta      = 1.0
		maxEps     float64
		prevMaxEps float64
		minEps     float64
		plateau    bool
	)
	for iter := 1; ; iter++ {
		cur.breakpoints(fn, lower, upper)
		if err := cur.deviations(fn, sgn); err != nil {
			return FitResult{Iterations: iter}, fmt.Errorf("%s, %d segments on [%g, %g], iteration %d: %w",
				fn, n, lower, upper, j, err)
		}

		prevMaxEps = maxEps
		maxEps, minEps = cur.extremes()
		if j == maxIterations {
			return FitResult{Iterations: iter}, fmt.Errorf("%s, %d segments on [%g, %g], spread %g after %d iterations: %w",
				fn, n, lower, upper, maxEps-minEps, j, pwl.ErrNonConvergence)
		}
		if maxEps-minEps < threshold*minEps {
			offset := (maxEps + minEps) / 4
			return FitResult{Segments: cur.segments(sgn, offset), Epsilon: offset, Iterations: iter}, nil
		}

		rollback := false
		if j > 0 {
			switch {
			case maxEps > prevMaxEps:
				rollback = true
			case maxEps == prevMaxEps:
				// Every other plateau rolls back to escape a stationary point.
				rollback = plateau
				plateau = !plateau
			}
		}
		if rollback {
			delta /= 2
		} else {
			prev.copyFrom(cur)
			j++
		}

		for i := 0; i < n; i++ {
			cur.t[i] = prev.t[i] + delta*prev.step(i)
		}
	}
}
