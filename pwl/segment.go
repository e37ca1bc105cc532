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
	"slices"
)

// Segment is one affine piece of a PWL function. It starts at Breakpoint and
// extends to the Breakpoint of the following segment.
type Segment struct {
	Slope      float64 `json:"slope"`
	Intercept  float64 `json:"intercept"`
	Breakpoint float64 `json:"breakpoint"`
}

// Sentinel returns the terminating segment carrying the domain upper bound.
func Sentinel(upper float64) Segment {
	return Segment{Breakpoint: upper}
}

// IsSentinel reports whether s has zero slope and zero intercept.
func (s Segment) IsSentinel() bool {
	return s.Slope == 0 && s.Intercept == 0
}

// Segments is an ordered segment list terminated by a sentinel.
type Segments []Segment

// Count returns the number of approximating segments, excluding the sentinel.
func (s Segments) Count() int {
	if len(s) == 0 {
		return 0
	}
	return len(s) - 1
}

// Lower returns the first breakpoint.
func (s Segments) Lower() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[0].Breakpoint
}

// Upper returns the sentinel breakpoint.
func (s Segments) Upper() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Breakpoint
}

// Negate flips the sign of every slope and intercept in place and returns s.
// Sentinels stay sentinels.
func (s Segments) Negate() Segments {
	for i := range s {
		s[i].Slope = -s[i].Slope
		s[i].Intercept = -s[i].Intercept
	}
	return s
}

// Clone returns a copy of s.
func (s Segments) Clone() Segments {
	return slices.Clone(s)
}

// Split returns the three parallel sequences consumed by a PWL node:
// N slopes, N intercepts and N+1 breakpoints.
func (s Segments) Split() (slopes, intercepts, breakpoints []float64) {
	n := s.Count()
	if n == 0 {
		return nil, nil, nil
	}
	slopes = make([]float64, n)
	intercepts = make([]float64, n)
	breakpoints = make([]float64, n+1)
	for i := 0; i < n; i++ {
		slopes[i] = s[i].Slope
		intercepts[i] = s[i].Intercept
		breakpoints[i] = s[i].Breakpoint
	}
	breakpoints[n] = s[n].Breakpoint
	return slopes, intercepts, breakpoints
}

// Join is the inverse of Split.
func Join(slopes, intercepts, breakpoints []float64) (Segments, error) {
	n := len(slopes)
	if len(intercepts) != n || len(breakpoints) != n+1 {
		return nil, fmt.Errorf("pwl: mismatched lengths: %d slopes, %d intercepts, %d breakpoints",
			n, len(intercepts), len(breakpoints))
	}
	s := make(Segments, n+1)
	for i := 0; i < n; i++ {
		s[i] = Segment{Slope: slopes[i], Intercept: intercepts[i], Breakpoint: breakpoints[i]}
	}
	s[n] = Sentinel(breakpoints[n])
	return s, nil
}

// Merge concatenates two adjacent segment lists. The sentinel of lo is
// dropped, so the result covers [lo.Lower(), hi.Upper()].
func Merge(lo, hi Segments) Segments {
	out := make(Segments, 0, len(lo)+len(hi))
	if len(lo) > 0 {
		out = append(out, lo[:len(lo)-1]...)
	}
	return append(out, hi...)
}

// Validate checks the structural invariants: at least one segment, a
// sentinel terminator and strictly increasing breakpoints.
func (s Segments) Validate() error {
	if len(s) < 2 {
		return fmt.Errorf("pwl: need at least 2 entries, got %d", len(s))
	}
	if last := s[len(s)-1]; !last.IsSentinel() {
		return fmt.Errorf("pwl: last segment is not a sentinel: %+v", last)
	}
	for i := 1; i < len(s); i++ {
		if !(s[i].Breakpoint > s[i-1].Breakpoint) {
			return fmt.Errorf("pwl: breakpoint %d (%g) does not exceed breakpoint %d (%g)",
				i, s[i].Breakpoint, i-1, s[i-1].Breakpoint)
		}
	}
	return nil
}
