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
	"math"
	"sort"
)

// Index returns the segment that applies to x. Inputs outside the
// breakpoint range are clamped to the first or last segment.
func (s Segments) Index(x float64) int {
	n := s.Count()
	if n <= 1 {
		return 0
	}
	// First k whose right edge lies beyond x.
	k := sort.Search(n, func(k int) bool { return s[k+1].Breakpoint > x })
	if k == n {
		return n - 1
	}
	return k
}

// Eval evaluates the PWL function at x. An empty list evaluates to 0.
func (s Segments) Eval(x float64) float64 {
	if s.Count() == 0 {
		return 0
	}
	seg := s[s.Index(x)]
	return affine(seg.Slope, x, seg.Intercept)
}

// Apply evaluates the PWL function for every element of in and writes the
// results to out. Processes min(len(in), len(out)) elements.
func (s Segments) Apply(in, out []float64) {
	n := min(len(in), len(out))
	if s.Count() == 0 {
		clear(out[:n])
		return
	}
	for i := 0; i < n; i++ {
		seg := s[s.Index(in[i])]
		out[i] = affine(seg.Slope, in[i], seg.Intercept)
	}
}

func affine(m, x, b float64) float64 {
	if hasFMA {
		return math.FMA(m, x, b)
	}
	// The explicit conversion keeps the compiler from fusing the product.
	return float64(m*x) + b
}
