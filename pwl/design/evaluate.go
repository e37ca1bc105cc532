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
	"math"

	"github.com/montanaflynn/stats"

	"github.com/ajroetker/go-pwl/pwl"
	"github.com/ajroetker/go-pwl/pwl/activation"
)

// ErrorStats summarizes the absolute deviation of a PWL approximation.
type ErrorStats struct {
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	P99     float64 `json:"p99"`
	Samples int     `json:"samples"`
}

// sampleGrid returns the evaluation points lower + i*delta, i < samples,
// with delta = (upper-lower)/(samples+1).
func sampleGrid(lower, upper float64, samples int) []float64 {
	delta := (upper - lower) / float64(samples+1)
	if delta < 0 || samples < 1 {
		return nil
	}
	xs := make([]float64, samples)
	for i := range xs {
		xs[i] = lower + float64(i)*delta
	}
	return xs
}

// deviations returns |f(x) - sgn*pwl(x)| over the sample grid.
func deviations(fn activation.Function, segs pwl.Segments, lower, upper float64, negative bool, samples int) []float64 {
	sgn := 1.0
	if negative {
		sgn = -1
	}
	xs := sampleGrid(lower, upper, samples)
	ys := make([]float64, len(xs))
	segs.Apply(xs, ys)
	for i, x := range xs {
		ys[i] = math.Abs(fn.Value(x) - sgn*ys[i])
	}
	return ys
}

// MeasureError returns the maximum absolute deviation between f and the
// segments at samples evenly spaced points of [lower, upper].
// negative must match the sign convention the segments were fitted with.
// The lower endpoint is always the first sample. An inverted domain measures
// as zero; an empty segment list as +Inf.
func MeasureError(fn activation.Function, segs pwl.Segments, lower, upper float64, negative bool, samples int) float64 {
	if segs.Count() == 0 {
		return math.Inf(1)
	}
	var worst float64
	for _, d := range deviations(fn, segs, lower, upper, negative, samples) {
		if d > worst {
			worst = d
		}
	}
	return worst
}

// Measure reports max, mean and 99th percentile deviation for segments in
// the function's native sign.
func Measure(fn activation.Function, segs pwl.Segments, lower, upper float64, samples int) (ErrorStats, error) {
	devs := deviations(fn, segs, lower, upper, false, samples)
	if len(devs) == 0 {
		return ErrorStats{}, nil
	}
	st := ErrorStats{Samples: len(devs)}
	var err error
	if st.Max, err = stats.Max(devs); err != nil {
		return ErrorStats{}, err
	}
	if st.Mean, err = stats.Mean(devs); err != nil {
		return ErrorStats{}, err
	}
	if st.P99, err = stats.Percentile(devs, 99); err != nil {
		return ErrorStats{}, err
	}
	return st, nil
}
