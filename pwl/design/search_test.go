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
	"errors"
	"math"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/go-pwl/pwl"
	"github.com/ajroetker/go-pwl/pwl/activation"
)

func TestSearchSplitDomains(t *testing.T) {
	tests := []struct {
		kind         activation.Kind
		lower, upper float64
		segments     int
	}{
		{activation.Sigmoid, -10, 10, 10},
		{activation.Tanh, -5, 5, 14},
		{activation.SoftSign, -10, 10, 16},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			fn := activation.New(tt.kind)
			res, err := Search(context.Background(), fn, tt.lower, tt.upper, Config{AllowedError: 0.005})
			if err != nil {
				t.Fatal(err)
			}
			segs := res.Segments
			if got := segs.Count(); got != tt.segments {
				t.Errorf("Count() = %d, want %d", got, tt.segments)
			}
			if err := segs.Validate(); err != nil {
				t.Fatal(err)
			}
			if segs.Lower() != tt.lower || segs.Upper() != tt.upper {
				t.Errorf("domain [%g, %g], want [%g, %g]", segs.Lower(), segs.Upper(), tt.lower, tt.upper)
			}
			// The lower half starts the second list at the break point.
			if got := segs[tt.segments/2].Breakpoint; got != 0 {
				t.Errorf("middle breakpoint = %g, want 0", got)
			}
			if res.Error > 0.005 {
				t.Errorf("Error = %g, want <= 0.005", res.Error)
			}
			// Segments are in the function's own sign on both halves.
			for x := tt.lower; x <= tt.upper; x += 0.1 {
				if d := math.Abs(segs.Eval(x) - fn.Value(x)); d > 0.006 {
					t.Fatalf("|pwl(%g) - f(%g)| = %g", x, x, d)
				}
			}
		})
	}
}

func TestSearchSplitErrorIsAverage(t *testing.T) {
	ctx := context.Background()
	fn := activation.New(activation.Tanh)
	cfg := Config{AllowedError: 0.01}

	lo, err := CountSearch(ctx, fn, -5, 0, cfg)
	if err != nil {
		t.Fatal(err)
	}
	hi, err := CountSearch(ctx, fn, 0, 5, cfg)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Search(ctx, fn, -5, 5, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if want := (lo.Error + hi.Error) / 2; res.Error != want {
		t.Errorf("Error = %g, want %g", res.Error, want)
	}
	if diff := cmp.Diff(pwl.Merge(lo.Segments, hi.Segments), res.Segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchExp(t *testing.T) {
	fn := activation.New(activation.Exp)
	upper := math.Log(math.MaxInt16)
	// Budgets much below 7 stop converging on [ExpBreak, upper] within the
	// iteration cap before they are met.
	const allowed = 7
	res, err := Search(context.Background(), fn, 0, upper, Config{AllowedError: allowed})
	if err != nil {
		t.Fatal(err)
	}
	// [0, ExpBreak] is nearly linear and takes a single segment.
	if got := res.Segments[1].Breakpoint; got != activation.ExpBreak {
		t.Errorf("second breakpoint = %g, want %g", got, activation.ExpBreak)
	}
	if err := res.Segments.Validate(); err != nil {
		t.Fatal(err)
	}
	if n := res.Segments.Count(); n < 30 {
		t.Errorf("Count() = %d, want at least 30", n)
	}
	if res.Error > allowed {
		t.Errorf("Error = %g, want <= %d", res.Error, allowed)
	}
	// Exp is searched negated; the result must still track exp itself.
	for _, x := range []float64{0.5, 1, 5, 9} {
		if got, want := res.Segments.Eval(x), math.Exp(x); math.Abs(got-want) > 2*allowed {
			t.Errorf("pwl(%g) = %g, want about %g", x, got, want)
		}
	}
	if res.Segments[len(res.Segments)-2].Slope <= 0 {
		t.Errorf("last slope = %g, want positive", res.Segments[len(res.Segments)-2].Slope)
	}
}

func TestSearchExpTightBudget(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the pivot search up to its iteration cap")
	}
	fn := activation.New(activation.Exp)
	_, err := Search(context.Background(), fn, 0, math.Log(math.MaxInt16), Config{AllowedError: 0.005})
	if !errors.Is(err, pwl.ErrNonConvergence) {
		t.Fatalf("err = %v, want %v", err, pwl.ErrNonConvergence)
	}
}

func TestSearchDefaultLog(t *testing.T) {
	fn := activation.New(activation.Log)
	res, err := SearchDefault(context.Background(), fn, Config{AllowedError: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Segments.Lower() != activation.LogLower || res.Segments.Upper() != activation.LogUpper {
		t.Errorf("domain [%g, %g]", res.Segments.Lower(), res.Segments.Upper())
	}
	if res.Error > 0.1 {
		t.Errorf("Error = %g, want <= 0.1", res.Error)
	}
}

// With the default cap, a zero budget for Log runs into the iteration cap
// of the pivot search long before the segment cap.
func TestSearchDefaultLogZeroBudget(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the pivot search up to its iteration cap")
	}
	_, err := SearchDefault(context.Background(), activation.New(activation.Log), Config{})
	if !errors.Is(err, pwl.ErrNonConvergence) {
		t.Fatalf("err = %v, want %v", err, pwl.ErrNonConvergence)
	}
	if !errdefs.IsAborted(err) {
		t.Errorf("err = %v, want an aborted error", err)
	}
	if errors.Is(err, pwl.ErrSegmentBudgetExhausted) {
		t.Errorf("err = %v, segment cap should not be reached", err)
	}
}

func TestSearchPowerIdentity(t *testing.T) {
	res, err := SearchDefault(context.Background(), activation.NewPower(1, 1, 0), Config{AllowedError: 0.005})
	if err != nil {
		t.Fatal(err)
	}
	want := pwl.Segments{
		{Slope: 1, Intercept: 0, Breakpoint: math.MinInt32},
		{Slope: 0, Intercept: 0, Breakpoint: math.MaxInt32},
	}
	if diff := cmp.Diff(want, res.Segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	if res.Error != 0 || res.Epsilon != 0 {
		t.Errorf("Error = %g, Epsilon = %g, want 0", res.Error, res.Epsilon)
	}
}

func TestSearchPowerSqrt(t *testing.T) {
	fn := activation.NewPower(0.5, 1, 0)
	res, err := SearchDefault(context.Background(), fn, Config{AllowedError: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Segments.Lower() != 0 || res.Segments.Upper() != activation.PowerBound {
		t.Errorf("domain [%g, %g], want [0, %g]", res.Segments.Lower(), res.Segments.Upper(), activation.PowerBound)
	}
	if res.Error > 0.1 {
		t.Errorf("Error = %g, want <= 0.1", res.Error)
	}
}

func TestSearchInvertedDomain(t *testing.T) {
	res, err := Search(context.Background(), activation.New(activation.Sigmoid), 1, -1, Config{AllowedError: 0.005})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Segments) != 0 {
		t.Errorf("got %d entries, want none", len(res.Segments))
	}
}

func TestSearchErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		fn    activation.Function
		cfg   Config
		want  error
		class func(error) bool
	}{
		{
			name:  "log with a zero budget and a small cap",
			fn:    activation.New(activation.Log),
			cfg:   Config{MaxSegments: 8},
			want:  pwl.ErrSegmentBudgetExhausted,
			class: errdefs.IsResourceExhausted,
		},
		{
			name:  "iteration cap",
			fn:    activation.New(activation.Sigmoid),
			cfg:   Config{AllowedError: 0.001, MaxIterations: 1},
			want:  pwl.ErrNonConvergence,
			class: errdefs.IsAborted,
		},
		{
			name:  "cube",
			fn:    activation.NewPower(3, 1, 0),
			cfg:   Config{AllowedError: 1},
			want:  pwl.ErrDomain,
			class: errdefs.IsOutOfRange,
		},
		{
			name:  "negative samples",
			fn:    activation.New(activation.Tanh),
			cfg:   Config{AllowedError: 0.01, Samples: -1},
			want:  errdefs.ErrInvalidArgument,
			class: errdefs.IsInvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SearchDefault(ctx, tt.fn, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if !tt.class(err) {
				t.Errorf("err = %v is not of the expected class", err)
			}
		})
	}
}

func TestCountSearchMinimal(t *testing.T) {
	// The count search stops at the first N that meets the budget.
	ctx := context.Background()
	fn := activation.New(activation.Sigmoid)
	res, err := CountSearch(ctx, fn, 0, 10, Config{AllowedError: 0.005})
	if err != nil {
		t.Fatal(err)
	}
	n := res.Segments.Count()
	fit, err := PivotSearch(fn, n-1, 0, 10, false, DefaultThreshold, activation.MaxIterationsDefault)
	if err != nil {
		t.Fatal(err)
	}
	if got := MeasureError(fn, fit.Segments, 0, 10, false, DefaultSamples); got <= 0.005 {
		t.Errorf("%d segments already meet the budget (%g); search returned %d", n-1, got, n)
	}
}

func TestCountSearchExactlyMaxSegments(t *testing.T) {
	ctx := context.Background()
	fn := activation.New(activation.Sigmoid)
	res, err := CountSearch(ctx, fn, 0, 10, Config{AllowedError: 0.005, MaxSegments: 5})
	if err != nil {
		t.Fatalf("budget met at the cap: %v", err)
	}
	if got := res.Segments.Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
	_, err = CountSearch(ctx, fn, 0, 10, Config{AllowedError: 0.005, MaxSegments: 4})
	if !errors.Is(err, pwl.ErrSegmentBudgetExhausted) {
		t.Errorf("err = %v, want %v", err, pwl.ErrSegmentBudgetExhausted)
	}
}

func TestFitMatchesSearch(t *testing.T) {
	ctx := context.Background()
	fn := activation.New(activation.Sigmoid)
	want, err := Search(ctx, fn, -10, 10, Config{AllowedError: 0.005})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Fit(ctx, fn, want.Segments.Count()/2, -10, 10, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fit() mismatch (-want +got):\n%s", diff)
	}
}

func TestFitClosedForm(t *testing.T) {
	ctx := context.Background()
	got, err := Fit(ctx, activation.New(activation.ReLU), 7, -1, 1, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got.Segments.Count() != 2 {
		t.Errorf("ReLU Count() = %d, want 2", got.Segments.Count())
	}
	if _, err := Fit(ctx, activation.New(activation.Tanh), 0, -1, 1, Config{}); !errdefs.IsInvalidArgument(err) {
		t.Errorf("Fit with 0 segments: err = %v, want invalid argument", err)
	}
}
