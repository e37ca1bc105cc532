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
	"math"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/go-pwl/pwl"
	"github.com/ajroetker/go-pwl/pwl/activation"
)

func TestExact(t *testing.T) {
	tests := []struct {
		fn   activation.Function
		want pwl.Segments
	}{
		{
			fn: activation.New(activation.ReLU),
			want: pwl.Segments{
				{Slope: 0, Intercept: 0, Breakpoint: math.MinInt32},
				{Slope: 1, Intercept: 0, Breakpoint: 0},
				{Slope: 0, Intercept: 0, Breakpoint: math.MaxInt32},
			},
		},
		{
			fn: activation.New(activation.LeakyReLU),
			want: pwl.Segments{
				{Slope: 0.01, Intercept: 0, Breakpoint: math.MinInt32},
				{Slope: 1, Intercept: 0, Breakpoint: 0},
				{Slope: 0, Intercept: 0, Breakpoint: math.MaxInt32},
			},
		},
		{
			fn: activation.NewClamp(-2, 3),
			want: pwl.Segments{
				{Slope: 0, Intercept: -2, Breakpoint: math.MinInt32},
				{Slope: 1, Intercept: 0, Breakpoint: -2},
				{Slope: 0, Intercept: 3, Breakpoint: 3},
				{Slope: 0, Intercept: 0, Breakpoint: math.MaxInt32},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.fn.String(), func(t *testing.T) {
			res, err := Search(context.Background(), tt.fn, -1, 1, Config{})
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, res.Segments); diff != "" {
				t.Errorf("segments mismatch (-want +got):\n%s", diff)
			}
			for x := -10.0; x <= 10; x += 0.5 {
				if got, want := res.Segments.Eval(x), tt.fn.Value(x); got != want {
					t.Errorf("pwl(%g) = %g, want %g", x, got, want)
				}
			}
		})
	}
}

func TestExactInvalid(t *testing.T) {
	for _, fn := range []activation.Function{
		activation.NewClamp(1, 1),
		activation.NewClamp(2, -2),
		activation.NewClamp(math.Inf(-1), 0),
		activation.New(activation.Sigmoid),
	} {
		if _, err := Exact(fn); !errdefs.IsInvalidArgument(err) {
			t.Errorf("Exact(%s) = %v, want invalid argument", fn, err)
		}
	}
}

func TestAffine(t *testing.T) {
	segs := Affine(2, -1)
	if err := segs.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := segs.Eval(3); got != 5 {
		t.Errorf("Eval(3) = %g, want 5", got)
	}
}
