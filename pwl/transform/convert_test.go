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

package transform

import (
	"context"
	"math"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-pwl/pwl"
	"github.com/ajroetker/go-pwl/pwl/activation"
	"github.com/ajroetker/go-pwl/pwl/design"
)

func TestFunctionFor(t *testing.T) {
	tests := []struct {
		node Node
		want activation.Function
	}{
		{&Basic{Kind: Sigmoid}, activation.New(activation.Sigmoid)},
		{&Basic{Kind: Tanh}, activation.New(activation.Tanh)},
		{&Basic{Kind: Exp}, activation.New(activation.Exp)},
		{&Basic{Kind: Log}, activation.New(activation.Log)},
		{&Basic{Kind: SoftSign}, activation.New(activation.SoftSign)},
		{&Basic{Kind: Power, Exponent: Scalar(I64, int64(2))}, activation.NewPower(2, 1, 0)},
		{&Basic{Kind: PowerIE, Pow: 0.5, Scale: 2, Shift: 1}, activation.NewPower(0.5, 2, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.node.Op().String(), func(t *testing.T) {
			fn, ok, err := FunctionFor(tt.node)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, tt.want, fn)
		})
	}
}

func TestConvertSigmoid(t *testing.T) {
	node := &Basic{NodeName: "act0", Kind: Sigmoid}
	rep, ok, err := Convert(context.Background(), node, 0.005)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, "act0", rep.Name)
	n := len(rep.Slopes)
	require.Greater(t, n, 1)
	require.Len(t, rep.Intercepts, n)
	require.Len(t, rep.Breakpoints, n+1)
	require.Equal(t, -10.0, rep.Breakpoints[0])
	require.Equal(t, 10.0, rep.Breakpoints[n])
	require.Contains(t, rep.Breakpoints, 0.0)
	require.LessOrEqual(t, rep.Error, 0.005)
	for i := 1; i <= n; i++ {
		require.Greater(t, rep.Breakpoints[i], rep.Breakpoints[i-1])
	}

	segs, err := pwl.Join(rep.Slopes, rep.Intercepts, rep.Breakpoints)
	require.NoError(t, err)
	for x := -10.0; x <= 10; x += 0.25 {
		require.InDelta(t, 0.5*(1+math.Tanh(x/2)), segs.Eval(x), 0.006, "x=%g", x)
	}
}

func TestConvertPowerIdentity(t *testing.T) {
	for _, c := range []*Constant{
		Scalar(I32, int32(1)),
		Scalar(U64, uint64(1)),
		Scalar(F16, Float16One),
		Scalar(F64, 1.0),
	} {
		t.Run(c.Type.String(), func(t *testing.T) {
			rep, ok, err := Convert(context.Background(), &Basic{NodeName: "pow", Kind: Power, Exponent: c}, 0.005)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, []float64{1}, rep.Slopes)
			require.Equal(t, []float64{0}, rep.Intercepts)
			require.Equal(t, []float64{math.MinInt32, math.MaxInt32}, rep.Breakpoints)
			require.Zero(t, rep.Error)
		})
	}
}

func TestConvertPowerIEAffine(t *testing.T) {
	node := &Basic{NodeName: "scale", Kind: PowerIE, Pow: 1, Scale: 2, Shift: -3}
	rep, ok, err := Convert(context.Background(), node, 0.005)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float64{2}, rep.Slopes)
	require.Equal(t, []float64{-3}, rep.Intercepts)
}

func TestConvertDeclines(t *testing.T) {
	rep, ok, err := Convert(context.Background(), &Basic{NodeName: "add", Kind: Unsupported}, 0.005)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, rep)

	// Default domains never produce these; an inverted domain does.
	node := &Basic{NodeName: "sigmoid", Kind: Sigmoid}
	fn := activation.New(activation.Sigmoid)
	res, err := design.Search(context.Background(), fn, 1, -1, design.Config{AllowedError: 0.005})
	require.NoError(t, err)
	rep, ok = newReplacement(node, fn, res)
	require.False(t, ok)
	require.Nil(t, rep)

	rep, ok = newReplacement(node, fn, design.Result{Segments: pwl.Segments{pwl.Sentinel(1)}})
	require.False(t, ok)
	require.Nil(t, rep)

	rep, ok = newReplacement(node, fn, design.Result{Segments: design.Affine(1, 0)})
	require.True(t, ok)
	require.Equal(t, "sigmoid", rep.Name)
}

func TestConvertErrors(t *testing.T) {
	t.Run("exponent with two elements", func(t *testing.T) {
		node := &Basic{NodeName: "pow", Kind: Power, Exponent: &Constant{Type: F32, Data: []float32{2, 2}}}
		_, ok, err := Convert(context.Background(), node, 0.005)
		require.False(t, ok)
		require.ErrorIs(t, err, pwl.ErrUnsupportedExponent)
	})

	t.Run("cube has a singular exchange step", func(t *testing.T) {
		node := &Basic{NodeName: "cube", Kind: Power, Exponent: Scalar(I32, int32(3))}
		_, ok, err := Convert(context.Background(), node, 1)
		require.False(t, ok)
		require.ErrorIs(t, err, pwl.ErrDomain)
		require.True(t, errdefs.IsOutOfRange(err))
	})

	t.Run("log with a zero budget and a small cap", func(t *testing.T) {
		node := &Basic{NodeName: "log", Kind: Log}
		_, ok, err := ConvertWithConfig(context.Background(), node, design.Config{MaxSegments: 8})
		require.False(t, ok)
		require.ErrorIs(t, err, pwl.ErrSegmentBudgetExhausted)
		require.True(t, errdefs.IsResourceExhausted(err))
	})
}
