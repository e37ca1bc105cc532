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

package activation

import (
	"fmt"
	"math"
)

// Search tuning and domain constants.
const (
	// ExpBreak is where the Exp domain is split. Left of it the function is
	// nearly flat and a separate search keeps the small values accurate.
	ExpBreak = 0.045

	// LogLower and LogUpper bound the default Log domain.
	LogLower = 0.001
	LogUpper = 2981.0

	// PowerBound is the magnitude of the default Power domain.
	PowerBound = 16.0

	// LeakyReLUSlope is the negative-side slope of LeakyReLU.
	LeakyReLUSlope = 0.01

	// MaxIterationsDefault caps the pivot search for most kinds.
	MaxIterationsDefault = 2000
	// MaxIterationsLog caps the pivot search for Log, which converges slowly
	// near the origin.
	MaxIterationsLog = 5000

	// MaxSegmentsDefault caps the number of segments per (sub)domain.
	MaxSegmentsDefault = 128
)

// expBound is ln(32767): exp over [-expBound, expBound] spans the int16 range.
var expBound = math.Log(math.MaxInt16)

// Function is an activation function together with its parameters. The
// zero value of the parameters is only meaningful for kinds that ignore them;
// use New, NewPower or NewClamp to build one.
type Function struct {
	Kind Kind

	// Exponent, Scale and Shift parameterize Power as (Scale*x+Shift)^Exponent.
	Exponent float64
	Scale    float64
	Shift    float64

	// Low and High are the Clamp limits.
	Low  float64
	High float64
}

// New returns the function for a kind with default parameters: Power is
// the identity x^1 and Clamp is [-1, 1].
func New(k Kind) Function {
	f := Function{Kind: k, Scale: 1}
	switch k {
	case Power:
		f.Exponent = 1
	case Clamp:
		f.Low, f.High = -1, 1
	}
	return f
}

// NewPower returns (scale*x + shift)^exponent.
func NewPower(exponent, scale, shift float64) Function {
	return Function{Kind: Power, Exponent: exponent, Scale: scale, Shift: shift}
}

// NewClamp returns clamp(x, low, high).
func NewClamp(low, high float64) Function {
	return Function{Kind: Clamp, Scale: 1, Low: low, High: high}
}

// String returns a readable description including parameters.
func (f Function) String() string {
	switch f.Kind {
	case Power:
		return fmt.Sprintf("power(exponent=%g, scale=%g, shift=%g)", f.Exponent, f.Scale, f.Shift)
	case Clamp:
		return fmt.Sprintf("clamp(%g, %g)", f.Low, f.High)
	default:
		return f.Kind.String()
	}
}

// Value returns f(x). Out-of-domain inputs yield NaN or ±Inf.
func (f Function) Value(x float64) float64 {
	switch f.Kind {
	case Sigmoid:
		return 0.5 * (1 + math.Tanh(x/2))
	case Tanh:
		return math.Tanh(x)
	case Exp:
		return math.Exp(x)
	case Log:
		return math.Log(x)
	case SoftSign:
		return x / (1 + math.Abs(x))
	case Power:
		return math.Pow(f.Scale*x+f.Shift, f.Exponent)
	case ReLU:
		return max(x, 0)
	case LeakyReLU:
		if x < 0 {
			return LeakyReLUSlope * x
		}
		return x
	case Clamp:
		return min(max(x, f.Low), f.High)
	default:
		return math.NaN()
	}
}

// Derivative returns f'(x).
func (f Function) Derivative(x float64) float64 {
	switch f.Kind {
	case Sigmoid:
		s := f.Value(x)
		return s * (1 - s)
	case Tanh:
		t := math.Tanh(x)
		return 1 - t*t
	case Exp:
		return math.Exp(x)
	case Log:
		return 1 / x
	case SoftSign:
		d := 1 + math.Abs(x)
		return 1 / (d * d)
	case Power:
		return f.Exponent * f.Scale * math.Pow(f.Scale*x+f.Shift, f.Exponent-1)
	case ReLU:
		if x < 0 {
			return 0
		}
		return 1
	case LeakyReLU:
		if x < 0 {
			return LeakyReLUSlope
		}
		return 1
	case Clamp:
		if x < f.Low || x > f.High {
			return 0
		}
		return 1
	default:
		return math.NaN()
	}
}

// Bounds returns the default approximation domain.
func (f Function) Bounds() (lower, upper float64) {
	switch f.Kind {
	case Sigmoid, SoftSign:
		return -10, 10
	case Tanh:
		return -5, 5
	case Exp:
		return -expBound, expBound
	case Log:
		return LogLower, LogUpper
	case Power:
		if f.IntegerExponent() {
			return -PowerBound, PowerBound
		}
		// Fractional powers of negative numbers are undefined.
		return 0, PowerBound
	default:
		return math.MinInt32, math.MaxInt32
	}
}

// IntegerExponent reports whether the Power exponent has no fractional part.
func (f Function) IntegerExponent() bool {
	return math.Mod(f.Exponent, 1) == 0
}

// BreakPoint returns the interior point at which the domain is split, if the
// kind has one.
func (f Function) BreakPoint() (float64, bool) {
	switch f.Kind {
	case Sigmoid, Tanh, SoftSign:
		return 0, true
	case Exp:
		return ExpBreak, true
	case Power:
		// Only fractional exponents have the branch cut at the origin.
		return 0, !f.IntegerExponent()
	default:
		return 0, false
	}
}

// Splits reports whether the search over [lower, upper] must be split at the
// break point.
func (f Function) Splits(lower, upper float64) bool {
	if lower > upper {
		return false
	}
	b, ok := f.BreakPoint()
	return ok && lower < b && upper > b
}

// IsNegative reports whether the search over a domain ending at upper runs
// on -f instead of f. The tangent construction expects the tangent lines to
// lie above the curve, so convex pieces are searched negated.
func (f Function) IsNegative(upper float64) bool {
	switch f.Kind {
	case Sigmoid, Tanh, SoftSign:
		return upper == 0
	case Exp:
		return true
	case Power:
		return f.IntegerExponent()
	default:
		return false
	}
}

// MaxError returns the error budget the search must meet for a caller
// budget of allowed. Every kind currently uses the caller budget as is.
func (f Function) MaxError(allowed float64) float64 {
	// TODO: confirm whether Power with a zero exponent needs its own tolerance.
	return allowed
}

// MaxIterations returns the pivot search iteration cap.
func (f Function) MaxIterations() int {
	if f.Kind == Log {
		return MaxIterationsLog
	}
	return MaxIterationsDefault
}

// MaxSegments returns the segment cap per (sub)domain.
func (f Function) MaxSegments() int {
	return MaxSegmentsDefault
}
