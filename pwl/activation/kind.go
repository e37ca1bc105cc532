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
	"strings"
)

// Kind identifies an activation function.
type Kind int

const (
	// Sigmoid is the logistic function 1/(1+exp(-x)).
	Sigmoid Kind = iota
	// Tanh is the hyperbolic tangent.
	Tanh
	// Exp is the natural exponential.
	Exp
	// Log is the natural logarithm, defined for x > 0.
	Log
	// SoftSign is x/(1+|x|).
	SoftSign
	// Power is (scale*x + shift)^exponent.
	Power

	// ReLU is max(0, x).
	ReLU
	// LeakyReLU is x for x >= 0 and LeakyReLUSlope*x otherwise.
	LeakyReLU
	// Clamp limits x to [Low, High].
	Clamp
)

var kindNames = [...]string{
	Sigmoid:   "sigmoid",
	Tanh:      "tanh",
	Exp:       "exp",
	Log:       "log",
	SoftSign:  "softsign",
	Power:     "power",
	ReLU:      "relu",
	LeakyReLU: "leakyrelu",
	Clamp:     "clamp",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Exact reports whether the kind is already piecewise linear.
func (k Kind) Exact() bool {
	switch k {
	case ReLU, LeakyReLU, Clamp:
		return true
	default:
		return false
	}
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{Sigmoid, Tanh, Exp, Log, SoftSign, Power, ReLU, LeakyReLU, Clamp}
}

// ParseKind maps a name to a Kind. Matching ignores case, and "leaky_relu",
// "soft_sign" and "pow" are accepted as aliases.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "leaky_relu":
		return LeakyReLU, nil
	case "soft_sign":
		return SoftSign, nil
	case "pow":
		return Power, nil
	}
	for k, s := range kindNames {
		if s == n {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("activation: unknown kind %q", name)
}
