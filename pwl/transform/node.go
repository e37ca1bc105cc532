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
	"fmt"
	"strings"
)

// Op is the operator of a graph node.
type Op int

const (
	// Unsupported marks nodes the pass never converts.
	Unsupported Op = iota
	Sigmoid
	Tanh
	Exp
	Log
	SoftSign
	// Power raises its first input to a constant exponent held by the
	// second input.
	Power
	// PowerIE is the legacy (scale*x + shift)^power node with attributes.
	PowerIE
)

var opNames = [...]string{
	Unsupported: "unsupported",
	Sigmoid:     "Sigmoid",
	Tanh:        "Tanh",
	Exp:         "Exp",
	Log:         "Log",
	SoftSign:    "SoftSign",
	Power:       "Power",
	PowerIE:     "PowerIE",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// ParseOp maps an operator name to an Op, ignoring case.
func ParseOp(name string) (Op, error) {
	for o, s := range opNames {
		if o != int(Unsupported) && strings.EqualFold(s, strings.TrimSpace(name)) {
			return Op(o), nil
		}
	}
	return Unsupported, fmt.Errorf("transform: unknown operator %q", name)
}

// Node is the view of a graph node the conversion needs.
type Node interface {
	Name() string
	Op() Op
}

// PowerNode is implemented by Power nodes.
type PowerNode interface {
	Node
	// ExponentInput returns the constant feeding the exponent input, or nil
	// if that input is not a constant.
	ExponentInput() *Constant
}

// PowerIENode is implemented by PowerIE nodes.
type PowerIENode interface {
	Node
	PowerAttrs() (power, scale, shift float64)
}

// Basic is a self-contained Node for callers without a graph of their own,
// such as command-line tools and tests. It implements PowerNode and
// PowerIENode; only the method matching Kind is meaningful.
type Basic struct {
	NodeName string
	Kind     Op

	// Exponent feeds Power nodes.
	Exponent *Constant

	// Attributes of PowerIE nodes.
	Pow, Scale, Shift float64
}

var (
	_ PowerNode   = (*Basic)(nil)
	_ PowerIENode = (*Basic)(nil)
)

func (b *Basic) Name() string { return b.NodeName }

func (b *Basic) Op() Op { return b.Kind }

func (b *Basic) ExponentInput() *Constant { return b.Exponent }

func (b *Basic) PowerAttrs() (power, scale, shift float64) {
	return b.Pow, b.Scale, b.Shift
}
