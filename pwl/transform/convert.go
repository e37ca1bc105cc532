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
	"fmt"

	"github.com/containerd/log"

	"github.com/ajroetker/go-pwl/pwl"
	"github.com/ajroetker/go-pwl/pwl/activation"
	"github.com/ajroetker/go-pwl/pwl/design"
)

// Replacement describes the PWL node that takes the place of an activation
// node: N slopes and intercepts, and N+1 breakpoints whose last entry is the
// upper bound of the domain.
type Replacement struct {
	// Name is the replaced node's name, kept so the graph stays readable.
	Name        string              `json:"name"`
	Function    activation.Function `json:"-"`
	Slopes      []float64           `json:"slopes"`
	Intercepts  []float64           `json:"intercepts"`
	Breakpoints []float64           `json:"breakpoints"`
	Error       float64             `json:"error"`
}

// FunctionFor maps a node to the function it computes. ok is false for
// operators the conversion does not handle.
func FunctionFor(n Node) (fn activation.Function, ok bool, err error) {
	switch n.Op() {
	case Sigmoid:
		return activation.New(activation.Sigmoid), true, nil
	case Tanh:
		return activation.New(activation.Tanh), true, nil
	case Exp:
		return activation.New(activation.Exp), true, nil
	case Log:
		return activation.New(activation.Log), true, nil
	case SoftSign:
		return activation.New(activation.SoftSign), true, nil
	case Power:
		p, isPower := n.(PowerNode)
		if !isPower {
			return fn, false, fmt.Errorf("transform: node %q reports %s but has no exponent input", n.Name(), n.Op())
		}
		e, err := Exponent(p.ExponentInput())
		if err != nil {
			return fn, false, fmt.Errorf("transform: node %q: %w", n.Name(), err)
		}
		return activation.NewPower(e, 1, 0), true, nil
	case PowerIE:
		p, isPowerIE := n.(PowerIENode)
		if !isPowerIE {
			return fn, false, fmt.Errorf("transform: node %q reports %s but has no attributes", n.Name(), n.Op())
		}
		return activation.NewPower(p.PowerAttrs()), true, nil
	default:
		return fn, false, nil
	}
}

// Convert designs the PWL replacement of n over its function's default
// domain with the default search settings and the given error budget.
//
// ok is false, with a nil error, when n is not an activation the conversion
// handles or when the design has fewer than two entries.
func Convert(ctx context.Context, n Node, allowedError float64) (rep *Replacement, ok bool, err error) {
	return ConvertWithConfig(ctx, n, design.Config{AllowedError: allowedError})
}

// ConvertWithConfig is Convert with explicit search settings. Zero fields of
// cfg other than AllowedError take the per-kind defaults.
func ConvertWithConfig(ctx context.Context, n Node, cfg design.Config) (*Replacement, bool, error) {
	fn, ok, err := FunctionFor(n)
	if err != nil || !ok {
		return nil, false, err
	}
	ctx = log.WithLogger(ctx, log.G(ctx).WithField("node", n.Name()))

	res, err := design.SearchDefault(ctx, fn, cfg)
	if err != nil {
		return nil, false, fmt.Errorf("transform: node %q (%s): %w", n.Name(), fn, err)
	}
	rep, ok := newReplacement(n, fn, res)
	if !ok {
		log.G(ctx).Debug("pwl: too few segments, node kept")
	}
	return rep, ok, nil
}

// newReplacement packs a design for n. ok is false for a design with fewer
// than two entries, which has nothing to replace the node with.
func newReplacement(n Node, fn activation.Function, res design.Result) (*Replacement, bool) {
	if len(res.Segments) < 2 {
		return nil, false
	}
	slopes, intercepts, breakpoints := res.Segments.Split()
	return &Replacement{
		Name:        n.Name(),
		Function:    fn,
		Slopes:      slopes,
		Intercepts:  intercepts,
		Breakpoints: breakpoints,
		Error:       res.Error,
	}, true
}

// Segments rebuilds the segment list of r, sentinel included.
func (r *Replacement) Segments() (pwl.Segments, error) {
	return pwl.Join(r.Slopes, r.Intercepts, r.Breakpoints)
}
