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

	"github.com/containerd/log"

	"github.com/ajroetker/go-pwl/pwl/design"
	"github.com/ajroetker/go-pwl/pwl/workerpool"
)

// Pass converts every eligible node of a graph.
type Pass struct {
	// AllowedError is the error budget of every node.
	AllowedError float64
	// Config tunes the search. Its AllowedError is replaced by the one above.
	Config design.Config
	// Pool runs the nodes concurrently. Nil converts them one at a time.
	Pool *workerpool.Pool
}

// Outcome is the result of a pass for one node.
type Outcome struct {
	Node Node
	// Replacement is nil when the node was not converted.
	Replacement *Replacement
	// Err is set when the search failed. The node is left as is.
	Err error
}

// Converted reports whether the node gets replaced.
func (o Outcome) Converted() bool {
	return o.Replacement != nil
}

// Run converts nodes and returns one Outcome per node, in input order.
// Nodes are independent: a failed search only affects its own Outcome. When
// ctx is canceled, nodes not started yet are left untransformed with the
// cancellation cause as their error.
func (p *Pass) Run(ctx context.Context, nodes []Node) []Outcome {
	cfg := p.Config
	cfg.AllowedError = p.AllowedError

	out := make([]Outcome, len(nodes))
	started := make([]bool, len(nodes))
	err := p.Pool.Each(ctx, len(nodes), func(ctx context.Context, i int) error {
		started[i] = true
		n := nodes[i]
		rep, _, err := ConvertWithConfig(ctx, n, cfg)
		out[i] = Outcome{Node: n, Replacement: rep, Err: err}
		if err != nil {
			log.G(ctx).WithError(err).WithField("node", n.Name()).Warn("pwl: node left untransformed")
		}
		return nil
	})
	if err != nil {
		for i, n := range nodes {
			if !started[i] {
				out[i] = Outcome{Node: n, Err: err}
			}
		}
	}

	var converted, failed int
	for _, o := range out {
		switch {
		case o.Err != nil:
			failed++
		case o.Converted():
			converted++
		}
	}
	log.G(ctx).WithFields(log.Fields{
		"nodes":     len(nodes),
		"converted": converted,
		"failed":    failed,
		"workers":   p.Pool.NumWorkers(),
	}).Debug("pwl: pass finished")
	return out
}
