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

// Package transform replaces activation nodes of an inference graph with
// piecewise-linear equivalents.
//
// The graph itself belongs to the caller. A node only has to report its
// name and operator through the [Node] interface; Power and PowerIE nodes
// expose their parameters through [PowerNode] and [PowerIENode].
//
// # Converting one node
//
//	rep, ok, err := transform.Convert(ctx, node, 0.005)
//	if err != nil || !ok {
//	    return // leave the node in place
//	}
//	graph.Replace(node, rep.Slopes, rep.Intercepts, rep.Breakpoints)
//
// # Converting a graph
//
// [Pass] converts independent nodes concurrently on a worker pool. Each node
// gets its own search; a failed node is reported in its [Outcome] and left
// untransformed.
package transform
