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

package pwl

import "github.com/ajroetker/go-pwl/pwl/workerpool"

// MinParallelApply is the element count below which ApplyParallel runs on
// the caller's goroutine.
const MinParallelApply = 16384

// applyChunk is the number of elements handed to a worker at a time.
const applyChunk = 4096

// ApplyParallel is Apply split across the workers of pool. A nil pool or a
// short input runs sequentially.
func (s Segments) ApplyParallel(pool *workerpool.Pool, in, out []float64) {
	n := min(len(in), len(out))
	if pool == nil || n < MinParallelApply {
		s.Apply(in[:n], out[:n])
		return
	}
	chunks := (n + applyChunk - 1) / applyChunk
	pool.ParallelForAtomic(chunks, func(c int) {
		start := c * applyChunk
		end := min(start+applyChunk, n)
		s.Apply(in[start:end], out[start:end])
	})
}
