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

import (
	"os"
	"strconv"
)

// hasFMA selects fused multiply-add evaluation. Set by init() in
// dispatch_*.go files.
var hasFMA bool

// FusedMultiplyAdd reports whether segment evaluation fuses m*x + b.
func FusedMultiplyAdd() bool {
	return hasFMA
}

// DispatchName returns "fma" or "scalar" for the active evaluation mode.
func DispatchName() string {
	if hasFMA {
		return "fma"
	}
	return "scalar"
}

// NoFMAEnv checks if the PWL_NO_FMA environment variable is set.
// When set, evaluation uses a separate multiply and add regardless of the
// CPU. Useful to reproduce results from machines without FMA.
func NoFMAEnv() bool {
	val := os.Getenv("PWL_NO_FMA")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
