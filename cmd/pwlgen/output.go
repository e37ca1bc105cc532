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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-pwl/pwl/activation"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown format %q, want %q or %q", format, formatTable, formatJSON)
	}
}

var title = cases.Title(language.English)

// displayName renders a function for people: "Sigmoid", "Power(x^0.5)".
func displayName(fn activation.Function) string {
	name := title.String(fn.Kind.String())
	switch fn.Kind {
	case activation.Power:
		if fn.Scale == 1 && fn.Shift == 0 {
			return fmt.Sprintf("%s(x^%g)", name, fn.Exponent)
		}
		return fmt.Sprintf("%s((%g*x%+g)^%g)", name, fn.Scale, fn.Shift, fn.Exponent)
	case activation.Clamp:
		return fmt.Sprintf("%s(%g, %g)", name, fn.Low, fn.High)
	default:
		return name
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
