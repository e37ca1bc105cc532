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

import "testing"

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), got, err, k)
		}
	}

	aliases := map[string]Kind{
		"Leaky_ReLU": LeakyReLU,
		"soft_sign":  SoftSign,
		" pow ":      Power,
		"SIGMOID":    Sigmoid,
	}
	for name, want := range aliases {
		if got, err := ParseKind(name); err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", name, got, err, want)
		}
	}

	if _, err := ParseKind("gelu"); err == nil {
		t.Error("ParseKind(\"gelu\") should fail")
	}
}

func TestKindExact(t *testing.T) {
	for _, k := range Kinds() {
		want := k == ReLU || k == LeakyReLU || k == Clamp
		if got := k.Exact(); got != want {
			t.Errorf("%v.Exact() = %v, want %v", k, got, want)
		}
	}
	if got := Kind(42).String(); got != "Kind(42)" {
		t.Errorf("Kind(42).String() = %q", got)
	}
}
