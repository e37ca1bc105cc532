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
	"math"
	"strings"

	"github.com/ajroetker/go-pwl/pwl"
)

// ElementType is the element type of a graph constant.
type ElementType int

const (
	Undefined ElementType = iota
	I8
	U8
	I32
	I64
	U32
	U64
	F16
	BF16
	F32
	F64
)

var elementTypeNames = [...]string{
	Undefined: "undefined",
	I8:        "i8",
	U8:        "u8",
	I32:       "i32",
	I64:       "i64",
	U32:       "u32",
	U64:       "u64",
	F16:       "f16",
	BF16:      "bf16",
	F32:       "f32",
	F64:       "f64",
}

func (e ElementType) String() string {
	if e < 0 || int(e) >= len(elementTypeNames) {
		return fmt.Sprintf("ElementType(%d)", int(e))
	}
	return elementTypeNames[e]
}

// ParseElementType maps a name such as "f32" to an ElementType.
func ParseElementType(name string) (ElementType, error) {
	for e, s := range elementTypeNames {
		if e != int(Undefined) && strings.EqualFold(s, strings.TrimSpace(name)) {
			return ElementType(e), nil
		}
	}
	return Undefined, fmt.Errorf("transform: unknown element type %q", name)
}

// Constant is a graph constant. Data holds a slice whose element type
// matches Type: []int32 for I32, []Float16 for F16, []float64 for F64 and
// so on.
type Constant struct {
	Type ElementType
	Data any
}

// Scalar returns a single-element constant of type t holding v.
func Scalar[T int32 | int64 | uint32 | uint64 | Float16 | float32 | float64](t ElementType, v T) *Constant {
	return &Constant{Type: t, Data: []T{v}}
}

// ScalarOf stores v in a single-element constant of type t. Integer types
// require an integral v within range.
func ScalarOf(t ElementType, v float64) (*Constant, error) {
	integral := func(lo, hi float64) error {
		if v != math.Trunc(v) || v < lo || v > hi {
			return fmt.Errorf("transform: %g is not representable as %s", v, t)
		}
		return nil
	}
	var err error
	switch t {
	case I32:
		if err = integral(math.MinInt32, math.MaxInt32); err == nil {
			return Scalar(t, int32(v)), nil
		}
	case I64:
		if err = integral(math.MinInt64, math.MaxInt64); err == nil {
			return Scalar(t, int64(v)), nil
		}
	case U32:
		if err = integral(0, math.MaxUint32); err == nil {
			return Scalar(t, uint32(v)), nil
		}
	case U64:
		if err = integral(0, math.MaxUint64); err == nil {
			return Scalar(t, uint64(v)), nil
		}
	case F16:
		return Scalar(t, Float16From(v)), nil
	case F32:
		return Scalar(t, float32(v)), nil
	case F64:
		return Scalar(t, v), nil
	default:
		err = fmt.Errorf("transform: cannot build a %s scalar", t)
	}
	return nil, err
}

// Exponent reads the exponent of a Power node from its constant input.
//
// Integer (i32, i64, u32, u64) and floating point (f16, f32, f64) element
// types are accepted. A nil constant, any other element type, Data that does
// not match Type, or anything but exactly one element fails with
// pwl.ErrUnsupportedExponent.
func Exponent(c *Constant) (float64, error) {
	if c == nil {
		return 0, fmt.Errorf("%w: exponent input is not a constant", pwl.ErrUnsupportedExponent)
	}
	switch c.Type {
	case I32:
		v, err := single[int32](c)
		return float64(v), err
	case I64:
		v, err := single[int64](c)
		return float64(v), err
	case U32:
		v, err := single[uint32](c)
		return float64(v), err
	case U64:
		v, err := single[uint64](c)
		return float64(v), err
	case F16:
		v, err := single[Float16](c)
		return v.Float64(), err
	case F32:
		v, err := single[float32](c)
		return float64(v), err
	case F64:
		return single[float64](c)
	default:
		return 0, fmt.Errorf("%w: element type %s", pwl.ErrUnsupportedExponent, c.Type)
	}
}

func single[T any](c *Constant) (T, error) {
	var zero T
	data, ok := c.Data.([]T)
	if !ok {
		return zero, fmt.Errorf("%w: %s constant holds %T", pwl.ErrUnsupportedExponent, c.Type, c.Data)
	}
	if len(data) != 1 {
		return zero, fmt.Errorf("%w: %d elements, want 1", pwl.ErrUnsupportedExponent, len(data))
	}
	return data[0], nil
}
