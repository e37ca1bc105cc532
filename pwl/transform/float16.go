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

import "math"

// Float16 is an IEEE 754 binary16 value as stored in half-precision
// constants: 1 sign bit, 5 exponent bits (bias 15), 10 mantissa bits.
type Float16 uint16

// Float16 bit patterns used by exponent constants.
const (
	Float16One  Float16 = 0x3C00 // 1.0
	Float16Two  Float16 = 0x4000 // 2.0
	Float16Half Float16 = 0x3800 // 0.5
	Float16Inf  Float16 = 0x7C00
	Float16NaN  Float16 = 0x7E00

	f16ExpBias  = 15
	f16MantBits = 10
	f16MantMask = 0x3FF
)

// Float64 decodes h exactly. Every binary16 value, subnormals included, is
// representable as a float64.
func (h Float16) Float64() float64 {
	neg := h&0x8000 != 0
	exp := int(h>>f16MantBits) & 0x1F
	mant := float64(h & f16MantMask)

	var v float64
	switch exp {
	case 0:
		// Subnormal or zero: mant * 2^-24.
		v = math.Ldexp(mant, 1-f16ExpBias-f16MantBits)
	case 0x1F:
		if mant != 0 {
			return math.NaN()
		}
		v = math.Inf(1)
	default:
		v = math.Ldexp(1+mant/(1<<f16MantBits), exp-f16ExpBias)
	}
	if neg {
		v = math.Copysign(v, -1)
	}
	return v
}

// Float16From converts v to binary16 through float32, rounding to nearest
// even. Values beyond the binary16 range become infinities and values below
// half the smallest subnormal become signed zeros.
func Float16From(v float64) Float16 {
	bits := math.Float32bits(float32(v))
	sign := Float16(bits>>16) & 0x8000
	exp := int(bits>>23&0xFF) - 127 + f16ExpBias
	mant := bits & 0x7FFFFF

	switch {
	case bits&0x7FFFFFFF > 0x7F800000:
		return sign | Float16NaN
	case exp >= 0x1F:
		return sign | Float16Inf
	case exp <= 0:
		if exp < -f16MantBits {
			return sign
		}
		// Subnormal: shift the implicit leading bit into the mantissa.
		mant |= 0x800000
		shift := uint(14 - exp)
		half := uint32(1) << (shift - 1)
		rest := mant & (half<<1 - 1)
		m := mant >> shift
		if rest > half || rest == half && m&1 == 1 {
			m++
		}
		return sign | Float16(m)
	}

	// Normal: drop 13 mantissa bits with round to nearest even. A carry out
	// of the mantissa correctly bumps the exponent, up to infinity.
	h := uint32(exp)<<f16MantBits | mant>>13
	rest := mant & 0x1FFF
	if rest > 0x1000 || rest == 0x1000 && h&1 == 1 {
		h++
	}
	return sign | Float16(h)
}
