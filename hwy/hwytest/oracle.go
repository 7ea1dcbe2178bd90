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

package hwytest

import (
	"math"
	"math/bits"

	"github.com/ajroetker/go-highway-lanes/hwy"
)

// This file provides scalar reference implementations of the lane
// operations. They are written directly on math/bits, independently of the
// kernels they check.

// Bits returns the raw bit pattern of x, zero-extended to 64 bits.
func Bits[T hwy.Lanes](x T) uint64 {
	switch v := any(x).(type) {
	case int8:
		return uint64(uint8(v))
	case uint8:
		return uint64(v)
	case int16:
		return uint64(uint16(v))
	case uint16:
		return uint64(v)
	case int32:
		return uint64(uint32(v))
	case uint32:
		return uint64(v)
	case int64:
		return uint64(v)
	case uint64:
		return v
	case float32:
		return uint64(math.Float32bits(v))
	case float64:
		return math.Float64bits(v)
	default:
		panic("hwytest: unsupported lane type")
	}
}

// FromBits is the inverse of Bits; high bits beyond the width of T are
// discarded.
func FromBits[T hwy.Lanes](b uint64) T {
	var x T
	switch any(x).(type) {
	case int8:
		return any(int8(b)).(T)
	case uint8:
		return any(uint8(b)).(T)
	case int16:
		return any(int16(b)).(T)
	case uint16:
		return any(uint16(b)).(T)
	case int32:
		return any(int32(b)).(T)
	case uint32:
		return any(uint32(b)).(T)
	case int64:
		return any(int64(b)).(T)
	case uint64:
		return any(b).(T)
	case float32:
		return any(math.Float32frombits(uint32(b))).(T)
	case float64:
		return any(math.Float64frombits(b)).(T)
	default:
		panic("hwytest: unsupported lane type")
	}
}

// PopCount counts the set bits of x.
func PopCount[T hwy.Integers](x T) T {
	return T(bits.OnesCount64(Bits(x)))
}

// LeadingZeroCount counts the zero bits above the highest set bit of x.
// Zero yields the bit width of T.
func LeadingZeroCount[T hwy.Integers](x T) T {
	return T(bits.LeadingZeros64(Bits(x)) - (64 - BitWidth[T]()))
}

// TrailingZeroCount counts the zero bits below the lowest set bit of x.
// Zero yields the bit width of T.
func TrailingZeroCount[T hwy.Integers](x T) T {
	b := Bits(x)
	if b == 0 {
		return T(BitWidth[T]())
	}
	return T(bits.TrailingZeros64(b))
}

// HighestSetBitIndex returns the index of the highest set bit of x.
// Zero yields all bits set: -1 for signed types, the maximum for unsigned.
func HighestSetBitIndex[T hwy.Integers](x T) T {
	b := Bits(x)
	if b == 0 {
		return FromBits[T](math.MaxUint64)
	}
	return T(bits.Len64(b) - 1)
}

// BroadcastSignBit returns -1 if x is negative and 0 otherwise.
func BroadcastSignBit[T hwy.SignedInts](x T) T {
	if x < 0 {
		return FromBits[T](math.MaxUint64)
	}
	return 0
}

// TestBit reports whether every bit set in bit is set in x.
func TestBit[T hwy.Integers](x, bit T) bool {
	return x&bit == bit
}

// CopySign returns mag with the sign bit of sign, like math.Copysign but
// without converting through float64, so NaN payloads are preserved.
func CopySign[T hwy.Floats](mag, sign T) T {
	sb := uint64(1) << (BitWidth[T]() - 1)
	return FromBits[T](Bits(mag)&^sb | Bits(sign)&sb)
}
