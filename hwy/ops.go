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

package hwy

// This file is the public operation set. Every function takes and returns
// values, performs one indirect call into the kernels of the target the
// operands were built for, and leaves lanes at and beyond N zero.
//
// Operands of a binary or ternary operation must come from the same
// descriptor. With the hwydebug build tag a mismatch panics with a
// *ContractError; otherwise the result is unspecified.

// Not returns the bitwise complement of each lane.
func Not[T Lanes](v Vec[T]) Vec[T] {
	v.w = v.lk.not(v.w, v.nb)
	return v
}

// And returns a & b.
func And[T Lanes](a, b Vec[T]) Vec[T] {
	if debugChecks {
		checkSameShape("And", a.lk, b.lk, a.nb, b.nb)
	}
	a.w = a.lk.and(a.w, b.w, a.nb)
	return a
}

// Or returns a | b.
func Or[T Lanes](a, b Vec[T]) Vec[T] {
	if debugChecks {
		checkSameShape("Or", a.lk, b.lk, a.nb, b.nb)
	}
	a.w = a.lk.or(a.w, b.w, a.nb)
	return a
}

// Xor returns a ^ b.
func Xor[T Lanes](a, b Vec[T]) Vec[T] {
	if debugChecks {
		checkSameShape("Xor", a.lk, b.lk, a.nb, b.nb)
	}
	a.w = a.lk.xor(a.w, b.w, a.nb)
	return a
}

// AndNot returns ^a & b. Note the operand order: the first argument is
// the one complemented.
func AndNot[T Lanes](a, b Vec[T]) Vec[T] {
	if debugChecks {
		checkSameShape("AndNot", a.lk, b.lk, a.nb, b.nb)
	}
	a.w = a.lk.andNot(a.w, b.w, a.nb)
	return a
}

// Or3 returns a | b | c.
func Or3[T Lanes](a, b, c Vec[T]) Vec[T] {
	if debugChecks {
		checkSameShape("Or3", a.lk, b.lk, a.nb, b.nb)
		checkSameShape("Or3", a.lk, c.lk, a.nb, c.nb)
	}
	a.w = a.lk.or3(a.w, b.w, c.w, a.nb)
	return a
}

// Xor3 returns a ^ b ^ c.
func Xor3[T Lanes](a, b, c Vec[T]) Vec[T] {
	if debugChecks {
		checkSameShape("Xor3", a.lk, b.lk, a.nb, b.nb)
		checkSameShape("Xor3", a.lk, c.lk, a.nb, c.nb)
	}
	a.w = a.lk.xor3(a.w, b.w, c.w, a.nb)
	return a
}

// OrAnd returns o | (a1 & a2).
func OrAnd[T Lanes](o, a1, a2 Vec[T]) Vec[T] {
	if debugChecks {
		checkSameShape("OrAnd", o.lk, a1.lk, o.nb, a1.nb)
		checkSameShape("OrAnd", o.lk, a2.lk, o.nb, a2.nb)
	}
	o.w = o.lk.orAnd(o.w, a1.w, a2.w, o.nb)
	return o
}

// CopySign returns, per lane, the magnitude of mag with the sign bit of
// sign. It operates on the IEEE-754 bits, so NaNs and signed zeros are
// handled like any other value: CopySign(+0, -1) is -0.
func CopySign[T Floats](mag, sign Vec[T]) Vec[T] {
	if debugChecks {
		checkSameShape("CopySign", mag.lk, sign.lk, mag.nb, sign.nb)
	}
	mag.w = mag.lk.copySign(mag.w, sign.w, mag.nb)
	return mag
}

// CopySignToAbs is like CopySign but requires every lane of abs to have a
// clear sign bit, which saves one operation. With the hwydebug tag a lane
// with its sign bit set panics.
func CopySignToAbs[T Floats](abs, sign Vec[T]) Vec[T] {
	if debugChecks {
		checkSameShape("CopySignToAbs", abs.lk, sign.lk, abs.nb, sign.nb)
		checkNonNegative("CopySignToAbs", abs)
	}
	abs.w = abs.lk.copySignToAbs(abs.w, sign.w, abs.nb)
	return abs
}

// BroadcastSignBit returns all-ones for lanes whose sign bit is set and zero
// otherwise; it is an arithmetic shift right by the lane width minus one.
func BroadcastSignBit[T SignedInts](v Vec[T]) Vec[T] {
	v.w = v.lk.broadcastSignBit(v.w, v.nb)
	return v
}

// TestBit returns a mask that is true where every bit set in bit is also set
// in v, i.e. (v & bit) == bit. bit usually has one bit per lane; with
// several bits all of them must be set.
func TestBit[T Integers](v, bit Vec[T]) Mask[T] {
	if debugChecks {
		checkSameShape("TestBit", v.lk, bit.lk, v.nb, bit.nb)
	}
	return Mask[T]{w: v.lk.testBit(v.w, bit.w, v.nb), nb: v.nb}
}

// IfThenElse returns yes where the mask is true and no elsewhere.
func IfThenElse[T Lanes](m Mask[T], yes, no Vec[T]) Vec[T] {
	if debugChecks {
		checkSameShape("IfThenElse", yes.lk, no.lk, yes.nb, no.nb)
		checkSameShape("IfThenElse", yes.lk, yes.lk, yes.nb, m.nb)
	}
	yes.w = yes.lk.ifThenElse(m.w, yes.w, no.w, yes.nb)
	return yes
}

// IfThenElseZero returns yes where the mask is true and zero elsewhere.
func IfThenElseZero[T Lanes](m Mask[T], yes Vec[T]) Vec[T] {
	if debugChecks {
		checkSameShape("IfThenElseZero", yes.lk, yes.lk, yes.nb, m.nb)
	}
	yes.w = yes.lk.and(m.w, yes.w, yes.nb)
	return yes
}

// PopulationCount returns the number of set bits in each lane.
func PopulationCount[T Integers](v Vec[T]) Vec[T] {
	v.w = v.lk.populationCount(v.w, v.nb)
	return v
}

// LeadingZeroCount returns the number of zero bits above the highest set bit
// of each lane. A zero lane yields the lane width in bits.
func LeadingZeroCount[T Integers](v Vec[T]) Vec[T] {
	v.w = v.lk.leadingZeroCount(v.w, v.nb)
	return v
}

// TrailingZeroCount returns the number of zero bits below the lowest set bit
// of each lane. A zero lane yields the lane width in bits.
func TrailingZeroCount[T Integers](v Vec[T]) Vec[T] {
	v.w = v.lk.trailingZeroCount(v.w, v.nb)
	return v
}

// HighestSetBitIndex returns the 0-based index of the highest set bit of
// each lane. A zero lane yields all-ones: -1 for signed types and the
// maximum value for unsigned types.
func HighestSetBitIndex[T Integers](v Vec[T]) Vec[T] {
	v.w = v.lk.highestSetBitIndex(v.w, v.nb)
	return v
}

func checkNonNegative[T Floats](op string, v Vec[T]) {
	size := laneSize[T]()
	sign := uint64(1) << (8*uint(size) - 1)
	for i := range v.NumLanes() {
		if getLane(&v.w, size, i)&sign != 0 {
			contractViolation(op, "lane %d = %v has its sign bit set", i, v.Lane(i))
		}
	}
}
