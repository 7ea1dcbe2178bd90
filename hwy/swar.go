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

import (
	"fmt"
	"math/bits"
)

// This file provides the vector-target kernels. They treat each 64-bit word
// of a block as a register of 64/width packed lanes (SIMD within a register)
// and use only shifts, masks and adds that never carry or borrow across a
// lane boundary. No kernel branches on lane values; the only conditionals
// depend on the lane width, which is fixed per instantiation.

// reg is the set of register shapes, one per native vector width.
type reg interface {
	~[2]uint64 | ~[4]uint64 | ~[8]uint64
}

// swar implements kernelSet for a target whose native register is R,
// operating on lanes of type W.
type swar[R reg, W lane] struct{}

func (swar[R, W]) words() int {
	var r R
	return len(r)
}

func (k swar[R, W]) name() string {
	return fmt.Sprintf("swar%d/u%d", 64*k.words(), k.width())
}

func (swar[R, W]) width() uint {
	return uint(bits.OnesCount64(uint64(^W(0))))
}

// lsbs returns a word with the lowest bit of every lane set.
func (swar[R, W]) lsbs() uint64 {
	return ^uint64(0) / uint64(^W(0))
}

// msbs returns a word with the highest bit of every lane set.
func (k swar[R, W]) msbs() uint64 {
	return k.lsbs() << (k.width() - 1)
}

// laneSub returns x - y computed independently in every lane, wrapping.
func laneSub(x, y, msbs uint64) uint64 {
	return ((x | msbs) - (y &^ msbs)) ^ ((x ^ ^y) & msbs)
}

// nonZeroMSB sets the top bit of every lane of x that is not zero and
// clears all other bits.
func nonZeroMSB(x, msbs uint64) uint64 {
	return (((x &^ msbs) + ^msbs) | x) & msbs
}

// spreadMSB widens each set lane top bit in h to an all-ones lane. h must
// contain top bits only, so the subtraction never borrows across lanes.
func spreadMSB(h uint64, width uint) uint64 {
	return h | (h - (h >> (width - 1)))
}

// popLanes returns the number of set bits of every lane.
func popLanes(x uint64, width uint) uint64 {
	x -= (x >> 1) & 0x5555555555555555
	x = (x & 0x3333333333333333) + ((x >> 2) & 0x3333333333333333)
	x = (x + (x >> 4)) & 0x0f0f0f0f0f0f0f0f
	if width >= 16 {
		x = (x + (x >> 8)) & 0x00ff00ff00ff00ff
	}
	if width >= 32 {
		x = (x + (x >> 16)) & 0x0000ffff0000ffff
	}
	if width >= 64 {
		x = (x + (x >> 32)) & 0x00000000ffffffff
	}
	return x
}

// smearRight copies the highest set bit of every lane into all lower bits
// of the same lane.
func (k swar[R, W]) smearRight(x uint64) uint64 {
	lsbs, ones, width := k.lsbs(), uint64(^W(0)), k.width()
	for s := uint(1); s < width; s <<= 1 {
		x |= (x >> s) & (lsbs * (ones >> s))
	}
	return x
}

func (k swar[R, W]) not(a block, nb int) block {
	var d block
	for i := range k.words() {
		d[i] = ^a[i] & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) and(a, b block, nb int) block {
	var d block
	for i := range k.words() {
		d[i] = a[i] & b[i] & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) or(a, b block, nb int) block {
	var d block
	for i := range k.words() {
		d[i] = (a[i] | b[i]) & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) xor(a, b block, nb int) block {
	var d block
	for i := range k.words() {
		d[i] = (a[i] ^ b[i]) & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) andNot(a, b block, nb int) block {
	var d block
	for i := range k.words() {
		d[i] = b[i] &^ a[i] & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) or3(a, b, c block, nb int) block {
	var d block
	for i := range k.words() {
		d[i] = (a[i] | b[i] | c[i]) & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) xor3(a, b, c block, nb int) block {
	var d block
	for i := range k.words() {
		d[i] = (a[i] ^ b[i] ^ c[i]) & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) orAnd(o, a1, a2 block, nb int) block {
	var d block
	for i := range k.words() {
		d[i] = (o[i] | (a1[i] & a2[i])) & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) copySign(mag, sign block, nb int) block {
	msbs := k.msbs()
	var d block
	for i := range k.words() {
		d[i] = (mag[i]&^msbs | sign[i]&msbs) & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) copySignToAbs(abs, sign block, nb int) block {
	msbs := k.msbs()
	var d block
	for i := range k.words() {
		d[i] = (abs[i] | sign[i]&msbs) & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) broadcastSignBit(a block, nb int) block {
	msbs, width := k.msbs(), k.width()
	var d block
	for i := range k.words() {
		d[i] = spreadMSB(a[i]&msbs, width) & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) testBit(a, bit block, nb int) block {
	msbs, width := k.msbs(), k.width()
	var d block
	for i := range k.words() {
		missing := (a[i] & bit[i]) ^ bit[i]
		d[i] = spreadMSB(^nonZeroMSB(missing, msbs)&msbs, width) & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) ifThenElse(m, yes, no block, nb int) block {
	var d block
	for i := range k.words() {
		d[i] = (yes[i]&m[i] | no[i]&^m[i]) & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) populationCount(a block, nb int) block {
	width := k.width()
	var d block
	for i := range k.words() {
		d[i] = popLanes(a[i], width) & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) leadingZeroCount(a block, nb int) block {
	msbs, width := k.msbs(), k.width()
	full := k.lsbs() * uint64(width)
	var d block
	for i := range k.words() {
		d[i] = laneSub(full, popLanes(k.smearRight(a[i]), width), msbs) & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) trailingZeroCount(a block, nb int) block {
	lsbs, msbs, width := k.lsbs(), k.msbs(), k.width()
	var d block
	for i := range k.words() {
		// Bits below the lowest set bit; all bits of a zero lane.
		below := ^a[i] & laneSub(a[i], lsbs, msbs)
		d[i] = popLanes(below, width) & keep(i, nb)
	}
	return d
}

func (k swar[R, W]) highestSetBitIndex(a block, nb int) block {
	lsbs, msbs, width := k.lsbs(), k.msbs(), k.width()
	var d block
	for i := range k.words() {
		d[i] = laneSub(popLanes(k.smearRight(a[i]), width), lsbs, msbs) & keep(i, nb)
	}
	return d
}
