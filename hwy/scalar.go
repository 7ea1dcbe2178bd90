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

// This file provides the single-lane kernels of the scalar target. They work
// lane-by-lane on word 0 using math/bits. Converting to W truncates every
// result to the lane, so no tail masking is needed: the scalar target has
// exactly one lane and N is always 1.

type scalar[W lane] struct{}

func (k scalar[W]) name() string {
	return fmt.Sprintf("scalar/u%d", k.width())
}

func (scalar[W]) width() uint {
	return uint(bits.OnesCount64(uint64(^W(0))))
}

func (k scalar[W]) signBit() W {
	return W(1) << (k.width() - 1)
}

func lane0[W lane](x W) block {
	var d block
	d[0] = uint64(x)
	return d
}

func (scalar[W]) not(a block, _ int) block {
	return lane0(^W(a[0]))
}

func (scalar[W]) and(a, b block, _ int) block {
	return lane0(W(a[0]) & W(b[0]))
}

func (scalar[W]) or(a, b block, _ int) block {
	return lane0(W(a[0]) | W(b[0]))
}

func (scalar[W]) xor(a, b block, _ int) block {
	return lane0(W(a[0]) ^ W(b[0]))
}

func (scalar[W]) andNot(a, b block, _ int) block {
	return lane0(W(b[0]) &^ W(a[0]))
}

func (scalar[W]) or3(a, b, c block, _ int) block {
	return lane0(W(a[0]) | W(b[0]) | W(c[0]))
}

func (scalar[W]) xor3(a, b, c block, _ int) block {
	return lane0(W(a[0]) ^ W(b[0]) ^ W(c[0]))
}

func (scalar[W]) orAnd(o, a1, a2 block, _ int) block {
	return lane0(W(o[0]) | (W(a1[0]) & W(a2[0])))
}

func (k scalar[W]) copySign(mag, sign block, _ int) block {
	s := k.signBit()
	return lane0(W(mag[0])&^s | W(sign[0])&s)
}

func (k scalar[W]) copySignToAbs(abs, sign block, _ int) block {
	return lane0(W(abs[0]) | W(sign[0])&k.signBit())
}

func (k scalar[W]) broadcastSignBit(a block, _ int) block {
	return lane0(-(W(a[0]) >> (k.width() - 1)))
}

func (k scalar[W]) testBit(a, bit block, _ int) block {
	x, b := W(a[0]), W(bit[0])
	missing := (x & b) ^ b
	// Top bit of missing|-missing is set iff missing != 0.
	nonZero := (missing | -missing) >> (k.width() - 1)
	return lane0(-(nonZero ^ 1))
}

func (scalar[W]) ifThenElse(m, yes, no block, _ int) block {
	mask := W(m[0])
	return lane0(W(yes[0])&mask | W(no[0])&^mask)
}

func (scalar[W]) populationCount(a block, _ int) block {
	return lane0(W(bits.OnesCount64(uint64(W(a[0])))))
}

func (k scalar[W]) leadingZeroCount(a block, _ int) block {
	return lane0(W(bits.LeadingZeros64(uint64(W(a[0]))) - (64 - int(k.width()))))
}

func (k scalar[W]) trailingZeroCount(a block, _ int) block {
	// A sentinel bit just above the lane makes a zero lane count its width.
	// For 64-bit lanes the shift yields zero and TrailingZeros64(0) is 64.
	return lane0(W(bits.TrailingZeros64(uint64(W(a[0])) | uint64(1)<<k.width())))
}

func (scalar[W]) highestSetBitIndex(a block, _ int) block {
	return lane0(W(bits.Len64(uint64(W(a[0]))) - 1))
}
