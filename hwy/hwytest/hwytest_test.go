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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-highway-lanes/hwy"
)

func TestLaneCounts(t *testing.T) {
	tests := []struct {
		native int
		want   []int
	}{
		{native: 1, want: []int{1}},
		{native: 2, want: []int{2, 1}},
		{native: 4, want: []int{4, 3, 2, 1}},
		{native: 8, want: []int{8, 7, 4, 3, 2, 1}},
		{native: 64, want: []int{64, 63, 32, 16, 8, 4, 3, 2, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LaneCounts(tt.native), "native=%d", tt.native)
	}
}

func TestForPartialVectors(t *testing.T) {
	var seen int
	ForPartialVectors(t, func(t *testing.T, d hwy.Desc[uint16]) {
		seen++
		require.GreaterOrEqual(t, d.Lanes(), 1)
		require.LessOrEqual(t, d.Lanes(), d.MaxLanes())
	})

	want := 0
	for _, target := range hwy.CompiledTargets() {
		want += len(LaneCounts(target.Lanes(2)))
	}
	assert.Equal(t, want, seen)
}

func TestOracles(t *testing.T) {
	t.Run("uint32", func(t *testing.T) {
		assert.Equal(t, uint32(27), LeadingZeroCount(uint32(0x1D)))
		assert.Equal(t, uint32(3), TrailingZeroCount(uint32(0x68)))
		assert.Equal(t, uint32(5), HighestSetBitIndex(uint32(0x2B)))
		assert.Equal(t, uint32(4), PopCount(uint32(0x1D)))
		assert.Equal(t, uint32(32), LeadingZeroCount(uint32(0)))
		assert.Equal(t, uint32(32), TrailingZeroCount(uint32(0)))
		assert.Equal(t, uint32(math.MaxUint32), HighestSetBitIndex(uint32(0)))
	})

	t.Run("int8", func(t *testing.T) {
		assert.Equal(t, int8(8), PopCount(int8(-1)))
		assert.Equal(t, int8(0), LeadingZeroCount(int8(-128)))
		assert.Equal(t, int8(7), TrailingZeroCount(int8(-128)))
		assert.Equal(t, int8(-1), HighestSetBitIndex(int8(0)))
		assert.Equal(t, int8(-1), BroadcastSignBit(int8(-3)))
		assert.Equal(t, int8(0), BroadcastSignBit(int8(3)))
	})

	t.Run("TestBit", func(t *testing.T) {
		assert.True(t, TestBit(uint16(0b1011), 0b0011))
		assert.False(t, TestBit(uint16(0b1011), 0b0100))
		assert.True(t, TestBit(uint16(5), 0))
	})

	t.Run("CopySign", func(t *testing.T) {
		assert.Equal(t, float32(-2), CopySign(float32(2), -0.5))
		assert.Equal(t, 3.0, CopySign(-3.0, 1))
		assert.True(t, math.Signbit(CopySign(0.0, -1)))
	})
}

func TestBitsRoundTrip(t *testing.T) {
	assert.Equal(t, uint64(0xFF), Bits(int8(-1)))
	assert.Equal(t, uint64(0x80000000), Bits(float32(math.Copysign(0, -1))))
	assert.Equal(t, int16(-2), FromBits[int16](0xFFFFFFFFFFFFFFFE))
	assert.Equal(t, 1.5, FromBits[float64](math.Float64bits(1.5)))
}

func TestRandomBits(t *testing.T) {
	r := NewRand(1)
	for _, x := range RandomBits[uint64](r, 100) {
		assert.Equal(t, uint64(1), PopCount(x))
	}
	a := RandomLanes[int32](NewRand(7), 16)
	b := RandomLanes[int32](NewRand(7), 16)
	assert.Equal(t, a, b, "same seed must give the same lanes")
}
