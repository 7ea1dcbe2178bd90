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

package bitops

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-highway-lanes/hwy/contrib/workerpool"
	"github.com/ajroetker/go-highway-lanes/hwy/hwytest"
)

var sizes = []int{0, 1, 3, 15, 16, 17, 63, 64, 65, 1000}

func TestPopulationCount(t *testing.T) {
	src := []uint8{0x00, 0x01, 0x03, 0x07, 0x0F, 0x1F, 0x3F, 0x7F, 0xFF, 0xAA, 0x55}
	dst := make([]uint8, len(src))
	PopulationCount(dst, src)

	want := []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 4, 4}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("lane %d: got %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestCountingMatchesOracle(t *testing.T) {
	for _, n := range sizes {
		src := hwytest.RandomLanes[int32](hwytest.NewRand(uint64(n)), n)
		dst := make([]int32, n)

		PopulationCount(dst, src)
		for i, x := range src {
			require.Equal(t, hwytest.PopCount(x), dst[i], "n=%d popcnt lane %d", n, i)
		}
		LeadingZeroCount(dst, src)
		for i, x := range src {
			require.Equal(t, hwytest.LeadingZeroCount(x), dst[i], "n=%d lzcnt lane %d", n, i)
		}
		TrailingZeroCount(dst, src)
		for i, x := range src {
			require.Equal(t, hwytest.TrailingZeroCount(x), dst[i], "n=%d tzcnt lane %d", n, i)
		}
		HighestSetBitIndex(dst, src)
		for i, x := range src {
			require.Equal(t, hwytest.HighestSetBitIndex(x), dst[i], "n=%d hsbi lane %d", n, i)
		}
		BroadcastSignBits(dst, src)
		for i, x := range src {
			require.Equal(t, hwytest.BroadcastSignBit(x), dst[i], "n=%d sign lane %d", n, i)
		}
	}
}

func TestInPlace(t *testing.T) {
	buf := []uint16{0, 1, 0x8000, 0xFFFF, 0x0F00}
	LeadingZeroCount(buf, buf)
	assert.Equal(t, []uint16{16, 15, 0, 0, 4}, buf)
}

func TestDstUntouchedPastSrc(t *testing.T) {
	src := []uint64{1, 2, 3}
	dst := []uint64{9, 9, 9, 9, 9}
	TrailingZeroCount(dst, src)
	assert.Equal(t, []uint64{0, 1, 0, 9, 9}, dst)
}

func TestShortDstPanics(t *testing.T) {
	assert.Panics(t, func() {
		PopulationCount(make([]uint8, 2), make([]uint8, 3))
	})
}

func TestCountBits(t *testing.T) {
	for _, n := range sizes {
		src := hwytest.RandomLanes[uint64](hwytest.NewRand(11), n)
		want := 0
		for _, x := range src {
			want += bits.OnesCount64(x)
		}
		assert.Equal(t, want, CountBits(src), "n=%d", n)
	}
	assert.Equal(t, 0, CountBits(make([]int8, 100)))
	neg := make([]int8, 100)
	for i := range neg {
		neg[i] = -1
	}
	assert.Equal(t, 800, CountBits(neg))
}

func TestCountTestBit(t *testing.T) {
	src := []uint32{0b0001, 0b0011, 0b0111, 0b0110, 0b0100, 0}
	assert.Equal(t, 3, CountTestBit(src, 0b0001))
	assert.Equal(t, 2, CountTestBit(src, 0b0011))
	assert.Equal(t, 3, CountTestBit(src, 0b0100))
	assert.Equal(t, len(src), CountTestBit(src, 0))

	dst := make([]uint32, len(src))
	kept := SelectTestBit(dst, src, 0b0110)
	assert.Equal(t, 2, kept)
	assert.Equal(t, []uint32{0, 0, 0b0111, 0b0110, 0, 0}, dst)
}

func TestParallel(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	for _, n := range []int{100, MinParallelLen + 17, 3 * MinParallelLen} {
		src := hwytest.RandomLanes[uint16](hwytest.NewRand(uint64(n)), n)
		want := make([]uint16, n)
		got := make([]uint16, n)

		PopulationCount(want, src)
		ParallelPopulationCount(pool, got, src)
		require.Equal(t, want, got, "popcnt n=%d", n)

		LeadingZeroCount(want, src)
		ParallelLeadingZeroCount(pool, got, src)
		require.Equal(t, want, got, "lzcnt n=%d", n)

		TrailingZeroCount(want, src)
		ParallelTrailingZeroCount(pool, got, src)
		require.Equal(t, want, got, "tzcnt n=%d", n)

		HighestSetBitIndex(want, src)
		ParallelHighestSetBitIndex(pool, got, src)
		require.Equal(t, want, got, "hsbi n=%d", n)

		assert.Equal(t, CountBits(src), ParallelCountBits(pool, src), "count n=%d", n)
		assert.Equal(t, CountTestBit(src, 0x0101), ParallelCountTestBit(pool, src, 0x0101), "testbit n=%d", n)
	}
}

func BenchmarkCountBits(b *testing.B) {
	src := hwytest.RandomLanes[uint64](hwytest.NewRand(1), 1<<16)
	b.SetBytes(int64(len(src) * 8))
	for range b.N {
		CountBits(src)
	}
}

func BenchmarkParallelCountBits(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()
	src := hwytest.RandomLanes[uint64](hwytest.NewRand(1), 1<<20)
	b.SetBytes(int64(len(src) * 8))
	b.ResetTimer()
	for range b.N {
		ParallelCountBits(pool, src)
	}
}
