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

package hwy_test

import (
	"testing"

	"github.com/ajroetker/go-highway-lanes/hwy"
	"github.com/ajroetker/go-highway-lanes/hwy/hwytest"
)

// apply runs op over input with the selected target, one full vector at a
// time and a partial vector for the tail.
func apply[T hwy.Lanes](op func(hwy.Vec[T]) hwy.Vec[T], input []T) []T {
	d := hwy.Full[T]()
	out := make([]T, len(input))
	hwy.ProcessWithTail(d, len(input),
		func(offset int) {
			hwy.Store(op(hwy.Load(d, input[offset:])), d, out[offset:])
		},
		func(offset int, tail hwy.Desc[T]) {
			hwy.Store(op(hwy.Load(tail, input[offset:])), tail, out[offset:])
		},
	)
	return out
}

func checkLanes[T hwy.Integers](t *testing.T, got, want []T) {
	t.Helper()
	for i := 0; i < len(want); i++ {
		if got[i] != want[i] {
			t.Errorf("lane %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPopulationCount(t *testing.T) {
	t.Run("uint8", func(t *testing.T) {
		tests := []struct {
			name  string
			input []uint8
			want  []uint8
		}{
			{
				name:  "zeros",
				input: []uint8{0, 0, 0, 0},
				want:  []uint8{0, 0, 0, 0},
			},
			{
				name:  "ones",
				input: []uint8{0xFF, 0xFF, 0xFF, 0xFF},
				want:  []uint8{8, 8, 8, 8},
			},
			{
				name:  "mixed",
				input: []uint8{0x01, 0x03, 0x07, 0x0F, 0x1F, 0x3F, 0x7F, 0xFF},
				want:  []uint8{1, 2, 3, 4, 5, 6, 7, 8},
			},
			{
				name:  "powers_of_two",
				input: []uint8{1, 2, 4, 8, 16, 32, 64, 128},
				want:  []uint8{1, 1, 1, 1, 1, 1, 1, 1},
			},
			{
				name:  "alternating",
				input: []uint8{0xAA, 0x55},
				want:  []uint8{4, 4},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				checkLanes(t, apply(hwy.PopulationCount[uint8], tt.input), tt.want)
			})
		}
	})

	t.Run("int32", func(t *testing.T) {
		tests := []struct {
			name  string
			input []int32
			want  []int32
		}{
			{
				name:  "zeros",
				input: []int32{0, 0, 0, 0},
				want:  []int32{0, 0, 0, 0},
			},
			{
				name:  "negative_one",
				input: []int32{-1, -1, -1, -1},
				want:  []int32{32, 32, 32, 32},
			},
			{
				name:  "mixed",
				input: []int32{1, 3, 7, 15, 0x1D},
				want:  []int32{1, 2, 3, 4, 4},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				checkLanes(t, apply(hwy.PopulationCount[int32], tt.input), tt.want)
			})
		}
	})

	t.Run("uint64", func(t *testing.T) {
		got := apply(hwy.PopulationCount[uint64], []uint64{0, 1, 0xFFFFFFFFFFFFFFFF, 0x8000000000000001})
		checkLanes(t, got, []uint64{0, 1, 64, 2})
	})
}

func TestLeadingZeroCount(t *testing.T) {
	t.Run("uint8", func(t *testing.T) {
		tests := []struct {
			name  string
			input []uint8
			want  []uint8
		}{
			{
				name:  "zeros",
				input: []uint8{0, 0, 0, 0},
				want:  []uint8{8, 8, 8, 8},
			},
			{
				name:  "ones",
				input: []uint8{0xFF, 0x80, 0x40, 0x01},
				want:  []uint8{0, 0, 1, 7},
			},
			{
				name:  "powers_of_two",
				input: []uint8{1, 2, 4, 8, 16, 32, 64, 128},
				want:  []uint8{7, 6, 5, 4, 3, 2, 1, 0},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				checkLanes(t, apply(hwy.LeadingZeroCount[uint8], tt.input), tt.want)
			})
		}
	})

	t.Run("int32", func(t *testing.T) {
		got := apply(hwy.LeadingZeroCount[int32], []int32{0, 1, 2, 0x1D, -1, 1 << 30})
		checkLanes(t, got, []int32{32, 31, 30, 27, 0, 1})
	})

	t.Run("uint16", func(t *testing.T) {
		got := apply(hwy.LeadingZeroCount[uint16], []uint16{0, 1, 0x8000, 0x00FF, 0x0100})
		checkLanes(t, got, []uint16{16, 15, 0, 8, 7})
	})

	t.Run("int64", func(t *testing.T) {
		got := apply(hwy.LeadingZeroCount[int64], []int64{0, 1, -1, 1 << 62, 0x1D})
		checkLanes(t, got, []int64{64, 63, 0, 1, 59})
	})
}

func TestTrailingZeroCount(t *testing.T) {
	t.Run("uint8", func(t *testing.T) {
		tests := []struct {
			name  string
			input []uint8
			want  []uint8
		}{
			{
				name:  "zeros",
				input: []uint8{0, 0, 0, 0},
				want:  []uint8{8, 8, 8, 8},
			},
			{
				name:  "powers_of_two",
				input: []uint8{1, 2, 4, 8, 16, 32, 64, 128},
				want:  []uint8{0, 1, 2, 3, 4, 5, 6, 7},
			},
			{
				name:  "mixed",
				input: []uint8{0x68, 0xFF, 0x90, 0x06},
				want:  []uint8{3, 0, 4, 1},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				checkLanes(t, apply(hwy.TrailingZeroCount[uint8], tt.input), tt.want)
			})
		}
	})

	t.Run("uint32", func(t *testing.T) {
		got := apply(hwy.TrailingZeroCount[uint32], []uint32{0, 1, 2, 0x68, 0x80000000})
		checkLanes(t, got, []uint32{32, 0, 1, 3, 31})
	})

	t.Run("int16", func(t *testing.T) {
		got := apply(hwy.TrailingZeroCount[int16], []int16{0, -1, -32768, 12})
		checkLanes(t, got, []int16{16, 0, 15, 2})
	})

	t.Run("uint64", func(t *testing.T) {
		got := apply(hwy.TrailingZeroCount[uint64], []uint64{0, 1, 1 << 63, 0x68 << 40})
		checkLanes(t, got, []uint64{64, 0, 63, 43})
	})
}

func TestHighestSetBitIndex(t *testing.T) {
	t.Run("uint32", func(t *testing.T) {
		got := apply(hwy.HighestSetBitIndex[uint32], []uint32{0, 1, 2, 0x2B, 0x80000000})
		checkLanes(t, got, []uint32{0xFFFFFFFF, 0, 1, 5, 31})
	})

	t.Run("int32", func(t *testing.T) {
		got := apply(hwy.HighestSetBitIndex[int32], []int32{0, 1, 0x2B, -1, 1 << 30})
		checkLanes(t, got, []int32{-1, 0, 5, 31, 30})
	})

	t.Run("int8", func(t *testing.T) {
		got := apply(hwy.HighestSetBitIndex[int8], []int8{0, 1, 0x40, -128})
		checkLanes(t, got, []int8{-1, 0, 6, 7})
	})

	t.Run("uint64", func(t *testing.T) {
		got := apply(hwy.HighestSetBitIndex[uint64], []uint64{0, 1 << 63, 0x2B})
		checkLanes(t, got, []uint64{0xFFFFFFFFFFFFFFFF, 63, 5})
	})
}

// testCountingOracle compares every counting operation with the scalar
// reference on random lanes, for every target and lane count.
func testCountingOracle[T hwy.Integers](t *testing.T) {
	r := hwytest.NewRand(0xb175)
	hwytest.ForPartialVectors(t, func(t *testing.T, d hwy.Desc[T]) {
		n := d.Lanes()
		for range 20 {
			in := hwytest.RandomLanes[T](r, n)
			v := hwy.Load(d, in)
			ops := []struct {
				name   string
				got    hwy.Vec[T]
				oracle func(T) T
			}{
				{"PopulationCount", hwy.PopulationCount(v), hwytest.PopCount[T]},
				{"LeadingZeroCount", hwy.LeadingZeroCount(v), hwytest.LeadingZeroCount[T]},
				{"TrailingZeroCount", hwy.TrailingZeroCount(v), hwytest.TrailingZeroCount[T]},
				{"HighestSetBitIndex", hwy.HighestSetBitIndex(v), hwytest.HighestSetBitIndex[T]},
			}
			for _, op := range ops {
				for i, x := range in {
					if got, want := op.got.Lane(i), op.oracle(x); got != want {
						t.Fatalf("%s(%#x) lane %d: got %d, want %d", op.name, hwytest.Bits(x), i, got, want)
					}
				}
			}
		}
	})
}

func TestCountingOracle(t *testing.T) {
	t.Run("uint8", testCountingOracle[uint8])
	t.Run("uint16", testCountingOracle[uint16])
	t.Run("uint32", testCountingOracle[uint32])
	t.Run("uint64", testCountingOracle[uint64])
	t.Run("int8", testCountingOracle[int8])
	t.Run("int16", testCountingOracle[int16])
	t.Run("int32", testCountingOracle[int32])
	t.Run("int64", testCountingOracle[int64])
}

// Every single-bit value and its neighbours, which is where carries between
// lanes would show up.
func testCountingEdges[T hwy.Integers](t *testing.T) {
	width := hwytest.BitWidth[T]()
	var in []T
	for i := range width {
		bit := hwytest.FromBits[T](1 << i)
		in = append(in, bit, bit-1, bit|1, ^bit, 0, ^T(0))
	}
	for _, op := range []struct {
		name   string
		vec    func(hwy.Vec[T]) hwy.Vec[T]
		oracle func(T) T
	}{
		{"PopulationCount", hwy.PopulationCount[T], hwytest.PopCount[T]},
		{"LeadingZeroCount", hwy.LeadingZeroCount[T], hwytest.LeadingZeroCount[T]},
		{"TrailingZeroCount", hwy.TrailingZeroCount[T], hwytest.TrailingZeroCount[T]},
		{"HighestSetBitIndex", hwy.HighestSetBitIndex[T], hwytest.HighestSetBitIndex[T]},
	} {
		got := apply(op.vec, in)
		for i, x := range in {
			if want := op.oracle(x); got[i] != want {
				t.Errorf("%s(%#x): got %d, want %d", op.name, hwytest.Bits(x), got[i], want)
			}
		}
	}
}

func TestCountingEdges(t *testing.T) {
	t.Run("uint8", testCountingEdges[uint8])
	t.Run("int16", testCountingEdges[int16])
	t.Run("uint32", testCountingEdges[uint32])
	t.Run("int64", testCountingEdges[int64])
}

func TestCountingInvariants(t *testing.T) {
	r := hwytest.NewRand(5)
	hwytest.ForPartialVectors(t, func(t *testing.T, d hwy.Desc[uint32]) {
		in := hwytest.RandomLanes[uint32](r, d.Lanes())
		v := hwy.Load(d, in)
		lz := hwy.LeadingZeroCount(v)
		tz := hwy.TrailingZeroCount(v)
		hsb := hwy.HighestSetBitIndex(v)
		pop := hwy.PopulationCount(v)
		for i, x := range in {
			if x == 0 {
				continue
			}
			if lz.Lane(i)+hsb.Lane(i) != 31 {
				t.Errorf("lane %d: lzcnt %d + hsbi %d != 31", i, lz.Lane(i), hsb.Lane(i))
			}
			if tz.Lane(i) > hsb.Lane(i) {
				t.Errorf("lane %d: tzcnt %d > hsbi %d", i, tz.Lane(i), hsb.Lane(i))
			}
			if pop.Lane(i) < 1 || pop.Lane(i) > 32-lz.Lane(i)-tz.Lane(i) {
				t.Errorf("lane %d: popcnt %d outside [1, %d]", i, pop.Lane(i), 32-lz.Lane(i)-tz.Lane(i))
			}
		}
	})
}
