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

// Package hwytest provides test support for code built on package hwy:
// iteration over every compiled target and every partial lane count,
// scalar reference implementations of the lane operations, deterministic
// random inputs and lane-wise assertions.
package hwytest

import (
	"slices"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-highway-lanes/hwy"
)

// LaneCounts returns the lane counts to exercise for a target with native
// lanes: native, native/2, ..., 1, plus native-1 and 3 when they are not
// already powers of two. The result is in descending order.
func LaneCounts(native int) []int {
	var counts []int
	for n := native; n >= 1; n /= 2 {
		counts = append(counts, n)
	}
	for _, odd := range []int{native - 1, 3} {
		if odd > 2 && odd < native && !slices.Contains(counts, odd) {
			counts = append(counts, odd)
		}
	}
	slices.Sort(counts)
	slices.Reverse(counts)
	return counts
}

// ForPartialVectors runs body once for every compiled target and every lane
// count in LaneCounts, each as a subtest named after the descriptor, e.g.
// "avx2:uint32x8" or "sse4:int16x3/8".
func ForPartialVectors[T hwy.Lanes](t *testing.T, body func(t *testing.T, d hwy.Desc[T])) {
	t.Helper()
	for _, target := range hwy.CompiledTargets() {
		for _, n := range LaneCounts(target.Lanes(SizeOf[T]())) {
			d, err := hwy.NewDesc[T](target, n)
			require.NoError(t, err)
			t.Run(d.String(), func(t *testing.T) {
				body(t, d)
			})
		}
	}
}

// ForFullVectors is ForPartialVectors restricted to native lane counts.
func ForFullVectors[T hwy.Lanes](t *testing.T, body func(t *testing.T, d hwy.Desc[T])) {
	t.Helper()
	for _, target := range hwy.CompiledTargets() {
		d := hwy.FullFor[T](target)
		t.Run(d.String(), func(t *testing.T) {
			body(t, d)
		})
	}
}

// SizeOf returns sizeof(T) in bytes.
func SizeOf[T hwy.Lanes]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// BitWidth returns the width of T in bits.
func BitWidth[T hwy.Lanes]() int {
	return 8 * SizeOf[T]()
}

// AssertLanes checks that the N lanes of v equal want[:N] bit for bit, so
// NaNs and signed zeros compare exactly.
func AssertLanes[T hwy.Lanes](t testing.TB, want []T, v hwy.Vec[T]) {
	t.Helper()
	n := v.NumLanes()
	require.GreaterOrEqual(t, len(want), n, "want has fewer elements than the vector has lanes")
	for i := range n {
		require.Equalf(t, Bits(want[i]), Bits(v.Lane(i)), "lane %d of %d: got %v, want %v", i, n, v.Lane(i), want[i])
	}
}

// AssertMask checks that the N lanes of m equal want[:N].
func AssertMask[T hwy.Lanes](t testing.TB, want []bool, m hwy.Mask[T]) {
	t.Helper()
	n := m.NumLanes()
	require.GreaterOrEqual(t, len(want), n)
	for i := range n {
		require.Equalf(t, want[i], m.GetBit(i), "mask lane %d of %d", i, n)
	}
}
