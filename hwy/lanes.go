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
	"math/bits"
	"unsafe"
)

// laneSize returns sizeof(T) in bytes.
func laneSize[T Lanes]() int {
	var dummy T
	return int(unsafe.Sizeof(dummy))
}

// sizeSlot maps a lane size of 1, 2, 4 or 8 bytes to its kernel table slot.
func sizeSlot(size int) int {
	return bits.TrailingZeros(uint(size))
}

// laneOnes returns a lane-sized run of one bits.
func laneOnes(size int) uint64 {
	return ^uint64(0) >> (64 - 8*uint(size))
}

// laneLSBs returns a word with the lowest bit of every size-byte lane set.
func laneLSBs(size int) uint64 {
	return ^uint64(0) / laneOnes(size)
}

// toBits returns the raw bit pattern of x, zero-extended to 64 bits.
func toBits[T Lanes](x T) uint64 {
	switch unsafe.Sizeof(x) {
	case 1:
		return uint64(*(*uint8)(unsafe.Pointer(&x)))
	case 2:
		return uint64(*(*uint16)(unsafe.Pointer(&x)))
	case 4:
		return uint64(*(*uint32)(unsafe.Pointer(&x)))
	default:
		return *(*uint64)(unsafe.Pointer(&x))
	}
}

// fromBits reinterprets the low sizeof(T) bytes of b as a T.
func fromBits[T Lanes](b uint64) T {
	var x T
	switch unsafe.Sizeof(x) {
	case 1:
		*(*uint8)(unsafe.Pointer(&x)) = uint8(b)
	case 2:
		*(*uint16)(unsafe.Pointer(&x)) = uint16(b)
	case 4:
		*(*uint32)(unsafe.Pointer(&x)) = uint32(b)
	default:
		*(*uint64)(unsafe.Pointer(&x)) = b
	}
	return x
}

func getLane(w *block, size, i int) uint64 {
	off := i * size
	shift := 8 * uint(off&7)
	return (w[off>>3] >> shift) & laneOnes(size)
}

func setLane(w *block, size, i int, b uint64) {
	off := i * size
	shift := 8 * uint(off&7)
	m := laneOnes(size) << shift
	w[off>>3] = w[off>>3]&^m | (b<<shift)&m
}

// keep returns the bits of word i that belong to the first nb bytes of a
// vector. It is branch-free: a shift by 64 yields zero.
func keep(i, nb int) uint64 {
	live := min(max(nb-8*i, 0), 8)
	return ^uint64(0) >> uint(64-8*live)
}
