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

// Package bitops provides slice-level bit counting and bit testing built on
// the lane operations of package hwy. Each function runs full vectors of the
// selected target over the input and one partial vector for the tail, so no
// element is read or written twice and no scalar loop remains.
//
// The Parallel variants split the input across a workerpool.Pool on
// lane-aligned boundaries.
package bitops

import (
	"github.com/ajroetker/go-highway-lanes/hwy"
)

// mapVectors stores op(Load(src)) to dst for every vector of src.
func mapVectors[T hwy.Lanes](dst, src []T, op func(hwy.Vec[T]) hwy.Vec[T]) {
	if len(dst) < len(src) {
		panic("bitops: dst is shorter than src")
	}
	d := hwy.Full[T]()
	hwy.ProcessWithTail(d, len(src),
		func(offset int) {
			hwy.Store(op(hwy.Load(d, src[offset:])), d, dst[offset:])
		},
		func(offset int, tail hwy.Desc[T]) {
			hwy.Store(op(hwy.Load(tail, src[offset:])), tail, dst[offset:])
		},
	)
}

// PopulationCount sets dst[i] to the number of set bits in src[i].
// dst must be at least as long as src; dst and src may be the same slice.
func PopulationCount[T hwy.Integers](dst, src []T) {
	mapVectors(dst, src, hwy.PopulationCount[T])
}

// LeadingZeroCount sets dst[i] to the number of leading zero bits of src[i];
// zero elements yield the bit width of T.
func LeadingZeroCount[T hwy.Integers](dst, src []T) {
	mapVectors(dst, src, hwy.LeadingZeroCount[T])
}

// TrailingZeroCount sets dst[i] to the number of trailing zero bits of
// src[i]; zero elements yield the bit width of T.
func TrailingZeroCount[T hwy.Integers](dst, src []T) {
	mapVectors(dst, src, hwy.TrailingZeroCount[T])
}

// HighestSetBitIndex sets dst[i] to the index of the highest set bit of
// src[i]; zero elements yield all ones (-1 for signed T).
func HighestSetBitIndex[T hwy.Integers](dst, src []T) {
	mapVectors(dst, src, hwy.HighestSetBitIndex[T])
}

// BroadcastSignBits sets dst[i] to -1 where src[i] is negative and to 0
// elsewhere.
func BroadcastSignBits[T hwy.SignedInts](dst, src []T) {
	mapVectors(dst, src, hwy.BroadcastSignBit[T])
}

// CountBits returns the total number of set bits in src.
func CountBits[T hwy.Integers](src []T) int {
	d := hwy.Full[T]()
	lanes := make([]T, d.Lanes())
	total := 0
	sum := func(dd hwy.Desc[T], v hwy.Vec[T]) {
		hwy.Store(hwy.PopulationCount(v), dd, lanes)
		for _, c := range lanes[:dd.Lanes()] {
			// Counts are at most 64 and fit in every T, including int8.
			total += int(c)
		}
	}
	hwy.ProcessWithTail(d, len(src),
		func(offset int) { sum(d, hwy.Load(d, src[offset:])) },
		func(offset int, tail hwy.Desc[T]) { sum(tail, hwy.Load(tail, src[offset:])) },
	)
	return total
}

// CountTestBit returns how many elements of src have every bit of bit set.
func CountTestBit[T hwy.Integers](src []T, bit T) int {
	d := hwy.Full[T]()
	total := 0
	hwy.ProcessWithTail(d, len(src),
		func(offset int) {
			total += hwy.TestBit(hwy.Load(d, src[offset:]), hwy.Set(d, bit)).CountTrue()
		},
		func(offset int, tail hwy.Desc[T]) {
			total += hwy.TestBit(hwy.Load(tail, src[offset:]), hwy.Set(tail, bit)).CountTrue()
		},
	)
	return total
}

// SelectTestBit copies src[i] to dst[i] where src[i] has every bit of bit
// set and writes zero elsewhere. It returns the number of elements kept.
func SelectTestBit[T hwy.Integers](dst, src []T, bit T) int {
	if len(dst) < len(src) {
		panic("bitops: dst is shorter than src")
	}
	d := hwy.Full[T]()
	kept := 0
	step := func(dd hwy.Desc[T], offset int) {
		v := hwy.Load(dd, src[offset:])
		m := hwy.TestBit(v, hwy.Set(dd, bit))
		kept += m.CountTrue()
		hwy.Store(hwy.IfThenElseZero(m, v), dd, dst[offset:])
	}
	hwy.ProcessWithTail(d, len(src),
		func(offset int) { step(d, offset) },
		func(offset int, tail hwy.Desc[T]) { step(tail, offset) },
	)
	return kept
}
