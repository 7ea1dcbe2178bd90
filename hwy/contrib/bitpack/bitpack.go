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

package bitpack

import (
	"math/bits"

	"github.com/ajroetker/go-highway-lanes/hwy"
)

// MaxBits returns the minimum number of bits required to represent every
// value in src: the bit width of T minus the leading zero count of the OR of
// all values. Returns 0 for empty slices or slices containing only zeros.
//
// Example:
//
//	values := []uint32{5, 12, 3, 15, 7}
//	bits := MaxBits(values)  // Returns 4 (max value 15 needs 4 bits)
func MaxBits[T hwy.UnsignedInts](src []T) int {
	if len(src) == 0 {
		return 0
	}

	d := hwy.Full[T]()
	width := T(bitsOf[T]())
	fewest := width
	fold := func(lz hwy.Vec[T]) {
		for i := range lz.NumLanes() {
			fewest = min(fewest, lz.Lane(i))
		}
	}

	acc := hwy.Zero(d)
	hwy.ProcessWithTail(d, len(src),
		func(offset int) {
			acc = hwy.Or(acc, hwy.Load(d, src[offset:]))
		},
		func(offset int, tail hwy.Desc[T]) {
			fold(hwy.LeadingZeroCount(hwy.Load(tail, src[offset:])))
		},
	)
	// The lane with the fewest leading zeros decides.
	fold(hwy.LeadingZeroCount(acc))
	return int(width - fewest)
}

// PackedSize returns the number of bytes needed to store n integers
// using the given bit width.
func PackedSize(n, bitWidth int) int {
	if bitWidth == 0 || n == 0 {
		return 0
	}
	return (n*bitWidth + 7) / 8
}

// Pack packs the low bitWidth bits of every value of src into dst, least
// significant bit first, and returns the number of bytes written. Values are
// masked to bitWidth bits a vector at a time before they are streamed out.
//
// bitWidth is clamped to the width of T. dst must have at least
// PackedSize(len(src), bitWidth) bytes and is OR-ed into, so it should be
// zeroed.
//
// Example:
//
//	src := []uint32{5, 12, 3, 15}  // values fit in 4 bits
//	dst := make([]byte, PackedSize(len(src), 4))
//	Pack(src, 4, dst)  // Packs to 2 bytes: [0xC5, 0xF3]
func Pack[T hwy.UnsignedInts](src []T, bitWidth int, dst []byte) int {
	if len(src) == 0 || bitWidth <= 0 {
		return 0
	}
	bitWidth = min(bitWidth, bitsOf[T]())
	mask := lowMask[T](bitWidth)

	d := hwy.Full[T]()
	maskVec := hwy.Set(d, mask)
	lanes := make([]T, d.Lanes())
	var w bitWriter
	hwy.ProcessWithTail(d, len(src),
		func(offset int) {
			hwy.Store(hwy.And(hwy.Load(d, src[offset:]), maskVec), d, lanes)
			for _, val := range lanes {
				w.write(uint64(val), bitWidth, dst)
			}
		},
		func(offset int, tail hwy.Desc[T]) {
			for _, val := range src[offset : offset+tail.Lanes()] {
				w.write(uint64(val&mask), bitWidth, dst)
			}
		},
	)
	return w.size()
}

// Unpack reads values of bitWidth bits from src into dst and returns the
// number of values unpacked, which is limited by both len(dst) and the
// number of complete values in src.
//
// Example:
//
//	packed := []byte{0xC5, 0xF3}  // 4 values at 4 bits each
//	dst := make([]uint32, 4)
//	Unpack(packed, 4, dst)  // Unpacks to [5, 12, 3, 15]
func Unpack[T hwy.UnsignedInts](src []byte, bitWidth int, dst []T) int {
	if len(src) == 0 || bitWidth <= 0 || len(dst) == 0 {
		return 0
	}
	bitWidth = min(bitWidth, bitsOf[T]())

	n := min(len(dst), len(src)*8/bitWidth)
	var r bitReader
	for i := range n {
		dst[i] = T(r.read(bitWidth, src))
	}
	return n
}

// DeltaEncode computes dst[i] = src[i] - src[i-1], with src[-1] = base.
// dst and src may be the same slice.
func DeltaEncode[T hwy.UnsignedInts](src []T, base T, dst []T) {
	prev := base
	for i, v := range src {
		dst[i] = v - prev
		prev = v
	}
}

// DeltaDecode reverses DeltaEncode.
func DeltaDecode[T hwy.UnsignedInts](src []T, base T, dst []T) {
	acc := base
	for i, delta := range src {
		acc += delta
		dst[i] = acc
	}
}

func bitsOf[T hwy.UnsignedInts]() int {
	return bits.OnesCount64(uint64(^T(0)))
}

func lowMask[T hwy.UnsignedInts](bitWidth int) T {
	return ^T(0) >> (bitsOf[T]() - bitWidth)
}

// bitWriter streams values into a byte slice, least significant bit first.
type bitWriter struct {
	bitPos  int
	bytePos int
}

func (w *bitWriter) write(val uint64, bitWidth int, dst []byte) {
	for remaining := bitWidth; remaining > 0; {
		n := min(remaining, 8-w.bitPos)
		dst[w.bytePos] |= byte((val & (1<<n - 1)) << w.bitPos)
		val >>= n
		remaining -= n

		w.bitPos += n
		if w.bitPos == 8 {
			w.bitPos = 0
			w.bytePos++
		}
	}
}

func (w *bitWriter) size() int {
	if w.bitPos > 0 {
		return w.bytePos + 1
	}
	return w.bytePos
}

type bitReader struct {
	bitPos  int
	bytePos int
}

func (r *bitReader) read(bitWidth int, src []byte) uint64 {
	var val uint64
	for shift := 0; shift < bitWidth; {
		n := min(bitWidth-shift, 8-r.bitPos)
		chunk := uint64(src[r.bytePos]>>r.bitPos) & (1<<n - 1)
		val |= chunk << shift
		shift += n

		r.bitPos += n
		if r.bitPos == 8 {
			r.bitPos = 0
			r.bytePos++
		}
	}
	return val
}
