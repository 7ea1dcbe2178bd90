// Package hwy provides portable lane-wise vector operations with runtime CPU dispatch.
//
// It follows the Highway C++ library's design philosophy: write once,
// run optimally everywhere. Every operation is compiled once per vector
// target (avx3, avx2, sse4, neon, scalar) and the widest target supported
// by the running CPU is chosen the first time a descriptor is requested.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-highway-lanes/hwy"
//
//	d := hwy.Full[uint32]()
//	v := hwy.Load(d, data)
//	counts := hwy.PopulationCount(v)
//	hwy.Store(counts, d, out)
//
// A descriptor ([Desc]) fixes the element type, the target and the logical
// lane count N. Descriptors with N below the target's native lane count
// describe partial vectors: lanes at and beyond N are never read from or
// written to caller memory and are always zero inside a [Vec].
package hwy

import (
	"fmt"
	"math/bits"
	"strings"
)

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in SIMD lanes.
type Lanes interface {
	Floats | Integers
}

const (
	blockWords = 8

	// MaxBytes is the width in bytes of the widest target in the inventory.
	MaxBytes = blockWords * 8
)

// block is the storage of one vector. Lane i of a vector with s-byte lanes
// occupies bits [8*(i*s%8), 8*(i*s%8+s)) of word i*s/8, independent of the
// host byte order.
type block [blockWords]uint64

// Vec is a portable vector value. It is copied by value, never aliases
// caller memory and never allocates.
//
// Vec values should not be created directly; use Zero, Set, Iota or Load
// with a descriptor. The zero Vec is not usable with any operation.
type Vec[T Lanes] struct {
	w  block
	lk *laneKernels
	nb int // active bytes: N * sizeof(T)
}

// NumLanes returns the logical number of lanes N.
func (v Vec[T]) NumLanes() int {
	return v.nb / laneSize[T]()
}

// Lane returns lane i, or zero if i is outside [0, N).
func (v Vec[T]) Lane(i int) T {
	if i < 0 || i >= v.NumLanes() {
		var zero T
		return zero
	}
	return fromBits[T](getLane(&v.w, laneSize[T](), i))
}

// Store writes the vector's N lanes to dst.
// This is the method form of the hwy.Store function, limited to len(dst).
func (v Vec[T]) Store(dst []T) {
	n := min(len(dst), v.NumLanes())
	size := laneSize[T]()
	for i := range n {
		dst[i] = fromBits[T](getLane(&v.w, size, i))
	}
}

// String formats the logical lanes, e.g. "[1 2 3 4]".
func (v Vec[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range v.NumLanes() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, v.Lane(i))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Mask represents the result of a lane test. Each lane is either all-ones
// (true) or all-zeros (false); lanes at and beyond N are always false.
//
// Mask instances should not be created directly; use TestBit, FirstN or
// MaskFromVec.
type Mask[T Lanes] struct {
	w  block
	nb int
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return m.nb / laneSize[T]()
}

// AllTrue returns true if all N lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	return m.CountTrue() == m.NumLanes()
}

// AllFalse returns true if no lane in the mask is active.
func (m Mask[T]) AllFalse() bool {
	return m.CountTrue() == 0
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	return m.CountTrue() != 0
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask[T]) CountTrue() int {
	ones := 0
	for _, w := range m.w {
		ones += bits.OnesCount64(w)
	}
	return ones / (8 * laneSize[T]())
}

// FindFirstTrue returns the index of the first active lane, or -1.
func (m Mask[T]) FindFirstTrue() int {
	laneBits := 8 * laneSize[T]()
	for i, w := range m.w {
		if w != 0 {
			return (64*i + bits.TrailingZeros64(w)) / laneBits
		}
	}
	return -1
}

// GetBit returns whether lane i is active.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= m.NumLanes() {
		return false
	}
	return getLane(&m.w, laneSize[T](), i) != 0
}
