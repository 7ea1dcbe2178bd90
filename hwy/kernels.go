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

// This file is the per-target entry point table. The operation logic is
// written once (swar.go for vector targets, scalar.go for the single-lane
// target) and instantiated once per target register type and lane width;
// each instantiation is bound into a laneKernels value here.
//
// Kernels take and return blocks by value. Passing pointers through the
// function fields would force every vector onto the heap.

// lane is the set of unsigned carriers for 1, 2, 4 and 8 byte lanes.
type lane interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

type (
	unaryKernel   func(a block, nb int) block
	binaryKernel  func(a, b block, nb int) block
	ternaryKernel func(a, b, c block, nb int) block
)

// laneKernels holds one target's entry points for one lane width.
// nb is the number of live bytes; every kernel clears the rest.
type laneKernels struct {
	name  string
	width uint

	not    unaryKernel
	and    binaryKernel
	or     binaryKernel
	xor    binaryKernel
	andNot binaryKernel
	or3    ternaryKernel
	xor3   ternaryKernel
	orAnd  ternaryKernel

	copySign         binaryKernel
	copySignToAbs    binaryKernel
	broadcastSignBit unaryKernel
	testBit          binaryKernel
	ifThenElse       ternaryKernel

	populationCount    unaryKernel
	leadingZeroCount   unaryKernel
	trailingZeroCount  unaryKernel
	highestSetBitIndex unaryKernel
}

// kernelTable is indexed by sizeSlot(lane bytes).
type kernelTable [4]laneKernels

// kernelSet is implemented by every per-target kernel instantiation.
type kernelSet interface {
	name() string
	width() uint

	not(a block, nb int) block
	and(a, b block, nb int) block
	or(a, b block, nb int) block
	xor(a, b block, nb int) block
	andNot(a, b block, nb int) block
	or3(a, b, c block, nb int) block
	xor3(a, b, c block, nb int) block
	orAnd(o, a1, a2 block, nb int) block

	copySign(mag, sign block, nb int) block
	copySignToAbs(abs, sign block, nb int) block
	broadcastSignBit(a block, nb int) block
	testBit(a, bit block, nb int) block
	ifThenElse(m, yes, no block, nb int) block

	populationCount(a block, nb int) block
	leadingZeroCount(a block, nb int) block
	trailingZeroCount(a block, nb int) block
	highestSetBitIndex(a block, nb int) block
}

func bindKernels[K kernelSet](k K) laneKernels {
	return laneKernels{
		name:  k.name(),
		width: k.width(),

		not:    k.not,
		and:    k.and,
		or:     k.or,
		xor:    k.xor,
		andNot: k.andNot,
		or3:    k.or3,
		xor3:   k.xor3,
		orAnd:  k.orAnd,

		copySign:         k.copySign,
		copySignToAbs:    k.copySignToAbs,
		broadcastSignBit: k.broadcastSignBit,
		testBit:          k.testBit,
		ifThenElse:       k.ifThenElse,

		populationCount:    k.populationCount,
		leadingZeroCount:   k.leadingZeroCount,
		trailingZeroCount:  k.trailingZeroCount,
		highestSetBitIndex: k.highestSetBitIndex,
	}
}

// swarTable instantiates the SWAR kernels for register type R at every
// lane width.
func swarTable[R reg]() *kernelTable {
	return &kernelTable{
		bindKernels(swar[R, uint8]{}),
		bindKernels(swar[R, uint16]{}),
		bindKernels(swar[R, uint32]{}),
		bindKernels(swar[R, uint64]{}),
	}
}

// scalarTable instantiates the single-lane kernels at every lane width.
func scalarTable() *kernelTable {
	return &kernelTable{
		bindKernels(scalar[uint8]{}),
		bindKernels(scalar[uint16]{}),
		bindKernels(scalar[uint32]{}),
		bindKernels(scalar[uint64]{}),
	}
}
