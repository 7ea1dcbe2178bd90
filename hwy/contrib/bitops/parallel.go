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
	"sync/atomic"

	"github.com/ajroetker/go-highway-lanes/hwy"
	"github.com/ajroetker/go-highway-lanes/hwy/contrib/workerpool"
)

// MinParallelLen is the input length below which the Parallel functions run
// on the calling goroutine.
const MinParallelLen = 1 << 14

// parallelMap runs fn over lane-aligned ranges of src and dst.
func parallelMap[T hwy.Lanes](pool *workerpool.Pool, dst, src []T, fn func(dst, src []T)) {
	if len(dst) < len(src) {
		panic("bitops: dst is shorter than src")
	}
	if len(src) < MinParallelLen {
		fn(dst, src)
		return
	}
	pool.ParallelForAligned(len(src), hwy.MaxLanes[T](), func(start, end int) {
		fn(dst[start:end], src[start:end])
	})
}

// ParallelPopulationCount is PopulationCount split across pool.
func ParallelPopulationCount[T hwy.Integers](pool *workerpool.Pool, dst, src []T) {
	parallelMap(pool, dst, src, PopulationCount[T])
}

// ParallelLeadingZeroCount is LeadingZeroCount split across pool.
func ParallelLeadingZeroCount[T hwy.Integers](pool *workerpool.Pool, dst, src []T) {
	parallelMap(pool, dst, src, LeadingZeroCount[T])
}

// ParallelTrailingZeroCount is TrailingZeroCount split across pool.
func ParallelTrailingZeroCount[T hwy.Integers](pool *workerpool.Pool, dst, src []T) {
	parallelMap(pool, dst, src, TrailingZeroCount[T])
}

// ParallelHighestSetBitIndex is HighestSetBitIndex split across pool.
func ParallelHighestSetBitIndex[T hwy.Integers](pool *workerpool.Pool, dst, src []T) {
	parallelMap(pool, dst, src, HighestSetBitIndex[T])
}

// ParallelCountBits is CountBits split across pool in lane-aligned batches.
func ParallelCountBits[T hwy.Integers](pool *workerpool.Pool, src []T) int {
	if len(src) < MinParallelLen {
		return CountBits(src)
	}
	var total atomic.Int64
	batch := hwy.MaxLanes[T]() * 256
	pool.ParallelForAtomicBatched(len(src), batch, func(start, end int) {
		total.Add(int64(CountBits(src[start:end])))
	})
	return int(total.Load())
}

// ParallelCountTestBit is CountTestBit split across pool.
func ParallelCountTestBit[T hwy.Integers](pool *workerpool.Pool, src []T, bit T) int {
	if len(src) < MinParallelLen {
		return CountTestBit(src, bit)
	}
	var total atomic.Int64
	batch := hwy.MaxLanes[T]() * 256
	pool.ParallelForAtomicBatched(len(src), batch, func(start, end int) {
		total.Add(int64(CountTestBit(src[start:end], bit)))
	})
	return int(total.Load())
}
