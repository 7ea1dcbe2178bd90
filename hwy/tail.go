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

// ProcessWithTail is a helper for processing arrays with vectors of d that
// handles both full vectors and the tail (remainder) automatically.
//
// It calls:
//   - fullFn(offset) for each full vector (offset is the starting index)
//   - tailFn(offset, tail) once for the remaining elements, where tail is a
//     partial descriptor whose N equals the number of elements left
//
// Example:
//
//	d := hwy.Full[uint32]()
//	hwy.ProcessWithTail(d, len(data),
//	    func(offset int) {
//	        v := hwy.Load(d, data[offset:])
//	        hwy.Store(hwy.PopulationCount(v), d, out[offset:])
//	    },
//	    func(offset int, tail hwy.Desc[uint32]) {
//	        v := hwy.Load(tail, data[offset:])
//	        hwy.Store(hwy.PopulationCount(v), tail, out[offset:])
//	    },
//	)
func ProcessWithTail[T Lanes](d Desc[T], size int, fullFn func(offset int), tailFn func(offset int, tail Desc[T])) {
	n := d.n

	fullVectors := size / n
	for i := range fullVectors {
		fullFn(i * n)
	}

	if remaining := size % n; remaining > 0 {
		tailFn(fullVectors*n, Desc[T]{t: d.t, n: remaining})
	}
}

// ProcessWithTailNoMask is similar to ProcessWithTail but doesn't require
// a tail function. Instead, it processes one overlapping vector for the
// tail, so fullFn must be idempotent per element. size must be at least
// d.Lanes() unless it is zero.
func ProcessWithTailNoMask[T Lanes](d Desc[T], size int, fullFn func(offset int)) {
	n := d.n
	if size == 0 {
		return
	}
	if debugChecks && size < n {
		contractViolation("ProcessWithTailNoMask", "size %d is below %d lanes", size, n)
	}

	fullVectors := size / n
	for i := range fullVectors {
		fullFn(i * n)
	}

	// The last vector overlaps the previous one.
	if size%n > 0 {
		fullFn(size - n)
	}
}

// AlignedSize rounds up size to the next multiple of d's lane count.
// This is useful for allocating buffers that will be processed in vectors.
func AlignedSize[T Lanes](d Desc[T], size int) int {
	return ((size + d.n - 1) / d.n) * d.n
}

// IsAligned returns true if size is a multiple of d's lane count.
func IsAligned[T Lanes](d Desc[T], size int) bool {
	return size%d.n == 0
}
