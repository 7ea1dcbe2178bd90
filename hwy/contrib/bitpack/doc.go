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

// Package bitpack provides bit-packing for integer compression.
//
// # Bit-Packing Overview
//
// Bit-packing stores integers using only the minimum number of bits
// required. For example, if all values in a block fit in 5 bits, Pack
// stores each value using only 5 bits instead of 32, a compression ratio of
// 32/5 = 6.4x.
//
// # Core Functions
//
//   - MaxBits[T](src []T) int - minimum bits needed for a slice, computed
//     with a vector OR reduction and hwy.LeadingZeroCount
//   - Pack[T](src []T, bitWidth int, dst []byte) int - pack integers to a bit stream
//   - Unpack[T](src []byte, bitWidth int, dst []T) int - unpack a bit stream to integers
//
// # Delta Encoding
//
// For sorted sequences, delta encoding dramatically improves compression:
//   - DeltaEncode[T](src []T, base T, dst []T) - differences between neighbours
//   - DeltaDecode[T](src []T, base T, dst []T) - reconstruct values from deltas
//
// # Example Usage
//
//	import "github.com/ajroetker/go-highway-lanes/hwy/contrib/bitpack"
//
//	// Find the bit width needed
//	values := []uint32{5, 12, 3, 15, 7, 2, 9, 11}
//	bitWidth := bitpack.MaxBits(values)  // Returns 4 (max value 15 fits in 4 bits)
//
//	// Pack the values
//	packed := make([]byte, bitpack.PackedSize(len(values), bitWidth))
//	bitpack.Pack(values, bitWidth, packed)
//
//	// Unpack the values
//	unpacked := make([]uint32, len(values))
//	bitpack.Unpack(packed, bitWidth, unpacked)
//
// # Delta Encoding Example
//
//	sorted := []uint32{100, 102, 105, 106, 110, 115, 118, 120}
//	deltas := make([]uint32, len(sorted))
//	bitpack.DeltaEncode(sorted, sorted[0], deltas)  // [0, 2, 3, 1, 4, 5, 3, 2]
//	bitWidth := bitpack.MaxBits(deltas)             // 3 bits instead of 7
package bitpack
