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

package hwytest

import (
	"math/rand/v2"

	"github.com/ajroetker/go-highway-lanes/hwy"
)

// NewRand returns a deterministic generator for seed. Tests that draw
// random lanes should log the seed so failures can be reproduced.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomLanes returns n values with uniformly random bit patterns. For float
// types this includes NaNs, infinities and negative zero.
func RandomLanes[T hwy.Lanes](r *rand.Rand, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = FromBits[T](r.Uint64())
	}
	return out
}

// RandomBits returns n values that each have exactly one random bit set.
func RandomBits[T hwy.Integers](r *rand.Rand, n int) []T {
	width := BitWidth[T]()
	out := make([]T, n)
	for i := range out {
		out[i] = FromBits[T](uint64(1) << r.IntN(width))
	}
	return out
}

// Padded returns a copy of lanes followed by extra elements set to fill, to
// detect loads and stores that run past N.
func Padded[T hwy.Lanes](lanes []T, extra int, fill T) []T {
	out := make([]T, len(lanes)+extra)
	copy(out, lanes)
	for i := len(lanes); i < len(out); i++ {
		out[i] = fill
	}
	return out
}
