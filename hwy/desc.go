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

import "fmt"

// Desc describes a vector: its element type T, the target whose kernels
// run on it, and its logical lane count N. A Desc is a small value; build
// one per loop and reuse it.
//
// Usage:
//
//	d := hwy.Full[float32]()
//	for i := 0; i+d.Lanes() <= len(data); i += d.Lanes() {
//	    v := hwy.Load(d, data[i:])
//	    ...
//	}
type Desc[T Lanes] struct {
	t *Target
	n int
}

// Full returns a descriptor with the selected target's native lane count.
func Full[T Lanes]() Desc[T] {
	return FullFor[T](Select())
}

// Capped returns a descriptor for the selected target with
// min(n, native lanes) lanes. n below 1 is treated as 1.
func Capped[T Lanes](n int) Desc[T] {
	t := Select()
	return Desc[T]{t: t, n: min(max(n, 1), t.Lanes(laneSize[T]()))}
}

// FullFor returns the full descriptor of a specific compiled target. It
// panics with a *ContractError if t is not compiled into this build, since
// no kernel exists to run.
func FullFor[T Lanes](t *Target) Desc[T] {
	if !t.Compiled() {
		contractViolation("FullFor", "target %s is not compiled", t.name)
	}
	return Desc[T]{t: t, n: t.Lanes(laneSize[T]())}
}

// NewDesc returns a descriptor with n lanes on target t. It fails when t is
// not compiled or n is outside [1, t.Lanes(sizeof T)].
func NewDesc[T Lanes](t *Target, n int) (Desc[T], error) {
	if !t.Compiled() {
		return Desc[T]{}, fmt.Errorf("%w: %s", ErrTargetNotCompiled, t.name)
	}
	if limit := t.Lanes(laneSize[T]()); n < 1 || n > limit {
		return Desc[T]{}, fmt.Errorf("%w: %d lanes of %s on %s (max %d)", ErrLaneCount, n, typeName[T](), t.name, limit)
	}
	return Desc[T]{t: t, n: n}, nil
}

// Lanes returns the logical lane count N.
func (d Desc[T]) Lanes() int { return d.n }

// MaxLanes returns the native lane count of the target for T.
func (d Desc[T]) MaxLanes() int { return d.t.Lanes(laneSize[T]()) }

// IsPartial reports whether N is below the native lane count.
func (d Desc[T]) IsPartial() bool { return d.n < d.MaxLanes() }

// Target returns the target the descriptor's vectors run on.
func (d Desc[T]) Target() *Target { return d.t }

// String returns e.g. "avx2:uint32x8" or "sse4:int16x3/8" for a partial
// vector.
func (d Desc[T]) String() string {
	if d.IsPartial() {
		return fmt.Sprintf("%s:%sx%d/%d", d.t.name, typeName[T](), d.n, d.MaxLanes())
	}
	return fmt.Sprintf("%s:%sx%d", d.t.name, typeName[T](), d.n)
}

func (d Desc[T]) kernels() *laneKernels {
	return &d.t.table[sizeSlot(laneSize[T]())]
}

func (d Desc[T]) bytes() int {
	return d.n * laneSize[T]()
}

func typeName[T Lanes]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
