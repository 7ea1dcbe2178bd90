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
	"fmt"
	"slices"
	"strings"
)

// Target is one entry of the target inventory: a vector instruction set the
// operations can be compiled for. Targets are immutable package-level values.
type Target struct {
	name     string
	bits     int // native width; 0 for the single-lane scalar target
	priority int
	align    int
	arch     string
	requires func(Features) bool

	// table is nil unless the target is compiled into this build.
	table *kernelTable
}

var (
	// TargetAVX3 is the x86 AVX-512 target (512-bit vectors).
	// Load/Store prefer 64-byte aligned slices.
	TargetAVX3 = &Target{
		name:     "avx3",
		bits:     512,
		priority: 50,
		align:    64,
		arch:     "amd64",
		requires: func(f Features) bool {
			return f.HasAVX512F && f.HasAVX512BW && f.HasAVX512DQ && f.HasAVX512VL
		},
	}

	// TargetAVX2 is the x86 AVX2 target (256-bit vectors).
	// Load/Store prefer 32-byte aligned slices.
	TargetAVX2 = &Target{
		name:     "avx2",
		bits:     256,
		priority: 40,
		align:    32,
		arch:     "amd64",
		requires: func(f Features) bool {
			return f.HasAVX2 && f.HasBMI1 && f.HasBMI2 && f.HasFMA
		},
	}

	// TargetSSE4 is the x86 SSE4 target (128-bit vectors).
	// Load/Store prefer 16-byte aligned slices.
	TargetSSE4 = &Target{
		name:     "sse4",
		bits:     128,
		priority: 30,
		align:    16,
		arch:     "amd64",
		requires: func(f Features) bool {
			return f.HasSSSE3 && f.HasSSE41 && f.HasPOPCNT
		},
	}

	// TargetNEON is the ARM Advanced SIMD target (128-bit vectors).
	// Load/Store prefer 16-byte aligned slices.
	TargetNEON = &Target{
		name:     "neon",
		bits:     128,
		priority: 30,
		align:    16,
		arch:     "arm64",
		requires: func(f Features) bool {
			return f.HasASIMD
		},
	}

	// TargetScalar is the portable single-lane baseline. It is compiled into
	// every build and requires no CPU features. Load/Store need only the
	// element's natural alignment.
	TargetScalar = &Target{
		name:     "scalar",
		bits:     0,
		priority: 0,
		arch:     "any",
		requires: func(Features) bool { return true },
		table:    scalarTable(),
	}
)

// inventory lists every known target, highest priority first.
var inventory = []*Target{TargetAVX3, TargetAVX2, TargetSSE4, TargetNEON, TargetScalar}

// compile attaches a kernel table to t. Called from the per-architecture
// build files while initializing compiledTargets.
func compile(t *Target, table *kernelTable) *Target {
	t.table = table
	return t
}

// Name returns the lower-case target name, e.g. "avx2".
func (t *Target) Name() string { return t.name }

func (t *Target) String() string { return t.name }

// Bits returns the native vector width in bits, or 0 for the scalar target.
func (t *Target) Bits() int { return t.bits }

// Priority ranks targets; the dispatcher prefers higher values.
func (t *Target) Priority() int { return t.priority }

// Arch returns the GOARCH the target belongs to, or "any".
func (t *Target) Arch() string { return t.arch }

// Alignment returns the preferred alignment in bytes of slices passed to
// Load and Store. Unaligned slices are accepted on every target; for the
// scalar target 0 means the element's natural alignment.
func (t *Target) Alignment() int { return t.align }

// Compiled reports whether the target's kernels are part of this build.
func (t *Target) Compiled() bool { return t.table != nil }

// Supports reports whether a CPU with features f can run the target.
func (t *Target) Supports(f Features) bool { return t.requires(f) }

// Lanes returns the native lane count for elements of elemSize bytes.
// The scalar target always has one lane.
func (t *Target) Lanes(elemSize int) int {
	if t.bits == 0 {
		return 1
	}
	return t.bits / 8 / elemSize
}

// Inventory returns every known target, highest priority first, whether or
// not it is compiled into this build.
func Inventory() []*Target {
	return slices.Clone(inventory)
}

// CompiledTargets returns the targets compiled into this build, highest
// priority first. The scalar target is always last.
func CompiledTargets() []*Target {
	return slices.Clone(compiledTargets)
}

// TargetByName looks a target up by its case-insensitive name.
func TargetByName(name string) (*Target, error) {
	for _, t := range inventory {
		if strings.EqualFold(t.name, name) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
}

// CompiledTargetByName is TargetByName restricted to compiled targets.
func CompiledTargetByName(name string) (*Target, error) {
	t, err := TargetByName(name)
	if err != nil {
		return nil, err
	}
	if !t.Compiled() {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotCompiled, t.name)
	}
	return t, nil
}
