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
	"errors"
	"math/rand/v2"
	"testing"
)

// descWith returns a descriptor with exactly n lanes on the widest compiled
// target that has that many, or skips the test.
func descWith[T Lanes](t *testing.T, n int) Desc[T] {
	t.Helper()
	for _, target := range compiledTargets {
		if d, err := NewDesc[T](target, n); err == nil {
			return d
		}
	}
	t.Skipf("no compiled target has %d lanes of %s", n, typeName[T]())
	return Desc[T]{}
}

func TestBlendedStore(t *testing.T) {
	t.Run("all true mask", func(t *testing.T) {
		d := descWith[float32](t, 4)
		v := Load(d, []float32{1, 2, 3, 4})
		mask := FirstN(d, 4)
		dst := []float32{10, 20, 30, 40}

		BlendedStore(v, mask, d, dst)

		want := []float32{1, 2, 3, 4}
		for i, got := range dst {
			if got != want[i] {
				t.Errorf("lane %d: got %v, want %v", i, got, want[i])
			}
		}
	})

	t.Run("all false mask", func(t *testing.T) {
		d := descWith[float32](t, 4)
		v := Load(d, []float32{1, 2, 3, 4})
		mask := FirstN(d, 0)
		dst := []float32{10, 20, 30, 40}

		BlendedStore(v, mask, d, dst)

		// dst should be unchanged
		want := []float32{10, 20, 30, 40}
		for i, got := range dst {
			if got != want[i] {
				t.Errorf("lane %d: got %v, want %v (should be unchanged)", i, got, want[i])
			}
		}
	})

	t.Run("mixed mask", func(t *testing.T) {
		d := descWith[int32](t, 4)
		v := Load(d, []int32{100, 200, 300, 400})
		mask := MaskFromVec(Load(d, []int32{0, 1, 0, -7}))
		dst := []int32{1, 2, 3, 4}

		BlendedStore(v, mask, d, dst)

		want := []int32{1, 200, 3, 400}
		for i, got := range dst {
			if got != want[i] {
				t.Errorf("lane %d: got %v, want %v", i, got, want[i])
			}
		}
	})
}

func TestLoadStoreExactlyN(t *testing.T) {
	const sentinel = uint16(0xBEEF)
	for _, target := range compiledTargets {
		native := target.Lanes(2)
		for n := 1; n <= native; n++ {
			d, err := NewDesc[uint16](target, n)
			if err != nil {
				t.Fatal(err)
			}
			src := make([]uint16, native+1)
			for i := range src {
				src[i] = uint16(i + 1)
			}
			v := Load(d, src)
			if v.NumLanes() != n {
				t.Fatalf("%s: NumLanes = %d", d, v.NumLanes())
			}
			for w := range v.w {
				if v.w[w]&^keep(w, n*2) != 0 {
					t.Fatalf("%s: word %d has bits beyond N: %#x", d, w, v.w[w])
				}
			}

			dst := make([]uint16, native+1)
			for i := range dst {
				dst[i] = sentinel
			}
			Store(v, d, dst)
			for i, got := range dst {
				want := sentinel
				if i < n {
					want = uint16(i + 1)
				}
				if got != want {
					t.Errorf("%s: dst[%d] = %#x, want %#x", d, i, got, want)
				}
			}
		}
	}
}

func TestSetIotaZero(t *testing.T) {
	for _, target := range compiledTargets {
		d := FullFor[int8](target)
		set := Set(d, int8(-5))
		seq := Iota(d, int8(120))
		zero := Zero(d)
		for i := range d.Lanes() {
			if got := set.Lane(i); got != -5 {
				t.Errorf("%s Set: lane %d = %d", d, i, got)
			}
			if got, want := seq.Lane(i), int8(120)+int8(i); got != want {
				t.Errorf("%s Iota: lane %d = %d, want %d", d, i, got, want)
			}
			if got := zero.Lane(i); got != 0 {
				t.Errorf("%s Zero: lane %d = %d", d, i, got)
			}
		}
		if got := set.Lane(d.Lanes()); got != 0 {
			t.Errorf("%s: lane N = %d, want 0", d, got)
		}
	}
}

func TestFirstN(t *testing.T) {
	d := descWith[uint32](t, 4)
	tests := []struct {
		n     int
		count int
		first int
	}{
		{n: -1, count: 0, first: -1},
		{n: 0, count: 0, first: -1},
		{n: 1, count: 1, first: 0},
		{n: 3, count: 3, first: 0},
		{n: 4, count: 4, first: 0},
		{n: 100, count: 4, first: 0},
	}
	for _, tt := range tests {
		m := FirstN(d, tt.n)
		if got := m.CountTrue(); got != tt.count {
			t.Errorf("FirstN(%d).CountTrue() = %d, want %d", tt.n, got, tt.count)
		}
		if got := m.FindFirstTrue(); got != tt.first {
			t.Errorf("FirstN(%d).FindFirstTrue() = %d, want %d", tt.n, got, tt.first)
		}
		if m.AllTrue() != (tt.count == 4) {
			t.Errorf("FirstN(%d).AllTrue() = %v", tt.n, m.AllTrue())
		}
		if m.AllFalse() != (tt.count == 0) {
			t.Errorf("FirstN(%d).AllFalse() = %v", tt.n, m.AllFalse())
		}
	}
}

func TestMaskFindFirstTrue(t *testing.T) {
	d := descWith[uint64](t, 4)
	m := MaskFromVec(Load(d, []uint64{0, 0, 9, 1}))
	if got := m.FindFirstTrue(); got != 2 {
		t.Errorf("FindFirstTrue = %d, want 2", got)
	}
	if !m.GetBit(3) || m.GetBit(1) || m.GetBit(4) {
		t.Errorf("GetBit mismatch: %v %v %v", m.GetBit(3), m.GetBit(1), m.GetBit(4))
	}
}

func TestIfThenElse(t *testing.T) {
	d := descWith[float64](t, 2)
	yes := Set(d, 1.5)
	no := Set(d, -2.5)
	m := MaskFromVec(Load(d, []float64{0, 3}))

	got := IfThenElse(m, yes, no)
	if got.Lane(0) != -2.5 || got.Lane(1) != 1.5 {
		t.Errorf("IfThenElse = %v", got)
	}
	got = IfThenElseZero(m, yes)
	if got.Lane(0) != 0 || got.Lane(1) != 1.5 {
		t.Errorf("IfThenElseZero = %v", got)
	}
}

func TestVecString(t *testing.T) {
	d := descWith[int16](t, 3)
	if got, want := Iota(d, int16(-1)).String(), "[-1 0 1]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewDesc(t *testing.T) {
	if _, err := NewDesc[uint8](TargetScalar, 2); !errors.Is(err, ErrLaneCount) {
		t.Errorf("scalar with 2 lanes: err = %v, want ErrLaneCount", err)
	}
	if _, err := NewDesc[uint8](TargetScalar, 0); !errors.Is(err, ErrLaneCount) {
		t.Errorf("zero lanes: err = %v, want ErrLaneCount", err)
	}
	for _, target := range inventory {
		if target.Compiled() {
			continue
		}
		if _, err := NewDesc[uint8](target, 1); !errors.Is(err, ErrTargetNotCompiled) {
			t.Errorf("%s: err = %v, want ErrTargetNotCompiled", target, err)
		}
	}
	d, err := NewDesc[float32](TargetScalar, 1)
	if err != nil {
		t.Fatal(err)
	}
	if d.Lanes() != 1 || d.MaxLanes() != 1 || d.IsPartial() {
		t.Errorf("scalar desc = %s", d)
	}
}

func TestCapped(t *testing.T) {
	native := Full[uint8]().Lanes()
	if got := Capped[uint8](3).Lanes(); got != min(3, native) {
		t.Errorf("Capped(3).Lanes() = %d", got)
	}
	if got := Capped[uint8](1 << 20).Lanes(); got != native {
		t.Errorf("Capped(huge).Lanes() = %d, want %d", got, native)
	}
	if got := Capped[uint8](-4).Lanes(); got != 1 {
		t.Errorf("Capped(-4).Lanes() = %d, want 1", got)
	}
}

func TestProcessWithTail(t *testing.T) {
	for _, target := range compiledTargets {
		d := FullFor[uint32](target)
		for _, size := range []int{0, 1, d.Lanes() - 1, d.Lanes(), 3*d.Lanes() + 2} {
			if size < 0 {
				continue
			}
			seen := make([]int, size)
			ProcessWithTail(d, size,
				func(offset int) {
					for i := range d.Lanes() {
						seen[offset+i]++
					}
				},
				func(offset int, tail Desc[uint32]) {
					if tail.Lanes() >= d.Lanes() || tail.Target() != target {
						t.Errorf("%s: bad tail %s", d, tail)
					}
					for i := range tail.Lanes() {
						seen[offset+i]++
					}
				},
			)
			for i, c := range seen {
				if c != 1 {
					t.Fatalf("%s size %d: element %d visited %d times", d, size, i, c)
				}
			}
			if got := AlignedSize(d, size); got%d.Lanes() != 0 || got < size || got-size >= d.Lanes() {
				t.Errorf("%s: AlignedSize(%d) = %d", d, size, got)
			}
			if IsAligned(d, size) != (size%d.Lanes() == 0) {
				t.Errorf("%s: IsAligned(%d) wrong", d, size)
			}
		}
	}
}

func TestProcessWithTailNoMask(t *testing.T) {
	d := FullFor[uint8](compiledTargets[0])
	size := d.Lanes() + d.Lanes()/2 + 1
	if d.Lanes() == 1 {
		size = 3
	}
	seen := make([]int, size)
	ProcessWithTailNoMask(d, size, func(offset int) {
		for i := range d.Lanes() {
			seen[offset+i]++
		}
	})
	for i, c := range seen {
		if c == 0 {
			t.Errorf("element %d not visited", i)
		}
	}
}

// Every kernel of every compiled target must leave the bytes at and beyond
// N zero, whatever the inputs hold there.
func TestKernelsClearTail(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	var a, b, c block
	for i := range a {
		a[i], b[i], c[i] = r.Uint64(), r.Uint64(), r.Uint64()
	}
	for _, target := range compiledTargets {
		for slot := range target.table {
			lk := &target.table[slot]
			size := 1 << slot
			native := target.Lanes(size)
			for n := 1; n <= native; n++ {
				nb := n * size
				results := map[string]block{
					"not":                lk.not(a, nb),
					"and":                lk.and(a, b, nb),
					"or":                 lk.or(a, b, nb),
					"xor":                lk.xor(a, b, nb),
					"andNot":             lk.andNot(a, b, nb),
					"or3":                lk.or3(a, b, c, nb),
					"xor3":               lk.xor3(a, b, c, nb),
					"orAnd":              lk.orAnd(a, b, c, nb),
					"copySign":           lk.copySign(a, b, nb),
					"copySignToAbs":      lk.copySignToAbs(a, b, nb),
					"broadcastSignBit":   lk.broadcastSignBit(a, nb),
					"testBit":            lk.testBit(a, b, nb),
					"ifThenElse":         lk.ifThenElse(a, b, c, nb),
					"populationCount":    lk.populationCount(a, nb),
					"leadingZeroCount":   lk.leadingZeroCount(a, nb),
					"trailingZeroCount":  lk.trailingZeroCount(a, nb),
					"highestSetBitIndex": lk.highestSetBitIndex(a, nb),
				}
				for name, d := range results {
					for w := range d {
						if d[w]&^keep(w, nb) != 0 {
							t.Fatalf("%s %s n=%d: word %d = %#x has bits beyond N", lk.name, name, n, w, d[w])
						}
					}
				}
			}
		}
	}
}

func TestKeep(t *testing.T) {
	tests := []struct {
		i, nb int
		want  uint64
	}{
		{0, 0, 0},
		{0, 1, 0xFF},
		{0, 8, ^uint64(0)},
		{0, 64, ^uint64(0)},
		{1, 8, 0},
		{1, 12, 0xFFFFFFFF},
		{7, 64, ^uint64(0)},
		{7, 63, 0x00FFFFFFFFFFFFFF},
	}
	for _, tt := range tests {
		if got := keep(tt.i, tt.nb); got != tt.want {
			t.Errorf("keep(%d, %d) = %#x, want %#x", tt.i, tt.nb, got, tt.want)
		}
	}
}

func TestZeroAllocs(t *testing.T) {
	d := Full[uint32]()
	src := make([]uint32, d.Lanes())
	dst := make([]uint32, d.Lanes())
	allocs := testing.AllocsPerRun(100, func() {
		v := Load(d, src)
		v = PopulationCount(Xor3(v, Not(v), LeadingZeroCount(v)))
		m := TestBit(v, Set(d, 1))
		Store(IfThenElseZero(m, v), d, dst)
	})
	if allocs != 0 {
		t.Errorf("got %v allocations per run, want 0", allocs)
	}
}
