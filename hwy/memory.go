package hwy

// This file provides the constructors and memory operations. They run once
// per vector, outside the per-target kernels, and work on any lane type by
// moving raw lane bits in and out of the block.

// Zero returns a vector with all N lanes zero.
func Zero[T Lanes](d Desc[T]) Vec[T] {
	return Vec[T]{lk: d.kernels(), nb: d.bytes()}
}

// Set returns a vector with all N lanes equal to x.
func Set[T Lanes](d Desc[T], x T) Vec[T] {
	size := laneSize[T]()
	nb := d.bytes()
	splat := toBits(x) * laneLSBs(size)
	v := Vec[T]{lk: d.kernels(), nb: nb}
	for i := range v.w {
		v.w[i] = splat & keep(i, nb)
	}
	return v
}

// Iota returns a vector whose lane i is start + i, wrapping for integers.
func Iota[T Lanes](d Desc[T], start T) Vec[T] {
	size := laneSize[T]()
	v := Vec[T]{lk: d.kernels(), nb: d.bytes()}
	for i := range d.n {
		setLane(&v.w, size, i, toBits(start+T(i)))
	}
	return v
}

// Load reads exactly N elements from src. src may be unaligned; see
// Target.Alignment for the preferred alignment.
func Load[T Lanes](d Desc[T], src []T) Vec[T] {
	if debugChecks && len(src) < d.n {
		contractViolation("Load", "len(src) = %d, need %d lanes for %s", len(src), d.n, d)
	}
	size := laneSize[T]()
	v := Vec[T]{lk: d.kernels(), nb: d.bytes()}
	for i, x := range src[:d.n] {
		setLane(&v.w, size, i, toBits(x))
	}
	return v
}

// Store writes exactly N lanes of v to dst; dst[N:] is untouched.
func Store[T Lanes](v Vec[T], d Desc[T], dst []T) {
	if debugChecks {
		checkDesc("Store", v, d)
		if len(dst) < d.n {
			contractViolation("Store", "len(dst) = %d, need %d lanes for %s", len(dst), d.n, d)
		}
	}
	size := laneSize[T]()
	dst = dst[:d.n]
	for i := range dst {
		dst[i] = fromBits[T](getLane(&v.w, size, i))
	}
}

// BlendedStore writes lane i of v to dst[i] where mask lane i is true and
// leaves the other elements of dst unchanged.
func BlendedStore[T Lanes](v Vec[T], mask Mask[T], d Desc[T], dst []T) {
	if debugChecks {
		checkDesc("BlendedStore", v, d)
		if len(dst) < d.n {
			contractViolation("BlendedStore", "len(dst) = %d, need %d lanes for %s", len(dst), d.n, d)
		}
	}
	size := laneSize[T]()
	for i := range d.n {
		if getLane(&mask.w, size, i) != 0 {
			dst[i] = fromBits[T](getLane(&v.w, size, i))
		}
	}
}

// FirstN returns a mask with the first min(n, N) lanes true.
// This is useful for handling the tail (remainder) of an array.
func FirstN[T Lanes](d Desc[T], n int) Mask[T] {
	live := min(max(n, 0), d.n) * laneSize[T]()
	m := Mask[T]{nb: d.bytes()}
	for i := range m.w {
		m.w[i] = keep(i, live)
	}
	return m
}

// VecFromMask returns a vector whose true lanes are all-ones and whose false
// lanes are zero.
func VecFromMask[T Lanes](d Desc[T], m Mask[T]) Vec[T] {
	if debugChecks && m.nb != d.bytes() {
		contractViolation("VecFromMask", "mask has %d bytes, %s has %d", m.nb, d, d.bytes())
	}
	return Vec[T]{w: m.w, lk: d.kernels(), nb: m.nb}
}

// MaskFromVec returns a mask that is true for every non-zero lane of v.
func MaskFromVec[T Lanes](v Vec[T]) Mask[T] {
	size := laneSize[T]()
	m := Mask[T]{nb: v.nb}
	for i := range v.nb / size {
		if getLane(&v.w, size, i) != 0 {
			setLane(&m.w, size, i, laneOnes(size))
		}
	}
	return m
}

func checkDesc[T Lanes](op string, v Vec[T], d Desc[T]) {
	if v.lk != d.kernels() {
		contractViolation(op, "vector from %s used with %s", kernelName(v.lk), d)
	}
	if v.nb != d.bytes() {
		contractViolation(op, "vector has %d lanes, %s has %d", v.NumLanes(), d, d.n)
	}
}
