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
	"fmt"
)

var (
	// ErrUnknownTarget is returned when a target name is not in the inventory.
	ErrUnknownTarget = errors.New("hwy: unknown target")

	// ErrTargetNotCompiled is returned when a target exists in the inventory
	// but its kernels are not part of this build.
	ErrTargetNotCompiled = errors.New("hwy: target not compiled into this build")

	// ErrAlreadyBound is returned by Configure after the dispatcher has
	// selected its target.
	ErrAlreadyBound = errors.New("hwy: target already selected")

	// ErrLaneCount is returned by NewDesc for a lane count outside
	// [1, native lanes].
	ErrLaneCount = errors.New("hwy: lane count out of range")
)

// ContractError describes a violated precondition of an operation, such as a
// slice shorter than the descriptor's lane count. Operations panic with a
// *ContractError only in builds with the hwydebug tag; other builds do not
// check and the result of a violation is unspecified.
type ContractError struct {
	Op     string
	Detail string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("hwy: %s: %s", e.Op, e.Detail)
}

func contractViolation(op, format string, args ...any) {
	panic(&ContractError{Op: op, Detail: fmt.Sprintf(format, args...)})
}

// checkSameShape panics if two operands were built for different targets
// or lane counts.
func checkSameShape(op string, a, b *laneKernels, na, nb int) {
	if a != b {
		contractViolation(op, "operands come from different targets (%s, %s)", kernelName(a), kernelName(b))
	}
	if na != nb {
		contractViolation(op, "operands have different lane counts (%d and %d bytes)", na, nb)
	}
}

func kernelName(k *laneKernels) string {
	if k == nil {
		return "<zero Vec>"
	}
	return k.name
}
