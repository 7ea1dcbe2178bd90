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

//go:build arm64 && !purego

package hwy

type neonReg [2]uint64

// SVE is not listed: its vector length is only known at run time and the
// NEON kernels already cover every SVE-capable core.
var compiledTargets = []*Target{
	compile(TargetNEON, swarTable[neonReg]()),
	TargetScalar,
}
