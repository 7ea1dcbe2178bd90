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

//go:build amd64 && !purego

package hwy

// Register shapes of the x86 targets. Each named type yields its own
// instantiation of the SWAR kernels.
type (
	sse4Reg [2]uint64
	avx2Reg [4]uint64
	avx3Reg [8]uint64
)

var compiledTargets = []*Target{
	compile(TargetAVX3, swarTable[avx3Reg]()),
	compile(TargetAVX2, swarTable[avx2Reg]()),
	compile(TargetSSE4, swarTable[sse4Reg]()),
	TargetScalar,
}
