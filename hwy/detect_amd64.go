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

//go:build amd64

package hwy

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

func detectFeatures() Features {
	f := Features{Architecture: runtime.GOARCH}
	if !cpu.Initialized {
		return f
	}
	f.Probed = true
	f.HasSSSE3 = cpu.X86.HasSSSE3
	f.HasSSE41 = cpu.X86.HasSSE41
	f.HasPOPCNT = cpu.X86.HasPOPCNT
	f.HasAVX2 = cpu.X86.HasAVX2
	f.HasBMI1 = cpu.X86.HasBMI1
	f.HasBMI2 = cpu.X86.HasBMI2
	f.HasFMA = cpu.X86.HasFMA
	// x/sys/cpu reports the AVX-512 subsets only when the OS saves the
	// opmask and ZMM state.
	f.HasAVX512F = cpu.X86.HasAVX512F
	f.HasAVX512BW = cpu.X86.HasAVX512BW
	f.HasAVX512DQ = cpu.X86.HasAVX512DQ
	f.HasAVX512VL = cpu.X86.HasAVX512VL
	return f
}
