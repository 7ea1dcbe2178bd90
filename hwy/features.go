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
	"strings"
	"sync"
)

// Features is the set of CPU capabilities the target predicates look at.
// The zero value describes a CPU with no vector extensions, which selects
// the scalar target.
type Features struct {
	// Probed is false when the operating system did not let the probe read
	// the CPU's capabilities. All Has fields are then false.
	Probed       bool   `json:"probed" yaml:"probed"`
	Architecture string `json:"architecture" yaml:"architecture"`

	// x86
	HasSSSE3    bool `json:"ssse3,omitempty" yaml:"ssse3,omitempty"`
	HasSSE41    bool `json:"sse41,omitempty" yaml:"sse41,omitempty"`
	HasPOPCNT   bool `json:"popcnt,omitempty" yaml:"popcnt,omitempty"`
	HasAVX2     bool `json:"avx2,omitempty" yaml:"avx2,omitempty"`
	HasBMI1     bool `json:"bmi1,omitempty" yaml:"bmi1,omitempty"`
	HasBMI2     bool `json:"bmi2,omitempty" yaml:"bmi2,omitempty"`
	HasFMA      bool `json:"fma,omitempty" yaml:"fma,omitempty"`
	HasAVX512F  bool `json:"avx512f,omitempty" yaml:"avx512f,omitempty"`
	HasAVX512BW bool `json:"avx512bw,omitempty" yaml:"avx512bw,omitempty"`
	HasAVX512DQ bool `json:"avx512dq,omitempty" yaml:"avx512dq,omitempty"`
	HasAVX512VL bool `json:"avx512vl,omitempty" yaml:"avx512vl,omitempty"`

	// arm64
	HasASIMD bool `json:"asimd,omitempty" yaml:"asimd,omitempty"`
}

// List returns the names of the features that are present, in a fixed order.
func (f Features) List() []string {
	var names []string
	add := func(has bool, name string) {
		if has {
			names = append(names, name)
		}
	}
	add(f.HasSSSE3, "ssse3")
	add(f.HasSSE41, "sse4.1")
	add(f.HasPOPCNT, "popcnt")
	add(f.HasAVX2, "avx2")
	add(f.HasBMI1, "bmi1")
	add(f.HasBMI2, "bmi2")
	add(f.HasFMA, "fma")
	add(f.HasAVX512F, "avx512f")
	add(f.HasAVX512BW, "avx512bw")
	add(f.HasAVX512DQ, "avx512dq")
	add(f.HasAVX512VL, "avx512vl")
	add(f.HasASIMD, "asimd")
	return names
}

func (f Features) String() string {
	if !f.Probed {
		return fmt.Sprintf("%s: not probed", f.Architecture)
	}
	return fmt.Sprintf("%s: %s", f.Architecture, strings.Join(f.List(), " "))
}

// probedFeatures runs the platform probe once.
var probedFeatures = sync.OnceValue(detectFeatures)

// ProbedFeatures returns the capabilities of the running CPU. The probe runs
// once per process and never fails; an unreadable CPU yields Features with
// Probed set to false.
func ProbedFeatures() Features {
	return probedFeatures()
}
