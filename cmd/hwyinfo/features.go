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

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"github.com/urfave/cli/v3"

	"github.com/ajroetker/go-highway-lanes/hwy"
)

// featureReport pairs the capabilities the dispatcher looks at with a
// fuller description of the CPU.
type featureReport struct {
	Probed hwy.Features `json:"probed" yaml:"probed"`
	CPU    cpuInfo      `json:"cpu" yaml:"cpu"`
}

type cpuInfo struct {
	Vendor        string   `json:"vendor" yaml:"vendor"`
	Brand         string   `json:"brand" yaml:"brand"`
	Family        int      `json:"family" yaml:"family"`
	Model         int      `json:"model" yaml:"model"`
	PhysicalCores int      `json:"physical_cores" yaml:"physical_cores"`
	LogicalCores  int      `json:"logical_cores" yaml:"logical_cores"`
	CacheLine     int      `json:"cache_line" yaml:"cache_line"`
	Features      []string `json:"features,omitempty" yaml:"features,omitempty,flow"`
}

func collectFeatures(withAll bool) featureReport {
	r := featureReport{
		Probed: hwy.ProbedFeatures(),
		CPU: cpuInfo{
			Vendor:        cpuid.CPU.VendorString,
			Brand:         cpuid.CPU.BrandName,
			Family:        cpuid.CPU.Family,
			Model:         cpuid.CPU.Model,
			PhysicalCores: cpuid.CPU.PhysicalCores,
			LogicalCores:  cpuid.CPU.LogicalCores,
			CacheLine:     cpuid.CPU.CacheLine,
		},
	}
	if withAll {
		r.CPU.Features = cpuid.CPU.FeatureSet()
	}
	return r
}

func (a *app) featuresCmd() *cli.Command {
	return &cli.Command{
		Name:  "features",
		Usage: "Show the CPU capabilities the dispatcher probed",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "all",
				Aliases: []string{"a"},
				Usage:   "include every feature flag reported by cpuid",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r := collectFeatures(cmd.Bool("all"))
			return a.render(r, func(w io.Writer) error {
				fmt.Fprintf(w, "probed:     %s\n", r.Probed)
				fmt.Fprintf(w, "vendor:     %s\n", r.CPU.Vendor)
				fmt.Fprintf(w, "brand:      %s\n", r.CPU.Brand)
				fmt.Fprintf(w, "family:     %d model %d\n", r.CPU.Family, r.CPU.Model)
				fmt.Fprintf(w, "cores:      %d physical, %d logical\n", r.CPU.PhysicalCores, r.CPU.LogicalCores)
				fmt.Fprintf(w, "cache line: %d\n", r.CPU.CacheLine)
				if len(r.CPU.Features) > 0 {
					fmt.Fprintf(w, "cpuid:      %s\n", strings.Join(r.CPU.Features, " "))
				}
				return nil
			})
		},
	}
}
