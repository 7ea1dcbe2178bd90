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

	"github.com/urfave/cli/v3"

	"github.com/ajroetker/go-highway-lanes/hwy"
)

// targetInfo describes one inventory entry as seen from this process.
type targetInfo struct {
	Name      string `json:"name" yaml:"name"`
	Arch      string `json:"arch" yaml:"arch"`
	Bits      int    `json:"bits" yaml:"bits"`
	Priority  int    `json:"priority" yaml:"priority"`
	Alignment int    `json:"alignment" yaml:"alignment"`
	Compiled  bool   `json:"compiled" yaml:"compiled"`
	Supported bool   `json:"supported" yaml:"supported"`
	Selected  bool   `json:"selected" yaml:"selected"`

	// Lanes is the native lane count for 1, 2, 4 and 8 byte elements.
	Lanes [4]int `json:"lanes" yaml:"lanes,flow"`
}

func collectTargets() []targetInfo {
	f := hwy.ProbedFeatures()
	selected := hwy.Select()
	var out []targetInfo
	for _, t := range hwy.Inventory() {
		info := targetInfo{
			Name:      t.Name(),
			Arch:      t.Arch(),
			Bits:      t.Bits(),
			Priority:  t.Priority(),
			Alignment: t.Alignment(),
			Compiled:  t.Compiled(),
			Supported: t.Supports(f),
			Selected:  t == selected,
		}
		for i, size := range []int{1, 2, 4, 8} {
			info.Lanes[i] = t.Lanes(size)
		}
		out = append(out, info)
	}
	return out
}

func (a *app) targetsCmd() *cli.Command {
	return &cli.Command{
		Name:    "targets",
		Aliases: []string{"ls"},
		Usage:   "List the target inventory and the selected target",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			targets := collectTargets()
			return a.render(targets, func(w io.Writer) error {
				fmt.Fprintf(w, "%-1s %-8s %-6s %5s %8s %5s %-8s %-9s %s\n",
					"", "TARGET", "ARCH", "BITS", "PRIORITY", "ALIGN", "COMPILED", "SUPPORTED", "LANES(8/16/32/64)")
				for _, t := range targets {
					marker := ""
					if t.Selected {
						marker = "*"
					}
					fmt.Fprintf(w, "%-1s %-8s %-6s %5d %8d %5d %-8s %-9s %d/%d/%d/%d\n",
						marker, t.Name, t.Arch, t.Bits, t.Priority, t.Alignment,
						yesNo(t.Compiled), yesNo(t.Supported),
						t.Lanes[0], t.Lanes[1], t.Lanes[2], t.Lanes[3])
				}
				return nil
			})
		},
	}
}
