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

// Command hwyinfo reports the vector targets compiled into this build, the
// capabilities of the running CPU, and checks that every compiled target
// computes the same results.
//
// Usage:
//
//	hwyinfo targets
//	hwyinfo --format json features
//	hwyinfo eval --type uint32 --n 4096 populationcount
//
// Global flags:
//
//	--format      output format: text, json or yaml
//	--config      YAML file with no_simd and disable_targets, applied before
//	              the target is selected
//	--log-level   debug, info, warn or error
//	--log-json    log records as JSON
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ajroetker/go-highway-lanes/hwy"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the state shared by the subcommands, filled in by before.
type app struct {
	stdout io.Writer
	stderr io.Writer
	format string
	log    *slog.Logger
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		format: formatText,
		log:    slog.New(slog.DiscardHandler),
	}
	return &cli.Command{
		Name:      "hwyinfo",
		Usage:     "Inspect vector targets and check operations across them",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   formatText,
				Usage:   "output format: text, json or yaml",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML file with no_simd and disable_targets",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "log level: debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "log records as JSON",
			},
		},
		Before: a.before,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			a.targetsCmd(),
			a.featuresCmd(),
			a.evalCmd(),
		},
	}
}

// before validates the global flags, installs the logger and applies the
// configuration file. It runs before any subcommand selects a target.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	a.format = cmd.String("format")
	if err := checkFormat(a.format); err != nil {
		return ctx, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
		return ctx, fmt.Errorf("invalid --log-level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(a.stderr, opts)
	if cmd.Bool("log-json") {
		h = slog.NewJSONHandler(a.stderr, opts)
	}
	a.log = slog.New(h)
	hwy.SetLogger(a.log)

	if path := cmd.String("config"); path != "" {
		cfg, err := loadConfig(path)
		if err != nil {
			return ctx, err
		}
		if err := hwy.Configure(cfg); err != nil {
			return ctx, fmt.Errorf("apply %s: %w", path, err)
		}
		a.log.Debug("configuration loaded",
			"path", path,
			"no_simd", cfg.NoSimd,
			"disable_targets", cfg.DisableTargets,
		)
	}
	return ctx, nil
}
