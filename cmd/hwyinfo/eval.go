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
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"
	"unsafe"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-highway-lanes/hwy"
)

var (
	errUnknownOp   = errors.New("unknown operation")
	errUnknownType = errors.New("unsupported lane type")
	errMismatch    = errors.New("targets disagree")
)

// opFunc applies one operation to up to three operands described by d.
type opFunc[T hwy.Lanes] func(d hwy.Desc[T], a, b, c hwy.Vec[T]) hwy.Vec[T]

func logicalOps[T hwy.Lanes]() map[string]opFunc[T] {
	return map[string]opFunc[T]{
		"not":    func(_ hwy.Desc[T], a, _, _ hwy.Vec[T]) hwy.Vec[T] { return hwy.Not(a) },
		"and":    func(_ hwy.Desc[T], a, b, _ hwy.Vec[T]) hwy.Vec[T] { return hwy.And(a, b) },
		"or":     func(_ hwy.Desc[T], a, b, _ hwy.Vec[T]) hwy.Vec[T] { return hwy.Or(a, b) },
		"xor":    func(_ hwy.Desc[T], a, b, _ hwy.Vec[T]) hwy.Vec[T] { return hwy.Xor(a, b) },
		"andnot": func(_ hwy.Desc[T], a, b, _ hwy.Vec[T]) hwy.Vec[T] { return hwy.AndNot(a, b) },
		"or3":    func(_ hwy.Desc[T], a, b, c hwy.Vec[T]) hwy.Vec[T] { return hwy.Or3(a, b, c) },
		"xor3":   func(_ hwy.Desc[T], a, b, c hwy.Vec[T]) hwy.Vec[T] { return hwy.Xor3(a, b, c) },
		"orand":  func(_ hwy.Desc[T], a, b, c hwy.Vec[T]) hwy.Vec[T] { return hwy.OrAnd(a, b, c) },
	}
}

func integerOps[T hwy.Integers]() map[string]opFunc[T] {
	ops := logicalOps[T]()
	ops["populationcount"] = func(_ hwy.Desc[T], a, _, _ hwy.Vec[T]) hwy.Vec[T] { return hwy.PopulationCount(a) }
	ops["leadingzerocount"] = func(_ hwy.Desc[T], a, _, _ hwy.Vec[T]) hwy.Vec[T] { return hwy.LeadingZeroCount(a) }
	ops["trailingzerocount"] = func(_ hwy.Desc[T], a, _, _ hwy.Vec[T]) hwy.Vec[T] { return hwy.TrailingZeroCount(a) }
	ops["highestsetbitindex"] = func(_ hwy.Desc[T], a, _, _ hwy.Vec[T]) hwy.Vec[T] { return hwy.HighestSetBitIndex(a) }
	ops["testbit"] = func(d hwy.Desc[T], a, b, _ hwy.Vec[T]) hwy.Vec[T] { return hwy.VecFromMask(d, hwy.TestBit(a, b)) }
	return ops
}

func signedOps[T hwy.SignedInts]() map[string]opFunc[T] {
	ops := integerOps[T]()
	ops["broadcastsignbit"] = func(_ hwy.Desc[T], a, _, _ hwy.Vec[T]) hwy.Vec[T] { return hwy.BroadcastSignBit(a) }
	return ops
}

func floatOps[T hwy.Floats]() map[string]opFunc[T] {
	ops := logicalOps[T]()
	ops["copysign"] = func(_ hwy.Desc[T], a, b, _ hwy.Vec[T]) hwy.Vec[T] { return hwy.CopySign(a, b) }
	ops["copysigntoabs"] = func(d hwy.Desc[T], a, b, _ hwy.Vec[T]) hwy.Vec[T] {
		// CopySign with +0 clears the sign bit, as CopySignToAbs requires.
		return hwy.CopySignToAbs(hwy.CopySign(a, hwy.Zero(d)), b)
	}
	return ops
}

// opNames lists every operation name eval accepts for some lane type.
func opNames() []string {
	names := slices.Collect(maps.Keys(signedOps[int32]()))
	names = append(names, "copysign", "copysigntoabs")
	slices.Sort(names)
	return names
}

// integerInputs mixes zeros, single set bits and random patterns so the
// counting operations see their edge cases.
func integerInputs[T hwy.Integers](r *rand.Rand, n int) []T {
	width := int(unsafe.Sizeof(T(0))) * 8
	out := make([]T, n)
	for i := range out {
		switch r.IntN(4) {
		case 0:
		case 1:
			out[i] = T(1) << r.IntN(width)
		default:
			out[i] = T(r.Uint64())
		}
	}
	return out
}

// floatInputs mixes signed zeros with finite values of both signs.
func floatInputs[T hwy.Floats](r *rand.Rand, n int) []T {
	out := make([]T, n)
	for i := range out {
		switch r.IntN(4) {
		case 0:
		case 1:
			out[i] = T(math.Copysign(0, -1))
		default:
			out[i] = T(r.NormFloat64() * 1e3)
		}
	}
	return out
}

// sameBits compares lanes bitwise, so NaN results of the logical operations
// on floats compare equal to themselves.
func sameBits[T hwy.Lanes](x, y T) bool {
	size := unsafe.Sizeof(x)
	return unsafe.String((*byte)(unsafe.Pointer(&x)), size) ==
		unsafe.String((*byte)(unsafe.Pointer(&y)), size)
}

type evalRequest struct {
	Op   string
	Type string
	N    int
	Seed uint64
}

type evalResult struct {
	Target     string `json:"target" yaml:"target"`
	Lanes      int    `json:"lanes" yaml:"lanes"`
	Mismatches int    `json:"mismatches" yaml:"mismatches"`

	// FirstMismatch is the index of the first differing element, or -1.
	FirstMismatch int `json:"first_mismatch" yaml:"first_mismatch"`
}

type evalReport struct {
	Op        string       `json:"op" yaml:"op"`
	Type      string       `json:"type" yaml:"type"`
	N         int          `json:"n" yaml:"n"`
	Seed      uint64       `json:"seed" yaml:"seed"`
	Reference string       `json:"reference" yaml:"reference"`
	Results   []evalResult `json:"results" yaml:"results"`
}

// disagreeing returns the names of the targets whose output differs from
// the reference.
func (r evalReport) disagreeing() []string {
	var names []string
	for _, res := range r.Results {
		if res.Mismatches > 0 {
			names = append(names, res.Target)
		}
	}
	return names
}

// evaluate runs req on every compiled target.
func evaluate(ctx context.Context, req evalRequest, log logFunc) (evalReport, error) {
	switch req.Type {
	case "uint8":
		return runEval(ctx, integerOps[uint8](), integerInputs[uint8], req, log)
	case "uint16":
		return runEval(ctx, integerOps[uint16](), integerInputs[uint16], req, log)
	case "uint32":
		return runEval(ctx, integerOps[uint32](), integerInputs[uint32], req, log)
	case "uint64":
		return runEval(ctx, integerOps[uint64](), integerInputs[uint64], req, log)
	case "int8":
		return runEval(ctx, signedOps[int8](), integerInputs[int8], req, log)
	case "int16":
		return runEval(ctx, signedOps[int16](), integerInputs[int16], req, log)
	case "int32":
		return runEval(ctx, signedOps[int32](), integerInputs[int32], req, log)
	case "int64":
		return runEval(ctx, signedOps[int64](), integerInputs[int64], req, log)
	case "float32":
		return runEval(ctx, floatOps[float32](), floatInputs[float32], req, log)
	case "float64":
		return runEval(ctx, floatOps[float64](), floatInputs[float64], req, log)
	}
	return evalReport{}, fmt.Errorf("%w: %q", errUnknownType, req.Type)
}

// logFunc receives one debug record per evaluated target.
type logFunc func(msg string, args ...any)

func runEval[T hwy.Lanes](ctx context.Context, ops map[string]opFunc[T], gen func(*rand.Rand, int) []T, req evalRequest, log logFunc) (evalReport, error) {
	fn, ok := ops[req.Op]
	if !ok {
		return evalReport{}, fmt.Errorf("%w %q for %s", errUnknownOp, req.Op, req.Type)
	}
	if req.N < 1 {
		return evalReport{}, fmt.Errorf("--n must be positive, got %d", req.N)
	}

	r := rand.New(rand.NewPCG(req.Seed, req.Seed^0x9e3779b97f4a7c15))
	a, b, c := gen(r, req.N), gen(r, req.N), gen(r, req.N)

	targets := hwy.CompiledTargets()
	outs := make([][]T, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			outs[i] = apply(t, fn, a, b, c)
			log("target evaluated", "target", t.Name(), "op", req.Op, "type", req.Type, "elapsed", time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return evalReport{}, err
	}

	ref := outs[slices.Index(targets, hwy.TargetScalar)]
	report := evalReport{
		Op:        req.Op,
		Type:      req.Type,
		N:         req.N,
		Seed:      req.Seed,
		Reference: hwy.TargetScalar.Name(),
	}
	for i, t := range targets {
		res := evalResult{
			Target:        t.Name(),
			Lanes:         hwy.FullFor[T](t).Lanes(),
			FirstMismatch: -1,
		}
		for j := range ref {
			if !sameBits(outs[i][j], ref[j]) {
				if res.Mismatches == 0 {
					res.FirstMismatch = j
				}
				res.Mismatches++
			}
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

// apply runs fn over a, b and c with full vectors of t and one partial
// vector for the tail.
func apply[T hwy.Lanes](t *hwy.Target, fn opFunc[T], a, b, c []T) []T {
	out := make([]T, len(a))
	step := func(d hwy.Desc[T], off int) {
		va := hwy.Load(d, a[off:])
		vb := hwy.Load(d, b[off:])
		vc := hwy.Load(d, c[off:])
		hwy.Store(fn(d, va, vb, vc), d, out[off:])
	}
	d := hwy.FullFor[T](t)
	hwy.ProcessWithTail(d, len(a),
		func(off int) { step(d, off) },
		func(off int, tail hwy.Desc[T]) { step(tail, off) },
	)
	return out
}

func (a *app) evalCmd() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "Run an operation on every compiled target and compare with the scalar target",
		ArgsUsage: "<operation>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Value:   "uint32",
				Usage:   "lane type: uint8..uint64, int8..int64, float32 or float64",
			},
			&cli.IntFlag{
				Name:  "n",
				Value: 1027,
				Usage: "number of elements; values that are not a multiple of the lane count exercise the tail",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Value: 1,
				Usage: "seed for the random inputs",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("eval: expected one operation, one of: %s", strings.Join(opNames(), ", "))
			}
			req := evalRequest{
				Op:   strings.ToLower(cmd.Args().First()),
				Type: cmd.String("type"),
				N:    cmd.Int("n"),
				Seed: uint64(cmd.Int64("seed")),
			}
			report, err := evaluate(ctx, req, a.log.Debug)
			if err != nil {
				return fmt.Errorf("eval: %w", err)
			}
			err = a.render(report, func(w io.Writer) error {
				fmt.Fprintf(w, "%s on %d x %s (seed %d), reference %s\n",
					report.Op, report.N, report.Type, report.Seed, report.Reference)
				fmt.Fprintf(w, "%-8s %5s %10s\n", "TARGET", "LANES", "MISMATCHES")
				for _, res := range report.Results {
					fmt.Fprintf(w, "%-8s %5d %10d\n", res.Target, res.Lanes, res.Mismatches)
				}
				return nil
			})
			if err != nil {
				return err
			}
			if bad := report.disagreeing(); len(bad) > 0 {
				return fmt.Errorf("eval %s on %s: %w: %s", report.Op, report.Type, errMismatch, strings.Join(bad, ", "))
			}
			return nil
		},
	}
}
