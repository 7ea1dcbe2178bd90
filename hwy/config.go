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
	"os"
	"strconv"
	"strings"
)

// Environment variables read by ConfigFromEnv.
const (
	// EnvNoSimd forces the scalar target when set to a true value.
	EnvNoSimd = "HWY_NO_SIMD"

	// EnvDisableTargets is a comma-separated list of target names the
	// dispatcher must not select, e.g. "avx3,avx2".
	EnvDisableTargets = "HWY_DISABLE_TARGETS"
)

// Config restricts which targets the dispatcher may select. The zero value
// allows every compiled target.
type Config struct {
	// NoSimd selects the scalar target regardless of CPU capabilities.
	// This is useful for testing and debugging.
	NoSimd bool `json:"no_simd" yaml:"no_simd"`

	// DisableTargets lists target names to skip. The scalar target cannot
	// be disabled.
	DisableTargets []string `json:"disable_targets,omitempty" yaml:"disable_targets,omitempty"`
}

// Validate reports names in DisableTargets that are not in the inventory.
func (c Config) Validate() error {
	for _, name := range c.DisableTargets {
		if _, err := TargetByName(name); err != nil {
			return err
		}
	}
	return nil
}

// Allows reports whether the configuration lets the dispatcher pick t.
func (c Config) Allows(t *Target) bool {
	if t == TargetScalar {
		return true
	}
	if c.NoSimd {
		return false
	}
	for _, name := range c.DisableTargets {
		if strings.EqualFold(strings.TrimSpace(name), t.name) {
			return false
		}
	}
	return true
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// Any non-empty value is true unless it parses as a false boolean.
func NoSimdEnv() bool {
	val := os.Getenv(EnvNoSimd)
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// ConfigFromEnv builds a Config from HWY_NO_SIMD and HWY_DISABLE_TARGETS.
func ConfigFromEnv() Config {
	cfg := Config{NoSimd: NoSimdEnv()}
	for name := range strings.SplitSeq(os.Getenv(EnvDisableTargets), ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.DisableTargets = append(cfg.DisableTargets, name)
		}
	}
	return cfg
}

// Configure replaces the environment configuration. It must be called before
// the first call to Select, Full or Capped; afterwards it returns
// ErrAlreadyBound and has no effect.
func Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("hwy: configure: %w", err)
	}
	bindMu.Lock()
	defer bindMu.Unlock()
	if bound {
		return ErrAlreadyBound
	}
	override = &cfg
	return nil
}
