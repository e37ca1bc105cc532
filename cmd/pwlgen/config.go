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
	"fmt"

	"github.com/pelletier/go-toml"
	"github.com/spf13/pflag"

	"github.com/ajroetker/go-pwl/pwl/activation"
	"github.com/ajroetker/go-pwl/pwl/design"
	"github.com/ajroetker/go-pwl/pwl/transform"
)

// fileConfig is the TOML configuration file:
//
//	workers = 8
//
//	[search]
//	allowed_error = 0.005
//	max_segments = 64
//
//	[[node]]
//	name = "gate"
//	op = "Sigmoid"
//
//	[[node]]
//	name = "root"
//	op = "Power"
//	exponent = 0.5
//	exponent_type = "f16"
type fileConfig struct {
	Workers int           `toml:"workers"`
	Search  design.Config `toml:"search"`
	Nodes   []nodeConfig  `toml:"node"`
}

// nodeConfig describes one graph node. Exponent and ExponentType feed Power
// nodes; Power, Scale and Shift are PowerIE attributes.
type nodeConfig struct {
	Name         string   `toml:"name"`
	Op           string   `toml:"op"`
	Exponent     float64  `toml:"exponent"`
	ExponentType string   `toml:"exponent_type"`
	Power        float64  `toml:"power"`
	Scale        *float64 `toml:"scale"`
	Shift        float64  `toml:"shift"`
}

// loadConfig parses a configuration file. A file without
// search.allowed_error gets design.DefaultAllowedError.
func loadConfig(path string) (*fileConfig, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	var fc fileConfig
	if err := tree.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if !tree.Has("search.allowed_error") {
		fc.Search.AllowedError = design.DefaultAllowedError
	}
	return &fc, nil
}

func (n nodeConfig) node() (transform.Node, error) {
	op, err := transform.ParseOp(n.Op)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", n.Name, err)
	}
	b := &transform.Basic{NodeName: n.Name, Kind: op}
	switch op {
	case transform.Power:
		et := transform.F64
		if n.ExponentType != "" {
			if et, err = transform.ParseElementType(n.ExponentType); err != nil {
				return nil, fmt.Errorf("node %q: %w", n.Name, err)
			}
		}
		if b.Exponent, err = transform.ScalarOf(et, n.Exponent); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Name, err)
		}
	case transform.PowerIE:
		b.Pow, b.Scale, b.Shift = n.Power, 1, n.Shift
		if n.Scale != nil {
			b.Scale = *n.Scale
		}
	}
	return b, nil
}

// searchOptions are the flags that tune a search. Flags the user sets
// override the configuration file.
type searchOptions struct {
	configFile string
	cfg        design.Config
}

func (o *searchOptions) install(flags *pflag.FlagSet) {
	flags.StringVarP(&o.configFile, "config", "c", "", "TOML configuration file")
	flags.Float64Var(&o.cfg.AllowedError, "max-error", design.DefaultAllowedError, "Maximum absolute error")
	flags.IntVar(&o.cfg.MaxSegments, "max-segments", 0, "Segment cap per (sub)domain, 0 for the per-kind default")
	flags.IntVar(&o.cfg.MaxIterations, "max-iterations", 0, "Pivot search iteration cap, 0 for the per-kind default")
	flags.Float64Var(&o.cfg.Threshold, "threshold", design.DefaultThreshold, "Relative equioscillation tolerance")
	flags.IntVar(&o.cfg.Samples, "samples", design.DefaultSamples, "Error evaluation sample count")
}

// config merges the configuration file and the flags.
func (o *searchOptions) config(flags *pflag.FlagSet) (design.Config, *fileConfig, error) {
	if o.configFile == "" {
		return o.cfg, nil, nil
	}
	fc, err := loadConfig(o.configFile)
	if err != nil {
		return design.Config{}, nil, err
	}
	cfg := fc.Search
	for name, dst := range map[string]func(){
		"max-error":      func() { cfg.AllowedError = o.cfg.AllowedError },
		"max-segments":   func() { cfg.MaxSegments = o.cfg.MaxSegments },
		"max-iterations": func() { cfg.MaxIterations = o.cfg.MaxIterations },
		"threshold":      func() { cfg.Threshold = o.cfg.Threshold },
		"samples":        func() { cfg.Samples = o.cfg.Samples },
	} {
		if flags.Changed(name) {
			dst()
		}
	}
	return cfg, fc, nil
}

// functionOptions select the function and its domain.
type functionOptions struct {
	exponent, scale, shift float64
	low, high              float64
	lower, upper           float64
}

func (o *functionOptions) install(flags *pflag.FlagSet) {
	flags.Float64Var(&o.exponent, "exponent", 1, "Power exponent")
	flags.Float64Var(&o.scale, "scale", 1, "Power input scale")
	flags.Float64Var(&o.shift, "shift", 0, "Power input shift")
	flags.Float64Var(&o.low, "low", -1, "Clamp lower limit")
	flags.Float64Var(&o.high, "high", 1, "Clamp upper limit")
	flags.Float64Var(&o.lower, "lower", 0, "Domain lower bound (default: per kind)")
	flags.Float64Var(&o.upper, "upper", 0, "Domain upper bound (default: per kind)")
}

// function builds the function named kind and its domain.
func (o *functionOptions) function(flags *pflag.FlagSet, kind string) (fn activation.Function, lower, upper float64, err error) {
	k, err := activation.ParseKind(kind)
	if err != nil {
		return fn, 0, 0, err
	}
	switch k {
	case activation.Power:
		fn = activation.NewPower(o.exponent, o.scale, o.shift)
	case activation.Clamp:
		fn = activation.NewClamp(o.low, o.high)
	default:
		fn = activation.New(k)
	}
	lower, upper = fn.Bounds()
	if flags.Changed("lower") {
		lower = o.lower
	}
	if flags.Changed("upper") {
		upper = o.upper
	}
	return fn, lower, upper, nil
}
