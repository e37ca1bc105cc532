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

package design

import (
	"fmt"
	"math"

	"github.com/containerd/errdefs"

	"github.com/ajroetker/go-pwl/pwl/activation"
)

const (
	// DefaultThreshold is the relative equioscillation tolerance.
	DefaultThreshold = 0.1

	// DefaultSamples is the number of points MeasureError evaluates.
	DefaultSamples = 500

	// DefaultAllowedError is the absolute error budget used when a caller
	// has no preference.
	DefaultAllowedError = 0.001
)

// Config controls a search. Zero MaxSegments, MaxIterations, Threshold and
// Samples take the per-kind defaults. AllowedError is used as given: a zero
// budget is legal and can only be met by an exact fit.
type Config struct {
	MaxSegments   int     `toml:"max_segments" json:"max_segments"`
	MaxIterations int     `toml:"max_iterations" json:"max_iterations"`
	Threshold     float64 `toml:"threshold" json:"threshold"`
	AllowedError  float64 `toml:"allowed_error" json:"allowed_error"`
	Samples       int     `toml:"samples" json:"samples"`
}

// DefaultConfig returns the defaults for fn.
func DefaultConfig(fn activation.Function) Config {
	return Config{
		MaxSegments:   fn.MaxSegments(),
		MaxIterations: fn.MaxIterations(),
		Threshold:     DefaultThreshold,
		AllowedError:  DefaultAllowedError,
		Samples:       DefaultSamples,
	}
}

// Resolve fills zero fields with the defaults for fn.
func (c Config) Resolve(fn activation.Function) Config {
	if c.MaxSegments == 0 {
		c.MaxSegments = fn.MaxSegments()
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = fn.MaxIterations()
	}
	if c.Threshold == 0 {
		c.Threshold = DefaultThreshold
	}
	if c.Samples == 0 {
		c.Samples = DefaultSamples
	}
	return c
}

// Validate rejects configurations the search cannot run with.
func (c Config) Validate() error {
	switch {
	case c.MaxSegments < 1:
		return fmt.Errorf("design: max segments must be positive, got %d: %w", c.MaxSegments, errdefs.ErrInvalidArgument)
	case c.MaxIterations < 1:
		return fmt.Errorf("design: max iterations must be positive, got %d: %w", c.MaxIterations, errdefs.ErrInvalidArgument)
	case !(c.Threshold > 0) || math.IsInf(c.Threshold, 0):
		return fmt.Errorf("design: threshold must be positive and finite, got %g: %w", c.Threshold, errdefs.ErrInvalidArgument)
	case !(c.AllowedError >= 0):
		return fmt.Errorf("design: allowed error must be non-negative, got %g: %w", c.AllowedError, errdefs.ErrInvalidArgument)
	case c.Samples < 1:
		return fmt.Errorf("design: samples must be positive, got %d: %w", c.Samples, errdefs.ErrInvalidArgument)
	}
	return nil
}
