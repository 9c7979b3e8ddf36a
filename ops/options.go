// SPDX-License-Identifier: MIT

// Package ops: functional options shared by all operator constructors.
// Options not meaningful for an operator are ignored by it.
package ops

import (
	"math"

	"github.com/katalvlaran/lvaugment/syncrand"
)

// Default operator ids. They double as the syncrand operator id, so the
// defaults already give every photometric operator an independent stream.
const (
	DefaultResizeID     = "resize"
	DefaultCropID       = "crop"
	DefaultFlipID       = "flip"
	DefaultBrightnessID = "brightness"
	DefaultContrastID   = "contrast"
	DefaultSaturationID = "saturation"
	DefaultHueID        = "hue"
	DefaultNormalizeID  = "normalize"
)

// DefaultTolerance is the strict-mode slack of Normalization.
const DefaultTolerance = 0.0

const (
	panicEmptyID          = "ops: WithID: id must not be empty"
	panicToleranceInvalid = "ops: WithTolerance: tolerance must be finite, non-negative"
	panicStandardize      = "ops: WithStandardize: mean/std must have equal non-zero length and std > 0"
)

// Option configures an operator at construction time.
type Option func(*Options)

// Options holds the resolved configuration. Fields are unexported; use the
// WithX constructors.
type Options struct {
	id  string
	src syncrand.Source

	// normalization policy
	tolerance float64
	clamp     bool
	mean, std []float64
}

// WithID overrides the operator id. Use it when two instances of the same
// operator must draw independently, or to couple operators across chains
// under a custom name. Panics on an empty id.
func WithID(id string) Option {
	if id == "" {
		panic(panicEmptyID)
	}

	return func(o *Options) { o.id = id }
}

// WithSource sets the seed for key-derived draws. Coupled operators in
// different chains must share the source.
func WithSource(src syncrand.Source) Option {
	return func(o *Options) { o.src = src }
}

// WithTolerance sets how far outside the source range a value may fall
// before strict normalization fails. Panics on negative or non-finite eps.
func WithTolerance(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tolerance = eps }
}

// WithClamp switches normalization from strict (ErrRange) to clamping
// out-of-range values onto the source bounds.
func WithClamp() Option {
	return func(o *Options) { o.clamp = true }
}

// WithStandardize applies (u - mean[c]) / std[c] per channel after unit
// scaling. Panics on mismatched lengths or non-positive std.
func WithStandardize(mean, std []float64) Option {
	if len(mean) == 0 || len(mean) != len(std) {
		panic(panicStandardize)
	}
	for _, s := range std {
		if !(s > 0) || math.IsInf(s, 0) {
			panic(panicStandardize)
		}
	}
	m := append([]float64(nil), mean...)
	s := append([]float64(nil), std...)

	return func(o *Options) { o.mean, o.std = m, s }
}

// gatherOptions resolves user options over documented defaults.
func gatherOptions(defaultID string, user ...Option) Options {
	o := Options{id: defaultID, tolerance: DefaultTolerance}
	for _, set := range user {
		set(&o) // last-writer-wins
	}

	return o
}
