// SPDX-License-Identifier: MIT

// Package valuerange provides the immutable numeric interval used to bound
// random factors and to describe intensity domains.
package valuerange

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/lvaugment/syncrand"
)

// ErrInvalidRange is returned when low > high or a bound is not finite.
var ErrInvalidRange = errors.New("valuerange: invalid range")

// Range is a closed interval [low, high]. The zero value is the point [0, 0].
type Range struct {
	low, high float64
}

// New validates and returns [low, high].
func New(low, high float64) (Range, error) {
	if math.IsNaN(low) || math.IsNaN(high) || math.IsInf(low, 0) || math.IsInf(high, 0) {
		return Range{}, fmt.Errorf("New(%g, %g): non-finite bound: %w", low, high, ErrInvalidRange)
	}
	if low > high {
		return Range{}, fmt.Errorf("New(%g, %g): low > high: %w", low, high, ErrInvalidRange)
	}

	return Range{low: low, high: high}, nil
}

// MustNew is New for literal ranges; it panics on invalid bounds.
func MustNew(low, high float64) Range {
	r, err := New(low, high)
	if err != nil {
		panic(err)
	}

	return r
}

// Point returns the degenerate range [x, x].
func Point(x float64) Range { return MustNew(x, x) }

func (r Range) Low() float64   { return r.low }
func (r Range) High() float64  { return r.high }
func (r Range) Width() float64 { return r.high - r.low }

// IsPoint reports whether low == high.
func (r Range) IsPoint() bool { return r.low == r.high }

// Contains reports whether x lies within [low-tol, high+tol].
func (r Range) Contains(x, tol float64) bool {
	return x >= r.low-tol && x <= r.high+tol
}

// At maps u ∈ [0, 1] linearly onto the range. A point range returns low for
// every u, so Range(x, x) always yields exactly x.
func (r Range) At(u float64) float64 {
	if r.low == r.high {
		return r.low
	}

	return r.low + u*(r.high-r.low)
}

// Sample draws uniformly from the range using rng. A nil rng uses the
// process-wide generator from math/rand/v2.
func (r Range) Sample(rng *rand.Rand) float64 {
	if rng == nil {
		return r.At(rand.Float64())
	}

	return r.At(rng.Float64())
}

// SampleKey draws the value bound to (key, operatorID) from src.
// Repeated calls with the same arguments return the same value.
func (r Range) SampleKey(src syncrand.Source, key syncrand.Key, operatorID string) float64 {
	return r.At(src.Float64(key, operatorID, 0))
}

// String implements fmt.Stringer as "[low, high]".
func (r Range) String() string { return fmt.Sprintf("[%g, %g]", r.low, r.high) }
