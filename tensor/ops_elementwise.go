// SPDX-License-Identifier: MIT
// Package: tensor
//
// Purpose:
//   - Element-wise kernels shared by photometric operators and normalization.
//   - Every kernel allocates its output; the input array is left untouched.
//
// Determinism & Performance:
//   - Fixed flat loop order 0..n-1 over the row-major buffer.

package tensor

import "math"

// Map returns a new Dense with out[i] = fn(in[i]).
// Time: O(H*W*C). Space: O(H*W*C).
func Map(d *Dense, fn func(float64) float64) (*Dense, error) {
	if err := ValidateNotNil(d); err != nil {
		return nil, tensorErrorf("Map", err)
	}
	out := &Dense{shape: d.shape, data: make([]float64, len(d.data))}
	for i, v := range d.data {
		out.data[i] = fn(v)
	}

	return out, nil
}

// MapPixels returns a new Dense where each channel vector is rewritten by fn.
// fn receives the source pixel and a destination slice of equal length.
func MapPixels(d *Dense, fn func(src, dst []float64)) (*Dense, error) {
	if err := ValidateNotNil(d); err != nil {
		return nil, tensorErrorf("MapPixels", err)
	}
	c := d.shape.Channels
	out := &Dense{shape: d.shape, data: make([]float64, len(d.data))}
	for base := 0; base < len(d.data); base += c {
		fn(d.data[base:base+c], out.data[base:base+c])
	}

	return out, nil
}

// Clamp returns a copy with every element limited to [lo, hi].
func Clamp(d *Dense, lo, hi float64) (*Dense, error) {
	out, err := Map(d, func(v float64) float64 { return ClampValue(v, lo, hi) })
	if err != nil {
		return nil, tensorErrorf("Clamp", err)
	}

	return out, nil
}

// RoundClamp rounds every element to the nearest integer and clamps to [lo, hi].
// Used to keep 8-bit color records integral after floating point arithmetic.
func RoundClamp(d *Dense, lo, hi float64) (*Dense, error) {
	out, err := Map(d, func(v float64) float64 { return ClampValue(math.Round(v), lo, hi) })
	if err != nil {
		return nil, tensorErrorf("RoundClamp", err)
	}

	return out, nil
}

// MinMax returns the smallest and largest element of d.
func MinMax(d *Dense) (lo, hi float64, err error) {
	if err = ValidateNotNil(d); err != nil {
		return 0, 0, tensorErrorf("MinMax", err)
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range d.data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return lo, hi, nil
}

// ClampValue limits v to [lo, hi]. NaN maps to lo.
func ClampValue(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
