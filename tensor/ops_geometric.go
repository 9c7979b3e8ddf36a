// SPDX-License-Identifier: MIT
// Package: tensor
//
// Purpose:
//   - Spatial kernels (resample, crop, mirror) shared by geometric operators.
//   - Channels are carried through untouched; only (y, x) addressing changes.
//
// Determinism & Performance:
//   - Deterministic y→x→c loops; source coordinates are precomputed per axis
//     so the inner loop does no division.

package tensor

import (
	"fmt"
	"math"
)

// ResizeNearest resamples d to size using nearest-neighbour lookup
// (src = floor(dst * in/out), clamped). The output contains only values
// already present in d.
// Time: O(h*w*C).
func ResizeNearest(d *Dense, size Size) (*Dense, error) {
	if err := ValidateNotNil(d); err != nil {
		return nil, tensorErrorf("ResizeNearest", err)
	}
	if err := ValidateSize(size); err != nil {
		return nil, tensorErrorf("ResizeNearest", err)
	}
	in := d.shape
	c := in.Channels
	out := &Dense{
		shape: Shape{Height: size.Height, Width: size.Width, Channels: c},
		data:  make([]float64, size.Height*size.Width*c),
	}

	xs := nearestIndex(in.Width, size.Width)
	ys := nearestIndex(in.Height, size.Height)
	for y, sy := range ys {
		for x, sx := range xs {
			src := (sy*in.Width + sx) * c
			dst := (y*size.Width + x) * c
			copy(out.data[dst:dst+c], d.data[src:src+c])
		}
	}

	return out, nil
}

// nearestIndex maps every output coordinate on one axis to its source index.
func nearestIndex(in, out int) []int {
	scale := float64(in) / float64(out)
	idx := make([]int, out)
	for i := range idx {
		s := int(math.Floor(float64(i) * scale))
		if s > in-1 {
			s = in - 1
		}
		idx[i] = s
	}

	return idx
}

// axisWeight is one precomputed bilinear tap pair on a single axis.
type axisWeight struct {
	i0, i1 int     // source indices
	w      float64 // weight of i1; i0 gets 1-w
}

// linearTaps computes half-pixel-centred bilinear taps for one axis,
// clamping at the borders.
func linearTaps(in, out int) []axisWeight {
	scale := float64(in) / float64(out)
	taps := make([]axisWeight, out)
	for i := range taps {
		f := (float64(i)+0.5)*scale - 0.5
		if f < 0 {
			f = 0
		}
		i0 := int(math.Floor(f))
		w := f - float64(i0)
		if i0 >= in-1 {
			i0, w = in-1, 0
		}
		i1 := i0 + 1
		if i1 > in-1 {
			i1 = in - 1
		}
		taps[i] = axisWeight{i0: i0, i1: i1, w: w}
	}

	return taps
}

// ResizeLinear resamples d to size with bilinear interpolation.
// Time: O(h*w*C).
func ResizeLinear(d *Dense, size Size) (*Dense, error) {
	if err := ValidateNotNil(d); err != nil {
		return nil, tensorErrorf("ResizeLinear", err)
	}
	if err := ValidateSize(size); err != nil {
		return nil, tensorErrorf("ResizeLinear", err)
	}
	in := d.shape
	c := in.Channels
	out := &Dense{
		shape: Shape{Height: size.Height, Width: size.Width, Channels: c},
		data:  make([]float64, size.Height*size.Width*c),
	}

	xt := linearTaps(in.Width, size.Width)
	yt := linearTaps(in.Height, size.Height)
	for y, ty := range yt {
		row0 := ty.i0 * in.Width
		row1 := ty.i1 * in.Width
		for x, tx := range xt {
			p00 := (row0 + tx.i0) * c
			p01 := (row0 + tx.i1) * c
			p10 := (row1 + tx.i0) * c
			p11 := (row1 + tx.i1) * c
			dst := (y*size.Width + x) * c
			for k := 0; k < c; k++ {
				top := d.data[p00+k]*(1-tx.w) + d.data[p01+k]*tx.w
				bot := d.data[p10+k]*(1-tx.w) + d.data[p11+k]*tx.w
				out.data[dst+k] = top*(1-ty.w) + bot*ty.w
			}
		}
	}

	return out, nil
}

// Crop extracts the size-sized window whose top-left corner is (top, left).
// Returns ErrOutOfRange when the window does not fit inside d.
func Crop(d *Dense, top, left int, size Size) (*Dense, error) {
	if err := ValidateNotNil(d); err != nil {
		return nil, tensorErrorf("Crop", err)
	}
	if err := ValidateSize(size); err != nil {
		return nil, tensorErrorf("Crop", err)
	}
	in := d.shape
	if top < 0 || left < 0 || top+size.Height > in.Height || left+size.Width > in.Width {
		return nil, tensorErrorf("Crop", fmt.Errorf("window %s at (%d,%d) in %s: %w", size, top, left, in, ErrOutOfRange))
	}
	c := in.Channels
	out := &Dense{
		shape: Shape{Height: size.Height, Width: size.Width, Channels: c},
		data:  make([]float64, size.Height*size.Width*c),
	}
	rowLen := size.Width * c
	for y := 0; y < size.Height; y++ {
		src := ((top+y)*in.Width + left) * c
		copy(out.data[y*rowLen:(y+1)*rowLen], d.data[src:src+rowLen])
	}

	return out, nil
}

// Mirror returns d flipped along the requested axes. With both flags false
// it returns a plain copy.
func Mirror(d *Dense, horizontal, vertical bool) (*Dense, error) {
	if err := ValidateNotNil(d); err != nil {
		return nil, tensorErrorf("Mirror", err)
	}
	s := d.shape
	c := s.Channels
	out := &Dense{shape: s, data: make([]float64, len(d.data))}
	for y := 0; y < s.Height; y++ {
		sy := y
		if vertical {
			sy = s.Height - 1 - y
		}
		for x := 0; x < s.Width; x++ {
			sx := x
			if horizontal {
				sx = s.Width - 1 - x
			}
			src := (sy*s.Width + sx) * c
			dst := (y*s.Width + x) * c
			copy(out.data[dst:dst+c], d.data[src:src+c])
		}
	}

	return out, nil
}
