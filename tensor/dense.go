// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"strings"
)

// Size is a spatial extent (rows × columns) used by resize and crop.
type Size struct {
	Height int // rows
	Width  int // columns
}

// Valid reports whether both extents are positive.
func (s Size) Valid() bool { return s.Height > 0 && s.Width > 0 }

// String implements fmt.Stringer as "HxW".
func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Height, s.Width) }

// Shape is the full H×W×C extent of a Dense array.
type Shape struct {
	Height   int
	Width    int
	Channels int
}

// Size drops the channel extent.
func (s Shape) Size() Size { return Size{Height: s.Height, Width: s.Width} }

// Len returns the number of elements H*W*C.
func (s Shape) Len() int { return s.Height * s.Width * s.Channels }

// String implements fmt.Stringer as "HxWxC".
func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Height, s.Width, s.Channels)
}

// Dense is a row-major H×W×C array of float64 values.
// data holds H*W*C elements; a Dense is never resized after creation.
type Dense struct {
	shape Shape
	data  []float64 // flat backing storage, length == shape.Len()
}

// NewDense creates a zero-filled Dense of the given shape.
// Stage 1 (Validate): every extent must be > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Complexity: O(H*W*C) time and memory.
func NewDense(shape Shape) (*Dense, error) {
	if err := ValidateShape(shape); err != nil {
		return nil, tensorErrorf("NewDense", err)
	}

	return &Dense{shape: shape, data: make([]float64, shape.Len())}, nil
}

// FromSlice creates a Dense of the given shape holding a copy of data.
// Returns ErrDimensionMismatch when len(data) != shape.Len().
func FromSlice(shape Shape, data []float64) (*Dense, error) {
	if err := ValidateShape(shape); err != nil {
		return nil, tensorErrorf("FromSlice", err)
	}
	if len(data) != shape.Len() {
		return nil, tensorErrorf("FromSlice", fmt.Errorf("len %d for shape %s: %w", len(data), shape, ErrDimensionMismatch))
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dense{shape: shape, data: buf}, nil
}

// Shape returns the array extent.
// Complexity: O(1).
func (d *Dense) Shape() Shape { return d.shape }

// offset computes the flat index for (y, x, c) or returns ErrOutOfRange.
func (d *Dense) offset(method string, y, x, c int) (int, error) {
	if y < 0 || y >= d.shape.Height || x < 0 || x >= d.shape.Width || c < 0 || c >= d.shape.Channels {
		return 0, fmt.Errorf("Dense.%s(%d,%d,%d): %w", method, y, x, c, ErrOutOfRange)
	}

	return (y*d.shape.Width+x)*d.shape.Channels + c, nil
}

// At retrieves the element at (y, x, c).
func (d *Dense) At(y, x, c int) (float64, error) {
	idx, err := d.offset("At", y, x, c)
	if err != nil {
		return 0, err
	}

	return d.data[idx], nil
}

// Set assigns v at (y, x, c). Only code that owns a freshly allocated
// Dense should call Set; published arrays are treated as immutable.
func (d *Dense) Set(y, x, c int, v float64) error {
	idx, err := d.offset("Set", y, x, c)
	if err != nil {
		return err
	}
	d.data[idx] = v

	return nil
}

// Data returns a copy of the flat row-major buffer.
func (d *Dense) Data() []float64 {
	out := make([]float64, len(d.data))
	copy(out, d.data)

	return out
}

// Raw exposes the backing buffer without copying. Callers must not write to it.
func (d *Dense) Raw() []float64 { return d.data }

// Pixel returns a copy of the channel vector at (y, x).
func (d *Dense) Pixel(y, x int) ([]float64, error) {
	idx, err := d.offset("Pixel", y, x, 0)
	if err != nil {
		return nil, err
	}
	out := make([]float64, d.shape.Channels)
	copy(out, d.data[idx:idx+d.shape.Channels])

	return out, nil
}

// Clone returns a deep copy.
// Complexity: O(H*W*C).
func (d *Dense) Clone() *Dense {
	buf := make([]float64, len(d.data))
	copy(buf, d.data)

	return &Dense{shape: d.shape, data: buf}
}

// Equal reports whether a and b have the same shape and bit-identical values.
func Equal(a, b *Dense) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.shape != b.shape {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer; one line per row, channels grouped in parentheses.
func (d *Dense) String() string {
	var sb strings.Builder
	c := d.shape.Channels
	for y := 0; y < d.shape.Height; y++ {
		sb.WriteString("[")
		for x := 0; x < d.shape.Width; x++ {
			base := (y*d.shape.Width + x) * c
			if c == 1 {
				fmt.Fprintf(&sb, "%g", d.data[base])
			} else {
				sb.WriteString("(")
				for k := 0; k < c; k++ {
					if k > 0 {
						sb.WriteString(" ")
					}
					fmt.Fprintf(&sb, "%g", d.data[base+k])
				}
				sb.WriteString(")")
			}
			if x < d.shape.Width-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
