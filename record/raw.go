// SPDX-License-Identifier: MIT

package record

import (
	"fmt"

	"github.com/katalvlaran/lvaugment/tensor"
)

// Raw is the form in which a sample provider hands over an array: flat data
// in row-major order, a storage type tag and the declared shape.
type Raw struct {
	Data  []float64
	Type  string
	Shape []int
}

// RawFromUint8 converts 8-bit storage into a Raw.
func RawFromUint8(data []byte, typ string, shape ...int) Raw {
	f := make([]float64, len(data))
	for i, b := range data {
		f[i] = float64(b)
	}

	return Raw{Data: f, Type: typ, Shape: append([]int(nil), shape...)}
}

// Decode validates r against its type tag and builds the matching record.
//
// Accepted shapes:
//   - bgr8:       (H, W, 3)
//   - semantic2d: (H, W) or (H, W, 1)
//
// Any other rank or channel count fails with ErrShape; a len(Data) that does
// not match Shape fails with ErrShape as well.
func Decode(r Raw) (Record, error) {
	kind, err := ParseKind(r.Type)
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}

	var shape tensor.Shape
	switch kind {
	case KindColorBGR8:
		if len(r.Shape) != 3 || r.Shape[2] != 3 {
			return nil, fmt.Errorf("Decode %s: shape %v: %w", kind, r.Shape, ErrShape)
		}
		shape = tensor.Shape{Height: r.Shape[0], Width: r.Shape[1], Channels: 3}
	case KindSemantic2D:
		switch {
		case len(r.Shape) == 2:
			shape = tensor.Shape{Height: r.Shape[0], Width: r.Shape[1], Channels: 1}
		case len(r.Shape) == 3 && r.Shape[2] == 1:
			shape = tensor.Shape{Height: r.Shape[0], Width: r.Shape[1], Channels: 1}
		default:
			return nil, fmt.Errorf("Decode %s: shape %v: %w", kind, r.Shape, ErrShape)
		}
	default:
		return nil, fmt.Errorf("Decode %s: not a storage type: %w", kind, ErrUnsupportedType)
	}

	d, err := tensor.FromSlice(shape, r.Data)
	if err != nil {
		return nil, fmt.Errorf("Decode %s: %v: %w", kind, err, ErrShape)
	}
	if kind == KindColorBGR8 {
		return asRecord(NewColor(d))
	}

	return asRecord(NewLabel(d))
}

// Encode is the inverse of Decode for Color and Label records.
func Encode(rec Record) Raw {
	s := rec.Tensor().Shape()
	shape := []int{s.Height, s.Width, s.Channels}
	if rec.Kind() == KindSemantic2D {
		shape = shape[:2]
	}

	return Raw{Data: rec.Tensor().Data(), Type: rec.Kind().String(), Shape: shape}
}
