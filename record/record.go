// SPDX-License-Identifier: MIT

package record

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvaugment/tensor"
)

// BGR8Max is the upper bound of an 8-bit color channel.
const BGR8Max = 255.0

// Record is a typed array. Tensor returns the backing array, which must be
// treated as read-only.
type Record interface {
	Kind() Kind
	Tensor() *tensor.Dense
	Size() tensor.Size
	sealed()
}

// Color is an 8-bit BGR image.
type Color struct{ t *tensor.Dense }

// Label is a 2-D semantic label map with one class id per pixel.
type Label struct{ t *tensor.Dense }

// Normalized is a float array produced by normalization from a source kind.
type Normalized struct {
	t    *tensor.Dense
	from Kind
}

func (Color) Kind() Kind      { return KindColorBGR8 }
func (Label) Kind() Kind      { return KindSemantic2D }
func (Normalized) Kind() Kind { return KindNormalized }

func (c Color) Tensor() *tensor.Dense      { return c.t }
func (l Label) Tensor() *tensor.Dense      { return l.t }
func (n Normalized) Tensor() *tensor.Dense { return n.t }

func (c Color) Size() tensor.Size      { return c.t.Shape().Size() }
func (l Label) Size() tensor.Size      { return l.t.Shape().Size() }
func (n Normalized) Size() tensor.Size { return n.t.Shape().Size() }

// From returns the kind the array was normalized from.
func (n Normalized) From() Kind { return n.from }

func (Color) sealed()      {}
func (Label) sealed()      {}
func (Normalized) sealed() {}

// NewColor wraps d as a Color. d must have 3 channels and finite values in
// [0, 255]. The array is adopted, not copied.
func NewColor(d *tensor.Dense) (Color, error) {
	if err := tensor.ValidateNotNil(d); err != nil {
		return Color{}, fmt.Errorf("NewColor: %w", err)
	}
	if c := d.Shape().Channels; c != 3 {
		return Color{}, fmt.Errorf("NewColor: %d channels: %w", c, ErrShape)
	}
	for i, v := range d.Raw() {
		if math.IsNaN(v) || v < 0 || v > BGR8Max {
			return Color{}, fmt.Errorf("NewColor: element %d = %g: %w", i, v, ErrDomain)
		}
	}

	return Color{t: d}, nil
}

// NewLabel wraps d as a Label. d must have 1 channel and hold non-negative
// integral class ids.
func NewLabel(d *tensor.Dense) (Label, error) {
	if err := tensor.ValidateNotNil(d); err != nil {
		return Label{}, fmt.Errorf("NewLabel: %w", err)
	}
	if c := d.Shape().Channels; c != 1 {
		return Label{}, fmt.Errorf("NewLabel: %d channels: %w", c, ErrShape)
	}
	for i, v := range d.Raw() {
		if v < 0 || v != math.Trunc(v) || math.IsInf(v, 0) {
			return Label{}, fmt.Errorf("NewLabel: element %d = %g: %w", i, v, ErrDomain)
		}
	}

	return Label{t: d}, nil
}

// NewNormalized wraps d as a Normalized record derived from kind from.
func NewNormalized(d *tensor.Dense, from Kind) (Normalized, error) {
	if err := tensor.ValidateNotNil(d); err != nil {
		return Normalized{}, fmt.Errorf("NewNormalized: %w", err)
	}
	if err := tensor.ValidateFinite(d); err != nil {
		return Normalized{}, fmt.Errorf("NewNormalized: %w", ErrDomain)
	}

	return Normalized{t: d, from: from}, nil
}

// Rewrap builds a record of the same variant as like around d, carrying the
// type tag over to an array computed from like's.
func Rewrap(like Record, d *tensor.Dense) (Record, error) {
	switch r := like.(type) {
	case Color:
		return asRecord(NewColor(d))
	case Label:
		return asRecord(NewLabel(d))
	case Normalized:
		return asRecord(NewNormalized(d, r.from))
	default:
		return nil, fmt.Errorf("Rewrap %T: %w", like, ErrUnsupportedType)
	}
}

// asRecord keeps the interface nil when err is set.
func asRecord[R Record](r R, err error) (Record, error) {
	if err != nil {
		return nil, err
	}

	return r, nil
}
