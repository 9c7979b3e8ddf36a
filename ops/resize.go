// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/syncrand"
	"github.com/katalvlaran/lvaugment/tensor"
)

// Interpolation selects the resampling kernel of Resize.
type Interpolation int

const (
	// Linear is bilinear interpolation, for continuous-valued modalities.
	Linear Interpolation = iota + 1
	// Nearest is nearest-neighbour lookup, for label/category modalities.
	Nearest
)

func (m Interpolation) String() string {
	switch m {
	case Linear:
		return "linear"
	case Nearest:
		return "nearest"
	default:
		return fmt.Sprintf("interpolation(%d)", int(m))
	}
}

// ParseInterpolation accepts "linear" or "nearest" (case-insensitive).
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "nearest":
		return Nearest, nil
	default:
		return 0, fmt.Errorf("ParseInterpolation(%q): %w", s, ErrInvalidInterpolation)
	}
}

// Resize maps a record onto a fixed spatial size.
type Resize struct {
	id   string
	size tensor.Size
	mode Interpolation
}

// NewResize validates size and mode.
func NewResize(size tensor.Size, mode Interpolation, opts ...Option) (*Resize, error) {
	if err := tensor.ValidateSize(size); err != nil {
		return nil, fmt.Errorf("NewResize: %w", err)
	}
	if mode != Linear && mode != Nearest {
		return nil, fmt.Errorf("NewResize: %s: %w", mode, ErrInvalidInterpolation)
	}
	o := gatherOptions(DefaultResizeID, opts...)

	return &Resize{id: o.id, size: size, mode: mode}, nil
}

func (r *Resize) ID() string          { return r.id }
func (r *Resize) Class() Class        { return Geometric }
func (r *Resize) Size() tensor.Size   { return r.size }
func (r *Resize) Mode() Interpolation { return r.mode }
func (r *Resize) String() string      { return fmt.Sprintf("%s(%s,%s)", r.id, r.size, r.mode) }

func (r *Resize) resample(d *tensor.Dense) (*tensor.Dense, error) {
	if r.mode == Nearest {
		return tensor.ResizeNearest(d, r.size)
	}

	return tensor.ResizeLinear(d, r.size)
}

// Apply dispatches on the record variant.
func (r *Resize) Apply(key syncrand.Key, in record.Record) (record.Record, error) {
	return dispatch(r, key, in)
}

// ApplyColor resamples and, under Linear, rounds back onto the 8-bit grid.
func (r *Resize) ApplyColor(_ syncrand.Key, in record.Color) (record.Record, error) {
	out, err := r.resample(in.Tensor())
	if err != nil {
		return nil, opErrorf(r.id, err)
	}
	if r.mode == Linear {
		if out, err = tensor.RoundClamp(out, 0, record.BGR8Max); err != nil {
			return nil, opErrorf(r.id, err)
		}
	}
	c, err := record.NewColor(out)
	if err != nil {
		return nil, opErrorf(r.id, err)
	}

	return c, nil
}

// ApplyLabel resamples a label map. Only Nearest is accepted: Linear would
// blend class ids into values that name no class.
func (r *Resize) ApplyLabel(_ syncrand.Key, in record.Label) (record.Label, error) {
	if r.mode != Nearest {
		return record.Label{}, opErrorf(r.id, fmt.Errorf("%s interpolation on %s: %w", r.mode, in.Kind(), ErrUnsupportedType))
	}
	out, err := tensor.ResizeNearest(in.Tensor(), r.size)
	if err != nil {
		return record.Label{}, opErrorf(r.id, err)
	}
	l, err := record.NewLabel(out)
	if err != nil {
		return record.Label{}, opErrorf(r.id, err)
	}

	return l, nil
}

// ApplyNormalized resamples float data without rounding.
func (r *Resize) ApplyNormalized(_ syncrand.Key, in record.Normalized) (record.Normalized, error) {
	out, err := r.resample(in.Tensor())
	if err != nil {
		return record.Normalized{}, opErrorf(r.id, err)
	}
	n, err := record.NewNormalized(out, in.From())
	if err != nil {
		return record.Normalized{}, opErrorf(r.id, err)
	}

	return n, nil
}
