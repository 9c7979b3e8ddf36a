// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/syncrand"
	"github.com/katalvlaran/lvaugment/tensor"
)

// CropMode selects how the crop window is placed.
type CropMode int

const (
	// CropCenter centres the window; deterministic.
	CropCenter CropMode = iota + 1
	// CropRandom draws the offset from the synchronization key.
	CropRandom
	// CropFixed uses a configured (top, left) corner.
	CropFixed
)

func (m CropMode) String() string {
	switch m {
	case CropCenter:
		return "center"
	case CropRandom:
		return "random"
	case CropFixed:
		return "fixed"
	default:
		return fmt.Sprintf("crop(%d)", int(m))
	}
}

// ParseCropMode accepts "center", "random" or "fixed".
func ParseCropMode(s string) (CropMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center":
		return CropCenter, nil
	case "random":
		return CropRandom, nil
	case "fixed":
		return CropFixed, nil
	default:
		return 0, fmt.Errorf("ParseCropMode(%q): %w", s, ErrInvalidCrop)
	}
}

// CropPolicy is the region-selection rule of Crop.
type CropPolicy struct {
	Mode CropMode
	Top  int // CropFixed only
	Left int // CropFixed only
}

// Crop extracts a fixed-size window.
type Crop struct {
	id     string
	size   tensor.Size
	policy CropPolicy
	src    syncrand.Source
}

// NewCrop validates the window size and policy.
func NewCrop(size tensor.Size, policy CropPolicy, opts ...Option) (*Crop, error) {
	if err := tensor.ValidateSize(size); err != nil {
		return nil, fmt.Errorf("NewCrop: %w", err)
	}
	switch policy.Mode {
	case CropCenter, CropRandom:
	case CropFixed:
		if policy.Top < 0 || policy.Left < 0 {
			return nil, fmt.Errorf("NewCrop: offset (%d,%d): %w", policy.Top, policy.Left, ErrInvalidCrop)
		}
	default:
		return nil, fmt.Errorf("NewCrop: %s: %w", policy.Mode, ErrInvalidCrop)
	}
	o := gatherOptions(DefaultCropID, opts...)

	return &Crop{id: o.id, size: size, policy: policy, src: o.src}, nil
}

func (c *Crop) ID() string         { return c.id }
func (c *Crop) Class() Class       { return Geometric }
func (c *Crop) Size() tensor.Size  { return c.size }
func (c *Crop) Policy() CropPolicy { return c.policy }
func (c *Crop) String() string     { return fmt.Sprintf("%s(%s,%s)", c.id, c.size, c.policy.Mode) }

// Offset returns the top-left corner chosen for an input of size in under key.
// Paired modalities of equal size get equal offsets for equal keys.
func (c *Crop) Offset(key syncrand.Key, in tensor.Size) (top, left int, err error) {
	if c.size.Height > in.Height || c.size.Width > in.Width {
		return 0, 0, opErrorf(c.id, fmt.Errorf("window %s larger than input %s: %w", c.size, in, ErrShape))
	}
	spanY := in.Height - c.size.Height
	spanX := in.Width - c.size.Width
	switch c.policy.Mode {
	case CropCenter:
		return spanY / 2, spanX / 2, nil
	case CropRandom:
		return c.src.Intn(key, c.id, 0, spanY+1), c.src.Intn(key, c.id, 1, spanX+1), nil
	default:
		if c.policy.Top > spanY || c.policy.Left > spanX {
			return 0, 0, opErrorf(c.id, fmt.Errorf("offset (%d,%d) outside %s: %w", c.policy.Top, c.policy.Left, in, ErrShape))
		}
		return c.policy.Top, c.policy.Left, nil
	}
}

func (c *Crop) cut(key syncrand.Key, d *tensor.Dense) (*tensor.Dense, error) {
	top, left, err := c.Offset(key, d.Shape().Size())
	if err != nil {
		return nil, err
	}
	out, err := tensor.Crop(d, top, left, c.size)
	if err != nil {
		return nil, opErrorf(c.id, err)
	}

	return out, nil
}

// Apply dispatches on the record variant.
func (c *Crop) Apply(key syncrand.Key, in record.Record) (record.Record, error) {
	return dispatch(c, key, in)
}

func (c *Crop) ApplyColor(key syncrand.Key, in record.Color) (record.Record, error) {
	out, err := c.cut(key, in.Tensor())
	if err != nil {
		return nil, err
	}

	return asRecord(record.NewColor(out))
}

func (c *Crop) ApplyLabel(key syncrand.Key, in record.Label) (record.Label, error) {
	out, err := c.cut(key, in.Tensor())
	if err != nil {
		return record.Label{}, err
	}

	return record.NewLabel(out)
}

func (c *Crop) ApplyNormalized(key syncrand.Key, in record.Normalized) (record.Normalized, error) {
	out, err := c.cut(key, in.Tensor())
	if err != nil {
		return record.Normalized{}, err
	}

	return record.NewNormalized(out, in.From())
}
