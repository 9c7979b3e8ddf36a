// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/syncrand"
	"github.com/katalvlaran/lvaugment/tensor"
	"github.com/katalvlaran/lvaugment/valuerange"
)

// Normalization rescales a record from its raw intensity domain to the float
// convention of the consumer:
//
//	u = (x - low) / (high - low)           unit interval (default)
//	z = (u - mean[c]) / std[c]             with WithStandardize
//
// Out-of-range policy: strict by default. A value further than the
// configured tolerance outside source fails the sample with ErrRange; values
// inside the tolerance band are clamped. WithClamp switches to clamping onto [low, high] before scaling.
type Normalization struct {
	id        string
	accepts   record.Kind
	source    valuerange.Range
	tolerance float64
	clamp     bool
	mean, std []float64
}

// NewNormalization builds a normalizer for records of kind accepts, whose
// values live in source. Only KindColorBGR8 is normalizable; a point source
// range cannot be rescaled and is rejected with valuerange.ErrInvalidRange.
func NewNormalization(accepts record.Kind, source valuerange.Range, opts ...Option) (*Normalization, error) {
	if accepts != record.KindColorBGR8 {
		return nil, fmt.Errorf("NewNormalization: %s: %w", accepts, ErrUnsupportedType)
	}
	if source.IsPoint() {
		return nil, fmt.Errorf("NewNormalization: source %s: %w", source, valuerange.ErrInvalidRange)
	}
	o := gatherOptions(DefaultNormalizeID, opts...)
	if o.mean != nil && len(o.mean) != 3 {
		return nil, fmt.Errorf("NewNormalization: %d standardize channels for %s: %w", len(o.mean), accepts, ErrShape)
	}

	return &Normalization{
		id:        o.id,
		accepts:   accepts,
		source:    source,
		tolerance: o.tolerance,
		clamp:     o.clamp,
		mean:      o.mean,
		std:       o.std,
	}, nil
}

func (n *Normalization) ID() string               { return n.id }
func (n *Normalization) Class() Class             { return Normalizing }
func (n *Normalization) Accepts() record.Kind     { return n.accepts }
func (n *Normalization) Source() valuerange.Range { return n.source }
func (n *Normalization) String() string           { return fmt.Sprintf("%s(%s%s)", n.id, n.accepts, n.source) }

// Apply dispatches on the record variant.
func (n *Normalization) Apply(key syncrand.Key, in record.Record) (record.Record, error) {
	return dispatch(n, key, in)
}

// ApplyColor maps a color record onto the configured convention.
func (n *Normalization) ApplyColor(_ syncrand.Key, in record.Color) (record.Record, error) {
	src := in.Tensor()
	raw := src.Raw()
	c := src.Shape().Channels
	low, width := n.source.Low(), n.source.Width()

	out := make([]float64, len(raw))
	for i, v := range raw {
		if !n.clamp && !n.source.Contains(v, n.tolerance) {
			return nil, opErrorf(n.id, fmt.Errorf("element %d = %g outside %s: %w", i, v, n.source, ErrRange))
		}
		v = tensor.ClampValue(v, low, n.source.High())
		u := (v - low) / width
		if n.mean != nil {
			k := i % c
			u = (u - n.mean[k]) / n.std[k]
		}
		out[i] = u
	}
	d, err := tensor.FromSlice(src.Shape(), out)
	if err != nil {
		return nil, opErrorf(n.id, err)
	}
	rec, err := record.NewNormalized(d, n.accepts)
	if err != nil {
		return nil, opErrorf(n.id, err)
	}

	return rec, nil
}

// Inverse maps a normalized record back onto the source domain. Combined
// with ApplyColor it reconstructs in-range inputs within float tolerance.
func (n *Normalization) Inverse(in record.Normalized) (*tensor.Dense, error) {
	if in.From() != n.accepts {
		return nil, opErrorf(n.id, fmt.Errorf("inverse of %s: %w", in.From(), ErrUnsupportedType))
	}
	src := in.Tensor()
	c := src.Shape().Channels
	if n.mean != nil && c != len(n.mean) {
		return nil, opErrorf(n.id, fmt.Errorf("%d channels: %w", c, ErrShape))
	}
	low, width := n.source.Low(), n.source.Width()
	raw := src.Raw()
	out := make([]float64, len(raw))
	for i, u := range raw {
		if n.mean != nil {
			k := i % c
			u = u*n.std[k] + n.mean[k]
		}
		out[i] = low + u*width
	}
	d, err := tensor.FromSlice(src.Shape(), out)
	if err != nil {
		return nil, opErrorf(n.id, err)
	}

	return d, nil
}
