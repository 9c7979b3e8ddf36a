// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/syncrand"
	"github.com/katalvlaran/lvaugment/tensor"
)

// Flip streams; one independent decision per axis.
const (
	flipStreamHorizontal uint32 = 0
	flipStreamVertical   uint32 = 1
)

// FlipDecision is the per-sample outcome of Flip.
type FlipDecision struct {
	Horizontal bool
	Vertical   bool
}

// Flip mirrors a record along each axis with a configured probability.
// Every invocation sharing a key gets the same decision, so an image and its
// label are always mirrored together.
type Flip struct {
	id           string
	hRate, vRate float64
	src          syncrand.Source
}

// NewFlip validates both rates lie in [0, 1].
func NewFlip(horizontalRate, verticalRate float64, opts ...Option) (*Flip, error) {
	for _, r := range []float64{horizontalRate, verticalRate} {
		if math.IsNaN(r) || r < 0 || r > 1 {
			return nil, fmt.Errorf("NewFlip(%g, %g): %w", horizontalRate, verticalRate, ErrInvalidRate)
		}
	}
	o := gatherOptions(DefaultFlipID, opts...)

	return &Flip{id: o.id, hRate: horizontalRate, vRate: verticalRate, src: o.src}, nil
}

func (f *Flip) ID() string   { return f.id }
func (f *Flip) Class() Class { return Geometric }

// Rates returns the configured (horizontal, vertical) probabilities.
func (f *Flip) Rates() (horizontal, vertical float64) { return f.hRate, f.vRate }

func (f *Flip) String() string { return fmt.Sprintf("%s(h=%g,v=%g)", f.id, f.hRate, f.vRate) }

// Decide returns the decision bound to key. It is a pure function of the
// source seed, key and operator id.
func (f *Flip) Decide(key syncrand.Key) FlipDecision {
	return FlipDecision{
		Horizontal: f.src.Bernoulli(key, f.id, flipStreamHorizontal, f.hRate),
		Vertical:   f.src.Bernoulli(key, f.id, flipStreamVertical, f.vRate),
	}
}

func (f *Flip) mirror(key syncrand.Key, d *tensor.Dense) (*tensor.Dense, error) {
	dec := f.Decide(key)
	out, err := tensor.Mirror(d, dec.Horizontal, dec.Vertical)
	if err != nil {
		return nil, opErrorf(f.id, err)
	}

	return out, nil
}

// Apply dispatches on the record variant.
func (f *Flip) Apply(key syncrand.Key, in record.Record) (record.Record, error) {
	return dispatch(f, key, in)
}

func (f *Flip) ApplyColor(key syncrand.Key, in record.Color) (record.Record, error) {
	out, err := f.mirror(key, in.Tensor())
	if err != nil {
		return nil, err
	}

	return asRecord(record.NewColor(out))
}

func (f *Flip) ApplyLabel(key syncrand.Key, in record.Label) (record.Label, error) {
	out, err := f.mirror(key, in.Tensor())
	if err != nil {
		return record.Label{}, err
	}

	return record.NewLabel(out)
}

func (f *Flip) ApplyNormalized(key syncrand.Key, in record.Normalized) (record.Normalized, error) {
	out, err := f.mirror(key, in.Tensor())
	if err != nil {
		return record.Normalized{}, err
	}

	return record.NewNormalized(out, in.From())
}
