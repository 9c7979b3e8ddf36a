// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/syncrand"
	"github.com/katalvlaran/lvaugment/tensor"
	"github.com/katalvlaran/lvaugment/valuerange"
)

// jitter is the shared body of the photometric operators: one factor per
// (key, id), a pixel kernel, and a round+clamp back onto the 8-bit grid.
type jitter struct {
	id      string
	factors valuerange.Range
	src     syncrand.Source
	kernel  func(d *tensor.Dense, f float64) (*tensor.Dense, error)
}

func newJitter(defaultID string, factors valuerange.Range, kernel func(*tensor.Dense, float64) (*tensor.Dense, error), opts []Option) jitter {
	o := gatherOptions(defaultID, opts...)

	return jitter{id: o.id, factors: factors, src: o.src, kernel: kernel}
}

func (j *jitter) ID() string              { return j.id }
func (j *jitter) Class() Class            { return Photometric }
func (j *jitter) Range() valuerange.Range { return j.factors }
func (j *jitter) String() string          { return fmt.Sprintf("%s%s", j.id, j.factors) }

// Factor returns the factor drawn for key.
func (j *jitter) Factor(key syncrand.Key) float64 {
	return j.factors.SampleKey(j.src, key, j.id)
}

func (j *jitter) applyColor(key syncrand.Key, in record.Color) (record.Record, error) {
	out, err := j.kernel(in.Tensor(), j.Factor(key))
	if err != nil {
		return nil, opErrorf(j.id, err)
	}
	if out, err = tensor.RoundClamp(out, 0, record.BGR8Max); err != nil {
		return nil, opErrorf(j.id, err)
	}
	c, err := record.NewColor(out)
	if err != nil {
		return nil, opErrorf(j.id, err)
	}

	return c, nil
}

// Brightness scales every channel: out = in * f.
type Brightness struct{ jitter }

// NewBrightness returns a brightness jitter drawing f from factors.
func NewBrightness(factors valuerange.Range, opts ...Option) *Brightness {
	return &Brightness{newJitter(DefaultBrightnessID, factors, brightnessKernel, opts)}
}

func (b *Brightness) Apply(key syncrand.Key, in record.Record) (record.Record, error) {
	return dispatch(b, key, in)
}

func (b *Brightness) ApplyColor(key syncrand.Key, in record.Color) (record.Record, error) {
	return b.applyColor(key, in)
}

func brightnessKernel(d *tensor.Dense, f float64) (*tensor.Dense, error) {
	return tensor.Map(d, func(v float64) float64 { return v * f })
}

// Contrast scales the distance from the mean luma of the whole image:
// out = (in - m) * f + m.
type Contrast struct{ jitter }

// NewContrast returns a contrast jitter drawing f from factors.
func NewContrast(factors valuerange.Range, opts ...Option) *Contrast {
	return &Contrast{newJitter(DefaultContrastID, factors, contrastKernel, opts)}
}

func (c *Contrast) Apply(key syncrand.Key, in record.Record) (record.Record, error) {
	return dispatch(c, key, in)
}

func (c *Contrast) ApplyColor(key syncrand.Key, in record.Color) (record.Record, error) {
	return c.applyColor(key, in)
}

func contrastKernel(d *tensor.Dense, f float64) (*tensor.Dense, error) {
	raw := d.Raw()
	var sum float64
	for base := 0; base < len(raw); base += 3 {
		sum += gray(raw[base : base+3])
	}
	m := sum / float64(len(raw)/3)

	return tensor.Map(d, func(v float64) float64 { return (v-m)*f + m })
}

// Saturation blends each pixel with its own luma: out = g + (in - g) * f.
// f = 0 yields grayscale, f = 1 the identity.
type Saturation struct{ jitter }

// NewSaturation returns a saturation jitter drawing f from factors.
func NewSaturation(factors valuerange.Range, opts ...Option) *Saturation {
	return &Saturation{newJitter(DefaultSaturationID, factors, saturationKernel, opts)}
}

func (s *Saturation) Apply(key syncrand.Key, in record.Record) (record.Record, error) {
	return dispatch(s, key, in)
}

func (s *Saturation) ApplyColor(key syncrand.Key, in record.Color) (record.Record, error) {
	return s.applyColor(key, in)
}

func saturationKernel(d *tensor.Dense, f float64) (*tensor.Dense, error) {
	return tensor.MapPixels(d, func(src, dst []float64) {
		g := gray(src)
		for k := range src {
			dst[k] = g + (src[k]-g)*f
		}
	})
}

// Hue rotates the hue angle multiplicatively: H' = (H * f) mod 360.
// Achromatic pixels (s = 0) are unchanged.
type Hue struct{ jitter }

// NewHue returns a hue jitter drawing f from factors.
func NewHue(factors valuerange.Range, opts ...Option) *Hue {
	return &Hue{newJitter(DefaultHueID, factors, hueKernel, opts)}
}

func (h *Hue) Apply(key syncrand.Key, in record.Record) (record.Record, error) {
	return dispatch(h, key, in)
}

func (h *Hue) ApplyColor(key syncrand.Key, in record.Color) (record.Record, error) {
	return h.applyColor(key, in)
}

func hueKernel(d *tensor.Dense, f float64) (*tensor.Dense, error) {
	return tensor.MapPixels(d, func(src, dst []float64) {
		hh, s, v := bgrToHSV(src[0], src[1], src[2])
		if s == 0 {
			copy(dst, src)
			return
		}
		hh = math.Mod(hh*f, 360)
		if hh < 0 {
			hh += 360
		}
		dst[0], dst[1], dst[2] = hsvToBGR(hh, s, v)
	})
}
