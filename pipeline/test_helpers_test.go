// SPDX-License-Identifier: MIT
// Package pipeline_test contains fixtures shared by the pipeline tests.

package pipeline_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvaugment/pipeline"
	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/tensor"
	"github.com/katalvlaran/lvaugment/valuerange"
	"github.com/stretchr/testify/require"
)

// gradientRaw returns an h×w bgr8 image whose blue channel encodes the column
// (x*255/(w-1)) and the label map holding the column index itself.
func gradientRaw(h, w int) (rgb, label record.Raw) {
	color := make([]float64, 0, h*w*3)
	classes := make([]float64, 0, h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(x * 255 / (w - 1))
			color = append(color, v, float64(y*255/(h-1)), 255-v)
			classes = append(classes, float64(x))
		}
	}
	rgb = record.Raw{Data: color, Type: "bgr8", Shape: []int{h, w, 3}}
	label = record.Raw{Data: classes, Type: "semantic2d", Shape: []int{h, w}}

	return rgb, label
}

// NewGradientProvider stores n gradient samples under keys "s0".."s<n-1>", link 0.
func NewGradientProvider(t *testing.T, n, h, w int) *pipeline.MapProvider {
	t.Helper()
	require.GreaterOrEqual(t, h, 2)
	require.GreaterOrEqual(t, w, 2)
	p := pipeline.NewMapProvider()
	for i := 0; i < n; i++ {
		rgb, label := gradientRaw(h, w)
		p.Put(pipeline.ModalityRGB, Key(i), 0, rgb)
		p.Put(pipeline.ModalityLabel, Key(i), 0, label)
	}

	return p
}

// Key names the i-th stored sample.
func Key(i int) string { return fmt.Sprintf("s%d", i) }

// NeutralConfig keeps the flip but fixes every jitter factor at 1, so the
// color output is a pure function of the geometric decisions.
func NeutralConfig(size tensor.Size, seed uint64) pipeline.Config {
	cfg := pipeline.DefaultConfig(size)
	one := valuerange.Point(1)
	cfg.Brightness, cfg.Contrast, cfg.Saturation, cfg.Hue = one, one, one, one
	cfg.Seed = &seed

	return cfg
}

// RGBCfg and LabelCfg are the modality configurations the tests pass through.
var (
	RGBCfg   = pipeline.ModalityConfig{Name: pipeline.ModalityRGB}
	LabelCfg = pipeline.ModalityConfig{Name: pipeline.ModalityLabel}
)

// MustAt reads one element or fails the test.
func MustAt(t *testing.T, d *tensor.Dense, y, x, c int) float64 {
	t.Helper()
	v, err := d.At(y, x, c)
	require.NoError(t, err)

	return v
}
