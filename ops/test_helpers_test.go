// SPDX-License-Identifier: MIT
// Package ops_test contains fixtures shared by the operator tests.

package ops_test

import (
	"testing"

	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/tensor"
	"github.com/stretchr/testify/require"
)

// NewFilledColor builds an h×w BGR image where every pixel is px.
func NewFilledColor(t *testing.T, h, w int, px [3]float64) record.Color {
	t.Helper()
	data := make([]float64, 0, h*w*3)
	for i := 0; i < h*w; i++ {
		data = append(data, px[0], px[1], px[2])
	}

	return MustColor(t, h, w, data)
}

// MustColor wraps literal BGR data or fails the test.
func MustColor(t *testing.T, h, w int, data []float64) record.Color {
	t.Helper()
	d, err := tensor.FromSlice(tensor.Shape{Height: h, Width: w, Channels: 3}, data)
	require.NoError(t, err)
	c, err := record.NewColor(d)
	require.NoError(t, err)

	return c
}

// MustLabel wraps literal class ids or fails the test.
func MustLabel(t *testing.T, h, w int, data []float64) record.Label {
	t.Helper()
	d, err := tensor.FromSlice(tensor.Shape{Height: h, Width: w, Channels: 1}, data)
	require.NoError(t, err)
	l, err := record.NewLabel(d)
	require.NoError(t, err)

	return l
}

// GradientPair returns a color image and a label map of the same size whose
// content encodes the column index, so any mirroring is visible in both.
func GradientPair(t *testing.T, h, w int) (record.Color, record.Label) {
	t.Helper()
	color := make([]float64, 0, h*w*3)
	label := make([]float64, 0, h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(x * 255 / (w - 1))
			color = append(color, v, float64(y*255/(h-1)), 255-v)
			label = append(label, float64(x))
		}
	}

	return MustColor(t, h, w, color), MustLabel(t, h, w, label)
}

// valueSet collects the distinct values of d.
func valueSet(d *tensor.Dense) map[float64]bool {
	set := map[float64]bool{}
	for _, v := range d.Raw() {
		set[v] = true
	}

	return set
}
