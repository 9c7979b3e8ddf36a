// SPDX-License-Identifier: MIT
// Package tensor_test contains test helpers.
//
// Purpose:
//   • Small deterministic fixtures for kernels.
//   • Keep all data finite and well-formed.

package tensor_test

import (
	"testing"

	"github.com/katalvlaran/lvaugment/tensor"
	"github.com/stretchr/testify/require"
)

// MustDense builds a Dense from literal data or fails the test.
func MustDense(t *testing.T, h, w, c int, data []float64) *tensor.Dense {
	t.Helper()
	d, err := tensor.FromSlice(tensor.Shape{Height: h, Width: w, Channels: c}, data)
	require.NoError(t, err)

	return d
}

// MustAt reads (y, x, c) or fails the test.
func MustAt(t *testing.T, d *tensor.Dense, y, x, c int) float64 {
	t.Helper()
	v, err := d.At(y, x, c)
	require.NoError(t, err)

	return v
}

// Ramp returns an h×w×c array with values 0,1,2,... in flat order.
func Ramp(t *testing.T, h, w, c int) *tensor.Dense {
	t.Helper()
	data := make([]float64, h*w*c)
	for i := range data {
		data[i] = float64(i)
	}

	return MustDense(t, h, w, c, data)
}
