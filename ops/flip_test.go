// SPDX-License-Identifier: MIT

package ops_test

import (
	"testing"

	"github.com/katalvlaran/lvaugment/ops"
	"github.com/katalvlaran/lvaugment/syncrand"
	"github.com/katalvlaran/lvaugment/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mirrored reports whether out equals in flipped horizontally.
func mirrored(t *testing.T, in, out *tensor.Dense) bool {
	t.Helper()
	m, err := tensor.Mirror(in, true, false)
	require.NoError(t, err)

	return tensor.Equal(m, out)
}

func TestFlip_ColorAndLabelAlwaysAgree(t *testing.T) {
	t.Parallel()

	color, label := GradientPair(t, 4, 6)
	flip, err := ops.NewFlip(0.5, 0, ops.WithSource(syncrand.NewSource(123)))
	require.NoError(t, err)

	flipped := 0
	for i := 0; i < 200; i++ {
		key := syncrand.SampleKey("sample", i)
		c, err := flip.Apply(key, color)
		require.NoError(t, err)
		l, err := flip.Apply(key, label)
		require.NoError(t, err)

		cm := mirrored(t, color.Tensor(), c.Tensor())
		lm := mirrored(t, label.Tensor(), l.Tensor())
		require.Equal(t, cm, lm, "key %s: color mirrored=%v label mirrored=%v", key, cm, lm)
		if !cm {
			require.True(t, tensor.Equal(color.Tensor(), c.Tensor()))
			require.True(t, tensor.Equal(label.Tensor(), l.Tensor()))
		} else {
			flipped++
		}
		assert.Equal(t, flip.Decide(key).Horizontal, cm)
	}
	// Both outcomes must occur at rate 0.5.
	assert.Greater(t, flipped, 0)
	assert.Less(t, flipped, 200)
}

func TestFlip_SeparateInstancesCoupleByIDAndSource(t *testing.T) {
	t.Parallel()

	src := syncrand.NewSource(5)
	a, err := ops.NewFlip(0.5, 0.5, ops.WithSource(src))
	require.NoError(t, err)
	b, err := ops.NewFlip(0.5, 0.5, ops.WithSource(src))
	require.NoError(t, err)
	other, err := ops.NewFlip(0.5, 0.5, ops.WithSource(src), ops.WithID("flip2"))
	require.NoError(t, err)

	differs := false
	for i := 0; i < 64; i++ {
		key := syncrand.SampleKey("s", i)
		assert.Equal(t, a.Decide(key), b.Decide(key))
		if a.Decide(key) != other.Decide(key) {
			differs = true
		}
	}
	assert.True(t, differs, "a different operator id must draw independently")
}

func TestFlip_RateExtremes(t *testing.T) {
	t.Parallel()

	color, _ := GradientPair(t, 3, 3)
	never, err := ops.NewFlip(0, 0)
	require.NoError(t, err)
	always, err := ops.NewFlip(1, 1)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		key := syncrand.SampleKey("s", i)
		assert.Equal(t, ops.FlipDecision{}, never.Decide(key))
		assert.Equal(t, ops.FlipDecision{Horizontal: true, Vertical: true}, always.Decide(key))
	}

	out, err := always.Apply("k", color)
	require.NoError(t, err)
	want, err := tensor.Mirror(color.Tensor(), true, true)
	require.NoError(t, err)
	assert.True(t, tensor.Equal(want, out.Tensor()))
	assert.Equal(t, color.Size(), out.Size())
}

func TestNewFlip_InvalidRate(t *testing.T) {
	t.Parallel()

	_, err := ops.NewFlip(-0.1, 0)
	assert.ErrorIs(t, err, ops.ErrInvalidRate)
	_, err = ops.NewFlip(0, 1.5)
	assert.ErrorIs(t, err, ops.ErrInvalidRate)

	f, err := ops.NewFlip(0.5, 0)
	require.NoError(t, err)
	h, v := f.Rates()
	assert.Equal(t, 0.5, h)
	assert.Equal(t, 0.0, v)
	assert.Equal(t, "flip(h=0.5,v=0)", f.String())
}

func TestFlip_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	color, _ := GradientPair(t, 2, 4)
	before := color.Tensor().Data()
	f, err := ops.NewFlip(1, 0)
	require.NoError(t, err)
	_, err = f.Apply("k", color)
	require.NoError(t, err)
	assert.Equal(t, before, color.Tensor().Data())
}
