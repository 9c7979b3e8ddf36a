// SPDX-License-Identifier: MIT

package valuerange_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/lvaugment/syncrand"
	"github.com/katalvlaran/lvaugment/valuerange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsInvertedAndNonFinite(t *testing.T) {
	t.Parallel()

	_, err := valuerange.New(2, 1)
	assert.ErrorIs(t, err, valuerange.ErrInvalidRange)
	_, err = valuerange.New(math.NaN(), 1)
	assert.ErrorIs(t, err, valuerange.ErrInvalidRange)
	_, err = valuerange.New(0, math.Inf(1))
	assert.ErrorIs(t, err, valuerange.ErrInvalidRange)

	r, err := valuerange.New(0.75, 1.25)
	require.NoError(t, err)
	assert.Equal(t, 0.75, r.Low())
	assert.Equal(t, 1.25, r.High())
	assert.Equal(t, 0.5, r.Width())
	assert.Equal(t, "[0.75, 1.25]", r.String())
}

func TestMustNew_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { valuerange.MustNew(1, 0) })
	assert.NotPanics(t, func() { valuerange.MustNew(0, 0) })
}

func TestPointRange_AlwaysSamplesExactly(t *testing.T) {
	t.Parallel()

	r := valuerange.Point(2.0)
	assert.True(t, r.IsPoint())
	rng := rand.New(rand.NewPCG(1, 2))
	src := syncrand.NewSource(5)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 2.0, r.Sample(rng))
		assert.Equal(t, 2.0, r.Sample(nil))
		assert.Equal(t, 2.0, r.SampleKey(src, syncrand.SampleKey("s", i), "brightness"))
	}
}

func TestSample_StaysInBounds(t *testing.T) {
	t.Parallel()

	r := valuerange.MustNew(-3, 5)
	rng := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 1000; i++ {
		v := r.Sample(rng)
		require.True(t, r.Contains(v, 0), "v=%g", v)
	}
}

func TestSampleKey_DeterministicPerKeyAndOperator(t *testing.T) {
	t.Parallel()

	r := valuerange.MustNew(0.75, 1.25)
	src := syncrand.NewSource(1)
	a := r.SampleKey(src, "k", "brightness")
	assert.Equal(t, a, r.SampleKey(src, "k", "brightness"))
	assert.NotEqual(t, a, r.SampleKey(src, "k", "contrast"))
	assert.True(t, r.Contains(a, 0))
}

func TestAtAndContains(t *testing.T) {
	t.Parallel()

	r := valuerange.MustNew(0, 255)
	assert.Equal(t, 0.0, r.At(0))
	assert.Equal(t, 255.0, r.At(1))
	assert.Equal(t, 127.5, r.At(0.5))
	assert.False(t, r.Contains(255.5, 0))
	assert.True(t, r.Contains(255.5, 0.5))
	assert.True(t, r.Contains(-0.5, 0.5))
}
