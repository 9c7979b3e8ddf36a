// SPDX-License-Identifier: MIT

package syncrand_test

import (
	"sync"
	"testing"

	"github.com/katalvlaran/lvaugment/syncrand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraw_DeterministicAndInUnitInterval(t *testing.T) {
	t.Parallel()

	for i := 0; i < 256; i++ {
		k := syncrand.SampleKey("sample", i)
		u := syncrand.Draw(7, k, "flip", 0)
		assert.GreaterOrEqual(t, u, 0.0)
		assert.Less(t, u, 1.0)
		assert.Equal(t, u, syncrand.Draw(7, k, "flip", 0))
	}
}

func TestDraw_FieldsAreIndependent(t *testing.T) {
	t.Parallel()

	k := syncrand.Key("k")
	base := syncrand.Draw(1, k, "brightness", 0)
	assert.NotEqual(t, base, syncrand.Draw(2, k, "brightness", 0), "seed")
	assert.NotEqual(t, base, syncrand.Draw(1, "k2", "brightness", 0), "key")
	assert.NotEqual(t, base, syncrand.Draw(1, k, "contrast", 0), "operator")
	assert.NotEqual(t, base, syncrand.Draw(1, k, "brightness", 1), "stream")
}

func TestDraw_LengthPrefixPreventsConcatCollision(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t,
		syncrand.Draw(0, "ab", "c", 0),
		syncrand.Draw(0, "a", "bc", 0))
}

func TestSampleKey_SharedAcrossModalities(t *testing.T) {
	t.Parallel()

	assert.Equal(t, syncrand.Key("scene/0001#3"), syncrand.SampleKey("scene/0001", 3))
	assert.NotEqual(t, syncrand.SampleKey("a", 1), syncrand.SampleKey("a", 2))
}

func TestEpochKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, syncrand.SampleKey("a", 1), syncrand.EpochKey("a", 1, 0))
	assert.Equal(t, syncrand.Key("a#1@2"), syncrand.EpochKey("a", 1, 2))
	assert.NotEqual(t, syncrand.EpochKey("a", 1, 1), syncrand.EpochKey("a", 1, 2))
}

func TestBernoulli_RateExtremesAndFrequency(t *testing.T) {
	t.Parallel()

	src := syncrand.NewSource(42)
	hits := 0
	const n = 4000
	for i := 0; i < n; i++ {
		k := syncrand.SampleKey("s", i)
		assert.False(t, src.Bernoulli(k, "flip", 0, 0))
		assert.True(t, src.Bernoulli(k, "flip", 0, 1))
		if src.Bernoulli(k, "flip", 0, 0.5) {
			hits++
		}
	}
	// 4000 fair trials stay well inside ±5% of half.
	assert.InDelta(t, n/2, hits, n*0.05)
}

func TestIntn_Bounds(t *testing.T) {
	t.Parallel()

	src := syncrand.NewSource(3)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := src.Intn(syncrand.SampleKey("s", i), "crop", 0, 5)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 5)
		seen[v] = true
	}
	assert.Len(t, seen, 5)
	assert.Equal(t, 0, src.Intn("x", "crop", 0, 1))
	assert.Equal(t, 0, src.Intn("x", "crop", 0, 0))
}

func TestRandomSource(t *testing.T) {
	t.Parallel()

	a, err := syncrand.RandomSource()
	require.NoError(t, err)
	b, err := syncrand.RandomSource()
	require.NoError(t, err)
	assert.NotEqual(t, a.Seed(), b.Seed())
	assert.Equal(t, uint64(9), syncrand.NewSource(9).Seed())
}

func TestSource_ConcurrentDrawsAgree(t *testing.T) {
	t.Parallel()

	src := syncrand.NewSource(11)
	want := src.Float64("shared", "flip", 0)

	var wg sync.WaitGroup
	got := make([]float64, 32)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = src.Float64("shared", "flip", 0)
		}(i)
	}
	wg.Wait()
	for _, v := range got {
		assert.Equal(t, want, v)
	}
}
