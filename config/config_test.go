// SPDX-License-Identifier: MIT

package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/lvaugment/config"
	"github.com/katalvlaran/lvaugment/ops"
	"github.com/katalvlaran/lvaugment/pipeline"
	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/tensor"
	"github.com/katalvlaran/lvaugment/valuerange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `schema_version: v1
variant: eval
pipeline:
  target: [240, 320, 3]
  crop:
    size: [200, 300]
    mode: random
  flip:
    horizontal: 0.25
    vertical: 0
  jitter:
    brightness: [0.9, 1.1]
    hue: [1]
  normalization:
    source: [0, 255]
    clamp: true
    mean: [0.5, 0.5, 0.5]
    std: [0.25, 0.25, 0.25]
  seed: 42
`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_File(t *testing.T) {
	f, err := config.Load(writeFile(t, sample))
	require.NoError(t, err)

	v, err := f.VariantValue()
	require.NoError(t, err)
	assert.Equal(t, pipeline.Eval, v)

	cfg, err := f.PipelineConfig()
	require.NoError(t, err)
	assert.Equal(t, tensor.Size{Height: 240, Width: 320}, cfg.TargetSize)
	assert.Equal(t, ops.Linear, cfg.ColorInterpolation)
	assert.Equal(t, ops.Nearest, cfg.LabelInterpolation)
	require.NotNil(t, cfg.Crop)
	assert.Equal(t, tensor.Size{Height: 200, Width: 300}, cfg.Crop.Size)
	assert.Equal(t, ops.CropRandom, cfg.Crop.Policy.Mode)
	assert.Equal(t, 0.25, cfg.HorizontalFlipRate)
	assert.Equal(t, 0.0, cfg.VerticalFlipRate)
	assert.Equal(t, valuerange.MustNew(0.9, 1.1), cfg.Brightness)
	assert.Equal(t, valuerange.Point(1), cfg.Hue)
	assert.Equal(t, valuerange.MustNew(0.75, 1.25), cfg.Contrast, "unset ranges keep defaults")
	assert.Equal(t, record.KindColorBGR8, cfg.NormalizationTarget)
	assert.True(t, cfg.NormalizationClamp)
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, cfg.NormalizationMean)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)

	_, err = pipeline.New(v, cfg, pipeline.NewMapProvider())
	assert.NoError(t, err)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	f, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, config.SchemaVersion, f.SchemaVersion)
	assert.Equal(t, string(pipeline.Train), f.Variant)

	_, err = f.PipelineConfig()
	assert.ErrorIs(t, err, pipeline.ErrBadConfig, "no target size")

	f.Pipeline.Target = []int{4, 6}
	cfg, err := f.PipelineConfig()
	require.NoError(t, err)
	want := pipeline.DefaultConfig(tensor.Size{Height: 4, Width: 6})
	assert.Equal(t, want, cfg)
}

func TestLoad_SchemaVersion(t *testing.T) {
	_, err := config.Load(writeFile(t, "schema_version: v2\n"))
	assert.ErrorIs(t, err, config.ErrSchemaVersion)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LVAUGMENT__VARIANT", "eval")
	t.Setenv("LVAUGMENT__PIPELINE__SEED", "7")
	t.Setenv("LVAUGMENT__PIPELINE__FLIP__VERTICAL", "0.5")

	f, err := config.Load(writeFile(t, sample))
	require.NoError(t, err)
	assert.Equal(t, "eval", f.Variant)
	require.NotNil(t, f.Pipeline.Seed)
	assert.Equal(t, uint64(7), *f.Pipeline.Seed)
	require.NotNil(t, f.Pipeline.Flip.Vertical)
	assert.Equal(t, 0.5, *f.Pipeline.Flip.Vertical)
}

func TestPipelineConfig_Invalid(t *testing.T) {
	base := func() config.File {
		f, err := config.Load("")
		require.NoError(t, err)
		f.Pipeline.Target = []int{8, 8}
		return f
	}

	tests := []struct {
		name   string
		mutate func(*config.File)
		want   error
	}{
		{"reversed range", func(f *config.File) { f.Pipeline.Jitter.Brightness = []float64{2, 1} }, valuerange.ErrInvalidRange},
		{"long range", func(f *config.File) { f.Pipeline.Jitter.Hue = []float64{1, 2, 3} }, config.ErrInvalid},
		{"interpolation", func(f *config.File) { f.Pipeline.ColorInterpolation = "cubic" }, ops.ErrInvalidInterpolation},
		{"kind", func(f *config.File) { f.Pipeline.Normalization.Accepts = "rgba" }, record.ErrUnsupportedType},
		{"crop size", func(f *config.File) { f.Pipeline.Crop = &config.Crop{Size: []int{4}, Mode: "center"} }, config.ErrInvalid},
		{"crop mode", func(f *config.File) { f.Pipeline.Crop = &config.Crop{Size: []int{4, 4}, Mode: "zoom"} }, ops.ErrInvalidCrop},
	}
	for _, tc := range tests {
		f := base()
		tc.mutate(&f)
		_, err := f.PipelineConfig()
		assert.ErrorIs(t, err, tc.want, tc.name)
	}
}

func TestPipelineConfig_InfiniteTolerance(t *testing.T) {
	body := "schema_version: v1\nvariant: eval\npipeline:\n  target: [4, 4]\n  normalization:\n    tolerance: .inf\n"
	f, err := config.Load(writeFile(t, body))
	require.NoError(t, err)
	require.True(t, math.IsInf(f.Pipeline.Normalization.Tolerance, 1))

	_, err = f.PipelineConfig()
	assert.ErrorIs(t, err, pipeline.ErrBadConfig)
}

func TestMarshal_LoadsBack(t *testing.T) {
	f, err := config.Load(writeFile(t, sample))
	require.NoError(t, err)

	b, err := config.Marshal(f)
	require.NoError(t, err)
	again, err := config.Load(writeFile(t, string(b)))
	require.NoError(t, err)
	assert.Equal(t, f, again)
}
