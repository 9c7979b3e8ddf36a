// SPDX-License-Identifier: MIT

// Package config loads pipeline parameters from YAML and the environment.
//
// A file looks like:
//
//	schema_version: v1
//	variant: train
//	pipeline:
//	  target: [240, 320]
//	  flip: {horizontal: 0.5, vertical: 0}
//	  jitter:
//	    brightness: [0.75, 1.25]
//	  normalization:
//	    source: [0, 255]
//
// Environment variables prefixed LVAUGMENT__ override file values, with __
// separating nesting levels (LVAUGMENT__PIPELINE__SEED=7).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/katalvlaran/lvaugment/ops"
	"github.com/katalvlaran/lvaugment/pipeline"
	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/tensor"
	"github.com/katalvlaran/lvaugment/valuerange"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	// SchemaVersion is the only schema_version Load accepts.
	SchemaVersion = "v1"
	// EnvPrefix marks environment variables that override file values.
	EnvPrefix = "LVAUGMENT__"
	envDelim  = "__"
)

var (
	// ErrSchemaVersion is returned for a file whose schema_version is not v1.
	ErrSchemaVersion = errors.New("config: unsupported schema_version")

	// ErrInvalid indicates a value that cannot be converted to a pipeline.Config.
	ErrInvalid = errors.New("config: invalid value")
)

// Flip holds the per-axis flip probabilities; nil keeps the default rate.
type Flip struct {
	Horizontal *float64 `koanf:"horizontal" yaml:"horizontal,omitempty"`
	Vertical   *float64 `koanf:"vertical"   yaml:"vertical,omitempty"`
}

// Jitter holds [low, high] factor ranges.
type Jitter struct {
	Brightness []float64 `koanf:"brightness" yaml:"brightness,omitempty"`
	Contrast   []float64 `koanf:"contrast"   yaml:"contrast,omitempty"`
	Saturation []float64 `koanf:"saturation" yaml:"saturation,omitempty"`
	Hue        []float64 `koanf:"hue"        yaml:"hue,omitempty"`
}

// Crop enables the training crop. Top and Left apply to mode fixed only.
type Crop struct {
	Size []int  `koanf:"size" yaml:"size"` // [H, W]
	Mode string `koanf:"mode" yaml:"mode"` // center|random|fixed
	Top  int    `koanf:"top"  yaml:"top,omitempty"`
	Left int    `koanf:"left" yaml:"left,omitempty"`
}

// Normalization configures the final rgb step. Source is [low, high] of the
// stored values; Mean and Std, when both set, standardize per channel after
// the unit-interval mapping.
type Normalization struct {
	Accepts   string    `koanf:"accepts"   yaml:"accepts,omitempty"`
	Source    []float64 `koanf:"source"    yaml:"source,omitempty"`
	Clamp     bool      `koanf:"clamp"     yaml:"clamp,omitempty"`
	Tolerance float64   `koanf:"tolerance" yaml:"tolerance,omitempty"`
	Mean      []float64 `koanf:"mean"      yaml:"mean,omitempty"`
	Std       []float64 `koanf:"std"       yaml:"std,omitempty"`
}

// Pipeline mirrors pipeline.Config in file form.
type Pipeline struct {
	// Target is the output (H, W); a trailing channel count is ignored so the
	// rgb minibatch shape can be pasted as is.
	Target             []int         `koanf:"target"              yaml:"target"`
	ColorInterpolation string        `koanf:"color_interpolation" yaml:"color_interpolation,omitempty"`
	LabelInterpolation string        `koanf:"label_interpolation" yaml:"label_interpolation,omitempty"`
	Crop               *Crop         `koanf:"crop"                yaml:"crop,omitempty"`
	Flip               Flip          `koanf:"flip"                yaml:"flip"`
	Jitter             Jitter        `koanf:"jitter"              yaml:"jitter"`
	Normalization      Normalization `koanf:"normalization"       yaml:"normalization"`
	Seed               *uint64       `koanf:"seed"                yaml:"seed,omitempty"`
}

// File is the on-disk document.
type File struct {
	SchemaVersion string   `koanf:"schema_version" yaml:"schema_version"`
	Variant       string   `koanf:"variant"        yaml:"variant"`
	Pipeline      Pipeline `koanf:"pipeline"       yaml:"pipeline"`
}

// Load merges the YAML at path (if present) with LVAUGMENT__ env vars and
// fills unset fields with the reference defaults. An empty path or a
// missing file yields defaults plus env.
func Load(path string) (File, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return File{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	// schema version check (only when YAML is present)
	sv := k.String("schema_version")
	if sv != "" && sv != SchemaVersion {
		return File{}, fmt.Errorf("%q (want %s): %w", sv, SchemaVersion, ErrSchemaVersion)
	}

	if err := k.Load(env.Provider(EnvPrefix, envDelim, envKey), nil); err != nil {
		return File{}, fmt.Errorf("config: env: %w", err)
	}

	var f File
	if err := k.Unmarshal("", &f); err != nil {
		return File{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	applyDefaults(&f)

	return f, nil
}

// envKey maps LVAUGMENT__PIPELINE__SEED to pipeline__seed.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func applyDefaults(f *File) {
	if f.SchemaVersion == "" {
		f.SchemaVersion = SchemaVersion
	}
	if f.Variant == "" {
		f.Variant = string(pipeline.Train)
	}
	p := &f.Pipeline
	if p.ColorInterpolation == "" {
		p.ColorInterpolation = ops.Linear.String()
	}
	if p.LabelInterpolation == "" {
		p.LabelInterpolation = ops.Nearest.String()
	}
	if p.Flip.Horizontal == nil {
		h := pipeline.DefaultHorizontalFlipRate
		p.Flip.Horizontal = &h
	}
	if p.Flip.Vertical == nil {
		v := pipeline.DefaultVerticalFlipRate
		p.Flip.Vertical = &v
	}
	jitter := []float64{pipeline.DefaultJitterLow, pipeline.DefaultJitterHigh}
	for _, r := range []*[]float64{&p.Jitter.Brightness, &p.Jitter.Contrast, &p.Jitter.Saturation, &p.Jitter.Hue} {
		if len(*r) == 0 {
			*r = append([]float64(nil), jitter...)
		}
	}
	if p.Normalization.Accepts == "" {
		p.Normalization.Accepts = record.KindColorBGR8.String()
	}
	if len(p.Normalization.Source) == 0 {
		p.Normalization.Source = []float64{0, record.BGR8Max}
	}
}

// VariantValue parses f.Variant.
func (f File) VariantValue() (pipeline.Variant, error) {
	return pipeline.ParseVariant(f.Variant)
}

// PipelineConfig converts the document into a validated pipeline.Config.
func (f File) PipelineConfig() (pipeline.Config, error) {
	p := f.Pipeline
	size, err := pipeline.SizeFromShape(p.Target)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("config: target: %w", err)
	}
	cfg := pipeline.Config{
		TargetSize:             size,
		NormalizationClamp:     p.Normalization.Clamp,
		NormalizationTolerance: p.Normalization.Tolerance,
		NormalizationMean:      p.Normalization.Mean,
		NormalizationStd:       p.Normalization.Std,
		Seed:                   p.Seed,
	}
	if p.Flip.Horizontal != nil {
		cfg.HorizontalFlipRate = *p.Flip.Horizontal
	}
	if p.Flip.Vertical != nil {
		cfg.VerticalFlipRate = *p.Flip.Vertical
	}

	if cfg.ColorInterpolation, err = ops.ParseInterpolation(p.ColorInterpolation); err != nil {
		return pipeline.Config{}, fmt.Errorf("config: color_interpolation: %w", err)
	}
	if cfg.LabelInterpolation, err = ops.ParseInterpolation(p.LabelInterpolation); err != nil {
		return pipeline.Config{}, fmt.Errorf("config: label_interpolation: %w", err)
	}
	if cfg.NormalizationTarget, err = record.ParseKind(p.Normalization.Accepts); err != nil {
		return pipeline.Config{}, fmt.Errorf("config: normalization.accepts: %w", err)
	}

	ranges := []struct {
		name string
		in   []float64
		out  *valuerange.Range
	}{
		{"jitter.brightness", p.Jitter.Brightness, &cfg.Brightness},
		{"jitter.contrast", p.Jitter.Contrast, &cfg.Contrast},
		{"jitter.saturation", p.Jitter.Saturation, &cfg.Saturation},
		{"jitter.hue", p.Jitter.Hue, &cfg.Hue},
		{"normalization.source", p.Normalization.Source, &cfg.NormalizationSource},
	}
	for _, r := range ranges {
		if *r.out, err = toRange(r.in); err != nil {
			return pipeline.Config{}, fmt.Errorf("config: %s: %w", r.name, err)
		}
	}

	if p.Crop != nil {
		if cfg.Crop, err = toCrop(*p.Crop); err != nil {
			return pipeline.Config{}, fmt.Errorf("config: crop: %w", err)
		}
	}
	if err = cfg.Validate(); err != nil {
		return pipeline.Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// toRange accepts [x] as the point range and [low, high] otherwise.
func toRange(v []float64) (valuerange.Range, error) {
	switch len(v) {
	case 1:
		return valuerange.New(v[0], v[0])
	case 2:
		return valuerange.New(v[0], v[1])
	default:
		return valuerange.Range{}, fmt.Errorf("%v is not [low, high]: %w", v, ErrInvalid)
	}
}

func toCrop(c Crop) (*pipeline.CropConfig, error) {
	if len(c.Size) != 2 {
		return nil, fmt.Errorf("size %v is not [H, W]: %w", c.Size, ErrInvalid)
	}
	size := tensor.Size{Height: c.Size[0], Width: c.Size[1]}
	if !size.Valid() {
		return nil, fmt.Errorf("size %s: %w", size, ErrInvalid)
	}
	mode, err := ops.ParseCropMode(c.Mode)
	if err != nil {
		return nil, err
	}

	return &pipeline.CropConfig{Size: size, Policy: ops.CropPolicy{Mode: mode, Top: c.Top, Left: c.Left}}, nil
}

// Marshal renders f as YAML that Load reads back to the same File.
func Marshal(f File) ([]byte, error) {
	b, err := yamlv3.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}

	return b, nil
}
