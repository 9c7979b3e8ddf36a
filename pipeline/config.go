// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvaugment/ops"
	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/tensor"
	"github.com/katalvlaran/lvaugment/valuerange"
)

// Defaults of the reference training setup.
const (
	DefaultHorizontalFlipRate = 0.5
	DefaultVerticalFlipRate   = 0.0
	DefaultJitterLow          = 0.75
	DefaultJitterHigh         = 1.25
)

// CropConfig enables the Crop step of the training chains.
type CropConfig struct {
	Size   tensor.Size
	Policy ops.CropPolicy
}

// Config holds every operator parameter the assembler consumes.
type Config struct {
	TargetSize         tensor.Size
	ColorInterpolation ops.Interpolation
	LabelInterpolation ops.Interpolation

	// Crop is applied after resize in the training variant only; nil disables it.
	Crop *CropConfig

	HorizontalFlipRate float64
	VerticalFlipRate   float64

	Brightness valuerange.Range
	Contrast   valuerange.Range
	Saturation valuerange.Range
	Hue        valuerange.Range

	NormalizationTarget    record.Kind
	NormalizationSource    valuerange.Range
	NormalizationClamp     bool
	NormalizationTolerance float64
	NormalizationMean      []float64 // optional per-channel standardization
	NormalizationStd       []float64

	// Seed fixes the key-derived randomness; nil draws a fresh seed per Dataset.
	Seed *uint64
}

// DefaultConfig mirrors the reference loader: Linear/Nearest resize to size,
// horizontal flip at 0.5, all jitter factors in [0.75, 1.25], BGR8
// normalization from [0, 255].
func DefaultConfig(size tensor.Size) Config {
	jitter := valuerange.MustNew(DefaultJitterLow, DefaultJitterHigh)

	return Config{
		TargetSize:          size,
		ColorInterpolation:  ops.Linear,
		LabelInterpolation:  ops.Nearest,
		HorizontalFlipRate:  DefaultHorizontalFlipRate,
		VerticalFlipRate:    DefaultVerticalFlipRate,
		Brightness:          jitter,
		Contrast:            jitter,
		Saturation:          jitter,
		Hue:                 jitter,
		NormalizationTarget: record.KindColorBGR8,
		NormalizationSource: valuerange.MustNew(0, record.BGR8Max),
	}
}

// SizeFromShape reads (H, W) from a declared modality shape such as the
// rgb entry of a minibatch configuration.
func SizeFromShape(shape []int) (tensor.Size, error) {
	if len(shape) < 2 {
		return tensor.Size{}, fmt.Errorf("SizeFromShape %v: %w", shape, ErrBadConfig)
	}
	s := tensor.Size{Height: shape[0], Width: shape[1]}
	if err := tensor.ValidateSize(s); err != nil {
		return tensor.Size{}, fmt.Errorf("SizeFromShape %v: %w", shape, ErrBadConfig)
	}

	return s, nil
}

// Validate checks the parts of c that operator constructors do not.
func (c Config) Validate() error {
	if !c.TargetSize.Valid() {
		return fmt.Errorf("target size %s: %w", c.TargetSize, ErrBadConfig)
	}
	if c.LabelInterpolation == ops.Linear {
		return fmt.Errorf("label interpolation must be nearest: %w", ops.ErrUnsupportedType)
	}
	if c.Crop != nil && (c.Crop.Size.Height > c.TargetSize.Height || c.Crop.Size.Width > c.TargetSize.Width) {
		return fmt.Errorf("crop %s larger than target %s: %w", c.Crop.Size, c.TargetSize, ErrBadConfig)
	}
	if math.IsNaN(c.NormalizationTolerance) || math.IsInf(c.NormalizationTolerance, 0) || c.NormalizationTolerance < 0 {
		return fmt.Errorf("normalization tolerance %g: %w", c.NormalizationTolerance, ErrBadConfig)
	}
	if len(c.NormalizationMean) != len(c.NormalizationStd) {
		return fmt.Errorf("normalization mean/std lengths %d/%d: %w", len(c.NormalizationMean), len(c.NormalizationStd), ErrBadConfig)
	}
	for _, s := range c.NormalizationStd {
		if !(s > 0) || math.IsInf(s, 0) {
			return fmt.Errorf("normalization std %g: %w", s, ErrBadConfig)
		}
	}

	return nil
}
