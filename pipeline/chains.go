// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"

	"github.com/katalvlaran/lvaugment/ops"
	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/syncrand"
)

// interpolationOr returns m, or def for the zero value.
func interpolationOr(m, def ops.Interpolation) ops.Interpolation {
	if m == 0 {
		return def
	}

	return m
}

// resizePair builds one resize per modality under the shared resize id.
func resizePair(cfg Config) (rgb, label *ops.Resize, err error) {
	rgb, err = ops.NewResize(cfg.TargetSize, interpolationOr(cfg.ColorInterpolation, ops.Linear))
	if err != nil {
		return nil, nil, err
	}
	label, err = ops.NewResize(cfg.TargetSize, interpolationOr(cfg.LabelInterpolation, ops.Nearest))
	if err != nil {
		return nil, nil, err
	}

	return rgb, label, nil
}

func normalization(cfg Config) (*ops.Normalization, error) {
	target := cfg.NormalizationTarget
	if target == record.KindUnknown {
		target = record.KindColorBGR8
	}
	opts := []ops.Option{ops.WithTolerance(cfg.NormalizationTolerance)}
	if cfg.NormalizationClamp {
		opts = append(opts, ops.WithClamp())
	}
	if len(cfg.NormalizationMean) > 0 {
		opts = append(opts, ops.WithStandardize(cfg.NormalizationMean, cfg.NormalizationStd))
	}

	return ops.NewNormalization(target, cfg.NormalizationSource, opts...)
}

// evalChains: rgb resize > normalize; label resize.
func evalChains(cfg Config) (rgb, label ops.Chain, err error) {
	rgbResize, labelResize, err := resizePair(cfg)
	if err != nil {
		return ops.Chain{}, ops.Chain{}, err
	}
	norm, err := normalization(cfg)
	if err != nil {
		return ops.Chain{}, ops.Chain{}, err
	}
	if rgb, err = ops.NewChain(rgbResize, norm); err != nil {
		return ops.Chain{}, ops.Chain{}, err
	}
	if label, err = ops.NewChain(labelResize); err != nil {
		return ops.Chain{}, ops.Chain{}, err
	}

	return rgb, label, nil
}

// trainChains: rgb resize > [crop] > flip > brightness > contrast >
// saturation > hue > normalize; label resize > [crop] > flip. The crop and
// flip instances are shared so both modalities see the same decision.
func trainChains(cfg Config, src syncrand.Source) (rgb, label ops.Chain, err error) {
	rgbResize, labelResize, err := resizePair(cfg)
	if err != nil {
		return ops.Chain{}, ops.Chain{}, err
	}
	rgbOps := []ops.Operator{rgbResize}
	labelOps := []ops.Operator{labelResize}

	if cfg.Crop != nil {
		crop, cerr := ops.NewCrop(cfg.Crop.Size, cfg.Crop.Policy, ops.WithSource(src))
		if cerr != nil {
			return ops.Chain{}, ops.Chain{}, cerr
		}
		rgbOps = append(rgbOps, crop)
		labelOps = append(labelOps, crop)
	}

	flip, err := ops.NewFlip(cfg.HorizontalFlipRate, cfg.VerticalFlipRate, ops.WithSource(src))
	if err != nil {
		return ops.Chain{}, ops.Chain{}, err
	}
	rgbOps = append(rgbOps, flip)
	labelOps = append(labelOps, flip)

	norm, err := normalization(cfg)
	if err != nil {
		return ops.Chain{}, ops.Chain{}, err
	}
	rgbOps = append(rgbOps,
		ops.NewBrightness(cfg.Brightness, ops.WithSource(src)),
		ops.NewContrast(cfg.Contrast, ops.WithSource(src)),
		ops.NewSaturation(cfg.Saturation, ops.WithSource(src)),
		ops.NewHue(cfg.Hue, ops.WithSource(src)),
		norm,
	)

	if rgb, err = ops.NewChain(rgbOps...); err != nil {
		return ops.Chain{}, ops.Chain{}, fmt.Errorf("rgb chain: %w", err)
	}
	if label, err = ops.NewChain(labelOps...); err != nil {
		return ops.Chain{}, ops.Chain{}, fmt.Errorf("label chain: %w", err)
	}

	return rgb, label, nil
}
