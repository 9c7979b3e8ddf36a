// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/lvaugment/logging"
	"github.com/katalvlaran/lvaugment/ops"
	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/syncrand"
	"github.com/katalvlaran/lvaugment/telemetry"
	"github.com/katalvlaran/lvaugment/tensor"
)

// Variant selects stochastic training or deterministic evaluation chains.
type Variant string

const (
	Train Variant = "train"
	Eval  Variant = "eval"
)

// ParseVariant accepts "train" or "eval".
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case Train, Eval:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("variant %q: %w", s, ErrBadConfig)
	}
}

// CreateFunc materializes the final array of one modality for the sample
// addressed by (key, linkIndex).
type CreateFunc func(key string, linkIndex int, mc ModalityConfig) (*tensor.Dense, error)

// Option configures a Dataset.
type Option func(*settings)

type settings struct {
	log     *slog.Logger
	metrics *telemetry.Metrics
	epoch   uint64
}

// WithLogger overrides the process logger from the logging package.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records every materialization on m.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithEpoch salts every key-derived decision with e. Epoch 0 is the unsalted
// key, so a Dataset without this option draws as before. See AtEpoch.
func WithEpoch(e uint64) Option {
	return func(s *settings) { s.epoch = e }
}

// Dataset holds the assembled chains and materializes samples through them.
// It is immutable after construction and safe for concurrent use.
type Dataset struct {
	variant    Variant
	src        syncrand.Source
	epoch      uint64
	target     tensor.Size
	rgbChain   ops.Chain
	labelChain ops.Chain
	provider   Provider
	log        *slog.Logger
	metrics    *telemetry.Metrics
}

// NewTrain assembles the training variant.
func NewTrain(cfg Config, p Provider, opts ...Option) (*Dataset, error) {
	return New(Train, cfg, p, opts...)
}

// NewEval assembles the evaluation variant. Randomness settings in cfg are
// ignored; its output is bit-identical across calls.
func NewEval(cfg Config, p Provider, opts ...Option) (*Dataset, error) {
	return New(Eval, cfg, p, opts...)
}

// New assembles the chains of variant v from cfg.
func New(v Variant, cfg Config, p Provider, opts ...Option) (*Dataset, error) {
	if p == nil {
		return nil, fmt.Errorf("New: %w", ErrNilProvider)
	}
	if _, err := ParseVariant(string(v)); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("New %s: %w", v, err)
	}
	s := settings{log: logging.L()}
	for _, set := range opts {
		set(&s)
	}

	src, err := sourceFor(cfg)
	if err != nil {
		return nil, fmt.Errorf("New %s: %w", v, err)
	}

	var rgb, label ops.Chain
	if v == Train {
		rgb, label, err = trainChains(cfg, src)
	} else {
		rgb, label, err = evalChains(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("New %s: %w", v, err)
	}
	if err = ops.ValidateCoupled(rgb, label); err != nil {
		return nil, fmt.Errorf("New %s: %w", v, err)
	}
	if err = ops.ValidateGeometricOnly(label); err != nil {
		return nil, fmt.Errorf("New %s: %w", v, err)
	}

	d := &Dataset{
		variant:    v,
		src:        src,
		epoch:      s.epoch,
		target:     cfg.TargetSize,
		rgbChain:   rgb,
		labelChain: label,
		provider:   p,
		log:        s.log,
		metrics:    s.metrics,
	}
	d.log.Info("pipeline assembled",
		"variant", string(v),
		"target", cfg.TargetSize.String(),
		"rgb", rgb.String(),
		"label", label.String(),
		"seed", src.Seed(),
		"epoch", s.epoch)

	return d, nil
}

func sourceFor(cfg Config) (syncrand.Source, error) {
	if cfg.Seed != nil {
		return syncrand.NewSource(*cfg.Seed), nil
	}

	return syncrand.RandomSource()
}

// Variant reports which chains the Dataset runs.
func (d *Dataset) Variant() Variant { return d.variant }

// Seed reports the seed used for key-derived decisions.
func (d *Dataset) Seed() uint64 { return d.src.Seed() }

// Epoch reports the salt mixed into every sample key.
func (d *Dataset) Epoch() uint64 { return d.epoch }

// AtEpoch returns a Dataset sharing d's chains, provider and seed whose
// decisions are salted with e. Calling it once per pass over the data gives
// every sample fresh flips, crops and jitter while rgb and label stay aligned
// within the pass.
func (d *Dataset) AtEpoch(e uint64) *Dataset {
	cp := *d
	cp.epoch = e

	return &cp
}

// RGB materializes the color modality of (key, linkIndex).
func (d *Dataset) RGB(key string, linkIndex int, mc ModalityConfig) (*tensor.Dense, error) {
	return d.create(ModalityRGB, record.KindColorBGR8, d.rgbChain, key, linkIndex, mc)
}

// Label materializes the label modality of (key, linkIndex).
func (d *Dataset) Label(key string, linkIndex int, mc ModalityConfig) (*tensor.Dense, error) {
	return d.create(ModalityLabel, record.KindSemantic2D, d.labelChain, key, linkIndex, mc)
}

// Chains returns the assembled chain per modality name.
func (d *Dataset) Chains() map[string]ops.Chain {
	return map[string]ops.Chain{ModalityRGB: d.rgbChain, ModalityLabel: d.labelChain}
}

// Funcs returns the create function per modality name, for providers that
// look callables up by name.
func (d *Dataset) Funcs() map[string]CreateFunc {
	return map[string]CreateFunc{ModalityRGB: d.RGB, ModalityLabel: d.Label}
}

// Create dispatches to RGB or Label by modality name.
func (d *Dataset) Create(modality, key string, linkIndex int, mc ModalityConfig) (*tensor.Dense, error) {
	switch modality {
	case ModalityRGB:
		return d.RGB(key, linkIndex, mc)
	case ModalityLabel:
		return d.Label(key, linkIndex, mc)
	default:
		return nil, fmt.Errorf("Create %q: %w", modality, ErrUnknownModality)
	}
}

func (d *Dataset) create(modality string, want record.Kind, chain ops.Chain, key string, linkIndex int, mc ModalityConfig) (*tensor.Dense, error) {
	start := time.Now()
	out, err := d.materialize(modality, want, chain, key, linkIndex, mc)
	d.metrics.Observe(string(d.variant), modality, time.Since(start), err)
	if err != nil {
		d.log.Warn("sample failed",
			"variant", string(d.variant), "modality", modality,
			"key", key, "link", linkIndex, "epoch", d.epoch, "err", err)
		return nil, &SampleError{Variant: d.variant, Modality: modality, Key: key, LinkIndex: linkIndex, Err: err}
	}
	d.log.Debug("sample materialized",
		"variant", string(d.variant), "modality", modality,
		"key", key, "link", linkIndex, "shape", out.Shape().String())

	return out, nil
}

func (d *Dataset) materialize(modality string, want record.Kind, chain ops.Chain, key string, linkIndex int, mc ModalityConfig) (*tensor.Dense, error) {
	if mc.Name == "" {
		mc.Name = modality
	}
	raw, err := d.provider.Fetch(mc, key, linkIndex)
	if err != nil {
		return nil, err
	}
	rec, err := record.Decode(raw)
	if err != nil {
		return nil, err
	}
	if rec.Kind() != want {
		return nil, fmt.Errorf("stored %s, want %s: %w", rec.Kind(), want, ops.ErrUnsupportedType)
	}

	res, err := chain.Apply(syncrand.EpochKey(key, linkIndex, d.epoch), rec)
	if err != nil {
		return nil, err
	}
	out := res.Tensor()
	if err = checkDeclaredShape(out.Shape(), d.target, mc.Shape); err != nil {
		return nil, err
	}

	return out, nil
}

// checkDeclaredShape compares a declared (H, W[, C]) against the resize
// target and the output channel count. The declared extent is the target
// even when a training crop shrinks the output below it.
func checkDeclaredShape(got tensor.Shape, target tensor.Size, declared []int) error {
	if len(declared) == 0 {
		return nil
	}
	ok := (len(declared) == 2 || len(declared) == 3) &&
		declared[0] == target.Height && declared[1] == target.Width
	if ok && len(declared) == 3 {
		ok = declared[2] == got.Channels
	}
	if !ok {
		return fmt.Errorf("output %s (target %s), declared %v: %w", got, target, declared, record.ErrShape)
	}

	return nil
}
