// Package lvaugment is a key-synchronized image/label augmentation library
// for segmentation-style training data.
//
// What is lvaugment?
//
//	A small, deterministic transform pipeline that brings together:
//		• Typed records: BGR8 color images, semantic label maps, normalized arrays
//		• Geometric operators: Resize (linear/nearest), Crop, Flip
//		• Photometric operators: Brightness, Contrast, Saturation, Hue
//		• Normalization onto the unit interval, strict or clamping
//		• Train/Eval assemblers producing per-modality create functions
//
// Every random decision is a pure function of (seed, sample key, operator
// id), so a color image and its label map materialized independently, in any
// order and on any goroutine, still receive the same flip and crop.
//
// Packages:
//
//	tensor/     - row-major H×W×C float arrays and spatial kernels
//	valuerange/ - closed [low, high] intervals and key-derived sampling
//	syncrand/   - BLAKE3-derived uniform draws per (seed, key, operator, stream)
//	record/     - sealed record variants and the raw provider form
//	ops/        - operators, chains and coupling checks
//	pipeline/   - Config, Train/Eval assembly, Dataset
//	config/     - YAML + env loader (koanf)
//	logging/    - process slog logger
//	telemetry/  - prometheus collectors
//
// Quick ASCII example:
//
//	rgb   : resize ─ flip ─ brightness ─ contrast ─ saturation ─ hue ─ normalize
//	label : resize ─ flip
//	               ▲
//	               └─ same operator id ⇒ same decision for a key
//
//	go get github.com/katalvlaran/lvaugment
package lvaugment
