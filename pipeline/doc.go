// SPDX-License-Identifier: MIT

// Package pipeline assembles operator chains into per-modality create
// functions for a sample provider.
//
// Two variants share the operator set:
//
//	Train  rgb:   Resize(Linear) [Crop] Flip Brightness Contrast Saturation Hue Normalize
//	       label: Resize(Nearest) [Crop] Flip
//	Eval   rgb:   Resize(Linear) Normalize
//	       label: Resize(Nearest)
//
// NewTrain and NewEval return a Dataset whose RGB and Label methods are the
// callables the provider invokes once per sample and modality. Both derive
// the synchronization key from (key, linkIndex[, epoch]) so the geometric
// decisions of the two chains always match. Nothing is registered in shared
// state; AtEpoch derives a re-salted Dataset for the next pass.
package pipeline
