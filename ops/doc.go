// SPDX-License-Identifier: MIT

// Package ops implements the transform operators and the chain that
// composes them.
//
// Operators fall into three classes:
//
//	Geometric     Resize, Crop, Flip. Accept every record variant and must
//	              appear in the same order in spatially coupled chains.
//	Photometric   Brightness, Contrast, Saturation, Hue. Color only.
//	Normalizing   Normalization. Color in, Normalized out.
//
// An operator supports a record variant by implementing the matching
// ColorOperator, LabelOperator or NormalizedOperator interface; Apply
// dispatches on the variant and reports ErrUnsupportedType for the rest.
//
// Random decisions come from syncrand: an operator draws from
// (seed, key, operator id, stream). Equal ids under the same key agree,
// which is what keeps a label flipped together with its image. Each
// photometric operator has its own id, so their factors vary separately.
package ops
