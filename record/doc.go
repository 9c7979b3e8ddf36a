// SPDX-License-Identifier: MIT

// Package record defines the typed array records that flow through operator
// chains.
//
// The set of record variants is closed:
//
//	Color       8-bit BGR image, H×W×3, values in [0, 255]
//	Label       2-D semantic label map, H×W×1, non-negative class ids
//	Normalized  float array produced by normalization
//
// Only this package can implement Record, so a type switch over the three
// variants is exhaustive. Records are immutable; operators build new ones.
package record
