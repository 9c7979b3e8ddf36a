// SPDX-License-Identifier: MIT

// Package tensor provides the dense array substrate used by every operator.
//
// What & Why:
//
//	Dense is a row-major H×W×C array of float64 values stored in a single
//	flat slice. Color images (C=3), label maps (C=1) and normalized outputs
//	all share this layout so geometric kernels can be written once.
//
// Layout:
//
//	index(y, x, c) = (y*W + x)*C + c
//
// Complexity:
//
//	Shape, At and Set run in O(1). Clone, Map and Clamp run in O(H*W*C) and
//	always allocate a fresh array; inputs are never mutated.
package tensor
