// SPDX-License-Identifier: MIT
// Package: tensor
//
// Purpose:
//  - Single source of truth for shape and numeric validation.
//  - Return plain sentinels wrapped with a validator tag.
//
// Determinism & Performance:
//  - All checks are pure and allocate nothing on success.

package tensor

import (
	"fmt"
	"math"
)

// ValidateShape ensures every extent of s is positive.
// Complexity: O(1).
func ValidateShape(s Shape) error {
	if s.Height <= 0 || s.Width <= 0 || s.Channels <= 0 {
		return fmt.Errorf("ValidateShape %s: %w", s, ErrBadShape)
	}

	return nil
}

// ValidateSize ensures both spatial extents are positive.
func ValidateSize(s Size) error {
	if !s.Valid() {
		return fmt.Errorf("ValidateSize %s: %w", s, ErrBadShape)
	}

	return nil
}

// ValidateNotNil ensures the array reference is non-nil.
func ValidateNotNil(d *Dense) error {
	if d == nil {
		return fmt.Errorf("ValidateNotNil: %w", ErrNilTensor)
	}

	return nil
}

// ValidateSameShape ensures a and b have identical extents.
// Assumes both are non-nil.
func ValidateSameShape(a, b *Dense) error {
	if a.shape != b.shape {
		return fmt.Errorf("ValidateSameShape %s vs %s: %w", a.shape, b.shape, ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite scans d and fails on the first NaN or ±Inf.
// Complexity: O(H*W*C).
func ValidateFinite(d *Dense) error {
	for i, v := range d.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("ValidateFinite at %d: %w", i, ErrNaNInf)
		}
	}

	return nil
}
