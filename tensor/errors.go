// SPDX-License-Identifier: MIT
// Package tensor: sentinel error set.
// All constructors and indexers return these sentinels, optionally wrapped
// with fmt.Errorf("ctx: %w", ErrX). Callers match with errors.Is.

package tensor

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested shape has a non-positive extent.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrOutOfRange indicates that a (y, x, c) index is outside valid bounds.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrDimensionMismatch indicates that a backing slice or a second operand
	// does not match the declared shape.
	ErrDimensionMismatch = errors.New("tensor: dimension mismatch")

	// ErrNilTensor indicates that a nil *Dense was used.
	ErrNilTensor = errors.New("tensor: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("tensor: NaN or Inf encountered")
)

// tensorErrorf wraps an underlying error with a method tag.
func tensorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
