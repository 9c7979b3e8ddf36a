// SPDX-License-Identifier: MIT
// Package ops: sentinel error set.
// Operators return these sentinels wrapped with the operator id, e.g.
// "flip: semantic2d: record: unsupported type". Match with errors.Is.

package ops

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvaugment/record"
)

var (
	// ErrUnsupportedType indicates an operator applied to a record variant it
	// does not accept (photometric on a label, Linear resize on a label).
	ErrUnsupportedType = record.ErrUnsupportedType

	// ErrShape indicates input extents the operator cannot process, such as
	// a crop window larger than the image.
	ErrShape = record.ErrShape

	// ErrRange indicates normalization input outside the declared source
	// range under the strict policy.
	ErrRange = errors.New("ops: value outside source range")

	// ErrInvalidRate indicates a flip probability outside [0, 1].
	ErrInvalidRate = errors.New("ops: rate must be within [0, 1]")

	// ErrInvalidInterpolation indicates an unknown interpolation mode.
	ErrInvalidInterpolation = errors.New("ops: unknown interpolation mode")

	// ErrInvalidCrop indicates an unknown crop policy or negative fixed offset.
	ErrInvalidCrop = errors.New("ops: invalid crop policy")

	// ErrNilOperator indicates a nil operator passed to NewChain.
	ErrNilOperator = errors.New("ops: nil operator")

	// ErrDuplicateID indicates two operators with the same id in one chain;
	// they would share every random decision.
	ErrDuplicateID = errors.New("ops: duplicate operator id in chain")

	// ErrUncoupled indicates coupled chains whose geometric operators differ
	// in id or order.
	ErrUncoupled = errors.New("ops: geometric operators of coupled chains differ")
)

// opErrorf tags err with the operator id.
func opErrorf(id string, err error) error {
	return fmt.Errorf("%s: %w", id, err)
}
