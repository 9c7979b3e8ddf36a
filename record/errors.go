// SPDX-License-Identifier: MIT
// Package record: sentinel error set.

package record

import "errors"

var (
	// ErrShape indicates an array rank or extent that is invalid for the
	// declared record type (e.g. a two-channel color image).
	ErrShape = errors.New("record: shape does not match type")

	// ErrUnsupportedType indicates an unknown type tag, or an operator applied
	// to a record variant it does not accept.
	ErrUnsupportedType = errors.New("record: unsupported type")

	// ErrDomain indicates values outside the domain of the record type
	// (color outside [0,255], negative or fractional class ids, NaN/Inf).
	ErrDomain = errors.New("record: value outside type domain")
)
