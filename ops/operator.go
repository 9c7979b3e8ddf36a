// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/syncrand"
)

// Class groups operators by how they may be placed in chains.
type Class int

const (
	Geometric Class = iota + 1
	Photometric
	Normalizing
)

func (c Class) String() string {
	switch c {
	case Geometric:
		return "geometric"
	case Photometric:
		return "photometric"
	case Normalizing:
		return "normalizing"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Operator is a configured, immutable transform from one record to another.
// Apply never mutates its input.
type Operator interface {
	ID() string
	Class() Class
	Apply(key syncrand.Key, in record.Record) (record.Record, error)
}

// ColorOperator is implemented by operators that accept Color records.
type ColorOperator interface {
	ApplyColor(key syncrand.Key, in record.Color) (record.Record, error)
}

// LabelOperator is implemented by operators that accept Label records.
type LabelOperator interface {
	ApplyLabel(key syncrand.Key, in record.Label) (record.Label, error)
}

// NormalizedOperator is implemented by operators that accept Normalized records.
type NormalizedOperator interface {
	ApplyNormalized(key syncrand.Key, in record.Normalized) (record.Normalized, error)
}

// dispatch routes in to the variant method op implements, or fails with
// ErrUnsupportedType.
func dispatch(op Operator, key syncrand.Key, in record.Record) (record.Record, error) {
	switch r := in.(type) {
	case record.Color:
		if c, ok := op.(ColorOperator); ok {
			return c.ApplyColor(key, r)
		}
	case record.Label:
		if l, ok := op.(LabelOperator); ok {
			return l.ApplyLabel(key, r)
		}
	case record.Normalized:
		if n, ok := op.(NormalizedOperator); ok {
			return n.ApplyNormalized(key, r)
		}
	case nil:
		return nil, opErrorf(op.ID(), fmt.Errorf("nil record: %w", ErrUnsupportedType))
	}

	return nil, opErrorf(op.ID(), fmt.Errorf("%s: %w", in.Kind(), ErrUnsupportedType))
}

// asRecord converts a typed constructor result into the Operator.Apply
// shape, keeping the record nil when err is set.
func asRecord[R record.Record](r R, err error) (record.Record, error) {
	if err != nil {
		return nil, err
	}

	return r, nil
}
