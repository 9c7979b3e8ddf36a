// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/syncrand"
)

// Chain is an ordered, immutable list of operators bound to one modality.
type Chain struct {
	ops []Operator
}

// NewChain validates ops (non-nil, unique ids) and freezes their order.
func NewChain(ops ...Operator) (Chain, error) {
	seen := make(map[string]int, len(ops))
	for i, op := range ops {
		if op == nil {
			return Chain{}, fmt.Errorf("NewChain: step %d: %w", i, ErrNilOperator)
		}
		if j, dup := seen[op.ID()]; dup {
			return Chain{}, fmt.Errorf("NewChain: %q at steps %d and %d: %w", op.ID(), j, i, ErrDuplicateID)
		}
		seen[op.ID()] = i
	}

	return Chain{ops: append([]Operator(nil), ops...)}, nil
}

// Len returns the number of steps.
func (c Chain) Len() int { return len(c.ops) }

// Operators returns a copy of the steps.
func (c Chain) Operators() []Operator { return append([]Operator(nil), c.ops...) }

// IDs returns the operator ids in order, optionally restricted to classes.
func (c Chain) IDs(classes ...Class) []string {
	ids := make([]string, 0, len(c.ops))
	for _, op := range c.ops {
		if len(classes) == 0 || hasClass(classes, op.Class()) {
			ids = append(ids, op.ID())
		}
	}

	return ids
}

func hasClass(classes []Class, c Class) bool {
	for _, x := range classes {
		if x == c {
			return true
		}
	}

	return false
}

// Apply runs every step in order. The first failure aborts the chain; no
// partial result is returned.
func (c Chain) Apply(key syncrand.Key, in record.Record) (record.Record, error) {
	cur := in
	for i, op := range c.ops {
		next, err := op.Apply(key, cur)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		cur = next
	}

	return cur, nil
}

// String renders the chain as "resize > flip > ...".
func (c Chain) String() string {
	return strings.Join(c.IDs(), " > ")
}

// ValidateCoupled checks that every chain lists the same geometric operator
// ids in the same relative order, so their key-derived decisions line up.
func ValidateCoupled(chains ...Chain) error {
	if len(chains) < 2 {
		return nil
	}
	want := chains[0].IDs(Geometric)
	for i, ch := range chains[1:] {
		got := ch.IDs(Geometric)
		if strings.Join(got, "\x00") != strings.Join(want, "\x00") {
			return fmt.Errorf("ValidateCoupled: chain %d %v vs %v: %w", i+1, got, want, ErrUncoupled)
		}
	}

	return nil
}

// ValidateGeometricOnly checks a non-color chain holds no photometric or
// normalizing step.
func ValidateGeometricOnly(c Chain) error {
	for i, op := range c.ops {
		if op.Class() != Geometric {
			return fmt.Errorf("ValidateGeometricOnly: step %d %q is %s: %w", i, op.ID(), op.Class(), ErrUnsupportedType)
		}
	}

	return nil
}
