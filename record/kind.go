// SPDX-License-Identifier: MIT

package record

import (
	"fmt"
	"strings"
)

// Kind tags a record variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindColorBGR8
	KindSemantic2D
	KindNormalized
)

// Storage type tags accepted by ParseKind.
const (
	TagColorBGR8  = "bgr8"
	TagSemantic2D = "semantic2d"
	TagNormalized = "normalized"
)

// String returns the storage tag of k.
func (k Kind) String() string {
	switch k {
	case KindColorBGR8:
		return TagColorBGR8
	case KindSemantic2D:
		return TagSemantic2D
	case KindNormalized:
		return TagNormalized
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a storage type tag (case-insensitive) to a Kind.
func ParseKind(tag string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case TagColorBGR8:
		return KindColorBGR8, nil
	case TagSemantic2D:
		return KindSemantic2D, nil
	case TagNormalized:
		return KindNormalized, nil
	default:
		return KindUnknown, fmt.Errorf("ParseKind(%q): %w", tag, ErrUnsupportedType)
	}
}
