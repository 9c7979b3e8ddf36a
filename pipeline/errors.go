// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrBadConfig indicates a Config that cannot be assembled into chains.
	ErrBadConfig = errors.New("pipeline: invalid configuration")

	// ErrNotFound is returned by MapProvider for an unknown (modality, key, link).
	ErrNotFound = errors.New("pipeline: sample not found")

	// ErrUnknownModality is returned by Dataset.Create for a name other than
	// "rgb" or "label".
	ErrUnknownModality = errors.New("pipeline: unknown modality")

	// ErrNilProvider indicates NewTrain/NewEval called without a provider.
	ErrNilProvider = errors.New("pipeline: nil provider")
)

// SampleError reports which sample and modality failed. It unwraps to the
// underlying operator, record or provider error.
type SampleError struct {
	Variant   Variant
	Modality  string
	Key       string
	LinkIndex int
	Err       error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("pipeline: %s %s %q[%d]: %v", e.Variant, e.Modality, e.Key, e.LinkIndex, e.Err)
}

func (e *SampleError) Unwrap() error { return e.Err }
