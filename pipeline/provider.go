// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/lvaugment/record"
)

// Modality names.
const (
	ModalityRGB   = "rgb"
	ModalityLabel = "label"
)

// ModalityConfig is the per-modality entry of the provider's minibatch
// configuration. Shape, when set, is the declared minibatch shape (H, W[, C]):
// (H, W) must equal the resize target, the same shape SizeFromShape reads,
// and C the channel count of the materialized array. With a training crop
// the output is the crop size while the declared shape stays the target.
type ModalityConfig struct {
	Name  string
	Type  string
	Shape []int
}

// Provider hands out raw records. It is the boundary to the storage layer.
type Provider interface {
	Fetch(mc ModalityConfig, key string, linkIndex int) (record.Raw, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(mc ModalityConfig, key string, linkIndex int) (record.Raw, error)

// Fetch calls f.
func (f ProviderFunc) Fetch(mc ModalityConfig, key string, linkIndex int) (record.Raw, error) {
	return f(mc, key, linkIndex)
}

type sampleRef struct {
	modality string
	key      string
	link     int
}

// MapProvider is an in-memory Provider, safe for concurrent use.
type MapProvider struct {
	mu      sync.RWMutex
	samples map[sampleRef]record.Raw
}

// NewMapProvider returns an empty MapProvider.
func NewMapProvider() *MapProvider {
	return &MapProvider{samples: make(map[sampleRef]record.Raw)}
}

// Put stores raw under (modality, key, linkIndex), replacing any previous value.
func (p *MapProvider) Put(modality, key string, linkIndex int, raw record.Raw) {
	p.mu.Lock()
	p.samples[sampleRef{modality, key, linkIndex}] = raw
	p.mu.Unlock()
}

// Len returns the number of stored records.
func (p *MapProvider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.samples)
}

// Fetch looks up (mc.Name, key, linkIndex) and fails with ErrNotFound when
// nothing was stored there.
func (p *MapProvider) Fetch(mc ModalityConfig, key string, linkIndex int) (record.Raw, error) {
	p.mu.RLock()
	raw, ok := p.samples[sampleRef{mc.Name, key, linkIndex}]
	p.mu.RUnlock()
	if !ok {
		return record.Raw{}, fmt.Errorf("%s %q[%d]: %w", mc.Name, key, linkIndex, ErrNotFound)
	}

	return raw, nil
}
