// SPDX-License-Identifier: MIT

package syncrand

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"
)

// Key identifies one logical sample. All operator calls that must move in
// lockstep for that sample use the same Key.
type Key string

// SampleKey builds the synchronization key shared by every modality of the
// sample addressed by (key, linkIndex).
func SampleKey(key string, linkIndex int) Key {
	return Key(fmt.Sprintf("%s#%d", key, linkIndex))
}

// EpochKey is SampleKey salted with an epoch counter. Epoch 0 yields the
// SampleKey itself.
func EpochKey(key string, linkIndex int, epoch uint64) Key {
	if epoch == 0 {
		return SampleKey(key, linkIndex)
	}

	return Key(fmt.Sprintf("%s#%d@%d", key, linkIndex, epoch))
}

// Source is a read-only seed for key-derived draws. The zero value is a
// valid source with seed 0.
type Source struct {
	seed uint64
}

// NewSource returns a Source with a fixed seed. Equal seeds reproduce equal
// decisions for equal keys across processes.
func NewSource(seed uint64) Source { return Source{seed: seed} }

// RandomSource returns a Source seeded from crypto/rand.
func RandomSource() (Source, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return Source{}, fmt.Errorf("syncrand: seed: %w", err)
	}

	return Source{seed: binary.LittleEndian.Uint64(b[:])}, nil
}

// Seed returns the configured seed.
func (s Source) Seed() uint64 { return s.seed }

// Float64 is Draw bound to this source's seed.
func (s Source) Float64(key Key, operatorID string, stream uint32) float64 {
	return Draw(s.seed, key, operatorID, stream)
}

// Bernoulli reports whether a draw for (key, operatorID, stream) falls below p.
// p <= 0 is always false and p >= 1 always true.
func (s Source) Bernoulli(key Key, operatorID string, stream uint32, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}

	return s.Float64(key, operatorID, stream) < p
}

// Intn returns a key-derived integer in [0, n). n <= 1 yields 0.
func (s Source) Intn(key Key, operatorID string, stream uint32, n int) int {
	if n <= 1 {
		return 0
	}
	i := int(s.Float64(key, operatorID, stream) * float64(n))
	if i >= n {
		i = n - 1
	}

	return i
}

// Draw hashes (seed, key, operatorID, stream) with BLAKE3 and maps the first
// 64 bits to a float64 in [0, 1) with 53-bit resolution.
// Fields are length-prefixed so ("ab","c") and ("a","bc") never collide.
func Draw(seed uint64, key Key, operatorID string, stream uint32) float64 {
	buf := make([]byte, 0, 8+4+len(key)+4+len(operatorID)+4)
	buf = binary.LittleEndian.AppendUint64(buf, seed)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(key)))
	buf = append(buf, key...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(operatorID)))
	buf = append(buf, operatorID...)
	buf = binary.LittleEndian.AppendUint32(buf, stream)

	sum := blake3.Sum256(buf)
	v := binary.LittleEndian.Uint64(sum[:8])

	return float64(v>>11) / (1 << 53)
}
