// SPDX-License-Identifier: MIT

// Package syncrand derives random decisions from synchronization keys.
//
// A decision is a pure function of (seed, key, operator id, stream):
//
//	u = Draw(seed, key, operatorID, stream) ∈ [0, 1)
//
// Two operator invocations that share seed, key and operator id observe the
// same u, which is how an image and its label agree on a flip without
// passing state between their chains. Distinct operator ids (one per
// photometric operator) or distinct streams (one per axis) give independent
// values. There is no mutable generator state, so concurrent samples never
// contend on a shared source.
package syncrand
