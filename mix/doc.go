// SPDX-License-Identifier: EPL-2.0

// Package mix is the proximity-driven mixing core.
//
// An Engine owns one Sound per configured source. Each listener change from
// the PositionProvider triggers UpdateMix, which counts the sounds currently
// playing, derives the crowd attenuation from that count and reconsiders every
// sound in insertion order. Reconsidering moves a sound through its lifecycle
// and pushes gain, filter cutoff and spatial position to the Sink:
//
//	Idle      -> Loading    listener inside LoadThreshold
//	Loading   -> Suspended  decode succeeded
//	Loading   -> Idle       decode failed, retried after a backoff delay
//	Loading   -> Failed     RetryLimit consecutive failures
//	Suspended -> Playing    listener inside PlayThreshold
//	Playing   -> Suspended  listener at or beyond PlayThreshold
//
// Any state moves to Removed on explicit removal, and Removed is terminal.
//
// Two thresholds keep sounds from thrashing at a boundary: loading starts
// inside LoadThreshold, playback only inside the smaller PlayThreshold.
//
// # Sinks
//
// The engine drives a Sink through opaque handles. At construction it picks
// one spatial feed: a PositionalSink receives listener-relative X/Y/Z, a
// PanningSink receives the legacy pan value. A sink offering neither is
// rejected with ErrCapabilityUnavailable.
//
// # Concurrency
//
// All lifecycle state is guarded by the engine mutex. Loads run in their own
// goroutines and take the mutex only to deliver their result; a result for a
// sound that has moved on (removed, or replaced by a newer attempt) is dropped
// without touching the sink.
package mix
