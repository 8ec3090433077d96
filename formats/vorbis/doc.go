// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio decoding.
//
// This package uses github.com/jfreymuth/oggvorbis. Samples are interleaved
// float32 in [-1,1] at the stream's own rate and channel count:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// Reads always cover whole frames, so dst should be sized as a multiple of
// the channel count; a dst shorter than one frame returns
// audio.ErrInvalidDstSize.
//
// Vorbis encoding is not supported.
package vorbis
