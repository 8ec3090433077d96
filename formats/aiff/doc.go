// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to parse the container. Integer
// PCM at 8, 16, 24 and 32 bits is supported with any channel count and sample
// rate; samples come out as float32 in [-1,1].
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not an AIFF container
//	}
//
// # AIFF vs. WAV
//
// AIFF is similar to WAV but:
//   - Uses big-endian byte order (WAV uses little-endian)
//   - Stores 8-bit samples signed (WAV stores them unsigned)
//   - Stores sample rate as an 80-bit float (WAV uses a 32-bit int)
//
// # Limitations
//
// AIFF writing is not supported. Compressed AIFF-C is rejected by the
// container parser.
package aiff
