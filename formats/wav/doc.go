// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files on top of github.com/go-audio/wav.
//
// The decoder accepts integer PCM at 8, 16, 24 and 32 bits with any channel
// count and sample rate. Samples come out as float32 in [-1,1]; 8-bit WAV data
// is unsigned and is re-centred first.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // try another decoder
//	}
//
// Decode needs to seek. A reader that cannot seek is read into memory first.
//
// Encode writes interleaved float samples as 16-bit PCM. It is what the
// offline renderer uses to save a mix:
//
//	f, _ := os.Create("walk.wav")
//	err := wav.Encode(f, 44100, 2, samples)
package wav
