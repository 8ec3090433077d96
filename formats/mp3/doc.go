// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio decoding.
//
// This package uses github.com/hajimehoshi/go-mp3. The decoder always emits
// interleaved stereo float32 samples in [-1,1] at the stream's sample rate;
// mono files are duplicated onto both channels by go-mp3.
//
//	src, err := mp3.Decoder{}.Decode(file)
//	mono := audio.NewMonoMixer(src)
//
// MP3 writing is not supported.
package mp3
