// SPDX-License-Identifier: EPL-2.0

package beepsink

import (
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/sharawadji/formats/wav"
)

const captureChunk = 512

// Capture pulls frames from s and appends them to dst as interleaved stereo
// float32. It stops early if s ends.
func Capture(dst []float32, s beep.Streamer, frames int) []float32 {
	chunk := make([][2]float64, captureChunk)
	for frames > 0 {
		n, ok := s.Stream(chunk[:min(frames, captureChunk)])
		for _, f := range chunk[:n] {
			dst = append(dst, float32(f[0]), float32(f[1]))
		}
		frames -= n
		if !ok || n == 0 {
			break
		}
	}
	return dst
}

// Render writes d of s to w as a 16-bit stereo WAV file.
func Render(w io.WriteSeeker, s beep.Streamer, rate beep.SampleRate, d time.Duration) error {
	samples := Capture(nil, s, rate.N(d))
	return wav.Encode(w, int(rate), 2, samples)
}
