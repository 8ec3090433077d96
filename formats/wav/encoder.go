// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

const bitDepth = 16

// Encode writes interleaved float samples as a 16-bit PCM WAV file.
// Samples outside [-1,1] are clamped.
func Encode(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	if sampleRate <= 0 || channels <= 0 {
		return ErrInvalidFormat
	}
	if len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrInvalidFormat, len(samples), channels)
	}

	enc := gowav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: bitDepth,
	}
	for i, v := range samples {
		buf.Data[i] = int(ToInt16(v))
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalising header: %w", err)
	}
	return nil
}

// ToInt16 maps a float sample to 16-bit PCM.
func ToInt16(v float32) int16 {
	if math.IsNaN(float64(v)) {
		return 0
	}
	if v >= 1 {
		return math.MaxInt16
	}
	if v <= -1 {
		return math.MinInt16
	}
	return int16(v * 32767)
}
