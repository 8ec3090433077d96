// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer decoders to audio.Source.
package pcm

import (
	"io"

	goaudio "github.com/go-audio/audio"
)

// Reader is the part of the go-audio wav and aiff decoders that is used.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM of any supported depth to float32 in [-1,1].
type Source struct {
	dec       Reader
	format    *goaudio.Format
	bitDepth  int
	unsigned8 bool
	intBuf    *goaudio.IntBuffer
	exhausted bool
}

// NewSource wraps dec. unsigned8 marks 8-bit data stored as unsigned bytes,
// as WAV does.
func NewSource(dec Reader, format *goaudio.Format, bitDepth int, unsigned8 bool) *Source {
	return &Source{
		dec:       dec,
		format:    format,
		bitDepth:  bitDepth,
		unsigned8: unsigned8,
	}
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) Close() error    { return nil }

// Scale returns the divisor for a bit depth; unknown depths read as 16-bit.
func Scale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 1 << 7
	case 24:
		return 1 << 23
	case 32:
		return 1 << 31
	default:
		return 1 << 15
	}
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.exhausted {
		return 0, io.EOF
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return 0, err
	}

	scale := Scale(s.bitDepth)
	offset := 0
	if s.bitDepth == 8 && s.unsigned8 {
		offset = 128
	}
	for i, v := range s.intBuf.Data[:n] {
		dst[i] = float32(v-offset) / scale
	}

	// a short read means the decoder ran dry
	if n < len(dst) || err == io.EOF {
		s.exhausted = true
		if n == 0 {
			return 0, io.EOF
		}
		return n, io.EOF
	}
	return n, nil
}
