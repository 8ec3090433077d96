// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/sharawadji/audio"
)

// go-mp3 always produces interleaved stereo
const channels = 2

// reader is the part of gomp3.Decoder the source needs, split out for tests.
type reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  reader
	buf  []byte
	tail []byte // half a sample left over from the previous read
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst)*2 - len(s.tail)
	if cap(s.buf) < len(dst)*2 {
		s.buf = make([]byte, len(dst)*2)
	}
	s.buf = s.buf[:len(dst)*2]
	copy(s.buf, s.tail)
	got := len(s.tail)
	s.tail = s.tail[:0]

	n, err := s.dec.Read(s.buf[got : got+need])
	got += n
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}

	samples := got / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = float32(v) / 32768.0
	}
	if got%2 == 1 {
		s.tail = append(s.tail, s.buf[got-1])
	}

	if err == io.EOF {
		if samples == 0 {
			return 0, io.EOF
		}
		return samples, io.EOF
	}
	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{
		dec: dec,
		buf: make([]byte, 8192),
	}, nil
}
