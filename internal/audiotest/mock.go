// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds synthetic audio sources for tests.
package audiotest

import (
	"io"
	"math"
	"time"
)

// MockSource generates a fixed number of frames from a waveform function.
// It satisfies audio.Source without importing it.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	closed     bool
	waveform   func(frame, channel int) float32
}

// NewMockSource creates a source of frames frames per channel.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewRampSource counts frames, handy for checking ordering and offsets.
func NewRampSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(frame)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the generator.
func (m *MockSource) Reset() { m.pos = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.pos)
	for f := range n {
		for c := range m.channels {
			dst[f*m.channels+c] = m.waveform(m.pos+f, c)
		}
	}
	m.pos += n

	if m.pos >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}

// BlockingSource hands out silence until Release is closed, then ends.
// It lets tests hold a decode open to exercise cancellation.
type BlockingSource struct {
	*MockSource
	Release chan struct{}
}

func NewBlockingSource(sampleRate int) *BlockingSource {
	return &BlockingSource{
		MockSource: NewSilentSource(sampleRate, 1, math.MaxInt32),
		Release:    make(chan struct{}),
	}
}

func (b *BlockingSource) ReadSamples(dst []float32) (int, error) {
	select {
	case <-b.Release:
		return 0, io.EOF
	case <-time.After(time.Millisecond):
	}
	n := min(len(dst), 16)
	clear(dst[:n])
	return n, nil
}
