// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Buffer is a fully decoded stream kept in memory so playback can stop and
// resume without touching the asset again.
type Buffer struct {
	Samples  []float32 // interleaved
	Rate     int
	Channels int
}

// Frames is the number of sample frames held.
func (b *Buffer) Frames() int {
	if b == nil || b.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration is the playing time of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.Rate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.Rate)
}

// FrameAt converts a playback offset into a frame index clamped to the buffer.
func (b *Buffer) FrameAt(offset time.Duration) int {
	if offset <= 0 || b.Rate <= 0 {
		return 0
	}
	f := int(offset.Seconds() * float64(b.Rate))
	return min(f, b.Frames())
}

// Collect drains src into a Buffer, reading chunk samples at a time.
// The context is checked between chunks so an abandoned decode stops early;
// its error is returned wrapped.
func Collect(ctx context.Context, src Source, chunk int) (*Buffer, error) {
	if src.SampleRate() <= 0 {
		return nil, ErrInvalidRate
	}
	channels := max(src.Channels(), 1)
	if chunk < channels {
		chunk = 4096
	}
	chunk -= chunk % channels

	buf := &Buffer{
		Rate:     src.SampleRate(),
		Channels: channels,
		Samples:  make([]float32, 0, chunk*4),
	}
	tmp := make([]float32, chunk)

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("collecting samples: %w", err)
		}

		n, err := src.ReadSamples(tmp)
		buf.Samples = append(buf.Samples, tmp[:n]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	if len(buf.Samples) == 0 {
		return nil, ErrEmptyStream
	}
	return buf, nil
}
