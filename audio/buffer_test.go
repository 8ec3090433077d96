// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ik5/sharawadji/internal/audiotest"
)

func TestCollect(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 2, 1000)
	buf, err := Collect(context.Background(), src, 333)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if buf.Rate != 8000 || buf.Channels != 2 {
		t.Errorf("Collect() format = %d Hz x %d, want 8000 Hz x 2", buf.Rate, buf.Channels)
	}
	if buf.Frames() != 1000 {
		t.Errorf("Frames() = %d, want 1000", buf.Frames())
	}
	if buf.Duration() != 125*time.Millisecond {
		t.Errorf("Duration() = %v, want 125ms", buf.Duration())
	}
	for f := range buf.Frames() {
		if buf.Samples[2*f] != float32(f) {
			t.Fatalf("frame %d = %v, want %v", f, buf.Samples[2*f], f)
		}
	}
}

func TestCollect_Empty(t *testing.T) {
	t.Parallel()

	_, err := Collect(context.Background(), audiotest.NewSilentSource(8000, 1, 0), 64)
	if !errors.Is(err, ErrEmptyStream) {
		t.Errorf("Collect() error = %v, want ErrEmptyStream", err)
	}
}

func TestCollect_InvalidRate(t *testing.T) {
	t.Parallel()

	_, err := Collect(context.Background(), audiotest.NewSilentSource(0, 1, 10), 64)
	if !errors.Is(err, ErrInvalidRate) {
		t.Errorf("Collect() error = %v, want ErrInvalidRate", err)
	}
}

func TestCollect_Cancelled(t *testing.T) {
	t.Parallel()

	src := audiotest.NewBlockingSource(8000)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := Collect(ctx, src, 64)
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Collect() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Collect() did not observe cancellation")
	}
}

func TestBuffer_FrameAt(t *testing.T) {
	t.Parallel()

	buf := &Buffer{Samples: make([]float32, 1000), Rate: 100, Channels: 1}

	tests := []struct {
		offset time.Duration
		want   int
	}{
		{-time.Second, 0},
		{0, 0},
		{500 * time.Millisecond, 50},
		{9 * time.Second, 900},
		{time.Minute, 1000},
	}

	for _, tt := range tests {
		if got := buf.FrameAt(tt.offset); got != tt.want {
			t.Errorf("FrameAt(%v) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestBuffer_NilSafe(t *testing.T) {
	t.Parallel()

	var buf *Buffer
	if buf.Frames() != 0 || buf.Duration() != 0 {
		t.Error("nil Buffer should report zero frames and duration")
	}
}
