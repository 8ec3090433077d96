// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Resampler streams from src at a new sample rate using Catmull-Rom
// interpolation over a four frame window. Channel count is preserved.
// When downsampling, frames pass a one-pole low-pass first to tame aliasing.
type Resampler struct {
	src      Source
	channels int
	rate     int
	step     float64 // source frames consumed per output frame

	// window[1] and window[2] bracket the output position
	window [4][]float32
	real   [4]bool
	primed bool
	pos    float64

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool

	smooth []float32
	alpha  float32
	warm   bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)
	r := &Resampler{
		src:      src,
		channels: channels,
		rate:     dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		in:       make([]float32, 1024*channels),
		smooth:   make([]float32, channels),
	}
	if r.step > 1 {
		r.alpha = 0.5
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame copies the next source frame into dst.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	for r.inPos >= r.inLen {
		if r.srcEOF {
			return false, nil
		}
		n, err := r.src.ReadSamples(r.in)
		r.inPos = 0
		r.inLen = n - n%r.channels
		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.alpha > 0 {
		if !r.warm {
			// start the filter on the first frame instead of silence
			copy(r.smooth, dst)
			r.warm = true
		}
		for c := range dst {
			r.smooth[c] = r.alpha*dst[c] + (1-r.alpha)*r.smooth[c]
			dst[c] = r.smooth[c]
		}
	}
	return true, nil
}

// fill loads window slot i, duplicating slot i-1 past the end of the source.
func (r *Resampler) fill(i int) error {
	ok, err := r.readFrame(r.window[i])
	if err != nil {
		return err
	}
	r.real[i] = ok
	if !ok {
		copy(r.window[i], r.window[i-1])
	}
	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame(r.window[1])
	if err != nil || !ok {
		return err
	}
	r.real[1] = true
	copy(r.window[0], r.window[1])
	r.real[0] = true

	if err := r.fill(2); err != nil {
		return err
	}
	return r.fill(3)
}

func (r *Resampler) advance() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.real[:], r.real[1:])
	r.window[3] = first
	return r.fill(3)
}

// ReadSamples produces interleaved samples at the target rate.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.step == 1 {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		for r.pos >= 1 && r.real[1] {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}
		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = catmullRom(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}

// catmullRom interpolates between y1 and y2 at 0 <= x <= 1.
func catmullRom(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}
