// SPDX-License-Identifier: EPL-2.0

package beepsink

import (
	"math"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/sharawadji/audio"
	"github.com/ik5/sharawadji/mix"
)

// cutoff coefficients are refreshed this often while gliding
const retuneEvery = 32

// voice is the per-handle DSP state. It is only touched with the sink lock
// held.
type voice struct {
	desc mix.Descriptor
	rate float64
	ref  float64

	buf  *beep.Buffer
	play *playback

	gain    ramp
	cutoff  ramp
	pan     ramp
	rolloff ramp
	filter  *biquad
	step    int
}

func newVoice(d mix.Descriptor, o Options) *voice {
	v := &voice{
		desc:   d,
		rate:   float64(o.SampleRate),
		ref:    o.RolloffReference,
		filter: newBiquad(d.Filter(), o.FilterQ),
	}
	v.rolloff.set(1, 0)
	v.cutoff.set(v.rate/2, 0)
	v.filter.tune(v.cutoff.cur, v.rate)
	return v
}

// place glides pan and rolloff towards a listener-relative position over
// the given number of samples.
func (v *voice) place(x, y, z float64, samples int) {
	d := math.Sqrt(x*x + y*y + z*z)
	az := math.Atan2(x, z)
	v.pan.set(math.Sin(az), samples)
	v.rolloff.set(rolloffGain(d, v.ref, v.desc.Rolloff), samples)
}

// rolloffGain is the inverse distance model: ref / (ref + k·(d − ref)).
func rolloffGain(d, ref, k float64) float64 {
	if k <= 0 || d <= ref {
		return 1
	}
	return ref / (ref + k*(d-ref))
}

// legacyPan folds the historical pan value, which spans (-2,2), onto a
// stereo position in [-1,1]: past a quarter turn the image swings back.
func legacyPan(p float64) float64 {
	switch {
	case p > 1:
		return 2 - p
	case p < -1:
		return -2 - p
	}
	return p
}

// process runs the voice stage over freshly streamed samples.
func (v *voice) process(samples [][2]float64) {
	for i := range samples {
		if v.cutoff.active() {
			c := v.cutoff.next()
			if v.step%retuneEvery == 0 {
				v.filter.tune(c, v.rate)
			}
			v.step++
		}

		x := (samples[i][0] + samples[i][1]) / 2
		y := v.filter.process(x) * v.gain.next() * v.rolloff.next()

		theta := (v.pan.next() + 1) * math.Pi / 4
		samples[i][0] = y * math.Cos(theta)
		samples[i][1] = y * math.Sin(theta)
	}
	if !v.cutoff.active() && v.step != 0 {
		v.filter.tune(v.cutoff.cur, v.rate)
		v.step = 0
	}
}

// playback is one Start of a voice. Stopping empties its Ctrl so the mixer
// drops it on the next pull.
type playback struct {
	v    *voice
	ctrl *beep.Ctrl
	done bool
}

func (p *playback) Stream(samples [][2]float64) (int, bool) {
	n, ok := p.ctrl.Stream(samples)
	if n > 0 {
		p.v.process(samples[:n])
	}
	if !ok {
		p.done = true
	}
	return n, ok
}

func (p *playback) Err() error { return p.ctrl.Err() }

// bufferStreamer feeds an audio.Buffer to beep, averaging channels to mono.
type bufferStreamer struct {
	buf *audio.Buffer
	pos int
}

func (s *bufferStreamer) Stream(samples [][2]float64) (int, bool) {
	ch := s.buf.Channels
	frames := s.buf.Frames()
	if s.pos >= frames {
		return 0, false
	}

	n := 0
	for n < len(samples) && s.pos < frames {
		frame := s.buf.Samples[s.pos*ch : (s.pos+1)*ch]
		var sum float64
		for _, x := range frame {
			sum += float64(x)
		}
		m := sum / float64(ch)
		samples[n] = [2]float64{m, m}
		n++
		s.pos++
	}
	return n, true
}

func (s *bufferStreamer) Err() error { return nil }
