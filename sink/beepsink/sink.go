// SPDX-License-Identifier: EPL-2.0

package beepsink

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/decred/slog"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/ik5/sharawadji/audio"
	"github.com/ik5/sharawadji/mix"
)

const resampleQuality = 4

// Loader produces decoded buffers for Decode. asset.Loader is one.
type Loader interface {
	Load(ctx context.Context, ref string) (*audio.Buffer, error)
}

// graph is everything both sink flavours share.
type graph struct {
	mu sync.Mutex

	opts   Options
	format beep.Format
	loader Loader
	log    slog.Logger

	mixer   *beep.Mixer
	master  *effects.Gain
	limiter *limiter

	voices map[mix.Handle]*voice
	next   mix.Handle
	closed bool
}

func newGraph(loader Loader, opts Options, log slog.Logger) *graph {
	if log == nil {
		log = slog.Disabled
	}

	g := &graph{
		opts: opts,
		format: beep.Format{
			SampleRate:  beep.SampleRate(opts.SampleRate),
			NumChannels: 2,
			Precision:   3,
		},
		loader: loader,
		log:    log,
		mixer:  &beep.Mixer{},
		voices: make(map[mix.Handle]*voice),
	}
	g.master = &effects.Gain{Streamer: g.mixer, Gain: opts.Volume - 1}
	g.limiter = &limiter{Streamer: g.master, Threshold: opts.LimiterThreshold}
	return g
}

// Format is the output format of the sink.
func (g *graph) Format() beep.Format { return g.format }

// Stream renders the mix. It never ends; silence fills the gaps.
func (g *graph) Stream(samples [][2]float64) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0
	if !g.closed {
		n, _ = g.limiter.Stream(samples)
	}
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (g *graph) Err() error { return nil }

func (g *graph) CreateResources(d mix.Descriptor) (mix.Handle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return 0, ErrClosed
	}
	g.next++
	g.voices[g.next] = newVoice(d, g.opts)
	g.log.Debugf("Created voice %d for %s", g.next, d.Name)
	return g.next, nil
}

func (g *graph) Decode(ctx context.Context, ref string) (*audio.Buffer, error) {
	if g.loader == nil {
		return nil, fmt.Errorf("no loader for %s", ref)
	}
	return g.loader.Load(ctx, ref)
}

// Connect stores buf in the voice at the sink's rate.
func (g *graph) Connect(h mix.Handle, buf *audio.Buffer) error {
	if buf == nil || buf.Frames() == 0 {
		return fmt.Errorf("%w: empty buffer", ErrNotConnected)
	}

	// convert outside the lock, it can take a while
	var src beep.Streamer = &bufferStreamer{buf: buf}
	if buf.Rate != g.opts.SampleRate {
		src = beep.Resample(resampleQuality, beep.SampleRate(buf.Rate), g.format.SampleRate, src)
	}
	stored := beep.NewBuffer(g.format)
	stored.Append(src)

	g.mu.Lock()
	defer g.mu.Unlock()

	v, ok := g.voices[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	v.buf = stored
	return nil
}

func (g *graph) samples(d time.Duration) int {
	return g.format.SampleRate.N(d)
}

func (g *graph) SetGain(h mix.Handle, gain float64, ramp time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if v, ok := g.voices[h]; ok {
		v.gain.set(gain, g.samples(ramp))
	}
}

func (g *graph) SetFilterCutoff(h mix.Handle, hz float64, ramp time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, ok := g.voices[h]
	if !ok {
		return
	}
	v.cutoff.set(hz, g.samples(ramp))
	if !v.cutoff.active() {
		v.filter.tune(hz, v.rate)
	}
}

// Start plays the connected buffer from offset up to the descriptor's end
// time, looping that span when the sound loops.
func (g *graph) Start(h mix.Handle, offset time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, ok := g.voices[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	if v.buf == nil {
		return fmt.Errorf("%w: %d", ErrNotConnected, h)
	}

	from := min(g.samples(offset), v.buf.Len())
	to := v.buf.Len()
	if v.desc.EndTime > 0 {
		to = min(g.samples(v.desc.EndTime), to)
	}
	if to <= from {
		return fmt.Errorf("%w: nothing to play between %v and %v", ErrNotConnected, offset, v.desc.EndTime)
	}

	seg := v.buf.Streamer(from, to)
	var s beep.Streamer = seg
	if v.desc.Looping() {
		looped, err := beep.Loop2(seg)
		if err != nil {
			return fmt.Errorf("looping voice %d: %w", h, err)
		}
		s = looped
	}

	g.stopLocked(v)
	v.filter.reset()
	v.play = &playback{v: v, ctrl: &beep.Ctrl{Streamer: s}}
	g.mixer.Add(v.play)
	g.log.Debugf("Started voice %d (%s) at %v", h, v.desc.Name, offset)
	return nil
}

func (g *graph) Stop(h mix.Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if v, ok := g.voices[h]; ok {
		g.stopLocked(v)
	}
}

// Ended reports whether the current playback of h ran to its end.
func (g *graph) Ended(h mix.Handle) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, ok := g.voices[h]
	return ok && v.play != nil && v.play.done
}

func (g *graph) stopLocked(v *voice) {
	if v.play == nil {
		return
	}
	v.play.ctrl.Streamer = nil
	v.play = nil
}

func (g *graph) Release(h mix.Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if v, ok := g.voices[h]; ok {
		g.stopLocked(v)
		delete(g.voices, h)
		g.log.Debugf("Released voice %d", h)
	}
}

// EnableLimiter switches the master soft limiter.
func (g *graph) EnableLimiter(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.limiter.Enabled = enabled
}

// SetVolume changes the master gain.
func (g *graph) SetVolume(v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.master.Gain = v - 1
}

// Voices counts live handles.
func (g *graph) Voices() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.voices)
}

// Close stops every voice. The sink keeps streaming silence.
func (g *graph) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil
	}
	for _, v := range g.voices {
		g.stopLocked(v)
	}
	clear(g.voices)
	g.mixer.Clear()
	g.closed = true
	return nil
}

// Sink places voices from listener-relative positions.
type Sink struct{ *graph }

// New builds a positional sink. loader serves Decode.
func New(loader Loader, opts Options, log slog.Logger) (*Sink, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Sink{newGraph(loader, opts, log)}, nil
}

func (s *Sink) SetSpatialPosition(h mix.Handle, x, y, z float64, ramp time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.voices[h]; ok {
		v.place(x, y, z, s.samples(ramp))
	}
}

// PanSink places voices from the legacy pan value only.
type PanSink struct{ *graph }

func NewPanning(loader Loader, opts Options, log slog.Logger) (*PanSink, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &PanSink{newGraph(loader, opts, log)}, nil
}

func (s *PanSink) SetPanAngle(h mix.Handle, pan float64, ramp time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.voices[h]; ok {
		v.pan.set(legacyPan(pan), s.samples(ramp))
	}
}

// Factory adapts New to mix.SinkFactory.
func Factory(loader Loader, opts Options, log slog.Logger) mix.SinkFactory {
	return func(mix.Options) (mix.Sink, error) {
		s, err := New(loader, opts, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// PanningFactory adapts NewPanning to mix.SinkFactory.
func PanningFactory(loader Loader, opts Options, log slog.Logger) mix.SinkFactory {
	return func(mix.Options) (mix.Sink, error) {
		s, err := NewPanning(loader, opts, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
