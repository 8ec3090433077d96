// SPDX-License-Identifier: EPL-2.0

// Package mixtest provides fakes for driving a mix.Engine in tests.
package mixtest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ik5/sharawadji/audio"
	"github.com/ik5/sharawadji/mix"
)

// Call is one recorded sink command.
type Call struct {
	Op     string
	Handle mix.Handle
	Values []float64
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%d, %v)", c.Op, c.Handle, c.Values)
}

// ErrDecode is what Recorder.Decode returns for refs listed in Fail.
var ErrDecode = errors.New("mixtest: decode failed")

// Recorder implements mix.Sink and records every command. Wrap it with
// Positional, Panning or Full to pick the spatial capability.
type Recorder struct {
	mu sync.Mutex

	calls   []Call
	decodes map[string]int
	next    mix.Handle
	live    map[mix.Handle]bool
	ended   map[mix.Handle]bool
	closed  bool

	// Gate, when set, holds every Decode until it is closed.
	Gate chan struct{}
	// ConnectGate, when set, holds every Connect until it is closed.
	ConnectGate chan struct{}
	// IgnoreCancel makes Decode wait for Gate even after its context ends.
	IgnoreCancel bool
	// Fail lists references whose decode fails.
	Fail map[string]bool
	// Frames is the length of decoded buffers, one second when zero.
	Frames int
}

func NewRecorder() *Recorder {
	return &Recorder{
		decodes: make(map[string]int),
		live:    make(map[mix.Handle]bool),
		ended:   make(map[mix.Handle]bool),
		Fail:    make(map[string]bool),
	}
}

func (r *Recorder) record(op string, h mix.Handle, values ...float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Op: op, Handle: h, Values: values})
}

func (r *Recorder) CreateResources(mix.Descriptor) (mix.Handle, error) {
	r.mu.Lock()
	r.next++
	h := r.next
	r.live[h] = true
	r.mu.Unlock()

	r.record("create", h)
	return h, nil
}

func (r *Recorder) Decode(ctx context.Context, ref string) (*audio.Buffer, error) {
	r.mu.Lock()
	r.decodes[ref]++
	gate, fail, frames := r.Gate, r.Fail[ref], r.Frames
	r.mu.Unlock()

	if gate != nil {
		if r.IgnoreCancel {
			<-gate
		} else {
			select {
			case <-gate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	if fail {
		return nil, fmt.Errorf("%s: %w", ref, ErrDecode)
	}

	if frames <= 0 {
		frames = 8000
	}
	return &audio.Buffer{Samples: make([]float32, frames), Rate: 8000, Channels: 1}, nil
}

func (r *Recorder) Connect(h mix.Handle, _ *audio.Buffer) error {
	r.record("connect", h)

	r.mu.Lock()
	gate := r.ConnectGate
	r.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return nil
}

func (r *Recorder) SetGain(h mix.Handle, gain float64, ramp time.Duration) {
	r.record("gain", h, gain, ramp.Seconds())
}

func (r *Recorder) SetFilterCutoff(h mix.Handle, hz float64, ramp time.Duration) {
	r.record("cutoff", h, hz, ramp.Seconds())
}

func (r *Recorder) Start(h mix.Handle, offset time.Duration) error {
	r.mu.Lock()
	delete(r.ended, h)
	r.mu.Unlock()
	r.record("start", h, offset.Seconds())
	return nil
}

// Ended reports whether Finish was called since the last Start of h.
func (r *Recorder) Ended(h mix.Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ended[h]
}

// Finish makes h look like a playback that ran out.
func (r *Recorder) Finish(h mix.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended[h] = true
}

func (r *Recorder) Stop(h mix.Handle) { r.record("stop", h) }

func (r *Recorder) Release(h mix.Handle) {
	r.mu.Lock()
	delete(r.live, h)
	r.mu.Unlock()
	r.record("release", h)
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Calls returns a copy of every command so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Writes counts recorded commands.
func (r *Recorder) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Count counts commands with the given op.
func (r *Recorder) Count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Last returns the most recent command with the given op.
func (r *Recorder) Last(op string) (Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Op == op {
			return r.calls[i], true
		}
	}
	return Call{}, false
}

// SetFail marks ref as failing or not.
func (r *Recorder) SetFail(ref string, fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Fail[ref] = fail
}

// Decodes counts Decode calls for ref.
func (r *Recorder) Decodes(ref string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decodes[ref]
}

// Live reports whether h was created and not yet released.
func (r *Recorder) Live(h mix.Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live[h]
}

func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Positional is a Recorder with 3-D positioning.
type Positional struct{ *Recorder }

func (p Positional) SetSpatialPosition(h mix.Handle, x, y, z float64, ramp time.Duration) {
	p.record("position", h, x, y, z, ramp.Seconds())
}

// Panning is a Recorder with legacy pan only.
type Panning struct{ *Recorder }

func (p Panning) SetPanAngle(h mix.Handle, pan float64, ramp time.Duration) {
	p.record("pan", h, pan, ramp.Seconds())
}

// Full is a Positional recorder with a master limiter.
type Full struct{ Positional }

func (f Full) EnableLimiter(enabled bool) {
	v := 0.0
	if enabled {
		v = 1
	}
	f.record("limiter", 0, v)
}

// Factory returns a mix.SinkFactory that always hands out s.
func Factory(s mix.Sink) mix.SinkFactory {
	return func(mix.Options) (mix.Sink, error) { return s, nil }
}
