// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/ik5/sharawadji/audio"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Sound is the lifecycle of one source. Its fields are guarded by the
// owning engine's mutex.
type Sound struct {
	desc Descriptor
	eng  *Engine
	mu   *sync.Mutex

	state     State
	buf       *audio.Buffer
	handle    Handle
	hasHandle bool

	cancel  context.CancelFunc
	attempt string

	// ended is set when a one-shot ran out in range; it is not restarted
	// until the listener leaves the play threshold.
	ended bool

	failures int
	retryAt  time.Time
	delays   *backoff.ExponentialBackOff

	last Params
}

// Snapshot is a read-only view of a sound.
type Snapshot struct {
	Name     string
	State    State
	Failures int
	// Attempt is the ID of the most recent load.
	Attempt string
	Params
}

func newSound(e *Engine, d Descriptor) *Sound {
	delays := backoff.NewExponentialBackOff()
	delays.InitialInterval = e.opts.RetryBackoff
	delays.Multiplier = 2
	delays.RandomizationFactor = 0
	delays.MaxInterval = 64 * max(e.opts.RetryBackoff, time.Second)
	delays.Reset()

	return &Sound{
		desc:   d,
		eng:    e,
		mu:     &e.mu,
		state:  Idle,
		delays: delays,
	}
}

func (s *Sound) Name() string           { return s.desc.Name }
func (s *Sound) Descriptor() Descriptor { return s.desc }

func (s *Sound) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Sound) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Sound) snapshot() Snapshot {
	return Snapshot{
		Name:     s.desc.Name,
		State:    s.state,
		Failures: s.failures,
		Attempt:  s.attempt,
		Params:   s.last,
	}
}

func (s *Sound) setState(to State) {
	if s.state == to {
		return
	}
	s.eng.log.Debugf("%s: %v -> %v", s.desc.Name, s.state, to)
	s.state = to
}

// reconsider applies the transition rules for the current listener.
func (s *Sound) reconsider(l ListenerState, crowd float64) {
	p := Evaluate(s.desc, l, crowd, s.eng.opts)
	s.last = p

	switch s.state {
	case Idle:
		if p.Distance < s.eng.opts.LoadThreshold && !s.eng.opts.now().Before(s.retryAt) {
			s.beginLoad()
		}
	case Suspended:
		if p.Distance >= s.eng.opts.PlayThreshold {
			s.ended = false
			return
		}
		if !s.ended {
			s.play(p)
		}
	case Playing:
		if p.Distance >= s.eng.opts.PlayThreshold {
			s.suspend()
			return
		}
		s.push(p, s.eng.opts.RampTime)
	case Loading, Failed, Removed:
	}
}

func (s *Sound) beginLoad() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.attempt = uuid.NewString()
	s.setState(Loading)

	s.eng.loads.Add(1)
	go s.eng.load(ctx, s, s.attempt)
}

// decode tries each reference in order and returns the first buffer.
func (s *Sound) decode(ctx context.Context, attempt string) (*audio.Buffer, error) {
	ctx, span := s.eng.tracer.Start(ctx, "mix.load", trace.WithAttributes(
		attribute.String("sound.name", s.desc.Name),
		attribute.String("load.attempt", attempt),
		attribute.Int("sound.refs", len(s.desc.Src)),
	))
	defer span.End()

	var errs []error
	for _, ref := range s.desc.Src {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		buf, err := s.eng.sink.Decode(ctx, ref)
		if err == nil {
			span.SetAttributes(attribute.String("sound.ref", ref))
			return buf, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		errs = append(errs, fmt.Errorf("%s: %w", ref, err))
	}

	err := errors.Join(errs...)
	span.RecordError(err)
	span.SetStatus(codes.Error, "no source decoded")
	return nil, err
}

// complete delivers a load result. Results for anything but the current
// attempt of a loading sound are dropped untouched.
func (s *Sound) complete(attempt string, buf *audio.Buffer, err error) {
	if s.state != Loading || s.attempt != attempt {
		return
	}
	s.cancel = nil

	if err != nil {
		s.fail(err)
		return
	}

	s.buf = buf
	s.failures = 0
	s.retryAt = time.Time{}
	s.delays.Reset()
	s.setState(Suspended)

	if l, ok := s.eng.listenerState(); ok {
		s.reconsider(l, s.eng.crowd)
	}
}

// attach creates the sink resources on first use and connects the buffer.
// It takes the engine lock itself and drops it around Connect, which may copy
// or resample the whole buffer.
func (s *Sound) attach(attempt string, buf *audio.Buffer) error {
	sink := s.eng.sink

	s.mu.Lock()
	if s.state != Loading || s.attempt != attempt {
		s.mu.Unlock()
		return nil
	}
	if !s.hasHandle {
		h, err := sink.CreateResources(s.desc)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("creating resources: %w", err)
		}
		s.handle, s.hasHandle = h, true
		sink.SetGain(h, 0, 0)
		sink.SetFilterCutoff(h, initialCutoff(s.desc, s.eng.opts), 0)
	}
	h := s.handle
	s.mu.Unlock()

	if err := sink.Connect(h, buf); err != nil {
		return fmt.Errorf("connecting buffer: %w", err)
	}
	return nil
}

func (s *Sound) fail(err error) {
	if errors.Is(err, context.Canceled) {
		s.setState(Idle)
		return
	}

	s.failures++
	limit := s.eng.opts.RetryLimit
	if limit > 0 && s.failures >= limit {
		s.eng.log.Warnf("%s: giving up after %d failed loads: %v", s.desc.Name, s.failures, err)
		s.setState(Failed)
		return
	}

	delay := s.delays.NextBackOff()
	if delay == backoff.Stop {
		delay = s.delays.MaxInterval
	}
	s.retryAt = s.eng.opts.now().Add(delay)
	s.eng.log.Warnf("%s: load failed (attempt %d), retry after %v: %v", s.desc.Name, s.failures, delay, err)
	s.setState(Idle)
}

func (s *Sound) play(p Params) {
	sink := s.eng.sink

	// start from silence at the right spot and glide up
	sink.SetGain(s.handle, 0, 0)
	s.eng.spatial.place(s.handle, p, 0)
	s.push(p, s.eng.opts.RampTime)

	if err := sink.Start(s.handle, s.desc.StartTime); err != nil {
		s.eng.log.Warnf("%s: start failed: %v", s.desc.Name, err)
		return
	}
	s.setState(Playing)
}

func (s *Sound) suspend() {
	s.eng.sink.Stop(s.handle)
	s.eng.sink.SetGain(s.handle, 0, 0)
	s.setState(Suspended)
}

// finish parks a playback that ran out by itself.
func (s *Sound) finish() {
	s.eng.log.Debugf("%s: playback ended", s.desc.Name)
	s.suspend()
	s.ended = true
}

func (s *Sound) push(p Params, ramp time.Duration) {
	s.eng.spatial.place(s.handle, p, ramp)
	s.eng.sink.SetFilterCutoff(s.handle, p.Cutoff, ramp)
	s.eng.sink.SetGain(s.handle, p.Gain, ramp)

	if s.eng.opts.Debug {
		s.eng.log.Debugf("%s: d=%.1fm bearing=%.1f gain=%.4f cutoff=%.0fHz",
			s.desc.Name, p.Distance, p.Bearing, p.Gain, p.Cutoff)
	}
}

// retry puts a failed sound back to Idle with a clean slate.
func (s *Sound) retry() {
	if s.state != Failed && s.state != Idle {
		return
	}
	s.failures = 0
	s.retryAt = time.Time{}
	s.delays.Reset()
	s.setState(Idle)
}

// remove tears everything down. Removed is terminal.
func (s *Sound) remove() {
	if s.state == Removed {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.hasHandle {
		if s.state == Playing {
			s.eng.sink.Stop(s.handle)
		}
		s.eng.sink.Release(s.handle)
		s.hasHandle = false
	}
	s.buf = nil
	s.setState(Removed)
}
