// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/decred/slog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/ik5/sharawadji/mix"

// Engine mixes a set of sounds around a moving listener.
type Engine struct {
	mu sync.Mutex

	opts     Options
	log      slog.Logger
	tracer   trace.Tracer
	sink     Sink
	ending   EndingSink
	spatial  spatializer
	provider PositionProvider

	sounds map[string]*Sound
	order  []*Sound

	listener    ListenerState
	hasListener bool
	crowd       float64
	closed      bool

	loads sync.WaitGroup
}

// New builds an engine, subscribes it to provider and adds descs in order.
// The sink's spatial capability is resolved once here.
func New(descs []Descriptor, provider PositionProvider, factory SinkFactory, opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: no position provider", ErrCapabilityUnavailable)
	}
	if factory == nil {
		return nil, fmt.Errorf("%w: no sink factory", ErrCapabilityUnavailable)
	}

	for _, d := range descs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}

	sink, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: creating sink: %w", ErrCapabilityUnavailable, err)
	}
	if sink == nil {
		return nil, fmt.Errorf("%w: sink factory returned nothing", ErrCapabilityUnavailable)
	}

	e := &Engine{
		opts:     opts,
		log:      opts.Logger,
		tracer:   opts.Tracer,
		sink:     sink,
		provider: provider,
		sounds:   make(map[string]*Sound),
	}
	if e.log == nil {
		e.log = slog.Disabled
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}

	spatial, ok := resolveSpatializer(sink)
	if !ok {
		closeSink(sink)
		return nil, fmt.Errorf("%w: sink offers neither positional nor pan control", ErrCapabilityUnavailable)
	}
	e.spatial = spatial
	e.ending, _ = sink.(EndingSink)

	if opts.LimiterEnabled {
		ls, ok := sink.(LimiterSink)
		if !ok {
			closeSink(sink)
			return nil, fmt.Errorf("%w: sink has no master limiter", ErrCapabilityUnavailable)
		}
		ls.EnableLimiter(true)
	}

	e.log.Debugf("Engine using %s spatial feed", spatial.mode())

	e.mu.Lock()
	e.refreshListener()
	for _, d := range descs {
		e.addLocked(d)
	}
	e.mu.Unlock()

	provider.Subscribe(e)
	return e, nil
}

func closeSink(s Sink) {
	if c, ok := s.(io.Closer); ok {
		c.Close()
	}
}

// ListenerChanged implements Observer.
func (e *Engine) ListenerChanged(kind ChangeKind) {
	e.log.Tracef("Listener %v changed", kind)
	e.UpdateMix()
}

// UpdateMix re-reads the listener, settles sounds whose playback ran out,
// recomputes the crowd attenuation from the sounds still playing and
// reconsiders every sound in insertion order.
func (e *Engine) UpdateMix() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	if !e.refreshListener() {
		return
	}

	playing := 0
	for _, s := range e.order {
		if s.state == Playing && e.ending != nil && e.ending.Ended(s.handle) {
			s.finish()
		}
		if s.state == Playing {
			playing++
		}
	}
	e.crowd = CrowdAttenuation(playing, e.opts.CrowdTarget, e.opts.CrowdCap)

	for _, s := range e.order {
		s.reconsider(e.listener, e.crowd)
	}
}

func (e *Engine) refreshListener() bool {
	pos, ok := e.provider.Position()
	if !ok {
		return false
	}
	e.listener = ListenerState{Position: pos, Orientation: e.provider.Orientation()}
	e.hasListener = true
	return true
}

func (e *Engine) listenerState() (ListenerState, bool) {
	return e.listener, e.hasListener
}

// AddSound adds d, replacing any sound with the same name. The new sound is
// reconsidered against the last known listener straight away.
func (e *Engine) AddSound(d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	e.addLocked(d)
	return nil
}

func (e *Engine) addLocked(d Descriptor) {
	if old, ok := e.sounds[d.Name]; ok {
		e.log.Debugf("Replacing sound %s", d.Name)
		e.removeLocked(old)
	}

	s := newSound(e, d)
	e.sounds[d.Name] = s
	e.order = append(e.order, s)

	if l, ok := e.listenerState(); ok {
		s.reconsider(l, e.crowd)
	}
}

// RemoveSound cancels any load, stops playback and releases the sound's
// sink resources.
func (e *Engine) RemoveSound(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	s, ok := e.sounds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSoundNotFound, name)
	}
	e.removeLocked(s)
	return nil
}

func (e *Engine) removeLocked(s *Sound) {
	s.remove()
	delete(e.sounds, s.desc.Name)
	e.order = slices.DeleteFunc(e.order, func(o *Sound) bool { return o == s })
}

// Sound looks a sound up by name.
func (e *Engine) Sound(name string) (*Sound, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sounds[name]
	return s, ok
}

// Sounds returns snapshots in insertion order.
func (e *Engine) Sounds() []Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Snapshot, 0, len(e.order))
	for _, s := range e.order {
		out = append(out, s.snapshot())
	}
	return out
}

// Retry clears the failure history of a sound so the next update may load
// it again.
func (e *Engine) Retry(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	s, ok := e.sounds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSoundNotFound, name)
	}

	s.retry()
	if l, ok := e.listenerState(); ok {
		s.reconsider(l, e.crowd)
	}
	return nil
}

// CrowdFactor is the attenuation computed by the last update.
func (e *Engine) CrowdFactor() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.crowd
}

// Listener returns the last listener state and whether one is known.
func (e *Engine) Listener() (ListenerState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.listener, e.hasListener
}

// Wait blocks until every load started so far has delivered its result.
func (e *Engine) Wait() {
	e.loads.Wait()
}

func (e *Engine) load(ctx context.Context, s *Sound, attempt string) {
	defer e.loads.Done()

	buf, err := s.decode(ctx, attempt)
	if err == nil {
		err = s.attach(attempt, buf)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		e.log.Debugf("%s: load %s failed: %v", s.desc.Name, attempt, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	s.complete(attempt, buf, err)
}

// Close unsubscribes from the provider, removes every sound and closes the
// sink when it is an io.Closer. Calls after the first return ErrEngineClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	e.closed = true
	for _, s := range e.order {
		s.remove()
	}
	e.order = nil
	clear(e.sounds)
	e.mu.Unlock()

	e.provider.Unsubscribe(e)

	if c, ok := e.sink.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("closing sink: %w", err)
		}
	}
	return nil
}
