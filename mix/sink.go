// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"context"
	"time"

	"github.com/ik5/sharawadji/audio"
)

// Handle identifies the playback resources a sink created for one sound.
type Handle uint64

// Sink is the audio graph the engine commands. Parameter setters are fire
// and forget; ramp is the glide time to the new value.
type Sink interface {
	CreateResources(d Descriptor) (Handle, error)
	// Decode fetches and decodes an asset. It should give up once ctx is done.
	Decode(ctx context.Context, ref string) (*audio.Buffer, error)
	Connect(h Handle, buf *audio.Buffer) error
	SetGain(h Handle, gain float64, ramp time.Duration)
	SetFilterCutoff(h Handle, hz float64, ramp time.Duration)
	// Start plays the connected buffer from offset.
	Start(h Handle, offset time.Duration) error
	Stop(h Handle)
	Release(h Handle)
}

// PositionalSink places sources in listener space: X right, Y up, Z forward,
// in metres. Moves glide over ramp like the other parameters.
type PositionalSink interface {
	Sink
	SetSpatialPosition(h Handle, x, y, z float64, ramp time.Duration)
}

// PanningSink only understands the legacy pan value from LegacyPan.
type PanningSink interface {
	Sink
	SetPanAngle(h Handle, pan float64, ramp time.Duration)
}

// LimiterSink exposes a dynamics limiter on the master bus.
type LimiterSink interface {
	Sink
	EnableLimiter(enabled bool)
}

// EndingSink reports playbacks that ran out on their own, which only
// happens to sounds that do not loop.
type EndingSink interface {
	Sink
	Ended(h Handle) bool
}

// SinkFactory builds the sink for an engine.
type SinkFactory func(opts Options) (Sink, error)

// spatializer feeds direction to the sink. One is chosen per engine.
type spatializer interface {
	place(h Handle, p Params, ramp time.Duration)
	mode() string
}

type positionalFeed struct{ sink PositionalSink }

func (f positionalFeed) place(h Handle, p Params, ramp time.Duration) {
	f.sink.SetSpatialPosition(h, p.Offset.X, p.Offset.Y, p.Offset.Z, ramp)
}

func (positionalFeed) mode() string { return "positional" }

type panFeed struct{ sink PanningSink }

func (f panFeed) place(h Handle, p Params, ramp time.Duration) {
	f.sink.SetPanAngle(h, p.Pan, ramp)
}

func (panFeed) mode() string { return "pan" }

func resolveSpatializer(s Sink) (spatializer, bool) {
	if ps, ok := s.(PositionalSink); ok {
		return positionalFeed{ps}, true
	}
	if ps, ok := s.(PanningSink); ok {
		return panFeed{ps}, true
	}
	return nil, false
}
