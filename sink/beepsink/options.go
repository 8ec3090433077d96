// SPDX-License-Identifier: EPL-2.0

package beepsink

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidOptions = errors.New("invalid sink options")
	ErrUnknownHandle  = errors.New("unknown handle")
	ErrNotConnected   = errors.New("no buffer connected")
	ErrClosed         = errors.New("sink closed")
)

type Options struct {
	SampleRate int `mapstructure:"sample_rate" yaml:"sample_rate"`
	// Volume is the master gain.
	Volume float64 `mapstructure:"volume" yaml:"volume"`
	// LimiterThreshold is where the soft limiter starts bending the signal.
	LimiterThreshold float64 `mapstructure:"limiter_threshold" yaml:"limiter_threshold"`
	// RolloffReference is the distance in metres below which rolloff has no
	// effect.
	RolloffReference float64 `mapstructure:"rolloff_reference" yaml:"rolloff_reference"`
	FilterQ          float64 `mapstructure:"filter_q" yaml:"filter_q"`
	// Buffer is the speaker latency used by live playback.
	Buffer time.Duration `mapstructure:"buffer" yaml:"buffer"`
}

func Defaults() Options {
	return Options{
		SampleRate:       44100,
		Volume:           1,
		LimiterThreshold: 0.9,
		RolloffReference: 1,
		FilterQ:          0.7071,
		Buffer:           100 * time.Millisecond,
	}
}

func (o Options) Validate() error {
	switch {
	case o.SampleRate < 8000:
		return fmt.Errorf("%w: sample rate %d too low", ErrInvalidOptions, o.SampleRate)
	case o.Volume < 0:
		return fmt.Errorf("%w: negative volume", ErrInvalidOptions)
	case o.LimiterThreshold <= 0 || o.LimiterThreshold >= 1:
		return fmt.Errorf("%w: limiter threshold must be within (0,1)", ErrInvalidOptions)
	case o.RolloffReference <= 0:
		return fmt.Errorf("%w: rolloff reference must be positive", ErrInvalidOptions)
	case o.FilterQ <= 0:
		return fmt.Errorf("%w: filter Q must be positive", ErrInvalidOptions)
	case o.Buffer <= 0:
		return fmt.Errorf("%w: speaker buffer must be positive", ErrInvalidOptions)
	}
	return nil
}
