// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"time"

	"github.com/decred/slog"
	"go.opentelemetry.io/otel/trace"
)

// Options tunes the engine. Start from Defaults and override fields.
type Options struct {
	// LoadThreshold is the distance in metres inside which an idle sound
	// starts loading. It must be larger than PlayThreshold.
	LoadThreshold float64 `mapstructure:"load_threshold" yaml:"load_threshold"`
	// PlayThreshold is the distance in metres inside which a loaded sound plays.
	PlayThreshold float64 `mapstructure:"play_threshold" yaml:"play_threshold"`

	CrowdTarget float64 `mapstructure:"crowd_target" yaml:"crowd_target"`
	CrowdCap    float64 `mapstructure:"crowd_cap" yaml:"crowd_cap"`

	// RampTime is how long gain, cutoff and position changes glide.
	RampTime    time.Duration `mapstructure:"ramp_time" yaml:"ramp_time"`
	MinDistance float64       `mapstructure:"min_distance" yaml:"min_distance"`
	MaxCutoff   float64       `mapstructure:"max_cutoff" yaml:"max_cutoff"`
	MinCutoff   float64       `mapstructure:"min_cutoff" yaml:"min_cutoff"`

	// Debug logs the parameters pushed on every update.
	Debug          bool `mapstructure:"debug" yaml:"debug"`
	LimiterEnabled bool `mapstructure:"limiter_enabled" yaml:"limiter_enabled"`

	// RetryLimit is the number of consecutive failed loads after which a
	// sound is parked in Failed. Zero retries forever.
	RetryLimit int `mapstructure:"retry_limit" yaml:"retry_limit"`
	// RetryBackoff is the first delay before a failed load may run again.
	// Later delays double.
	RetryBackoff time.Duration `mapstructure:"retry_backoff" yaml:"retry_backoff"`

	Logger slog.Logger      `mapstructure:"-" yaml:"-"`
	Tracer trace.Tracer     `mapstructure:"-" yaml:"-"`
	Clock  func() time.Time `mapstructure:"-" yaml:"-"`
}

// Defaults returns the reference tuning.
func Defaults() Options {
	return Options{
		LoadThreshold: 320,
		PlayThreshold: 300,
		CrowdTarget:   60,
		CrowdCap:      0.7,
		RampTime:      time.Second,
		MinDistance:   DefaultMinDistance,
		MaxCutoff:     11000,
		MinCutoff:     6050,
		RetryLimit:    3,
		RetryBackoff:  2 * time.Second,
	}
}

// Validate reports the first broken constraint wrapped in ErrInvalidOptions.
func (o Options) Validate() error {
	switch {
	case o.PlayThreshold <= 0:
		return fmt.Errorf("%w: play threshold must be positive, got %v", ErrInvalidOptions, o.PlayThreshold)
	case o.LoadThreshold <= o.PlayThreshold:
		return fmt.Errorf("%w: load threshold %v must exceed play threshold %v",
			ErrInvalidOptions, o.LoadThreshold, o.PlayThreshold)
	case o.CrowdTarget <= 0:
		return fmt.Errorf("%w: crowd target must be positive, got %v", ErrInvalidOptions, o.CrowdTarget)
	case o.CrowdCap < 0 || o.CrowdCap > 1:
		return fmt.Errorf("%w: crowd cap must be within [0,1], got %v", ErrInvalidOptions, o.CrowdCap)
	case o.RampTime < 0:
		return fmt.Errorf("%w: negative ramp time", ErrInvalidOptions)
	case o.MinDistance < 0:
		return fmt.Errorf("%w: negative minimum distance", ErrInvalidOptions)
	case o.MinCutoff <= 0 || o.MaxCutoff < o.MinCutoff:
		return fmt.Errorf("%w: cutoff range [%v,%v] is invalid", ErrInvalidOptions, o.MinCutoff, o.MaxCutoff)
	case o.RetryLimit < 0:
		return fmt.Errorf("%w: negative retry limit", ErrInvalidOptions)
	case o.RetryBackoff < 0:
		return fmt.Errorf("%w: negative retry backoff", ErrInvalidOptions)
	}
	return nil
}

func (o Options) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}
