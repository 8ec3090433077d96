// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"strings"
	"time"

	"github.com/ik5/sharawadji/geo"
)

// FilterType selects the response of a sound's filter stage.
type FilterType string

const (
	LowPass  FilterType = "lowpass"
	HighPass FilterType = "highpass"
	BandPass FilterType = "bandpass"
)

// Descriptor configures one virtual source. The engine never modifies it.
type Descriptor struct {
	Name string `mapstructure:"name" yaml:"name"`
	// Src lists asset references tried in order until one decodes.
	Src []string `mapstructure:"src" yaml:"src"`

	Lat       float64 `mapstructure:"lat" yaml:"lat"`
	Lng       float64 `mapstructure:"lng" yaml:"lng"`
	Elevation float64 `mapstructure:"elevation" yaml:"elevation"`

	// Loop defaults to true when unset.
	Loop      *bool   `mapstructure:"loop" yaml:"loop"`
	Amplitude float64 `mapstructure:"amplitude" yaml:"amplitude"`
	Rolloff   float64 `mapstructure:"rolloff" yaml:"rolloff"`

	FilterType      FilterType `mapstructure:"filter_type" yaml:"filter_type"`
	FilterFrequency float64    `mapstructure:"filter_frequency" yaml:"filter_frequency"`

	StartTime time.Duration `mapstructure:"start_time" yaml:"start_time"`
	// EndTime of zero plays to the end of the asset.
	EndTime time.Duration `mapstructure:"end_time" yaml:"end_time"`
}

func (d Descriptor) Position() geo.Position {
	return geo.Position{Lat: d.Lat, Lng: d.Lng}
}

func (d Descriptor) Looping() bool {
	return d.Loop == nil || *d.Loop
}

// Filter returns the filter type, LowPass when unset.
func (d Descriptor) Filter() FilterType {
	if d.FilterType == "" {
		return LowPass
	}
	return FilterType(strings.ToLower(string(d.FilterType)))
}

// Validate reports the first problem wrapped in ErrInvalidDescriptor.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDescriptor)
	}
	if len(d.Src) == 0 {
		return fmt.Errorf("%w: %q has no source references", ErrInvalidDescriptor, d.Name)
	}
	for i, ref := range d.Src {
		if strings.TrimSpace(ref) == "" {
			return fmt.Errorf("%w: %q source %d is empty", ErrInvalidDescriptor, d.Name, i)
		}
	}
	if !d.Position().Valid() {
		return fmt.Errorf("%w: %q position %v,%v out of range", ErrInvalidDescriptor, d.Name, d.Lat, d.Lng)
	}

	switch d.Filter() {
	case LowPass, HighPass, BandPass:
	default:
		return fmt.Errorf("%w: %q unknown filter type %q", ErrInvalidDescriptor, d.Name, d.FilterType)
	}

	switch {
	case d.Amplitude < 0:
		return fmt.Errorf("%w: %q negative amplitude", ErrInvalidDescriptor, d.Name)
	case d.Rolloff < 0:
		return fmt.Errorf("%w: %q negative rolloff", ErrInvalidDescriptor, d.Name)
	case d.FilterFrequency < 0:
		return fmt.Errorf("%w: %q negative filter frequency", ErrInvalidDescriptor, d.Name)
	case d.StartTime < 0:
		return fmt.Errorf("%w: %q negative start time", ErrInvalidDescriptor, d.Name)
	case d.EndTime != 0 && d.EndTime <= d.StartTime:
		return fmt.Errorf("%w: %q end time %v not after start time %v",
			ErrInvalidDescriptor, d.Name, d.EndTime, d.StartTime)
	}
	return nil
}
