// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"errors"
	"testing"
	"time"
)

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	if err := Defaults().Validate(); err != nil {
		t.Fatalf("Defaults().Validate() = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"equal thresholds", func(o *Options) { o.LoadThreshold = o.PlayThreshold }},
		{"inverted thresholds", func(o *Options) { o.LoadThreshold, o.PlayThreshold = 100, 200 }},
		{"zero play threshold", func(o *Options) { o.PlayThreshold = 0 }},
		{"zero crowd target", func(o *Options) { o.CrowdTarget = 0 }},
		{"cap above one", func(o *Options) { o.CrowdCap = 1.5 }},
		{"negative ramp", func(o *Options) { o.RampTime = -time.Second }},
		{"negative floor", func(o *Options) { o.MinDistance = -1 }},
		{"inverted cutoffs", func(o *Options) { o.MaxCutoff, o.MinCutoff = 100, 200 }},
		{"negative retries", func(o *Options) { o.RetryLimit = -1 }},
		{"negative backoff", func(o *Options) { o.RetryBackoff = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := Defaults()
			tt.mutate(&o)
			if err := o.Validate(); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("Validate() = %v, want %v", err, ErrInvalidOptions)
			}
		})
	}
}

func TestDescriptor_Validate(t *testing.T) {
	t.Parallel()

	valid := Descriptor{Name: "fountain", Src: []string{"fountain.ogg"}, Lat: 51.5, Lng: -0.12}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if !valid.Looping() {
		t.Error("Looping() should default to true")
	}
	if valid.Filter() != LowPass {
		t.Errorf("Filter() = %q, want %q", valid.Filter(), LowPass)
	}

	tests := []struct {
		name   string
		mutate func(*Descriptor)
	}{
		{"empty name", func(d *Descriptor) { d.Name = " " }},
		{"no sources", func(d *Descriptor) { d.Src = nil }},
		{"blank source", func(d *Descriptor) { d.Src = []string{"a.wav", ""} }},
		{"latitude out of range", func(d *Descriptor) { d.Lat = 91 }},
		{"longitude out of range", func(d *Descriptor) { d.Lng = -181 }},
		{"unknown filter", func(d *Descriptor) { d.FilterType = "notch" }},
		{"negative amplitude", func(d *Descriptor) { d.Amplitude = -1 }},
		{"negative rolloff", func(d *Descriptor) { d.Rolloff = -1 }},
		{"negative start", func(d *Descriptor) { d.StartTime = -time.Second }},
		{"end before start", func(d *Descriptor) { d.StartTime, d.EndTime = 2*time.Second, time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := valid
			d.Src = append([]string(nil), valid.Src...)
			tt.mutate(&d)
			if err := d.Validate(); !errors.Is(err, ErrInvalidDescriptor) {
				t.Errorf("Validate() = %v, want %v", err, ErrInvalidDescriptor)
			}
		})
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	want := map[State]string{
		Idle: "idle", Loading: "loading", Suspended: "suspended",
		Playing: "playing", Failed: "failed", Removed: "removed", State(99): "unknown",
	}
	for s, w := range want {
		if s.String() != w {
			t.Errorf("State(%d).String() = %q, want %q", int(s), s.String(), w)
		}
	}
}
