// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"math"

	"github.com/ik5/sharawadji/geo"
)

// Params are the targets computed for one sound against one listener state.
type Params struct {
	Distance float64
	Bearing  float64
	// Volume is the distance gain before crowd attenuation.
	Volume float64
	Gain   float64
	Cutoff float64
	Pan    float64
	Offset geo.Vector
}

// Evaluate computes what the sink should be told about d.
func Evaluate(d Descriptor, l ListenerState, crowd float64, o Options) Params {
	src := d.Position()
	p := Params{
		Distance: geo.Distance(src, l.Position),
		Bearing:  geo.Bearing(src, l.Position, l.Heading),
	}
	p.Volume = VolumeForDistance(p.Distance, d.Amplitude, o.MinDistance)
	p.Gain = p.Volume * MasterGain(crowd)
	p.Pan = LegacyPan(p.Bearing)
	p.Offset = geo.ListenerFrame(l.Position, l.Heading, l.Pitch, src, d.Elevation)
	p.Cutoff = cutoffFor(d, p.Bearing, o)
	return p
}

// cutoffFor applies occlusion to low-pass sounds, bounded by the
// descriptor's own frequency. Other filter types keep their frequency.
func cutoffFor(d Descriptor, bearing float64, o Options) float64 {
	if d.Filter() != LowPass {
		if d.FilterFrequency > 0 {
			return d.FilterFrequency
		}
		return o.MaxCutoff
	}

	c := OcclusionCutoff(bearing, o.MaxCutoff, o.MinCutoff)
	if d.FilterFrequency > 0 {
		c = math.Min(c, d.FilterFrequency)
	}
	return c
}

// initialCutoff is the cutoff a sound's filter is created with.
func initialCutoff(d Descriptor, o Options) float64 {
	if d.FilterFrequency > 0 {
		return d.FilterFrequency
	}
	return o.MaxCutoff
}
