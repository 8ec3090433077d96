// SPDX-License-Identifier: EPL-2.0

package beepsink

import (
	"math"

	"github.com/ik5/sharawadji/mix"
)

// biquad is an RBJ cookbook filter in transposed direct form II.
type biquad struct {
	kind               mix.FilterType
	q                  float64
	b0, b1, b2, a1, a2 float64
	z1, z2             float64
}

func newBiquad(kind mix.FilterType, q float64) *biquad {
	return &biquad{kind: kind, q: q, b0: 1}
}

// tune sets the coefficients for a cutoff at sampleRate.
func (f *biquad) tune(cutoff, sampleRate float64) {
	cutoff = math.Max(10, math.Min(cutoff, 0.45*sampleRate))

	w0 := 2 * math.Pi * cutoff / sampleRate
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * f.q)

	var b0, b1, b2 float64
	switch f.kind {
	case mix.HighPass:
		b0 = (1 + cosw) / 2
		b1 = -(1 + cosw)
		b2 = (1 + cosw) / 2
	case mix.BandPass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
	default:
		b0 = (1 - cosw) / 2
		b1 = 1 - cosw
		b2 = (1 - cosw) / 2
	}

	a0 := 1 + alpha
	f.b0, f.b1, f.b2 = b0/a0, b1/a0, b2/a0
	f.a1, f.a2 = -2*cosw/a0, (1-alpha)/a0
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.z1
	f.z1 = f.b1*x - f.a1*y + f.z2
	f.z2 = f.b2*x - f.a2*y
	return y
}

func (f *biquad) reset() {
	f.z1, f.z2 = 0, 0
}
