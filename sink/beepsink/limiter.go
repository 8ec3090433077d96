// SPDX-License-Identifier: EPL-2.0

package beepsink

import (
	"math"

	"github.com/gopxl/beep/v2"
)

// limiter bends samples above threshold smoothly towards full scale.
type limiter struct {
	Streamer  beep.Streamer
	Threshold float64
	Enabled   bool
}

func (l *limiter) Stream(samples [][2]float64) (int, bool) {
	n, ok := l.Streamer.Stream(samples)
	if !l.Enabled {
		return n, ok
	}
	for i := range samples[:n] {
		samples[i][0] = softLimit(samples[i][0], l.Threshold)
		samples[i][1] = softLimit(samples[i][1], l.Threshold)
	}
	return n, ok
}

func (l *limiter) Err() error { return l.Streamer.Err() }

func softLimit(x, threshold float64) float64 {
	a := math.Abs(x)
	if a <= threshold {
		return x
	}
	knee := 1 - threshold
	return math.Copysign(threshold+knee*math.Tanh((a-threshold)/knee), x)
}
