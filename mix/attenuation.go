// SPDX-License-Identifier: EPL-2.0

package mix

import "math"

// DefaultMinDistance is the floor applied to distances before the
// inverse-square law, in metres.
const DefaultMinDistance = 1.0

// VolumeForDistance is amplitude/d² capped at 1, with d floored at
// minDistance. A non-positive minDistance uses DefaultMinDistance.
func VolumeForDistance(distance, amplitude, minDistance float64) float64 {
	if minDistance <= 0 {
		minDistance = DefaultMinDistance
	}
	if amplitude <= 0 || math.IsNaN(distance) || math.IsNaN(amplitude) {
		return 0
	}

	d := math.Max(distance, minDistance)
	return math.Min(amplitude/(d*d), 1)
}

// CrowdAttenuation is playing/target clamped to [0, limit]. It is the share
// of gain taken away from every sound while many of them are audible.
func CrowdAttenuation(playing int, target, limit float64) float64 {
	if playing <= 0 || limit <= 0 {
		return 0
	}
	if target <= 0 {
		return limit
	}
	return math.Max(0, math.Min(float64(playing)/target, limit))
}

// MasterGain turns a crowd attenuation into the gain multiplier.
func MasterGain(crowd float64) float64 {
	return 1 - crowd
}
