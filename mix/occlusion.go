// SPDX-License-Identifier: EPL-2.0

package mix

import "math"

// OcclusionCutoff is the low-pass cutoff for a source at the given bearing.
// Sources in front keep the filter open at maxHz; behind the listener the
// cutoff falls linearly to minHz at 180 degrees.
func OcclusionCutoff(angleDeg, maxHz, minHz float64) float64 {
	a := math.Abs(angleDeg)
	if math.IsNaN(a) || a <= 90 {
		return maxHz
	}
	a = math.Min(a, 180)
	return maxHz - (a-90)/90*(maxHz-minHz)
}

// LegacyPan maps a bearing onto the 2-D pan value fed to sinks without
// positional panning: angle/90 mod 2, keeping the sign of the angle.
func LegacyPan(angleDeg float64) float64 {
	return math.Mod(angleDeg/90, 2)
}
