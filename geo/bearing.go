// SPDX-License-Identifier: EPL-2.0

package geo

import "math"

// Vector is a position in a listener-centred frame, in meters.
// X points right, Y up and Z forward.
type Vector struct {
	X, Y, Z float64
}

// Length of the vector.
func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// WrapAngle folds any angle in degrees into (-180, 180].
func WrapAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return angle
	}
	a := math.Mod(angle+180, 360)
	if a < 0 {
		a += 360
	}
	a -= 180
	if a == -180 {
		return 180
	}
	return a
}

// Bearing returns the angle of source as seen from a listener standing at
// listener and facing headingDeg. The raw angle is taken in degree space,
// atan2(Δlng, Δlat), then made relative to the heading and wrapped.
func Bearing(source, listener Position, headingDeg float64) float64 {
	raw := deg(math.Atan2(source.Lng-listener.Lng, source.Lat-listener.Lat))
	return WrapAngle(raw - headingDeg)
}

// LocalOffset returns how far to is east and north of from, in meters,
// using an equirectangular projection around from.
func LocalOffset(from, to Position) (east, north float64) {
	meanLat := rad((from.Lat + to.Lat) / 2)
	east = rad(WrapAngle(to.Lng-from.Lng)) * math.Cos(meanLat) * EarthRadius
	north = rad(to.Lat-from.Lat) * EarthRadius
	return east, north
}

// ListenerFrame places source (raised by elevation meters) in the frame of
// a listener at listener, turned to headingDeg and tilted to pitchDeg.
func ListenerFrame(listener Position, headingDeg, pitchDeg float64, source Position, elevation float64) Vector {
	east, north := LocalOffset(listener, source)

	// yaw: rotate the world so the heading points along +Z
	h := rad(headingDeg)
	right := east*math.Cos(h) - north*math.Sin(h)
	forward := east*math.Sin(h) + north*math.Cos(h)

	// pitch: positive looks up, which lowers the source in the frame
	p := rad(pitchDeg)
	up := elevation*math.Cos(p) - forward*math.Sin(p)
	forward = forward*math.Cos(p) + elevation*math.Sin(p)

	return Vector{X: right, Y: up, Z: forward}
}
