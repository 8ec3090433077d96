// SPDX-License-Identifier: EPL-2.0

package geo

import "math"

// EarthRadius is the equatorial radius used by every calculation in meters.
const EarthRadius = 6378137.0

// Position is a point on the Earth in degrees.
type Position struct {
	Lat float64 `mapstructure:"lat" yaml:"lat"`
	Lng float64 `mapstructure:"lng" yaml:"lng"`
}

// Valid reports whether the latitude is within [-90,90] and the longitude
// within [-180,180].
func (p Position) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }
func deg(rad float64) float64 { return rad * 180 / math.Pi }

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b Position) float64 {
	dLat := rad(b.Lat - a.Lat)
	dLng := rad(b.Lng - a.Lng)

	sLat := math.Sin(dLat / 2)
	sLng := math.Sin(dLng / 2)
	h := sLat*sLat + math.Cos(rad(a.Lat))*math.Cos(rad(b.Lat))*sLng*sLng

	// rounding can push h marginally outside [0,1] for antipodal points
	h = math.Min(math.Max(h, 0), 1)

	return 2 * EarthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Destination returns the point reached by travelling meters from p along
// the initial compass bearing bearingDeg (0 = north, 90 = east).
func Destination(p Position, bearingDeg, meters float64) Position {
	delta := meters / EarthRadius
	theta := rad(bearingDeg)
	lat1 := rad(p.Lat)
	lng1 := rad(p.Lng)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) +
		math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lng2 := lng1 + math.Atan2(math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2))

	return Position{
		Lat: deg(lat2),
		Lng: WrapAngle(deg(lng2)),
	}
}
