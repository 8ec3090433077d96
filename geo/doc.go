// SPDX-License-Identifier: EPL-2.0

// Package geo provides the geometry used to place virtual sound sources
// around a listener on the surface of the Earth.
//
// Positions are plain latitude/longitude pairs in degrees. The package
// offers great-circle distances, bearings relative to a listener's heading,
// and the conversion of a source position into the listener's own
// coordinate frame for 3-D panners.
//
// # Distance
//
//	d := geo.Distance(geo.Position{Lat: 51.5007, Lng: -0.1246},
//	    geo.Position{Lat: 51.5014, Lng: -0.1419})
//
// Distance uses the haversine formula with a fixed Earth radius
// (EarthRadius, in meters).
//
// # Bearing
//
// Bearing returns the horizontal angle, in degrees within (-180, 180],
// between the listener's forward axis and the source. Zero means straight
// ahead, positive values are clockwise (to the right).
//
// # Listener Frame
//
// ListenerFrame expresses a source relative to the listener as a Vector
// with X pointing right, Y pointing up and Z pointing forward, in meters.
package geo
