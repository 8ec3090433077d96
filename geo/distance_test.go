// SPDX-License-Identifier: EPL-2.0

package geo

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func genPosition(t *rapid.T, label string) Position {
	return Position{
		Lat: rapid.Float64Range(-90, 90).Draw(t, label+"Lat"),
		Lng: rapid.Float64Range(-180, 180).Draw(t, label+"Lng"),
	}
}

func TestDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		a, b      Position
		want      float64
		tolerance float64
	}{
		{
			name: "same point",
			a:    Position{Lat: 51.5, Lng: -0.12},
			b:    Position{Lat: 51.5, Lng: -0.12},
			want: 0,
		},
		{
			name:      "one degree of latitude",
			a:         Position{Lat: 0, Lng: 0},
			b:         Position{Lat: 1, Lng: 0},
			want:      EarthRadius * math.Pi / 180,
			tolerance: 0.001,
		},
		{
			name:      "quarter of the equator",
			a:         Position{Lat: 0, Lng: 0},
			b:         Position{Lat: 0, Lng: 90},
			want:      EarthRadius * math.Pi / 2,
			tolerance: 0.001,
		},
		{
			name:      "antipodes",
			a:         Position{Lat: 0, Lng: 0},
			b:         Position{Lat: 0, Lng: 180},
			want:      EarthRadius * math.Pi,
			tolerance: 0.001,
		},
		{
			name:      "across the date line",
			a:         Position{Lat: 0, Lng: 179.5},
			b:         Position{Lat: 0, Lng: -179.5},
			want:      EarthRadius * math.Pi / 180,
			tolerance: 0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("Distance() = %v, want %v (tolerance %v)", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestProperty_DistanceToSelfIsZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := genPosition(t, "p")
		if d := Distance(p, p); d != 0 {
			t.Fatalf("Distance(p, p) = %v, want 0", d)
		}
	})
}

func TestProperty_DistanceIsSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genPosition(t, "a")
		b := genPosition(t, "b")

		ab := Distance(a, b)
		ba := Distance(b, a)
		if math.Abs(ab-ba) > 1e-6 {
			t.Fatalf("Distance(a,b) = %v, Distance(b,a) = %v", ab, ba)
		}
		if ab < 0 || ab > EarthRadius*math.Pi+1e-6 {
			t.Fatalf("Distance(a,b) = %v outside [0, half circumference]", ab)
		}
	})
}

func TestProperty_DestinationRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := Position{
			Lat: rapid.Float64Range(-80, 80).Draw(t, "lat"),
			Lng: rapid.Float64Range(-179, 179).Draw(t, "lng"),
		}
		bearing := rapid.Float64Range(0, 360).Draw(t, "bearing")
		meters := rapid.Float64Range(0, 5000).Draw(t, "meters")

		got := Distance(p, Destination(p, bearing, meters))
		if math.Abs(got-meters) > 0.01 {
			t.Fatalf("Distance(p, Destination(p, %v, %v)) = %v", bearing, meters, got)
		}
	})
}

func TestPosition_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p    Position
		want bool
	}{
		{Position{Lat: 0, Lng: 0}, true},
		{Position{Lat: 90, Lng: 180}, true},
		{Position{Lat: -90, Lng: -180}, true},
		{Position{Lat: 90.1, Lng: 0}, false},
		{Position{Lat: 0, Lng: -180.5}, false},
	}

	for _, tt := range tests {
		if got := tt.p.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func BenchmarkDistance(b *testing.B) {
	p1 := Position{Lat: 51.5007, Lng: -0.1246}
	p2 := Position{Lat: 51.5014, Lng: -0.1419}

	b.ReportAllocs()

	var d float64
	for range b.N {
		d = Distance(p1, p2)
	}
	_ = d
}
