// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ik5/sharawadji/geo"
	"github.com/ik5/sharawadji/mix"
	"gopkg.in/yaml.v3"
)

var errInvalidRoute = errors.New("invalid route")

// waypoint is one stop on a rendered walk. The listener walks to it from
// the previous waypoint over Walk, then stands still for Hold.
type waypoint struct {
	Lat     float64       `yaml:"lat"`
	Lng     float64       `yaml:"lng"`
	Heading float64       `yaml:"heading"`
	Pitch   float64       `yaml:"pitch"`
	Walk    time.Duration `yaml:"walk"`
	Hold    time.Duration `yaml:"hold"`
}

func (w waypoint) position() geo.Position { return geo.Position{Lat: w.Lat, Lng: w.Lng} }

func (w waypoint) orientation() mix.Orientation {
	return mix.Orientation{Heading: w.Heading, Pitch: w.Pitch}
}

type route struct {
	// Step is how often the listener is updated while walking.
	Step      time.Duration `yaml:"step"`
	Waypoints []waypoint    `yaml:"waypoints"`
}

const defaultStep = 100 * time.Millisecond

func parseRoute(data []byte) (route, error) {
	var r route
	if err := yaml.Unmarshal(data, &r); err != nil {
		return route{}, fmt.Errorf("%w: %w", errInvalidRoute, err)
	}
	if len(r.Waypoints) == 0 {
		return route{}, fmt.Errorf("%w: no waypoints", errInvalidRoute)
	}
	if r.Step <= 0 {
		r.Step = defaultStep
	}
	for i, w := range r.Waypoints {
		if !w.position().Valid() {
			return route{}, fmt.Errorf("%w: waypoint %d out of range", errInvalidRoute, i)
		}
		if w.Walk < 0 || w.Hold < 0 {
			return route{}, fmt.Errorf("%w: waypoint %d has a negative duration", errInvalidRoute, i)
		}
	}
	return r, nil
}

func readRoute(path string) (route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return route{}, err
	}
	return parseRoute(data)
}

// Duration is the length of the whole walk.
func (r route) Duration() time.Duration {
	var d time.Duration
	for i, w := range r.Waypoints {
		if i > 0 {
			d += w.Walk
		}
		d += w.Hold
	}
	return d
}

// stop is a listener state and how long to render it for.
type stop struct {
	pos    geo.Position
	orient mix.Orientation
	dur    time.Duration
}

// stops flattens the route into listener updates. Walks are interpolated
// linearly, heading included, which is fine over the distances a mix spans.
func (r route) stops() []stop {
	var out []stop
	for i, w := range r.Waypoints {
		if i > 0 && w.Walk > 0 {
			prev := r.Waypoints[i-1]
			n := max(int(w.Walk/r.Step), 1)
			for k := 1; k <= n; k++ {
				f := float64(k) / float64(n)
				out = append(out, stop{
					pos: geo.Position{
						Lat: prev.Lat + (w.Lat-prev.Lat)*f,
						Lng: prev.Lng + (w.Lng-prev.Lng)*f,
					},
					orient: mix.Orientation{
						Heading: prev.Heading + geo.WrapAngle(w.Heading-prev.Heading)*f,
						Pitch:   prev.Pitch + (w.Pitch-prev.Pitch)*f,
					},
					dur: w.Walk / time.Duration(n),
				})
			}
		}
		if w.Hold > 0 || i == 0 {
			out = append(out, stop{pos: w.position(), orient: w.orientation(), dur: w.Hold})
		}
	}
	return out
}
