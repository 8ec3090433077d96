// SPDX-License-Identifier: EPL-2.0

package provider

import (
	"slices"
	"sync"

	"github.com/ik5/sharawadji/geo"
	"github.com/ik5/sharawadji/mix"
)

// Static is a PositionProvider set from code. The zero value has no
// position yet.
type Static struct {
	mu        sync.Mutex
	pos       geo.Position
	known     bool
	orient    mix.Orientation
	observers []mix.Observer
}

// NewStatic starts at pos.
func NewStatic(pos geo.Position, o mix.Orientation) *Static {
	return &Static{pos: pos, known: true, orient: o}
}

func (s *Static) Position() (geo.Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos, s.known
}

func (s *Static) Orientation() mix.Orientation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orient
}

func (s *Static) Subscribe(o mix.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.observers, o) {
		s.observers = append(s.observers, o)
	}
}

func (s *Static) Unsubscribe(o mix.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = slices.DeleteFunc(s.observers, func(x mix.Observer) bool { return x == o })
}

// SetPosition moves the listener. Observers are told only when the
// position actually changed.
func (s *Static) SetPosition(pos geo.Position) {
	s.mu.Lock()
	changed := !s.known || s.pos != pos
	s.pos, s.known = pos, true
	s.mu.Unlock()

	if changed {
		s.notify(mix.PositionChanged)
	}
}

func (s *Static) SetOrientation(o mix.Orientation) {
	s.mu.Lock()
	changed := s.orient != o
	s.orient = o
	s.mu.Unlock()

	if changed {
		s.notify(mix.OrientationChanged)
	}
}

// Set updates both, sending one notification per part that changed.
func (s *Static) Set(pos geo.Position, o mix.Orientation) {
	s.mu.Lock()
	moved := !s.known || s.pos != pos
	turned := s.orient != o
	s.pos, s.known, s.orient = pos, true, o
	s.mu.Unlock()

	if moved {
		s.notify(mix.PositionChanged)
	}
	if turned {
		s.notify(mix.OrientationChanged)
	}
}

// notify runs without the lock so observers may call back into s.
func (s *Static) notify(kind mix.ChangeKind) {
	s.mu.Lock()
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.ListenerChanged(kind)
	}
}
