// SPDX-License-Identifier: EPL-2.0

package mixtest

import (
	"sync"

	"github.com/ik5/sharawadji/geo"
	"github.com/ik5/sharawadji/mix"
)

// ManualProvider is a mix.PositionProvider whose notifications are sent only
// when the test asks for them.
type ManualProvider struct {
	mu        sync.Mutex
	pos       geo.Position
	known     bool
	orient    mix.Orientation
	observers []mix.Observer
}

// NewManualProvider starts at pos when given, otherwise with no position.
func NewManualProvider(pos ...geo.Position) *ManualProvider {
	p := &ManualProvider{}
	if len(pos) > 0 {
		p.pos, p.known = pos[0], true
	}
	return p
}

func (p *ManualProvider) Position() (geo.Position, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos, p.known
}

func (p *ManualProvider) Orientation() mix.Orientation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.orient
}

func (p *ManualProvider) Subscribe(o mix.Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, o)
}

func (p *ManualProvider) Unsubscribe(o mix.Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, x := range p.observers {
		if x == o {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			return
		}
	}
}

// Observers counts current subscriptions.
func (p *ManualProvider) Observers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.observers)
}

// Move sets the position and notifies observers.
func (p *ManualProvider) Move(pos geo.Position) {
	p.mu.Lock()
	p.pos, p.known = pos, true
	p.mu.Unlock()
	p.Notify(mix.PositionChanged)
}

// Turn sets the orientation and notifies observers.
func (p *ManualProvider) Turn(heading, pitch float64) {
	p.mu.Lock()
	p.orient = mix.Orientation{Heading: heading, Pitch: pitch}
	p.mu.Unlock()
	p.Notify(mix.OrientationChanged)
}

// Notify calls every observer outside the provider lock.
func (p *ManualProvider) Notify(kind mix.ChangeKind) {
	p.mu.Lock()
	obs := append([]mix.Observer(nil), p.observers...)
	p.mu.Unlock()

	for _, o := range obs {
		o.ListenerChanged(kind)
	}
}
