// SPDX-License-Identifier: EPL-2.0

package mix

import "github.com/ik5/sharawadji/geo"

// Orientation of the listener in degrees. Heading is clockwise from north.
type Orientation struct {
	Heading float64 `mapstructure:"heading" yaml:"heading"`
	Pitch   float64 `mapstructure:"pitch" yaml:"pitch"`
}

// ListenerState is replaced as a whole on every update.
type ListenerState struct {
	Position geo.Position
	Orientation
}

// ChangeKind tells observers what moved.
type ChangeKind int

const (
	PositionChanged ChangeKind = iota + 1
	OrientationChanged
)

func (k ChangeKind) String() string {
	switch k {
	case PositionChanged:
		return "position"
	case OrientationChanged:
		return "orientation"
	default:
		return "unknown"
	}
}

// Observer receives listener change notifications.
type Observer interface {
	ListenerChanged(kind ChangeKind)
}

// PositionProvider supplies the listener. Position reports false until a
// position is known. Providers must not hold their own locks while calling
// observers.
type PositionProvider interface {
	Position() (geo.Position, bool)
	Orientation() Orientation
	Subscribe(o Observer)
	Unsubscribe(o Observer)
}
