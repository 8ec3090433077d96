// SPDX-License-Identifier: EPL-2.0

package mix

// State of a Sound's lifecycle.
type State int

const (
	Idle State = iota
	Loading
	Suspended
	Playing
	Failed
	Removed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Suspended:
		return "suspended"
	case Playing:
		return "playing"
	case Failed:
		return "failed"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}
