// SPDX-License-Identifier: EPL-2.0

package mix

import "errors"

var (
	// ErrCapabilityUnavailable is returned by New when the provider or sink
	// cannot serve the engine.
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	ErrInvalidOptions        = errors.New("invalid options")
	ErrInvalidDescriptor     = errors.New("invalid sound descriptor")
	ErrSoundNotFound         = errors.New("sound not found")
	ErrEngineClosed          = errors.New("engine closed")
)
