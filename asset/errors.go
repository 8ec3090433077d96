// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"errors"

	"github.com/ik5/sharawadji/audio"
)

var (
	ErrFetch         = errors.New("fetch failed")
	ErrDecode        = errors.New("decode failed")
	ErrUnknownFormat = audio.ErrUnknownFormat
	// ErrOutsideRoot is returned for file references escaping FileFetcher.Root.
	ErrOutsideRoot = errors.New("reference escapes asset root")
)
