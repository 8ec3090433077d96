// SPDX-License-Identifier: EPL-2.0

package provider

import "errors"

var (
	ErrInvalidListener = errors.New("invalid listener file")
	ErrWatch           = errors.New("cannot watch listener file")
)
