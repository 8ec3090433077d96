// SPDX-License-Identifier: EPL-2.0

// Package provider implements mix.PositionProvider.
//
// Static is set from code. File follows a small YAML document on disk:
//
//	lat: 51.5007
//	lng: -0.1246
//	heading: 90
//	pitch: 0
//
// and notifies the engine whenever the file is rewritten.
package provider
