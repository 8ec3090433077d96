// SPDX-License-Identifier: EPL-2.0

// Command sharawadji plays, renders and inspects geo-audio mixes.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
