// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"

	"github.com/decred/slog"
	"github.com/ik5/sharawadji"
)

// subsystem tags
const (
	tagMix      = "MIX"
	tagSink     = "SINK"
	tagAssets   = "ASET"
	tagProvider = "PROV"
	tagCLI      = "SWDJ"
)

type logging struct {
	sharawadji.Loggers
	Provider slog.Logger
	CLI      slog.Logger
}

// newLogging puts every subsystem on one backend at the same level.
func newLogging(w io.Writer, level string) (logging, error) {
	lvl, ok := slog.LevelFromString(level)
	if !ok {
		return logging{}, fmt.Errorf("unknown log level %q", level)
	}

	backend := slog.NewBackend(w)
	logger := func(tag string) slog.Logger {
		l := backend.Logger(tag)
		l.SetLevel(lvl)
		return l
	}

	return logging{
		Loggers: sharawadji.Loggers{
			Mix:    logger(tagMix),
			Sink:   logger(tagSink),
			Assets: logger(tagAssets),
		},
		Provider: logger(tagProvider),
		CLI:      logger(tagCLI),
	}, nil
}
