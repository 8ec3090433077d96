// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/decred/slog"
	"github.com/ik5/sharawadji/audio"
	"github.com/ik5/sharawadji/formats/aiff"
	"github.com/ik5/sharawadji/formats/mp3"
	"github.com/ik5/sharawadji/formats/vorbis"
	"github.com/ik5/sharawadji/formats/wav"
)

const chunkSize = 4096

// DefaultRegistry knows every bundled format.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	return r
}

// Loader fetches and decodes assets into mono buffers at Rate.
type Loader struct {
	Fetcher  Fetcher
	Registry *audio.Registry
	// Rate is the output sample rate. Zero keeps the asset's own rate.
	Rate int
	Log  slog.Logger
}

func (l *Loader) logger() slog.Logger {
	if l.Log == nil {
		return slog.Disabled
	}
	return l.Log
}

// Load returns the decoded asset. Fetch problems wrap ErrFetch, decoding
// problems ErrDecode; a cancelled ctx is returned as is.
func (l *Loader) Load(ctx context.Context, ref string) (*audio.Buffer, error) {
	if l.Fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher", ErrFetch)
	}
	reg := l.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}

	data, err := l.Fetcher.Fetch(ctx, ref)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !errors.Is(err, ErrFetch) {
			err = fmt.Errorf("%w: %w", ErrFetch, err)
		}
		return nil, err
	}

	format, dec, err := reg.Detect(ref, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, ref, err)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s as %s: %w", ErrDecode, ref, format, err)
	}

	var chain audio.Source = src
	if src.Channels() > 1 {
		chain = audio.NewMonoMixer(chain)
	}
	if l.Rate > 0 && src.SampleRate() != l.Rate {
		chain = audio.NewResampler(chain, l.Rate)
	}
	defer chain.Close()

	buf, err := audio.Collect(ctx, chain, chunkSize)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, ref, err)
	}

	l.logger().Debugf("Loaded %s (%s, %d Hz -> %d Hz, %v)",
		ref, format, src.SampleRate(), buf.Rate, buf.Duration())
	return buf, nil
}
