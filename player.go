// SPDX-License-Identifier: EPL-2.0

package sharawadji

import (
	"net/http"

	"github.com/decred/slog"
	"github.com/gopxl/beep/v2"
	"github.com/ik5/sharawadji/asset"
	"github.com/ik5/sharawadji/mix"
	"github.com/ik5/sharawadji/sink/beepsink"
)

// Output is the rendered mix. Both beepsink flavours satisfy it.
type Output interface {
	beep.Streamer
	Format() beep.Format
	SetVolume(v float64)
	Voices() int
}

// Loggers hands a logger to each subsystem. Nil loggers are silent.
type Loggers struct {
	Mix    slog.Logger
	Sink   slog.Logger
	Assets slog.Logger
}

// Player is an engine wired to a beep sink and a cached asset loader.
type Player struct {
	*mix.Engine

	out   Output
	cache *asset.Cache
}

// New validates cfg and builds the player. Sounds in cfg are added in
// order; the first mix happens as soon as provider knows a position.
func New(cfg Config, provider mix.PositionProvider, logs Loggers) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cache := asset.NewCache(asset.Mux{
		HTTP: asset.HTTPFetcher{
			Client:   &http.Client{Timeout: cfg.Assets.HTTPTimeout},
			MaxBytes: cfg.Assets.MaxBytes,
		},
		File: asset.FileFetcher{Root: cfg.Assets.BaseDir},
	}, cfg.Assets.CacheTTL)
	loader := &asset.Loader{
		Fetcher:  cache,
		Registry: asset.DefaultRegistry(),
		Rate:     cfg.Sink.SampleRate,
		Log:      logs.Assets,
	}

	p := &Player{cache: cache}
	factory := func(mix.Options) (mix.Sink, error) {
		if cfg.LegacyPan {
			s, err := beepsink.NewPanning(loader, cfg.Sink, logs.Sink)
			if err != nil {
				return nil, err
			}
			p.out = s
			return s, nil
		}
		s, err := beepsink.New(loader, cfg.Sink, logs.Sink)
		if err != nil {
			return nil, err
		}
		p.out = s
		return s, nil
	}

	opts := cfg.Engine
	opts.Logger = logs.Mix
	eng, err := mix.New(cfg.Sounds, provider, factory, opts)
	if err != nil {
		return nil, err
	}
	p.Engine = eng
	return p, nil
}

// Output is what to hand to the speaker or to beepsink.Render.
func (p *Player) Output() Output { return p.out }

// Close stops the engine and drops cached assets.
func (p *Player) Close() error {
	defer p.cache.Invalidate("")
	return p.Engine.Close()
}

// CachedAssets counts fetched assets held in memory.
func (p *Player) CachedAssets() int { return p.cache.Len() }
