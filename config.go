// SPDX-License-Identifier: EPL-2.0

package sharawadji

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ik5/sharawadji/mix"
	"github.com/ik5/sharawadji/sink/beepsink"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SHARAWADJI_ENGINE_PLAY_THRESHOLD.
const EnvPrefix = "SHARAWADJI"

var ErrInvalidConfig = errors.New("invalid configuration")

// AssetOptions controls where sound references are fetched from.
type AssetOptions struct {
	// BaseDir resolves relative references and confines file access.
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir"`
	// CacheTTL keeps fetched bytes around so replaced sounds do not refetch.
	// Zero keeps them until the player closes.
	CacheTTL    time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout" yaml:"http_timeout"`
	MaxBytes    int64         `mapstructure:"max_bytes" yaml:"max_bytes"`
}

// Config is everything a Player needs besides the listener.
type Config struct {
	Engine mix.Options      `mapstructure:"engine" yaml:"engine"`
	Sink   beepsink.Options `mapstructure:"sink" yaml:"sink"`
	Assets AssetOptions     `mapstructure:"assets" yaml:"assets"`
	// LegacyPan drives the sink with the two dimensional pan value instead
	// of listener-relative positions.
	LegacyPan bool             `mapstructure:"legacy_pan" yaml:"legacy_pan"`
	Sounds    []mix.Descriptor `mapstructure:"sounds" yaml:"sounds"`
}

func DefaultConfig() Config {
	return Config{
		Engine: mix.Defaults(),
		Sink:   beepsink.Defaults(),
		Assets: AssetOptions{
			CacheTTL:    10 * time.Minute,
			HTTPTimeout: 30 * time.Second,
			MaxBytes:    64 << 20,
		},
	}
}

func (c Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if err := c.Sink.Validate(); err != nil {
		return err
	}
	if c.Assets.CacheTTL < 0 || c.Assets.HTTPTimeout < 0 || c.Assets.MaxBytes < 0 {
		return fmt.Errorf("%w: asset limits must not be negative", ErrInvalidConfig)
	}
	for i, d := range c.Sounds {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("sound %d: %w", i, err)
		}
	}
	return nil
}

// LoadConfig reads a YAML file over DefaultConfig. Every scalar key can be
// overridden from the environment with EnvPrefix. An empty path reads only
// defaults and environment.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	setDefaults(v, def)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	cfg := def
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it on Unmarshal.
func setDefaults(v *viper.Viper, c Config) {
	e := c.Engine
	v.SetDefault("engine.load_threshold", e.LoadThreshold)
	v.SetDefault("engine.play_threshold", e.PlayThreshold)
	v.SetDefault("engine.crowd_target", e.CrowdTarget)
	v.SetDefault("engine.crowd_cap", e.CrowdCap)
	v.SetDefault("engine.ramp_time", e.RampTime)
	v.SetDefault("engine.min_distance", e.MinDistance)
	v.SetDefault("engine.max_cutoff", e.MaxCutoff)
	v.SetDefault("engine.min_cutoff", e.MinCutoff)
	v.SetDefault("engine.debug", e.Debug)
	v.SetDefault("engine.limiter_enabled", e.LimiterEnabled)
	v.SetDefault("engine.retry_limit", e.RetryLimit)
	v.SetDefault("engine.retry_backoff", e.RetryBackoff)

	s := c.Sink
	v.SetDefault("sink.sample_rate", s.SampleRate)
	v.SetDefault("sink.volume", s.Volume)
	v.SetDefault("sink.limiter_threshold", s.LimiterThreshold)
	v.SetDefault("sink.rolloff_reference", s.RolloffReference)
	v.SetDefault("sink.filter_q", s.FilterQ)
	v.SetDefault("sink.buffer", s.Buffer)

	a := c.Assets
	v.SetDefault("assets.base_dir", a.BaseDir)
	v.SetDefault("assets.cache_ttl", a.CacheTTL)
	v.SetDefault("assets.http_timeout", a.HTTPTimeout)
	v.SetDefault("assets.max_bytes", a.MaxBytes)

	v.SetDefault("legacy_pan", c.LegacyPan)
}
