// SPDX-License-Identifier: EPL-2.0

package sharawadji

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/sharawadji/mix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
engine:
  play_threshold: 150
  load_threshold: 180
  ramp_time: 500ms
  limiter_enabled: true
sink:
  volume: 0.8
assets:
  base_dir: /srv/sounds
  cache_ttl: 1h
sounds:
  - name: bells
    src: [bells.ogg, bells.mp3]
    lat: 45.4340
    lng: 12.3388
    amplitude: 500
    filter_type: bandpass
    filter_frequency: 900
  - name: gondolier
    src: ["https://example.com/gondolier.wav"]
    lat: 45.4345
    lng: 12.3390
    loop: false
    start_time: 2s
    end_time: 40s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sharawadji.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 150.0, cfg.Engine.PlayThreshold)
	assert.Equal(t, 180.0, cfg.Engine.LoadThreshold)
	assert.Equal(t, 500*time.Millisecond, cfg.Engine.RampTime)
	assert.True(t, cfg.Engine.LimiterEnabled)
	assert.Equal(t, mix.Defaults().CrowdTarget, cfg.Engine.CrowdTarget, "unset keys keep defaults")

	assert.Equal(t, 0.8, cfg.Sink.Volume)
	assert.Equal(t, 44100, cfg.Sink.SampleRate)
	assert.Equal(t, "/srv/sounds", cfg.Assets.BaseDir)
	assert.Equal(t, time.Hour, cfg.Assets.CacheTTL)

	require.Len(t, cfg.Sounds, 2)
	bells, gondolier := cfg.Sounds[0], cfg.Sounds[1]
	assert.Equal(t, []string{"bells.ogg", "bells.mp3"}, bells.Src)
	assert.Equal(t, mix.BandPass, bells.Filter())
	assert.True(t, bells.Looping())
	assert.False(t, gondolier.Looping())
	assert.Equal(t, 2*time.Second, gondolier.StartTime)
	assert.Equal(t, 40*time.Second, gondolier.EndTime)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SHARAWADJI_ENGINE_CROWD_TARGET", "12")
	t.Setenv("SHARAWADJI_SINK_SAMPLE_RATE", "48000")

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.Engine.CrowdTarget)
	assert.Equal(t, 48000, cfg.Sink.SampleRate)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Engine.LoadThreshold, cfg.Engine.LoadThreshold)
	assert.Empty(t, cfg.Sounds)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "engine:\n  play_threshold: 400\n"))
	assert.ErrorIs(t, err, mix.ErrInvalidOptions)

	_, err = LoadConfig(writeConfig(t, "sounds:\n  - name: x\n    src: [a.wav]\n    lat: 100\n"))
	assert.ErrorIs(t, err, mix.ErrInvalidDescriptor)
}
