// SPDX-License-Identifier: EPL-2.0

package beepsink

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/sharawadji/audio"
	"github.com/ik5/sharawadji/formats/wav"
	"github.com/ik5/sharawadji/mix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constantLoader struct {
	value  float32
	frames int
	rate   int
	refs   []string
}

func (l *constantLoader) Load(ctx context.Context, ref string) (*audio.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.refs = append(l.refs, ref)
	return constant(l.value, l.frames, l.rate), nil
}

func constant(v float32, frames, rate int) *audio.Buffer {
	s := make([]float32, frames)
	for i := range s {
		s[i] = v
	}
	return &audio.Buffer{Samples: s, Rate: rate, Channels: 1}
}

func loopOff() *bool { f := false; return &f }

func newTestSink(t *testing.T) *Sink {
	t.Helper()
	s, err := New(&constantLoader{value: 0.5, frames: 44100, rate: 44100}, Defaults(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// voiceReady creates, connects and starts a voice at unity gain with the
// filter wide open.
func voiceReady(t *testing.T, s *graph, d mix.Descriptor, buf *audio.Buffer) mix.Handle {
	t.Helper()

	h, err := s.CreateResources(d)
	require.NoError(t, err)
	require.NoError(t, s.Connect(h, buf))
	s.SetGain(h, 1, 0)
	s.SetFilterCutoff(h, 20000, 0)
	require.NoError(t, s.Start(h, 0))
	return h
}

func frames(samples []float32) [][2]float32 {
	out := make([][2]float32, len(samples)/2)
	for i := range out {
		out[i] = [2]float32{samples[2*i], samples[2*i+1]}
	}
	return out
}

func TestSink_PlaysCentredVoice(t *testing.T) {
	s := newTestSink(t)
	voiceReady(t, s.graph, mix.Descriptor{Name: "a"}, constant(0.5, 44100, 44100))

	out := frames(Capture(nil, s, 2048))
	require.Len(t, out, 2048)

	last := out[len(out)-1]
	want := 0.5 * math.Cos(math.Pi/4)
	assert.InDelta(t, want, last[0], 0.01)
	assert.InDelta(t, want, last[1], 0.01)
}

func TestSink_StopSilences(t *testing.T) {
	s := newTestSink(t)
	h := voiceReady(t, s.graph, mix.Descriptor{Name: "a"}, constant(0.5, 44100, 44100))

	Capture(nil, s, 512)
	s.Stop(h)

	for _, f := range frames(Capture(nil, s, 512)) {
		require.Zero(t, f[0])
		require.Zero(t, f[1])
	}

	// resuming plays again from the cached buffer
	require.NoError(t, s.Start(h, 0))
	out := frames(Capture(nil, s, 2048))
	assert.NotZero(t, out[len(out)-1][0])
}

func TestSink_NonLoopingVoiceEnds(t *testing.T) {
	s := newTestSink(t)
	voiceReady(t, s.graph, mix.Descriptor{Name: "a", Loop: loopOff()}, constant(0.5, 100, 44100))

	out := frames(Capture(nil, s, 1024))
	assert.NotZero(t, out[99][0])
	assert.Zero(t, out[500][0])
	assert.Zero(t, out[1023][1])
}

func TestSink_LoopingVoiceRepeats(t *testing.T) {
	s := newTestSink(t)
	h := voiceReady(t, s.graph, mix.Descriptor{Name: "a"}, constant(0.5, 100, 44100))

	out := frames(Capture(nil, s, 4096))
	assert.InDelta(t, 0.5*math.Cos(math.Pi/4), out[4000][0], 0.01)
	assert.False(t, s.Ended(h))
}

func TestSink_Ended(t *testing.T) {
	s := newTestSink(t)
	h := voiceReady(t, s.graph, mix.Descriptor{Name: "a", Loop: loopOff()}, constant(0.5, 100, 44100))
	assert.False(t, s.Ended(h), "nothing streamed yet")

	Capture(nil, s, 1024)
	assert.True(t, s.Ended(h))

	require.NoError(t, s.Start(h, 0))
	assert.False(t, s.Ended(h), "a restart clears it")

	s.Stop(h)
	assert.False(t, s.Ended(h), "stopped is not ended")
	assert.False(t, s.Ended(99))

	var sink mix.Sink = s
	_, ending := sink.(mix.EndingSink)
	assert.True(t, ending)
}

func TestSink_StartWindow(t *testing.T) {
	s := newTestSink(t)

	d := mix.Descriptor{Name: "a", EndTime: 10 * time.Millisecond}
	h, err := s.CreateResources(d)
	require.NoError(t, err)
	require.NoError(t, s.Connect(h, constant(0.5, 44100, 44100)))

	assert.ErrorIs(t, s.Start(h, 20*time.Millisecond), ErrNotConnected, "offset past the end time")
	assert.NoError(t, s.Start(h, 5*time.Millisecond))
}

func TestSink_Panning(t *testing.T) {
	s := newTestSink(t)
	h := voiceReady(t, s.graph, mix.Descriptor{Name: "a"}, constant(0.5, 44100, 44100))

	// straight to the right
	s.SetSpatialPosition(h, 10, 0, 0, 0)
	out := frames(Capture(nil, s, 4096))
	last := out[len(out)-1]
	assert.InDelta(t, 0, last[0], 1e-3)
	assert.InDelta(t, 0.5, last[1], 0.01)
}

func TestSink_PanGlidesOverRamp(t *testing.T) {
	s := newTestSink(t)
	h := voiceReady(t, s.graph, mix.Descriptor{Name: "a"}, constant(0.5, 44100, 44100))

	s.SetSpatialPosition(h, 10, 0, 0, time.Second)
	early := frames(Capture(nil, s, 4410))
	last := early[len(early)-1]
	assert.Greater(t, float64(last[0]), 0.25, "a tenth into the glide the image is still near the centre")
	assert.Greater(t, last[1], last[0])

	late := frames(Capture(nil, s, 44100))
	last = late[len(late)-1]
	assert.InDelta(t, 0, last[0], 1e-3)
	assert.InDelta(t, 0.5, last[1], 0.01)
}

func TestSink_Rolloff(t *testing.T) {
	s := newTestSink(t)
	h := voiceReady(t, s.graph, mix.Descriptor{Name: "a", Rolloff: 1}, constant(0.5, 44100, 44100))

	// ten metres ahead with rolloff 1 and a 1m reference is a tenth
	s.SetSpatialPosition(h, 0, 0, 10, 0)
	out := frames(Capture(nil, s, 4096))
	assert.InDelta(t, 0.05*math.Cos(math.Pi/4), out[len(out)-1][0], 1e-3)
}

func TestPanSink(t *testing.T) {
	s, err := NewPanning(&constantLoader{}, Defaults(), nil)
	require.NoError(t, err)
	defer s.Close()

	h := voiceReady(t, s.graph, mix.Descriptor{Name: "a"}, constant(0.5, 44100, 44100))
	s.SetPanAngle(h, -1, 0)

	out := frames(Capture(nil, s, 4096))
	last := out[len(out)-1]
	assert.InDelta(t, 0.5, last[0], 0.01)
	assert.InDelta(t, 0, last[1], 1e-3)

	var sink mix.Sink = s
	_, positional := sink.(mix.PositionalSink)
	assert.False(t, positional, "the legacy sink must not look positional")
}

func TestSink_Limiter(t *testing.T) {
	opts := Defaults()
	opts.Volume = 4
	s, err := New(&constantLoader{}, opts, nil)
	require.NoError(t, err)
	defer s.Close()

	voiceReady(t, s.graph, mix.Descriptor{Name: "a"}, constant(0.9, 44100, 44100))
	s.EnableLimiter(true)

	for _, f := range frames(Capture(nil, s, 4096)) {
		require.LessOrEqual(t, math.Abs(float64(f[0])), 1.0)
		require.LessOrEqual(t, math.Abs(float64(f[1])), 1.0)
	}
}

func TestSink_ResamplesForeignRates(t *testing.T) {
	s := newTestSink(t)
	voiceReady(t, s.graph, mix.Descriptor{Name: "a", Loop: loopOff()}, constant(0.5, 22050, 22050))

	out := frames(Capture(nil, s, 44100+1000))
	assert.NotZero(t, out[43000][0], "half a second at 22050 Hz plays for a second")
	assert.Zero(t, out[44100+900][0])
}

func TestSink_Errors(t *testing.T) {
	s := newTestSink(t)

	assert.ErrorIs(t, s.Connect(99, constant(0.5, 10, 44100)), ErrUnknownHandle)
	assert.ErrorIs(t, s.Start(99, 0), ErrUnknownHandle)

	h, err := s.CreateResources(mix.Descriptor{Name: "a"})
	require.NoError(t, err)
	assert.ErrorIs(t, s.Start(h, 0), ErrNotConnected)
	assert.ErrorIs(t, s.Connect(h, &audio.Buffer{Rate: 44100, Channels: 1}), ErrNotConnected)

	// setters on unknown handles are ignored
	s.SetGain(99, 1, time.Second)
	s.SetFilterCutoff(99, 100, 0)
	s.SetSpatialPosition(99, 1, 2, 3, time.Second)
	s.Stop(99)
	s.Release(99)
}

func TestSink_ReleaseAndClose(t *testing.T) {
	s := newTestSink(t)
	h := voiceReady(t, s.graph, mix.Descriptor{Name: "a"}, constant(0.5, 44100, 44100))
	voiceReady(t, s.graph, mix.Descriptor{Name: "b"}, constant(0.5, 44100, 44100))
	assert.Equal(t, 2, s.Voices())

	s.Release(h)
	assert.Equal(t, 1, s.Voices())

	require.NoError(t, s.Close())
	assert.Zero(t, s.Voices())
	for _, f := range frames(Capture(nil, s, 256)) {
		require.Zero(t, f[0])
	}

	_, err := s.CreateResources(mix.Descriptor{Name: "c"})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSink_DecodeUsesLoader(t *testing.T) {
	l := &constantLoader{value: 0.1, frames: 10, rate: 44100}
	s, err := New(l, Defaults(), nil)
	require.NoError(t, err)

	buf, err := s.Decode(context.Background(), "rain.ogg")
	require.NoError(t, err)
	assert.Equal(t, 10, buf.Frames())
	assert.Equal(t, []string{"rain.ogg"}, l.refs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Decode(ctx, "rain.ogg")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestOptions_Validate(t *testing.T) {
	require.NoError(t, Defaults().Validate())

	bad := Defaults()
	bad.LimiterThreshold = 1
	_, err := New(nil, bad, nil)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	bad = Defaults()
	bad.SampleRate = 100
	_, err = NewPanning(nil, bad, nil)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestRender(t *testing.T) {
	s := newTestSink(t)
	voiceReady(t, s.graph, mix.Descriptor{Name: "a"}, constant(0.5, 44100, 44100))

	path := filepath.Join(t.TempDir(), "mix.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, Render(f, s, beep.SampleRate(44100), 250*time.Millisecond))
	require.NoError(t, f.Close())

	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()

	src, err := wav.Decoder{}.Decode(r)
	require.NoError(t, err)
	buf, err := audio.Collect(context.Background(), src, 4096)
	require.NoError(t, err)

	assert.Equal(t, 2, buf.Channels)
	assert.Equal(t, 44100, buf.Rate)
	assert.Equal(t, 11025, buf.Frames())
}
