// SPDX-License-Identifier: EPL-2.0

package mix_test

import (
	"context"
	"testing"

	"github.com/ik5/sharawadji/mix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func attrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestEngine_LoadSpans(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	opts := mix.Defaults()
	opts.Tracer = tp.Tracer("test")

	f := newFixture(t, positional, opts, at(1000),
		descriptor("A", "broken.mp3", "A.wav"),
		descriptor("B", "gone.wav"),
	)
	f.rec.SetFail("broken.mp3", true)
	f.rec.SetFail("gone.wav", true)
	require.Empty(t, spans.Ended())

	f.prov.Move(at(100))
	f.engine.Wait()

	ended := spans.Ended()
	require.Len(t, ended, 2)

	byName := make(map[string]sdktrace.ReadOnlySpan)
	for _, s := range ended {
		assert.Equal(t, "mix.load", s.Name())
		byName[attrs(s)["sound.name"].AsString()] = s
	}

	a := attrs(byName["A"])
	assert.Equal(t, int64(2), a["sound.refs"].AsInt64())
	assert.Equal(t, "A.wav", a["sound.ref"].AsString())
	assert.Equal(t, sound(t, f.engine, "A").Snapshot().Attempt, a["load.attempt"].AsString())
	assert.NotEqual(t, codes.Error, byName["A"].Status().Code)

	b := byName["B"]
	_, ok := attrs(b)["sound.ref"]
	assert.False(t, ok)
	assert.Equal(t, codes.Error, b.Status().Code)
}
