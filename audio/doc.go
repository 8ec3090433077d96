// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding side of the mixing pipeline.
//
// Encoded assets are turned into Sources by format Decoders, reduced to a
// single channel, brought to the sink's sample rate and finally collected
// into an in-memory Buffer that a sink can play, stop and resume at will.
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1.0, 1.0]. ReadSamples
// returns io.EOF once the stream is exhausted.
//
// # Format Registry
//
// The Registry maps format keys to Decoders and can pick one for an asset
// from its leading bytes, falling back to the file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	format, decoder, err := registry.Detect("birds.wav", data[:16])
//
// # Processing Chain
//
//	mono := audio.NewMonoMixer(src)
//	resampled := audio.NewResampler(mono, 44100)
//	buf, err := audio.Collect(ctx, resampled, 4096)
//
// Collect checks its context between chunks, so a load abandoned by the
// mixer stops decoding early.
package audio
