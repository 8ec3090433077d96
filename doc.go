// SPDX-License-Identifier: EPL-2.0

// Package sharawadji mixes geolocated sounds around a moving listener.
//
// Sounds are described by a name, one or more asset references and a
// latitude and longitude. As the listener moves, each sound is loaded when
// it comes within the load threshold, plays inside the play threshold and
// is suspended again outside it. While playing, its gain follows the
// inverse square of the distance, a low-pass filter closes as it moves
// behind the listener and its position is fed to the spatializer.
//
// # Quick Start
//
//	cfg := sharawadji.DefaultConfig()
//	cfg.Sounds = []mix.Descriptor{{
//		Name:      "fountain",
//		Src:       []string{"sounds/fountain.ogg", "sounds/fountain.mp3"},
//		Lat:       51.5007,
//		Lng:       -0.1246,
//		Amplitude: 200,
//	}}
//
//	listener := provider.NewStatic(geo.Position{Lat: 51.5010, Lng: -0.1246}, mix.Orientation{})
//	p, _ := sharawadji.New(cfg, listener, sharawadji.Loggers{})
//	defer p.Close()
//
//	speaker.Init(p.Output().Format().SampleRate, 4410)
//	speaker.Play(p.Output())
//
// # Packages
//
//   - geo: distance, bearing and listener-relative coordinates
//   - mix: attenuation, occlusion, the sound lifecycle and the engine
//   - asset: fetching, caching and decoding of sound assets
//   - sink/beepsink: the audio graph built on gopxl/beep
//   - provider: listener positions from code or a watched file
//   - formats/...: WAV, MP3, Ogg Vorbis and AIFF decoders
//   - audio: the sample pipeline shared by the decoders
package sharawadji
