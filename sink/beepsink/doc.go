// SPDX-License-Identifier: EPL-2.0

// Package beepsink is a mix.Sink built on github.com/gopxl/beep/v2.
//
// Every handle owns a voice: the decoded asset stored in a beep.Buffer,
// played through beep.Loop2 when the sound loops and a beep.Ctrl for
// stopping, then a per-voice stage with ramped gain, a ramped biquad filter,
// distance rolloff and equal-power panning. Voices meet in a beep.Mixer
// followed by a master effects.Gain and an optional soft limiter.
//
// The sink is itself a beep.Streamer. Hand it to speaker.Play for live
// output or pull it with Capture and Render for offline mixes.
//
// Sink takes listener-relative positions. PanSink is the same graph driven
// only by the legacy pan value, for engines that feed 2-D pan.
package beepsink
