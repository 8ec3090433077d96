// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"context"
	"fmt"

	"github.com/ik5/sharawadji/audio"
	"github.com/ik5/sharawadji/internal/audiotest"
)

// Example_processingChain shows how an asset becomes a playable buffer.
func Example_processingChain() {
	// one second of stereo at 48kHz
	src := audiotest.NewSineSource(48000, 2, 48000, 440)

	mono := audio.NewMonoMixer(src)
	resampled := audio.NewResampler(mono, 16000)

	buf, err := audio.Collect(context.Background(), resampled, 4096)
	if err != nil {
		fmt.Println("collect:", err)
		return
	}

	fmt.Printf("%d Hz, %d channel(s), %.1fs\n", buf.Rate, buf.Channels, buf.Duration().Seconds())
	// Output: 16000 Hz, 1 channel(s), 1.0s
}

// Example_sniff shows format detection from leading bytes.
func Example_sniff() {
	fmt.Println(audio.Sniff([]byte("OggS\x00\x02\x00\x00")))
	fmt.Println(audio.Sniff([]byte("RIFF\x00\x00\x00\x00WAVE")))
	// Output:
	// ogg
	// wav
}
