// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"io"
	"path"
	"slices"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys ("wav", "mp3", "ogg", "aiff") to decoders and
// knows how to recognise a format from an asset's leading bytes or name.
type Registry struct {
	codecs  map[string]Decoder
	aliases map[string]string

	mtx sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		aliases: map[string]string{
			"wave": "wav",
			"oga":  "ogg",
			"aif":  "aiff",
			"aifc": "aiff",
		},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	format = strings.ToLower(format)
	if alias, ok := r.aliases[format]; ok {
		format = alias
	}
	d, ok := r.codecs[format]
	return d, ok
}

// Formats lists the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Detect picks the decoder for an asset. The content signature wins over
// the name, since asset references are opaque and may carry no extension.
func (r *Registry) Detect(name string, header []byte) (string, Decoder, error) {
	if format := Sniff(header); format != "" {
		if d, ok := r.Get(format); ok {
			return format, d, nil
		}
	}

	// strip any query string before looking at the extension
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext != "" {
		if d, ok := r.Get(ext); ok {
			return strings.ToLower(ext), d, nil
		}
	}

	return "", nil, ErrUnknownFormat
}

// Sniff recognises the container of an encoded asset from its first bytes.
// It returns "" when nothing matches.
func Sniff(header []byte) string {
	switch {
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return "wav"
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("FORM")) &&
		(bytes.Equal(header[8:12], []byte("AIFF")) || bytes.Equal(header[8:12], []byte("AIFC"))):
		return "aiff"
	case len(header) >= 4 && bytes.Equal(header[:4], []byte("OggS")):
		return "ogg"
	case len(header) >= 3 && bytes.Equal(header[:3], []byte("ID3")):
		return "mp3"
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		// bare MPEG audio frame sync
		return "mp3"
	}
	return ""
}
