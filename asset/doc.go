// SPDX-License-Identifier: EPL-2.0

// Package asset turns opaque source references into decoded audio.
//
// A Fetcher returns the raw bytes behind a reference. FileFetcher reads
// below a root directory, HTTPFetcher performs a GET, and Mux picks between
// them by scheme. Cache keeps fetched bytes for a while so a sound that is
// replaced or retried does not hit the network again.
//
// Loader does the rest: it recognises the container from the bytes (falling
// back to the reference's extension), decodes, folds to mono, resamples to
// the output rate and collects the whole stream into an audio.Buffer.
//
//	loader := &asset.Loader{
//	    Fetcher:  asset.NewCache(asset.Mux{File: asset.FileFetcher{Root: "sounds"}}, time.Hour),
//	    Registry: asset.DefaultRegistry(),
//	    Rate:     44100,
//	}
//	buf, err := loader.Load(ctx, "fountain.ogg")
package asset
