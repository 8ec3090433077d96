// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Fetcher returns the bytes behind a reference.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, ref string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, ref string) ([]byte, error) {
	return f(ctx, ref)
}

// FileFetcher reads references as paths. Relative paths resolve against
// Root; when Root is set, paths may not leave it.
type FileFetcher struct {
	Root string
}

func (f FileFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := f.resolve(ref)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return data, nil
}

func (f FileFetcher) resolve(ref string) (string, error) {
	ref = strings.TrimPrefix(ref, "file://")
	if f.Root == "" {
		return filepath.Clean(ref), nil
	}

	p := filepath.Join(f.Root, filepath.FromSlash(ref))
	rel, err := filepath.Rel(f.Root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, ref)
	}
	return p, nil
}

// HTTPFetcher GETs references as URLs.
type HTTPFetcher struct {
	// Client defaults to http.DefaultClient.
	Client *http.Client
	// MaxBytes caps the body size; zero means 64 MiB.
	MaxBytes int64
}

const defaultMaxBytes = 64 << 20

func (f HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: %s", ErrFetch, ref, resp.Status)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = defaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: reading body: %w", ErrFetch, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s larger than %d bytes", ErrFetch, ref, limit)
	}
	return data, nil
}

// Mux sends http(s) URLs to HTTP and everything else to File.
type Mux struct {
	HTTP Fetcher
	File Fetcher
}

func (m Mux) Fetch(ctx context.Context, ref string) ([]byte, error) {
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		next := m.HTTP
		if next == nil {
			next = HTTPFetcher{}
		}
		return next.Fetch(ctx, ref)
	}

	next := m.File
	if next == nil {
		next = FileFetcher{}
	}
	return next.Fetch(ctx, ref)
}
