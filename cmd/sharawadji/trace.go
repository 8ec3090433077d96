// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"os"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/ik5/sharawadji/cmd/sharawadji"

// fileTracing writes finished spans as JSON lines to a file.
type fileTracing struct {
	f  *os.File
	tp *sdktrace.TracerProvider
}

func newFileTracing(path string) (*fileTracing, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	exp, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &fileTracing{
		f:  f,
		tp: sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp)),
	}, nil
}

func (t *fileTracing) Tracer() trace.Tracer { return t.tp.Tracer(tracerName) }

func (t *fileTracing) Close() error {
	return errors.Join(t.tp.Shutdown(context.Background()), t.f.Close())
}
