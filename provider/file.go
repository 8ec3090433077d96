// SPDX-License-Identifier: EPL-2.0

package provider

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/decred/slog"
	"github.com/fsnotify/fsnotify"
	"github.com/ik5/sharawadji/geo"
	"github.com/ik5/sharawadji/mix"
	"gopkg.in/yaml.v3"
)

// Listener is what a listener file describes.
type Listener struct {
	geo.Position
	mix.Orientation
}

type listenerDoc struct {
	Lat     *float64 `yaml:"lat"`
	Lng     *float64 `yaml:"lng"`
	Heading float64  `yaml:"heading"`
	Pitch   float64  `yaml:"pitch"`
}

// ParseListener decodes a listener document. lat and lng are required so a
// file caught half written is rejected rather than read as 0,0.
func ParseListener(data []byte) (Listener, error) {
	var doc listenerDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Listener{}, fmt.Errorf("%w: %w", ErrInvalidListener, err)
	}
	if doc.Lat == nil || doc.Lng == nil {
		return Listener{}, fmt.Errorf("%w: lat and lng are required", ErrInvalidListener)
	}

	l := Listener{
		Position:    geo.Position{Lat: *doc.Lat, Lng: *doc.Lng},
		Orientation: mix.Orientation{Heading: doc.Heading, Pitch: doc.Pitch},
	}
	if !l.Valid() {
		return Listener{}, fmt.Errorf("%w: lat %v, lng %v out of range", ErrInvalidListener, l.Lat, l.Lng)
	}
	return l, nil
}

// ReadListener loads and parses path.
func ReadListener(path string) (Listener, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Listener{}, err
	}
	return ParseListener(data)
}

// File keeps a Static in step with a listener file. The containing
// directory is watched so editors that replace the file are followed too.
type File struct {
	*Static

	path    string
	log     slog.Logger
	watcher *fsnotify.Watcher

	closeOnce sync.Once
	done      chan struct{}
}

// NewFile reads path once and starts watching it. A file that cannot be
// read yet is not an error; the position stays unknown until it appears.
func NewFile(path string, log slog.Logger) (*File, error) {
	if log == nil {
		log = slog.Disabled
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("%w: %w", ErrWatch, err)
	}

	f := &File{
		Static:  &Static{},
		path:    abs,
		log:     log,
		watcher: w,
		done:    make(chan struct{}),
	}

	if l, err := ReadListener(abs); err == nil {
		f.Set(l.Position, l.Orientation)
	} else if !errors.Is(err, os.ErrNotExist) {
		w.Close()
		return nil, err
	}

	go f.watch()
	return f, nil
}

// Path is the absolute path being followed.
func (f *File) Path() string { return f.path }

func (f *File) watch() {
	defer close(f.done)

	for {
		select {
		case ev, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			f.reload()

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.log.Warnf("Watching %s: %v", f.path, err)
		}
	}
}

// reload keeps the previous listener when the file is mid-write or broken.
func (f *File) reload() {
	l, err := ReadListener(f.path)
	if err != nil {
		f.log.Debugf("Ignoring %s: %v", f.path, err)
		return
	}
	f.log.Tracef("Listener at %.6f,%.6f heading %.1f", l.Lat, l.Lng, l.Heading)
	f.Set(l.Position, l.Orientation)
}

// Close stops watching. The last position stays readable.
func (f *File) Close() error {
	var err error
	f.closeOnce.Do(func() {
		err = f.watcher.Close()
		<-f.done
	})
	return err
}
