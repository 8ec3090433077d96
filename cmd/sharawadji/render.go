// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ik5/sharawadji"
	"github.com/ik5/sharawadji/formats/wav"
	"github.com/ik5/sharawadji/provider"
	"github.com/ik5/sharawadji/sink/beepsink"
	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var routePath, outPath string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a walk along a route to a WAV file",
		Long: `Render moves the listener along the waypoints of a route file and writes
the resulting stereo mix as 16-bit WAV. Assets load instantly in offline
time, so sounds start the moment they come into range.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := readRoute(routePath)
			if err != nil {
				return err
			}
			d, err := a.render(r, outPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%v)\n", outPath, d)
			return nil
		},
	}

	cmd.Flags().StringVarP(&routePath, "route", "r", "route.yaml", "route file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "mix.wav", "output WAV file")
	return cmd
}

// render returns the length of audio written.
func (a *app) render(r route, outPath string) (time.Duration, error) {
	cfg := a.cfg

	// the engine's retry schedule follows rendered time, not wall time
	start := time.Now()
	var rendered time.Duration
	cfg.Engine.Clock = func() time.Time { return start.Add(rendered) }

	first := r.Waypoints[0]
	listener := provider.NewStatic(first.position(), first.orientation())
	p, err := sharawadji.New(cfg, listener, a.logs.Loggers)
	if err != nil {
		return 0, err
	}
	defer p.Close()

	out := p.Output()
	rate := out.Format().SampleRate
	var samples []float32
	for _, s := range r.stops() {
		listener.Set(s.pos, s.orient)
		p.Wait()

		samples = beepsink.Capture(samples, out, rate.N(s.dur))
		rendered = rate.D(len(samples) / 2)
	}
	a.logs.CLI.Debugf("Rendered %v along %d waypoints", rendered, len(r.Waypoints))

	f, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	if err := wav.Encode(f, int(rate), 2, samples); err != nil {
		f.Close()
		return 0, fmt.Errorf("writing %s: %w", outPath, err)
	}
	return rendered, f.Close()
}
