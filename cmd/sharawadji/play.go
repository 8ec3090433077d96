// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gopxl/beep/v2/speaker"
	"github.com/ik5/sharawadji"
	"github.com/ik5/sharawadji/mix"
	"github.com/ik5/sharawadji/provider"
	"github.com/spf13/cobra"
)

const statusEvery = 5 * time.Second

func newPlayCmd(a *app) *cobra.Command {
	var listenerPath string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the mix live, following a listener file",
		Long: `Play mixes to the default audio device. The listener is read from a small
YAML file (lat, lng, heading, pitch) which is watched for changes, so any
other program can move the listener by rewriting it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.play(ctx, listenerPath)
		},
	}

	cmd.Flags().StringVarP(&listenerPath, "listener", "l", "listener.yaml", "listener file to follow")
	return cmd
}

func (a *app) play(ctx context.Context, listenerPath string) error {
	listener, err := provider.NewFile(listenerPath, a.logs.Provider)
	if err != nil {
		return err
	}
	defer listener.Close()
	if _, ok := listener.Position(); !ok {
		a.logs.CLI.Infof("Waiting for %s", listener.Path())
	}

	p, err := sharawadji.New(a.cfg, listener, a.logs.Loggers)
	if err != nil {
		return err
	}
	defer p.Close()

	format := p.Output().Format()
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(a.cfg.Sink.Buffer)); err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	speaker.Play(p.Output())
	a.logs.CLI.Infof("Playing %d sounds at %d Hz", len(a.cfg.Sounds), format.SampleRate)

	tick := time.NewTicker(statusEvery)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			speaker.Clear()
			a.logs.CLI.Infof("Stopping")
			return nil
		case <-tick.C:
			a.logStatus(p)
		}
	}
}

func (a *app) logStatus(p *sharawadji.Player) {
	counts := make(map[mix.State]int)
	for _, s := range p.Sounds() {
		counts[s.State]++
	}
	a.logs.CLI.Debugf("%d playing, %d suspended, %d loading, %d failed, crowd %.2f",
		counts[mix.Playing], counts[mix.Suspended], counts[mix.Loading], counts[mix.Failed], p.CrowdFactor())
}
