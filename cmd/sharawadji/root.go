// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/ik5/sharawadji"
	"github.com/spf13/cobra"
)

// app is shared by the subcommands once the root has loaded it.
type app struct {
	configPath string
	logLevel   string
	tracePath  string

	cfg     sharawadji.Config
	logs    logging
	tracing *fileTracing
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "sharawadji",
		Short: "Mix geolocated sounds around a listener",
		Long: `sharawadji places sounds on the map and mixes them for a listener walking
among them: nearby sounds are fetched and decoded, close ones play with a
gain that follows the distance and a filter that darkens what is behind.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "sharawadji.yaml", "configuration file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "trace, debug, info, warn, error, critical or off")
	cmd.PersistentFlags().StringVar(&a.tracePath, "trace", "", "write asset load spans to this file")

	cmd.AddCommand(newPlayCmd(a), newRenderCmd(a), newInspectCmd(a))
	return cmd
}

func (a *app) load(cmd *cobra.Command) error {
	logs, err := newLogging(cmd.ErrOrStderr(), a.logLevel)
	if err != nil {
		return err
	}
	a.logs = logs

	cfg, err := sharawadji.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logs.CLI.Debugf("Loaded %d sounds from %s", len(cfg.Sounds), a.configPath)

	if a.tracePath != "" {
		t, err := newFileTracing(a.tracePath)
		if err != nil {
			return err
		}
		a.tracing = t
		a.cfg.Engine.Tracer = t.Tracer()
	}
	return nil
}

// close flushes spans. It only runs after a successful command.
func (a *app) close() error {
	if a.tracing == nil {
		return nil
	}
	err := a.tracing.Close()
	a.tracing = nil
	return err
}
