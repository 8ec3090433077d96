// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ik5/sharawadji/geo"
	"github.com/ik5/sharawadji/mix"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	var l mix.ListenerState

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print what each sound would sound like from a position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !l.Position.Valid() {
				return fmt.Errorf("listener %v,%v out of range", l.Position.Lat, l.Position.Lng)
			}
			inspect(cmd.OutOrStdout(), a.cfg.Sounds, l, a.cfg.Engine)
			return nil
		},
	}

	cmd.Flags().Float64Var(&l.Position.Lat, "lat", 0, "listener latitude")
	cmd.Flags().Float64Var(&l.Position.Lng, "lng", 0, "listener longitude")
	cmd.Flags().Float64Var(&l.Heading, "heading", 0, "listener heading, degrees clockwise from north")
	cmd.Flags().Float64Var(&l.Pitch, "pitch", 0, "listener pitch in degrees")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

// zone names the lifecycle region a distance falls in.
func zone(d float64, o mix.Options) string {
	switch {
	case d < o.PlayThreshold:
		return "play"
	case d < o.LoadThreshold:
		return "load"
	}
	return "-"
}

// inspect prints one row per sound with no crowd attenuation applied.
func inspect(w io.Writer, sounds []mix.Descriptor, l mix.ListenerState, o mix.Options) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tZONE\tDISTANCE\tBEARING\tVOLUME\tCUTOFF\tPAN\tX\tY\tZ")
	for _, d := range sounds {
		p := mix.Evaluate(d, l, 0, o)
		fmt.Fprintf(tw, "%s\t%s\t%.1fm\t%.1f\t%.3f\t%.0fHz\t%.2f\t%s\n",
			d.Name, zone(p.Distance, o), p.Distance, p.Bearing, p.Volume, p.Cutoff, p.Pan, offset(p.Offset))
	}
	tw.Flush()
}

func offset(v geo.Vector) string {
	return fmt.Sprintf("%.1f\t%.1f\t%.1f", v.X, v.Y, v.Z)
}
