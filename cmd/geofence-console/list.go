package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/geofence-console/internal/app"
	"github.com/heartmarshall/geofence-console/internal/service/geofence"
)

func newListCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List geofences with their display colour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			console, err := open(commandContext(cmd), configFlag(cmd), printNotifier{w: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), console)
		},
	}
}

func printList(w io.Writer, console *app.Console) error {
	geofences := console.Geofences.Geofences()
	rows := console.Projector.Project(geofences)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLOR\tID\tNAME\tACTIVE\tVERTICES\tAREA_KM2")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%d\t%.3f\n", r.Color, r.ID, r.Name, r.Active, r.Vertices, r.AreaSqM/1e6)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	counts := geofence.GroupByActive(geofences)
	_, err := fmt.Fprintf(w, "\n%d active, %d inactive\n", counts.Active, counts.Inactive)
	return err
}

func newOrgsCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "orgs",
		Short: "List organizations available to this session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			console, err := open(commandContext(cmd), configFlag(cmd), printNotifier{w: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}

			orgs, err := console.Organizations(commandContext(cmd))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, o := range orgs {
				fmt.Fprintf(tw, "%s\t%s\n", o.ID, o.Name)
			}
			return tw.Flush()
		},
	}
}
