package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/geofence-console/internal/service/geofence"
)

func newUpdateCommand(open opener) *cobra.Command {
	var (
		name        string
		description string
		active      bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit geofence name, description or active flag",
		Long:  "Boundary geometry cannot be edited. To reshape a geofence, delete it and draw it again.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("geofence id: %w", err)
			}

			var patch geofence.Patch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("active") {
				patch.Active = &active
			}

			console, err := open(commandContext(cmd), configFlag(cmd), printNotifier{w: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}

			updated, err := console.Geofences.Update(commandContext(cmd), id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description (empty clears it)")
	cmd.Flags().BoolVar(&active, "active", true, "active flag")
	return cmd
}

func newDeleteCommand(open opener) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a geofence after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("geofence id: %w", err)
			}

			ctx := commandContext(cmd)
			console, err := open(ctx, configFlag(cmd), printNotifier{w: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}

			if err := console.Geofences.RequestDelete(ctx, id); err != nil {
				return err
			}

			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete geofence %s? This cannot be undone. [y/N] ", id)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					console.Geofences.CancelDelete()
					fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
					return nil
				}
			}

			if err := console.Geofences.ConfirmDelete(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
