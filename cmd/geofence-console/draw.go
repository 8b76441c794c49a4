package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/geofence-console/internal/app"
	"github.com/heartmarshall/geofence-console/internal/domain"
	"github.com/heartmarshall/geofence-console/internal/service/boundary"
	"github.com/heartmarshall/geofence-console/internal/service/geofence"
)

type drawOptions struct {
	name        string
	description string
	org         string
}

func newDrawCommand(open opener) *cobra.Command {
	var opts drawOptions

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Capture a boundary from map commands and create a geofence",
		Long: `Reads capture commands from stdin, one per line:

  add <lat> <lng>   record a vertex
  undo              drop the last vertex
  clear             drop all vertices
  confirm           close the ring and create the geofence
  cancel            abandon the capture

The geofence is created on confirm. After a failed create the captured
vertices are kept and confirm may be sent again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			notify := printNotifier{w: cmd.ErrOrStderr()}
			console, err := open(commandContext(cmd), configFlag(cmd), notify)
			if err != nil {
				return err
			}
			return runDraw(commandContext(cmd), console, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "geofence name (required)")
	cmd.Flags().StringVar(&opts.description, "description", "", "optional description")
	cmd.Flags().StringVar(&opts.org, "org", "", "organization ID (ignored when the session has a home organization)")
	return cmd
}

// runDraw applies commands from in until the geofence is created, the capture
// is cancelled or input ends.
func runDraw(ctx context.Context, console *app.Console, opts drawOptions, in io.Reader, out io.Writer) error {
	var orgID uuid.UUID
	if opts.org != "" {
		id, err := uuid.Parse(opts.org)
		if err != nil {
			return fmt.Errorf("--org: %w", err)
		}
		orgID = id
	}

	var description *string
	if opts.description != "" {
		description = &opts.description
	}

	session := boundary.NewSession()
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cmd, err := boundary.ParseCommand(line)
		if err != nil {
			fmt.Fprintf(out, "! %v\n", err)
			continue
		}

		if err := session.Apply(cmd); err != nil {
			fmt.Fprintf(out, "! %v\n", err)
			continue
		}

		switch cmd.Kind {
		case boundary.CommandCancel:
			fmt.Fprintln(out, "capture cancelled")
			return nil
		case boundary.CommandConfirm:
			err := session.Submit(func(b domain.Boundary) error {
				created, err := console.Geofences.Create(ctx, geofence.CreateInput{
					Name:           opts.name,
					Description:    description,
					OrganizationID: orgID,
					Boundary:       b,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "created %s (%d vertices)\n", created.ID, b.Vertices())
				return nil
			})
			if err == nil {
				return nil
			}
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				for _, fe := range ve.Errors {
					fmt.Fprintf(out, "! %s: %s\n", fe.Field, fe.Message)
				}
				return err
			}
			if errors.Is(err, domain.ErrForbidden) {
				return err
			}
			fmt.Fprintln(out, "! create failed, send confirm to retry")
			continue
		}

		fmt.Fprintf(out, "%s: %d point(s)\n", session.State(), session.Len())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	if session.State() != boundary.StateSubmitted {
		return errors.New("input ended before the geofence was created")
	}
	return nil
}
