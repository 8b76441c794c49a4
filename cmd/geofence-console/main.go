// Command geofence-console is the operator console for geofence boundaries:
// capture a boundary point by point, list the collection, edit metadata and
// delete. Configuration comes from CONFIG_PATH and the environment
// (GEOFENCE_API_URL, GEOFENCE_API_TOKEN).
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/geofence-console/internal/app"
	"github.com/heartmarshall/geofence-console/internal/config"
	"github.com/heartmarshall/geofence-console/internal/service/geofence"
)

func main() {
	if err := newRootCommand(openConsole).Execute(); err != nil {
		os.Exit(1)
	}
}

// opener starts a console session; tests substitute their own.
type opener func(ctx context.Context, configPath string, notify app.Notifier) (*app.Console, error)

func openConsole(ctx context.Context, configPath string, notify app.Notifier) (*app.Console, error) {
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.OpenConsole(ctx, cfg, app.NewLogger("geofence-console", cfg.Log), notify)
}

func newRootCommand(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:          "geofence-console",
		Short:        "Define and manage geofence boundaries",
		Version:      app.BuildVersion(),
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "YAML config file (default $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		newDrawCommand(open),
		newListCommand(open),
		newOrgsCommand(open),
		newUpdateCommand(open),
		newDeleteCommand(open),
	)
	return root
}

// printNotifier writes notifications as single lines.
type printNotifier struct {
	w io.Writer
}

func (p printNotifier) Notify(_ context.Context, n geofence.Notification) {
	tag := "ok"
	if n.Kind == geofence.NotificationError {
		tag = "error"
	}
	if n.Message == "" {
		fmt.Fprintf(p.w, "[%s] %s\n", tag, n.Title)
		return
	}
	fmt.Fprintf(p.w, "[%s] %s: %s\n", tag, n.Title, n.Message)
}

// configFlag returns the persistent --config value.
func configFlag(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

var _ app.Notifier = printNotifier{}
