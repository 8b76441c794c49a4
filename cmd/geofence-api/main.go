// Command geofence-api serves the geofence REST API over PostgreSQL and
// carries the operator tooling around it (migrations, tokens, organizations).
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/geofence-console/internal/app"
	"github.com/heartmarshall/geofence-console/internal/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "geofence-api",
		Short:        "Geofence persistence API",
		Version:      app.BuildVersion(),
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "YAML config file (default $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newTokenCommand(),
		newOrgCommand(),
	)
	return root
}

// setup loads configuration (--config or CONFIG_PATH, env, defaults) and
// installs the logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, app.NewLogger("geofence-api", cfg.Log), nil
}
