package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/geofence-console/internal/adapter/restapi"
	"github.com/heartmarshall/geofence-console/internal/config"
	"github.com/heartmarshall/geofence-console/internal/domain"
	"github.com/heartmarshall/geofence-console/internal/service/geofence"
)

// Notifier receives user-facing notifications of a console session.
type Notifier interface {
	Notify(ctx context.Context, n geofence.Notification)
}

// Console is one operator session against the geofence API.
type Console struct {
	Geofences *geofence.Service
	Projector *geofence.Projector

	client *restapi.Client
}

// OpenConsole resolves the session identity once, then loads the collection.
// A failed initial load is reported through notify and does not fail the open.
func OpenConsole(ctx context.Context, cfg *config.Config, logger *slog.Logger, notify Notifier) (*Console, error) {
	if err := cfg.ValidateConsole(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	client := restapi.NewClient(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout, logger)

	actor, err := client.WhoAmI(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	logger.DebugContext(ctx, "console session opened",
		slog.String("user_id", actor.UserID.String()),
		slog.String("role", actor.Role.String()),
	)

	c := &Console{
		Geofences: geofence.NewService(logger, client, notify, actor),
		Projector: geofence.NewProjector(cfg.Console.Palette),
		client:    client,
	}
	_ = c.Geofences.Refresh(ctx)

	return c, nil
}

// Organizations lists the organizations the session may create into.
func (c *Console) Organizations(ctx context.Context) ([]domain.Organization, error) {
	return c.client.ListOrganizations(ctx)
}
