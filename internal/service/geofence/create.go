package geofence

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// Create persists a new active geofence and refetches the collection.
// Validation errors are returned per field before any network call. The new
// geofence is not inserted locally: its ID and center come from the refetch.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Geofence, error) {
	if err := s.authorize(ctx, "create"); err != nil {
		return nil, err
	}

	if s.actor.OrganizationID != nil {
		input.OrganizationID = *s.actor.OrganizationID
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if !s.begin(CreateKey) {
		return nil, domain.ErrBusy
	}
	defer s.end(CreateKey)

	name := strings.TrimSpace(input.Name)
	created, err := s.store.Create(ctx, domain.Geofence{
		Name:           name,
		Description:    trimOrNil(input.Description),
		OrganizationID: input.OrganizationID,
		Boundary:       input.Boundary,
		Active:         true,
	})
	if err != nil {
		pErr := asPersistenceError("create geofence", err)
		s.log.ErrorContext(ctx, "create geofence failed",
			slog.String("name", name),
			slog.String("error", pErr.Error()),
		)
		s.notify.Notify(ctx, failure("Could not create geofence", pErr))
		return nil, pErr
	}

	s.log.InfoContext(ctx, "geofence created",
		slog.String("user_id", s.actor.UserID.String()),
		slog.String("geofence_id", created.ID.String()),
		slog.String("organization_id", input.OrganizationID.String()),
		slog.Int("vertices", input.Boundary.Vertices()),
	)
	s.notify.Notify(ctx, success("Geofence created", name))

	s.refreshAfter(ctx, "create")
	return created, nil
}
