package geofence

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// Update changes name, description or active flag of a geofence.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*domain.Geofence, error) {
	if err := s.authorize(ctx, "edit"); err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		return nil, domain.NewValidationError("geofence_id", "required")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	key := UpdateKey(id)
	if !s.begin(key) {
		return nil, domain.ErrBusy
	}
	defer s.end(key)

	updated, err := s.store.Update(ctx, id, patch.params())
	if err != nil {
		pErr := asPersistenceError("update geofence", err)
		s.log.ErrorContext(ctx, "update geofence failed",
			slog.String("geofence_id", id.String()),
			slog.String("error", pErr.Error()),
		)
		s.notify.Notify(ctx, failure("Could not update geofence", pErr))
		return nil, pErr
	}

	s.log.InfoContext(ctx, "geofence updated",
		slog.String("user_id", s.actor.UserID.String()),
		slog.String("geofence_id", id.String()),
	)
	s.notify.Notify(ctx, success("Geofence updated", updated.Name))

	s.refreshAfter(ctx, "update")
	return updated, nil
}
