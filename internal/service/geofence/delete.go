package geofence

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// RequestDelete opens the delete confirmation for id. Viewers are rejected
// here, so the confirmation step is never reachable for them.
func (s *Service) RequestDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.authorize(ctx, "delete"); err != nil {
		return err
	}
	if id == uuid.Nil {
		return domain.NewValidationError("geofence_id", "required")
	}

	s.mu.Lock()
	s.pendingDelete = &id
	s.mu.Unlock()
	return nil
}

// CancelDelete closes the confirmation without deleting anything.
func (s *Service) CancelDelete() {
	s.mu.Lock()
	s.pendingDelete = nil
	s.mu.Unlock()
}

// ConfirmDelete irreversibly deletes the geofence awaiting confirmation.
// If it was selected, the selection is cleared. On failure the confirmation
// stays open so the user can retry or cancel.
func (s *Service) ConfirmDelete(ctx context.Context) error {
	if err := s.authorize(ctx, "delete"); err != nil {
		return err
	}

	id, ok := s.PendingDelete()
	if !ok {
		return ErrNoPendingDelete
	}

	key := DeleteKey(id)
	if !s.begin(key) {
		return domain.ErrBusy
	}
	defer s.end(key)

	if err := s.store.Delete(ctx, id); err != nil {
		pErr := asPersistenceError("delete geofence", err)
		s.log.ErrorContext(ctx, "delete geofence failed",
			slog.String("geofence_id", id.String()),
			slog.String("error", pErr.Error()),
		)
		s.notify.Notify(ctx, failure("Could not delete geofence", pErr))
		return pErr
	}

	s.mu.Lock()
	s.pendingDelete = nil
	if s.selected != nil && *s.selected == id {
		s.selected = nil
	}
	s.mu.Unlock()

	s.log.InfoContext(ctx, "geofence deleted",
		slog.String("user_id", s.actor.UserID.String()),
		slog.String("geofence_id", id.String()),
	)
	s.notify.Notify(ctx, success("Geofence deleted", ""))

	s.refreshAfter(ctx, "delete")
	return nil
}
