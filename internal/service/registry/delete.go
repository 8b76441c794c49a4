package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// Delete removes a geofence visible to the calling author.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}
	if !actor.CanMutate() {
		return domain.ErrForbidden
	}

	if id == uuid.Nil {
		return domain.NewValidationError("geofence_id", "required")
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, getErr := s.geofences.GetByID(txCtx, id)
		if getErr != nil {
			return fmt.Errorf("get geofence: %w", getErr)
		}
		if !visible(actor, current) {
			return fmt.Errorf("geofence %s: %w", id, domain.ErrNotFound)
		}

		if delErr := s.geofences.Delete(txCtx, id); delErr != nil {
			return fmt.Errorf("delete geofence: %w", delErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "geofence deleted",
		slog.String("user_id", actor.UserID.String()),
		slog.String("geofence_id", id.String()),
	)

	return nil
}
