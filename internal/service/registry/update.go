package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// Update changes geofence metadata. The boundary cannot be changed.
// Geofences outside the caller's organization are reported as not found.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Geofence, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.CanMutate() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Geofence
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, getErr := s.geofences.GetByID(txCtx, input.GeofenceID)
		if getErr != nil {
			return fmt.Errorf("get geofence: %w", getErr)
		}
		if !visible(actor, current) {
			return fmt.Errorf("geofence %s: %w", input.GeofenceID, domain.ErrNotFound)
		}

		var updateErr error
		updated, updateErr = s.geofences.Update(txCtx, input.GeofenceID, input.params())
		if updateErr != nil {
			return fmt.Errorf("update geofence: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "geofence updated",
		slog.String("user_id", actor.UserID.String()),
		slog.String("geofence_id", input.GeofenceID.String()),
	)

	return updated, nil
}
