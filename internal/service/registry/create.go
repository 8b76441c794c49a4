package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// Create persists a new geofence for the calling author. Authors that belong
// to an organization always create into it; the requested organization is
// overridden.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Geofence, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.CanMutate() {
		return nil, domain.ErrForbidden
	}

	if actor.OrganizationID != nil {
		input.OrganizationID = actor.OrganizationID
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	g := domain.Geofence{
		Name:           strings.TrimSpace(input.Name),
		Description:    trimOrNil(input.Description),
		OrganizationID: *input.OrganizationID,
		Boundary:       input.Boundary,
		Active:         active,
		CenterPoint:    centerOf(input.Boundary),
		CreatedBy:      &actor.UserID,
	}

	var created *domain.Geofence
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, getErr := s.orgs.GetByID(txCtx, g.OrganizationID); getErr != nil {
			if errors.Is(getErr, domain.ErrNotFound) {
				return domain.NewValidationError("organization", "unknown organization")
			}
			return fmt.Errorf("get organization: %w", getErr)
		}

		var createErr error
		created, createErr = s.geofences.Create(txCtx, g)
		if createErr != nil {
			return fmt.Errorf("create geofence: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "geofence created",
		slog.String("user_id", actor.UserID.String()),
		slog.String("geofence_id", created.ID.String()),
		slog.String("organization_id", created.OrganizationID.String()),
		slog.Int("vertices", created.Boundary.Vertices()),
	)

	return created, nil
}
