package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// List returns the geofences visible to the caller in creation order.
// Viewers may list.
func (s *Service) List(ctx context.Context) ([]domain.Geofence, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	geofences, err := s.geofences.List(ctx, domain.GeofenceFilter{OrganizationID: actor.OrganizationID})
	if err != nil {
		return nil, fmt.Errorf("list geofences: %w", err)
	}
	return geofences, nil
}

// Get returns a single visible geofence.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Geofence, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	g, err := s.geofences.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get geofence: %w", err)
	}
	if !visible(actor, g) {
		return nil, fmt.Errorf("geofence %s: %w", id, domain.ErrNotFound)
	}
	return g, nil
}

// ListOrganizations returns the organizations the caller may create into.
func (s *Service) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	orgs, err := s.orgs.List(ctx, actor.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}

// AddOrganization registers an organization. It is an operator action and
// carries no caller identity.
func (s *Service) AddOrganization(ctx context.Context, name string) (*domain.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}
	if len([]rune(name)) > domain.MaxGeofenceNameLength {
		return nil, domain.NewValidationError("name", fmt.Sprintf("max %d characters", domain.MaxGeofenceNameLength))
	}

	org, err := s.orgs.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}

	s.log.InfoContext(ctx, "organization added",
		slog.String("organization_id", org.ID.String()),
		slog.String("name", org.Name),
	)
	return org, nil
}
