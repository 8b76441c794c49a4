// Package registry enforces the server-side geofence rules behind the REST
// persistence API: role gating, organization scoping, ring validation and
// center computation.
package registry

import (
	"context"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/heartmarshall/geofence-console/internal/domain"
	"github.com/heartmarshall/geofence-console/pkg/ctxutil"
)

type geofenceRepo interface {
	Create(ctx context.Context, g domain.Geofence) (*domain.Geofence, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Geofence, error)
	List(ctx context.Context, filter domain.GeofenceFilter) ([]domain.Geofence, error)
	Update(ctx context.Context, id uuid.UUID, params domain.GeofenceUpdateParams) (*domain.Geofence, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type organizationRepo interface {
	Create(ctx context.Context, name string) (*domain.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	List(ctx context.Context, only *uuid.UUID) ([]domain.Organization, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides geofence registry operations.
type Service struct {
	geofences geofenceRepo
	orgs      organizationRepo
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new registry service.
func NewService(
	log *slog.Logger,
	geofences geofenceRepo,
	orgs organizationRepo,
	tx txManager,
) *Service {
	return &Service{
		geofences: geofences,
		orgs:      orgs,
		tx:        tx,
		log:       log.With("service", "registry"),
	}
}

// actorFromCtx resolves the caller placed in the context by the auth middleware.
func actorFromCtx(ctx context.Context) (domain.Actor, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Actor{}, domain.ErrUnauthorized
	}

	role, err := domain.ParseRole(ctxutil.RoleFromCtx(ctx))
	if err != nil {
		return domain.Actor{}, domain.ErrForbidden
	}

	actor := domain.Actor{UserID: userID, Role: role}
	if orgID, ok := ctxutil.OrganizationIDFromCtx(ctx); ok {
		actor.OrganizationID = &orgID
	}
	return actor, nil
}

// visible reports whether actor may see g. Actors without a home organization
// see every organization.
func visible(actor domain.Actor, g *domain.Geofence) bool {
	return actor.OrganizationID == nil || *actor.OrganizationID == g.OrganizationID
}

// centerOf returns the area-weighted centroid of the boundary, or nil for
// degenerate rings.
func centerOf(b domain.Boundary) *orb.Point {
	c, _ := planar.CentroidArea(b.Polygon())
	if math.IsNaN(c.Lon()) || math.IsNaN(c.Lat()) {
		return nil
	}
	return &c
}
