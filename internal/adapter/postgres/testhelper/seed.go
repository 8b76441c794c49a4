package testhelper

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedOrganization creates an organization with a unique name.
func SeedOrganization(t *testing.T, pool *pgxpool.Pool) domain.Organization {
	t.Helper()

	org := domain.Organization{Name: "Org " + uniqueSuffix()}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO organizations (name) VALUES ($1) RETURNING id, created_at`,
		org.Name,
	).Scan(&org.ID, &org.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedOrganization: %v", err)
	}
	return org
}

// SquareBoundary returns a closed unit square anchored at (lng, lat).
func SquareBoundary(t *testing.T, lng, lat float64) domain.Boundary {
	t.Helper()

	b, err := domain.NewBoundary(orb.Ring{
		{lng, lat}, {lng + 1, lat}, {lng + 1, lat + 1}, {lng, lat + 1}, {lng, lat},
	})
	if err != nil {
		t.Fatalf("testhelper: SquareBoundary: %v", err)
	}
	return b
}

// SeedGeofence creates an active geofence in orgID without a centre point.
func SeedGeofence(t *testing.T, pool *pgxpool.Pool, orgID uuid.UUID) domain.Geofence {
	t.Helper()

	g := domain.Geofence{
		Name:           "Zone " + uniqueSuffix(),
		OrganizationID: orgID,
		Boundary:       SquareBoundary(t, 10, 20),
		Active:         true,
	}

	polygon, err := json.Marshal(g.Boundary)
	if err != nil {
		t.Fatalf("testhelper: SeedGeofence encode: %v", err)
	}

	err = pool.QueryRow(context.Background(),
		`INSERT INTO geofences (name, organization_id, polygon_json, active)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`,
		g.Name, g.OrganizationID, polygon, g.Active,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedGeofence: %v", err)
	}
	return g
}
