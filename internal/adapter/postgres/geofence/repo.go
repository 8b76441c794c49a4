// Package geofence implements geofence persistence using PostgreSQL.
// Queries are built with squirrel; the boundary is stored as a GeoJSON
// Polygon in a jsonb column and never updated after insert.
package geofence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb"

	postgres "github.com/heartmarshall/geofence-console/internal/adapter/postgres"
	"github.com/heartmarshall/geofence-console/internal/domain"
)

const table = "geofences"

var columns = []string{
	"id", "name", "description", "organization_id", "polygon_json", "active",
	"center_lng", "center_lat", "created_by", "created_at", "updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides geofence persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new geofence repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a geofence by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Geofence, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get geofence: %w", err)
	}

	g, err := scanGeofence(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "geofence", id)
	}
	return g, nil
}

// List returns geofences in creation order.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, filter domain.GeofenceFilter) ([]domain.Geofence, error) {
	b := psql.Select(columns...).From(table).OrderBy("created_at ASC", "id ASC")
	if filter.OrganizationID != nil {
		b = b.Where(sq.Eq{"organization_id": *filter.OrganizationID})
	}
	if filter.Active != nil {
		b = b.Where(sq.Eq{"active": *filter.Active})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list geofences: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list geofences: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Geofence, 0)
	for rows.Next() {
		g, err := scanGeofence(rows)
		if err != nil {
			return nil, fmt.Errorf("list geofences: %w", err)
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list geofences: %w", err)
	}

	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a geofence and returns the persisted row. ID and timestamps
// are assigned by the database.
// Returns domain.ErrNotFound if the organization does not exist.
func (r *Repo) Create(ctx context.Context, g domain.Geofence) (*domain.Geofence, error) {
	polygon, err := json.Marshal(g.Boundary)
	if err != nil {
		return nil, fmt.Errorf("encode polygon: %w", err)
	}

	var lng, lat *float64
	if g.CenterPoint != nil {
		x, y := g.CenterPoint.Lon(), g.CenterPoint.Lat()
		lng, lat = &x, &y
	}

	query, args, err := psql.Insert(table).
		Columns("name", "description", "organization_id", "polygon_json", "active", "center_lng", "center_lat", "created_by").
		Values(g.Name, g.Description, g.OrganizationID, polygon, g.Active, lng, lat, g.CreatedBy).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert geofence: %w", err)
	}

	created, err := scanGeofence(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "geofence", uuid.Nil)
	}
	return created, nil
}

// Update applies a partial update of the metadata columns.
// An empty description clears it (NULL). The polygon is never touched.
// Returns domain.ErrNotFound if the geofence does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.GeofenceUpdateParams) (*domain.Geofence, error) {
	if params.IsEmpty() {
		return nil, fmt.Errorf("geofence %s: empty update: %w", id, domain.ErrValidation)
	}

	set := sq.Eq{}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.Description != nil {
		if *params.Description == "" {
			set["description"] = nil
		} else {
			set["description"] = *params.Description
		}
	}
	if params.Active != nil {
		set["active"] = *params.Active
	}

	query, args, err := psql.Update(table).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update geofence: %w", err)
	}

	updated, err := scanGeofence(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "geofence", id)
	}
	return updated, nil
}

// Delete removes a geofence.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete geofence: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "geofence", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("geofence %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanGeofence(row pgx.Row) (*domain.Geofence, error) {
	var (
		g        domain.Geofence
		polygon  []byte
		lng, lat *float64
	)
	err := row.Scan(
		&g.ID, &g.Name, &g.Description, &g.OrganizationID, &polygon, &g.Active,
		&lng, &lat, &g.CreatedBy, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(polygon, &g.Boundary); err != nil {
		return nil, fmt.Errorf("geofence %s: %w", g.ID, err)
	}
	if lng != nil && lat != nil {
		g.CenterPoint = &orb.Point{*lng, *lat}
	}
	return &g, nil
}
