// Package organization implements organization lookups using PostgreSQL.
package organization

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/geofence-console/internal/adapter/postgres"
	"github.com/heartmarshall/geofence-console/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{"id", "name", "created_at"}

// Repo provides organization persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new organization repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts an organization.
// Returns domain.ErrAlreadyExists if the name is taken (case-insensitive).
func (r *Repo) Create(ctx context.Context, name string) (*domain.Organization, error) {
	query, args, err := psql.Insert("organizations").
		Columns("name").
		Values(name).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert organization: %w", err)
	}

	org, err := scanOrganization(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "organization", uuid.Nil)
	}
	return org, nil
}

// GetByID returns an organization by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	query, args, err := psql.Select(columns...).
		From("organizations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get organization: %w", err)
	}

	org, err := scanOrganization(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "organization", id)
	}
	return org, nil
}

// List returns organizations ordered by name, optionally only the given one.
func (r *Repo) List(ctx context.Context, only *uuid.UUID) ([]domain.Organization, error) {
	b := psql.Select(columns...).From("organizations").OrderBy("name ASC")
	if only != nil {
		b = b.Where(sq.Eq{"id": *only})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list organizations: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Organization, 0)
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("list organizations: %w", err)
		}
		out = append(out, *org)
	}
	return out, rows.Err()
}

func scanOrganization(row pgx.Row) (*domain.Organization, error) {
	var org domain.Organization
	if err := row.Scan(&org.ID, &org.Name, &org.CreatedAt); err != nil {
		return nil, err
	}
	return &org, nil
}
