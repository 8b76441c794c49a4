package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// SQLSTATE codes the geofence schema can raise.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514" // also raised by the polygon freeze trigger
	codeQueryCanceled       = "57014" // statement_timeout
)

var codeErrors = map[string]error{
	codeUniqueViolation:     domain.ErrAlreadyExists,
	codeForeignKeyViolation: domain.ErrNotFound,
	codeCheckViolation:      domain.ErrValidation,
	codeQueryCanceled:       context.DeadlineExceeded,
}

// MapError converts pgx errors into domain sentinels, prefixed with the
// entity and its id. Context errors and unknown errors are wrapped unchanged.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if target, ok := codeErrors[pgErr.Code]; ok {
			if pgErr.Code == codeForeignKeyViolation {
				return fmt.Errorf("%s %s: %s: %w", entity, id, constraintSubject(pgErr), target)
			}
			return fmt.Errorf("%s %s: %w", entity, id, target)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}

// constraintSubject names the referenced row of a foreign key violation.
func constraintSubject(pgErr *pgconn.PgError) string {
	switch pgErr.ConstraintName {
	case "geofences_organization_id_fkey":
		return "organization"
	case "":
		return "reference"
	default:
		return pgErr.ConstraintName
	}
}
