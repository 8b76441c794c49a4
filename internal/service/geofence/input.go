package geofence

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// CreateInput holds the parameters for creating a geofence.
type CreateInput struct {
	Name        string
	Description *string
	// OrganizationID is ignored for authors that belong to an organization:
	// their geofences always go to their own organization.
	OrganizationID uuid.UUID
	Boundary       domain.Boundary
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, domain.ValidateGeofenceName(i.Name)...)
	errs = append(errs, domain.ValidateGeofenceDescription(i.Description)...)

	if i.OrganizationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "organization", Message: "required"})
	}

	errs = append(errs, domain.ValidateBoundaryField(i.Boundary)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Patch holds the metadata fields an update may change. nil = don't change.
// Boundary geometry is immutable after creation and has no field here; the
// only way to reshape a geofence is delete-then-recreate.
type Patch struct {
	Name        *string
	Description *string // ptr("") = clear
	Active      *bool
}

// Validate checks all fields and collects all errors.
func (p Patch) Validate() error {
	var errs []domain.FieldError

	if p.Name == nil && p.Description == nil && p.Active == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if p.Name != nil {
		errs = append(errs, domain.ValidateGeofenceName(*p.Name)...)
	}
	errs = append(errs, domain.ValidateGeofenceDescription(p.Description)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (p Patch) params() domain.GeofenceUpdateParams {
	params := domain.GeofenceUpdateParams{Active: p.Active}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		params.Name = &name
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		params.Description = &desc
	}
	return params
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
