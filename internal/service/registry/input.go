package registry

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// CreateInput holds the parameters for creating a geofence.
type CreateInput struct {
	Name           string
	Description    *string
	OrganizationID *uuid.UUID
	Boundary       domain.Boundary
	Active         *bool // nil = true
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, domain.ValidateGeofenceName(i.Name)...)
	errs = append(errs, domain.ValidateGeofenceDescription(i.Description)...)

	if i.OrganizationID == nil || *i.OrganizationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "organization", Message: "required"})
	}

	errs = append(errs, domain.ValidateBoundaryField(i.Boundary)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the metadata fields an update may change. nil = don't change.
type UpdateInput struct {
	GeofenceID  uuid.UUID
	Name        *string
	Description *string // ptr("") = clear
	Active      *bool
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.GeofenceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "geofence_id", Message: "required"})
	}
	if i.Name == nil && i.Description == nil && i.Active == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		errs = append(errs, domain.ValidateGeofenceName(*i.Name)...)
	}
	errs = append(errs, domain.ValidateGeofenceDescription(i.Description)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i UpdateInput) params() domain.GeofenceUpdateParams {
	params := domain.GeofenceUpdateParams{Active: i.Active}
	if i.Name != nil {
		name := strings.TrimSpace(*i.Name)
		params.Name = &name
	}
	if i.Description != nil {
		desc := strings.TrimSpace(*i.Description)
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
