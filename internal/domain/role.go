package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the geofence permission level of an actor.
type Role string

const (
	// RoleBoundaryAuthor may create, edit metadata of and delete geofences.
	RoleBoundaryAuthor Role = "boundary_author"
	// RoleBoundaryViewer may only read geofences.
	RoleBoundaryViewer Role = "boundary_viewer"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleBoundaryAuthor, RoleBoundaryViewer:
		return true
	}
	return false
}

// CanMutate reports whether the role may create, update or delete geofences.
func (r Role) CanMutate() bool {
	return r == RoleBoundaryAuthor
}

// ParseRole converts a role string from the session source.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q: %w", s, ErrValidation)
	}
	return r, nil
}

// Actor is the current session's identity, resolved once and passed explicitly.
type Actor struct {
	UserID uuid.UUID
	Role   Role
	// OrganizationID is the actor's home organization, if any. Geofences created
	// by an author with a home organization always belong to it.
	OrganizationID *uuid.UUID
}

// CanMutate reports whether the actor may create, update or delete geofences.
func (a Actor) CanMutate() bool { return a.Role.CanMutate() }
