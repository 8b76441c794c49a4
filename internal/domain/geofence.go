package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// MinBoundaryVertices is the smallest number of vertices a boundary can have
// before the ring is closed.
const MinBoundaryVertices = 3

// GeoPoint is a single pick on the capture surface. Capture order is
// latitude first; storage order (orb.Point) is longitude first.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point converts to the [lng, lat] storage order.
func (p GeoPoint) Point() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// Boundary is the closed outer ring of a geofence. Holes are not modeled.
// The zero value is an empty, invalid boundary.
type Boundary struct {
	ring orb.Ring
}

// NewBoundary validates ring and wraps it. The ring is copied.
func NewBoundary(ring orb.Ring) (Boundary, error) {
	b := Boundary{ring: ring.Clone()}
	if err := b.Validate(); err != nil {
		return Boundary{}, err
	}
	return b, nil
}

// Validate checks the closed-ring invariant: at least MinBoundaryVertices+1
// entries and first == last. Self-intersection and degenerate shapes are accepted.
func (b Boundary) Validate() error {
	if len(b.ring) < MinBoundaryVertices+1 {
		return fmt.Errorf("boundary has %d entries: %w", len(b.ring), ErrInsufficientPoints)
	}
	if !b.ring.Closed() {
		return fmt.Errorf("boundary ring is not closed: %w", ErrValidation)
	}
	return nil
}

// IsZero reports whether the boundary holds no ring.
func (b Boundary) IsZero() bool { return len(b.ring) == 0 }

// Ring returns a copy of the closed ring.
func (b Boundary) Ring() orb.Ring { return b.ring.Clone() }

// Polygon returns the boundary as a single-ring polygon.
func (b Boundary) Polygon() orb.Polygon { return orb.Polygon{b.Ring()} }

// Vertices returns the number of vertices without the closing entry.
func (b Boundary) Vertices() int {
	if len(b.ring) == 0 {
		return 0
	}
	return len(b.ring) - 1
}

// Coordinates returns the ring as [lng, lat] pairs.
func (b Boundary) Coordinates() [][2]float64 {
	out := make([][2]float64, len(b.ring))
	for i, p := range b.ring {
		out[i] = [2]float64{p.Lon(), p.Lat()}
	}
	return out
}

// MarshalJSON encodes the boundary as a GeoJSON Polygon.
func (b Boundary) MarshalJSON() ([]byte, error) {
	return json.Marshal(geojson.NewGeometry(orb.Polygon{b.ring}))
}

// UnmarshalJSON decodes a GeoJSON Polygon with exactly one ring.
func (b *Boundary) UnmarshalJSON(data []byte) error {
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return fmt.Errorf("decode polygon: %w", err)
	}
	poly, ok := g.Geometry().(orb.Polygon)
	if !ok {
		return fmt.Errorf("decode polygon: got %s: %w", g.Type, ErrValidation)
	}
	if len(poly) != 1 {
		return fmt.Errorf("decode polygon: want 1 ring, got %d: %w", len(poly), ErrValidation)
	}
	b.ring = poly[0]
	return nil
}

// Geofence is a named, organization-owned polygonal zone.
// Boundary is write-once; CenterPoint is computed by the persistence side.
type Geofence struct {
	ID             uuid.UUID
	Name           string
	Description    *string
	OrganizationID uuid.UUID
	Boundary       Boundary
	Active         bool
	CenterPoint    *orb.Point
	CreatedBy      *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GeofenceUpdateParams holds the mutable fields of a geofence.
// nil = don't change. There is deliberately no boundary field.
type GeofenceUpdateParams struct {
	Name        *string
	Description *string
	Active      *bool
}

// IsEmpty reports whether no field is set.
func (p GeofenceUpdateParams) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Active == nil
}

// GeofenceFilter narrows a geofence listing. The zero value matches everything.
type GeofenceFilter struct {
	OrganizationID *uuid.UUID
	Active         *bool
}

const (
	MaxGeofenceNameLength        = 255
	MaxGeofenceDescriptionLength = 2000
)

// ValidateGeofenceName checks a trimmed geofence name.
func ValidateGeofenceName(name string) []FieldError {
	name = strings.TrimSpace(name)
	if name == "" {
		return []FieldError{{Field: "name", Message: "required"}}
	}
	if utf8.RuneCountInString(name) > MaxGeofenceNameLength {
		return []FieldError{{Field: "name", Message: fmt.Sprintf("max %d characters", MaxGeofenceNameLength)}}
	}
	return nil
}

// ValidateGeofenceDescription checks an optional description. nil is valid.
func ValidateGeofenceDescription(desc *string) []FieldError {
	if desc != nil && utf8.RuneCountInString(strings.TrimSpace(*desc)) > MaxGeofenceDescriptionLength {
		return []FieldError{{Field: "description", Message: fmt.Sprintf("max %d characters", MaxGeofenceDescriptionLength)}}
	}
	return nil
}

// ValidateBoundaryField reports boundary problems as a "polygon" field error.
func ValidateBoundaryField(b Boundary) []FieldError {
	err := b.Validate()
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInsufficientPoints) {
		return []FieldError{{
			Field:   "polygon",
			Message: fmt.Sprintf("at least %d points required", MinBoundaryVertices),
			Err:     ErrInsufficientPoints,
		}}
	}
	return []FieldError{{Field: "polygon", Message: "ring must be closed"}}
}
