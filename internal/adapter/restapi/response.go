package restapi

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// apiGeofence is a geofence as returned by GET /geofences and the mutation
// endpoints.
type apiGeofence struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Description  *string           `json:"description"`
	Organization uuid.UUID         `json:"organization"`
	PolygonJSON  domain.Boundary   `json:"polygon_json"`
	Active       bool              `json:"active"`
	CenterPoint  *geojson.Geometry `json:"center_point"`
	CreatedBy    *uuid.UUID        `json:"created_by"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// createRequest is the POST /geofences body.
type createRequest struct {
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	PolygonJSON  domain.Boundary `json:"polygon_json"`
	Organization uuid.UUID       `json:"organization"`
	Active       bool            `json:"active"`
}

// patchRequest is the PATCH /geofences/{id} body. Only set fields are sent.
type patchRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

type apiOrganization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type apiSession struct {
	UserID       uuid.UUID  `json:"user_id"`
	Role         string     `json:"role"`
	Organization *uuid.UUID `json:"organization"`
}

// apiError is the error envelope of every non-2xx response.
type apiError struct {
	Error  string          `json:"error"`
	Fields []apiFieldError `json:"fields,omitempty"`
}

type apiFieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (g apiGeofence) toDomain() domain.Geofence {
	out := domain.Geofence{
		ID:             g.ID,
		Name:           g.Name,
		Description:    g.Description,
		OrganizationID: g.Organization,
		Boundary:       g.PolygonJSON,
		Active:         g.Active,
		CreatedBy:      g.CreatedBy,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
	if g.CenterPoint != nil {
		if p, ok := g.CenterPoint.Geometry().(orb.Point); ok {
			out.CenterPoint = &p
		}
	}
	return out
}

func (o apiOrganization) toDomain() domain.Organization {
	return domain.Organization{ID: o.ID, Name: o.Name, CreatedAt: o.CreatedAt}
}

// decodeError extracts the best available server message from an error body.
func decodeError(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	if len(e.Fields) == 0 {
		return e.Error
	}
	msg := ""
	for i, f := range e.Fields {
		if i > 0 {
			msg += "; "
		}
		msg += f.Field + ": " + f.Message
	}
	return msg
}
