package rest

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

type createGeofenceRequest struct {
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	PolygonJSON  json.RawMessage `json:"polygon_json"`
	Organization *uuid.UUID      `json:"organization"`
	Active       *bool           `json:"active"`
}

// patchGeofenceRequest accepts polygon_json only to reject it explicitly.
type patchGeofenceRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Active      *bool           `json:"active"`
	PolygonJSON json.RawMessage `json:"polygon_json"`
}

type geofenceResponse struct {
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

type organizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toGeofenceResponse(g domain.Geofence) geofenceResponse {
	resp := geofenceResponse{
		ID:           g.ID,
		Name:         g.Name,
		Description:  g.Description,
		Organization: g.OrganizationID,
		PolygonJSON:  g.Boundary,
		Active:       g.Active,
		CreatedBy:    g.CreatedBy,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
	if g.CenterPoint != nil {
		resp.CenterPoint = geojson.NewGeometry(*g.CenterPoint)
	}
	return resp
}
