package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/internal/domain"
	"github.com/heartmarshall/geofence-console/internal/service/registry"
)

// registryService defines the operations GeofenceHandler needs.
type registryService interface {
	Create(ctx context.Context, input registry.CreateInput) (*domain.Geofence, error)
	Update(ctx context.Context, input registry.UpdateInput) (*domain.Geofence, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Geofence, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Geofence, error)
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
}

// GeofenceHandler serves the geofence persistence endpoints.
type GeofenceHandler struct {
	svc     registryService
	maxBody int64
	log     *slog.Logger
}

// NewGeofenceHandler creates a GeofenceHandler. Request bodies larger than
// maxBody bytes are rejected.
func NewGeofenceHandler(svc registryService, maxBody int64, logger *slog.Logger) *GeofenceHandler {
	return &GeofenceHandler{svc: svc, maxBody: maxBody, log: logger.With("handler", "geofence")}
}

// List handles GET /geofences. The body is a bare JSON array.
func (h *GeofenceHandler) List(w http.ResponseWriter, r *http.Request) {
	geofences, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]geofenceResponse, len(geofences))
	for i, g := range geofences {
		resp[i] = toGeofenceResponse(g)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /geofences/{id}.
func (h *GeofenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	g, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGeofenceResponse(*g))
}

// Create handles POST /geofences.
func (h *GeofenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGeofenceRequest
	if !h.decode(w, r, &req) {
		return
	}

	input := registry.CreateInput{
		Name:           req.Name,
		Description:    req.Description,
		OrganizationID: req.Organization,
		Active:         req.Active,
	}
	if len(req.PolygonJSON) > 0 && string(req.PolygonJSON) != "null" {
		if err := json.Unmarshal(req.PolygonJSON, &input.Boundary); err != nil {
			handleError(h.log, w, r, domain.NewValidationError("polygon", "must be a GeoJSON Polygon with one ring"))
			return
		}
	}

	created, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGeofenceResponse(*created))
}

// Update handles PATCH /geofences/{id}. Geometry is immutable: a body
// carrying polygon_json is rejected.
func (h *GeofenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req patchGeofenceRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.PolygonJSON != nil {
		handleError(h.log, w, r, domain.NewValidationError("polygon_json", "geometry cannot be changed after creation"))
		return
	}

	updated, err := h.svc.Update(r.Context(), registry.UpdateInput{
		GeofenceID:  id,
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGeofenceResponse(*updated))
}

// Delete handles DELETE /geofences/{id}.
func (h *GeofenceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOrganizations handles GET /organizations.
func (h *GeofenceHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.svc.ListOrganizations(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]organizationResponse, len(orgs))
	for i, o := range orgs {
		resp[i] = organizationResponse{ID: o.ID, Name: o.Name, CreatedAt: o.CreatedAt}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *GeofenceHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid geofence id")
		return uuid.Nil, false
	}
	return id, true
}

// decode reads a single JSON object, rejecting unknown fields and oversized bodies.
func (h *GeofenceHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
