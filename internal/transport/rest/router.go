package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/geofence-console/internal/transport/middleware"
)

// NewRouter mounts health probes and the geofence API. global wraps every
// route in the order given, the first being outermost. Everything except the
// probes requires an authenticated caller; mutations additionally pass
// through limit.
func NewRouter(health *HealthHandler, geofences *GeofenceHandler, limit middleware.Middleware, global ...middleware.Middleware) http.Handler {
	r := chi.NewRouter()
	for _, mw := range global {
		r.Use(mw)
	}

	r.Get("/live", health.Live)
	r.Get("/ready", health.Ready)
	r.Get("/health", health.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/me", Session)
		r.Get("/geofences", geofences.List)
		r.Get("/geofences/{id}", geofences.Get)
		r.Get("/organizations", geofences.ListOrganizations)

		r.Group(func(r chi.Router) {
			r.Use(limit)

			r.Post("/geofences", geofences.Create)
			r.Patch("/geofences/{id}", geofences.Update)
			r.Delete("/geofences/{id}", geofences.Delete)
		})
	})

	return r
}
