// Package middleware holds the HTTP middleware of the geofence API. Each
// constructor returns a Middleware that the router mounts with chi's Use.
package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler
