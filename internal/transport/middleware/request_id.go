package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/pkg/ctxutil"
)

// RequestIDHeader carries the request ID in both directions. The console
// client sets it on every call so both sides log the same ID.
const RequestIDHeader = "X-Request-Id"

const maxRequestIDLen = 64

// RequestID adopts the caller's request ID when it is a safe token and
// generates a UUID otherwise. The ID is echoed in the response.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if !validRequestID(id) {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
		})
	}
}

// validRequestID accepts 1..64 characters from [A-Za-z0-9._-], which keeps
// caller-supplied IDs safe to put in log lines.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
