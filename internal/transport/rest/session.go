package rest

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/pkg/ctxutil"
)

type sessionResponse struct {
	UserID       uuid.UUID  `json:"user_id"`
	Role         string     `json:"role"`
	Organization *uuid.UUID `json:"organization"`
}

// Session handles GET /me: the identity the bearer token resolves to. Consoles
// read it once when a session starts.
func Session(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resp := sessionResponse{UserID: userID, Role: ctxutil.RoleFromCtx(r.Context())}
	if orgID, ok := ctxutil.OrganizationIDFromCtx(r.Context()); ok {
		resp.Organization = &orgID
	}
	writeJSON(w, http.StatusOK, resp)
}
