package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/geofence-console/internal/auth"
	"github.com/heartmarshall/geofence-console/internal/config"
	"github.com/heartmarshall/geofence-console/internal/domain"
	"github.com/heartmarshall/geofence-console/internal/service/geofence"
	"github.com/heartmarshall/geofence-console/internal/transport/middleware"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{MaxBodyBytes: 1 << 20, MutationsPerMinute: 60},
		Auth:   config.AuthConfig{JWTSecret: testSecret, JWTIssuer: "geofence", AccessTokenTTL: time.Hour},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
		Log: config.LogConfig{Level: "info", Format: "json"},
	}
}

// newTestHandler builds the full handler over a pool that never connects;
// only paths that stay off the database are exercised.
func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), "postgres://u:p@127.0.0.1:1/none?connect_timeout=1")
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewHandler(testConfig(), pool, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandler_LiveIsPublic(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestHandler_GeofencesRequireToken(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/geofences", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/geofences", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_SessionFromToken(t *testing.T) {
	h := newTestHandler(t)

	userID := uuid.New()
	token, err := auth.NewJWTManager(testSecret, "geofence", time.Hour).
		GenerateAccessToken(userID, domain.RoleBoundaryViewer, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
	assert.Contains(t, rec.Body.String(), `"role":"boundary_viewer"`)
}

func TestHandler_PatchRejectsPolygonBeforeDatabase(t *testing.T) {
	h := newTestHandler(t)

	token, err := auth.NewJWTManager(testSecret, "geofence", time.Hour).
		GenerateAccessToken(uuid.New(), domain.RoleBoundaryAuthor, nil)
	require.NoError(t, err)

	body := `{"polygon_json":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}`
	req := httptest.NewRequest(http.MethodPatch, "/geofences/"+uuid.NewString(), strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestOpenConsole_ResolvesActorOnce(t *testing.T) {
	orgID := uuid.New()
	var meCalls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me":
			meCalls++
			_, _ = w.Write([]byte(`{"user_id":"` + uuid.NewString() + `","role":"boundary_author","organization":"` + orgID.String() + `"}`))
		case "/geofences":
			_, _ = w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.API = config.APIConfig{BaseURL: srv.URL, Token: "tok", Timeout: time.Second}

	var notes []geofence.Notification
	notify := geofence.NotifierFunc(func(_ context.Context, n geofence.Notification) { notes = append(notes, n) })

	c, err := OpenConsole(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), notify)
	require.NoError(t, err)

	actor := c.Geofences.Actor()
	assert.Equal(t, domain.RoleBoundaryAuthor, actor.Role)
	require.NotNil(t, actor.OrganizationID)
	assert.Equal(t, orgID, *actor.OrganizationID)
	assert.Empty(t, c.Geofences.Geofences())
	assert.Empty(t, notes)
	assert.Equal(t, 1, meCalls)
}

func TestOpenConsole_RequiresToken(t *testing.T) {
	cfg := testConfig()
	cfg.API = config.APIConfig{BaseURL: "http://localhost:8080", Timeout: time.Second}

	_, err := OpenConsole(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), geofence.NotifierFunc(func(context.Context, geofence.Notification) {}))
	assert.Error(t, err)
}
