// Package restapi is the console's persistence collaborator: a plain REST
// client for the geofence API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

const (
	maxErrorBody    = 64 << 10
	requestIDHeader = "X-Request-Id"
)

// Client talks to the geofence REST API on behalf of one session.
// Request timeouts come only from the underlying http.Client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client for baseURL authenticating with a bearer token.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "restapi"),
	}
}

// List fetches the whole geofence collection.
func (c *Client) List(ctx context.Context) ([]domain.Geofence, error) {
	var items []apiGeofence
	if err := c.do(ctx, "list geofences", http.MethodGet, "/geofences", nil, &items); err != nil {
		return nil, err
	}

	out := make([]domain.Geofence, len(items))
	for i, g := range items {
		out[i] = g.toDomain()
	}
	return out, nil
}

// Create posts a new geofence. The returned geofence carries the server's ID
// and center.
func (c *Client) Create(ctx context.Context, g domain.Geofence) (*domain.Geofence, error) {
	body := createRequest{
		Name:         g.Name,
		Description:  g.Description,
		PolygonJSON:  g.Boundary,
		Organization: g.OrganizationID,
		Active:       g.Active,
	}

	var created apiGeofence
	if err := c.do(ctx, "create geofence", http.MethodPost, "/geofences", body, &created); err != nil {
		return nil, err
	}

	out := created.toDomain()
	return &out, nil
}

// Update sends a PATCH with only the set fields. There is no way to send a
// polygon.
func (c *Client) Update(ctx context.Context, id uuid.UUID, params domain.GeofenceUpdateParams) (*domain.Geofence, error) {
	body := patchRequest{
		Name:        params.Name,
		Description: params.Description,
		Active:      params.Active,
	}

	var updated apiGeofence
	if err := c.do(ctx, "update geofence", http.MethodPatch, "/geofences/"+id.String(), body, &updated); err != nil {
		return nil, err
	}

	out := updated.toDomain()
	return &out, nil
}

// Delete removes a geofence.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, "delete geofence", http.MethodDelete, "/geofences/"+id.String(), nil, nil)
}

// ListOrganizations fetches the organizations the session may create into.
func (c *Client) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	var items []apiOrganization
	if err := c.do(ctx, "list organizations", http.MethodGet, "/organizations", nil, &items); err != nil {
		return nil, err
	}

	out := make([]domain.Organization, len(items))
	for i, o := range items {
		out[i] = o.toDomain()
	}
	return out, nil
}

// WhoAmI resolves the token's identity. Consoles call it once per session.
func (c *Client) WhoAmI(ctx context.Context) (domain.Actor, error) {
	var s apiSession
	if err := c.do(ctx, "resolve session", http.MethodGet, "/me", nil, &s); err != nil {
		return domain.Actor{}, err
	}

	role, err := domain.ParseRole(s.Role)
	if err != nil {
		return domain.Actor{}, &domain.PersistenceError{Op: "resolve session", Err: err}
	}
	return domain.Actor{UserID: s.UserID, Role: role, OrganizationID: s.Organization}, nil
}

// do performs one request without retries. Every failure is returned as a
// *domain.PersistenceError.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &domain.PersistenceError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &domain.PersistenceError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "request failed",
			slog.String("op", op),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
		)
		return &domain.PersistenceError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "request done",
		slog.String("op", op),
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.PersistenceError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: decodeError(body),
			Err:     statusError(resp.StatusCode),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.PersistenceError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// statusError maps a response status to a domain sentinel.
func statusError(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	}
	return errors.New(http.StatusText(status))
}
