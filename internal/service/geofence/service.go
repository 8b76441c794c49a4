// Package geofence mediates geofence mutations against the persistence
// collaborator for one console session and keeps the session's local view
// (fetched list, selection, pending deletion) consistent with it.
package geofence

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

type geofenceStore interface {
	Create(ctx context.Context, g domain.Geofence) (*domain.Geofence, error)
	Update(ctx context.Context, id uuid.UUID, params domain.GeofenceUpdateParams) (*domain.Geofence, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Geofence, error)
}

type notifier interface {
	Notify(ctx context.Context, n Notification)
}

// ErrNoPendingDelete is returned by ConfirmDelete when no confirmation is open.
var ErrNoPendingDelete = errors.New("no deletion pending")

// Service is the lifecycle controller for one session. The actor is resolved
// once when the session starts and never re-derived.
type Service struct {
	store  geofenceStore
	notify notifier
	actor  domain.Actor
	log    *slog.Logger

	mu            sync.Mutex
	geofences     []domain.Geofence
	selected      *uuid.UUID
	pendingDelete *uuid.UUID
	inFlight      map[string]struct{}
}

// NewService creates a lifecycle controller for actor.
func NewService(
	log *slog.Logger,
	store geofenceStore,
	notify notifier,
	actor domain.Actor,
) *Service {
	return &Service{
		store:    store,
		notify:   notify,
		actor:    actor,
		inFlight: make(map[string]struct{}),
		log:      log.With("service", "geofence", slog.String("role", actor.Role.String())),
	}
}

// Actor returns the session actor.
func (s *Service) Actor() domain.Actor { return s.actor }

// Geofences returns the last successfully fetched collection.
func (s *Service) Geofences() []domain.Geofence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.geofences)
}

// Select marks a geofence of the current list as selected.
func (s *Service) Select(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return domain.ErrNotFound
	}
	s.selected = &id
	return nil
}

// ClearSelection drops the current selection.
func (s *Service) ClearSelection() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}

// Selected returns the selected geofence, if any.
func (s *Service) Selected() (domain.Geofence, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == nil {
		return domain.Geofence{}, false
	}
	i := s.indexOf(*s.selected)
	if i < 0 {
		return domain.Geofence{}, false
	}
	return s.geofences[i], true
}

// PendingDelete returns the geofence awaiting delete confirmation, if any.
func (s *Service) PendingDelete() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingDelete == nil {
		return uuid.Nil, false
	}
	return *s.pendingDelete, true
}

// Refresh refetches the collection. On failure the local list is unchanged.
func (s *Service) Refresh(ctx context.Context) error {
	list, err := s.store.List(ctx)
	if err != nil {
		pErr := asPersistenceError("list geofences", err)
		s.log.ErrorContext(ctx, "refresh failed", slog.String("error", pErr.Error()))
		s.notify.Notify(ctx, failure("Could not load geofences", pErr))
		return pErr
	}

	s.mu.Lock()
	s.geofences = list
	if s.selected != nil && s.indexOf(*s.selected) < 0 {
		s.selected = nil
	}
	s.mu.Unlock()

	s.log.DebugContext(ctx, "geofences refreshed", slog.Int("count", len(list)))
	return nil
}

// authorize rejects mutations by actors without the author role. Callers never
// reach the network when it fails.
func (s *Service) authorize(ctx context.Context, action string) error {
	if s.actor.CanMutate() {
		return nil
	}
	s.log.WarnContext(ctx, "mutation rejected",
		slog.String("action", action),
		slog.String("user_id", s.actor.UserID.String()),
	)
	s.notify.Notify(ctx, Notification{
		Kind:    NotificationError,
		Title:   "Not permitted",
		Message: "Your role can view geofences but cannot " + action + " them.",
	})
	return domain.ErrForbidden
}

// begin marks key as in flight. It returns false when the same logical
// operation is already running.
func (s *Service) begin(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[key]; busy {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *Service) end(key string) {
	s.mu.Lock()
	delete(s.inFlight, key)
	s.mu.Unlock()
}

// InFlight reports whether the operation identified by key is running, so a
// view can disable its submit control.
func (s *Service) InFlight(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inFlight[key]
	return busy
}

// indexOf must be called with mu held.
func (s *Service) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.geofences, func(g domain.Geofence) bool { return g.ID == id })
}

// refreshAfter refetches after a successful mutation. A failed refetch is
// reported but does not turn the mutation into a failure.
func (s *Service) refreshAfter(ctx context.Context, action string) {
	if err := s.Refresh(ctx); err != nil {
		s.log.WarnContext(ctx, "refresh after mutation failed",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}

func asPersistenceError(op string, err error) *domain.PersistenceError {
	var pErr *domain.PersistenceError
	if errors.As(err, &pErr) {
		return pErr
	}
	return &domain.PersistenceError{Op: op, Err: err}
}

// CreateKey is the InFlight key of a create.
const CreateKey = "create"

// UpdateKey is the InFlight key of an update of id.
func UpdateKey(id uuid.UUID) string { return "update:" + id.String() }

// DeleteKey is the InFlight key of a deletion of id.
func DeleteKey(id uuid.UUID) string { return "delete:" + id.String() }
