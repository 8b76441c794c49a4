package geofence

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

var _ geofenceStore = &geofenceStoreMock{}

type geofenceStoreMock struct {
	CreateFunc func(ctx context.Context, g domain.Geofence) (*domain.Geofence, error)
	UpdateFunc func(ctx context.Context, id uuid.UUID, params domain.GeofenceUpdateParams) (*domain.Geofence, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
	ListFunc   func(ctx context.Context) ([]domain.Geofence, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			G   domain.Geofence
		}
		Update []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Params domain.GeofenceUpdateParams
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
		}
	}
	lockCreate sync.RWMutex
	lockUpdate sync.RWMutex
	lockDelete sync.RWMutex
	lockList   sync.RWMutex
}

func (mock *geofenceStoreMock) Create(ctx context.Context, g domain.Geofence) (*domain.Geofence, error) {
	if mock.CreateFunc == nil {
		panic("geofenceStoreMock.CreateFunc: method is nil but geofenceStore.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		G   domain.Geofence
	}{Ctx: ctx, G: g}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, g)
}

func (mock *geofenceStoreMock) CreateCalls() []struct {
	Ctx context.Context
	G   domain.Geofence
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *geofenceStoreMock) Update(ctx context.Context, id uuid.UUID, params domain.GeofenceUpdateParams) (*domain.Geofence, error) {
	if mock.UpdateFunc == nil {
		panic("geofenceStoreMock.UpdateFunc: method is nil but geofenceStore.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Params domain.GeofenceUpdateParams
	}{Ctx: ctx, ID: id, Params: params}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, params)
}

func (mock *geofenceStoreMock) UpdateCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Params domain.GeofenceUpdateParams
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *geofenceStoreMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("geofenceStoreMock.DeleteFunc: method is nil but geofenceStore.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *geofenceStoreMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *geofenceStoreMock) List(ctx context.Context) ([]domain.Geofence, error) {
	if mock.ListFunc == nil {
		panic("geofenceStoreMock.ListFunc: method is nil but geofenceStore.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *geofenceStoreMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

// networkCalls counts every call that would reach the persistence collaborator.
func (mock *geofenceStoreMock) networkCalls() int {
	return len(mock.CreateCalls()) + len(mock.UpdateCalls()) + len(mock.DeleteCalls()) + len(mock.ListCalls())
}

var _ notifier = &notifierMock{}

type notifierMock struct {
	mu   sync.Mutex
	sent []Notification
}

func (mock *notifierMock) Notify(_ context.Context, n Notification) {
	mock.mu.Lock()
	mock.sent = append(mock.sent, n)
	mock.mu.Unlock()
}

func (mock *notifierMock) Sent() []Notification {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return append([]Notification(nil), mock.sent...)
}
