package registry

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

var (
	_ geofenceRepo     = &geofenceRepoMock{}
	_ organizationRepo = &organizationRepoMock{}
	_ txManager        = &txManagerMock{}
)

// ---------------------------------------------------------------------------
// geofenceRepoMock
// ---------------------------------------------------------------------------

type geofenceRepoMock struct {
	CreateFunc  func(ctx context.Context, g domain.Geofence) (*domain.Geofence, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Geofence, error)
	ListFunc    func(ctx context.Context, filter domain.GeofenceFilter) ([]domain.Geofence, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, params domain.GeofenceUpdateParams) (*domain.Geofence, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error

	mu    sync.RWMutex
	calls struct {
		Create  []domain.Geofence
		GetByID []uuid.UUID
		List    []domain.GeofenceFilter
		Update  []struct {
			ID     uuid.UUID
			Params domain.GeofenceUpdateParams
		}
		Delete []uuid.UUID
	}
}

func (mock *geofenceRepoMock) Create(ctx context.Context, g domain.Geofence) (*domain.Geofence, error) {
	if mock.CreateFunc == nil {
		panic("geofenceRepoMock.CreateFunc: method is nil but geofenceRepo.Create was just called")
	}
	mock.mu.Lock()
	mock.calls.Create = append(mock.calls.Create, g)
	mock.mu.Unlock()
	return mock.CreateFunc(ctx, g)
}

func (mock *geofenceRepoMock) CreateCalls() []domain.Geofence {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Create
}

func (mock *geofenceRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Geofence, error) {
	if mock.GetByIDFunc == nil {
		panic("geofenceRepoMock.GetByIDFunc: method is nil but geofenceRepo.GetByID was just called")
	}
	mock.mu.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, id)
	mock.mu.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *geofenceRepoMock) GetByIDCalls() []uuid.UUID {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.GetByID
}

func (mock *geofenceRepoMock) List(ctx context.Context, filter domain.GeofenceFilter) ([]domain.Geofence, error) {
	if mock.ListFunc == nil {
		panic("geofenceRepoMock.ListFunc: method is nil but geofenceRepo.List was just called")
	}
	mock.mu.Lock()
	mock.calls.List = append(mock.calls.List, filter)
	mock.mu.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *geofenceRepoMock) ListCalls() []domain.GeofenceFilter {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.List
}

func (mock *geofenceRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.GeofenceUpdateParams) (*domain.Geofence, error) {
	if mock.UpdateFunc == nil {
		panic("geofenceRepoMock.UpdateFunc: method is nil but geofenceRepo.Update was just called")
	}
	mock.mu.Lock()
	mock.calls.Update = append(mock.calls.Update, struct {
		ID     uuid.UUID
		Params domain.GeofenceUpdateParams
	}{id, params})
	mock.mu.Unlock()
	return mock.UpdateFunc(ctx, id, params)
}

func (mock *geofenceRepoMock) UpdateCalls() []struct {
	ID     uuid.UUID
	Params domain.GeofenceUpdateParams
} {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Update
}

func (mock *geofenceRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("geofenceRepoMock.DeleteFunc: method is nil but geofenceRepo.Delete was just called")
	}
	mock.mu.Lock()
	mock.calls.Delete = append(mock.calls.Delete, id)
	mock.mu.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *geofenceRepoMock) DeleteCalls() []uuid.UUID {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Delete
}

// ---------------------------------------------------------------------------
// organizationRepoMock
// ---------------------------------------------------------------------------

type organizationRepoMock struct {
	CreateFunc  func(ctx context.Context, name string) (*domain.Organization, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	ListFunc    func(ctx context.Context, only *uuid.UUID) ([]domain.Organization, error)

	mu    sync.RWMutex
	calls struct {
		Create  []string
		GetByID []uuid.UUID
		List    []*uuid.UUID
	}
}

func (mock *organizationRepoMock) Create(ctx context.Context, name string) (*domain.Organization, error) {
	if mock.CreateFunc == nil {
		panic("organizationRepoMock.CreateFunc: method is nil but organizationRepo.Create was just called")
	}
	mock.mu.Lock()
	mock.calls.Create = append(mock.calls.Create, name)
	mock.mu.Unlock()
	return mock.CreateFunc(ctx, name)
}

func (mock *organizationRepoMock) CreateCalls() []string {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Create
}

func (mock *organizationRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	if mock.GetByIDFunc == nil {
		panic("organizationRepoMock.GetByIDFunc: method is nil but organizationRepo.GetByID was just called")
	}
	mock.mu.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, id)
	mock.mu.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *organizationRepoMock) GetByIDCalls() []uuid.UUID {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.GetByID
}

func (mock *organizationRepoMock) List(ctx context.Context, only *uuid.UUID) ([]domain.Organization, error) {
	if mock.ListFunc == nil {
		panic("organizationRepoMock.ListFunc: method is nil but organizationRepo.List was just called")
	}
	mock.mu.Lock()
	mock.calls.List = append(mock.calls.List, only)
	mock.mu.Unlock()
	return mock.ListFunc(ctx, only)
}

func (mock *organizationRepoMock) ListCalls() []*uuid.UUID {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.List
}

// ---------------------------------------------------------------------------
// txManagerMock
// ---------------------------------------------------------------------------

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	mu    sync.RWMutex
	calls int
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.mu.Lock()
	mock.calls++
	mock.mu.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() int {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls
}
