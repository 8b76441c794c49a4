package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/geofence-console/internal/domain"
	"github.com/heartmarshall/geofence-console/internal/service/registry"
)

var _ registryService = &registryServiceMock{}

type registryServiceMock struct {
	CreateFunc            func(ctx context.Context, input registry.CreateInput) (*domain.Geofence, error)
	UpdateFunc            func(ctx context.Context, input registry.UpdateInput) (*domain.Geofence, error)
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
	ListFunc              func(ctx context.Context) ([]domain.Geofence, error)
	GetFunc               func(ctx context.Context, id uuid.UUID) (*domain.Geofence, error)
	ListOrganizationsFunc func(ctx context.Context) ([]domain.Organization, error)

	mu    sync.RWMutex
	calls struct {
		Create []registry.CreateInput
		Update []registry.UpdateInput
		Delete []uuid.UUID
	}
}

func (mock *registryServiceMock) Create(ctx context.Context, input registry.CreateInput) (*domain.Geofence, error) {
	if mock.CreateFunc == nil {
		panic("registryServiceMock.CreateFunc: method is nil but registryService.Create was just called")
	}
	mock.mu.Lock()
	mock.calls.Create = append(mock.calls.Create, input)
	mock.mu.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *registryServiceMock) CreateCalls() []registry.CreateInput {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Create
}

func (mock *registryServiceMock) Update(ctx context.Context, input registry.UpdateInput) (*domain.Geofence, error) {
	if mock.UpdateFunc == nil {
		panic("registryServiceMock.UpdateFunc: method is nil but registryService.Update was just called")
	}
	mock.mu.Lock()
	mock.calls.Update = append(mock.calls.Update, input)
	mock.mu.Unlock()
	return mock.UpdateFunc(ctx, input)
}

func (mock *registryServiceMock) UpdateCalls() []registry.UpdateInput {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Update
}

func (mock *registryServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("registryServiceMock.DeleteFunc: method is nil but registryService.Delete was just called")
	}
	mock.mu.Lock()
	mock.calls.Delete = append(mock.calls.Delete, id)
	mock.mu.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *registryServiceMock) DeleteCalls() []uuid.UUID {
	mock.mu.RLock()
	defer mock.mu.RUnlock()
	return mock.calls.Delete
}

func (mock *registryServiceMock) List(ctx context.Context) ([]domain.Geofence, error) {
	if mock.ListFunc == nil {
		panic("registryServiceMock.ListFunc: method is nil but registryService.List was just called")
	}
	return mock.ListFunc(ctx)
}

func (mock *registryServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Geofence, error) {
	if mock.GetFunc == nil {
		panic("registryServiceMock.GetFunc: method is nil but registryService.Get was just called")
	}
	return mock.GetFunc(ctx, id)
}

func (mock *registryServiceMock) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	if mock.ListOrganizationsFunc == nil {
		panic("registryServiceMock.ListOrganizationsFunc: method is nil but registryService.ListOrganizations was just called")
	}
	return mock.ListOrganizationsFunc(ctx)
}
