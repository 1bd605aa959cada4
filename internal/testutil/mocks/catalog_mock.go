package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lutrisart/internal/models"
	"github.com/vytor/lutrisart/internal/repository"
)

// MockGameCatalog is a mock implementation of repository.GameCatalog
type MockGameCatalog struct {
	mock.Mock
}

func (m *MockGameCatalog) List(ctx context.Context) ([]models.GameRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameRecord), args.Error(1)
}

func (m *MockGameCatalog) Get(ctx context.Context, id int64) (*models.GameRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameRecord), args.Error(1)
}

func (m *MockGameCatalog) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockCatalogSource is a mock implementation of repository.CatalogSource
type MockCatalogSource struct {
	mock.Mock
}

func (m *MockCatalogSource) Open(ctx context.Context) (repository.GameCatalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.GameCatalog), args.Error(1)
}

func (m *MockCatalogSource) Location() string {
	args := m.Called()
	return args.String(0)
}
