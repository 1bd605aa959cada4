package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lutrisart/internal/models"
)

// MockLibraryService is a mock implementation of services.LibraryService
type MockLibraryService struct {
	mock.Mock
}

func (m *MockLibraryService) ListGames(ctx context.Context) ([]models.EnrichedGame, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EnrichedGame), args.Error(1)
}

func (m *MockLibraryService) GetGame(ctx context.Context, id int64) (*models.EnrichedGame, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EnrichedGame), args.Error(1)
}

func (m *MockLibraryService) ReplaceAsset(ctx context.Context, dest, rawURL string) error {
	args := m.Called(ctx, dest, rawURL)
	return args.Error(0)
}

func (m *MockLibraryService) ReplaceGameAsset(ctx context.Context, id int64, slot models.AssetSlot, rawURL string) (*models.AssetRef, error) {
	args := m.Called(ctx, id, slot, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetRef), args.Error(1)
}
