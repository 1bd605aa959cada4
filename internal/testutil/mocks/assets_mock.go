package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lutrisart/internal/models"
)

// MockAssetResolver is a mock implementation of services.AssetResolver
type MockAssetResolver struct {
	mock.Mock
}

func (m *MockAssetResolver) Resolve(ctx context.Context, slot models.AssetSlot, slug string) (models.AssetRef, error) {
	args := m.Called(ctx, slot, slug)
	return args.Get(0).(models.AssetRef), args.Error(1)
}

func (m *MockAssetResolver) Dir(slot models.AssetSlot) (string, error) {
	args := m.Called(slot)
	return args.String(0), args.Error(1)
}

// MockDownloader is a mock implementation of fetch.Downloader
type MockDownloader struct {
	mock.Mock
}

func (m *MockDownloader) Download(ctx context.Context, dest, rawURL string) error {
	args := m.Called(ctx, dest, rawURL)
	return args.Error(0)
}
