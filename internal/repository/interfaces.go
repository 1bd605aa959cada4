package repository

import (
	"context"

	"github.com/vytor/lutrisart/internal/models"
)

// GameCatalog reads game records from an open catalog connection.
type GameCatalog interface {
	List(ctx context.Context) ([]models.GameRecord, error)
	Get(ctx context.Context, id int64) (*models.GameRecord, error)
	Close() error
}

// CatalogSource opens a fresh catalog connection. Callers own the returned
// GameCatalog and must close it.
type CatalogSource interface {
	Open(ctx context.Context) (GameCatalog, error)
	Location() string
}
