package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"path/filepath"

	"github.com/vytor/lutrisart/internal/errors"
	"github.com/vytor/lutrisart/internal/fetch"
	"github.com/vytor/lutrisart/internal/logger"
	"github.com/vytor/lutrisart/internal/models"
	"github.com/vytor/lutrisart/internal/repository"
)

// defaultAssetExt is used when a slot has no asset yet and one is downloaded.
const defaultAssetExt = ".jpg"

// AssetResolver locates artwork for a slug.
type AssetResolver interface {
	Resolve(ctx context.Context, slot models.AssetSlot, slug string) (models.AssetRef, error)
	Dir(slot models.AssetSlot) (string, error)
}

// LibraryService exposes the commands the library UI calls.
type LibraryService interface {
	ListGames(ctx context.Context) ([]models.EnrichedGame, error)
	GetGame(ctx context.Context, id int64) (*models.EnrichedGame, error)
	ReplaceAsset(ctx context.Context, dest, rawURL string) error
	ReplaceGameAsset(ctx context.Context, id int64, slot models.AssetSlot, rawURL string) (*models.AssetRef, error)
}

// Resolution is the outcome of enriching one record. Err is set when the
// record could not be enriched and must be left out of listings.
type Resolution struct {
	Game models.EnrichedGame
	Err  error
}

type libraryService struct {
	catalogs   repository.CatalogSource
	resolver   AssetResolver
	downloader fetch.Downloader
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(catalogs repository.CatalogSource, resolver AssetResolver, downloader fetch.Downloader) LibraryService {
	return &libraryService{
		catalogs:   catalogs,
		resolver:   resolver,
		downloader: downloader,
	}
}

// openCatalog acquires a catalog connection for the duration of one command.
func (s *libraryService) openCatalog(ctx context.Context) (repository.GameCatalog, error) {
	catalog, err := s.catalogs.Open(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to open catalog: %v", err)
		return nil, errors.NewCatalogUnavailableError(s.catalogs.Location(), err)
	}
	return catalog, nil
}

func closeCatalog(ctx context.Context, catalog repository.GameCatalog) {
	if err := catalog.Close(); err != nil {
		logger.FromContext(ctx).Warn("failed to close catalog: %v", err)
	}
}

func (s *libraryService) ListGames(ctx context.Context) ([]models.EnrichedGame, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing enriched games")

	catalog, err := s.openCatalog(ctx)
	if err != nil {
		return nil, err
	}
	defer closeCatalog(ctx, catalog)

	records, err := catalog.List(ctx)
	if err != nil {
		log.Error("failed to list catalog games: %v", err)
		return nil, errors.NewCatalogUnavailableError(s.catalogs.Location(), err)
	}

	games := keepResolved(ctx, s.resolveAll(ctx, records))
	log.Debug("listed %d of %d games", len(games), len(records))
	return games, nil
}

func (s *libraryService) GetGame(ctx context.Context, id int64) (*models.EnrichedGame, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting enriched game: id=%d", id)

	record, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	res := s.resolve(ctx, *record)
	if res.Err != nil {
		return nil, errors.AsAppError(res.Err)
	}
	return &res.Game, nil
}

func (s *libraryService) getRecord(ctx context.Context, id int64) (*models.GameRecord, error) {
	catalog, err := s.openCatalog(ctx)
	if err != nil {
		return nil, err
	}
	defer closeCatalog(ctx, catalog)

	record, err := catalog.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("game", id)
		}
		logger.FromContext(ctx).Error("failed to get game: %v", err)
		return nil, errors.NewCatalogUnavailableError(s.catalogs.Location(), err)
	}
	return record, nil
}

// resolveAll enriches every record, keeping failures alongside successes.
func (s *libraryService) resolveAll(ctx context.Context, records []models.GameRecord) []Resolution {
	out := make([]Resolution, 0, len(records))
	for _, r := range records {
		out = append(out, s.resolve(ctx, r))
	}
	return out
}

func (s *libraryService) resolve(ctx context.Context, record models.GameRecord) Resolution {
	log := logger.FromContext(ctx).WithField("slug", record.Slug)
	log.Debug("resolving artwork for %s", record.Name)

	cover, err := s.resolver.Resolve(ctx, models.SlotCover, record.Slug)
	if err != nil {
		return Resolution{Game: models.EnrichedGame{Game: record}, Err: err}
	}
	banner, err := s.resolver.Resolve(ctx, models.SlotBanner, record.Slug)
	if err != nil {
		return Resolution{Game: models.EnrichedGame{Game: record}, Err: err}
	}
	return Resolution{Game: models.NewEnrichedGame(record, cover, banner)}
}

// keepResolved drops every record whose resolution failed.
func keepResolved(ctx context.Context, results []Resolution) []models.EnrichedGame {
	log := logger.FromContext(ctx)
	games := make([]models.EnrichedGame, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			log.Warn("dropping game id=%d slug=%s: %v", res.Game.Game.ID, res.Game.Game.Slug, res.Err)
			continue
		}
		games = append(games, res.Game)
	}
	return games
}

func (s *libraryService) ReplaceAsset(ctx context.Context, dest, rawURL string) error {
	log := logger.FromContext(ctx)
	log.Info("replacing asset %s", dest)

	if err := s.downloader.Download(ctx, dest, rawURL); err != nil {
		return errors.AsAppError(err)
	}
	return nil
}

// ReplaceGameAsset downloads rawURL over the game's current asset for slot,
// or into <slot dir>/<slug>.jpg when it has none, and returns the asset as
// resolved afterwards.
func (s *libraryService) ReplaceGameAsset(ctx context.Context, id int64, slot models.AssetSlot, rawURL string) (*models.AssetRef, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{"game_id": id, "slot": slot})

	dir, err := s.resolver.Dir(slot)
	if err != nil {
		return nil, errors.NewValidationError("slot", err.Error())
	}

	record, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Slug == "" {
		return nil, errors.NewValidationError("slug", "game has no slug to name its artwork after")
	}

	current, err := s.resolver.Resolve(ctx, slot, record.Slug)
	if err != nil {
		return nil, errors.AsAppError(err)
	}

	dest := current.Path
	if dest == "" {
		dest = filepath.Join(dir, record.Slug+defaultAssetExt)
	}
	log.Info("replacing %s artwork at %s", slot, dest)

	if err := s.downloader.Download(ctx, dest, rawURL); err != nil {
		return nil, errors.AsAppError(err)
	}

	updated, err := s.resolver.Resolve(ctx, slot, record.Slug)
	if err != nil {
		return nil, errors.AsAppError(err)
	}
	return &updated, nil
}
