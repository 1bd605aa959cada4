package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/lutrisart/internal/db"
	"github.com/vytor/lutrisart/internal/logger"
	"github.com/vytor/lutrisart/internal/models"
	"github.com/vytor/lutrisart/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type gameCatalog struct {
	db     *sql.DB
	closer io.Closer
}

// List returns every decodable row of the games table in the engine's
// natural order.
func (r *gameCatalog) List(ctx context.Context) ([]models.GameRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("game_catalog")

	query, args, err := sqlBuilder.Select(gameColumns...).From("games").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	log.Debug("listing games: %s", query)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, err
	}
	defer rows.Close()

	var games []models.GameRecord
	skipped := 0
	for rows.Next() {
		raw, err := scanRaw(rows)
		if err != nil {
			log.Debug("skipping unreadable row: %v", err)
			skipped++
			continue
		}
		g, ok := decodeGame(raw)
		if !ok {
			log.Debug("skipping row with undecodable id/name/slug: %v", raw[:3])
			skipped++
			continue
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed iterating games: %v", err)
		return nil, err
	}

	log.Debug("found %d games, skipped %d rows", len(games), skipped)
	return games, nil
}

// Get returns one game by id. Rows that cannot be decoded are reported as
// sql.ErrNoRows, the same as missing ones.
func (r *gameCatalog) Get(ctx context.Context, id int64) (*models.GameRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("game_catalog")
	log.Debug("getting game: id=%d", id)

	query, args, err := sqlBuilder.Select(gameColumns...).From("games").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	raw, err := scanRaw(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("game not found: id=%d", id)
		} else {
			log.Error("failed to get game: %v", err)
		}
		return nil, err
	}

	g, ok := decodeGame(raw)
	if !ok {
		log.Debug("game row undecodable: id=%d", id)
		return nil, sql.ErrNoRows
	}
	return &g, nil
}

func (r *gameCatalog) Close() error {
	return r.closer.Close()
}

type catalogSource struct {
	path string
}

// NewCatalogSource returns a source that opens the SQLite catalog at path
// read-only on every Open.
func NewCatalogSource(path string) repository.CatalogSource {
	return &catalogSource{path: path}
}

func (s *catalogSource) Open(ctx context.Context) (repository.GameCatalog, error) {
	database, err := db.OpenCatalog(ctx, s.path)
	if err != nil {
		return nil, err
	}
	return &gameCatalog{db: database.DB, closer: database}, nil
}

func (s *catalogSource) Location() string {
	return s.path
}
