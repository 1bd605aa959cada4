package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vytor/lutrisart/internal/logger"
)

// DB is a read-only handle on the Lutris catalog.
type DB struct {
	*sql.DB
	path string
	log  *logger.Logger
}

// OpenCatalog opens the catalog at path strictly read-only. The file must
// already exist; SQLite is never allowed to create it.
func OpenCatalog(ctx context.Context, path string) (*DB, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("opening catalog read-only: %s", path)

	info, err := os.Stat(path)
	if err != nil {
		log.Warn("catalog not accessible: %v", err)
		return nil, fmt.Errorf("stat catalog: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("catalog %s is a directory", path)
	}

	sqlDB, err := sql.Open("sqlite3", catalogDSN(path))
	if err != nil {
		log.Error("failed to open catalog: %v", err)
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		log.Error("failed to connect to catalog: %v", err)
		return nil, fmt.Errorf("connect catalog: %w", err)
	}

	log.Debug("catalog ready")
	return &DB{DB: sqlDB, path: path, log: log}, nil
}

// catalogDSN builds a read-only SQLite URI. The path is percent-escaped so
// '#', '?' and '%' in directory names cannot end it early and drop mode=ro.
func catalogDSN(path string) string {
	u := &url.URL{
		Scheme:   "file",
		OmitHost: true,
		Path:     path,
		RawQuery: "mode=ro&_busy_timeout=5000",
	}
	return u.String()
}

// Path returns the file the handle was opened from.
func (db *DB) Path() string {
	return db.path
}

func (db *DB) Close() error {
	db.log.Debug("closing catalog: %s", db.path)
	return db.DB.Close()
}
