package testutil

import (
	"bytes"
	"database/sql"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// lutrisSchema is a trimmed copy of the games table Lutris creates in pga.db.
const lutrisSchema = `
CREATE TABLE games (
    id INTEGER PRIMARY KEY,
    name TEXT,
    sortname TEXT,
    slug TEXT,
    runner TEXT,
    platform TEXT,
    directory TEXT,
    lastplayed INTEGER,
    installed INTEGER,
    installed_at INTEGER,
    year INTEGER,
    has_custom_banner INTEGER,
    has_custom_icon INTEGER,
    has_custom_coverart_big INTEGER,
    playtime REAL,
    hidden INTEGER DEFAULT 0
)`

// CatalogRow is a games row to seed. Fields are untyped so tests can store
// NULLs (nil) or values of the wrong type.
type CatalogRow struct {
	ID                   any
	Name                 any
	Slug                 any
	LastPlayed           any
	InstalledAt          any
	HasCustomBanner      any
	HasCustomCoverArtBig any
	Playtime             any
}

// NewCatalog writes a Lutris-shaped SQLite catalog into a temp dir, inserts
// rows in order and returns the file path. The seeding connection is closed
// before returning.
func NewCatalog(t *testing.T, rows ...CatalogRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pga.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer MustClose(t, db)

	_, err = db.Exec(lutrisSchema)
	require.NoError(t, err, "failed to create games table")

	for _, r := range rows {
		_, err := db.Exec(`
INSERT INTO games (id, name, slug, runner, lastplayed, installed, installed_at, has_custom_banner, has_custom_coverart_big, playtime)
VALUES (?, ?, ?, 'linux', ?, 1, ?, ?, ?, ?)
`, r.ID, r.Name, r.Slug, r.LastPlayed, r.InstalledAt, r.HasCustomBanner, r.HasCustomCoverArtBig, r.Playtime)
		require.NoError(t, err, "failed to seed game %v", r.Name)
	}

	return path
}

// NewEmptyFile creates a zero-length file that is not a valid SQLite catalog.
func NewEmptyFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, afero.WriteFile(afero.NewOsFs(), path, nil, 0o644))
	return path
}

// EncodeImage returns a solid image of the given size encoded by extension
// (.png, .gif, anything else as JPEG).
func EncodeImage(t *testing.T, name string, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		require.NoError(t, png.Encode(&buf, img))
	case ".gif":
		require.NoError(t, gif.Encode(&buf, img, nil))
	default:
		require.NoError(t, jpeg.Encode(&buf, img, nil))
	}
	return buf.Bytes()
}

// WriteImage stores an encoded image at path on fs, creating parent dirs.
func WriteImage(t *testing.T, fs afero.Fs, path string, width, height int) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, EncodeImage(t, path, width, height), 0o644))
}

// WriteFile stores arbitrary bytes at path on fs, creating parent dirs.
func WriteFile(t *testing.T, fs afero.Fs, path string, data []byte) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, data, 0o644))
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
