package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	apperrors "github.com/vytor/lutrisart/internal/errors"
	"github.com/vytor/lutrisart/internal/logger"
	"github.com/vytor/lutrisart/internal/models"
)

// readBatch is how many directory names are read per call while scanning.
const readBatch = 128

// Dirs holds the directory searched for each asset slot.
type Dirs struct {
	CoverArt string
	Banner   string
}

// Resolver locates per-game artwork by slug in the configured directories.
type Resolver struct {
	fs   afero.Fs
	dirs Dirs
}

func NewResolver(fs afero.Fs, dirs Dirs) *Resolver {
	return &Resolver{fs: fs, dirs: dirs}
}

// Dir returns the directory searched for slot.
func (r *Resolver) Dir(slot models.AssetSlot) (string, error) {
	switch slot {
	case models.SlotCover:
		return r.dirs.CoverArt, nil
	case models.SlotBanner:
		return r.dirs.Banner, nil
	default:
		return "", fmt.Errorf("unknown asset slot %q", slot)
	}
}

// Resolve finds the asset for slug in the slot's directory and reads its
// dimensions. A missing match yields an empty AssetRef; only an unreadable
// directory is an error.
func (r *Resolver) Resolve(ctx context.Context, slot models.AssetSlot, slug string) (models.AssetRef, error) {
	log := logger.FromContext(ctx).WithPrefix("assets")

	dir, err := r.Dir(slot)
	if err != nil {
		return models.AssetRef{}, apperrors.NewValidationError("slot", err.Error())
	}

	path, err := r.FindMatch(ctx, dir, slug)
	if err != nil {
		return models.AssetRef{}, err
	}
	if path == "" {
		log.Debug("no %s for slug %q in %s", slot, slug, dir)
		return models.AssetRef{}, nil
	}

	ref := models.AssetRef{Path: path}
	if w, h, ok := r.Dimensions(path); ok {
		ref.Width, ref.Height = w, h
	} else {
		log.Debug("could not read dimensions of %s", path)
	}
	return ref, nil
}

// isPartialDownload reports whether name is a hidden ".part" file left by an
// interrupted download.
func isPartialDownload(name string) bool {
	return strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".part")
}

// FindMatch returns the first entry of dir, in enumeration order, whose name
// contains slug. Matching is a case-sensitive substring test so that any
// extension or naming variant is accepted. Partial downloads are skipped.
// Errors reading individual batches after the directory opened are ignored;
// the scan keeps what it has.
func (r *Resolver) FindMatch(ctx context.Context, dir, slug string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("assets")

	f, err := r.fs.Open(dir)
	if err != nil {
		log.Warn("cannot open asset directory %s: %v", dir, err)
		return "", apperrors.NewDirectoryUnavailableError(dir, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", apperrors.NewDirectoryUnavailableError(dir, err)
	}
	if !info.IsDir() {
		return "", apperrors.NewDirectoryUnavailableError(dir, fmt.Errorf("%s is not a directory", dir))
	}

	for {
		names, err := f.Readdirnames(readBatch)
		for _, name := range names {
			if isPartialDownload(name) {
				continue
			}
			if strings.Contains(name, slug) {
				return filepath.Join(dir, name), nil
			}
		}
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		if err != nil {
			log.Debug("stopping scan of %s early: %v", dir, err)
			return "", nil
		}
		if len(names) == 0 {
			return "", nil
		}
	}
}
