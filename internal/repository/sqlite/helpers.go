package sqlite

import (
	"github.com/vytor/lutrisart/internal/models"
)

// gameColumns is the fixed projection read from the games table, in the
// order decodeGame expects.
var gameColumns = []string{
	"id", "name", "slug", "lastplayed", "installed_at",
	"has_custom_banner", "has_custom_coverart_big", "playtime",
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRaw scans a row into untyped values so that type mismatches in single
// columns never fail the whole row.
func scanRaw(s scanner) ([]any, error) {
	raw := make([]any, len(gameColumns))
	dest := make([]any, len(gameColumns))
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	return raw, nil
}

// decodeGame maps raw column values onto a GameRecord. It reports false when
// id, name or slug cannot be decoded; optional columns fall back to zero.
func decodeGame(raw []any) (models.GameRecord, bool) {
	id, ok := intValue(raw[0])
	if !ok {
		return models.GameRecord{}, false
	}
	name, ok := textValue(raw[1])
	if !ok {
		return models.GameRecord{}, false
	}
	slug, ok := textValue(raw[2])
	if !ok {
		return models.GameRecord{}, false
	}

	g := models.GameRecord{ID: id, Name: name, Slug: slug}
	g.LastPlayed, _ = intValue(raw[3])
	g.InstalledAt, _ = intValue(raw[4])
	g.HasCustomBanner, _ = intValue(raw[5])
	g.HasCustomCoverArtBig, _ = intValue(raw[6])
	g.Playtime, _ = floatValue(raw[7])
	return g, true
}

func intValue(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

func textValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	default:
		return "", false
	}
}
