package models

// GameRecord is one row of the Lutris games table.
type GameRecord struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Slug                 string  `json:"slug"`
	LastPlayed           int64   `json:"lastplayed"`
	InstalledAt          int64   `json:"installed_at"`
	HasCustomBanner      int64   `json:"has_custom_banner"`
	HasCustomCoverArtBig int64   `json:"has_custom_coverart_big"`
	Playtime             float64 `json:"playtime"`
}

// EnrichedGame is a catalog record together with its resolved artwork.
// The flat asset keys are the shape the library UI consumes.
type EnrichedGame struct {
	Game           GameRecord `json:"game"`
	CoverArtPath   string     `json:"coverart_path"`
	CoverArtWidth  int        `json:"coverart_width"`
	CoverArtHeight int        `json:"coverart_height"`
	BannerPath     string     `json:"banner_path"`
	BannerWidth    int        `json:"banner_width"`
	BannerHeight   int        `json:"banner_height"`
}

func NewEnrichedGame(game GameRecord, cover, banner AssetRef) EnrichedGame {
	return EnrichedGame{
		Game:           game,
		CoverArtPath:   cover.Path,
		CoverArtWidth:  cover.Width,
		CoverArtHeight: cover.Height,
		BannerPath:     banner.Path,
		BannerWidth:    banner.Width,
		BannerHeight:   banner.Height,
	}
}

func (e EnrichedGame) Cover() AssetRef {
	return AssetRef{Path: e.CoverArtPath, Width: e.CoverArtWidth, Height: e.CoverArtHeight}
}

func (e EnrichedGame) Banner() AssetRef {
	return AssetRef{Path: e.BannerPath, Width: e.BannerWidth, Height: e.BannerHeight}
}
