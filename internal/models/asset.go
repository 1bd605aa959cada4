package models

import "fmt"

// AssetSlot names one of the image categories resolved per game.
type AssetSlot string

const (
	SlotCover  AssetSlot = "cover"
	SlotBanner AssetSlot = "banner"
)

// ParseAssetSlot validates a slot name coming from a request.
func ParseAssetSlot(s string) (AssetSlot, error) {
	switch AssetSlot(s) {
	case SlotCover, SlotBanner:
		return AssetSlot(s), nil
	default:
		return "", fmt.Errorf("unknown asset slot %q", s)
	}
}

// AssetRef is the resolution result for one slot. An empty Path means no
// custom asset exists; Width and Height are zero whenever they are unknown.
type AssetRef struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (a AssetRef) Found() bool {
	return a.Path != ""
}
