// Package persist stores and restores dressing sessions. The state shape
// is a plain JSON document owned by this package so the engine core stays
// free of storage concerns; unknown fields are ignored on load and no
// schema migration happens here.
package persist

import "time"

// CurrentVersion is written into every save. Loads reject documents from
// a newer engine rather than misread them.
const CurrentVersion = 1

// DollPose is the doll placement in percent units relative to the
// background square (50,50 is centered) plus a unitless scale factor.
type DollPose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// SavedItem is one equipped garment, serialized verbatim: equip order and
// every adjustment field survive so a restore rebuilds the exact state.
// Offsets are viewport pixels, free offsets percent of the background
// square, Rotation and Hue degrees, LayerBias a draw-order shift.
type SavedItem struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	EquipOrder  int64   `json:"equipOrder"`
	OffsetX     float64 `json:"offsetX,omitempty"`
	OffsetY     float64 `json:"offsetY,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Rotation    float64 `json:"rotation,omitempty"`
	Hue         float64 `json:"hue,omitempty"`
	LayerBias   int     `json:"layerBias,omitempty"`
	FreeOffsetX float64 `json:"freeOffsetX,omitempty"`
	FreeOffsetY float64 `json:"freeOffsetY,omitempty"`
}

// State is a complete saved session, overwritten last-write-wins on every
// change. Items keep equip order so ties in draw priority resolve the
// same way after a restore.
type State struct {
	Version      int         `json:"version"`
	SavedAt      time.Time   `json:"savedAt"`
	DollID       string      `json:"dollId,omitempty"`
	BackgroundID string      `json:"backgroundId,omitempty"`
	Doll         DollPose    `json:"doll"`
	Items        []SavedItem `json:"items,omitempty"`
}
