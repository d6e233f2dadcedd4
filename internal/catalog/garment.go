package catalog

import "dressup-engine/internal/mathutil"

// Reference frame for garment base positions: offsets are authored against a
// normalized 200×300 doll frame centered on the doll, and scaled to the
// drawn doll size at render time.
const (
	RefWidth  = 200.0
	RefHeight = 300.0
)

// Reserved categories that survive a plain reset (product rule: the doll is
// never stripped bare by "remove all").
const (
	CategoryUnderwearTop    = "underwear_top"
	CategoryUnderwearBottom = "underwear_bottom"
)

// Joint is inert skeleton metadata carried through from authoring tools.
// It is stored and round-tripped but never read by the engine.
type Joint struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Parent string  `json:"parent,omitempty"`
}

// Garment is one catalog entry. Immutable once loaded; owned by the Catalog.
type Garment struct {
	ID       string
	Name     string
	Category string

	// Source is the opaque image reference the sprite loader understands:
	// a file path, a data: URL, or empty for "no bitmap" (placeholder only).
	Source string

	// BasePos is the garment's offset from the doll center, in reference
	// frame units (see RefWidth/RefHeight).
	BasePos mathutil.Vec2

	// BaseZIndex orders the garment back-to-front. LayerOrder, when present,
	// overrides it entirely; CategoryOrder only replaced the category default
	// at load time and is retained for manifest round-trips.
	BaseZIndex    int
	LayerOrder    *int
	CategoryOrder *int

	// Movable garments are placed by free drag-drop instead of anchoring to
	// the doll. AllowOverlap permits several worn instances of the category.
	Movable      bool
	AllowOverlap bool

	Joints []Joint
}
