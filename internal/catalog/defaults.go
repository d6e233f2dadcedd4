package catalog

import "dressup-engine/internal/mathutil"

// Defaults supplies per-category values for manifest entries that leave them
// unset. Categories are open strings: anything not listed here resolves to
// the generic fallback, so new garment folders never require engine changes.
type Defaults struct {
	BasePos      mathutil.Vec2
	ZIndex       int
	Movable      bool
	AllowOverlap bool
}

// categoryDefaults covers the stock wardrobe categories. Base positions are
// reference-frame offsets from the doll center (y grows downward).
var categoryDefaults = map[string]Defaults{
	"hair_back":             {BasePos: mathutil.Vec2{X: 0, Y: -110}, ZIndex: 4},
	CategoryUnderwearBottom: {BasePos: mathutil.Vec2{X: 0, Y: 55}, ZIndex: 10},
	CategoryUnderwearTop:    {BasePos: mathutil.Vec2{X: 0, Y: 5}, ZIndex: 12},
	"socks":                 {BasePos: mathutil.Vec2{X: 0, Y: 105}, ZIndex: 14},
	"shoes":                 {BasePos: mathutil.Vec2{X: 0, Y: 130}, ZIndex: 16},
	"bottom":                {BasePos: mathutil.Vec2{X: 0, Y: 60}, ZIndex: 20},
	"skirt":                 {BasePos: mathutil.Vec2{X: 0, Y: 55}, ZIndex: 22},
	"top":                   {BasePos: mathutil.Vec2{X: 0, Y: 10}, ZIndex: 30},
	"dress":                 {BasePos: mathutil.Vec2{X: 0, Y: 30}, ZIndex: 32},
	"outer":                 {BasePos: mathutil.Vec2{X: 0, Y: 8}, ZIndex: 36},
	"gloves":                {BasePos: mathutil.Vec2{X: 0, Y: 35}, ZIndex: 38},
	"hair":                  {BasePos: mathutil.Vec2{X: 0, Y: -110}, ZIndex: 60},
	"hat":                   {BasePos: mathutil.Vec2{X: 0, Y: -135}, ZIndex: 62},
	"glasses":               {BasePos: mathutil.Vec2{X: 0, Y: -105}, ZIndex: 64},
	"bag":                   {ZIndex: 68, Movable: true},
	"accessory":             {ZIndex: 70, Movable: true, AllowOverlap: true},
	"prop":                  {ZIndex: 72, Movable: true, AllowOverlap: true},
}

// genericDefaults is the total fallback for unknown categories.
var genericDefaults = Defaults{ZIndex: 50}

// DefaultsFor returns the defaults for a category, falling back to the
// generic entry for names the table does not know.
func DefaultsFor(category string) Defaults {
	if d, ok := categoryDefaults[category]; ok {
		return d
	}
	return genericDefaults
}

// KnownCategory reports whether the category has a dedicated defaults entry.
func KnownCategory(category string) bool {
	_, ok := categoryDefaults[category]
	return ok
}
