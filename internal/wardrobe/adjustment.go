package wardrobe

// Adjustment is the per-item visual tweak set. Offsets are raw viewport
// pixels added to the anchor; Scale multiplies the resolved draw scale;
// Rotation and Hue are degrees; LayerBias shifts the item's effective
// layer for manual bring-to-front.
type Adjustment struct {
	OffsetX   float64
	OffsetY   float64
	Scale     float64
	Rotation  float64
	Hue       float64
	LayerBias int
}

func DefaultAdjustment() Adjustment {
	return Adjustment{Scale: 1}
}

// AdjustPatch is a partial adjustment update. Only non-nil fields merge;
// everything else keeps its prior value. FreeOffsetX/Y patch the item's
// free placement (percent of the background square) rather than the
// pixel offsets.
type AdjustPatch struct {
	OffsetX     *float64
	OffsetY     *float64
	Scale       *float64
	Rotation    *float64
	Hue         *float64
	LayerBias   *int
	FreeOffsetX *float64
	FreeOffsetY *float64
}

// merge applies the patch to an equipped item in place.
func (p AdjustPatch) merge(e *Equipped) {
	if p.OffsetX != nil {
		e.Adjust.OffsetX = *p.OffsetX
	}
	if p.OffsetY != nil {
		e.Adjust.OffsetY = *p.OffsetY
	}
	if p.Scale != nil {
		e.Adjust.Scale = *p.Scale
	}
	if p.Rotation != nil {
		e.Adjust.Rotation = *p.Rotation
	}
	if p.Hue != nil {
		e.Adjust.Hue = *p.Hue
	}
	if p.LayerBias != nil {
		e.Adjust.LayerBias = *p.LayerBias
	}
	if p.FreeOffsetX != nil {
		e.FreeOffset.X = *p.FreeOffsetX
	}
	if p.FreeOffsetY != nil {
		e.FreeOffset.Y = *p.FreeOffsetY
	}
}

// Float is a pointer-literal helper for building patches.
func Float(v float64) *float64 { return &v }

// Int is the LayerBias counterpart of Float.
func Int(v int) *int { return &v }
