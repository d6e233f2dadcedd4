package gesture

import (
	"dressup-engine/internal/layout"
	"dressup-engine/internal/mathutil"
	"dressup-engine/internal/wardrobe"
)

// Safe operating ranges. The data models stay unclamped; only gesture
// writes enforce these.
const (
	dollPosMin   = -50
	dollPosMax   = 150
	dollScaleMin = 0.3
	dollScaleMax = 2.0

	garmentScaleMin = 0.2
	garmentScaleMax = 4.0
)

// DollTarget writes deltas into the session's doll transform: pixel
// translation converts to square percentage, pinch multiplies the scale,
// twist is dropped because the doll does not rotate.
type DollTarget struct {
	Session *wardrobe.Session
	Square  layout.Square
}

func (t DollTarget) ApplyDeltas(d Deltas) {
	dt := t.Session.DollTransform()
	if t.Square.Side > 0 {
		dt.X += d.OffsetX / t.Square.Side * 100
		dt.Y += d.OffsetY / t.Square.Side * 100
	}
	ratio := d.ScaleRatio
	if ratio == 0 {
		ratio = 1
	}
	dt.X = mathutil.Clamp(dt.X, dollPosMin, dollPosMax)
	dt.Y = mathutil.Clamp(dt.Y, dollPosMin, dollPosMax)
	dt.Scale = mathutil.Clamp(dt.Scale*ratio, dollScaleMin, dollScaleMax)
	t.Session.SetDollTransform(dt)
}

// GarmentTarget writes deltas into one worn garment. Translation goes to
// the free placement for movable garments and to the pixel offsets for
// anchored ones; pinch and twist always hit the adjustment scale and
// rotation. Offsets clamp to half the smaller viewport dimension, the
// same budget in both domains.
type GarmentTarget struct {
	Session  *wardrobe.Session
	ID       string
	Viewport layout.Viewport
}

func (t GarmentTarget) ApplyDeltas(d Deltas) {
	it, ok := t.Session.Item(t.ID)
	if !ok {
		return
	}

	limit := t.Viewport.MinDim() / 2
	ratio := d.ScaleRatio
	if ratio == 0 {
		ratio = 1
	}
	scale := it.Adjust.Scale
	if scale == 0 {
		scale = 1
	}
	patch := wardrobe.AdjustPatch{
		Scale:    wardrobe.Float(mathutil.Clamp(scale*ratio, garmentScaleMin, garmentScaleMax)),
		Rotation: wardrobe.Float(it.Adjust.Rotation + d.RotationDeg),
	}

	if it.Movable {
		sq := layout.SquareOf(t.Viewport)
		if sq.Side > 0 {
			anchor := layout.Anchor(sq, t.Session.DollTransform(), true, it.FreeOffset)
			fx := mathutil.Clamp(anchor.X+d.OffsetX-sq.Center.X, -limit, limit)
			fy := mathutil.Clamp(anchor.Y+d.OffsetY-sq.Center.Y, -limit, limit)
			patch.FreeOffsetX = wardrobe.Float(fx / sq.Side * 100)
			patch.FreeOffsetY = wardrobe.Float(fy / sq.Side * 100)
		}
	} else {
		patch.OffsetX = wardrobe.Float(mathutil.Clamp(it.Adjust.OffsetX+d.OffsetX, -limit, limit))
		patch.OffsetY = wardrobe.Float(mathutil.Clamp(it.Adjust.OffsetY+d.OffsetY, -limit, limit))
	}
	t.Session.UpdateAdjustment(t.ID, patch)
}
