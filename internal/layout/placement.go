package layout

import (
	"dressup-engine/internal/catalog"
	"dressup-engine/internal/mathutil"
)

// DrawFill is the fraction of the viewport height the doll and garments
// are drawn at before doll or adjustment scaling. Fixed product constant.
const DrawFill = 0.9

// DollCenter maps the doll transform into pixels within the square.
func DollCenter(sq Square, dt DollTransform) mathutil.Vec2 {
	return mathutil.Vec2{
		X: sq.Center.X + (dt.X-50)/100*sq.Side,
		Y: sq.Center.Y + (dt.Y-50)/100*sq.Side,
	}
}

// Anchor resolves an item's pivot point. Movable items that have been
// dropped somewhere (non-zero free offset, percent of the square) pivot
// there; everything else pivots on the doll center.
func Anchor(sq Square, dt DollTransform, movable bool, free mathutil.Vec2) mathutil.Vec2 {
	if movable && (free.X != 0 || free.Y != 0) {
		return mathutil.Vec2{
			X: sq.Center.X + free.X/100*sq.Side,
			Y: sq.Center.Y + free.Y/100*sq.Side,
		}
	}
	return DollCenter(sq, dt)
}

// Item carries the placement inputs for one sprite. FreeOffset is percent
// of the square; OffsetX/Y are raw pixels; Scale multiplies the resolved
// draw scale; Rotation is degrees clockwise about the anchor.
type Item struct {
	BasePos      mathutil.Vec2
	Movable      bool
	FreeOffset   mathutil.Vec2
	OffsetX      float64
	OffsetY      float64
	Scale        float64
	Rotation     float64
	SourceHeight float64
}

// Placement is a fully resolved sprite placement. Center is where the
// sprite center lands before rotating about Anchor; the two differ only
// when the garment carries a base-position offset.
type Placement struct {
	Anchor   mathutil.Vec2
	Center   mathutil.Vec2
	Scale    float64
	Rotation float64
}

// Place runs the full placement pipeline for one item. The same function
// backs interactive preview and final compositing so the two can never
// disagree.
func Place(sq Square, dt DollTransform, it Item) Placement {
	adjScale := it.Scale
	if adjScale == 0 {
		adjScale = 1
	}

	anchor := Anchor(sq, dt, it.Movable, it.FreeOffset)
	anchor.X += it.OffsetX
	anchor.Y += it.OffsetY

	srcH := it.SourceHeight
	if srcH <= 0 {
		srcH = 1
	}
	scale := sq.Side * DrawFill / srcH * dt.Scale * adjScale

	// Base positions are authored in the 200×300 reference frame and
	// track the doll's size, not the per-item adjustment scale.
	basePx := sq.Side * DrawFill * dt.Scale / catalog.RefHeight
	center := mathutil.Vec2{
		X: anchor.X + it.BasePos.X*basePx,
		Y: anchor.Y + it.BasePos.Y*basePx,
	}

	return Placement{Anchor: anchor, Center: center, Scale: scale, Rotation: it.Rotation}
}

// Affine builds the sprite-space → viewport-space transform for a source
// of the given pixel size: scale about the sprite center, then rotate
// about the anchor.
func (p Placement) Affine(srcW, srcH float64) mathutil.Affine {
	m := mathutil.Translate(p.Anchor.X, p.Anchor.Y)
	if p.Rotation != 0 {
		m = m.Mul(mathutil.Rotate(mathutil.Deg2Rad(p.Rotation)))
	}
	m = m.Mul(mathutil.Translate(p.Center.X-p.Anchor.X, p.Center.Y-p.Anchor.Y))
	m = m.Mul(mathutil.ScaleAffine(p.Scale, p.Scale))
	return m.Mul(mathutil.Translate(-srcW/2, -srcH/2))
}
