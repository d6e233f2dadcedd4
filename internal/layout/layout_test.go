package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dressup-engine/internal/mathutil"
)

var vp = Viewport{Width: 1280, Height: 720, LeftInset: 200, RightInset: 80, PixelRatio: 2}

func TestSquareOf(t *testing.T) {
	sq := SquareOf(vp)
	assert.Equal(t, 720.0, sq.Side, "side equals viewport height")
	// Centered in the 1000px span between the panels: 200 + 1000/2.
	assert.Equal(t, 700.0, sq.Center.X)
	assert.Equal(t, 360.0, sq.Center.Y)
}

func TestViewportHelpers(t *testing.T) {
	assert.Equal(t, 2.0, vp.DPR())
	assert.Equal(t, 1.0, Viewport{Width: 100, Height: 100}.DPR())
	assert.Equal(t, 720.0, vp.MinDim())
	assert.Equal(t, 300.0, Viewport{Width: 300, Height: 500}.MinDim())
}

func TestDollCenterDefaultIsSquareCenter(t *testing.T) {
	sq := SquareOf(vp)
	c := DollCenter(sq, DefaultDollTransform())
	assert.Equal(t, sq.Center, c)
}

func TestDollCenterOffset(t *testing.T) {
	sq := SquareOf(vp)
	c := DollCenter(sq, DollTransform{X: 60, Y: 40, Scale: 1})
	// ±10% of the 720px side.
	assert.InDelta(t, sq.Center.X+72, c.X, 1e-9)
	assert.InDelta(t, sq.Center.Y-72, c.Y, 1e-9)
}

func TestAnchor(t *testing.T) {
	sq := SquareOf(vp)
	dt := DollTransform{X: 70, Y: 50, Scale: 1}

	// Anchored items follow the doll.
	a := Anchor(sq, dt, false, mathutil.Vec2{})
	assert.Equal(t, DollCenter(sq, dt), a)

	// Movable with no drop point yet still follows the doll.
	a = Anchor(sq, dt, true, mathutil.Vec2{})
	assert.Equal(t, DollCenter(sq, dt), a)

	// Movable with a drop point pivots on the square, not the doll.
	a = Anchor(sq, dt, true, mathutil.Vec2{X: 25, Y: -10})
	assert.InDelta(t, sq.Center.X+0.25*720, a.X, 1e-9)
	assert.InDelta(t, sq.Center.Y-0.10*720, a.Y, 1e-9)
}

func TestPlaceDefaultsRoundTrip(t *testing.T) {
	sq := SquareOf(vp)
	p := Place(sq, DefaultDollTransform(), Item{Scale: 1, SourceHeight: 648})

	// Untouched item on a centered doll pivots exactly on the square center.
	assert.Equal(t, sq.Center, p.Anchor)
	assert.Equal(t, sq.Center, p.Center)
	// 720 × 0.9 / 648 = 1.0.
	assert.InDelta(t, 1.0, p.Scale, 1e-9)
	assert.Equal(t, 0.0, p.Rotation)
}

func TestPlaceScaleChain(t *testing.T) {
	sq := SquareOf(vp)
	dt := DollTransform{X: 50, Y: 50, Scale: 1.5}
	p := Place(sq, dt, Item{Scale: 2, SourceHeight: 648})
	assert.InDelta(t, 3.0, p.Scale, 1e-9, "fill × doll × adjust")

	// Zero adjustment scale means "unset", not "invisible".
	p = Place(sq, dt, Item{SourceHeight: 648})
	assert.InDelta(t, 1.5, p.Scale, 1e-9)
}

func TestPlacePixelOffsets(t *testing.T) {
	sq := SquareOf(vp)
	p := Place(sq, DefaultDollTransform(), Item{
		Scale: 1, SourceHeight: 648, OffsetX: 15, OffsetY: -30,
	})
	assert.Equal(t, sq.Center.X+15, p.Anchor.X)
	assert.Equal(t, sq.Center.Y-30, p.Anchor.Y)
}

func TestPlaceBasePos(t *testing.T) {
	sq := SquareOf(vp)
	p := Place(sq, DefaultDollTransform(), Item{
		BasePos: mathutil.Vec2{X: 0, Y: -110}, Scale: 1, SourceHeight: 648,
	})
	// Reference frame: 300 units span 90% of the square side.
	wantY := sq.Center.Y - 110*(720*0.9/300)
	assert.Equal(t, sq.Center, p.Anchor, "base position never moves the pivot")
	assert.InDelta(t, wantY, p.Center.Y, 1e-9)
	assert.InDelta(t, sq.Center.X, p.Center.X, 1e-9)

	// Per-item scaling leaves the base offset alone; doll scaling grows it.
	p2 := Place(sq, DefaultDollTransform(), Item{
		BasePos: mathutil.Vec2{X: 0, Y: -110}, Scale: 2, SourceHeight: 648,
	})
	assert.InDelta(t, p.Center.Y, p2.Center.Y, 1e-9)

	p3 := Place(sq, DollTransform{X: 50, Y: 50, Scale: 2}, Item{
		BasePos: mathutil.Vec2{X: 0, Y: -110}, Scale: 1, SourceHeight: 648,
	})
	wantY3 := sq.Center.Y - 110*(720*0.9*2/300)
	assert.InDelta(t, wantY3, p3.Center.Y, 1e-9)
}

func TestPlacementAffine(t *testing.T) {
	p := Placement{
		Anchor: mathutil.Vec2{X: 400, Y: 300},
		Center: mathutil.Vec2{X: 400, Y: 300},
		Scale:  2,
	}
	m := p.Affine(100, 200)

	// Sprite center lands on the placement center.
	got := m.Apply(mathutil.Vec2{X: 50, Y: 100})
	assert.InDelta(t, 400, got.X, 1e-9)
	assert.InDelta(t, 300, got.Y, 1e-9)

	// Scale doubles distances from the center.
	got = m.Apply(mathutil.Vec2{X: 100, Y: 100})
	assert.InDelta(t, 500, got.X, 1e-9)

	// Rotation pivots on the anchor: the anchor's preimage stays put.
	p.Rotation = 90
	rm := p.Affine(100, 200)
	got = rm.Apply(mathutil.Vec2{X: 50, Y: 100})
	assert.InDelta(t, 400, got.X, 1e-9)
	assert.InDelta(t, 300, got.Y, 1e-9)
	// A point right of center maps below it under a clockwise quarter turn.
	got = rm.Apply(mathutil.Vec2{X: 100, Y: 100})
	assert.InDelta(t, 400, got.X, 1e-9)
	assert.InDelta(t, 400, got.Y, 1e-9)
}

func TestPlacementAffineBaseOffsetRotates(t *testing.T) {
	// Center sits 50px above the anchor; a quarter turn clockwise swings
	// it to 50px right of the anchor.
	p := Placement{
		Anchor:   mathutil.Vec2{X: 400, Y: 300},
		Center:   mathutil.Vec2{X: 400, Y: 250},
		Scale:    1,
		Rotation: 90,
	}
	m := p.Affine(100, 100)
	got := m.Apply(mathutil.Vec2{X: 50, Y: 50})
	assert.InDelta(t, 450, got.X, 1e-9)
	assert.InDelta(t, 300, got.Y, 1e-9)
}
