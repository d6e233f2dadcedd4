package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dressup-engine/internal/catalog"
	"dressup-engine/internal/layout"
	"dressup-engine/internal/wardrobe"
)

func testSession(t *testing.T) *wardrobe.Session {
	t.Helper()
	cat := catalog.New()
	cat.Add(catalog.Garment{ID: "shirt", Category: "top", BaseZIndex: 30})
	cat.Add(catalog.Garment{ID: "charm", Category: "accessory", BaseZIndex: 70,
		Movable: true, AllowOverlap: true})
	return wardrobe.NewSession(cat, nil)
}

// 200×100 viewport: square side 100 centered at (100,50), offset limit 50.
func testViewport() layout.Viewport {
	return layout.Viewport{Width: 200, Height: 100, PixelRatio: 1}
}

func TestDollTargetConvertsAndClamps(t *testing.T) {
	sess := testSession(t)
	target := DollTarget{Session: sess, Square: layout.SquareOf(testViewport())}

	// 25px right on a 100px square is +25%.
	target.ApplyDeltas(Deltas{OffsetX: 25, OffsetY: -10, ScaleRatio: 1.2})
	dt := sess.DollTransform()
	assert.InDelta(t, 75, dt.X, 1e-9)
	assert.InDelta(t, 40, dt.Y, 1e-9)
	assert.InDelta(t, 1.2, dt.Scale, 1e-9)

	target.ApplyDeltas(Deltas{OffsetX: 1000, OffsetY: 1000, ScaleRatio: 10})
	dt = sess.DollTransform()
	assert.Equal(t, 150.0, dt.X)
	assert.Equal(t, 150.0, dt.Y)
	assert.Equal(t, 2.0, dt.Scale)

	target.ApplyDeltas(Deltas{OffsetX: -10000, OffsetY: -10000, ScaleRatio: 0.001})
	dt = sess.DollTransform()
	assert.Equal(t, -50.0, dt.X)
	assert.Equal(t, -50.0, dt.Y)
	assert.Equal(t, 0.3, dt.Scale)
}

func TestGarmentTargetAnchoredOffsets(t *testing.T) {
	sess := testSession(t)
	require.NoError(t, sess.Equip("shirt"))
	target := GarmentTarget{Session: sess, ID: "shirt", Viewport: testViewport()}

	target.ApplyDeltas(Deltas{OffsetX: 30, OffsetY: -20, ScaleRatio: 1.5, RotationDeg: 15})
	it, ok := sess.Item("shirt")
	require.True(t, ok)
	assert.InDelta(t, 30, it.Adjust.OffsetX, 1e-9)
	assert.InDelta(t, -20, it.Adjust.OffsetY, 1e-9)
	assert.InDelta(t, 1.5, it.Adjust.Scale, 1e-9)
	assert.InDelta(t, 15, it.Adjust.Rotation, 1e-9)
	assert.Zero(t, it.FreeOffset.X, "anchored garments never gain a free placement")

	// Offsets accumulate and clamp to half the smaller viewport dimension.
	target.ApplyDeltas(Deltas{OffsetX: 40, ScaleRatio: 1})
	it, _ = sess.Item("shirt")
	assert.Equal(t, 50.0, it.Adjust.OffsetX)
	assert.InDelta(t, 1.5, it.Adjust.Scale, 1e-9)
	assert.InDelta(t, 15, it.Adjust.Rotation, 1e-9)

	target.ApplyDeltas(Deltas{ScaleRatio: 10})
	it, _ = sess.Item("shirt")
	assert.Equal(t, 4.0, it.Adjust.Scale)

	// Untouched adjustment fields survive the patches.
	assert.Zero(t, it.Adjust.Hue)
	assert.Zero(t, it.Adjust.LayerBias)
}

func TestGarmentTargetMovableFreePlacement(t *testing.T) {
	sess := testSession(t)
	require.NoError(t, sess.Equip("charm"))
	target := GarmentTarget{Session: sess, ID: "charm", Viewport: testViewport()}

	// The charm starts anchored to the doll (square center here); the
	// drag converts into a free placement in square percent.
	target.ApplyDeltas(Deltas{OffsetX: 30, OffsetY: -10, ScaleRatio: 1})
	it, ok := sess.Item("charm")
	require.True(t, ok)
	assert.InDelta(t, 30, it.FreeOffset.X, 1e-9)
	assert.InDelta(t, -10, it.FreeOffset.Y, 1e-9)
	assert.Zero(t, it.Adjust.OffsetX, "movable drags never touch the pixel offsets")

	// Further drags move the existing placement, clamped to the same
	// half-min-dimension budget around the square center.
	target.ApplyDeltas(Deltas{OffsetX: 40, ScaleRatio: 1})
	it, _ = sess.Item("charm")
	assert.InDelta(t, 50, it.FreeOffset.X, 1e-9)
	assert.InDelta(t, -10, it.FreeOffset.Y, 1e-9)

	// Pinch and twist still land in the adjustments.
	target.ApplyDeltas(Deltas{ScaleRatio: 2, RotationDeg: -30})
	it, _ = sess.Item("charm")
	assert.InDelta(t, 2, it.Adjust.Scale, 1e-9)
	assert.InDelta(t, -30, it.Adjust.Rotation, 1e-9)
}

func TestGarmentTargetUnknownID(t *testing.T) {
	sess := testSession(t)
	require.NoError(t, sess.Equip("shirt"))
	target := GarmentTarget{Session: sess, ID: "ghost", Viewport: testViewport()}

	target.ApplyDeltas(Deltas{OffsetX: 10, ScaleRatio: 2})
	it, _ := sess.Item("shirt")
	assert.Zero(t, it.Adjust.OffsetX)
}

func TestControllerDrivesGarment(t *testing.T) {
	sess := testSession(t)
	require.NoError(t, sess.Equip("shirt"))
	c := NewController(GarmentTarget{Session: sess, ID: "shirt", Viewport: testViewport()}, OnConfirm)

	c.Down(1, Point{X: 100, Y: 50})
	c.Move(1, Point{X: 120, Y: 60})
	c.Up(1)

	it, _ := sess.Item("shirt")
	assert.Zero(t, it.Adjust.OffsetX, "nothing written before confirm")

	c.Commit()
	it, _ = sess.Item("shirt")
	assert.InDelta(t, 20, it.Adjust.OffsetX, 1e-9)
	assert.InDelta(t, 10, it.Adjust.OffsetY, 1e-9)
}
