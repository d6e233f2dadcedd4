package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAffineApply(t *testing.T) {
	p := Vec2{1, 0}

	assert.Equal(t, p, AffineIdentity().Apply(p))
	assert.Equal(t, Vec2{11, 20}, Translate(10, 20).Apply(p))
	assert.Equal(t, Vec2{3, 0}, ScaleAffine(3, 2).Apply(p))

	// 90° clockwise in y-down coordinates: +X maps to +Y.
	got := Rotate(Deg2Rad(90)).Apply(p)
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 1, got.Y, 1e-12)
}

func TestAffineMulOrder(t *testing.T) {
	// Mul(n) applies n first: scale then translate.
	m := Translate(10, 0).Mul(ScaleAffine(2, 2))
	assert.Equal(t, Vec2{12, 2}, m.Apply(Vec2{1, 1}))

	// Reversed composition translates before scaling.
	m = ScaleAffine(2, 2).Mul(Translate(10, 0))
	assert.Equal(t, Vec2{22, 2}, m.Apply(Vec2{1, 1}))
}

func TestAffineInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Affine
	}{
		{"identity", AffineIdentity()},
		{"translate", Translate(5, -3)},
		{"scale", ScaleAffine(2, 0.5)},
		{"rotate", Rotate(Deg2Rad(37))},
		{"composed", Translate(4, 9).Mul(Rotate(1.1)).Mul(ScaleAffine(3, 3))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Vec2{7, -2}
			rt := tt.m.Invert().Apply(tt.m.Apply(p))
			assert.InDelta(t, p.X, rt.X, 1e-9)
			assert.InDelta(t, p.Y, rt.Y, 1e-9)
		})
	}

	// Singular matrices fall back to identity rather than exploding.
	assert.Equal(t, AffineIdentity(), ScaleAffine(0, 0).Invert())
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name           string
		e0, e1, x, want float64
	}{
		{"below edge0", 0.2, 0.8, 0.1, 0},
		{"at edge0", 0.2, 0.8, 0.2, 0},
		{"midpoint", 0.2, 0.8, 0.5, 0.5},
		{"at edge1", 0.2, 0.8, 0.8, 1},
		{"above edge1", 0.2, 0.8, 0.9, 1},
		{"degenerate band below", 0.5, 0.5, 0.4, 0},
		{"degenerate band above", 0.5, 0.5, 0.6, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Smoothstep(tt.e0, tt.e1, tt.x), 1e-12)
		})
	}

	// Monotone over the band.
	prev := -1.0
	for x := 0.0; x <= 1.0; x += 0.05 {
		v := Smoothstep(0.2, 0.8, x)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestAngleHelpers(t *testing.T) {
	assert.InDelta(t, 20, AngleDist(350, 10), 1e-12)
	assert.InDelta(t, 180, AngleDist(0, 180), 1e-12)
	assert.InDelta(t, 0, AngleDist(720, 0), 1e-12)

	assert.InDelta(t, 20, AngleDelta(350, 10), 1e-12)
	assert.InDelta(t, -20, AngleDelta(10, 350), 1e-12)
	assert.InDelta(t, 180, AngleDelta(0, 180), 1e-12)
}

func TestVec2(t *testing.T) {
	a := Vec2{3, 4}
	assert.InDelta(t, 5, a.Len(), 1e-12)
	assert.Equal(t, Vec2{6, 8}, a.Scale(2))
	assert.Equal(t, Vec2{4, 6}, a.Add(Vec2{1, 2}))
	assert.InDelta(t, 5, Vec2{0, 0}.Dist(a), 1e-12)
	assert.Equal(t, Vec2{1.5, 2}, Vec2{0, 0}.Mid(a))
	assert.InDelta(t, 90, Vec2{0, 0}.Angle(Vec2{0, 5}), 1e-12)
}
