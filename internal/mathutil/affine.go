package mathutil

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2×3 affine transform stored row-major:
//
//	| A  B  C |
//	| D  E  F |
//
// mapping (x, y) → (A·x + B·y + C, D·x + E·y + F).
// Value type for zero heap allocation.
type Affine struct {
	A, B, C float64
	D, E, F float64
}

func AffineIdentity() Affine {
	return Affine{A: 1, E: 1}
}

func Translate(x, y float64) Affine {
	return Affine{A: 1, C: x, E: 1, F: y}
}

func ScaleAffine(x, y float64) Affine {
	return Affine{A: x, E: y}
}

// Rotate returns a rotation by a radians. Positive angles rotate clockwise
// in y-down screen coordinates.
func Rotate(a float64) Affine {
	c, s := math.Cos(a), math.Sin(a)
	return Affine{A: c, B: -s, D: s, E: c}
}

// Mul returns m × n (n applied first).
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// Apply transforms a point.
func (m Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// Invert returns the inverse transform, or the identity when m is singular.
func (m Affine) Invert() Affine {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-12 {
		return AffineIdentity()
	}
	inv := 1.0 / det
	return Affine{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.E*m.C) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.D*m.C - m.A*m.F) * inv,
	}
}

// Aff3 converts to the x/image drawing representation.
func (m Affine) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
