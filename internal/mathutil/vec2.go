package mathutil

import "math"

// Vec2 is a 2-component vector (value type, stack-allocated).
type Vec2 struct {
	X, Y float64
}

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (a Vec2) Dot(b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (a Vec2) Dist(b Vec2) float64 {
	return a.Sub(b).Len()
}

// Mid returns the midpoint between a and b.
func (a Vec2) Mid(b Vec2) Vec2 {
	return Vec2{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Angle returns the direction from a to b in degrees, atan2 convention
// (0° points +X, y-down screen coordinates make positive angles clockwise).
func (a Vec2) Angle(b Vec2) float64 {
	d := b.Sub(a)
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}
