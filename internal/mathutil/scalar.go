package mathutil

import "math"

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Smoothstep is the Hermite interpolation 3t²−2t³ of x over [edge0, edge1]:
// 0 below edge0, 1 above edge1, smooth in between. Matches the GLSL builtin
// so filter math ports one-to-one between CPU and shader form.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 >= edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// AngleDist returns the shortest angular distance between two angles in
// degrees (0–180).
func AngleDist(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		return 360 - d
	}
	return d
}

// AngleDelta returns the signed shortest rotation from a to b in degrees
// (−180, 180]. Used for twist-gesture deltas, where direction matters.
func AngleDelta(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	if d <= -180 {
		d += 360
	}
	if d > 180 {
		d -= 360
	}
	return d
}
