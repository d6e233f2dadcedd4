// Package layout maps logical garment and doll placements into pixel
// coordinates. All percentage placements are relative to the background
// square, a 1:1 area with side equal to the viewport height, centered in
// the span left between the side panels.
package layout

import "dressup-engine/internal/mathutil"

// Viewport is what the host reports on every resize: CSS pixel size,
// fixed side-panel widths and the device pixel ratio.
type Viewport struct {
	Width      float64
	Height     float64
	LeftInset  float64
	RightInset float64
	PixelRatio float64
}

// Square is the derived drawing area. Recomputed on resize, never stored.
type Square struct {
	Center mathutil.Vec2
	Side   float64
}

// SquareOf computes the background square for the current viewport.
func SquareOf(v Viewport) Square {
	return Square{
		Center: mathutil.Vec2{
			X: v.LeftInset + (v.Width-v.LeftInset-v.RightInset)/2,
			Y: v.Height / 2,
		},
		Side: v.Height,
	}
}

// DPR returns the device pixel ratio, defaulting to 1 when the host
// reports nothing.
func (v Viewport) DPR() float64 {
	if v.PixelRatio <= 0 {
		return 1
	}
	return v.PixelRatio
}

// MinDim returns the smaller viewport dimension. Adjustment offsets are
// clamped to half of this.
func (v Viewport) MinDim() float64 {
	if v.Width < v.Height {
		return v.Width
	}
	return v.Height
}
