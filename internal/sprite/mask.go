package sprite

import (
	"image"
	"math"

	"dressup-engine/internal/mathutil"
)

// ApplyCircleMask zeroes alpha outside the largest circle that fits the
// image, with a one-pixel feathered edge. Face overlays pass through
// here before compositing. Returns a new image; src is untouched.
func ApplyCircleMask(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)
	copy(out.Pix, src.Pix)

	cx := float64(w) / 2
	cy := float64(h) / 2
	r := math.Min(cx, cy)

	for y := 0; y < h; y++ {
		dy := float64(y) + 0.5 - cy
		for x := 0; x < w; x++ {
			dx := float64(x) + 0.5 - cx
			d := math.Sqrt(dx*dx + dy*dy)
			keep := 1 - mathutil.Smoothstep(r-1, r, d)
			if keep >= 1 {
				continue
			}
			i := y*out.Stride + x*4
			out.Pix[i+3] = uint8(float64(out.Pix[i+3])*keep + 0.5)
		}
	}
	return out
}
