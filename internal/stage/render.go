package stage

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"dressup-engine/internal/layout"
	"dressup-engine/internal/mathutil"
)

// Render flattens the live layer set at device resolution, viewport times
// pixel ratio. A stage with nothing committed renders a transparent canvas.
func (st *Stage) Render() (*image.NRGBA, error) {
	img, _, err := st.renderScaled(1)
	return img, err
}

// renderScaled flattens at device resolution times super and returns the
// scene the pixels came from, snapshotted atomically with the layer set.
// Supersampled passes feed the screenshot downsampler.
func (st *Stage) renderScaled(super int) (*image.NRGBA, Scene, error) {
	st.mu.Lock()
	if st.destroyed {
		st.mu.Unlock()
		return nil, Scene{}, ErrStageClosed
	}
	if st.lost {
		st.mu.Unlock()
		return nil, Scene{}, ErrSurfaceLost
	}
	sc := st.scene
	set := st.live
	st.mu.Unlock()

	res := sc.Viewport.DPR() * float64(super)
	w := int(math.Round(sc.Viewport.Width * res))
	h := int(math.Round(sc.Viewport.Height * res))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	if set == nil {
		return canvas, sc, nil
	}

	sq := layout.SquareOf(sc.Viewport)
	if set.background != nil {
		drawBackground(canvas, set.background, sq, res)
	}
	for _, l := range set.sprites {
		p := layout.Place(sq, sc.Doll, l.item)
		b := l.img.Bounds()
		m := mathutil.ScaleAffine(res, res).Mul(p.Affine(float64(b.Dx()), float64(b.Dy())))
		draw.ApproxBiLinear.Transform(canvas, m.Aff3(), l.img, b, draw.Over, nil)
	}
	return canvas, sc, nil
}

// squareRect is the background square's pixel rectangle at the given
// resolution scale. It may extend past the canvas when insets squeeze the
// square wider than the viewport; callers pad rather than clamp.
func squareRect(sq layout.Square, res float64) image.Rectangle {
	return image.Rect(
		int(math.Round((sq.Center.X-sq.Side/2)*res)),
		int(math.Round((sq.Center.Y-sq.Side/2)*res)),
		int(math.Round((sq.Center.X+sq.Side/2)*res)),
		int(math.Round((sq.Center.Y+sq.Side/2)*res)),
	)
}

// drawBackground covers the square with a centered crop of bg: full bleed,
// aspect preserved, clipped to the square's rectangle.
func drawBackground(dst *image.NRGBA, bg *image.NRGBA, sq layout.Square, res float64) {
	sb := bg.Bounds()
	side := sb.Dx()
	if sb.Dy() < side {
		side = sb.Dy()
	}
	if side < 1 {
		return
	}
	sr := image.Rect(0, 0, side, side).Add(image.Pt(
		sb.Min.X+(sb.Dx()-side)/2,
		sb.Min.Y+(sb.Dy()-side)/2,
	))
	draw.ApproxBiLinear.Scale(dst, squareRect(sq, res), bg, sr, draw.Src, nil)
}
