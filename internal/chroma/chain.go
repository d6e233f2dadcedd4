package chroma

import "image"

// Chain is the full background-removal pipeline in its render order:
// chroma key, then edge trim on the keyed result, then despeckle when
// configured. One Chain value serves a whole render pass.
type Chain struct {
	Key       KeyParams
	Trim      TrimParams
	Despeckle DespeckleParams
}

// DefaultChain keys pure green with despeckle off; screenshot export
// turns despeckle on explicitly.
func DefaultChain() Chain {
	return Chain{
		Key:  DefaultKeyParams(),
		Trim: DefaultTrimParams(),
	}
}

// Apply runs the chain over a bitmap. src is never mutated; the result is
// always a fresh image, so callers may cache both.
func (c Chain) Apply(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)

	shader := c.Key.compile()
	for y := 0; y < h; y++ {
		row := y * src.Stride
		for x := 0; x < w; x++ {
			i := row + x*4
			px := RGBA{
				R: float32(src.Pix[i]) / 255,
				G: float32(src.Pix[i+1]) / 255,
				B: float32(src.Pix[i+2]) / 255,
				A: float32(src.Pix[i+3]) / 255,
			}
			px = shader.shade(px)
			px = c.Trim.Shade(px)

			o := y*out.Stride + x*4
			out.Pix[o] = u8(px.R)
			out.Pix[o+1] = u8(px.G)
			out.Pix[o+2] = u8(px.B)
			out.Pix[o+3] = u8(px.A)
		}
	}

	return Despeckle(out, c.Despeckle)
}

func u8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
