package stage

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"dressup-engine/internal/chroma"
	"dressup-engine/internal/layout"
)

// Format selects the screenshot encoding.
type Format int

const (
	FormatPNG Format = iota
	FormatWebP
)

// ScreenshotOptions tunes a capture. The zero value is a plain PNG at
// device resolution.
type ScreenshotOptions struct {
	Format Format

	// Supersample renders at a multiple of device resolution and scales
	// back down, smoothing rotated garment edges. Values below 2 disable.
	Supersample int

	// Despeckle runs the alpha-cluster cleanup pass on the cropped output.
	Despeckle bool
}

// Screenshot forces a render pass, crops it to exactly the background
// square's pixel rectangle at device resolution, and encodes the result.
// Capture reads scene state but never writes it. Square regions the
// viewport never covered come out transparent.
func (st *Stage) Screenshot(opts ScreenshotOptions) ([]byte, error) {
	super := opts.Supersample
	if super < 2 {
		super = 1
	}
	canvas, sc, err := st.renderScaled(super)
	if err != nil {
		return nil, err
	}

	sq := layout.SquareOf(sc.Viewport)
	dpr := sc.Viewport.DPR()
	rDev := squareRect(sq, dpr)
	rSuper := squareRect(sq, dpr*float64(super))

	out := image.NewNRGBA(image.Rect(0, 0, rSuper.Dx(), rSuper.Dy()))
	draw.Draw(out, out.Bounds(), canvas, rSuper.Min, draw.Src)
	if super > 1 {
		out = downsample(out, rDev.Dx(), rDev.Dy())
	}
	if opts.Despeckle {
		dp := st.chain.Despeckle
		if dp.MinRatio <= 0 {
			dp = chroma.DefaultDespeckleParams()
		}
		dp.Resolution = dpr
		out = chroma.Despeckle(out, dp)
	}

	var buf bytes.Buffer
	switch opts.Format {
	case FormatWebP:
		err = nativewebp.Encode(&buf, out, nil)
	default:
		err = png.Encode(&buf, out)
	}
	if err != nil {
		return nil, fmt.Errorf("stage: encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

// downsample scales a supersampled capture back to device size with
// premultiplied-alpha CatmullRom filtering, so semi-transparent garment
// edges pick up no dark halo from the zero-RGB of fully clear pixels.
func downsample(img *image.NRGBA, tw, th int) *image.NRGBA {
	b := img.Bounds()
	if tw < 1 || th < 1 || (b.Dx() <= tw && b.Dy() <= th) {
		return img
	}

	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			si := dst.PixOffset(x, y)
			di := out.PixOffset(x, y)
			a := float64(dst.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				out.Pix[di] = clamp8(float64(dst.Pix[si]) * inv)
				out.Pix[di+1] = clamp8(float64(dst.Pix[si+1]) * inv)
				out.Pix[di+2] = clamp8(float64(dst.Pix[si+2]) * inv)
			}
			out.Pix[di+3] = dst.Pix[si+3]
		}
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
