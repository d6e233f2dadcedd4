// Package sprite loads, caches and fabricates the bitmap layers the
// stage composites. Sources are opaque references (file paths, data URLs
// or registered blobs); failures are remembered and answered with vector
// placeholders so the scene never shows a gap.
package sprite

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedSource marks a reference no loader understands.
var ErrUnsupportedSource = errors.New("sprite: unsupported source")

// Load resolves an opaque image reference: a base64 data URL or a
// filesystem path. Blob references resolve through a Cache, which is
// where their bytes live.
func Load(src string) (*image.NRGBA, error) {
	switch {
	case src == "":
		return nil, ErrUnsupportedSource
	case strings.HasPrefix(src, "data:"):
		raw, err := decodeDataURL(src)
		if err != nil {
			return nil, err
		}
		return Decode(raw)
	case strings.HasPrefix(src, "blob:"):
		return nil, fmt.Errorf("sprite: blob %s outside its cache: %w", src, ErrUnsupportedSource)
	default:
		raw, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("sprite: read %s: %w", src, err)
		}
		return Decode(raw)
	}
}

// Decode turns encoded bytes into NRGBA through the registered formats:
// PNG, JPEG, GIF, WebP, BMP, TIFF and TGA.
func Decode(raw []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("sprite: decode: %w", err)
	}
	return ToNRGBA(img), nil
}

func decodeDataURL(src string) ([]byte, error) {
	comma := strings.IndexByte(src, ',')
	if comma < 0 {
		return nil, fmt.Errorf("sprite: malformed data URL: %w", ErrUnsupportedSource)
	}
	meta := src[len("data:"):comma]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("sprite: data URL without base64 payload: %w", ErrUnsupportedSource)
	}
	raw, err := base64.StdEncoding.DecodeString(src[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("sprite: data URL payload: %w", err)
	}
	return raw, nil
}

// ToNRGBA converts any decoded image to the engine's working format.
func ToNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}
