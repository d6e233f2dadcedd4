package sprite

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(2, 1, color.NRGBA{B: 255, A: 128})
	return img
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, testImage()), 0o644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 0))
}

func TestLoadDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(encodePNG(t, testImage()))
	img, err := Load("data:image/png;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestLoadFailures(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, ErrUnsupportedSource)

	_, err = Load("data:image/png,notbase64")
	assert.ErrorIs(t, err, ErrUnsupportedSource)

	_, err = Load("blob:orphan")
	assert.ErrorIs(t, err, ErrUnsupportedSource)

	_, err = Load(filepath.Join(t.TempDir(), "absent.png"))
	assert.Error(t, err)

	_, err = Decode([]byte("not an image"))
	assert.Error(t, err)
}

func TestCacheResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, testImage()), 0o644))

	c := NewCache()
	first := c.Resolve(path)
	require.NotNil(t, first)

	// The decode is reused, not repeated.
	assert.Same(t, first, c.Resolve(path))
}

func TestCacheNegative(t *testing.T) {
	c := NewCache()
	missing := filepath.Join(t.TempDir(), "absent.png")
	assert.Nil(t, c.Resolve(missing))
	assert.Nil(t, c.Resolve(missing), "failure is remembered")
}

func TestCacheBlob(t *testing.T) {
	c := NewCache()
	ref := c.AddBlob("upload-1", encodePNG(t, testImage()))
	assert.Equal(t, "blob:upload-1", ref)

	img := c.Resolve(ref)
	require.NotNil(t, img)
	assert.Equal(t, 3, img.Bounds().Dx())

	// Re-registering replaces the cached decode.
	big := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	c.AddBlob("upload-1", encodePNG(t, big))
	img = c.Resolve(ref)
	require.NotNil(t, img)
	assert.Equal(t, 5, img.Bounds().Dx())
}

func TestCachePut(t *testing.T) {
	c := NewCache()
	img := testImage()
	c.Put("synthetic", img)
	assert.Same(t, img, c.Resolve("synthetic"))
}

func TestPlaceholderDeterministic(t *testing.T) {
	a := Placeholder("accessory", 64)
	b := Placeholder("accessory", 64)
	assert.Equal(t, a.Pix, b.Pix)

	// Something must actually be drawn.
	opaque := 0
	for i := 3; i < len(a.Pix); i += 4 {
		if a.Pix[i] > 0 {
			opaque++
		}
	}
	assert.Greater(t, opaque, 64)

	// Different categories look different (shape or palette).
	c := Placeholder("top", 64)
	assert.NotEqual(t, a.Pix, c.Pix)
}

func TestPlaceholderTinySide(t *testing.T) {
	img := Placeholder("hat", 1)
	assert.Equal(t, 8, img.Bounds().Dx(), "side clamps up to something drawable")
}

func TestPlaceholderUnknownCategory(t *testing.T) {
	img := Placeholder("cybernetic_arm", 32)
	// The default block covers the middle.
	assert.Equal(t, uint8(255), img.NRGBAAt(16, 16).A)
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A, "inset corner stays clear")
}

func TestApplyCircleMask(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i] = 200
		src.Pix[i+3] = 255
	}
	srcCopy := append([]uint8(nil), src.Pix...)

	out := ApplyCircleMask(src)
	assert.Equal(t, uint8(255), out.NRGBAAt(20, 20).A, "center opaque")
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).A, "corner clear")
	assert.Equal(t, uint8(0), out.NRGBAAt(39, 39).A)
	assert.Equal(t, uint8(200), out.NRGBAAt(0, 0).R, "color untouched, alpha only")
	assert.Equal(t, srcCopy, src.Pix, "src untouched")
}
