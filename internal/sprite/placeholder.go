package sprite

import (
	"hash/fnv"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"dressup-engine/internal/mathutil"
)

type shape int

const (
	shapeRect shape = iota
	shapeStar
	shapeEllipse
)

// Free-floating trinkets get a star, head/foot gear an ellipse, body
// garments a plain block. Unknown categories fall through to the block.
var categoryShapes = map[string]shape{
	"accessory": shapeStar,
	"prop":      shapeStar,
	"glasses":   shapeStar,
	"bag":       shapeStar,
	"hat":       shapeEllipse,
	"hair":      shapeEllipse,
	"hair_back": shapeEllipse,
	"shoes":     shapeEllipse,
	"socks":     shapeEllipse,
}

// Placeholder renders the deterministic vector fallback for a category:
// same category and size always produce the identical image, so a failed
// bitmap never flickers between frames.
func Placeholder(category string, side int) *image.NRGBA {
	if side < 8 {
		side = 8
	}
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	col := categoryColor(category)
	s := float64(side)

	var pts []mathutil.Vec2
	switch categoryShapes[category] {
	case shapeStar:
		pts = starPoints(s/2, s/2, s*0.45, s*0.18)
	case shapeEllipse:
		pts = ellipsePoints(s/2, s/2, s*0.42, s*0.30)
	default:
		inset := s * 0.18
		pts = []mathutil.Vec2{
			{X: inset, Y: inset},
			{X: s - inset, Y: inset},
			{X: s - inset, Y: s - inset},
			{X: inset, Y: s - inset},
		}
	}
	fillPolygon(img, pts, col)
	return img
}

// categoryColor derives a stable palette color from the category name.
func categoryColor(category string) color.NRGBA {
	h := fnv.New32a()
	h.Write([]byte(category))
	hue := float64(h.Sum32() % 360)
	r, g, b := colorful.Hsv(hue, 0.55, 0.90).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// starPoints builds a five-pointed star, tip up.
func starPoints(cx, cy, outer, inner float64) []mathutil.Vec2 {
	pts := make([]mathutil.Vec2, 0, 10)
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		pts = append(pts, mathutil.Vec2{
			X: cx + r*math.Cos(a),
			Y: cy + r*math.Sin(a),
		})
	}
	return pts
}

// ellipsePoints approximates an axis-aligned ellipse with 24 segments,
// close enough for a fallback glyph.
func ellipsePoints(cx, cy, rx, ry float64) []mathutil.Vec2 {
	const segments = 24
	pts := make([]mathutil.Vec2, 0, segments)
	for i := 0; i < segments; i++ {
		a := float64(i) * 2 * math.Pi / segments
		pts = append(pts, mathutil.Vec2{
			X: cx + rx*math.Cos(a),
			Y: cy + ry*math.Sin(a),
		})
	}
	return pts
}

// fillPolygon rasterizes a polygon that is star-shaped about its
// centroid by fanning triangles out from it.
func fillPolygon(img *image.NRGBA, pts []mathutil.Vec2, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	var ctr mathutil.Vec2
	for _, p := range pts {
		ctr = ctr.Add(p)
	}
	ctr = ctr.Scale(1 / float64(len(pts)))
	for i := range pts {
		fillTriangle(img, ctr, pts[i], pts[(i+1)%len(pts)], col)
	}
}

// fillTriangle runs a bounding-box barycentric pixel loop, sampling at
// pixel centers. No allocation inside.
func fillTriangle(img *image.NRGBA, a, b, c mathutil.Vec2, col color.NRGBA) {
	bounds := img.Bounds()
	minX := int(math.Floor(math.Min(math.Min(a.X, b.X), c.X)))
	maxX := int(math.Ceil(math.Max(math.Max(a.X, b.X), c.X)))
	minY := int(math.Floor(math.Min(math.Min(a.Y, b.Y), c.Y)))
	maxY := int(math.Ceil(math.Max(math.Max(a.Y, b.Y), c.Y)))
	if minX < bounds.Min.X {
		minX = bounds.Min.X
	}
	if maxX > bounds.Max.X-1 {
		maxX = bounds.Max.X - 1
	}
	if minY < bounds.Min.Y {
		minY = bounds.Min.Y
	}
	if maxY > bounds.Max.Y-1 {
		maxY = bounds.Max.Y - 1
	}

	det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det
	dy12 := b.Y - c.Y
	dx21 := c.X - b.X
	dy20 := c.Y - a.Y
	dx02 := a.X - c.X

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - c.Y
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - c.X
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}
			i := img.PixOffset(sx, sy)
			img.Pix[i] = col.R
			img.Pix[i+1] = col.G
			img.Pix[i+2] = col.B
			img.Pix[i+3] = col.A
		}
	}
}
