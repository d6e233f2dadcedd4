package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/anthonynsimon/bild/transform"

	"dressup-engine/internal/catalog"
	"dressup-engine/internal/layout"
	"dressup-engine/internal/persist"
	"dressup-engine/internal/sprite"
	"dressup-engine/internal/stage"
	"dressup-engine/internal/wardrobe"
)

// Dumps how a saved outfit resolves: layer order, effective keys, and
// the pixel placement every sprite would get at the given viewport.
func main() {
	manifest := flag.String("manifest", "wardrobe.json", "Path to wardrobe manifest")
	width := flag.Float64("width", 1280, "Viewport width in CSS pixels")
	height := flag.Float64("height", 720, "Viewport height in CSS pixels")
	left := flag.Float64("left", 0, "Left inset in CSS pixels")
	right := flag.Float64("right", 0, "Right inset in CSS pixels")
	dpr := flag.Float64("dpr", 1, "Device pixel ratio")
	thumb := flag.String("thumb", "", "Write a 256px thumbnail PNG to this path")

	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: inspectoutfit [flags] outfit.json")
		flag.PrintDefaults()
		os.Exit(1)
	}
	outfitPath := flag.Arg(0)

	cat, err := catalog.Load(*manifest)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	sess := wardrobe.NewSession(cat, persist.NewFileStore(outfitPath))
	if err := sess.Restore(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	vp := layout.Viewport{
		Width:      *width,
		Height:     *height,
		LeftInset:  *left,
		RightInset: *right,
		PixelRatio: *dpr,
	}
	sq := layout.SquareOf(vp)
	dt := sess.DollTransform()

	fmt.Printf("Outfit: %s\n", outfitPath)
	if d, ok := cat.Doll(sess.DollID()); ok {
		fmt.Printf("Doll: %s (%s), face=%q\n", d.ID, d.Name, d.Face)
	} else {
		fmt.Printf("Doll: %q (not in manifest)\n", sess.DollID())
	}
	fmt.Printf("Background: %q\n", sess.BackgroundID())
	fmt.Printf("Doll transform: pos=(%.1f%%, %.1f%%) scale=%.2f\n", dt.X, dt.Y, dt.Scale)
	fmt.Printf("Viewport: %.0fx%.0f insets[%.0f,%.0f] dpr=%.1f -> square side=%.1f center=(%.1f, %.1f)\n",
		vp.Width, vp.Height, vp.LeftInset, vp.RightInset, vp.PixelRatio,
		sq.Side, sq.Center.X, sq.Center.Y)

	layers := sess.OrderedLayers()
	fmt.Printf("Layers: %d (back to front)\n", len(layers))

	cache := sprite.NewCache()
	for i, e := range layers {
		flags := ""
		if e.Movable {
			flags += " movable"
		}
		if e.AllowOverlap {
			flags += " overlap"
		}
		pin := "slot"
		if e.LayerOrder != nil {
			pin = fmt.Sprintf("pin=%d", *e.LayerOrder)
		}
		fmt.Printf("  [%2d] %-16s %-14s layer=%-3d (%s+bias %d) equip=%d%s\n",
			i, e.ID, e.Category, e.EffectiveLayer(), pin, e.Adjust.LayerBias, e.EquipOrder, flags)

		a := e.Adjust
		if a.OffsetX != 0 || a.OffsetY != 0 || a.Scale != 1 || a.Rotation != 0 || a.Hue != 0 {
			fmt.Printf("       adjust: offset=(%.1f, %.1f)px scale=%.2f rot=%.1f hue=%.0f\n",
				a.OffsetX, a.OffsetY, a.Scale, a.Rotation, a.Hue)
		}
		if e.FreeOffset.X != 0 || e.FreeOffset.Y != 0 {
			fmt.Printf("       free placement: (%.1f%%, %.1f%%) of square\n", e.FreeOffset.X, e.FreeOffset.Y)
		}

		srcH := 0.0
		srcNote := ""
		if img := cache.Resolve(e.Source); img != nil {
			srcH = float64(img.Bounds().Dy())
		} else {
			srcH = 256
			srcNote = " (source missing, assuming 256px)"
		}
		p := layout.Place(sq, dt, layout.Item{
			BasePos:      e.BasePos,
			Movable:      e.Movable,
			FreeOffset:   e.FreeOffset,
			OffsetX:      a.OffsetX,
			OffsetY:      a.OffsetY,
			Scale:        a.Scale,
			Rotation:     a.Rotation,
			SourceHeight: srcH,
		})
		fmt.Printf("       place: anchor=(%.1f, %.1f) center=(%.1f, %.1f) scale=%.3f rot=%.1f%s\n",
			p.Anchor.X, p.Anchor.Y, p.Center.X, p.Center.Y, p.Scale, p.Rotation, srcNote)
	}

	if *thumb == "" {
		return
	}

	st := stage.New(stage.Options{Cache: cache})
	defer st.Close()
	if err := st.Apply(context.Background(), stage.SceneFrom(cat, sess, vp)); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	shot, err := st.Screenshot(stage.ScreenshotOptions{Format: stage.FormatPNG})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	small := transform.Resize(img, 256, 256, transform.Linear)
	var buf bytes.Buffer
	if err := png.Encode(&buf, small); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*thumb, buf.Bytes(), 0644); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Thumbnail: %s (256x256)\n", *thumb)
}
