package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"dressup-engine/internal/chroma"
	"dressup-engine/internal/sprite"
)

// Exercises the background-removal pipeline on one sprite so keying
// parameters can be tuned without a full render.
func main() {
	in := flag.String("in", "", "Input image (png, webp, bmp, tga, tiff, jpeg)")
	out := flag.String("out", "", "Output PNG path (default: <in>.keyed.png)")
	key := flag.String("key", "", "Key color as hex, e.g. #00ff00 (default: pure green)")
	threshold := flag.Float64("threshold", 0.40, "RGB distance below which a pixel counts as key")
	smoothing := flag.Float64("smoothing", 0.10, "Width of the keying fade edge")
	spill := flag.Float64("spill", 0.50, "Green-fringe desaturation strength, 0 disables")
	trimThreshold := flag.Float64("trim-threshold", 0.20, "Alpha at or below this goes fully transparent")
	trimSoftness := flag.Float64("trim-softness", 0.10, "Smoothstep band width above the trim threshold")
	despeckleRatio := flag.Float64("despeckle-ratio", 0, "Drop alpha islands below this share of opaque pixels, 0 disables")

	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(1)
	}

	img, err := sprite.Load(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", *in, err)
		os.Exit(1)
	}

	fmt.Printf("Input: %s (%dx%d)\n", *in, img.Bounds().Dx(), img.Bounds().Dy())
	printAlphaStats(img, "before")

	chain := chroma.DefaultChain()
	chain.Key.Threshold = float32(*threshold)
	chain.Key.Smoothing = float32(*smoothing)
	chain.Key.Spill = float32(*spill)
	chain.Trim.Threshold = float32(*trimThreshold)
	chain.Trim.Softness = float32(*trimSoftness)
	if *key != "" {
		c, err := colorful.Hex(*key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing key color %q: %v\n", *key, err)
			os.Exit(1)
		}
		chain.Key.Key = chroma.RGB{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
	}
	if *despeckleRatio > 0 {
		chain.Despeckle = chroma.DefaultDespeckleParams()
		chain.Despeckle.MinRatio = *despeckleRatio
	}

	keyed := chain.Apply(img)
	printAlphaStats(keyed, "after")

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(*in, filepath.Ext(*in)) + ".keyed.png"
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", outPath, err)
		os.Exit(1)
	}
	if err := png.Encode(f, keyed); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error encoding %s: %v\n", outPath, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", outPath)
}

func printAlphaStats(img *image.NRGBA, name string) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	var minA, maxA uint8 = 255, 0
	total := 0
	sumA := 0
	opaque := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := img.Pix[y*img.Stride+x*4+3]
			total++
			sumA += int(a)
			if a < minA {
				minA = a
			}
			if a > maxA {
				maxA = a
			}
			if a == 255 {
				opaque++
			}
		}
	}
	fmt.Printf("%s: alpha min=%d max=%d avg=%.0f opaque=%d/%d (%.0f%%)\n",
		name, minA, maxA, float64(sumA)/float64(total), opaque, total,
		100*float64(opaque)/float64(total))
}
