package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	dressup "dressup-engine"
	"dressup-engine/internal/batch"
	"dressup-engine/internal/catalog"
	"dressup-engine/internal/config"
	"dressup-engine/internal/sprite"
	"dressup-engine/internal/stage"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	testN := flag.Int("test", 0, "Render only first N outfits for testing")
	manifest := flag.String("manifest", "", "Path to wardrobe manifest (default: auto-detect)")
	outfitDir := flag.String("outfits", "", "Directory of saved outfit files (default: outfits)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Output format, png or webp (default: png)")
	supersample := flag.Int("supersample", 0, "Supersampling factor for smoother edges (default: 1)")
	despeckle := flag.Bool("despeckle", false, "Drop stray alpha specks left by chroma keying")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Verbose engine logging to stderr")

	flag.Parse()

	if *verbose {
		dressup.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Manifest:  *manifest,
		OutfitDir: *outfitDir,
		OutputDir: *outputDir,
		Format:    *format,
		Workers:   *workers,
	})
	if *supersample > 0 {
		cfg.Supersample = *supersample
	}
	if *despeckle {
		cfg.Despeckle = true
	}

	// Load wardrobe manifest
	cat, err := catalog.Load(cfg.ManifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
		os.Exit(1)
	}

	// List saved outfits
	outfits, err := batch.ListOutfits(cfg.OutfitDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing outfits: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(outfits) {
		outfits = outfits[:*testN]
	}

	if len(outfits) == 0 {
		fmt.Println("No outfits to render.")
		os.Exit(0)
	}

	outFormat := stage.FormatPNG
	if cfg.Format == "webp" {
		outFormat = stage.FormatWebP
	}

	// Print summary
	mode := ""
	if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Dress-Up Outfit Renderer%s\n", mode)
	fmt.Printf("Catalog: %d garments, %d dolls\n", cat.Len(), len(cat.Dolls()))
	fmt.Printf("Outfits: %d, Workers: %d\n", len(outfits), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		Catalog:     cat,
		Cache:       sprite.NewCache(),
		Viewport:    cfg.Viewport(),
		OutputDir:   cfg.OutputDir,
		Format:      outFormat,
		Supersample: cfg.Supersample,
		Despeckle:   cfg.Despeckle,
		Workers:     cfg.Workers,
	}

	results := batch.Run(context.Background(), batchCfg, outfits)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(outfits))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write gallery manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

type Result = batch.Result
