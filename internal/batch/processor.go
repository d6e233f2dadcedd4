// Package batch renders directories of saved outfits into an image
// gallery: one encoded still per outfit plus a manifest.json index.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"dressup-engine/internal/catalog"
	"dressup-engine/internal/layout"
	"dressup-engine/internal/persist"
	"dressup-engine/internal/sprite"
	"dressup-engine/internal/stage"
	"dressup-engine/internal/wardrobe"
)

// Config holds all shared resources for a gallery run.
type Config struct {
	Catalog     *catalog.Catalog
	Cache       *sprite.Cache
	Viewport    layout.Viewport
	OutputDir   string
	Format      stage.Format
	Supersample int
	Despeckle   bool
	Workers     int
}

// Outfit is one saved state queued for rendering.
type Outfit struct {
	Name string // output stem, from the file name
	Path string
}

// Result holds the outcome of rendering one outfit.
type Result struct {
	Name     string
	Image    string
	DollID   string
	Garments int
	Success  bool
	Error    string
}

// ListOutfits finds saved outfit files (*.json) under dir. os.ReadDir
// already sorts by name, which fixes the gallery order.
func ListOutfits(dir string) ([]Outfit, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: list outfits %s: %w", dir, err)
	}

	var outfits []Outfit
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		outfits = append(outfits, Outfit{
			Name: strings.TrimSuffix(e.Name(), ".json"),
			Path: filepath.Join(dir, e.Name()),
		})
	}
	return outfits, nil
}

// Run renders all outfits using a worker pool, printing progress every
// two seconds. Cancelling ctx abandons work not yet started; those
// results carry the context error.
func Run(ctx context.Context, cfg Config, outfits []Outfit) []Result {
	total := len(outfits)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f outfits/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Name: outfits[idx].Name, Error: err.Error()}
					continue
				}
				results[idx] = renderOutfit(ctx, cfg, outfits[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range outfits {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

// renderOutfit restores one saved session, composites it, and writes the
// encoded square capture. The outfit file is only ever read.
func renderOutfit(ctx context.Context, cfg Config, o Outfit) Result {
	sess := wardrobe.NewSession(cfg.Catalog, persist.NewFileStore(o.Path))
	if err := sess.Restore(); err != nil {
		return Result{Name: o.Name, Error: err.Error()}
	}

	st := stage.New(stage.Options{Cache: cfg.Cache, Workers: 2})
	defer st.Close()

	if err := st.Apply(ctx, stage.SceneFrom(cfg.Catalog, sess, cfg.Viewport)); err != nil {
		return Result{Name: o.Name, Error: err.Error()}
	}

	data, err := st.Screenshot(stage.ScreenshotOptions{
		Format:      cfg.Format,
		Supersample: cfg.Supersample,
		Despeckle:   cfg.Despeckle,
	})
	if err != nil {
		return Result{Name: o.Name, Error: fmt.Sprintf("screenshot: %v", err)}
	}

	img := o.Name + Ext(cfg.Format)
	outPath := filepath.Join(cfg.OutputDir, img)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return Result{Name: o.Name, Error: err.Error()}
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return Result{Name: o.Name, Error: err.Error()}
	}

	return Result{
		Name:     o.Name,
		Image:    img,
		DollID:   sess.DollID(),
		Garments: sess.Len(),
		Success:  true,
	}
}

// Ext is the file extension for a screenshot format.
func Ext(f stage.Format) string {
	if f == stage.FormatWebP {
		return ".webp"
	}
	return ".png"
}
