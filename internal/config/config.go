// Package config holds the JSON settings file and flag-override plumbing
// shared by the command-line drivers.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"dressup-engine/internal/layout"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	ManifestPath string `json:"manifest_path"`
	OutfitDir    string `json:"outfit_dir"`
	OutputDir    string `json:"output_dir"`

	// Viewport geometry the renders assume
	ViewportWidth  float64 `json:"viewport_width"`
	ViewportHeight float64 `json:"viewport_height"`
	LeftInset      float64 `json:"left_inset"`
	RightInset     float64 `json:"right_inset"`
	PixelRatio     float64 `json:"pixel_ratio"`

	// Render settings
	Format      string `json:"format"` // png | webp
	Supersample int    `json:"supersample"`
	Despeckle   bool   `json:"despeckle"`
	Workers     int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Manifest  string
	OutfitDir string
	OutputDir string
	Format    string
	Workers   int
}

// Resolve fills in any empty fields with detected or default values.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Manifest != "" {
		c.ManifestPath = flags.Manifest
	}
	if flags.OutfitDir != "" {
		c.OutfitDir = flags.OutfitDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.ManifestPath == "" {
		c.ManifestPath = detectManifest()
	}
	if c.OutfitDir == "" {
		c.OutfitDir = "outfits"
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}

	// Defaults for viewport and render settings
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = 1280
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = 720
	}
	if c.PixelRatio <= 0 {
		c.PixelRatio = 1
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format != "webp" {
		c.Format = "png"
	}
	if c.Supersample < 1 {
		c.Supersample = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Viewport builds the layout viewport these settings describe.
func (c Config) Viewport() layout.Viewport {
	return layout.Viewport{
		Width:      c.ViewportWidth,
		Height:     c.ViewportHeight,
		LeftInset:  c.LeftInset,
		RightInset: c.RightInset,
		PixelRatio: c.PixelRatio,
	}
}

// detectManifest probes the places a wardrobe manifest usually sits.
func detectManifest() string {
	candidates := []string{
		"wardrobe.json",
		filepath.Join("assets", "wardrobe.json"),
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(cwd), "wardrobe.json"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return candidates[0]
}
