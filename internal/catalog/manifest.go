package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"dressup-engine/internal/mathutil"
)

// jsonManifest matches the garment manifest schema.
type jsonManifest struct {
	Dolls    []jsonDoll    `json:"dolls"`
	Garments []jsonGarment `json:"garments"`
}

type jsonDoll struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Source string `json:"source"`
	Face   string `json:"face,omitempty"`
}

type jsonGarment struct {
	ID           string      `json:"id"`
	Name         string      `json:"name,omitempty"`
	Category     string      `json:"category"`
	Source       string      `json:"source"`
	BasePos      *[2]float64 `json:"basePos,omitempty"`
	ZIndex       *int        `json:"zIndex,omitempty"`
	LayerOrder   *int        `json:"layerOrder,omitempty"`
	Movable      *bool       `json:"movable,omitempty"`
	AllowOverlap *bool       `json:"allowOverlap,omitempty"`
	Joints       []Joint     `json:"joints,omitempty"`
}

// Load reads a garment manifest and resolves each entry against the
// category defaults and naming-convention tokens.
func Load(manifestPath string) (*Catalog, error) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", manifestPath, err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", manifestPath, err)
	}
	return c, nil
}

// Parse decodes manifest bytes. Entries without an id or source are
// skipped; duplicate ids keep the first occurrence.
func Parse(raw []byte) (*Catalog, error) {
	var m jsonManifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("catalog: decode manifest: %w", err)
	}

	c := New()
	for _, d := range m.Dolls {
		if d.ID == "" || d.Source == "" {
			continue
		}
		name := d.Name
		if name == "" {
			name = displayFromSource(d.Source)
		}
		c.AddDoll(Doll{ID: d.ID, Name: name, Source: d.Source, Face: d.Face})
	}
	for _, g := range m.Garments {
		if g.ID == "" || g.Source == "" {
			continue
		}
		c.Add(resolveGarment(g))
	}
	return c, nil
}

// resolveGarment folds manifest fields, name tokens and category defaults
// into one Garment. Explicit manifest fields win over name tokens, which
// win over the category defaults.
func resolveGarment(g jsonGarment) Garment {
	stem := g.Name
	if stem == "" {
		stem = displayFromSource(g.Source)
	}
	tokens := ParseNameTokens(stem)
	def := DefaultsFor(g.Category)

	out := Garment{
		ID:       g.ID,
		Name:     tokens.Display,
		Category: g.Category,
		Source:   g.Source,
		BasePos:  def.BasePos,
		Joints:   g.Joints,
	}

	if g.BasePos != nil {
		out.BasePos = mathutil.Vec2{X: g.BasePos[0], Y: g.BasePos[1]}
	}

	// Category slot: explicit zIndex > _c token > category default.
	switch {
	case g.ZIndex != nil:
		out.BaseZIndex = *g.ZIndex
	case tokens.CategoryOrder != nil:
		out.BaseZIndex = *tokens.CategoryOrder
	default:
		out.BaseZIndex = def.ZIndex
	}

	// Absolute pin: explicit layerOrder > _z token. Absent means the
	// garment sorts by its category slot.
	switch {
	case g.LayerOrder != nil:
		v := *g.LayerOrder
		out.LayerOrder = &v
	case tokens.LayerOrder != nil:
		out.LayerOrder = tokens.LayerOrder
	}

	if tokens.CategoryOrder != nil {
		out.CategoryOrder = tokens.CategoryOrder
	}

	out.Movable = def.Movable || tokens.Movable
	if g.Movable != nil {
		out.Movable = *g.Movable
	}
	out.AllowOverlap = def.AllowOverlap || tokens.AllowOverlap
	if g.AllowOverlap != nil {
		out.AllowOverlap = *g.AllowOverlap
	}

	return out
}

// displayFromSource derives a name stem from an asset path:
// "assets/tops/sailor_top_z30.png" → "sailor_top_z30".
func displayFromSource(source string) string {
	base := path.Base(source)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

// WriteManifest serializes a catalog back to manifest JSON. Resolved
// defaults are written explicitly so the output round-trips without the
// defaults table.
func WriteManifest(manifestPath string, c *Catalog) error {
	m := jsonManifest{}
	for _, d := range c.Dolls() {
		m.Dolls = append(m.Dolls, jsonDoll{ID: d.ID, Name: d.Name, Source: d.Source, Face: d.Face})
	}
	for _, g := range c.Garments() {
		z := g.BaseZIndex
		mv := g.Movable
		ov := g.AllowOverlap
		jg := jsonGarment{
			ID:           g.ID,
			Name:         g.Name,
			Category:     g.Category,
			Source:       g.Source,
			BasePos:      &[2]float64{g.BasePos.X, g.BasePos.Y},
			ZIndex:       &z,
			Movable:      &mv,
			AllowOverlap: &ov,
			Joints:       g.Joints,
		}
		if g.LayerOrder != nil {
			v := *g.LayerOrder
			jg.LayerOrder = &v
		}
		m.Garments = append(m.Garments, jg)
	}

	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("catalog: encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, raw, 0o644); err != nil {
		return fmt.Errorf("catalog: write %s: %w", manifestPath, err)
	}
	return nil
}
