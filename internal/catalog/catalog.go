// Package catalog defines the garment and doll definitions that drive the
// rest of the engine: category defaults, the file-name token convention
// and manifest I/O.
package catalog

// Doll is a base figure garments are layered onto. Face optionally names
// a secondary overlay source composited above hair-back layers.
type Doll struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Source string `json:"source"`
	Face   string `json:"face,omitempty"`
}

// Catalog holds the parsed manifest. Garments keep manifest order, which
// the UI uses for shelf listing; lookups go through the id index.
type Catalog struct {
	garments []Garment
	dolls    []Doll
	byID     map[string]int
	dollByID map[string]int
}

func New() *Catalog {
	return &Catalog{
		byID:     make(map[string]int),
		dollByID: make(map[string]int),
	}
}

// Add appends a garment, keeping the first entry when ids collide.
func (c *Catalog) Add(g Garment) {
	if _, ok := c.byID[g.ID]; ok {
		return
	}
	c.byID[g.ID] = len(c.garments)
	c.garments = append(c.garments, g)
}

func (c *Catalog) AddDoll(d Doll) {
	if _, ok := c.dollByID[d.ID]; ok {
		return
	}
	c.dollByID[d.ID] = len(c.dolls)
	c.dolls = append(c.dolls, d)
}

// Garment returns the definition for id.
func (c *Catalog) Garment(id string) (Garment, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Garment{}, false
	}
	return c.garments[i], true
}

func (c *Catalog) Doll(id string) (Doll, bool) {
	i, ok := c.dollByID[id]
	if !ok {
		return Doll{}, false
	}
	return c.dolls[i], true
}

// Garments returns all garments in manifest order. The slice is shared;
// callers must not mutate it.
func (c *Catalog) Garments() []Garment { return c.garments }

func (c *Catalog) Dolls() []Doll { return c.dolls }

func (c *Catalog) Len() int { return len(c.garments) }

// ByCategory returns garments of one category in manifest order.
func (c *Catalog) ByCategory(category string) []Garment {
	var out []Garment
	for _, g := range c.garments {
		if g.Category == category {
			out = append(out, g)
		}
	}
	return out
}
