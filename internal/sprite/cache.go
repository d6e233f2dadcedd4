package sprite

import (
	"image"
	"sync"

	dressup "dressup-engine"
)

// Cache resolves sources to decoded bitmaps. Failed loads are cached as
// nil so a broken reference costs one attempt, not one per frame.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	blobs map[string][]byte
}

type cacheEntry struct {
	img    *image.NRGBA
	loaded bool // load attempted; img may still be nil
}

func NewCache() *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		blobs: make(map[string][]byte),
	}
}

// AddBlob registers in-memory encoded bytes (a user upload) and returns
// the source reference to store in the catalog. Re-registering an id
// replaces the bytes and invalidates any cached decode.
func (c *Cache) AddBlob(id string, data []byte) string {
	ref := "blob:" + id
	c.mu.Lock()
	c.blobs[ref] = data
	delete(c.items, ref)
	c.mu.Unlock()
	return ref
}

// Put seeds the cache with an already-decoded bitmap.
func (c *Cache) Put(src string, img *image.NRGBA) {
	c.mu.Lock()
	c.items[src] = &cacheEntry{img: img, loaded: true}
	c.mu.Unlock()
}

// Resolve loads and caches the bitmap for src. Returns nil when the
// source cannot be decoded; the failure is logged once and remembered.
func (c *Cache) Resolve(src string) *image.NRGBA {
	c.mu.RLock()
	if e, ok := c.items[src]; ok {
		c.mu.RUnlock()
		return e.img
	}
	blob := c.blobs[src]
	c.mu.RUnlock()

	var img *image.NRGBA
	var err error
	if blob != nil {
		img, err = Decode(blob)
	} else {
		img, err = Load(src)
	}
	if err != nil {
		dressup.Logger().Warn("sprite: load failed", "src", src, "err", err)
	}

	c.mu.Lock()
	if e, ok := c.items[src]; ok {
		c.mu.Unlock()
		return e.img
	}
	c.items[src] = &cacheEntry{img: img, loaded: true}
	c.mu.Unlock()
	return img
}
