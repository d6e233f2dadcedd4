package stage

import (
	"context"
	"image"
	"math"
	"sync"

	"github.com/anthonynsimon/bild/adjust"

	"dressup-engine/internal/layout"
	"dressup-engine/internal/sprite"
	"dressup-engine/internal/wardrobe"
)

// placeholderSide is the raster size fallback shapes are drawn at. The
// placement math normalizes by source height, so this picks resolution,
// not on-screen size.
const placeholderSide = 256

// spriteLayer is one staged bitmap plus the placement inputs frozen from
// the scene. Placement itself happens at render time, so preview and
// screenshot always go through the same mapper.
type spriteLayer struct {
	img  *image.NRGBA
	item layout.Item
}

// layerSet is everything one committed scene draws: an optional background
// plus sprites in back-to-front order (doll, face, then garments).
type layerSet struct {
	background *image.NRGBA
	sprites    []spriteLayer
}

// buildLayers loads and filters every bitmap sc needs into a detached set.
// Garments load on a small worker pool; a bitmap that fails to resolve
// falls back to a category placeholder so a worn layer is never blank. A
// missing background simply leaves that group empty.
func (st *Stage) buildLayers(ctx context.Context, sc Scene) (*layerSet, error) {
	set := &layerSet{}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sc.Background != "" {
		set.background = st.cache.Resolve(sc.Background)
	}
	if doll, ok := st.dollLayer(sc); ok {
		set.sprites = append(set.sprites, doll)
	}
	if face, ok := st.faceLayer(sc); ok {
		set.sprites = append(set.sprites, face)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	garments := make([]spriteLayer, len(sc.Garments))
	workers := st.workers
	if workers > len(sc.Garments) {
		workers = len(sc.Garments)
	}
	if workers > 0 {
		jobs := make(chan int, workers*2)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					if ctx.Err() != nil {
						continue
					}
					garments[i] = st.garmentLayer(sc.Garments[i])
				}
			}()
		}
		for i := range sc.Garments {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set.sprites = append(set.sprites, garments...)
	return set, nil
}

// dollLayer stages the doll body sprite. An empty source means no doll is
// selected; a failing one degrades to a placeholder block.
func (st *Stage) dollLayer(sc Scene) (spriteLayer, bool) {
	if sc.DollSprite == "" {
		return spriteLayer{}, false
	}
	img := st.cache.Resolve(sc.DollSprite)
	if img == nil {
		img = sprite.Placeholder("doll", placeholderSide)
	} else {
		img = st.chain.Apply(img)
	}
	return spriteLayer{
		img:  img,
		item: layout.Item{SourceHeight: float64(img.Bounds().Dy())},
	}, true
}

// faceLayer stages the optional face overlay: keyed like any bitmap, then
// circular-masked. It shares the doll's frame, so it places exactly like
// the body. Unlike the body it has no placeholder; a failed load omits it.
func (st *Stage) faceLayer(sc Scene) (spriteLayer, bool) {
	if sc.FaceSprite == "" {
		return spriteLayer{}, false
	}
	img := st.cache.Resolve(sc.FaceSprite)
	if img == nil {
		return spriteLayer{}, false
	}
	img = sprite.ApplyCircleMask(st.chain.Apply(img))
	return spriteLayer{
		img:  img,
		item: layout.Item{SourceHeight: float64(img.Bounds().Dy())},
	}, true
}

// garmentLayer stages one worn garment: resolve, chroma chain, then hue
// rotation. Placeholders skip the chain (vector art has nothing to key)
// and keep their category color instead of the hue adjustment.
func (st *Stage) garmentLayer(g wardrobe.Equipped) spriteLayer {
	img := st.cache.Resolve(g.Source)
	if img == nil {
		img = sprite.Placeholder(g.Category, placeholderSide)
	} else {
		img = st.chain.Apply(img)
		if g.Adjust.Hue != 0 {
			img = sprite.ToNRGBA(adjust.Hue(img, int(math.Round(g.Adjust.Hue))))
		}
	}
	return spriteLayer{
		img: img,
		item: layout.Item{
			BasePos:      g.BasePos,
			Movable:      g.Movable,
			FreeOffset:   g.FreeOffset,
			OffsetX:      g.Adjust.OffsetX,
			OffsetY:      g.Adjust.OffsetY,
			Scale:        g.Adjust.Scale,
			Rotation:     g.Adjust.Rotation,
			SourceHeight: float64(img.Bounds().Dy()),
		},
	}
}
