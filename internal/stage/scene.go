package stage

import (
	"dressup-engine/internal/catalog"
	"dressup-engine/internal/layout"
	"dressup-engine/internal/wardrobe"
)

// Scene is one complete description of what the stage should show. Scenes
// are value snapshots: Apply keeps its own copy of everything it stages, so
// callers may keep mutating their session right after submitting one.
type Scene struct {
	Viewport layout.Viewport
	Doll     layout.DollTransform

	// Background, DollSprite and FaceSprite are sprite-loader sources: a
	// file path, a data: URL, a blob: reference, or empty for "none".
	Background string
	DollSprite string
	FaceSprite string

	// Garments must already be in back-to-front draw order.
	Garments []wardrobe.Equipped
}

// SceneFrom assembles a scene from the current wardrobe session: resolved
// garment order, the doll transform, and the selected doll's sprite sources
// looked up in the catalog.
func SceneFrom(cat *catalog.Catalog, sess *wardrobe.Session, vp layout.Viewport) Scene {
	sc := Scene{
		Viewport:   vp,
		Doll:       sess.DollTransform(),
		Background: sess.BackgroundID(),
		Garments:   sess.OrderedLayers(),
	}
	if d, ok := cat.Doll(sess.DollID()); ok {
		sc.DollSprite = d.Source
		sc.FaceSprite = d.Face
	}
	return sc
}
