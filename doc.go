// Package dressup is the compositing engine behind a layered 2D dress-up
// game: a doll sprite, a background, and any number of garment sprites are
// stacked into a deterministic back-to-front scene, chroma-keyed to remove
// solid-color capture backgrounds, and flattened into a still image.
//
// The engine itself lives in internal packages:
//
//   - internal/catalog: garment definitions and category defaults
//   - internal/wardrobe: the equip state machine and layer order resolver
//   - internal/layout: viewport geometry and logical→pixel placement
//   - internal/chroma: the chroma-key and edge-trim filter pipeline
//   - internal/sprite: bitmap loading, caching, and vector placeholders
//   - internal/stage: the compositor and screenshot surface
//   - internal/gesture: the drag/pinch/twist adjustment controller
//   - internal/persist: saved-state shapes and the persistence gateway
//   - internal/batch: worker-pool rendering of saved-outfit directories
//   - internal/config: settings file and flag plumbing for the drivers
//   - internal/mathutil: the 2D vector and affine math under all of it
//
// Command-line drivers live under cmd/: dressup-render turns a directory
// of saved outfits into an image gallery, chromakey exercises the filter
// pipeline on a single image, and inspectoutfit dumps resolved layer
// order and placements.
//
// This root package carries only cross-cutting plumbing shared by every
// subpackage, currently the logger configuration.
package dressup
