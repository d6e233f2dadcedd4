// Package chroma removes solid-color backgrounds from sprite bitmaps: an
// HSV-based chroma-key classifier, an edge alpha trim, and a despeckle
// pass for leftover pixel islands. The per-pixel math is pure float32 so
// it can be verified against literal pixel values.
package chroma

// RGB is a float32 color in [0,1], non-premultiplied.
type RGB struct {
	R, G, B float32
}

// RGBA is one working pixel. Color stays non-premultiplied; keying folds
// into A and the compositor multiplies at draw time.
type RGBA struct {
	R, G, B, A float32
}

// KeyParams configures the chroma-key classifier. Values are immutable;
// build a new set to change one.
type KeyParams struct {
	// Key is the background color to remove.
	Key RGB
	// Threshold is the RGB distance below which a pixel counts as key.
	Threshold float32
	// Smoothing widens the distance edge so keying fades instead of snaps.
	Smoothing float32
	// Spill sets the strength of green-fringe desaturation, 0 disables.
	Spill float32
	// Band maps the green score to an alpha multiplier: scores at or
	// below Band[0] keep full alpha, at or above Band[1] go transparent.
	Band [2]float32
}

func DefaultKeyParams() KeyParams {
	return KeyParams{
		Key:       RGB{R: 0, G: 1, B: 0},
		Threshold: 0.40,
		Smoothing: 0.10,
		Spill:     0.50,
		Band:      [2]float32{0.30, 0.70},
	}
}

// TrimParams configures the edge alpha trim that cleans anti-aliased
// fringe left after keying: alpha at or below Threshold goes fully
// transparent, with a Softness-wide smoothstep band above it.
type TrimParams struct {
	Threshold float32
	Softness  float32
}

func DefaultTrimParams() TrimParams {
	return TrimParams{Threshold: 0.20, Softness: 0.10}
}

// DespeckleParams configures removal of disconnected alpha islands.
// Clusters below MinRatio of all opaque pixels, or below MinPixels
// scaled by Resolution², are zeroed. MinRatio <= 0 disables the pass.
type DespeckleParams struct {
	MinRatio  float64
	MinPixels int
	// Resolution tracks the device pixel ratio so the absolute pixel
	// floor stays constant in CSS units on high-DPI output.
	Resolution float64
}

func DefaultDespeckleParams() DespeckleParams {
	return DespeckleParams{MinRatio: 0.005, MinPixels: 4, Resolution: 1}
}
