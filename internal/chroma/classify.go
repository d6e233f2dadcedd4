package chroma

import "github.com/chewxy/math32"

// Classifier signal shaping. Hue proximity is full within hueNear degrees
// of the key hue and gone past hueFar; green dominance saturates at
// domFull; saturation ramps over [satLow, satHigh].
const (
	hueNear = 30.0
	hueFar  = 60.0
	domFull = 0.30
	satLow  = 0.20
	satHigh = 0.60

	// Skin protection: as R rises through [skinLow, skinHigh] the green
	// score is scaled down by up to skinStrength.
	skinLow      = 0.35
	skinHigh     = 0.55
	skinStrength = 0.90

	// Saturated pure green is keyed even when the soft signals disagree.
	hardGreenScore = 0.95

	// Fraction of removed green returned to R and B during spill cleanup.
	spillBoost = 0.20
)

// keyShader is the compiled form of KeyParams: the key hue is derived
// once, then reused for every pixel of a pass.
type keyShader struct {
	KeyParams
	keyHue float32
}

func (p KeyParams) compile() keyShader {
	h, _, _ := rgbToHSV(p.Key.R, p.Key.G, p.Key.B)
	return keyShader{KeyParams: p, keyHue: h}
}

// Classify scores one color against the key. green is the composite key
// score in [0,1] after skin protection; skin is the protection strength
// that was applied, needed again by spill suppression.
func (p KeyParams) Classify(r, g, b float32) (green, skin float32) {
	return p.compile().classify(r, g, b)
}

func (s keyShader) classify(r, g, b float32) (green, skin float32) {
	// Signal A: straight RGB distance to the key.
	dr, dg, db := r-s.Key.R, g-s.Key.G, b-s.Key.B
	dist := math32.Sqrt(dr*dr + dg*dg + db*db)
	score := 1 - smoothstep32(s.Threshold, s.Threshold+s.Smoothing, dist)

	// Signal B: hue proximity × green dominance × saturation. Catches
	// darker and desaturated key variants the distance check misses.
	h, sat, _ := rgbToHSV(r, g, b)
	dom := g - math32.Max(r, b)
	if dom > 0 {
		prox := 1 - smoothstep32(hueNear, hueFar, hueDist(h, s.keyHue))
		sig := prox * smoothstep32(0, domFull, dom) * smoothstep32(satLow, satHigh, sat)
		score = math32.Max(score, sig)
	}

	// Signal C: saturated pure green, scored flat.
	if g > 0.7 && r < 0.4 && b < 0.4 {
		score = math32.Max(score, hardGreenScore)
	}

	skin = skinStrength * smoothstep32(skinLow, skinHigh, r)
	return score * (1 - skin), skin
}

// Shade runs the full chroma-key filter on one pixel: classify, map the
// score to an alpha multiplier over the band, then suppress green spill
// on partially keyed pixels.
func (p KeyParams) Shade(px RGBA) RGBA {
	return p.compile().shade(px)
}

func (s keyShader) shade(px RGBA) RGBA {
	green, skin := s.classify(px.R, px.G, px.B)
	aMul := 1 - smoothstep32(s.Band[0], s.Band[1], green)

	out := px
	out.A = px.A * aMul

	if s.Spill > 0 && aMul < 1 {
		if dom := px.G - math32.Max(px.R, px.B); dom > 0 {
			amount := dom * s.Spill * (1 - aMul) * (1 - skin)
			boost := amount * spillBoost
			out.G = clamp01(px.G - amount)
			out.R = clamp01(px.R + boost)
			out.B = clamp01(px.B + boost)
		}
	}
	return out
}

// rgbToHSV converts [0,1] RGB to hue in degrees, saturation and value.
func rgbToHSV(r, g, b float32) (h, s, v float32) {
	max := math32.Max(math32.Max(r, g), b)
	min := math32.Min(math32.Min(r, g), b)
	v = max
	if max <= 0 || max == min {
		return 0, 0, v
	}
	d := max - min
	s = d / max
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = 2 + (b-r)/d
	case b:
		h = 4 + (r-g)/d
	}
	h *= 60
	return h, s, v
}

// hueDist is the wrapped angular distance between two hues in degrees.
func hueDist(a, b float32) float32 {
	d := math32.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// smoothstep32 is the GLSL Hermite ramp: 0 at or below e0, 1 at or above
// e1. A degenerate band steps at e0.
func smoothstep32(e0, e1, x float32) float32 {
	if e1 <= e0 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := (x - e0) / (e1 - e0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
