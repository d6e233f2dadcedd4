package chroma

// Shade applies the edge trim to one pixel: alpha is multiplied by a
// smoothstep of itself, so sub-threshold fringe vanishes and solid
// interior pixels pass through untouched.
func (p TrimParams) Shade(px RGBA) RGBA {
	out := px
	out.A = px.A * smoothstep32(p.Threshold, p.Threshold+p.Softness, px.A)
	return out
}
