package layout

// DollTransform positions the whole character within the background
// square. X and Y are percentages (50,50 is the square center); Scale is
// a plain multiplier. The gesture controller clamps these, not the type.
type DollTransform struct {
	X     float64
	Y     float64
	Scale float64
}

func DefaultDollTransform() DollTransform {
	return DollTransform{X: 50, Y: 50, Scale: 1}
}
