package wardrobe

import "sort"

// EffectiveLayer is the resolver's primary sort key: the explicit layer
// pin when present, the category slot otherwise, shifted by the manual
// bring-to-front bias.
func (e Equipped) EffectiveLayer() int {
	base := e.BaseZIndex
	if e.LayerOrder != nil {
		base = *e.LayerOrder
	}
	return base + e.Adjust.LayerBias
}

// OrderedLayers returns the worn set back-to-front: ascending effective
// layer, ties broken by equip order so later-equipped items of equal
// priority draw on top. The sort is stable over the equip-ordered item
// slice, so equal keys keep insertion order by construction.
func (s *State) OrderedLayers() []Equipped {
	out := s.Items()
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := out[i].EffectiveLayer(), out[j].EffectiveLayer()
		if li != lj {
			return li < lj
		}
		return out[i].EquipOrder < out[j].EquipOrder
	})
	return out
}
