// Package wardrobe holds the equip state machine: which garments are
// worn, in what order they were put on, and the per-item adjustments.
// Pure data and transition logic; rendering never happens here.
package wardrobe

import (
	"dressup-engine/internal/catalog"
	"dressup-engine/internal/mathutil"
)

// Equipped is one worn garment. FreeOffset is the drop point of a movable
// item in percent of the background square; zero means "anchored to the
// doll". Adjustments persist across re-renders and die with the item.
type Equipped struct {
	catalog.Garment
	EquipOrder int64
	FreeOffset mathutil.Vec2
	Adjust     Adjustment
}

// State is the set of currently worn garments plus the equip counter.
// The item slice stays ordered by EquipOrder (append-only, removals keep
// order), which the resolver relies on for stable ties. Not safe for
// concurrent use; the engine runs single-threaded over it.
type State struct {
	items   []Equipped
	counter int64
}

func NewState() *State { return &State{} }

// Equip puts a garment on. Exclusive categories replace their sibling;
// overlap-friendly categories replace only a same-id instance. Never
// fails: catalog validity is the caller's concern.
func (s *State) Equip(g catalog.Garment) {
	if g.AllowOverlap {
		s.removeIf(func(e Equipped) bool { return e.ID == g.ID })
	} else {
		s.removeIf(func(e Equipped) bool { return e.Category == g.Category })
	}
	s.items = append(s.items, Equipped{
		Garment:    g,
		EquipOrder: s.counter,
		Adjust:     DefaultAdjustment(),
	})
	s.counter++
}

// Unequip removes every item of a category. No-op when none is worn.
func (s *State) Unequip(category string) {
	s.removeIf(func(e Equipped) bool { return e.Category == category })
}

// ResetAll strips the doll down to the reserved underwear categories.
// The equip counter keeps running.
func (s *State) ResetAll() {
	s.removeIf(func(e Equipped) bool {
		return e.Category != catalog.CategoryUnderwearTop &&
			e.Category != catalog.CategoryUnderwearBottom
	})
}

// ResetAllIncludingUnderwear clears everything and restarts the counter.
func (s *State) ResetAllIncludingUnderwear() {
	s.items = nil
	s.counter = 0
}

// UpdateAdjustment merges a partial patch into the matching item.
// Reports false when the id is not equipped.
func (s *State) UpdateAdjustment(id string, p AdjustPatch) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			p.merge(&s.items[i])
			return true
		}
	}
	return false
}

// Item returns a copy of the equipped garment with the given id.
func (s *State) Item(id string) (Equipped, bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i], true
		}
	}
	return Equipped{}, false
}

// Items returns the worn set in equip order. The slice is a copy; the
// adjustments inside are values.
func (s *State) Items() []Equipped {
	return append([]Equipped(nil), s.items...)
}

func (s *State) Len() int { return len(s.items) }

// Counter exposes the next equip order value, mostly for tests and
// session restore.
func (s *State) Counter() int64 { return s.counter }

// restore reinstates a saved item verbatim, keeping its original equip
// order, and bumps the counter past it.
func (s *State) restore(e Equipped) {
	s.items = append(s.items, e)
	if e.EquipOrder >= s.counter {
		s.counter = e.EquipOrder + 1
	}
}

func (s *State) removeIf(match func(Equipped) bool) {
	kept := s.items[:0]
	for _, e := range s.items {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	// Zero the tail so dropped adjustments don't linger in the backing array.
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = Equipped{}
	}
	s.items = kept
}
