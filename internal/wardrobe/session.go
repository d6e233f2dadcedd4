package wardrobe

import (
	"fmt"
	"time"

	dressup "dressup-engine"
	"dressup-engine/internal/catalog"
	"dressup-engine/internal/layout"
	"dressup-engine/internal/mathutil"
	"dressup-engine/internal/persist"
)

// Session owns one dressing session: the equip state, the doll transform
// and the doll/background selection, backed by a persistence gateway.
// Every mutation pushes a full snapshot through the gateway, last write
// wins. Storage failures are logged and swallowed: a broken save must
// never break dressing.
type Session struct {
	cat   *catalog.Catalog
	state *State
	doll  layout.DollTransform

	dollID       string
	backgroundID string

	gw persist.Gateway
}

func NewSession(cat *catalog.Catalog, gw persist.Gateway) *Session {
	return &Session{
		cat:   cat,
		state: NewState(),
		doll:  layout.DefaultDollTransform(),
		gw:    gw,
	}
}

// Equip looks the id up in the catalog and puts it on.
func (s *Session) Equip(id string) error {
	g, ok := s.cat.Garment(id)
	if !ok {
		return fmt.Errorf("wardrobe: unknown garment %q", id)
	}
	s.state.Equip(g)
	s.autosave()
	return nil
}

func (s *Session) Unequip(category string) {
	s.state.Unequip(category)
	s.autosave()
}

func (s *Session) ResetAll() {
	s.state.ResetAll()
	s.autosave()
}

func (s *Session) ResetAllIncludingUnderwear() {
	s.state.ResetAllIncludingUnderwear()
	s.autosave()
}

// UpdateAdjustment merges a partial patch into the equipped item and
// persists when something matched.
func (s *Session) UpdateAdjustment(id string, p AdjustPatch) bool {
	if !s.state.UpdateAdjustment(id, p) {
		return false
	}
	s.autosave()
	return true
}

func (s *Session) SetDollTransform(dt layout.DollTransform) {
	s.doll = dt
	s.autosave()
}

func (s *Session) DollTransform() layout.DollTransform { return s.doll }

// SetDoll selects the base figure. The id must exist in the catalog.
func (s *Session) SetDoll(id string) error {
	if _, ok := s.cat.Doll(id); !ok {
		return fmt.Errorf("wardrobe: unknown doll %q", id)
	}
	s.dollID = id
	s.autosave()
	return nil
}

// SetBackground selects the backdrop. Backgrounds live in the external
// asset store, so the id is opaque here.
func (s *Session) SetBackground(id string) {
	s.backgroundID = id
	s.autosave()
}

func (s *Session) DollID() string       { return s.dollID }
func (s *Session) BackgroundID() string { return s.backgroundID }

func (s *Session) OrderedLayers() []Equipped { return s.state.OrderedLayers() }
func (s *Session) Items() []Equipped         { return s.state.Items() }
func (s *Session) Item(id string) (Equipped, bool) {
	return s.state.Item(id)
}
func (s *Session) Len() int { return s.state.Len() }

// Snapshot serializes the session for persistence.
func (s *Session) Snapshot() persist.State {
	out := persist.State{
		SavedAt:      time.Now().UTC(),
		DollID:       s.dollID,
		BackgroundID: s.backgroundID,
		Doll:         persist.DollPose{X: s.doll.X, Y: s.doll.Y, Scale: s.doll.Scale},
	}
	for _, e := range s.state.Items() {
		out.Items = append(out.Items, persist.SavedItem{
			ID:          e.ID,
			Category:    e.Category,
			EquipOrder:  e.EquipOrder,
			OffsetX:     e.Adjust.OffsetX,
			OffsetY:     e.Adjust.OffsetY,
			Scale:       e.Adjust.Scale,
			Rotation:    e.Adjust.Rotation,
			Hue:         e.Adjust.Hue,
			LayerBias:   e.Adjust.LayerBias,
			FreeOffsetX: e.FreeOffset.X,
			FreeOffsetY: e.FreeOffset.Y,
		})
	}
	return out
}

// Restore rebuilds the session from the gateway. Items are reinstated
// verbatim in saved order, keeping their original equip orders; garments
// no longer in the catalog are skipped with a warning. A missing or
// unreadable save leaves the session fresh.
func (s *Session) Restore() error {
	if s.gw == nil {
		return nil
	}
	st, ok, err := s.gw.Load()
	if err != nil {
		return fmt.Errorf("wardrobe: restore: %w", err)
	}
	if !ok {
		return nil
	}

	s.state = NewState()
	for _, it := range st.Items {
		g, found := s.cat.Garment(it.ID)
		if !found {
			dressup.Logger().Warn("wardrobe: saved garment missing from catalog", "id", it.ID)
			continue
		}
		scale := it.Scale
		if scale == 0 {
			scale = 1
		}
		s.state.restore(Equipped{
			Garment:    g,
			EquipOrder: it.EquipOrder,
			FreeOffset: mathutil.Vec2{X: it.FreeOffsetX, Y: it.FreeOffsetY},
			Adjust: Adjustment{
				OffsetX:   it.OffsetX,
				OffsetY:   it.OffsetY,
				Scale:     scale,
				Rotation:  it.Rotation,
				Hue:       it.Hue,
				LayerBias: it.LayerBias,
			},
		})
	}

	// A pose with zero scale is a document without one.
	if st.Doll.Scale != 0 {
		s.doll = layout.DollTransform{X: st.Doll.X, Y: st.Doll.Y, Scale: st.Doll.Scale}
	} else {
		s.doll = layout.DefaultDollTransform()
	}
	s.dollID = st.DollID
	s.backgroundID = st.BackgroundID
	return nil
}

func (s *Session) autosave() {
	if s.gw == nil {
		return
	}
	if err := s.gw.Save(s.Snapshot()); err != nil {
		dressup.Logger().Warn("wardrobe: autosave failed", "err", err)
	}
}
