package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameTokens(t *testing.T) {
	intp := func(n int) *int { return &n }

	tests := []struct {
		stem string
		want NameTokens
	}{
		{"sailor_top", NameTokens{Display: "sailor_top"}},
		{"ribbon_z70", NameTokens{Display: "ribbon", LayerOrder: intp(70)}},
		{"belt_c24", NameTokens{Display: "belt", CategoryOrder: intp(24)}},
		{"star_pin_movable", NameTokens{Display: "star_pin", Movable: true}},
		{"halo_overlap", NameTokens{Display: "halo", AllowOverlap: true}},
		{"wand_z75_movable_overlap", NameTokens{
			Display: "wand", LayerOrder: intp(75), Movable: true, AllowOverlap: true,
		}},
		// Tokens may sit mid-name; the surrounding segments rejoin.
		{"star_z70_pin", NameTokens{Display: "star_pin", LayerOrder: intp(70)}},
		{"cape_Z41", NameTokens{Display: "cape", LayerOrder: intp(41)}},
		// A bare "z" with no digits is part of the name, not a token.
		{"blaz_er", NameTokens{Display: "blaz_er"}},
		{"", NameTokens{Display: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			got := ParseNameTokens(tt.stem)
			assert.Equal(t, tt.want.Display, got.Display)
			assert.Equal(t, tt.want.Movable, got.Movable)
			assert.Equal(t, tt.want.AllowOverlap, got.AllowOverlap)
			if tt.want.LayerOrder == nil {
				assert.Nil(t, got.LayerOrder)
			} else {
				require.NotNil(t, got.LayerOrder)
				assert.Equal(t, *tt.want.LayerOrder, *got.LayerOrder)
			}
			if tt.want.CategoryOrder == nil {
				assert.Nil(t, got.CategoryOrder)
			} else {
				require.NotNil(t, got.CategoryOrder)
				assert.Equal(t, *tt.want.CategoryOrder, *got.CategoryOrder)
			}
		})
	}
}

func TestDefaultsFor(t *testing.T) {
	hat := DefaultsFor("hat")
	assert.Equal(t, 62, hat.ZIndex)
	assert.False(t, hat.Movable)

	acc := DefaultsFor("accessory")
	assert.Equal(t, 70, acc.ZIndex)
	assert.True(t, acc.Movable)
	assert.True(t, acc.AllowOverlap)

	// Unknown categories fall back to the mid-stack slot.
	unk := DefaultsFor("cybernetic_arm")
	assert.Equal(t, 50, unk.ZIndex)
	assert.False(t, unk.Movable)

	assert.True(t, KnownCategory("dress"))
	assert.False(t, KnownCategory("cybernetic_arm"))
}

const testManifest = `{
  "dolls": [
    {"id": "doll-a", "source": "assets/dolls/mika.png", "face": "assets/dolls/mika_face.png"}
  ],
  "garments": [
    {"id": "top-1", "name": "sailor_top", "category": "top", "source": "assets/tops/sailor.png"},
    {"id": "pin-1", "category": "accessory", "source": "assets/acc/star_z70_pin.png"},
    {"id": "belt-1", "name": "belt_c24", "category": "bottom", "source": "assets/belts/belt.png"},
    {"id": "hat-1", "name": "beret", "category": "hat", "source": "assets/hats/beret.png",
     "zIndex": 90, "movable": true, "basePos": [10, -20]},
    {"id": "top-1", "name": "duplicate", "category": "top", "source": "assets/tops/dup.png"},
    {"id": "", "category": "top", "source": "assets/tops/nameless.png"},
    {"id": "no-src", "category": "top", "source": ""}
  ]
}`

func TestParseManifest(t *testing.T) {
	c, err := Parse([]byte(testManifest))
	require.NoError(t, err)

	// Malformed and duplicate entries are dropped.
	assert.Equal(t, 4, c.Len())

	d, ok := c.Doll("doll-a")
	require.True(t, ok)
	assert.Equal(t, "mika", d.Name)
	assert.Equal(t, "assets/dolls/mika_face.png", d.Face)

	top, ok := c.Garment("top-1")
	require.True(t, ok)
	assert.Equal(t, "sailor_top", top.Name)
	assert.Equal(t, 30, top.BaseZIndex) // category default
	assert.Nil(t, top.LayerOrder)
	assert.False(t, top.Movable)

	// Name omitted: tokens come from the source stem.
	pin, ok := c.Garment("pin-1")
	require.True(t, ok)
	assert.Equal(t, "star_pin", pin.Name)
	require.NotNil(t, pin.LayerOrder)
	assert.Equal(t, 70, *pin.LayerOrder)
	assert.True(t, pin.Movable, "accessory default")
	assert.True(t, pin.AllowOverlap)

	// _c token replaces the category default slot.
	belt, ok := c.Garment("belt-1")
	require.True(t, ok)
	assert.Equal(t, "belt", belt.Name)
	assert.Equal(t, 24, belt.BaseZIndex)
	assert.Nil(t, belt.LayerOrder)

	// Explicit manifest fields win over both tokens and defaults.
	hat, ok := c.Garment("hat-1")
	require.True(t, ok)
	assert.Equal(t, 90, hat.BaseZIndex)
	assert.True(t, hat.Movable)
	assert.Equal(t, 10.0, hat.BasePos.X)
	assert.Equal(t, -20.0, hat.BasePos.Y)
}

func TestParseManifestBadJSON(t *testing.T) {
	_, err := Parse([]byte(`{"garments": [`))
	assert.Error(t, err)
}

func TestManifestRoundTrip(t *testing.T) {
	c, err := Parse([]byte(testManifest))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, WriteManifest(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, c.Len(), got.Len())

	// Resolved fields survive the round trip even though the defaults
	// table never sees the rewritten file.
	for _, want := range c.Garments() {
		g, ok := got.Garment(want.ID)
		require.True(t, ok, want.ID)
		assert.Equal(t, want.Name, g.Name)
		assert.Equal(t, want.BaseZIndex, g.BaseZIndex, want.ID)
		assert.Equal(t, want.Movable, g.Movable)
		assert.Equal(t, want.AllowOverlap, g.AllowOverlap)
		assert.Equal(t, want.BasePos, g.BasePos)
	}
}

func TestByCategory(t *testing.T) {
	c := New()
	c.Add(Garment{ID: "a", Category: "top"})
	c.Add(Garment{ID: "b", Category: "hat"})
	c.Add(Garment{ID: "c", Category: "top"})

	tops := c.ByCategory("top")
	require.Len(t, tops, 2)
	assert.Equal(t, "a", tops[0].ID)
	assert.Equal(t, "c", tops[1].ID)
	assert.Empty(t, c.ByCategory("shoes"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
