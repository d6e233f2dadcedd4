package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// Garment names and file stems may carry layering tokens appended by the
// authoring convention: "ribbon_z70" pins the draw order to 70,
// "belt_c24" replaces the category's default z-index with 24, and the
// "_movable" / "_overlap" flags switch placement behavior. Tokens are
// stripped from the display name.
var (
	layerTokenRE    = regexp.MustCompile(`(?i)_z(\d+)(?:_|$)`)
	categoryTokenRE = regexp.MustCompile(`(?i)_c(\d+)(?:_|$)`)
	movableTokenRE  = regexp.MustCompile(`(?i)_movable(?:_|$)`)
	overlapTokenRE  = regexp.MustCompile(`(?i)_overlap(?:_|$)`)
)

// NameTokens is the result of parsing the naming convention from one stem.
type NameTokens struct {
	Display       string
	LayerOrder    *int
	CategoryOrder *int
	Movable       bool
	AllowOverlap  bool
}

// ParseNameTokens extracts layering tokens from an item name or file stem.
// Unknown underscore segments are left in the display name untouched.
func ParseNameTokens(stem string) NameTokens {
	t := NameTokens{Display: stem}

	if m := layerTokenRE.FindStringSubmatch(t.Display); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			t.LayerOrder = &n
		}
		t.Display = stripToken(t.Display, layerTokenRE)
	}
	if m := categoryTokenRE.FindStringSubmatch(t.Display); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			t.CategoryOrder = &n
		}
		t.Display = stripToken(t.Display, categoryTokenRE)
	}
	if movableTokenRE.MatchString(t.Display) {
		t.Movable = true
		t.Display = stripToken(t.Display, movableTokenRE)
	}
	if overlapTokenRE.MatchString(t.Display) {
		t.AllowOverlap = true
		t.Display = stripToken(t.Display, overlapTokenRE)
	}

	t.Display = strings.Trim(t.Display, "_ ")
	return t
}

// stripToken removes the first match, keeping a single separator when the
// token sat between two name segments ("star_z70_pin" → "star_pin").
func stripToken(s string, re *regexp.Regexp) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	head := s[:loc[0]]
	tail := s[loc[1]:]
	if tail != "" && head != "" {
		return head + "_" + tail
	}
	return head + tail
}
