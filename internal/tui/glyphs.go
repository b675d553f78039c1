package tui

import (
	"os"
	"strings"
	"sync"
)

// Some fonts render the Unicode affordances poorly; an ASCII set can be chosen
// with ui.glyphs or LISTKEEP_GLYPHS (the env var wins).

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func parseGlyphSet(v string) (glyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "unicode", "utf8":
		return glyphSetUnicode, true
	case "ascii":
		return glyphSetASCII, true
	}
	return glyphSetUnicode, false
}

// applyGlyphPreference picks the glyph set from LISTKEEP_GLYPHS, then from the
// configured value. Unknown values are ignored.
func applyGlyphPreference(configured string) {
	if gs, ok := parseGlyphSet(os.Getenv("LISTKEEP_GLYPHS")); ok {
		setGlyphs(gs)
		return
	}
	if gs, ok := parseGlyphSet(configured); ok {
		setGlyphs(gs)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphRemove() string {
	if glyphs() == glyphSetASCII {
		return "x"
	}
	return "✕"
}

func glyphEditing() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "✎"
}

func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}
