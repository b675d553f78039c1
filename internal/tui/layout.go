package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// fitLine pads or truncates s to exactly width columns, ANSI-aware.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	// Bound the work on pathological lines before measuring.
	if len(s) > 8192 {
		s = xansi.Cut(s, 0, width)
	}
	w := xansi.StringWidth(s)
	if w > width {
		s = xansi.Truncate(s, width, glyphEllipsis())
		w = xansi.StringWidth(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// normalizePane forces s to be width columns wide and height lines tall so the
// screen does not jitter between frames.
func normalizePane(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}
