// Package textutil fits item labels into terminal columns.
package textutil

import "github.com/mattn/go-runewidth"

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// Width returns the number of terminal columns s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most maxWidth columns, ending in an ellipsis
// when anything was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= Width(TruncateEllipsis) {
		return TruncateEllipsis
	}
	return runewidth.Truncate(s, maxWidth, TruncateEllipsis)
}

// Fit pads or truncates s to exactly width columns.
func Fit(s string, width int) string {
	if Width(s) >= width {
		s = Truncate(s, width)
	}
	return runewidth.FillRight(s, width)
}

// MaxWidth returns the widest of ss in columns.
func MaxWidth(ss ...string) int {
	w := 0
	for _, s := range ss {
		w = max(w, Width(s))
	}
	return w
}
