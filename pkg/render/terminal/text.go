package terminal

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to truncated strings.
const Ellipsis = "..."

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWithEllipsis truncates s to maxWidth cells, adding "..." if truncated.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if DisplayWidth(s) <= maxWidth {
		return s
	}

	if maxWidth <= len(Ellipsis) {
		return strings.Repeat(".", max(maxWidth, 0))
	}

	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// PadRight pads s with spaces on the right to reach width cells.
// If s is already wider, returns s unchanged.
func PadRight(s string, width int) string {
	w := DisplayWidth(s)
	if w >= width {
		return s
	}

	return s + strings.Repeat(" ", width-w)
}

// PadLeft pads s with spaces on the left to reach width cells.
// If s is already wider, returns s unchanged.
func PadLeft(s string, width int) string {
	w := DisplayWidth(s)
	if w >= width {
		return s
	}

	return strings.Repeat(" ", width-w) + s
}
