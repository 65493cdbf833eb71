package ui

import "github.com/charmbracelet/x/ansi"

// stripANSI removes terminal escape sequences, e.g. from pasted output.
func stripANSI(s string) string {
	return ansi.Strip(s)
}

// truncateLabel cuts s to width cells, ending with an ellipsis when cut.
func truncateLabel(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
