package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// minChipLabelWidth keeps very narrow widths from truncating chips to nothing.
const minChipLabelWidth = 3

// renderChips renders selected labels as chips, truncating labels that would
// not fit on one line of width cells.
func renderChips(labels []string, width int) []string {
	chips := make([]string, 0, len(labels))
	for _, label := range labels {
		chips = append(chips, renderChip(label, width))
	}
	return chips
}

func renderChip(label string, width int) string {
	if width > 0 {
		// Padding adds one cell on each side
		label = truncateLabel(label, max(minChipLabelWidth, width-2))
	}
	return styleChip().Padding(0, 1).Render(label)
}

// wrapElements joins rendered elements with single spaces, starting a new
// line whenever the next element would overflow width.
func wrapElements(elements []string, width int) string {
	if width <= 0 || len(elements) == 0 {
		return strings.Join(elements, " ")
	}

	var lines []string
	var currentLine []string
	currentWidth := 0

	for _, elem := range elements {
		elemWidth := lipgloss.Width(elem)
		spaceNeeded := elemWidth
		if len(currentLine) > 0 {
			spaceNeeded++ // separator
		}

		if currentWidth+spaceNeeded > width && len(currentLine) > 0 {
			lines = append(lines, strings.Join(currentLine, " "))
			currentLine = []string{elem}
			currentWidth = elemWidth
		} else {
			currentLine = append(currentLine, elem)
			currentWidth += spaceNeeded
		}
	}

	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}

	return strings.Join(lines, "\n")
}
