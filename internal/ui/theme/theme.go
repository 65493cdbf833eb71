// Package theme provides the semantic color roles used to draw the typeahead.
package theme

import "github.com/charmbracelet/lipgloss"

// DefaultName is the theme used until another one is selected.
const DefaultName = "tokyonight"

// Theme defines the semantic colors of the typeahead widget.
// All methods return AdaptiveColor for automatic light/dark terminal support.
type Theme interface {
	Accent() lipgloss.AdaptiveColor    // Highlighted row, cursor marker
	Text() lipgloss.AdaptiveColor      // Option labels, typed text
	TextMuted() lipgloss.AdaptiveColor // Placeholder, hints, scroll markers
	Error() lipgloss.AdaptiveColor     // Load failures
	Success() lipgloss.AdaptiveColor   // Selected check marks

	GroupHeader() lipgloss.AdaptiveColor         // Synthetic group rows
	HighlightBackground() lipgloss.AdaptiveColor // Highlighted row background
	ChipBackground() lipgloss.AdaptiveColor      // Multi-select chips

	Border() lipgloss.AdaptiveColor        // Idle input and dropdown borders
	BorderFocused() lipgloss.AdaptiveColor // Focused input border
}
