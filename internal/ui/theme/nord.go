package theme

import "github.com/charmbracelet/lipgloss"

// NordTheme implements the Nord color scheme.
type NordTheme struct{}

func (t NordTheme) Accent() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#88c0d0", Light: "#5e81ac"}
}

func (t NordTheme) Text() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#eceff4", Light: "#2e3440"}
}

func (t NordTheme) TextMuted() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#616e88", Light: "#7b88a1"}
}

func (t NordTheme) Error() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#bf616a", Light: "#bf616a"}
}

func (t NordTheme) Success() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#a3be8c", Light: "#4c7a3d"}
}

func (t NordTheme) GroupHeader() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#ebcb8b", Light: "#9a7b2f"}
}

func (t NordTheme) HighlightBackground() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#3b4252", Light: "#e5e9f0"}
}

func (t NordTheme) ChipBackground() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#2e3440", Light: "#d8dee9"}
}

func (t NordTheme) Border() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#434c5e", Light: "#d8dee9"}
}

func (t NordTheme) BorderFocused() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#81a1c1", Light: "#5e81ac"}
}

func init() {
	RegisterTheme("nord", NordTheme{})
}
