package theme

import "github.com/charmbracelet/lipgloss"

// DraculaTheme implements the Dracula color scheme.
type DraculaTheme struct{}

func (t DraculaTheme) Accent() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#bd93f9", Light: "#7c3aed"}
}

func (t DraculaTheme) Text() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#f8f8f2", Light: "#282a36"}
}

func (t DraculaTheme) TextMuted() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#6272a4", Light: "#6272a4"}
}

func (t DraculaTheme) Error() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#ff5555", Light: "#d62f2f"}
}

func (t DraculaTheme) Success() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#50fa7b", Light: "#1f9d4c"}
}

func (t DraculaTheme) GroupHeader() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#ffb86c", Light: "#c2410c"}
}

func (t DraculaTheme) HighlightBackground() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#44475a", Light: "#e5e7eb"}
}

func (t DraculaTheme) ChipBackground() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#21222c", Light: "#d1d5db"}
}

func (t DraculaTheme) Border() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#44475a", Light: "#c4c4c4"}
}

func (t DraculaTheme) BorderFocused() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: "#ff79c6", Light: "#be185d"}
}

func init() {
	RegisterTheme("dracula", DraculaTheme{})
}
