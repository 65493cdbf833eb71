package ui

import (
	"github.com/charmbracelet/lipgloss"

	"typeahead/internal/ui/theme"
)

// Styles are built per call so a theme switch takes effect on the next frame.

func styleTypeaheadInput() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Border()).
		Padding(0, 1)
}

func styleTypeaheadInputFocused() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderFocused()).
		Padding(0, 1)
}

func styleTypeaheadDropdown() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Current().Border())
}

func styleTypeaheadValue() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleTypeaheadDisabled() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Faint(true)
}

func styleTypeaheadOption() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleTypeaheadHighlight() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Accent()).
		Background(theme.Current().HighlightBackground()).
		Bold(true)
}

func styleTypeaheadCheck() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Success())
}

func styleTypeaheadGroupHeader() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().GroupHeader()).
		Bold(true)
}

func styleTypeaheadNoMatch() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Italic(true)
}

func styleTypeaheadHint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleTypeaheadError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Error())
}

func styleTypeaheadSpinner() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent())
}

func styleChip() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text()).
		Background(theme.Current().ChipBackground())
}
