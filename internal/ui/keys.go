package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard shortcuts understood by the typeahead.
// Printable keys are never bound; they edit the search text.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Escape    key.Binding
	Backspace key.Binding
	Paste     key.Binding
	Toggle    key.Binding
}

// DefaultKeyMap returns the default typeahead keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Up/Down share help text (displayed as single row)
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/↓", "Move highlight"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↑/↓", "Move highlight"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎ (Enter)", "Select"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Clear/close"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("⌫", "Delete char/clear selection"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("Ctrl+V", "Paste"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("alt+down", "f4"),
			key.WithHelp("Alt+↓/F4", "Open/close list"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Enter, k.Escape, k.Toggle}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Enter, k.Escape, k.Backspace, k.Paste},
	}
}
