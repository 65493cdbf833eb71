package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"typeahead/internal/config"
	"typeahead/internal/debug"
	"typeahead/internal/ui"
	"typeahead/internal/ui/theme"
)

const (
	minPickerWidth      = 24
	maxPickerWidth      = 72
	defaultPreviewWidth = 32
	minPreviewWidth     = 16
	maxPreviewWidth     = 60
)

type pickerSettings struct {
	multiple       bool
	disabled       bool
	disableEnter   bool
	placeholder    string
	labelField     string
	group          string
	limit          int
	loadCache      bool
	fuzzy          bool
	loadTimeout    time.Duration
	searchDebounce time.Duration
	previewField   string
	previewStyle   string
}

type pickerKeyMap struct {
	input  ui.KeyMap
	Accept key.Binding
	Cancel key.Binding
	Theme  key.Binding
}

func defaultPickerKeyMap(input ui.KeyMap) pickerKeyMap {
	return pickerKeyMap{
		input: input,
		Accept: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "Accept"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "Cancel"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+T", "Theme"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k pickerKeyMap) ShortHelp() []key.Binding {
	return append(k.input.ShortHelp(), k.Accept, k.Cancel)
}

// FullHelp implements help.KeyMap.
func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return append(k.input.FullHelp(), []key.Binding{k.Accept, k.Cancel, k.Theme})
}

// picker hosts a single typeahead, a markdown preview of the highlighted
// option and a help line.
type picker struct {
	input    ui.Typeahead
	settings pickerSettings
	keys     pickerKeyMap
	help     help.Model
	render   func(string) string
	initCmd  tea.Cmd
	status   string
	width    int
	preview  int

	done      bool
	cancelled bool
}

func newPicker(src optionSource, s pickerSettings) picker {
	input := ui.NewTypeahead(src.options).
		WithMultiple(s.multiple).
		WithPlaceholder(s.placeholder).
		WithDisableEnter(s.disableEnter).
		WithLabelField(s.labelField).
		WithOptionGroup(s.group).
		WithLimit(s.limit).
		WithFuzzy(s.fuzzy).
		WithLoadCache(s.loadCache).
		WithLoadTimeout(s.loadTimeout).
		WithSearchDebounce(s.searchDebounce).
		WithDisabled(s.disabled)
	if src.loader != nil {
		input = input.WithLoader(src.loader)
	}

	p := picker{
		input:    input,
		settings: s,
		keys:     defaultPickerKeyMap(input.KeyMap),
		help:     help.New(),
		width:    input.Width,
		preview:  defaultPreviewWidth,
	}
	p.render = markdownRenderer(s.previewStyle, p.previewTextWidth())
	p.initCmd = p.input.Focus()
	return p
}

func (p picker) Init() tea.Cmd {
	return p.initCmd
}

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = min(max(msg.Width/2, minPickerWidth), maxPickerWidth)
		p.preview = min(max(msg.Width-p.width-1, minPreviewWidth), maxPreviewWidth)
		p.input = p.input.WithWidth(p.width)
		p.help.Width = msg.Width
		p.render = markdownRenderer(p.settings.previewStyle, p.previewTextWidth())
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Cancel):
			p.cancelled = true
			return p, tea.Quit
		case key.Matches(msg, p.keys.Accept):
			p.done = true
			return p, tea.Quit
		case key.Matches(msg, p.keys.Theme):
			name := theme.CycleTheme()
			if err := config.SaveTheme(name); err != nil {
				debug.Warn("save theme", "theme", name, "err", err)
			}
			p.status = "Theme: " + name
			return p, nil
		case key.Matches(msg, p.input.KeyMap.Escape) && !p.input.IsDropdownOpen() && p.input.State().SearchText == "":
			p.cancelled = true
			return p, tea.Quit
		}

	case ui.InputMsg:
		if msg.ID != p.input.ID() {
			return p, nil
		}
		p.input.SetValue(msg.Value)
		debug.Log("selection changed", "labels", strings.Join(p.input.Labels(), ","))
		if !p.settings.multiple && len(msg.Value) > 0 {
			p.done = true
			return p, tea.Quit
		}
		p.status = fmt.Sprintf("%d selected", len(msg.Value))
		return p, nil

	case ui.EventMsg:
		if msg.ID != p.input.ID() {
			return p, nil
		}
		debug.Log("typeahead event", "event", msg.Event.String())
		if msg.Event == ui.EventLoadError {
			p.status = msg.Err.Error()
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p picker) View() string {
	if p.done || p.cancelled {
		return ""
	}
	var s strings.Builder
	s.WriteString(pickerTitleStyle().Render(p.title()))
	s.WriteString("\n")

	column := p.input.View()
	// The preview panel sits beside the input and dropdown column.
	if preview := p.previewView(); preview != "" {
		panel := pickerPreviewStyle().Width(p.preview - 2).Render(preview)
		column = ui.Overlay(column, panel, p.width+1, 0)
	}
	s.WriteString(column)
	s.WriteString("\n")

	if p.status != "" {
		s.WriteString(pickerStatusStyle().Render(p.status))
		s.WriteString("\n")
	}
	s.WriteString(p.help.View(p.keys))
	return s.String()
}

func (p picker) title() string {
	if p.settings.multiple {
		return "Select options"
	}
	return "Select an option"
}

// previewView renders the preview field of the highlighted option, falling
// back to the first selected one.
func (p picker) previewView() string {
	if p.settings.previewField == "" {
		return ""
	}
	opt, ok := p.input.Highlighted()
	if !ok {
		opt, ok = p.input.Value().First()
	}
	if !ok {
		return ""
	}
	text := strings.TrimSpace(opt.FieldString(p.settings.previewField))
	if text == "" {
		return ""
	}
	return p.render(text)
}

// previewTextWidth is the panel width minus border and padding.
func (p picker) previewTextWidth() int {
	return max(p.preview-4, 8)
}

func pickerTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.Current().Accent())
}

func pickerStatusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func pickerPreviewStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Border()).
		Padding(0, 1)
}
