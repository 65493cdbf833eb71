package ui

import (
	"strings"

	"typeahead/internal/domain"
)

const minDropdownContentWidth = 10

// View implements tea.Model: the input box followed by the dropdown when open.
func (c Typeahead) View() string {
	input := c.InputView()
	if !c.open {
		return input
	}
	return input + "\n" + c.DropdownView()
}

// InputView renders the bordered search box with chips or the selected label.
func (c Typeahead) InputView() string {
	// c.Width is the visual width; the border adds 2 outside lipgloss Width
	style := styleTypeaheadInput()
	if c.focused && !c.disabled {
		style = styleTypeaheadInputFocused()
	}
	return style.Width(max(c.Width-2, 1)).Render(c.inputContent())
}

func (c Typeahead) inputContent() string {
	width := c.contentWidth()
	field := c.inputField(width)
	if !c.multiple || len(c.value) == 0 {
		return field
	}
	elements := renderChips(c.value.Labels(c.label), width)
	if !c.disabled || c.search() != "" {
		elements = append(elements, field)
	}
	return wrapElements(elements, width)
}

func (c Typeahead) inputField(width int) string {
	search := c.search()
	if c.disabled {
		text := c.Placeholder
		if !c.multiple && len(c.value) > 0 {
			text = c.label(c.value[0])
		}
		return styleTypeaheadDisabled().Render(truncateLabel(text, width))
	}
	if !c.multiple && search == "" && len(c.value) > 0 {
		label := truncateLabel(c.label(c.value[0]), width-len(c.textInput.Prompt))
		return c.textInput.Prompt + styleTypeaheadValue().Render(label)
	}
	return c.textInput.View()
}

// DropdownView renders the option list, or "" while closed.
func (c Typeahead) DropdownView() string {
	if !c.open {
		return ""
	}
	width := c.contentWidth()

	var lines []string
	if c.inFlight > 0 {
		lines = append(lines, " "+styleTypeaheadSpinner().Render(c.spinner.View())+styleTypeaheadHint().Render(" Loading…"))
	}
	if c.lastErr != nil {
		lines = append(lines, styleTypeaheadError().Render(truncateLabel(" ! "+c.lastErr.Error(), width)))
	}
	switch {
	case len(c.entries) > 0:
		lines = append(lines, c.renderEntries(width)...)
	case c.inFlight == 0:
		lines = append(lines, styleTypeaheadNoMatch().Render("  No matches"))
	}

	return styleTypeaheadDropdown().Width(max(c.Width-2, 1)).Render(strings.Join(lines, "\n"))
}

// visibleRange returns the half-open window of entries shown in the dropdown.
func (c Typeahead) visibleRange() (int, int) {
	if c.Limit <= 0 {
		return 0, len(c.entries)
	}
	start := c.scrollOffset
	end := min(start+c.Limit, len(c.entries))
	return start, end
}

func (c Typeahead) renderEntries(width int) []string {
	start, end := c.visibleRange()
	lines := make([]string, 0, end-start+2)

	if start > 0 {
		lines = append(lines, styleTypeaheadHint().Render("  ▲ more above"))
	}
	for i := start; i < end; i++ {
		lines = append(lines, c.renderEntry(i, c.entries[i], width))
	}
	if end < len(c.entries) {
		lines = append(lines, styleTypeaheadHint().Render("  ▼ more below"))
	}
	return lines
}

func (c Typeahead) renderEntry(i int, e domain.Entry, width int) string {
	if e.Header {
		return " " + styleTypeaheadGroupHeader().Render(truncateLabel(e.Group, width-1))
	}

	check := "  "
	if e.Selected {
		check = styleTypeaheadCheck().Render("✓ ")
	}
	// 2 cells marker, 2 cells check
	label := truncateLabel(c.label(e.Option), width-4)
	if label == "" {
		label = " "
	}
	if i == c.highlight {
		return styleTypeaheadHighlight().Render("▸ ") + check + styleTypeaheadHighlight().Render(label)
	}
	return "  " + check + styleTypeaheadOption().Render(label)
}

// contentWidth is the width inside border and padding.
func (c Typeahead) contentWidth() int {
	return max(c.Width-4, minDropdownContentWidth)
}
