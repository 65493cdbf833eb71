package ui

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"typeahead/internal/debug"
	"typeahead/internal/domain"
	appErrors "typeahead/internal/errors"
)

// TypeaheadEvent names the pass-through events a typeahead reports to its host.
type TypeaheadEvent int

const (
	// EventOpen - the dropdown became visible.
	EventOpen TypeaheadEvent = iota
	// EventClose - the dropdown was hidden.
	EventClose
	// EventFocus - the search input gained focus.
	EventFocus
	// EventBlur - the search input lost focus.
	EventBlur
	// EventLoadError - an async load failed; Err carries the coded error.
	EventLoadError
)

func (e TypeaheadEvent) String() string {
	switch e {
	case EventOpen:
		return "open"
	case EventClose:
		return "close"
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventLoadError:
		return "load-error"
	default:
		return "unknown"
	}
}

// InputMsg proposes a new value after a selection change. The typeahead has
// already applied it locally; a host owning the value may override it with
// SetValue.
type InputMsg struct {
	ID    int
	Value domain.Value
}

// EventMsg reports a visibility, focus or load event.
type EventMsg struct {
	ID    int
	Event TypeaheadEvent
	Err   error
}

// InteractionState is the observable interaction state of a typeahead.
type InteractionState struct {
	Open             bool
	HighlightedIndex int // -1 or an index into Entries() that is not a header
	SearchText       string
	Loading          bool
	LastError        error
}

const (
	defaultTypeaheadWidth = 40
	// border, padding, prompt and the cursor cell
	textInputInset = 7
)

var typeaheadIDs int64

func nextTypeaheadID() int {
	return int(atomic.AddInt64(&typeaheadIDs, 1))
}

// Typeahead is a searchable single- or multi-select dropdown. It filters a
// static option list or the results of an async loader as the user types.
type Typeahead struct {
	// Configuration
	Width          int           // Visual width including the border
	Limit          int           // Max dropdown rows; <= 0 shows every row
	Placeholder    string        // Shown while the search text is empty
	DisableEnter   bool          // Enter never selects
	LoadCache      bool          // Skip loads once a result is held
	LoadTimeout    time.Duration // Deadline for one load; 0 waits forever
	SearchDebounce time.Duration // Reload this long after typing stops; 0 disables
	KeyMap         KeyMap

	id          int
	options     []domain.Option
	loader      domain.Loader
	filter      Predicate
	labelField  string
	customLabel domain.LabelFunc
	label       domain.LabelFunc
	optionGroup string
	fuzzy       bool
	multiple    bool
	disabled    bool
	platform    Platform

	textInput textinput.Model
	spinner   spinner.Model

	value        domain.Value
	asyncOptions []domain.Option
	hasAsync     bool
	entries      []domain.Entry
	open         bool
	focused      bool
	highlight    int
	scrollOffset int
	lastErr      error
	prevSearch   string // search text at the last Backspace or Delete

	inFlight    int
	loadSeq     int
	appliedSeq  int
	debounceTag int
}

// NewTypeahead creates a closed, unfocused typeahead over static options.
func NewTypeahead(options []domain.Option) Typeahead {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = "> "

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot))

	c := Typeahead{
		Width:      defaultTypeaheadWidth,
		Limit:      10,
		KeyMap:     DefaultKeyMap(),
		id:         nextTypeaheadID(),
		options:    options,
		labelField: domain.DefaultLabelField,
		platform:   TerminalPlatform{},
		textInput:  ti,
		spinner:    sp,
		highlight:  -1,
	}
	c.textInput.Width = c.Width - textInputInset
	c.resolveLabel()
	c.refilter()
	return c
}

// WithValue sets the initial selection.
func (c Typeahead) WithValue(v domain.Value) Typeahead {
	c.SetValue(v)
	return c
}

// WithLoader sets the async option loader used on open and while typing.
func (c Typeahead) WithLoader(l domain.Loader) Typeahead {
	c.loader = l
	return c
}

// WithLoadCache keeps the first loaded result instead of reloading on open.
func (c Typeahead) WithLoadCache(cache bool) Typeahead {
	c.LoadCache = cache
	return c
}

// WithMultiple switches between single- and multi-select.
func (c Typeahead) WithMultiple(multiple bool) Typeahead {
	c.multiple = multiple
	c.refilter()
	return c
}

// WithDisabled makes the typeahead ignore input.
func (c Typeahead) WithDisabled(disabled bool) Typeahead {
	c.SetDisabled(disabled)
	return c
}

// WithPlaceholder sets the placeholder text.
func (c Typeahead) WithPlaceholder(s string) Typeahead {
	c.Placeholder = s
	c.textInput.Placeholder = s
	return c
}

// WithDisableEnter stops Enter from selecting the highlighted row.
func (c Typeahead) WithDisableEnter(disable bool) Typeahead {
	c.DisableEnter = disable
	return c
}

// WithLabelField names the record field used as the label.
func (c Typeahead) WithLabelField(field string) Typeahead {
	c.labelField = field
	c.resolveLabel()
	c.refilter()
	return c
}

// WithLimit sets the number of visible rows.
func (c Typeahead) WithLimit(n int) Typeahead {
	c.Limit = n
	c.adjustScrollOffset()
	return c
}

// WithFilter replaces the default substring predicate.
func (c Typeahead) WithFilter(p Predicate) Typeahead {
	c.filter = p
	c.refilter()
	return c
}

// WithOptionLabel replaces the field-based label accessor.
func (c Typeahead) WithOptionLabel(fn domain.LabelFunc) Typeahead {
	c.customLabel = fn
	c.resolveLabel()
	c.refilter()
	return c
}

// WithOptionGroup groups rows under headers by the given record field.
func (c Typeahead) WithOptionGroup(field string) Typeahead {
	c.optionGroup = field
	c.refilter()
	return c
}

// WithWidth sets the display width.
func (c Typeahead) WithWidth(w int) Typeahead {
	c.Width = w
	c.textInput.Width = w - textInputInset
	return c
}

// WithPlatform sets the focus, clipboard and scroll collaborator.
func (c Typeahead) WithPlatform(p Platform) Typeahead {
	if p == nil {
		p = TerminalPlatform{}
	}
	c.platform = p
	return c
}

// WithKeyMap replaces the default keybindings.
func (c Typeahead) WithKeyMap(km KeyMap) Typeahead {
	c.KeyMap = km
	return c
}

// WithFuzzy ranks matches by fuzzy score instead of substring order.
func (c Typeahead) WithFuzzy(fuzzy bool) Typeahead {
	c.fuzzy = fuzzy
	c.refilter()
	return c
}

// WithLoadTimeout bounds each async load.
func (c Typeahead) WithLoadTimeout(d time.Duration) Typeahead {
	c.LoadTimeout = d
	return c
}

// WithSearchDebounce reloads options after the search text settles.
func (c Typeahead) WithSearchDebounce(d time.Duration) Typeahead {
	c.SearchDebounce = d
	return c
}

func (c *Typeahead) resolveLabel() {
	if c.customLabel != nil {
		c.label = c.customLabel
		return
	}
	field := c.labelField
	if field == "" {
		field = domain.DefaultLabelField
	}
	c.label = domain.FieldLabel(field)
}

// Init implements tea.Model.
func (c Typeahead) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (c Typeahead) Update(msg tea.Msg) (Typeahead, tea.Cmd) {
	switch msg := msg.(type) {
	case optionsLoadedMsg:
		if msg.id != c.id {
			return c, nil
		}
		return c.applyLoad(msg)

	case searchDebounceMsg:
		if msg.id != c.id || msg.tag != c.debounceTag || !c.open {
			return c, nil
		}
		cmd := c.startLoad()
		return c, cmd

	case spinner.TickMsg:
		if c.inFlight == 0 {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd

	case tea.KeyMsg:
		if c.disabled || !c.focused {
			return c, nil
		}
		return c.handleKey(msg)
	}

	// Cursor blink and other textinput traffic
	var cmd tea.Cmd
	c.textInput, cmd = c.textInput.Update(msg)
	return c, cmd
}

func (c Typeahead) handleKey(msg tea.KeyMsg) (Typeahead, tea.Cmd) {
	km := c.KeyMap
	switch {
	case key.Matches(msg, km.Toggle):
		cmd := c.Toggle()
		return c, cmd
	case key.Matches(msg, km.Up):
		return c.moveHighlight(-1)
	case key.Matches(msg, km.Down):
		return c.moveHighlight(1)
	case key.Matches(msg, km.Enter):
		return c.handleEnter()
	case key.Matches(msg, km.Escape):
		return c.handleEscape()
	case key.Matches(msg, km.Paste):
		return c.handlePaste()
	case key.Matches(msg, km.Backspace):
		return c.handleBackspace(msg)
	}
	return c.handleTyping(msg)
}

func (c Typeahead) moveHighlight(dir int) (Typeahead, tea.Cmd) {
	if !c.open {
		cmd := c.openDropdown()
		return c, cmd
	}
	if len(c.entries) == 0 {
		return c, nil
	}
	c.highlight = stepHighlight(c.entries, c.highlight, dir)
	c.adjustScrollOffset()
	return c, nil
}

func (c Typeahead) handleEnter() (Typeahead, tea.Cmd) {
	if !c.open || c.DisableEnter {
		return c, nil
	}
	idx := c.highlight
	if idx < 0 {
		idx = firstSelectable(c.entries)
	}
	if idx < 0 || idx >= len(c.entries) || !c.entries[idx].Selectable() {
		return c, nil
	}
	cmd := c.ToggleOption(c.entries[idx].Option)
	return c, cmd
}

func (c Typeahead) handleEscape() (Typeahead, tea.Cmd) {
	if c.search() != "" {
		c.setSearch("")
		c.refilter()
		c.highlight = -1
		c.adjustScrollOffset()
		cmd := c.scheduleSearchReload()
		return c, cmd
	}
	cmd := c.closeDropdown()
	return c, cmd
}

func (c Typeahead) handlePaste() (Typeahead, tea.Cmd) {
	text, err := c.platform.ReadClipboard()
	if err != nil {
		if !appErrors.IsCode(err, appErrors.CodeClipboardUnavailable) {
			err = appErrors.New(appErrors.CodeClipboardUnavailable, "read clipboard", err)
		}
		c.lastErr = err
		debug.Warn("typeahead paste failed", "id", c.id, "err", err)
		return c, nil
	}
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(stripANSI(text))
	if text == "" {
		return c, nil
	}

	current := []rune(c.search())
	pos := c.textInput.Position()
	if pos > len(current) {
		pos = len(current)
	}
	inserted := []rune(text)
	if limit := c.textInput.CharLimit; limit > 0 && len(current)+len(inserted) > limit {
		inserted = inserted[:max(0, limit-len(current))]
	}
	next := string(current[:pos]) + string(inserted) + string(current[pos:])
	c.textInput.SetValue(next)
	c.textInput.SetCursor(pos + len(inserted))
	return c.afterSearchEdit(nil)
}

// handleBackspace deletes search text. Only Backspace on a search that was
// also empty at the previous Backspace or Delete clears the selection.
func (c Typeahead) handleBackspace(msg tea.KeyMsg) (Typeahead, tea.Cmd) {
	search := c.search()
	prev := c.prevSearch
	c.prevSearch = search
	if search != "" {
		return c.handleTyping(msg)
	}
	if prev != "" || msg.Type != tea.KeyBackspace {
		return c, nil
	}
	return c.clearSelection()
}

func (c Typeahead) handleTyping(msg tea.KeyMsg) (Typeahead, tea.Cmd) {
	before := c.search()
	var cmd tea.Cmd
	c.textInput, cmd = c.textInput.Update(msg)
	if c.search() == before {
		return c, cmd
	}
	return c.afterSearchEdit(cmd)
}

// afterSearchEdit refilters for new search text, opening the dropdown when
// closed and otherwise scheduling a debounced reload.
func (c Typeahead) afterSearchEdit(cmd tea.Cmd) (Typeahead, tea.Cmd) {
	cmds := []tea.Cmd{cmd}
	c.refilter()
	c.highlight = -1
	c.adjustScrollOffset()
	if !c.open {
		cmds = append(cmds, c.openDropdown())
	} else {
		cmds = append(cmds, c.scheduleSearchReload())
	}
	return c, tea.Batch(cmds...)
}

func (c Typeahead) clearSelection() (Typeahead, tea.Cmd) {
	if len(c.value) == 0 {
		return c, nil
	}
	if c.multiple {
		c.value = c.value.Pop()
	} else {
		c.value = nil
	}
	c.refilter()
	debug.Log("typeahead selection cleared", "id", c.id, "remaining", len(c.value))
	return c, c.emitInput()
}

// ToggleOption selects o. Single-select replaces the value and closes the
// dropdown; multi-select toggles membership and stays open.
func (c *Typeahead) ToggleOption(o domain.Option) tea.Cmd {
	if c.disabled || o.IsZero() {
		return nil
	}
	hadSearch := c.search() != ""
	c.setSearch("")
	c.prevSearch = ""

	if !c.multiple {
		c.value = domain.Value{o}
		c.refilter()
		c.platform.Blur()
		input := c.emitInput()
		return tea.Batch(input, c.closeDropdown())
	}

	c.value = c.value.Toggle(o)
	c.refilter()
	c.highlight = indexOfOption(c.entries, o)
	c.adjustScrollOffset()
	cmds := []tea.Cmd{c.emitInput()}
	if hadSearch {
		cmds = append(cmds, c.scheduleSearchReload())
	}
	return tea.Batch(cmds...)
}

func (c *Typeahead) openDropdown() tea.Cmd {
	if c.open || c.disabled {
		return nil
	}
	c.open = true
	c.highlight = -1
	c.scrollOffset = 0
	c.platform.ScrollTo(0)
	cmds := []tea.Cmd{c.emitEvent(EventOpen, nil)}
	if c.loader != nil && !(c.LoadCache && c.hasAsync) {
		cmds = append(cmds, c.startLoad())
	}
	return tea.Batch(cmds...)
}

func (c *Typeahead) closeDropdown() tea.Cmd {
	if !c.open {
		return nil
	}
	c.open = false
	c.highlight = -1
	return c.emitEvent(EventClose, nil)
}

// Focus focuses the search input and opens the dropdown.
func (c *Typeahead) Focus() tea.Cmd {
	if c.disabled {
		return nil
	}
	c.focused = true
	c.prevSearch = c.search()
	cmds := []tea.Cmd{c.textInput.Focus(), c.emitEvent(EventFocus, nil)}
	cmds = append(cmds, c.openDropdown())
	return tea.Batch(cmds...)
}

// Blur removes focus and closes the dropdown.
func (c *Typeahead) Blur() tea.Cmd {
	if !c.focused && !c.open {
		return nil
	}
	wasFocused := c.focused
	c.focused = false
	c.textInput.Blur()
	var cmds []tea.Cmd
	if wasFocused {
		cmds = append(cmds, c.emitEvent(EventBlur, nil))
	}
	cmds = append(cmds, c.closeDropdown())
	return tea.Batch(cmds...)
}

// Toggle opens a closed dropdown or closes an open one. Opening an unfocused
// typeahead focuses it, so the open dropdown accepts keys.
func (c *Typeahead) Toggle() tea.Cmd {
	if c.disabled {
		return nil
	}
	if c.open {
		return c.closeDropdown()
	}
	c.platform.Focus()
	if !c.focused {
		return c.Focus()
	}
	return c.openDropdown()
}

// SetValue replaces the selection.
func (c *Typeahead) SetValue(v domain.Value) {
	if len(v) == 0 {
		c.value = nil
	} else {
		c.value = append(domain.Value(nil), v...)
	}
	c.refilter()
}

// SetOptions replaces the static options.
func (c *Typeahead) SetOptions(opts []domain.Option) {
	c.options = opts
	c.refilter()
}

// SetDisabled toggles the disabled state. Disabling closes the dropdown.
func (c *Typeahead) SetDisabled(disabled bool) tea.Cmd {
	c.disabled = disabled
	if !disabled {
		return nil
	}
	c.focused = false
	c.textInput.Blur()
	return c.closeDropdown()
}

// ID returns the identifier carried by this typeahead's messages.
func (c Typeahead) ID() int {
	return c.id
}

// State returns the current interaction state.
func (c Typeahead) State() InteractionState {
	return InteractionState{
		Open:             c.open,
		HighlightedIndex: c.highlight,
		SearchText:       c.search(),
		Loading:          c.inFlight > 0,
		LastError:        c.lastErr,
	}
}

// Value returns a copy of the current selection.
func (c Typeahead) Value() domain.Value {
	if len(c.value) == 0 {
		return nil
	}
	return append(domain.Value(nil), c.value...)
}

// Entries returns the rows currently displayed, headers included.
func (c Typeahead) Entries() []domain.Entry {
	return c.entries
}

// Highlighted returns the highlighted option, if any.
func (c Typeahead) Highlighted() (domain.Option, bool) {
	if c.highlight < 0 || c.highlight >= len(c.entries) {
		return domain.Option{}, false
	}
	return c.entries[c.highlight].Option, true
}

// Label renders an option with the configured accessor.
func (c Typeahead) Label(o domain.Option) string {
	return c.label(o)
}

// Labels renders the current selection.
func (c Typeahead) Labels() []string {
	return c.value.Labels(c.label)
}

// Focused reports whether the search input has focus.
func (c Typeahead) Focused() bool {
	return c.focused
}

// Disabled reports whether input is ignored.
func (c Typeahead) Disabled() bool {
	return c.disabled
}

// Multiple reports whether the typeahead is multi-select.
func (c Typeahead) Multiple() bool {
	return c.multiple
}

// IsDropdownOpen returns whether the dropdown is visible.
func (c Typeahead) IsDropdownOpen() bool {
	return c.open
}

// ScrollOffset returns the first visible dropdown row.
func (c Typeahead) ScrollOffset() int {
	return c.scrollOffset
}

func (c Typeahead) search() string {
	return c.textInput.Value()
}

func (c *Typeahead) setSearch(s string) {
	c.textInput.SetValue(s)
}

// refilter recomputes the rows from the working list, keeping the highlight
// on the same option when it is still shown.
func (c *Typeahead) refilter() {
	var prev domain.Option
	if c.highlight >= 0 && c.highlight < len(c.entries) {
		prev = c.entries[c.highlight].Option
	}

	working := c.options
	if c.hasAsync {
		working = c.asyncOptions
	}
	c.entries = FilterOptions(working, c.search(), FilterConfig{
		Label:      c.label,
		Predicate:  c.filter,
		Fuzzy:      c.fuzzy,
		GroupField: c.optionGroup,
		Selected:   c.value,
	})

	c.highlight = -1
	if !prev.IsZero() {
		c.highlight = indexOfOption(c.entries, prev)
	}
	c.adjustScrollOffset()
}

// adjustScrollOffset keeps the highlighted row inside the Limit window.
func (c *Typeahead) adjustScrollOffset() {
	limit := c.Limit
	if limit <= 0 || len(c.entries) <= limit {
		c.setScroll(0)
		return
	}
	offset := c.scrollOffset
	if c.highlight >= 0 {
		if c.highlight < offset {
			offset = c.highlight
		}
		if c.highlight >= offset+limit {
			offset = c.highlight - limit + 1
		}
		// Reveal the group header above the first member
		if limit > 1 && offset == c.highlight && offset > 0 && c.entries[offset-1].Header {
			offset--
		}
	}
	maxOffset := len(c.entries) - limit
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	c.setScroll(offset)
}

func (c *Typeahead) setScroll(offset int) {
	if offset == c.scrollOffset {
		return
	}
	c.scrollOffset = offset
	c.platform.ScrollTo(offset)
}

func (c Typeahead) emitInput() tea.Cmd {
	msg := InputMsg{ID: c.id, Value: c.Value()}
	return func() tea.Msg { return msg }
}

func (c Typeahead) emitEvent(ev TypeaheadEvent, err error) tea.Cmd {
	msg := EventMsg{ID: c.id, Event: ev, Err: err}
	return func() tea.Msg { return msg }
}

func indexOfOption(entries []domain.Entry, o domain.Option) int {
	for i, e := range entries {
		if e.Selectable() && e.Option.Equal(o) {
			return i
		}
	}
	return -1
}
