package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"typeahead/internal/domain"
)

// cmdTimeout bounds each command run by tests. Loader and event commands
// return at once; cursor blink and spinner ticks sleep longer and are dropped.
const cmdTimeout = 50 * time.Millisecond

type fakePlatform struct {
	focusCalls   int
	blurCalls    int
	scrolls      []int
	clipboard    string
	clipboardErr error
}

func (p *fakePlatform) Focus() { p.focusCalls++ }
func (p *fakePlatform) Blur()  { p.blurCalls++ }
func (p *fakePlatform) ReadClipboard() (string, error) {
	return p.clipboard, p.clipboardErr
}
func (p *fakePlatform) ScrollTo(offset int) { p.scrolls = append(p.scrolls, offset) }

func (p *fakePlatform) lastScroll() int {
	if len(p.scrolls) == 0 {
		return -1
	}
	return p.scrolls[len(p.scrolls)-1]
}

// runCmd executes cmd synchronously, expanding batches, and returns the
// messages produced within cmdTimeout.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, runCmd(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(cmdTimeout):
		return nil
	}
}

// pump runs cmd and feeds load and debounce results back into the
// typeahead until it settles. It returns every message observed.
func pump(t *testing.T, c Typeahead, cmd tea.Cmd) (Typeahead, []tea.Msg) {
	t.Helper()
	var seen []tea.Msg
	queue := runCmd(cmd)
	for i := 0; len(queue) > 0; i++ {
		if i > 100 {
			t.Fatal("typeahead did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		seen = append(seen, msg)
		switch msg.(type) {
		case optionsLoadedMsg, searchDebounceMsg:
			var next tea.Cmd
			c, next = c.Update(msg)
			queue = append(queue, runCmd(next)...)
		}
	}
	return c, seen
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// focusedTypeahead focuses c and drops the focus commands.
func focusedTypeahead(c Typeahead) Typeahead {
	_ = c.Focus()
	return c
}

// typeText sends one key per rune, discarding commands.
func typeText(c Typeahead, s string) Typeahead {
	for _, r := range s {
		c, _ = c.Update(keyRunes(string(r)))
	}
	return c
}

func press(c Typeahead, msgs ...tea.KeyMsg) Typeahead {
	for _, m := range msgs {
		c, _ = c.Update(m)
	}
	return c
}

func entryLabels(c Typeahead) []string {
	var labels []string
	for _, e := range c.Entries() {
		if e.Header {
			labels = append(labels, "#"+e.Group)
			continue
		}
		labels = append(labels, c.Label(e.Option))
	}
	return labels
}

func valueLabels(c Typeahead) []string {
	return c.Value().Labels(c.label)
}

func inputMsgs(msgs []tea.Msg) []InputMsg {
	var out []InputMsg
	for _, m := range msgs {
		if in, ok := m.(InputMsg); ok {
			out = append(out, in)
		}
	}
	return out
}

func eventsOf(msgs []tea.Msg) []TypeaheadEvent {
	var out []TypeaheadEvent
	for _, m := range msgs {
		if ev, ok := m.(EventMsg); ok {
			out = append(out, ev.Event)
		}
	}
	return out
}

func hasEvent(msgs []tea.Msg, want TypeaheadEvent) bool {
	for _, ev := range eventsOf(msgs) {
		if ev == want {
			return true
		}
	}
	return false
}

func record(label string, extra ...string) domain.Option {
	fields := map[string]any{"label": label}
	for i := 0; i+1 < len(extra); i += 2 {
		fields[extra[i]] = extra[i+1]
	}
	return domain.Labeled(fields)
}

// plainColors renders without escape codes for the duration of the test.
func plainColors(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// settle applies action to c and pumps the command it returns.
func settle(t *testing.T, c Typeahead, action func(*Typeahead) tea.Cmd) (Typeahead, []tea.Msg) {
	t.Helper()
	cmd := action(&c)
	return pump(t, c, cmd)
}
