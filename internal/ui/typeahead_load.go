package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"typeahead/internal/debug"
	"typeahead/internal/domain"
	appErrors "typeahead/internal/errors"
)

// optionsLoadedMsg carries the outcome of one loader call.
type optionsLoadedMsg struct {
	id      int
	seq     int
	search  string
	options []domain.Option
	err     error
}

// searchDebounceMsg fires when the search text has been still for
// SearchDebounce; only the newest tag triggers a load.
type searchDebounceMsg struct {
	id  int
	tag int
}

// startLoad issues a new load for the current search text. Loads are never
// cancelled; each result is applied when it arrives.
func (c *Typeahead) startLoad() tea.Cmd {
	if c.loader == nil {
		return nil
	}
	c.loadSeq++
	c.inFlight++
	debug.Log("typeahead load started", "id", c.id, "seq", c.loadSeq, "search", c.search())

	cmds := []tea.Cmd{loadAsyncOptions(c.id, c.loadSeq, c.loader, c.search(), c.LoadTimeout)}
	if c.inFlight == 1 {
		cmds = append(cmds, c.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func loadAsyncOptions(id, seq int, loader domain.Loader, search string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		cancel := context.CancelFunc(func() {})
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, timeout)
		}
		defer cancel()

		type result struct {
			options []domain.Option
			err     error
		}
		done := make(chan result, 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					done <- result{err: fmt.Errorf("loader panicked: %v", r)}
				}
			}()
			opts, err := loader(ctx, search)
			done <- result{options: opts, err: err}
		}()

		start := time.Now()
		var res result
		select {
		case res = <-done:
		case <-ctx.Done():
			res = result{err: ctx.Err()}
		}

		msg := optionsLoadedMsg{id: id, seq: seq, search: search, options: res.options}
		switch {
		case res.err == nil:
			debug.Log("typeahead load finished", "id", id, "seq", seq, "count", len(res.options), "elapsed", time.Since(start))
		case errors.Is(res.err, context.DeadlineExceeded):
			msg.options = nil
			msg.err = appErrors.New(appErrors.CodeLoadTimeout, fmt.Sprintf("loading options timed out after %s", timeout), res.err)
		default:
			msg.options = nil
			msg.err = appErrors.New(appErrors.CodeLoadFailed, "loading options failed", res.err)
		}
		return msg
	}
}

// applyLoad writes a load result. A failure keeps the previous working list.
func (c Typeahead) applyLoad(msg optionsLoadedMsg) (Typeahead, tea.Cmd) {
	if c.inFlight > 0 {
		c.inFlight--
	}

	if msg.err != nil {
		c.lastErr = msg.err
		debug.Error("typeahead load failed", "id", c.id, "seq", msg.seq, "search", msg.search, "err", msg.err)
		return c, c.emitEvent(EventLoadError, msg.err)
	}

	if msg.seq < c.appliedSeq {
		debug.Warn("typeahead stale load overwrote a newer result",
			"id", c.id, "seq", msg.seq, "applied", c.appliedSeq, "search", msg.search)
	} else {
		c.appliedSeq = msg.seq
	}

	c.asyncOptions = msg.options
	c.hasAsync = true
	c.lastErr = nil
	c.refilter()
	c.highlight = -1
	c.adjustScrollOffset()
	return c, nil
}

// scheduleSearchReload debounces a reload for the current search text.
func (c *Typeahead) scheduleSearchReload() tea.Cmd {
	if c.loader == nil || c.LoadCache || !c.open || c.SearchDebounce <= 0 {
		return nil
	}
	c.debounceTag++
	id, tag := c.id, c.debounceTag
	return tea.Tick(c.SearchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{id: id, tag: tag}
	})
}
