package ui

import (
	"github.com/atotto/clipboard"

	appErrors "typeahead/internal/errors"
)

// Platform isolates the side effects the typeahead has on its environment.
// Hosts can observe focus and scroll requests; tests inject a recorder.
type Platform interface {
	// Focus asks the host to move input focus to the typeahead.
	Focus()
	// Blur asks the host to move input focus away from the typeahead.
	Blur()
	// ReadClipboard returns the clipboard contents as plain text.
	ReadClipboard() (string, error)
	// ScrollTo reports the index of the first visible dropdown row.
	ScrollTo(offset int)
}

// TerminalPlatform is the default Platform for a terminal program. Focus,
// Blur and ScrollTo call the optional hooks; the clipboard is the system one.
type TerminalPlatform struct {
	OnFocus  func()
	OnBlur   func()
	OnScroll func(offset int)
}

// Focus implements Platform.
func (p TerminalPlatform) Focus() {
	if p.OnFocus != nil {
		p.OnFocus()
	}
}

// Blur implements Platform.
func (p TerminalPlatform) Blur() {
	if p.OnBlur != nil {
		p.OnBlur()
	}
}

// ReadClipboard implements Platform.
func (p TerminalPlatform) ReadClipboard() (string, error) {
	if clipboard.Unsupported {
		return "", appErrors.New(appErrors.CodeClipboardUnavailable, "no clipboard utility available", nil)
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", appErrors.New(appErrors.CodeClipboardUnavailable, "read clipboard", err)
	}
	return text, nil
}

// ScrollTo implements Platform.
func (p TerminalPlatform) ScrollTo(offset int) {
	if p.OnScroll != nil {
		p.OnScroll(offset)
	}
}
