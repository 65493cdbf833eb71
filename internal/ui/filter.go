package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"typeahead/internal/domain"
)

// Predicate reports whether an option matches the current search text.
type Predicate func(opt domain.Option, search string) bool

// SubstringPredicate is the default predicate: a case-sensitive substring
// match of the search text against the option label. Empty search matches all.
func SubstringPredicate(label domain.LabelFunc) Predicate {
	return func(opt domain.Option, search string) bool {
		if search == "" {
			return true
		}
		return strings.Contains(label(opt), search)
	}
}

// FilterConfig controls how FilterOptions reduces an option list.
type FilterConfig struct {
	Label      domain.LabelFunc
	Predicate  Predicate // Caller predicate; nil uses SubstringPredicate
	Fuzzy      bool      // Rank by fuzzy score when no caller predicate is set
	GroupField string    // Record field to group by; "" disables grouping
	Selected   domain.Value
}

// FilterOptions reduces options to the rows displayed for search, marking
// selected options and interleaving group headers when grouping is enabled.
func FilterOptions(options []domain.Option, search string, cfg FilterConfig) []domain.Entry {
	label := cfg.Label
	if label == nil {
		label = domain.FieldLabel(domain.DefaultLabelField)
	}

	var matched []domain.Option
	switch {
	case cfg.Predicate != nil:
		matched = filterWith(options, search, cfg.Predicate)
	case cfg.Fuzzy && search != "":
		matched = rankFuzzy(options, search, label)
	default:
		matched = filterWith(options, search, SubstringPredicate(label))
	}

	if cfg.GroupField == "" {
		entries := make([]domain.Entry, len(matched))
		for i, opt := range matched {
			entries[i] = domain.Entry{Option: opt, Selected: cfg.Selected.Contains(opt)}
		}
		return entries
	}
	return groupEntries(matched, cfg.GroupField, cfg.Selected)
}

func filterWith(options []domain.Option, search string, match Predicate) []domain.Option {
	out := make([]domain.Option, 0, len(options))
	for _, opt := range options {
		if match(opt, search) {
			out = append(out, opt)
		}
	}
	return out
}

type labelSource struct {
	options []domain.Option
	label   domain.LabelFunc
}

func (s labelSource) String(i int) string { return s.label(s.options[i]) }
func (s labelSource) Len() int            { return len(s.options) }

// rankFuzzy keeps only fuzzy matches, best score first.
func rankFuzzy(options []domain.Option, search string, label domain.LabelFunc) []domain.Option {
	matches := fuzzy.FindFrom(search, labelSource{options: options, label: label})
	out := make([]domain.Option, 0, len(matches))
	for _, m := range matches {
		if m.Index >= 0 && m.Index < len(options) {
			out = append(out, options[m.Index])
		}
	}
	return out
}

// groupEntries emits each named group as a header followed by its members in
// first-seen order, then the ungrouped options.
func groupEntries(options []domain.Option, field string, selected domain.Value) []domain.Entry {
	var order []string
	members := make(map[string][]domain.Option)
	for _, opt := range options {
		g := domain.GroupOf(opt, field)
		if _, seen := members[g]; !seen && g != "" {
			order = append(order, g)
		}
		members[g] = append(members[g], opt)
	}

	entries := make([]domain.Entry, 0, len(options)+len(order))
	for _, g := range order {
		entries = append(entries, domain.Entry{Header: true, Group: g})
		for _, opt := range members[g] {
			entries = append(entries, domain.Entry{Option: opt, Group: g, Selected: selected.Contains(opt)})
		}
	}
	for _, opt := range members[""] {
		entries = append(entries, domain.Entry{Option: opt, Selected: selected.Contains(opt)})
	}
	return entries
}

// firstSelectable returns the index of the first non-header entry, or -1.
func firstSelectable(entries []domain.Entry) int {
	for i, e := range entries {
		if e.Selectable() {
			return i
		}
	}
	return -1
}

// stepHighlight moves circularly by dir (+1/-1) from current, skipping one
// header in the same direction when the step lands on it.
func stepHighlight(entries []domain.Entry, current, dir int) int {
	if firstSelectable(entries) == -1 {
		return -1
	}
	last := len(entries) - 1
	wrap := func(i int) int {
		if i < 0 {
			return last
		}
		if i > last {
			return 0
		}
		return i
	}
	next := wrap(current + dir)
	if entries[next].Header {
		next = wrap(next + dir)
	}
	return next
}
