package domain

import "context"

// Value is the current selection: at most one option in single-select mode,
// an ordered list in multi-select mode.
type Value []Option

// First returns the first selected option.
func (v Value) First() (Option, bool) {
	if len(v) == 0 {
		return Option{}, false
	}
	return v[0], true
}

// IndexOf returns the position of o in the selection, or -1.
func (v Value) IndexOf(o Option) int {
	for i, item := range v {
		if item.Equal(o) {
			return i
		}
	}
	return -1
}

// Contains reports whether o is selected.
func (v Value) Contains(o Option) bool {
	return v.IndexOf(o) != -1
}

// Toggle returns a new Value with o appended when absent or removed when present.
func (v Value) Toggle(o Option) Value {
	out := make(Value, 0, len(v)+1)
	idx := v.IndexOf(o)
	if idx == -1 {
		out = append(out, v...)
		return append(out, o)
	}
	out = append(out, v[:idx]...)
	return append(out, v[idx+1:]...)
}

// Pop returns a new Value without the last element.
func (v Value) Pop() Value {
	if len(v) == 0 {
		return nil
	}
	out := make(Value, len(v)-1)
	copy(out, v[:len(v)-1])
	return out
}

// Labels renders every selected option with the accessor.
func (v Value) Labels(label LabelFunc) []string {
	if label == nil {
		label = FieldLabel(DefaultLabelField)
	}
	labels := make([]string, len(v))
	for i, o := range v {
		labels[i] = label(o)
	}
	return labels
}

// Entry is one row of the filtered list: either an option or a synthetic
// group header.
type Entry struct {
	Option   Option
	Header   bool
	Group    string
	Selected bool
}

// Selectable reports whether the row can be highlighted or chosen.
func (e Entry) Selectable() bool {
	return !e.Header
}

// Loader produces options for the given search text. It is supplied by the
// host and may block; the component calls it off the UI loop.
type Loader func(ctx context.Context, search string) ([]Option, error)
