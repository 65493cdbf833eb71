package domain

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/mitchellh/hashstructure/v2"
)

// DefaultLabelField is the record field read for labels when none is configured.
const DefaultLabelField = "label"

// OptionKind discriminates the two shapes an option can take.
type OptionKind int

const (
	// KindPrimitive is a bare string option.
	KindPrimitive OptionKind = iota
	// KindLabeled is a record carrying a label field and arbitrary extra fields.
	KindLabeled
)

// Option is one selectable item. Options are immutable once constructed and
// owned by the caller.
type Option struct {
	kind   OptionKind
	text   string
	fields map[string]any
	key    string
}

// Primitive returns a string option.
func Primitive(text string) Option {
	return Option{kind: KindPrimitive, text: text, key: "s:" + text}
}

// Labeled returns a record option. The field map is copied.
func Labeled(fields map[string]any) Option {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Option{kind: KindLabeled, fields: copied, key: recordKey(copied)}
}

// Primitives converts a list of strings into primitive options.
func Primitives(texts ...string) []Option {
	opts := make([]Option, len(texts))
	for i, text := range texts {
		opts[i] = Primitive(text)
	}
	return opts
}

// OptionFrom converts a decoded value (string, number, bool or record) into an Option.
func OptionFrom(v any) (Option, error) {
	switch val := v.(type) {
	case Option:
		return val, nil
	case string:
		return Primitive(val), nil
	case bool:
		return Primitive(strconv.FormatBool(val)), nil
	case int, int32, int64, uint, uint32, uint64, float32, float64:
		return Primitive(fmt.Sprint(val)), nil
	case map[string]any:
		return Labeled(val), nil
	case map[any]any:
		fields := make(map[string]any, len(val))
		for k, fv := range val {
			fields[fmt.Sprint(k)] = fv
		}
		return Labeled(fields), nil
	case nil:
		return Option{}, invalidOptionError("option is null", nil)
	default:
		return Option{}, invalidOptionError(fmt.Sprintf("unsupported option type %T", v), nil)
	}
}

// Kind reports which shape the option has.
func (o Option) Kind() OptionKind { return o.kind }

// Text returns the string of a primitive option. Labeled options return "".
func (o Option) Text() string { return o.text }

// Field returns a record field. Primitive options have no fields.
func (o Option) Field(name string) (any, bool) {
	if o.kind != KindLabeled {
		return nil, false
	}
	v, ok := o.fields[name]
	return v, ok
}

// FieldString returns the string form of a record field, or "" when missing or nil.
func (o Option) FieldString(name string) string {
	v, ok := o.Field(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Fields returns a copy of the record fields.
func (o Option) Fields() map[string]any {
	if o.kind != KindLabeled {
		return nil
	}
	copied := make(map[string]any, len(o.fields))
	for k, v := range o.fields {
		copied[k] = v
	}
	return copied
}

// Key is a stable identity for the option. Two options with the same text, or
// records with structurally equal fields, share a key.
func (o Option) Key() string { return o.key }

// Equal reports whether both options have the same identity.
func (o Option) Equal(other Option) bool {
	return o.kind == other.kind && o.key == other.key
}

// IsZero reports whether the option was never constructed.
func (o Option) IsZero() bool { return o.key == "" }

// String implements fmt.Stringer using the default label field.
func (o Option) String() string {
	return FieldLabel(DefaultLabelField)(o)
}

func recordKey(fields map[string]any) string {
	h, err := hashstructure.Hash(fields, hashstructure.FormatV2, nil)
	if err == nil {
		return "r:" + strconv.FormatUint(h, 16)
	}
	// Unhashable values (funcs, channels) fall back to a sorted dump.
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	key := "r:"
	for _, k := range names {
		key += fmt.Sprintf("%s=%v;", k, fields[k])
	}
	return key
}

// LabelFunc extracts display text from an option.
type LabelFunc func(Option) string

// FieldLabel returns the default label accessor: primitives render their
// text, records render the named field when it is present and non-empty.
func FieldLabel(field string) LabelFunc {
	if field == "" {
		field = DefaultLabelField
	}
	return func(o Option) string {
		if o.kind == KindPrimitive {
			return o.text
		}
		return o.FieldString(field)
	}
}

// GroupOf returns the group key of an option for the given field. Primitive
// options and records without the field belong to the default group "".
func GroupOf(o Option, field string) string {
	if field == "" {
		return ""
	}
	return o.FieldString(field)
}
