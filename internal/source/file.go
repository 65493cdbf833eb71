package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"typeahead/internal/domain"
)

// Format names an option file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// optionsKey holds the list when a file wraps it in a document.
const optionsKey = "options"

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", parseError(fmt.Sprintf("unknown option file extension %q", filepath.Ext(path)), nil)
	}
}

// LoadFile reads options from a JSON, YAML or TOML file.
func LoadFile(path string) ([]domain.Option, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, unavailable("read option file", err)
	}
	opts, err := ParseOptions(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// ParseOptions decodes a list of strings or records. JSON and YAML accept a
// bare list or a document with an "options" list; TOML requires the latter.
func ParseOptions(data []byte, format Format) ([]domain.Option, error) {
	var doc any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return nil, parseError("decode json options", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, parseError("decode yaml options", err)
		}
	case FormatTOML:
		var table map[string]any
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, parseError("decode toml options", err)
		}
		doc = table
	default:
		return nil, parseError(fmt.Sprintf("unsupported format %q", format), nil)
	}

	items, err := optionList(doc)
	if err != nil {
		return nil, err
	}
	return optionsFrom(items)
}

func optionList(doc any) ([]any, error) {
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case map[string]any:
		raw, ok := v[optionsKey]
		if !ok {
			return nil, parseError(fmt.Sprintf("document has no %q list", optionsKey), nil)
		}
		list, ok := raw.([]any)
		if !ok {
			return nil, parseError(fmt.Sprintf("%q is %T, not a list", optionsKey, raw), nil)
		}
		return list, nil
	default:
		return nil, parseError(fmt.Sprintf("expected a list of options, got %T", doc), nil)
	}
}
