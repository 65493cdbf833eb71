package main

import (
	"fmt"
	"os"
	"strings"

	"typeahead/internal/config"
	"typeahead/internal/domain"
	appErrors "typeahead/internal/errors"
	"typeahead/internal/source"
)

// optionSource is what the picker is fed: a fixed list, a loader, or both.
type optionSource struct {
	name    string
	options []domain.Option
	loader  domain.Loader
}

func buildSource(f *cliFlags, args []string) (optionSource, error) {
	var chosen []string
	if len(args) > 0 {
		chosen = append(chosen, "arguments")
	}
	for name, set := range map[string]bool{
		"--file":    f.file != "",
		"--sqlite":  f.sqlite != "",
		"--graphql": f.graphql != "",
		"--command": f.command != "",
	} {
		if set {
			chosen = append(chosen, name)
		}
	}
	switch len(chosen) {
	case 0:
		return optionSource{}, configError("no options: pass them as arguments or use --file, --sqlite, --graphql or --command")
	case 1:
	default:
		return optionSource{}, configError(fmt.Sprintf("choose one option source, got %d", len(chosen)))
	}

	switch {
	case len(args) > 0:
		return staticSource("arguments", domain.Primitives(args...), f.async), nil
	case f.file != "":
		opts, err := source.LoadFile(f.file)
		if err != nil {
			return optionSource{}, err
		}
		return staticSource("file", opts, f.async), nil
	case f.sqlite != "":
		label := f.labelColumn
		if label == "" {
			label = config.GetString(config.KeyLabelField)
		}
		loader, err := source.SQLite{
			Path:         f.sqlite,
			Table:        f.table,
			LabelColumn:  label,
			GroupColumn:  f.groupColumn,
			ExtraColumns: extraColumns(f.previewField, label, f.groupColumn),
		}.Loader()
		if err != nil {
			return optionSource{}, err
		}
		return optionSource{name: "sqlite", loader: loader}, nil
	case f.graphql != "":
		query, err := readQuery(f.query)
		if err != nil {
			return optionSource{}, err
		}
		header, err := parseHeaders(f.headers)
		if err != nil {
			return optionSource{}, err
		}
		loader, err := source.GraphQL{
			Endpoint: f.graphql,
			Query:    query,
			Path:     f.path,
			Header:   header,
		}.Loader()
		if err != nil {
			return optionSource{}, err
		}
		return optionSource{name: "graphql", loader: loader}, nil
	default:
		fields := strings.Fields(f.command)
		if len(fields) == 0 {
			return optionSource{}, configError("--command is empty")
		}
		return optionSource{
			name:   "command",
			loader: source.Command{Name: fields[0], Args: fields[1:]}.Loader(),
		}, nil
	}
}

func staticSource(name string, opts []domain.Option, async bool) optionSource {
	if !async {
		return optionSource{name: name, options: opts}
	}
	label := domain.FieldLabel(config.GetString(config.KeyLabelField))
	return optionSource{name: name + " (async)", loader: source.Static(opts, label)}
}

// extraColumns returns the preview column unless it is already selected.
func extraColumns(preview, label, group string) []string {
	if preview == "" || preview == label || preview == group {
		return nil
	}
	return []string{preview}
}

func readQuery(q string) (string, error) {
	path, ok := strings.CutPrefix(q, "@")
	if !ok {
		return q, nil
	}
	//nolint:gosec // G304: the query file is named by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return "", configError(fmt.Sprintf("read query file %s: %v", path, err))
	}
	return string(data), nil
}

func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	header := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, configError(fmt.Sprintf("header %q is not 'Name: value'", h))
		}
		header[name] = strings.TrimSpace(value)
	}
	return header, nil
}

func configError(msg string) error {
	return appErrors.New(appErrors.CodeConfigurationError, msg, nil)
}
