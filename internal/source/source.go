// Package source turns files, SQLite tables, GraphQL endpoints and external
// commands into typeahead options and loaders.
package source

import (
	"context"
	"fmt"
	"strings"

	"typeahead/internal/domain"
	appErrors "typeahead/internal/errors"
)

// Static returns a loader over a fixed list. It keeps options whose label
// contains the search text, so hosts can exercise the async path without a
// backend.
func Static(options []domain.Option, label domain.LabelFunc) domain.Loader {
	if label == nil {
		label = domain.FieldLabel(domain.DefaultLabelField)
	}
	return func(ctx context.Context, search string) ([]domain.Option, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := make([]domain.Option, 0, len(options))
		for _, opt := range options {
			if strings.Contains(label(opt), search) {
				out = append(out, opt)
			}
		}
		return out, nil
	}
}

// optionsFrom converts decoded list items, reporting the first bad index.
func optionsFrom(items []any) ([]domain.Option, error) {
	opts := make([]domain.Option, 0, len(items))
	for i, item := range items {
		opt, err := domain.OptionFrom(item)
		if err != nil {
			return nil, fmt.Errorf("option %d: %w", i, err)
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

func parseError(msg string, err error) error {
	return appErrors.New(appErrors.CodeParseFailed, msg, err)
}

func unavailable(msg string, err error) error {
	return appErrors.New(appErrors.CodeSourceUnavailable, msg, err)
}
