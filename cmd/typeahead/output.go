package main

import (
	"encoding/json"
	"fmt"
	"io"

	"typeahead/internal/domain"
)

// writeResult prints the selection: one label per line, or a JSON array of
// strings and records.
func writeResult(w io.Writer, value domain.Value, label domain.LabelFunc, asJSON bool) error {
	if asJSON {
		items := make([]any, 0, len(value))
		for _, o := range value {
			if o.Kind() == domain.KindPrimitive {
				items = append(items, o.Text())
				continue
			}
			items = append(items, o.Fields())
		}
		enc := json.NewEncoder(w)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode selection: %w", err)
		}
		return nil
	}
	for _, o := range value {
		if _, err := fmt.Fprintln(w, label(o)); err != nil {
			return fmt.Errorf("write selection: %w", err)
		}
	}
	return nil
}
