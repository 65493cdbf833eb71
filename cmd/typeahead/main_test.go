package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"typeahead/internal/config"
	"typeahead/internal/domain"
	appErrors "typeahead/internal/errors"
)

func TestConfigOverridesOnlyExplicitFlags(t *testing.T) {
	cmd := newRootCmd(io.Discard)
	if err := cmd.Flags().Parse([]string{"--limit", "3", "--multiple", "--file", "x.json", "--load-timeout", "250ms"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	got := configOverrides(cmd.Flags())
	want := map[string]any{
		config.KeyLimit:       "3",
		config.KeyMultiple:    "true",
		config.KeyLoadTimeout: "250ms",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("expected %s=%v, got %v", k, v, got[k])
		}
	}
}

func TestSettingsFromConfigUsesOverrides(t *testing.T) {
	cleanup := config.ResetForTesting(t)
	defer cleanup()

	cmd := newRootCmd(io.Discard)
	if err := cmd.Flags().Parse([]string{"--limit", "3", "--multiple", "--group", "kind", "--search-debounce", "150ms"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if err := config.ApplyOverrides(configOverrides(cmd.Flags())); err != nil {
		t.Fatalf("apply overrides: %v", err)
	}

	s := settingsFromConfig(&cliFlags{previewField: "description"})
	if s.limit != 3 || !s.multiple || s.group != "kind" {
		t.Fatalf("expected overrides applied, got %+v", s)
	}
	if s.searchDebounce.Milliseconds() != 150 {
		t.Fatalf("expected 150ms debounce, got %v", s.searchDebounce)
	}
	if s.loadTimeout != config.DefaultLoadTimeout {
		t.Fatalf("expected default load timeout, got %v", s.loadTimeout)
	}
}

func TestBuildSource(t *testing.T) {
	cleanup := config.ResetForTesting(t)
	defer cleanup()

	t.Run("Arguments", func(t *testing.T) {
		src, err := buildSource(&cliFlags{}, []string{"a", "b"})
		if err != nil {
			t.Fatalf("buildSource: %v", err)
		}
		if len(src.options) != 2 || src.loader != nil {
			t.Fatalf("expected static options, got %+v", src)
		}
	})

	t.Run("AsyncArguments", func(t *testing.T) {
		src, err := buildSource(&cliFlags{async: true}, []string{"a", "b"})
		if err != nil {
			t.Fatalf("buildSource: %v", err)
		}
		if src.loader == nil || len(src.options) != 0 {
			t.Fatalf("expected a loader over the arguments, got %+v", src)
		}
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "opts.json")
		if err := os.WriteFile(path, []byte(`["x", {"label": "y"}]`), 0o600); err != nil {
			t.Fatal(err)
		}
		src, err := buildSource(&cliFlags{file: path}, nil)
		if err != nil {
			t.Fatalf("buildSource: %v", err)
		}
		if len(src.options) != 2 {
			t.Fatalf("expected two options from file, got %d", len(src.options))
		}
	})

	t.Run("Command", func(t *testing.T) {
		src, err := buildSource(&cliFlags{command: "ls -1"}, nil)
		if err != nil || src.loader == nil {
			t.Fatalf("expected command loader, got %+v, %v", src, err)
		}
	})

	t.Run("NoSource", func(t *testing.T) {
		_, err := buildSource(&cliFlags{}, nil)
		if !appErrors.IsCode(err, appErrors.CodeConfigurationError) {
			t.Fatalf("expected configuration error, got %v", err)
		}
	})

	t.Run("TwoSources", func(t *testing.T) {
		_, err := buildSource(&cliFlags{file: "a.json", command: "ls"}, []string{"x"})
		if !appErrors.IsCode(err, appErrors.CodeConfigurationError) {
			t.Fatalf("expected configuration error, got %v", err)
		}
	})

	t.Run("SQLiteNeedsTable", func(t *testing.T) {
		_, err := buildSource(&cliFlags{sqlite: "opts.db"}, nil)
		if !appErrors.IsCode(err, appErrors.CodeSourceUnavailable) {
			t.Fatalf("expected source error, got %v", err)
		}
	})

	t.Run("BlankCommand", func(t *testing.T) {
		_, err := buildSource(&cliFlags{command: "   "}, nil)
		if err == nil {
			t.Fatal("expected error for blank command")
		}
	})
}

func TestExtraColumns(t *testing.T) {
	if got := extraColumns("description", "label", ""); len(got) != 1 || got[0] != "description" {
		t.Fatalf("expected preview column, got %v", got)
	}
	if got := extraColumns("label", "label", ""); got != nil {
		t.Fatalf("expected no duplicate column, got %v", got)
	}
	if got := extraColumns("", "label", ""); got != nil {
		t.Fatalf("expected none without preview, got %v", got)
	}
}

func TestReadQuery(t *testing.T) {
	q, err := readQuery("{ labels { name } }")
	if err != nil || q != "{ labels { name } }" {
		t.Fatalf("expected inline query, got %q, %v", q, err)
	}

	path := filepath.Join(t.TempDir(), "q.graphql")
	if err := os.WriteFile(path, []byte("query { x }"), 0o600); err != nil {
		t.Fatal(err)
	}
	q, err = readQuery("@" + path)
	if err != nil || q != "query { x }" {
		t.Fatalf("expected file query, got %q, %v", q, err)
	}

	if _, err := readQuery("@" + filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing query file")
	}
}

func TestParseHeaders(t *testing.T) {
	h, err := parseHeaders([]string{"Authorization: Bearer abc", "X-Trace:1"})
	if err != nil {
		t.Fatalf("parseHeaders: %v", err)
	}
	if h["Authorization"] != "Bearer abc" || h["X-Trace"] != "1" {
		t.Fatalf("unexpected headers %v", h)
	}
	if _, err := parseHeaders([]string{"no-colon"}); err == nil {
		t.Fatal("expected error for malformed header")
	}
}

func TestWriteResult(t *testing.T) {
	value := domain.Value{
		domain.Primitive("apple"),
		domain.Labeled(map[string]any{"label": "kiwi", "kind": "berry"}),
	}
	label := domain.FieldLabel("label")

	var text bytes.Buffer
	if err := writeResult(&text, value, label, false); err != nil {
		t.Fatalf("writeResult: %v", err)
	}
	if text.String() != "apple\nkiwi\n" {
		t.Fatalf("unexpected text output %q", text.String())
	}

	var out bytes.Buffer
	if err := writeResult(&out, value, label, true); err != nil {
		t.Fatalf("writeResult json: %v", err)
	}
	var decoded []any
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if len(decoded) != 2 || decoded[0] != "apple" {
		t.Fatalf("unexpected json %v", decoded)
	}
	if rec, ok := decoded[1].(map[string]any); !ok || rec["kind"] != "berry" {
		t.Fatalf("expected record fields, got %v", decoded[1])
	}

	var empty bytes.Buffer
	if err := writeResult(&empty, nil, label, true); err != nil || strings.TrimSpace(empty.String()) != "[]" {
		t.Fatalf("expected empty array, got %q, %v", empty.String(), err)
	}
}

type staticProgram struct {
	model tea.Model
	err   error
}

func (p staticProgram) Run() (tea.Model, error) { return p.model, p.err }

func TestRunPicker(t *testing.T) {
	start := newPicker(optionSource{options: domain.Primitives("a")}, testSettings())

	finished := start
	finished.done = true
	got, err := runPicker(start, func(tea.Model) programRunner {
		return staticProgram{model: finished}
	})
	if err != nil || !got.done {
		t.Fatalf("expected final picker returned, got done=%v err=%v", got.done, err)
	}

	_, err = runPicker(start, func(tea.Model) programRunner {
		return staticProgram{err: errors.New("tty gone")}
	})
	if err == nil || !strings.Contains(err.Error(), "tty gone") {
		t.Fatalf("expected run error, got %v", err)
	}

	if _, err := runPicker(start, nil); err == nil {
		t.Fatal("expected error for nil factory")
	}
	if _, err := runPicker(start, func(tea.Model) programRunner { return nil }); err == nil {
		t.Fatal("expected error for nil program")
	}
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"--version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out.String(), "typeahead version ") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}
