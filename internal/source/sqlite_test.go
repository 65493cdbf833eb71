package source

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	appErrors "typeahead/internal/errors"
)

func newFruitDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fruits.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if _, err := db.Exec(`CREATE TABLE fruits (name TEXT, kind TEXT, description TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	for _, row := range [][3]string{
		{"banana", "tropical", "Yellow and curved"},
		{"mango", "tropical", "Sweet stone fruit"},
		{"apple", "orchard", "Crisp"},
		{"50%_off", "promo", "Literal wildcard characters"},
	} {
		if _, err := db.Exec(`INSERT INTO fruits (name, kind, description) VALUES (?, ?, ?)`, row[0], row[1], row[2]); err != nil {
			t.Fatalf("insert %s: %v", row[0], err)
		}
	}
	return path
}

func TestSQLiteLoader(t *testing.T) {
	path := newFruitDB(t)
	load, err := SQLite{
		Path:         path,
		Table:        "fruits",
		LabelColumn:  "name",
		GroupColumn:  "kind",
		ExtraColumns: []string{"description"},
	}.Loader()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts, err := load(context.Background(), "an")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 2 {
		t.Fatalf("expected 2 matches for \"an\", got %d", len(opts))
	}
	if opts[0].FieldString("name") != "banana" || opts[1].FieldString("name") != "mango" {
		t.Fatalf("expected banana then mango, got %s, %s", opts[0].FieldString("name"), opts[1].FieldString("name"))
	}
	if got := opts[0].FieldString("kind"); got != "tropical" {
		t.Errorf("expected group column kind=tropical, got %q", got)
	}
	if got := opts[0].FieldString("description"); got != "Yellow and curved" {
		t.Errorf("expected extra column description, got %q", got)
	}

	all, err := load(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected every row for empty search, got %d", len(all))
	}
}

func TestSQLiteLoaderEscapesWildcards(t *testing.T) {
	load, err := SQLite{Path: newFruitDB(t), Table: "fruits", LabelColumn: "name"}.Loader()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts, err := load(context.Background(), "%_")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 1 || opts[0].FieldString("name") != "50%_off" {
		t.Fatalf("expected only the literal %%_ row, got %v", labels(opts))
	}
}

func TestSQLiteLoaderLimit(t *testing.T) {
	load, err := SQLite{Path: newFruitDB(t), Table: "fruits", LabelColumn: "name", Limit: 2}.Loader()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts, err := load(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 2 {
		t.Fatalf("expected limit of 2 rows, got %d", len(opts))
	}
}

func TestSQLiteLoaderValidation(t *testing.T) {
	if _, err := (SQLite{Table: "fruits"}).Loader(); !appErrors.IsCode(err, appErrors.CodeSourceUnavailable) {
		t.Errorf("expected missing path rejected, got %v", err)
	}
	if _, err := (SQLite{Path: "x.db", Table: "fruits; DROP TABLE fruits"}).Loader(); !appErrors.IsCode(err, appErrors.CodeSourceUnavailable) {
		t.Errorf("expected bad table name rejected, got %v", err)
	}
	if _, err := (SQLite{Path: "x.db", Table: "fruits", LabelColumn: "name--"}).Loader(); err == nil {
		t.Error("expected bad column name rejected")
	}
}

func TestSQLiteLoaderMissingDatabase(t *testing.T) {
	load, err := SQLite{Path: filepath.Join(t.TempDir(), "missing.db"), Table: "fruits"}.Loader()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := load(context.Background(), ""); !appErrors.IsCode(err, appErrors.CodeSourceUnavailable) {
		t.Fatalf("expected source_unavailable, got %v", err)
	}
}

func TestBuildSQLiteDSNIsReadOnly(t *testing.T) {
	dsn := buildSQLiteDSN("/tmp/options.db")
	if !strings.Contains(dsn, "file:") || !strings.Contains(dsn, "mode=ro") {
		t.Fatalf("expected read-only file URI, got %q", dsn)
	}
}
