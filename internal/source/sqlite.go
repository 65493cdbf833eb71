package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly

	"typeahead/internal/domain"
)

const defaultSQLiteLimit = 100

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLite loads options from one table of a SQLite database, opened read-only
// so a live writer is never blocked. Each row becomes a record option keyed by
// column name.
type SQLite struct {
	Path         string
	Table        string
	LabelColumn  string   // Matched against the search text; default "label"
	GroupColumn  string   // Optional grouping column
	ExtraColumns []string // Carried along for previews
	Limit        int      // Max rows per load; default 100
}

// Loader validates the table layout names and returns a loader that runs a
// LIKE query per search.
func (s SQLite) Loader() (domain.Loader, error) {
	path := strings.TrimSpace(s.Path)
	if path == "" {
		return nil, unavailable("sqlite source requires a database path", nil)
	}
	query, err := s.query()
	if err != nil {
		return nil, err
	}
	dsn := buildSQLiteDSN(path)
	limit := s.Limit
	if limit <= 0 {
		limit = defaultSQLiteLimit
	}
	columns := s.columns()

	return func(ctx context.Context, search string) ([]domain.Option, error) {
		db, err := openSQLite(ctx, dsn)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = db.Close()
		}()

		rows, err := db.QueryContext(ctx, query, "%"+escapeLike(search)+"%", limit)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", s.Table, err)
		}
		defer func() {
			_ = rows.Close()
		}()

		var opts []domain.Option
		for rows.Next() {
			values := make([]any, len(columns))
			ptrs := make([]any, len(columns))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return nil, fmt.Errorf("scan %s row: %w", s.Table, err)
			}
			fields := make(map[string]any, len(columns))
			for i, col := range columns {
				fields[col] = normalizeSQLValue(values[i])
			}
			opts = append(opts, domain.Labeled(fields))
		}
		return opts, rows.Err()
	}, nil
}

func (s SQLite) labelColumn() string {
	if s.LabelColumn == "" {
		return domain.DefaultLabelField
	}
	return s.LabelColumn
}

func (s SQLite) columns() []string {
	cols := []string{s.labelColumn()}
	if s.GroupColumn != "" {
		cols = append(cols, s.GroupColumn)
	}
	return append(cols, s.ExtraColumns...)
}

func (s SQLite) query() (string, error) {
	names := append([]string{s.Table}, s.columns()...)
	for _, name := range names {
		if !identPattern.MatchString(name) {
			return "", unavailable(fmt.Sprintf("invalid sqlite identifier %q", name), nil)
		}
	}
	quoted := make([]string, 0, len(names)-1)
	for _, col := range s.columns() {
		quoted = append(quoted, `"`+col+`"`)
	}
	label := `"` + s.labelColumn() + `"`
	return fmt.Sprintf(
		`SELECT %s FROM "%s" WHERE %s LIKE ? ESCAPE '\' ORDER BY %s LIMIT ?`,
		strings.Join(quoted, ", "), s.Table, label, label,
	), nil
}

// buildSQLiteDSN creates a read-only WAL DSN for the given path.
func buildSQLiteDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Set("mode", "ro")
	q.Set("_journal_mode", "WAL")
	q.Set("_busy_timeout", "3000")
	q.Set("cache", "shared")
	u.RawQuery = q.Encode()
	return u.String()
}

func openSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, unavailable("open sqlite db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, unavailable("ping sqlite db", err)
	}
	return db, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func normalizeSQLValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
