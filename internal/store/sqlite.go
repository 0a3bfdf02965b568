package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/pitchside/matchcenter-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

var sqliteTypes = map[colKind]string{
	colInt:   "INTEGER",
	colFloat: "REAL",
	colText:  "TEXT",
	colBool:  "BOOLEAN",
	colJSON:  "TEXT",
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	for _, name := range model.TableNames {
		ddl := createTableSQL(name, columnsFor(tablePrototypes[name]), sqliteTypes)
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return eris.Wrapf(err, "sqlite: create table %s", name)
		}
		idx := fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_match_id ON %s(match_id)", name, name)
		if _, err := s.db.ExecContext(ctx, idx); err != nil {
			return eris.Wrapf(err, "sqlite: index %s", name)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveTables replaces the match's rows in a single transaction: partial
// runs never leave a half-written match behind.
func (s *SQLiteStore) SaveTables(ctx context.Context, ts *model.TableSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	for _, name := range model.TableNames {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE match_id = ?", name), ts.MatchID); err != nil {
			return eris.Wrapf(err, "sqlite: clear %s", name)
		}

		rows := ts.Rows(name)
		if len(rows) == 0 {
			continue
		}
		cols := columnsFor(rows[0])
		stmt, err := tx.PrepareContext(ctx, insertSQL(name, cols))
		if err != nil {
			return eris.Wrapf(err, "sqlite: prepare insert %s", name)
		}
		for _, row := range rows {
			if _, err := stmt.ExecContext(ctx, valuesFor(row)...); err != nil {
				stmt.Close()
				return eris.Wrapf(err, "sqlite: insert into %s", name)
			}
		}
		stmt.Close()
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: commit")
	}
	zap.L().Debug("store: match saved", zap.String("backend", "sqlite"), zap.Int("match_id", ts.MatchID))
	return nil
}

func createTableSQL(name string, cols []column, types map[colKind]string) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = fmt.Sprintf("\t%s %s", c.name, types[c.kind])
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)", name, strings.Join(defs, ",\n"))
}

func insertSQL(name string, cols []column) string {
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		name, strings.Join(names, ", "), strings.Join(marks, ", "))
}
