package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS string_sets (
	key      TEXT    NOT NULL,
	value    TEXT    NOT NULL,
	position INTEGER NOT NULL,
	UNIQUE(key, value)
);

CREATE INDEX IF NOT EXISTS idx_string_sets_key ON string_sets(key);
`

// SQLiteStore keeps sets as rows of a single table.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store: empty path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite store: create dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite store: schema: %w", err)
	}
	return &SQLiteStore{conn: conn}, nil
}

func (s *SQLiteStore) Strings(ctx context.Context, key string) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT value FROM string_sets WHERE key = ? ORDER BY position`, key)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: query: %w", err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("sqlite store: scan: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite store: rows: %w", err)
	}
	return values, nil
}

// SetStrings replaces the set in one transaction.
func (s *SQLiteStore) SetStrings(ctx context.Context, key string, values []string) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite store: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM string_sets WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite store: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO string_sets (key, value, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite store: prepare: %w", err)
	}
	defer stmt.Close()

	for i, v := range dedupe(values) {
		if _, err := stmt.ExecContext(ctx, key, v, i); err != nil {
			return fmt.Errorf("sqlite store: insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite store: commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
