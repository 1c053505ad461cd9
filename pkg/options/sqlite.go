package options

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS options (
    option_name TEXT PRIMARY KEY,
    option_value TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// SQLiteBackend stores options in an options table of a SQLite database.
type SQLiteBackend struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures
// the options table exists.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ensure options table: %w", err)
	}
	return &SQLiteBackend{sqlDB: sqlDB}, nil
}

// Get loads an option value by name.
func (b *SQLiteBackend) Get(ctx context.Context, name string) (string, bool, error) {
	if b == nil || b.sqlDB == nil {
		return "", false, fmt.Errorf("storage is not configured")
	}
	var value string
	err := b.sqlDB.QueryRowContext(ctx,
		`SELECT option_value FROM options WHERE option_name = ?`, name,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get option %s: %w", name, err)
	}
	return value, true, nil
}

// Set upserts an option value by name.
func (b *SQLiteBackend) Set(ctx context.Context, name, value string) error {
	if b == nil || b.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := requireName(name); err != nil {
		return err
	}
	_, err := b.sqlDB.ExecContext(ctx,
		`INSERT INTO options (option_name, option_value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(option_name) DO UPDATE SET
		    option_value = excluded.option_value,
		    updated_at = excluded.updated_at`,
		name, value, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("set option %s: %w", name, err)
	}
	return nil
}

// Delete removes an option by name.
func (b *SQLiteBackend) Delete(ctx context.Context, name string) error {
	if b == nil || b.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := b.sqlDB.ExecContext(ctx, `DELETE FROM options WHERE option_name = ?`, name); err != nil {
		return fmt.Errorf("delete option %s: %w", name, err)
	}
	return nil
}

// Close releases the underlying SQLite connection.
func (b *SQLiteBackend) Close() error {
	if b == nil || b.sqlDB == nil {
		return nil
	}
	return b.sqlDB.Close()
}

var _ Backend = (*SQLiteBackend)(nil)
