package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite" // SQLite driver registration.

	"newsbot/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Store backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// GetProperty reads a single property value. ok is false when the property
// was never set.
func (s *SQLite) GetProperty(ctx context.Context, name string) (string, bool, error) {
	query, args, err := sq.Select("value").
		From("properties").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build query: %w", err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get property %q: %w", name, err)
	}
	return value, true, nil
}

// SetProperty stores a property value, replacing any previous one.
func (s *SQLite) SetProperty(ctx context.Context, name, value string) error {
	now := time.Now().UTC().Format(timeLayout)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO properties (name, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, value, now,
	)
	if err != nil {
		return fmt.Errorf("set property %q: %w", name, err)
	}
	return nil
}

// InsertArchiveRows appends archive rows in input order within one
// transaction, so a failed run archives either everything or nothing.
func (s *SQLite) InsertArchiveRows(ctx context.Context, rows []ArchiveRow) error {
	if len(rows) == 0 {
		return nil
	}

	now := time.Now().UTC().Format(timeLayout)
	builder := sq.Insert("news_archive").
		Columns("pub_date", "title", "source", "link", "description", "keywords", "archived_at")
	for _, row := range rows {
		builder = builder.Values(row.PubDateText, row.Title, row.Source, row.Link, row.Description, row.Keywords, now)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert archive rows: %w", err)
	}
	return tx.Commit()
}

// RecentArchiveRows returns up to limit rows, most recently inserted first.
func (s *SQLite) RecentArchiveRows(ctx context.Context, limit int) ([]ArchiveRow, error) {
	query, args, err := sq.Select("pub_date", "title", "source", "link", "description", "keywords").
		From("news_archive").
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	dbRows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer func() { _ = dbRows.Close() }()

	var rows []ArchiveRow
	for dbRows.Next() {
		var row ArchiveRow
		if err := dbRows.Scan(&row.PubDateText, &row.Title, &row.Source, &row.Link, &row.Description, &row.Keywords); err != nil {
			return nil, fmt.Errorf("scan archive row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, dbRows.Err()
}
