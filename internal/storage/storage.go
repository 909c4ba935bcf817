// Package storage defines the persistence interfaces and their SQLite
// implementation: the cross-run property store and the article archive.
package storage

import "context"

// PropertyStore is the string key-value interface all cross-run state goes
// through. It is read once at the start and written once at the end of a
// run.
type PropertyStore interface {
	GetProperty(ctx context.Context, name string) (value string, ok bool, err error)
	SetProperty(ctx context.Context, name, value string) error
}

// ArchiveRow is one archived article, already projected to display text.
type ArchiveRow struct {
	PubDateText string
	Title       string
	Source      string
	Link        string
	Description string
	Keywords    string
}

// NewsArchive persists delivered articles for later reference.
type NewsArchive interface {
	// InsertArchiveRows appends rows in input order; callers pass them
	// newest-first.
	InsertArchiveRows(ctx context.Context, rows []ArchiveRow) error
	// RecentArchiveRows returns up to limit rows, most recently archived
	// first.
	RecentArchiveRows(ctx context.Context, limit int) ([]ArchiveRow, error)
}

// Store combines both persistence roles behind one handle.
type Store interface {
	PropertyStore
	NewsArchive
	Close() error
}
