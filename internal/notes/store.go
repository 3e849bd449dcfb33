// Package notes persists reviewer annotations per review line in a
// local SQLite database. Notes outlive a single run, so a re-exported
// workbook can carry forward what a reviewer already wrote about a
// (session, warehouse, item, lot, location) line.
package notes

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/invkit/recount/pkg/errors"
)

// Note is one reviewer annotation on a review line.
type Note struct {
	SessionID string    `json:"session_id" yaml:"session_id"`
	Warehouse string    `json:"warehouse" yaml:"warehouse"`
	Item      string    `json:"item" yaml:"item"`
	Lot       string    `json:"lot" yaml:"lot"`
	Location  string    `json:"location" yaml:"location"`
	Status    string    `json:"status,omitempty" yaml:"status,omitempty"`
	Author    string    `json:"author,omitempty" yaml:"author,omitempty"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Store is a SQLite-backed notes database.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS review_notes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	warehouse TEXT NOT NULL,
	item TEXT NOT NULL,
	lot TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL DEFAULT '',
	note TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(session_id, warehouse, item, lot, location)
);
CREATE INDEX IF NOT EXISTS idx_notes_session ON review_notes(session_id);
`

// Open initializes the notes database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.WrapIO("mkdir", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapStore("open", err)
	}

	// WAL keeps concurrent readers from blocking the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, errors.WrapStore("pragma", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.WrapStore("migrate", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.WrapStore("close", err)
	}
	return nil
}

// Upsert inserts or updates the note for its review line. The key is
// (session, warehouse, item, lot, location); a second upsert on the
// same key replaces the text and bumps updated_at.
func (s *Store) Upsert(ctx context.Context, n Note) error {
	if n.SessionID == "" || n.Warehouse == "" || n.Item == "" || n.Location == "" {
		return errors.NewValidationError("note", n, "session, warehouse, item, and location are required")
	}

	const q = `
INSERT INTO review_notes (session_id, warehouse, item, lot, location, status, author, note)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id, warehouse, item, lot, location) DO UPDATE SET
	status = excluded.status,
	author = excluded.author,
	note = excluded.note,
	updated_at = CURRENT_TIMESTAMP`

	if _, err := s.db.ExecContext(ctx, q,
		n.SessionID, n.Warehouse, n.Item, n.Lot, n.Location,
		n.Status, n.Author, n.Text); err != nil {
		return errors.WrapStore("upsert", err)
	}
	return nil
}

// Get returns the note for one review line, or ErrNotFound.
func (s *Store) Get(ctx context.Context, sessionID, warehouse, item, lot, location string) (Note, error) {
	const q = `
SELECT session_id, warehouse, item, lot, location, status, author, note, created_at, updated_at
FROM review_notes
WHERE session_id = ? AND warehouse = ? AND item = ? AND lot = ? AND location = ?`

	row := s.db.QueryRowContext(ctx, q, sessionID, warehouse, item, lot, location)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return Note{}, errors.ErrNotFound
	}
	if err != nil {
		return Note{}, errors.WrapStore("get", err)
	}
	return n, nil
}

// Session returns every note recorded for a session, ordered by
// (warehouse, item, lot, location) to match the review workbook.
func (s *Store) Session(ctx context.Context, sessionID string) ([]Note, error) {
	const q = `
SELECT session_id, warehouse, item, lot, location, status, author, note, created_at, updated_at
FROM review_notes
WHERE session_id = ?
ORDER BY warehouse, item, lot, location`

	rows, err := s.db.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, errors.WrapStore("query", err)
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, errors.WrapStore("scan", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapStore("iterate", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanNote reads one review_notes row. SQLite stores CURRENT_TIMESTAMP
// as text, so timestamps are scanned as strings and parsed.
func scanNote(row scanner) (Note, error) {
	var n Note
	var created, updated string
	if err := row.Scan(&n.SessionID, &n.Warehouse, &n.Item, &n.Lot, &n.Location,
		&n.Status, &n.Author, &n.Text, &created, &updated); err != nil {
		return Note{}, err
	}
	n.CreatedAt = parseTime(created)
	n.UpdatedAt = parseTime(updated)
	return n, nil
}

func parseTime(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Delete removes the note for one review line. Deleting an absent note
// is not an error.
func (s *Store) Delete(ctx context.Context, sessionID, warehouse, item, lot, location string) error {
	const q = `
DELETE FROM review_notes
WHERE session_id = ? AND warehouse = ? AND item = ? AND lot = ? AND location = ?`

	if _, err := s.db.ExecContext(ctx, q, sessionID, warehouse, item, lot, location); err != nil {
		return errors.WrapStore("delete", err)
	}
	return nil
}
