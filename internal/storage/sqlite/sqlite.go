// Package sqlite provides a storage.Document kept inside a SQLite database
// file, selected with `storage_driver: sqlite`.
//
// The collection is still one JSON document: a single row of the
// documents table, read and replaced as a whole. SQLite only supplies the
// file and atomic replacement of that row.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-store/internal/config"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// DocumentName is the key of the row holding the student collection.
const DocumentName = "students"

// SQLite is a storage.Document stored as one row of the documents table.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db   *sql.DB
	name string
}

// New opens the SQLite database at cfg.StoragePath and creates the
// documents table if it does not already exist.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet — the first actual
	// connection happens on the first query.
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup.
	//
	// Schema:
	//   name — document key, one row per document
	//   body — the JSON text of the whole document
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db, name: DocumentName}, nil
}

// Load returns the document body, inserting `[]` when the row is absent.
func (s *SQLite) Load() ([]byte, error) {
	// INSERT OR IGNORE leaves an existing row alone, so this both
	// initialises a fresh database and is a no-op afterwards.
	if _, err := s.Db.Exec(
		"INSERT OR IGNORE INTO documents (name, body) VALUES (?, '[]')",
		s.name,
	); err != nil {
		return nil, fmt.Errorf("Load: init row: %w", err)
	}

	var body string
	err := s.Db.QueryRow(
		"SELECT body FROM documents WHERE name = ? LIMIT 1",
		s.name,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Load: document %q vanished", s.name)
		}
		return nil, fmt.Errorf("Load: scan: %w", err)
	}

	return []byte(body), nil
}

// Save replaces the document body in a single statement.
func (s *SQLite) Save(body []byte) error {
	stmt, err := s.Db.Prepare(`
		INSERT INTO documents (name, body) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body
	`)
	if err != nil {
		return fmt.Errorf("Save: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(s.name, string(body)); err != nil {
		return fmt.Errorf("Save: exec: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
