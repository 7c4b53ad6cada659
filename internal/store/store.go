// Package store caches the in-memory document in a local SQLite file.
// The cache is best-effort: in-memory state is always the authority, and a
// failed write never rolls anything back.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"synthdeck/internal/model"
)

// DocumentKey namespaces the cached document; the companion timestamp row
// lives under DocumentKey + "-timestamp".
const DocumentKey = "research-dashboard-data"

const timestampKey = DocumentKey + "-timestamp"

// Store wraps a SQLite key-value cache
type Store struct {
	conn *sql.DB
	Path string
}

// Open opens (or creates) the cache at path with WAL mode enabled.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	// One connection is enough for a single-user cache
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS cache (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating cache table: %w", err)
	}

	return &Store{conn: conn, Path: path}, nil
}

// Close closes the underlying connection
func (s *Store) Close() error {
	return s.conn.Close()
}

// SaveDocument serializes the document and upserts it together with the
// current save time.
func (s *Store) SaveDocument(d model.Document) error {
	raw, err := d.Encode()
	if err != nil {
		return err
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting save: %w", err)
	}
	defer tx.Rollback()

	upsert := `INSERT INTO cache (key, value) VALUES (?1, ?2)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(upsert, DocumentKey, string(raw)); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	if _, err := tx.Exec(upsert, timestampKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing save time: %w", err)
	}
	return tx.Commit()
}

// LoadDocument returns the cached document; ok is false when the cache is
// empty.
func (s *Store) LoadDocument() (model.Document, bool, error) {
	var raw string
	err := s.conn.QueryRow("SELECT value FROM cache WHERE key = ?1", DocumentKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.Document{}, false, nil
	}
	if err != nil {
		return model.Document{}, false, fmt.Errorf("reading cache: %w", err)
	}

	doc, err := model.Decode([]byte(raw))
	if err != nil {
		return model.Document{}, false, err
	}
	return doc, true, nil
}

// LastSaved reports the persisted save time; ok is false when nothing has
// been saved.
func (s *Store) LastSaved() (time.Time, bool, error) {
	var raw string
	err := s.conn.QueryRow("SELECT value FROM cache WHERE key = ?1", timestampKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading save time: %w", err)
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing save time: %w", err)
	}
	return t, true, nil
}

// Clear removes the cached document and its timestamp.
func (s *Store) Clear() error {
	if _, err := s.conn.Exec("DELETE FROM cache WHERE key IN (?1, ?2)", DocumentKey, timestampKey); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
