// internal/anicache/store.go

// Package anicache persists pairwise similarity results across runs in a
// sqlite database. Entries are keyed by the ordered genome-ID pair and are
// never invalidated; genomic content for a fixed genome ID is assumed
// immutable, so a cached value stays valid even as clustering changes.
package anicache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"taxoncheck/internal/ani"
)

// Store is a sqlite-backed ani.Cache.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the cache database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ani_cache (
		query_id TEXT NOT NULL,
		ref_id   TEXT NOT NULL,
		ani      REAL NOT NULL,
		af       REAL NOT NULL,
		PRIMARY KEY (query_id, ref_id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get implements ani.Cache.
func (s *Store) Get(query, ref string) (ani.Result, bool, error) {
	var res ani.Result
	err := s.db.QueryRow(
		`SELECT ani, af FROM ani_cache WHERE query_id = ? AND ref_id = ?`,
		query, ref,
	).Scan(&res.ANI, &res.AF)
	if err == sql.ErrNoRows {
		return ani.Result{}, false, nil
	}
	if err != nil {
		return ani.Result{}, false, fmt.Errorf("cache lookup: %w", err)
	}
	return res, true, nil
}

// Put implements ani.Cache. Re-inserting a pair overwrites the prior value;
// in practice values are write-once.
func (s *Store) Put(query, ref string, res ani.Result) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO ani_cache (query_id, ref_id, ani, af) VALUES (?, ?, ?, ?)`,
		query, ref, res.ANI, res.AF,
	)
	if err != nil {
		return fmt.Errorf("cache insert: %w", err)
	}
	return nil
}

// Len returns the number of cached pairs.
func (s *Store) Len() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM ani_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return n, nil
}
