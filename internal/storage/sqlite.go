package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const tokenKey = "api_token"

// Store handles all database operations: the persisted API token and
// the search history.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the store location under the user config dir,
// creating the directory if needed.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}

	dir := filepath.Join(base, "wikipath")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}

	return filepath.Join(dir, "wikipath.db"), nil
}

// NewStore creates a new Store instance, opening/creating the DB and initializing schema
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{db: db}

	// Initialize schema
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates tables and indices if they don't exist
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS credentials (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS searches (
		search_id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_article TEXT NOT NULL,
		target_article TEXT NOT NULL,
		path TEXT,
		length INTEGER DEFAULT 0,
		duration_ms INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_searches_created ON searches(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Token returns the stored API token, or the empty string if none is set
func (s *Store) Token() (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM credentials WHERE name = ?", tokenKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return value, nil
}

// SetToken stores or replaces the API token
func (s *Store) SetToken(token string) error {
	_, err := s.db.Exec(`
		INSERT INTO credentials (name, value)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = EXCLUDED.value
	`, tokenKey, token)

	if err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// ClearToken removes the stored API token if present
func (s *Store) ClearToken() error {
	_, err := s.db.Exec("DELETE FROM credentials WHERE name = ?", tokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// RecordSearch appends one completed search outcome to the history
func (s *Store) RecordSearch(rec SearchRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO searches (start_article, target_article, path, length, duration_ms)
		VALUES (?, ?, ?, ?, ?)
	`, rec.Start, rec.Target, rec.Path, rec.Length, rec.DurationMs)

	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// RecentSearches returns up to limit search records, newest first
func (s *Store) RecentSearches(limit int) ([]*SearchRecord, error) {
	rows, err := s.db.Query(`
		SELECT search_id, start_article, target_article, path, length, duration_ms, created_at
		FROM searches
		ORDER BY search_id DESC
		LIMIT ?
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to load searches: %w", err)
	}
	defer rows.Close()

	var records []*SearchRecord
	for rows.Next() {
		var rec SearchRecord
		if err := rows.Scan(&rec.SearchID, &rec.Start, &rec.Target, &rec.Path,
			&rec.Length, &rec.DurationMs, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search record: %w", err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating searches: %w", err)
	}

	return records, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
