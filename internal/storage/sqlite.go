// Package storage provides SQLite-based persistence for players, level
// progress, finished runs and payments.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS level_progress (
			player TEXT NOT NULL,
			world_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			stars INTEGER NOT NULL DEFAULT 0,
			high_score REAL NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (player, world_id, level_id)
		);

		CREATE TABLE IF NOT EXISTS game_sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			world_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			score REAL NOT NULL,
			stars INTEGER NOT NULL,
			collectibles INTEGER NOT NULL DEFAULT 0,
			objectives INTEGER NOT NULL DEFAULT 0,
			elapsed REAL NOT NULL DEFAULT 0,
			new_best INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_level ON game_sessions(level_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_player ON game_sessions(player);

		CREATE TABLE IF NOT EXISTS payments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			payment_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			amount REAL NOT NULL,
			memo TEXT NOT NULL DEFAULT '',
			txid TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_payments_player ON payments(player);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// PlayerEntry is a registered player.
type PlayerEntry struct {
	ID          int64
	Name        string
	DisplayName string
	CreatedAt   time.Time
}

// EnsurePlayer registers name if it is not known yet and returns its ID.
// An existing player's display name is updated when displayName is non-empty.
func (s *Store) EnsurePlayer(name, displayName string) (int64, error) {
	if name == "" {
		return 0, errors.New("storage: player name is required")
	}
	_, err := s.db.Exec(
		`INSERT INTO players (name, display_name) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET display_name = excluded.display_name
		 WHERE excluded.display_name != ''`,
		name, displayName,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save player: %w", err)
	}

	var id int64
	if err := s.db.QueryRow("SELECT id FROM players WHERE name = ?", name).Scan(&id); err != nil {
		return 0, fmt.Errorf("storage: cannot get player ID: %w", err)
	}
	return id, nil
}

// Player retrieves a player by name. Returns nil if not found.
func (s *Store) Player(name string) (*PlayerEntry, error) {
	var p PlayerEntry
	var createdAt any
	err := s.db.QueryRow(
		"SELECT id, name, display_name, created_at FROM players WHERE name = ?",
		name,
	).Scan(&p.ID, &p.Name, &p.DisplayName, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player: %w", err)
	}
	p.CreatedAt = parseTimestamp(createdAt)
	return &p, nil
}
