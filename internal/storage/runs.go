package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/starpath/internal/session"
)

// RunEntry is one finished level attempt.
type RunEntry struct {
	ID           int64
	Player       string
	WorldID      string
	LevelID      string
	Score        float64
	Stars        int
	Collectibles int
	Objectives   int
	Elapsed      float64 // Seconds
	NewBest      bool
	CreatedAt    time.Time
}

// SaveRunEntry records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRunEntry(e RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO game_sessions
		 (player, world_id, level_id, score, stars, collectibles, objectives, elapsed, new_best)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Player, e.WorldID, e.LevelID, e.Score, e.Stars, e.Collectibles, e.Objectives, e.Elapsed, e.NewBest,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveRun implements session.ProgressStore.
// This adapter allows the session to save runs without direct storage dependency.
func (s *Store) SaveRun(run session.RunData) error {
	_, err := s.SaveRunEntry(RunEntry{
		Player:       run.Player,
		WorldID:      run.WorldID,
		LevelID:      run.LevelID,
		Score:        run.FinalScore,
		Stars:        run.Stars,
		Collectibles: run.Collectibles,
		Objectives:   run.Objectives,
		Elapsed:      run.Elapsed,
		NewBest:      run.NewBest,
	})
	return err
}

const runColumns = `id, player, world_id, level_id, score, stars, collectibles, objectives, elapsed, new_best, created_at`

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&e.Player,
			&e.WorldID,
			&e.LevelID,
			&e.Score,
			&e.Stars,
			&e.Collectibles,
			&e.Objectives,
			&e.Elapsed,
			&e.NewBest,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// TopRuns retrieves the top N runs for a level across all players.
// Results are ordered by score descending.
func (s *Store) TopRuns(levelID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM game_sessions
		 WHERE level_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// PlayerRuns retrieves a player's most recent runs.
func (s *Store) PlayerRuns(player string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM game_sessions
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Runs       int
	BestScore  float64
	AvgScore   float64
	LastPlayed time.Time
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	// Get count, best, avg
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM game_sessions WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.BestScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM game_sessions WHERE level_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		levelID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}
