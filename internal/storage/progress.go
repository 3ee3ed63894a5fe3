package storage

import (
	"fmt"

	"github.com/vovakirdan/starpath/internal/progression"
	"github.com/vovakirdan/starpath/internal/session"
)

// SaveProgress stores one level's progress for a player, replacing any
// previous row for the same level.
func (s *Store) SaveProgress(player, worldID string, p progression.LevelProgress) error {
	_, err := s.db.Exec(
		`INSERT INTO level_progress (player, world_id, level_id, completed, stars, high_score)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(player, world_id, level_id) DO UPDATE SET
		   completed = excluded.completed,
		   stars = excluded.stars,
		   high_score = excluded.high_score,
		   updated_at = CURRENT_TIMESTAMP`,
		player, worldID, p.LevelID, p.Completed, p.Stars, p.HighScore,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress for %s: %w", p.LevelID, err)
	}
	return nil
}

// LoadProgress retrieves a player's saved progress for a world.
// Returns an empty slice if nothing was saved.
func (s *Store) LoadProgress(player, worldID string) ([]progression.LevelProgress, error) {
	rows, err := s.db.Query(
		`SELECT level_id, completed, stars, high_score
		 FROM level_progress
		 WHERE player = ? AND world_id = ?
		 ORDER BY level_id`,
		player, worldID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var progress []progression.LevelProgress
	for rows.Next() {
		var p progression.LevelProgress
		if err := rows.Scan(&p.LevelID, &p.Completed, &p.Stars, &p.HighScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		progress = append(progress, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return progress, nil
}

// ResetProgress deletes a player's progress for a world.
// Run history is kept.
func (s *Store) ResetProgress(player, worldID string) error {
	_, err := s.db.Exec(
		"DELETE FROM level_progress WHERE player = ? AND world_id = ?",
		player, worldID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// Ensure Store implements ProgressStore
var _ session.ProgressStore = (*Store)(nil)
