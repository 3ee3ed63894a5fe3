package progression

import (
	"fmt"

	"github.com/vovakirdan/starpath/internal/core"
)

// Delta is a batch of progress reported by the gameplay layer.
type Delta struct {
	ScoreGained        float64
	CollectiblesGained int
	Checkpoint         *int  // Index into Content.Checkpoints
	Consumed           []int // Entity ids to deactivate (collected, defeated)
	ReachedEnd         bool
}

// Outcome describes what ApplyProgress did.
type Outcome struct {
	Finished   bool    // The delta reached the end of the level
	Recorded   bool    // The world accepted the completion
	FinalScore float64 // Valid when Finished
	Stars      int     // Level stars after completion
	NewBest    bool    // FinalScore beat the previous high score
}

// ApplyProgress is the single ingestion point from gameplay into
// progression. It adds the gains to the level's attempt, re-evaluates
// objectives and, when the end is reached, finalizes the level through
// CompleteLevel. An invalid delta leaves the attempt untouched.
func (w *World) ApplyProgress(l *Level, d Delta) (Outcome, error) {
	if err := validateDelta(l, d); err != nil {
		return Outcome{}, err
	}

	l.attempt.Score += d.ScoreGained
	l.attempt.Collectibles += d.CollectiblesGained
	if d.Checkpoint != nil {
		l.attempt.Checkpoint = *d.Checkpoint
	}
	for _, id := range d.Consumed {
		l.Deactivate(id)
	}
	l.attempt.evaluateObjectives()

	if !d.ReachedEnd {
		return Outcome{Stars: l.Stars()}, nil
	}

	final := ComputeFinalScore(l.attempt, l.content)
	firstClear := !l.Completed()
	previousBest := l.HighScore()
	recorded := false
	if w.levels[l.ID] == l {
		recorded = w.CompleteLevel(l.ID, final)
	}
	return Outcome{
		Finished:   true,
		Recorded:   recorded,
		FinalScore: final,
		Stars:      l.Stars(),
		NewBest:    recorded && (firstClear || final > previousBest),
	}, nil
}

func validateDelta(l *Level, d Delta) error {
	if d.ScoreGained < 0 || !core.IsFinite(d.ScoreGained) {
		return &InvalidProgressError{LevelID: l.ID, Field: "score gained", Reason: fmt.Sprintf("must be finite and non-negative, got %v", d.ScoreGained)}
	}
	if d.CollectiblesGained < 0 {
		return &InvalidProgressError{LevelID: l.ID, Field: "collectibles gained", Reason: fmt.Sprintf("must be non-negative, got %d", d.CollectiblesGained)}
	}
	if d.Checkpoint != nil {
		n := 0
		if l.content != nil {
			n = len(l.content.Checkpoints)
		}
		if *d.Checkpoint < 0 || *d.Checkpoint >= n {
			return &InvalidProgressError{LevelID: l.ID, Field: "checkpoint", Reason: fmt.Sprintf("index %d out of range [0,%d)", *d.Checkpoint, n)}
		}
	}
	seen := make(map[int]bool, len(d.Consumed))
	for _, id := range d.Consumed {
		if seen[id] {
			return &InvalidProgressError{LevelID: l.ID, Field: "consumed entity", Reason: fmt.Sprintf("%d listed more than once", id)}
		}
		seen[id] = true
		if !l.hasActiveEntity(id) {
			return &InvalidProgressError{LevelID: l.ID, Field: "consumed entity", Reason: fmt.Sprintf("%d is not an active entity", id)}
		}
	}
	return nil
}

func (l *Level) hasActiveEntity(id int) bool {
	for _, e := range l.entities {
		if e.ID == id && e.Active {
			return true
		}
	}
	return false
}
