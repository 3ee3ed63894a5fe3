// Package progression implements level and world progression: per-level
// attempts and completion, star ratings, unlock rules and world totals.
// It has no I/O and no logging; hosts drive it synchronously from one goroutine.
package progression

import "github.com/vovakirdan/starpath/internal/core"

// LevelSpec configures a new level.
// Content may be nil for levels that only track progression.
type LevelSpec struct {
	ID                string
	Name              string
	Difficulty        string
	UnlockRequirement int // Minimum predecessor stars, 0-3
	Content           *Content
}

// LevelProgress is the persisted outcome of a level.
type LevelProgress struct {
	LevelID   string  `json:"level_id" yaml:"level_id"`
	Completed bool    `json:"completed" yaml:"completed"`
	Stars     int     `json:"stars" yaml:"stars"`
	HighScore float64 `json:"high_score" yaml:"high_score"`
}

// Level tracks progression for one level and the attempt currently in play.
type Level struct {
	ID                string
	Name              string
	Difficulty        string
	UnlockRequirement int

	content   *Content
	completed bool
	highScore float64
	stars     int
	attempt   Attempt
	entities  []*Entity
}

// NewLevel creates a level with a fresh, empty attempt.
func NewLevel(spec LevelSpec) *Level {
	return &Level{
		ID:                spec.ID,
		Name:              spec.Name,
		Difficulty:        spec.Difficulty,
		UnlockRequirement: core.Clamp(spec.UnlockRequirement, 0, MaxStars),
		content:           spec.Content,
		attempt:           newAttempt(spec.Content),
	}
}

// HasContent reports whether the level carries playable content.
func (l *Level) HasContent() bool {
	return l.content != nil
}

// Content returns the level's static content, or nil.
func (l *Level) Content() *Content {
	return l.content
}

// Start resets the attempt and re-instantiates entities from content.
func (l *Level) Start() {
	l.attempt = newAttempt(l.content)
	l.entities = nil
	if l.content == nil {
		return
	}

	l.entities = make([]*Entity, len(l.content.Entities))
	for i, spec := range l.content.Entities {
		l.entities[i] = newEntity(i+1, spec)
	}
	l.attempt.evaluateObjectives()
}

// Update advances the attempt by dt seconds, moves active entities and
// re-evaluates objectives. Update(0) only re-evaluates objectives.
func (l *Level) Update(dt float64) error {
	if dt < 0 || !core.IsFinite(dt) {
		return &InvalidDeltaError{Delta: dt}
	}

	l.attempt.Elapsed += dt
	for _, e := range l.entities {
		e.Update(dt)
	}
	l.attempt.evaluateObjectives()
	return nil
}

// Complete marks the level completed and records finalScore if it is the
// first completion or beats the high score. Any completion earns at least one
// star, and stars never decrease. Returns the current star rating.
func (l *Level) Complete(finalScore float64) int {
	if !l.completed || finalScore > l.highScore {
		l.highScore = max(l.highScore, finalScore)
		l.stars = max(l.stars, StarsFor(finalScore))
	}
	l.completed = true
	return l.stars
}

// IsUnlocked reports whether a predecessor with the given stars opens this level.
func (l *Level) IsUnlocked(predecessorStars int) bool {
	return predecessorStars >= l.UnlockRequirement
}

// Completed reports whether the level has been completed at least once.
func (l *Level) Completed() bool { return l.completed }

// HighScore returns the best final score recorded.
func (l *Level) HighScore() float64 { return l.highScore }

// Stars returns the rating of the attempt that set the high score.
func (l *Level) Stars() int { return l.stars }

// Attempt returns a copy of the current attempt.
func (l *Level) Attempt() Attempt {
	return l.attempt.clone()
}

// Entities returns copies of the current attempt's entities.
func (l *Level) Entities() []Entity {
	out := make([]Entity, len(l.entities))
	for i, e := range l.entities {
		out[i] = e.clone()
	}
	return out
}

// Deactivate switches off the entity with the given id, e.g. a picked-up coin.
// Returns false if no active entity has that id.
func (l *Level) Deactivate(entityID int) bool {
	for _, e := range l.entities {
		if e.ID == entityID && e.Active {
			e.Active = false
			return true
		}
	}
	return false
}

// Progress returns the persistable outcome of the level.
func (l *Level) Progress() LevelProgress {
	return LevelProgress{
		LevelID:   l.ID,
		Completed: l.completed,
		Stars:     l.stars,
		HighScore: l.highScore,
	}
}

// Restore loads a previously persisted outcome. Stars are clamped to 0-3
// and negative high scores are treated as zero.
func (l *Level) Restore(p LevelProgress) {
	l.completed = p.Completed
	l.stars = core.Clamp(p.Stars, 0, MaxStars)
	l.highScore = p.HighScore
	if l.highScore < 0 {
		l.highScore = 0
	}
}
