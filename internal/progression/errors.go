package progression

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks against the typed errors below.
var (
	ErrDuplicateLevel  = errors.New("progression: duplicate level id")
	ErrInvalidDelta    = errors.New("progression: invalid tick delta")
	ErrInvalidProgress = errors.New("progression: invalid progress delta")
)

// DuplicateLevelError is returned when a world already holds a level with the same id.
type DuplicateLevelError struct {
	WorldID string
	LevelID string
}

func (e *DuplicateLevelError) Error() string {
	return fmt.Sprintf("progression: world %q already has level %q", e.WorldID, e.LevelID)
}

func (e *DuplicateLevelError) Is(target error) bool {
	return target == ErrDuplicateLevel
}

// InvalidDeltaError is returned by Level.Update for negative or non-finite deltas.
type InvalidDeltaError struct {
	Delta float64
}

func (e *InvalidDeltaError) Error() string {
	return fmt.Sprintf("progression: tick delta must be finite and non-negative, got %v", e.Delta)
}

func (e *InvalidDeltaError) Is(target error) bool {
	return target == ErrInvalidDelta
}

// InvalidProgressError is returned when a progress delta cannot be applied.
type InvalidProgressError struct {
	LevelID string
	Field   string
	Reason  string
}

func (e *InvalidProgressError) Error() string {
	return fmt.Sprintf("progression: level %q: %s %s", e.LevelID, e.Field, e.Reason)
}

func (e *InvalidProgressError) Is(target error) bool {
	return target == ErrInvalidProgress
}
