// Package session drives one player's run through a world: it restores saved
// progress, starts levels, advances them on a fixed tick and persists results
// when a level is finished.
package session

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starpath/internal/core"
	"github.com/vovakirdan/starpath/internal/progression"
)

var (
	ErrUnknownLevel  = errors.New("session: unknown level")
	ErrLevelLocked   = errors.New("session: level locked")
	ErrNoActiveLevel = errors.New("session: no active level")
)

// ProgressStore persists per-player progress and finished runs.
// This allows the session to save results without depending on the storage package.
type ProgressStore interface {
	LoadProgress(player, worldID string) ([]progression.LevelProgress, error)
	SaveProgress(player, worldID string, p progression.LevelProgress) error
	SaveRun(run RunData) error
}

// RunData describes a finished level attempt for persistence.
type RunData struct {
	Player       string
	WorldID      string
	LevelID      string
	FinalScore   float64
	Stars        int
	Collectibles int
	Objectives   int
	Elapsed      float64 // Seconds
	NewBest      bool
}

// Config holds configuration for a session.
type Config struct {
	Player  string
	Runtime core.RuntimeConfig
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Player:  "player",
		Runtime: core.DefaultConfig(),
	}
}

// Session owns one world for one player.
type Session struct {
	config Config
	world  *progression.World
	store  ProgressStore // Optional, can be nil
	logger *log.Logger

	mu     sync.Mutex
	active *progression.Level
}

// New creates a session over world. A nil logger discards output.
func New(world *progression.World, cfg Config, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Player == "" {
		cfg.Player = DefaultConfig().Player
	}
	return &Session{
		config: cfg,
		world:  world,
		logger: logger.With("player", cfg.Player, "world", world.ID),
	}
}

// SetStore sets the optional progress store.
func (s *Session) SetStore(store ProgressStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store
}

// World returns the world this session plays.
func (s *Session) World() *progression.World { return s.world }

// Player returns the player name.
func (s *Session) Player() string { return s.config.Player }

// Resume restores the player's saved progress into the world.
// Without a store it is a no-op.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	progress, err := s.store.LoadProgress(s.config.Player, s.world.ID)
	if err != nil {
		return fmt.Errorf("session: load progress: %w", err)
	}
	s.world.Restore(progress)
	s.logger.Debug("progress restored", "levels", len(progress), "stars", s.world.TotalStars())
	return nil
}

// Start begins a fresh attempt at levelID and makes it the active level.
func (s *Session) Start(levelID string) (*progression.Level, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	level, ok := s.world.Level(levelID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, levelID)
	}
	status, _ := s.world.LevelStatus(levelID)
	if !status.Unlocked {
		return nil, fmt.Errorf("%w: %s needs %d stars on the previous level, has %d",
			ErrLevelLocked, levelID, level.UnlockRequirement, s.world.PreviousLevelStars(levelID))
	}

	level.Start()
	s.active = level
	s.logger.Info("level started", "level", levelID)
	return level, nil
}

// Active returns the level being played, if any.
func (s *Session) Active() (*progression.Level, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.active != nil
}

// Abandon drops the active attempt without recording anything.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		s.logger.Info("level abandoned", "level", s.active.ID)
	}
	s.active = nil
}

// Tick advances the active level by one fixed tick.
func (s *Session) Tick() error {
	return s.Advance(s.config.Runtime.TickDelta())
}

// Advance advances the active level by dt seconds.
func (s *Session) Advance(dt float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return ErrNoActiveLevel
	}
	return s.active.Update(dt)
}

// Apply feeds a progress delta into the active level. When the delta reaches
// the end, the level's progress and the run are persisted and the session has
// no active level afterwards.
func (s *Session) Apply(d progression.Delta) (progression.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return progression.Outcome{}, ErrNoActiveLevel
	}
	out, err := s.world.ApplyProgress(s.active, d)
	if err != nil {
		return out, err
	}
	if !out.Finished {
		return out, nil
	}

	level := s.active
	s.active = nil
	attempt := level.Attempt()
	s.logger.Info("level finished",
		"level", level.ID,
		"score", out.FinalScore,
		"stars", out.Stars,
		"new_best", out.NewBest,
	)
	if s.world.Completed() {
		s.logger.Info("world completed", "stars", s.world.TotalStars(), "max", s.world.MaxTotalStars())
	}

	if s.store == nil {
		return out, nil
	}
	if err := s.store.SaveProgress(s.config.Player, s.world.ID, level.Progress()); err != nil {
		return out, fmt.Errorf("session: save progress: %w", err)
	}
	run := RunData{
		Player:       s.config.Player,
		WorldID:      s.world.ID,
		LevelID:      level.ID,
		FinalScore:   out.FinalScore,
		Stars:        out.Stars,
		Collectibles: attempt.Collectibles,
		Objectives:   attempt.CompletedObjectives(),
		Elapsed:      attempt.Elapsed,
		NewBest:      out.NewBest,
	}
	if err := s.store.SaveRun(run); err != nil {
		return out, fmt.Errorf("session: save run: %w", err)
	}
	return out, nil
}

// Statuses returns the world's level statuses in play order.
func (s *Session) Statuses() []progression.LevelStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Statuses()
}
