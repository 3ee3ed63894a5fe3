package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/starpath/internal/progression"
)

// ErrEmptyScript is returned for a script without steps.
var ErrEmptyScript = errors.New("session: script has no steps")

// Script is a recorded play-through replayed against a level.
//
//	level: "1-1"
//	steps:
//	  - ticks: 600
//	    score: 120
//	    collectibles: 2
//	    consume: [1, 2]
//	  - dt: 5
//	    checkpoint: 0
//	  - end: true
type Script struct {
	Level string `yaml:"level"`
	Steps []Step `yaml:"steps"`
}

// Step advances the level, then applies its gains as one delta.
type Step struct {
	Ticks        int     `yaml:"ticks"` // Fixed ticks to run first
	DT           float64 `yaml:"dt"`    // Extra seconds to advance
	Score        float64 `yaml:"score"`
	Collectibles int     `yaml:"collectibles"`
	Checkpoint   *int    `yaml:"checkpoint"`
	Consume      []int   `yaml:"consume"`
	End          bool    `yaml:"end"`
}

// Delta converts the step's gains to a progress delta.
func (st Step) Delta() progression.Delta {
	return progression.Delta{
		ScoreGained:        st.Score,
		CollectiblesGained: st.Collectibles,
		Checkpoint:         st.Checkpoint,
		Consumed:           st.Consume,
		ReachedEnd:         st.End,
	}
}

// ParseScript decodes a script, rejecting unknown keys.
func ParseScript(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Script
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("session: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, st := range sc.Steps {
		if st.Ticks < 0 {
			return nil, fmt.Errorf("session: step %d: negative ticks %d", i+1, st.Ticks)
		}
	}
	return &sc, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("session: read script: %w", err)
	}
	return ParseScript(data)
}

// RunScript starts levelID (or the script's own level when empty) and plays
// the steps in order. It stops at the first step that finishes the level.
// A script that never reaches the end returns an unfinished outcome and
// leaves the level active. Cancelling ctx abandons the attempt.
func (s *Session) RunScript(ctx context.Context, sc *Script, levelID string) (progression.Outcome, error) {
	if levelID == "" {
		levelID = sc.Level
	}
	if _, err := s.Start(levelID); err != nil {
		return progression.Outcome{}, err
	}

	var out progression.Outcome
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			s.Abandon()
			return out, err
		}
		for range st.Ticks {
			if err := s.Tick(); err != nil {
				return out, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if st.DT != 0 {
			if err := s.Advance(st.DT); err != nil {
				return out, fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		var err error
		out, err = s.Apply(st.Delta())
		if err != nil {
			return out, fmt.Errorf("step %d: %w", i+1, err)
		}
		if out.Finished {
			return out, nil
		}
	}
	return out, nil
}
