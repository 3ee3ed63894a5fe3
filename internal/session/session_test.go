package session

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/starpath/internal/core"
	"github.com/vovakirdan/starpath/internal/progression"
)

type memStore struct {
	progress map[string][]progression.LevelProgress
	runs     []RunData
	saveErr  error
}

func newMemStore() *memStore {
	return &memStore{progress: make(map[string][]progression.LevelProgress)}
}

func (m *memStore) LoadProgress(player, worldID string) ([]progression.LevelProgress, error) {
	return m.progress[player+"/"+worldID], nil
}

func (m *memStore) SaveProgress(player, worldID string, p progression.LevelProgress) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	key := player + "/" + worldID
	for i, existing := range m.progress[key] {
		if existing.LevelID == p.LevelID {
			m.progress[key][i] = p
			return nil
		}
	}
	m.progress[key] = append(m.progress[key], p)
	return nil
}

func (m *memStore) SaveRun(run RunData) error {
	m.runs = append(m.runs, run)
	return nil
}

// testWorld has an open level "a" with a 10s limit and one coin, and a
// level "b" that needs three stars on "a".
func testWorld(t *testing.T) *progression.World {
	t.Helper()
	content := &progression.Content{
		ID:        "a",
		Name:      "Alpha",
		Layout:    [][]progression.Tile{{progression.TileGround, progression.TileGoal}},
		Entities:  []progression.EntitySpec{{Kind: progression.EntityCoin, Pos: core.V(0, 0)}},
		TimeLimit: 10,
	}
	w, err := progression.NewWorld(
		progression.WorldInfo{ID: "w1", Number: 1, Name: "Test"},
		progression.LevelEntry{Content: content},
		progression.LevelEntry{ID: "b", Name: "Beta", UnlockRequirement: 3},
	)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	return w
}

func finishA(t *testing.T, s *Session) progression.Outcome {
	t.Helper()
	if _, err := s.Start("a"); err != nil {
		t.Fatalf("Start(a) failed: %v", err)
	}
	if err := s.Advance(4); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	out, err := s.Apply(progression.Delta{
		ScoreGained:        20,
		CollectiblesGained: 1,
		Consumed:           []int{1},
		ReachedEnd:         true,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	return out
}

func TestSessionStartUnknownLevel(t *testing.T) {
	s := New(testWorld(t), DefaultConfig(), nil)
	_, err := s.Start("zzz")
	if !errors.Is(err, ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
}

func TestSessionStartLockedLevel(t *testing.T) {
	s := New(testWorld(t), DefaultConfig(), nil)
	_, err := s.Start("b")
	if !errors.Is(err, ErrLevelLocked) {
		t.Fatalf("expected ErrLevelLocked, got %v", err)
	}
	if _, ok := s.Active(); ok {
		t.Error("locked level should not become active")
	}
}

func TestSessionNoActiveLevel(t *testing.T) {
	s := New(testWorld(t), DefaultConfig(), nil)
	if err := s.Tick(); !errors.Is(err, ErrNoActiveLevel) {
		t.Errorf("Tick: expected ErrNoActiveLevel, got %v", err)
	}
	if _, err := s.Apply(progression.Delta{}); !errors.Is(err, ErrNoActiveLevel) {
		t.Errorf("Apply: expected ErrNoActiveLevel, got %v", err)
	}
}

func TestSessionAbandon(t *testing.T) {
	store := newMemStore()
	s := New(testWorld(t), Config{Player: "alice"}, nil)
	s.SetStore(store)

	if _, err := s.Start("a"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := s.Apply(progression.Delta{ScoreGained: 5}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	s.Abandon()

	if _, ok := s.Active(); ok {
		t.Error("abandoned level should not be active")
	}
	if _, err := s.Apply(progression.Delta{ReachedEnd: true}); !errors.Is(err, ErrNoActiveLevel) {
		t.Errorf("Apply after Abandon: expected ErrNoActiveLevel, got %v", err)
	}
	if len(store.runs) != 0 || len(store.progress) != 0 {
		t.Errorf("abandon persisted something: runs=%v progress=%v", store.runs, store.progress)
	}
	if s.World().TotalStars() != 0 {
		t.Errorf("total stars = %d, expected 0", s.World().TotalStars())
	}

	// Abandoning with nothing active is a no-op.
	s.Abandon()
}

func TestSessionFinishPersists(t *testing.T) {
	store := newMemStore()
	s := New(testWorld(t), Config{Player: "alice"}, nil)
	s.SetStore(store)

	out := finishA(t, s)

	// 20 + (10-4)*10 + 1*100
	if out.FinalScore != 180 {
		t.Errorf("final score = %v, want 180", out.FinalScore)
	}
	if out.Stars != 3 || !out.NewBest || !out.Recorded {
		t.Errorf("unexpected outcome %+v", out)
	}
	if _, ok := s.Active(); ok {
		t.Error("finished level should no longer be active")
	}

	saved := store.progress["alice/w1"]
	if len(saved) != 1 || saved[0].LevelID != "a" || saved[0].Stars != 3 || saved[0].HighScore != 180 {
		t.Fatalf("unexpected saved progress %+v", saved)
	}
	if len(store.runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(store.runs))
	}
	run := store.runs[0]
	if run.Player != "alice" || run.WorldID != "w1" || run.LevelID != "a" {
		t.Errorf("unexpected run identity %+v", run)
	}
	if run.Collectibles != 1 || run.Elapsed != 4 || run.FinalScore != 180 {
		t.Errorf("unexpected run stats %+v", run)
	}

	// Level b opens once a has three stars.
	if _, err := s.Start("b"); err != nil {
		t.Errorf("Start(b) after three stars failed: %v", err)
	}
}

func TestSessionUnfinishedDeltaDoesNotPersist(t *testing.T) {
	store := newMemStore()
	s := New(testWorld(t), DefaultConfig(), nil)
	s.SetStore(store)

	if _, err := s.Start("a"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	out, err := s.Apply(progression.Delta{ScoreGained: 5})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if out.Finished {
		t.Error("delta without end should not finish the level")
	}
	if len(store.progress) != 0 || len(store.runs) != 0 {
		t.Error("nothing should be persisted before the end")
	}
	lvl, ok := s.Active()
	if !ok || lvl.Attempt().Score != 5 {
		t.Errorf("active attempt score should be 5")
	}
}

func TestSessionInvalidDeltaKeepsLevelActive(t *testing.T) {
	s := New(testWorld(t), DefaultConfig(), nil)
	if _, err := s.Start("a"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	_, err := s.Apply(progression.Delta{ScoreGained: -1, ReachedEnd: true})
	if !errors.Is(err, progression.ErrInvalidProgress) {
		t.Fatalf("expected ErrInvalidProgress, got %v", err)
	}
	if _, ok := s.Active(); !ok {
		t.Error("rejected delta should keep the level active")
	}
}

func TestSessionResume(t *testing.T) {
	store := newMemStore()
	store.progress["bob/w1"] = []progression.LevelProgress{
		{LevelID: "a", Completed: true, Stars: 3, HighScore: 95},
	}

	s := New(testWorld(t), Config{Player: "bob"}, nil)
	s.SetStore(store)
	if err := s.Resume(); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}

	statuses := s.Statuses()
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if statuses[0].Stars != 3 || !statuses[0].Completed {
		t.Errorf("level a not restored: %+v", statuses[0])
	}
	if !statuses[1].Unlocked {
		t.Error("level b should be unlocked after resume")
	}
}

func TestSessionSaveErrorSurfaces(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	s := New(testWorld(t), DefaultConfig(), nil)
	s.SetStore(store)

	if _, err := s.Start("a"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	out, err := s.Apply(progression.Delta{ReachedEnd: true})
	if err == nil {
		t.Fatal("expected save error")
	}
	if !out.Finished {
		t.Error("outcome should still report the finish")
	}
	if s.World().TotalStars() == 0 {
		t.Error("in-memory progress should be kept when saving fails")
	}
}

func TestSessionTickUsesRuntimeRate(t *testing.T) {
	cfg := Config{Runtime: core.RuntimeConfig{TickRate: 4}}
	s := New(testWorld(t), cfg, nil)
	if _, err := s.Start("a"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for range 4 {
		if err := s.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	lvl, _ := s.Active()
	if got := lvl.Attempt().Elapsed; got != 1 {
		t.Errorf("elapsed after 4 ticks at 4Hz = %v, want 1", got)
	}
}

func TestRunScript(t *testing.T) {
	sc, err := ParseScript([]byte(`
level: a
steps:
  - dt: 4
    score: 20
  - collectibles: 1
    consume: [1]
  - end: true
  - score: 1000
`))
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}

	store := newMemStore()
	s := New(testWorld(t), DefaultConfig(), nil)
	s.SetStore(store)

	out, err := s.RunScript(context.Background(), sc, "")
	if err != nil {
		t.Fatalf("RunScript failed: %v", err)
	}
	if !out.Finished || out.FinalScore != 180 {
		t.Errorf("unexpected outcome %+v", out)
	}
	if len(store.runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(store.runs))
	}
}

func TestRunScriptWithoutEnd(t *testing.T) {
	sc := &Script{Level: "a", Steps: []Step{{Score: 3}}}
	s := New(testWorld(t), DefaultConfig(), nil)

	out, err := s.RunScript(context.Background(), sc, "")
	if err != nil {
		t.Fatalf("RunScript failed: %v", err)
	}
	if out.Finished {
		t.Error("script without end should not finish")
	}
	if _, ok := s.Active(); !ok {
		t.Error("level should remain active")
	}
}

func TestRunScriptCancelled(t *testing.T) {
	sc := &Script{Level: "a", Steps: []Step{{End: true}}}
	s := New(testWorld(t), DefaultConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.RunScript(ctx, sc, ""); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, ok := s.Active(); ok {
		t.Error("cancelled run should abandon the level")
	}
}

func TestRunScriptStepError(t *testing.T) {
	sc := &Script{Level: "a", Steps: []Step{{Checkpoint: intPtr(7)}}}
	s := New(testWorld(t), DefaultConfig(), nil)

	_, err := s.RunScript(context.Background(), sc, "")
	if !errors.Is(err, progression.ErrInvalidProgress) {
		t.Errorf("expected ErrInvalidProgress, got %v", err)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "no steps", data: "level: a\n"},
		{name: "unknown key", data: "level: a\nsteps:\n  - jump: true\n"},
		{name: "negative ticks", data: "level: a\nsteps:\n  - ticks: -1\n"},
		{name: "malformed", data: "steps: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseScript([]byte(tc.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func intPtr(v int) *int { return &v }
