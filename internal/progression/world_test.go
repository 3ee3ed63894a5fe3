package progression

import (
	"errors"
	"testing"
)

// grasslands mirrors the default world: requirements 0,1,2,2,3.
func grasslands(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(
		WorldInfo{ID: "world-1", Number: 1, Name: "Grasslands", Theme: Theme{ID: "grassland"}},
		LevelEntry{ID: "1-1", Name: "Green Beginnings", UnlockRequirement: 0},
		LevelEntry{ID: "1-2", Name: "Rolling Hills", UnlockRequirement: 1},
		LevelEntry{ID: "1-3", Name: "Flower Fields", UnlockRequirement: 2},
		LevelEntry{ID: "1-4", Name: "Twilight Garden", UnlockRequirement: 2},
		LevelEntry{ID: "1-5", Name: "Boss: Giant Mushroom", UnlockRequirement: 3},
	)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	return w
}

func sumStars(w *World) int {
	total := 0
	for _, lvl := range w.Levels() {
		total += lvl.Stars()
	}
	return total
}

func TestWorldAddLevelRejectsDuplicate(t *testing.T) {
	w, _ := NewWorld(WorldInfo{ID: "w"})

	first := NewLevel(LevelSpec{ID: "1-1", Name: "first"})
	if err := w.AddLevel(first); err != nil {
		t.Fatalf("AddLevel failed: %v", err)
	}

	second := NewLevel(LevelSpec{ID: "1-1", Name: "second"})
	err := w.AddLevel(second)
	if err == nil {
		t.Fatal("expected duplicate level error")
	}
	if !errors.Is(err, ErrDuplicateLevel) {
		t.Errorf("error %v should match ErrDuplicateLevel", err)
	}
	var dup *DuplicateLevelError
	if !errors.As(err, &dup) || dup.LevelID != "1-1" {
		t.Errorf("expected *DuplicateLevelError for 1-1, got %v", err)
	}

	stored, _ := w.Level("1-1")
	if stored != first {
		t.Error("second level with duplicate id replaced the first")
	}
	if len(w.Levels()) != 1 {
		t.Errorf("expected 1 level, got %d", len(w.Levels()))
	}
}

func TestNewWorldRejectsDuplicateEntries(t *testing.T) {
	_, err := NewWorld(WorldInfo{ID: "w"},
		LevelEntry{ID: "a"},
		LevelEntry{ID: "a"},
	)
	if !errors.Is(err, ErrDuplicateLevel) {
		t.Errorf("expected ErrDuplicateLevel, got %v", err)
	}
}

func TestWorldCompleteLevelMissing(t *testing.T) {
	w := grasslands(t)
	w.CompleteLevel("1-1", 95)

	if w.CompleteLevel("missing-id", 100) {
		t.Error("CompleteLevel on unknown id should return false")
	}
	if w.TotalStars() != 3 {
		t.Errorf("total stars changed to %d", w.TotalStars())
	}
	if w.Completed() {
		t.Error("world should not be completed")
	}
}

func TestWorldTotalStarsMatchesSum(t *testing.T) {
	w := grasslands(t)

	steps := []struct {
		id    string
		score float64
	}{
		{"1-1", 50},
		{"1-1", 95},
		{"1-2", 72},
		{"1-3", 10},
		{"1-2", 60},
		{"1-4", 91},
		{"1-5", 89},
	}

	for _, s := range steps {
		if !w.CompleteLevel(s.id, s.score) {
			t.Fatalf("CompleteLevel(%s) returned false", s.id)
		}
		if got, want := w.TotalStars(), sumStars(w); got != want {
			t.Fatalf("after %s=%v total stars %d != sum %d", s.id, s.score, got, want)
		}
	}

	if w.TotalStars() != 3+2+1+3+2 {
		t.Errorf("total stars = %d, expected 11", w.TotalStars())
	}
	if !w.Completed() {
		t.Error("world should be completed after every level is completed")
	}
	if w.MaxTotalStars() != 15 {
		t.Errorf("max total stars = %d, expected 15", w.MaxTotalStars())
	}
}

func TestWorldCompletedRequiresEveryLevel(t *testing.T) {
	w := grasslands(t)
	for _, id := range []string{"1-1", "1-2", "1-3", "1-4"} {
		w.CompleteLevel(id, 95)
		if w.Completed() {
			t.Fatalf("world completed after only %s", id)
		}
	}
	w.CompleteLevel("1-5", 1)
	if !w.Completed() {
		t.Error("world should be completed")
	}

	// Adding a new level re-opens the world.
	if err := w.AddLevel(NewLevel(LevelSpec{ID: "1-6"})); err != nil {
		t.Fatalf("AddLevel failed: %v", err)
	}
	if w.Completed() {
		t.Error("world with an uncompleted level should not be completed")
	}
}

func TestWorldFirstLevelAlwaysUnlocked(t *testing.T) {
	w, _ := NewWorld(WorldInfo{ID: "w"},
		LevelEntry{ID: "gate", UnlockRequirement: 3},
		LevelEntry{ID: "next", UnlockRequirement: 0},
	)

	st, ok := w.LevelStatus("gate")
	if !ok {
		t.Fatal("LevelStatus(gate) not found")
	}
	if !st.Unlocked {
		t.Error("first level should always be unlocked")
	}
}

func TestWorldUnlockRequirement(t *testing.T) {
	w := grasslands(t)

	tests := []struct {
		name      string
		prevScore float64
		unlocked  bool
	}{
		{name: "predecessor not played", prevScore: -1, unlocked: false},
		{name: "predecessor one star", prevScore: 50, unlocked: false},
		{name: "predecessor two stars", prevScore: 75, unlocked: true},
		{name: "predecessor three stars", prevScore: 90, unlocked: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := grasslands(t)
			if tc.prevScore >= 0 {
				w.CompleteLevel("1-2", tc.prevScore)
			}
			st, _ := w.LevelStatus("1-3")
			if st.Unlocked != tc.unlocked {
				t.Errorf("1-3 unlocked = %v, expected %v (prev stars %d)", st.Unlocked, tc.unlocked, w.PreviousLevelStars("1-3"))
			}
		})
	}

	// 1-2 needs one star from 1-1.
	if st, _ := w.LevelStatus("1-2"); st.Unlocked {
		t.Error("1-2 should be locked before 1-1 is completed")
	}
	w.CompleteLevel("1-1", 10)
	if st, _ := w.LevelStatus("1-2"); !st.Unlocked {
		t.Error("1-2 should unlock after 1-1 earns a star")
	}
}

func TestWorldPreviousLevelStars(t *testing.T) {
	w := grasslands(t)
	w.CompleteLevel("1-1", 75)

	if got := w.PreviousLevelStars("1-1"); got != MaxStars {
		t.Errorf("first level previous stars = %d, expected sentinel %d", got, MaxStars)
	}
	if got := w.PreviousLevelStars("unknown"); got != MaxStars {
		t.Errorf("unknown level previous stars = %d, expected sentinel %d", got, MaxStars)
	}
	if got := w.PreviousLevelStars("1-2"); got != 2 {
		t.Errorf("1-2 previous stars = %d, expected 2", got)
	}
	if got := w.PreviousLevelStars("1-3"); got != 0 {
		t.Errorf("1-3 previous stars = %d, expected 0", got)
	}
}

func TestWorldLevelStatusSnapshot(t *testing.T) {
	w := grasslands(t)
	w.CompleteLevel("1-1", 80)

	st, ok := w.LevelStatus("1-1")
	if !ok {
		t.Fatal("LevelStatus(1-1) not found")
	}
	want := LevelStatus{ID: "1-1", Name: "Green Beginnings", Completed: true, Stars: 2, HighScore: 80, Unlocked: true}
	if st != want {
		t.Errorf("status = %+v, expected %+v", st, want)
	}

	if _, ok := w.LevelStatus("nope"); ok {
		t.Error("LevelStatus on unknown id should report not found")
	}
}

func TestWorldOrderAndNextLevel(t *testing.T) {
	w := grasslands(t)

	statuses := w.Statuses()
	want := []string{"1-1", "1-2", "1-3", "1-4", "1-5"}
	if len(statuses) != len(want) {
		t.Fatalf("expected %d statuses, got %d", len(want), len(statuses))
	}
	for i, id := range want {
		if statuses[i].ID != id {
			t.Errorf("status %d = %s, expected %s", i, statuses[i].ID, id)
		}
	}

	if next, ok := w.NextLevel("1-3"); !ok || next != "1-4" {
		t.Errorf("NextLevel(1-3) = %q, %v", next, ok)
	}
	if _, ok := w.NextLevel("1-5"); ok {
		t.Error("last level should have no next level")
	}
	if _, ok := w.NextLevel("zzz"); ok {
		t.Error("unknown level should have no next level")
	}
}

func TestWorldProgressRoundTrip(t *testing.T) {
	w := grasslands(t)
	w.CompleteLevel("1-1", 95)
	w.CompleteLevel("1-2", 75)
	w.CompleteLevel("1-3", 20)

	saved := w.Progress()

	resumed := grasslands(t)
	resumed.Restore(saved)

	before := w.Statuses()
	after := resumed.Statuses()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("status %d differs after restore: %+v vs %+v", i, before[i], after[i])
		}
	}
	if resumed.TotalStars() != w.TotalStars() {
		t.Errorf("total stars %d != %d", resumed.TotalStars(), w.TotalStars())
	}

	// Same inputs after resuming produce the same statuses.
	w.CompleteLevel("1-4", 88)
	resumed.CompleteLevel("1-4", 88)
	st1, _ := w.LevelStatus("1-5")
	st2, _ := resumed.LevelStatus("1-5")
	if st1 != st2 {
		t.Errorf("statuses diverged after resume: %+v vs %+v", st1, st2)
	}
}

func TestWorldRestoreIgnoresUnknownLevels(t *testing.T) {
	w := grasslands(t)
	w.Restore([]LevelProgress{
		{LevelID: "9-9", Completed: true, Stars: 3, HighScore: 100},
		{LevelID: "1-1", Completed: true, Stars: 1, HighScore: 40},
	})

	if w.TotalStars() != 1 {
		t.Errorf("total stars = %d, expected 1", w.TotalStars())
	}
	if _, ok := w.Level("9-9"); ok {
		t.Error("restore should not create levels")
	}
}
