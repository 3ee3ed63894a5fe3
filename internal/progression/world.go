package progression

// Theme holds the presentation identifiers of a world.
type Theme struct {
	ID            string
	Background    string
	Music         string
	AmbientSounds []string
}

// WorldInfo identifies a world.
type WorldInfo struct {
	ID     string
	Number int
	Name   string
	Theme  Theme
}

// LevelEntry is one level of a world definition: its content plus the
// progression settings that wrap it.
type LevelEntry struct {
	ID                string
	Name              string
	Difficulty        string
	UnlockRequirement int
	Content           *Content
}

// LevelStatus is a serializable snapshot of one level inside a world.
type LevelStatus struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Completed bool    `json:"completed" yaml:"completed"`
	Stars     int     `json:"stars" yaml:"stars"`
	HighScore float64 `json:"high_score" yaml:"high_score"`
	Unlocked  bool    `json:"unlocked" yaml:"unlocked"`
}

// World is an ordered collection of levels. Insertion order is play order.
type World struct {
	WorldInfo

	order      []string
	levels     map[string]*Level
	totalStars int
	completed  bool
}

// NewWorld creates a world and adds one level per entry, in order.
func NewWorld(info WorldInfo, entries ...LevelEntry) (*World, error) {
	w := &World{
		WorldInfo: info,
		levels:    make(map[string]*Level),
	}
	for _, e := range entries {
		id, name := e.ID, e.Name
		if e.Content != nil {
			if id == "" {
				id = e.Content.ID
			}
			if name == "" {
				name = e.Content.Name
			}
		}
		lvl := NewLevel(LevelSpec{
			ID:                id,
			Name:              name,
			Difficulty:        e.Difficulty,
			UnlockRequirement: e.UnlockRequirement,
			Content:           e.Content,
		})
		if err := w.AddLevel(lvl); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// AddLevel appends a level to the play order.
// A level whose id is already present is rejected and not stored.
func (w *World) AddLevel(l *Level) error {
	if _, exists := w.levels[l.ID]; exists {
		return &DuplicateLevelError{WorldID: w.ID, LevelID: l.ID}
	}
	w.levels[l.ID] = l
	w.order = append(w.order, l.ID)
	w.recompute()
	return nil
}

// CompleteLevel finalizes a level with the given score and re-aggregates the
// world totals. Returns false if the level is unknown.
func (w *World) CompleteLevel(levelID string, finalScore float64) bool {
	lvl, ok := w.levels[levelID]
	if !ok {
		return false
	}
	lvl.Complete(finalScore)
	w.recompute()
	return true
}

// LevelStatus returns a snapshot of the level. The first level in play order
// is always unlocked.
func (w *World) LevelStatus(levelID string) (LevelStatus, bool) {
	lvl, ok := w.levels[levelID]
	if !ok {
		return LevelStatus{}, false
	}

	unlocked := true
	if w.indexOf(levelID) > 0 {
		unlocked = lvl.IsUnlocked(w.PreviousLevelStars(levelID))
	}

	return LevelStatus{
		ID:        lvl.ID,
		Name:      lvl.Name,
		Completed: lvl.Completed(),
		Stars:     lvl.Stars(),
		HighScore: lvl.HighScore(),
		Unlocked:  unlocked,
	}, true
}

// PreviousLevelStars returns the stars of the level played before levelID.
// The first level and unknown ids get MaxStars, which leaves them unlocked.
func (w *World) PreviousLevelStars(levelID string) int {
	idx := w.indexOf(levelID)
	if idx <= 0 {
		return MaxStars
	}
	return w.levels[w.order[idx-1]].Stars()
}

// Statuses returns the status of every level in play order.
func (w *World) Statuses() []LevelStatus {
	out := make([]LevelStatus, 0, len(w.order))
	for _, id := range w.order {
		st, _ := w.LevelStatus(id)
		out = append(out, st)
	}
	return out
}

// Level returns the level with the given id.
func (w *World) Level(levelID string) (*Level, bool) {
	lvl, ok := w.levels[levelID]
	return lvl, ok
}

// Levels returns the levels in play order.
func (w *World) Levels() []*Level {
	out := make([]*Level, len(w.order))
	for i, id := range w.order {
		out[i] = w.levels[id]
	}
	return out
}

// NextLevel returns the id of the level after levelID in play order.
func (w *World) NextLevel(levelID string) (string, bool) {
	idx := w.indexOf(levelID)
	if idx < 0 || idx+1 >= len(w.order) {
		return "", false
	}
	return w.order[idx+1], true
}

// TotalStars returns the sum of stars over all levels.
func (w *World) TotalStars() int { return w.totalStars }

// MaxTotalStars returns the highest total the world can reach.
func (w *World) MaxTotalStars() int { return len(w.order) * MaxStars }

// Completed reports whether every level has been completed.
func (w *World) Completed() bool { return w.completed }

// Progress returns the persistable outcome of every level in play order.
func (w *World) Progress() []LevelProgress {
	out := make([]LevelProgress, len(w.order))
	for i, id := range w.order {
		out[i] = w.levels[id].Progress()
	}
	return out
}

// Restore applies persisted outcomes. Entries for unknown levels are ignored.
func (w *World) Restore(progress []LevelProgress) {
	for _, p := range progress {
		if lvl, ok := w.levels[p.LevelID]; ok {
			lvl.Restore(p)
		}
	}
	w.recompute()
}

// recompute rebuilds the aggregate fields from the member levels.
func (w *World) recompute() {
	total := 0
	completed := len(w.order) > 0
	for _, id := range w.order {
		lvl := w.levels[id]
		total += lvl.Stars()
		if !lvl.Completed() {
			completed = false
		}
	}
	w.totalStars = total
	w.completed = completed
}

func (w *World) indexOf(levelID string) int {
	for i, id := range w.order {
		if id == levelID {
			return i
		}
	}
	return -1
}
