package progression

import "slices"

// NoCheckpoint marks an attempt that has not reached any checkpoint.
const NoCheckpoint = -1

// Attempt holds the counters of one play-through.
// It is replaced on every Level.Start and never persisted directly.
type Attempt struct {
	Score        float64
	Elapsed      float64 // Seconds since start
	Collectibles int
	Checkpoint   int // Index into Content.Checkpoints, or NoCheckpoint
	Objectives   []Objective
}

func newAttempt(c *Content) Attempt {
	a := Attempt{Checkpoint: NoCheckpoint}
	if c != nil {
		a.Objectives = make([]Objective, len(c.Objectives))
		for i, spec := range c.Objectives {
			a.Objectives[i] = newObjective(spec)
		}
	}
	return a
}

// HasCheckpoint reports whether a checkpoint was reached.
func (a Attempt) HasCheckpoint() bool {
	return a.Checkpoint != NoCheckpoint
}

// CompletedObjectives counts objectives whose last evaluation succeeded.
func (a Attempt) CompletedObjectives() int {
	n := 0
	for _, o := range a.Objectives {
		if o.completed {
			n++
		}
	}
	return n
}

// evaluateObjectives refreshes every objective against the current counters.
func (a *Attempt) evaluateObjectives() {
	for i := range a.Objectives {
		a.Objectives[i].evaluate(a)
	}
}

// clone returns a copy that shares no slices with a.
func (a Attempt) clone() Attempt {
	a.Objectives = slices.Clone(a.Objectives)
	return a
}
