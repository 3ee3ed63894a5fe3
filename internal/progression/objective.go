package progression

// ObjectiveKind selects which attempt counter an objective checks.
type ObjectiveKind string

const (
	ObjectiveCollection ObjectiveKind = "collection" // collectibles >= target
	ObjectiveTime       ObjectiveKind = "time"       // elapsed <= target
	ObjectiveScore      ObjectiveKind = "score"      // score >= target
)

// Valid reports whether k is one of the known objective kinds.
func (k ObjectiveKind) Valid() bool {
	switch k {
	case ObjectiveCollection, ObjectiveTime, ObjectiveScore:
		return true
	}
	return false
}

// Objective is a completion condition re-evaluated against the live attempt.
// Its completed flag is derived and has no setter.
type Objective struct {
	ID     string
	Name   string
	Kind   ObjectiveKind
	Target float64

	completed bool
}

func newObjective(spec ObjectiveSpec) Objective {
	return Objective{
		ID:     spec.ID,
		Name:   spec.Name,
		Kind:   spec.Kind,
		Target: spec.Target,
	}
}

// Completed reports the result of the most recent evaluation.
func (o Objective) Completed() bool {
	return o.completed
}

// evaluate recomputes the completed flag from the attempt counters.
// Elapsed time only grows, so a time objective that fails stays failed.
func (o *Objective) evaluate(a *Attempt) {
	switch o.Kind {
	case ObjectiveCollection:
		o.completed = float64(a.Collectibles) >= o.Target
	case ObjectiveTime:
		o.completed = a.Elapsed <= o.Target
	case ObjectiveScore:
		o.completed = a.Score >= o.Target
	default:
		o.completed = false
	}
}
