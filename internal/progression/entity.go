package progression

import (
	"maps"

	"github.com/vovakirdan/starpath/internal/core"
)

// EntityKind tags what an entity represents in a level.
type EntityKind string

const (
	EntityCoin       EntityKind = "coin"
	EntityEnemy      EntityKind = "enemy"
	EntityCheckpoint EntityKind = "checkpoint"
	EntityGeneric    EntityKind = "generic"
)

// Valid reports whether k is one of the known entity kinds.
func (k EntityKind) Valid() bool {
	switch k {
	case EntityCoin, EntityEnemy, EntityCheckpoint, EntityGeneric:
		return true
	}
	return false
}

// Entity is a positioned game object owned by a single attempt.
type Entity struct {
	ID       int
	Kind     EntityKind
	Pos      core.Vec
	Velocity core.Vec
	Moving   bool // Velocity is only applied when set
	Active   bool
	Props    map[string]string
}

// newEntity instantiates an entity from its content descriptor.
// Props are copied so play never mutates the template.
func newEntity(id int, spec EntitySpec) *Entity {
	e := &Entity{
		ID:     id,
		Kind:   spec.Kind,
		Pos:    spec.Pos,
		Active: true,
		Props:  maps.Clone(spec.Props),
	}
	if spec.Velocity != nil {
		e.Velocity = *spec.Velocity
		e.Moving = true
	}
	return e
}

// Update moves the entity by its velocity scaled by dt.
func (e *Entity) Update(dt float64) {
	if !e.Active || !e.Moving {
		return
	}
	e.Pos = e.Pos.Add(e.Velocity.Scale(dt))
}

// clone returns a detached copy of the entity.
func (e *Entity) clone() Entity {
	c := *e
	c.Props = maps.Clone(e.Props)
	return c
}
