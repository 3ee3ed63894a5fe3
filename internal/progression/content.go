package progression

import "github.com/vovakirdan/starpath/internal/core"

// Tile is a single cell code in a level layout.
type Tile int

const (
	TileEmpty    Tile = iota // '.'
	TileGround               // '#'
	TilePlatform             // '='
	TileHazard               // '^'
	TileGoal                 // 'G'
)

// String returns the layout character for the tile.
func (t Tile) String() string {
	switch t {
	case TileGround:
		return "#"
	case TilePlatform:
		return "="
	case TileHazard:
		return "^"
	case TileGoal:
		return "G"
	default:
		return "."
	}
}

// EntitySpec describes an entity placement in level content.
// Velocity is nil for static entities.
type EntitySpec struct {
	Kind     EntityKind
	Pos      core.Vec
	Velocity *core.Vec
	Props    map[string]string
}

// ObjectiveSpec is the static definition of an objective.
type ObjectiveSpec struct {
	ID     string
	Name   string
	Kind   ObjectiveKind
	Target float64
}

// Content is the immutable definition of a level's geography and goals.
// Levels only read it; runtime state lives in Attempt and Entity.
type Content struct {
	ID          string
	Name        string
	Layout      [][]Tile // [row][col]
	Entities    []EntitySpec
	Checkpoints []core.Vec
	Objectives  []ObjectiveSpec
	TimeLimit   float64 // Seconds
}

// Width returns the widest layout row.
func (c *Content) Width() int {
	w := 0
	for _, row := range c.Layout {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Height returns the number of layout rows.
func (c *Content) Height() int {
	return len(c.Layout)
}

// Bounds returns the layout area in layout units.
func (c *Content) Bounds() core.Bounds {
	return core.NewBounds(c.Width(), c.Height())
}

// TileAt returns the tile at column x, row y. Out-of-range cells are empty.
func (c *Content) TileAt(x, y int) Tile {
	if y < 0 || y >= len(c.Layout) || x < 0 || x >= len(c.Layout[y]) {
		return TileEmpty
	}
	return c.Layout[y][x]
}
