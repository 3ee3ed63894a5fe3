package content

import (
	"fmt"

	"github.com/vovakirdan/starpath/internal/progression"
)

// ParseLayout converts ASCII rows into a tile grid.
// Characters:
//
//	'.' or ' ' = empty
//	'#' = ground
//	'=' = platform
//	'^' = hazard
//	'G' = goal
//
// Short rows are padded with empty tiles to the widest row.
func ParseLayout(lines []string) ([][]progression.Tile, error) {
	maxWidth := 0
	for _, line := range lines {
		if len(line) > maxWidth {
			maxWidth = len(line)
		}
	}

	grid := make([][]progression.Tile, len(lines))
	for row, line := range lines {
		grid[row] = make([]progression.Tile, maxWidth)
		for col := range len(line) {
			tile, ok := tileFor(line[col])
			if !ok {
				return nil, fmt.Errorf("row %d col %d: unknown tile %q", row, col, line[col])
			}
			grid[row][col] = tile
		}
	}
	return grid, nil
}

func tileFor(ch byte) (progression.Tile, bool) {
	switch ch {
	case '.', ' ':
		return progression.TileEmpty, true
	case '#':
		return progression.TileGround, true
	case '=':
		return progression.TilePlatform, true
	case '^':
		return progression.TileHazard, true
	case 'G', 'g':
		return progression.TileGoal, true
	default:
		return progression.TileEmpty, false
	}
}
