// Package render turns levels and worlds into terminal text.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/starpath/internal/core"
	"github.com/vovakirdan/starpath/internal/progression"
)

// Status table layout
const (
	minTableWidth = 40
	maxTableWidth = 100
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = func() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style)
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		style := lipgloss.NewStyle()
		if code := c.ANSI(); code != "" {
			style = style.Foreground(lipgloss.Color(code))
		}
		styles[c] = style
	}
	return styles
}()

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	lockedStyle = cellStyle.Foreground(lipgloss.Color(core.ColorGray.ANSI()))
	starStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorBrightYellow.ANSI()))
)

type glyph struct {
	r rune
	c core.Color
}

var tileGlyphs = map[progression.Tile]glyph{
	progression.TileEmpty:    {' ', core.ColorDefault},
	progression.TileGround:   {'#', core.ColorGreen},
	progression.TilePlatform: {'=', core.ColorOrange},
	progression.TileHazard:   {'^', core.ColorRed},
	progression.TileGoal:     {'G', core.ColorBrightYellow},
}

var entityGlyphs = map[progression.EntityKind]glyph{
	progression.EntityCoin:       {'o', core.ColorYellow},
	progression.EntityEnemy:      {'E', core.ColorBrightRed},
	progression.EntityCheckpoint: {'P', core.ColorCyan},
	progression.EntityGeneric:    {'*', core.ColorMagenta},
}

// DrawLevel draws a level's layout, checkpoints and active entities onto a
// screen sized to the layout. Entities outside the layout are clipped.
func DrawLevel(c *progression.Content, entities []progression.Entity) *core.Screen {
	if c == nil {
		return core.NewScreen(0, 0)
	}
	s := core.NewScreen(c.Width(), c.Height())
	for y := range c.Height() {
		for x := range c.Width() {
			g, ok := tileGlyphs[c.TileAt(x, y)]
			if !ok {
				g = glyph{'?', core.ColorMagenta}
			}
			s.Set(x, y, g.r, g.c)
		}
	}
	for _, cp := range c.Checkpoints {
		s.Set(cell(cp.X), cell(cp.Y), 'P', core.ColorCyan)
	}
	for _, e := range entities {
		if !e.Active {
			continue
		}
		g, ok := entityGlyphs[e.Kind]
		if !ok {
			g = entityGlyphs[progression.EntityGeneric]
		}
		s.Set(cell(e.Pos.X), cell(e.Pos.Y), g.r, g.c)
	}
	return s
}

func cell(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Screen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func Screen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.Get(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell := s.Get(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Stars renders a star rating out of progression.MaxStars.
func Stars(n int) string {
	n = core.Clamp(n, 0, progression.MaxStars)
	return strings.Repeat("★", n) + strings.Repeat("☆", progression.MaxStars-n)
}

// WorldTitle renders the heading line for a world.
func WorldTitle(w *progression.World) string {
	return titleStyle.Render(fmt.Sprintf("World %d: %s", w.Number, w.Name)) +
		fmt.Sprintf("  %d/%d stars", w.TotalStars(), w.MaxTotalStars())
}

// StatusTable renders a world's level statuses as a table no wider than width.
func StatusTable(w *progression.World, width int) string {
	statuses := w.Statuses()
	rows := make([][]string, 0, len(statuses))
	for _, st := range statuses {
		state := "locked"
		switch {
		case st.Completed:
			state = "done"
		case st.Unlocked:
			state = "open"
		}
		best := "-"
		if st.Completed {
			best = fmt.Sprintf("%.0f", st.HighScore)
		}
		rows = append(rows, []string{st.ID, st.Name, Stars(st.Stars), best, state})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Level", "Name", "Stars", "Best", "State").
		Rows(rows...).
		Width(core.Clamp(width, minTableWidth, maxTableWidth)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(statuses) && !statuses[row].Unlocked {
				return lockedStyle
			}
			if col == 2 {
				return cellStyle.Inherit(starStyle)
			}
			return cellStyle
		})
	return t.Render()
}
