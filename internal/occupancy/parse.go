package occupancy

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/minotaur/internal/grid"
)

// Floor plan runes.
const (
	RuneSolid  = '#'
	RuneOpen   = '.'
	RuneUnseen = '?'
)

// Parse builds a Grid from rows of floor plan text. The first row is the
// top of the map (largest y). Rows shorter than the widest row are padded
// with Unseen tiles. Spaces are read as Unseen.
func Parse(rows []string) (*Grid, error) {
	width := 0
	for _, r := range rows {
		width = max(width, len([]rune(r)))
	}
	height := len(rows)
	g := NewGrid(width, height)

	for i, r := range rows {
		y := height - 1 - i
		for x, c := range []rune(r) {
			switch c {
			case RuneSolid:
				g.Set(grid.T(x, y), grid.Solid)
			case RuneOpen:
				g.Set(grid.T(x, y), grid.Open)
			case RuneUnseen, ' ':
			default:
				return nil, fmt.Errorf("row %d column %d: unknown tile %q", i+1, x+1, c)
			}
		}
	}
	return g, nil
}

// MustParse is Parse for fixed floor plans; it panics on malformed input.
func MustParse(rows ...string) *Grid {
	g, err := Parse(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// String renders the grid in the floor plan format accepted by Parse.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := g.height - 1; y >= 0; y-- {
		for x := 0; x < g.width; x++ {
			switch g.Status(grid.T(x, y)) {
			case grid.Solid:
				sb.WriteRune(RuneSolid)
			case grid.Open:
				sb.WriteRune(RuneOpen)
			default:
				sb.WriteRune(RuneUnseen)
			}
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
