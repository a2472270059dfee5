package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/minotaur/internal/doorway"
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/occupancy"
	"github.com/Iron-Ham/minotaur/internal/sim"
)

// Map glyphs.
const (
	GlyphWall     = '#'
	GlyphFloor    = '.'
	GlyphUnseen   = ' '
	GlyphDoor     = '+'
	GlyphExplored = '='
	GlyphWaypoint = '*'
)

// Marker is a robot drawn on a map, shown as the last digit of its id.
type Marker struct {
	ID        int
	Position  grid.Tile
	Colliding bool
	Focused   bool
}

// Layers are drawn over a map. Robots are drawn above waypoints, waypoints
// above doorways.
type Layers struct {
	Doorways  []doorway.Doorway
	Waypoints []grid.Tile
	Robots    []Marker
}

type cell struct {
	r     rune
	style *lipgloss.Style
}

// Map draws g with its layers, top row first. Plain output carries no
// styling.
func Map(g *occupancy.Grid, l Layers, plain bool) string {
	w, h := g.Width(), g.Height()
	cells := make([][]cell, h)
	for y := range h {
		cells[y] = make([]cell, w)
		for x := range w {
			cells[y][x] = baseCell(g.Status(grid.T(x, y)))
		}
	}
	put := func(t grid.Tile, c cell) {
		if g.InBounds(t) {
			cells[t.Y][t.X] = c
		}
	}

	for _, d := range l.Doorways {
		c := cell{GlyphDoor, &doorStyle}
		if d.Explored {
			c = cell{GlyphExplored, &exploredStyle}
		}
		for _, t := range d.Tiles {
			put(t, c)
		}
	}
	for _, t := range l.Waypoints {
		put(t, cell{GlyphWaypoint, &waypointStyle})
	}
	for _, m := range l.Robots {
		style := &robotStyle
		switch {
		case m.Colliding:
			style = &collideStyle
		case m.Focused:
			style = &focusStyle
		}
		put(m.Position, cell{rune('0' + m.ID%10), style})
	}

	var sb strings.Builder
	for y := h - 1; y >= 0; y-- {
		for _, c := range cells[y] {
			if plain || c.style == nil {
				sb.WriteRune(c.r)
				continue
			}
			sb.WriteString(c.style.Render(string(c.r)))
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func baseCell(s grid.Status) cell {
	switch s {
	case grid.Solid:
		return cell{GlyphWall, &wallStyle}
	case grid.Open:
		return cell{GlyphFloor, &floorStyle}
	default:
		return cell{GlyphUnseen, nil}
	}
}

// Focus builds the layers for one team member's view: its doorways and
// waypoint, plus every robot's position.
func Focus(team []sim.Member, focus int) Layers {
	var l Layers
	for i, m := range team {
		l.Robots = append(l.Robots, Marker{
			ID:        m.Robot.ID(),
			Position:  m.Robot.Position(),
			Colliding: m.Robot.IsColliding(),
			Focused:   i == focus,
		})
		if i != focus {
			continue
		}
		l.Doorways = m.Explorer.Doorways()
		if wp, ok := m.Explorer.Waypoint(); ok {
			l.Waypoints = append(l.Waypoints, wp.Destination)
		}
	}
	return l
}
